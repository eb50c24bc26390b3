package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	domainerrors "github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
	"github.com/Hazhaz1412/smart-city-iot/internal/infrastructure/providers"
	"github.com/Hazhaz1412/smart-city-iot/internal/usecases"
	"github.com/Hazhaz1412/smart-city-iot/pkg/vault"
)

type syncFixture struct {
	stationRepo    *MockWeatherStationRepository
	sensorRepo     *MockAirQualitySensorRepository
	weatherObsRepo *MockWeatherObservationRepository
	airObsRepo     *MockAirQualityObservationRepository
	providerRepo   *MockProviderRepository
	entityRepo     *MockNGSIEntityRepository
	broker         *MockBrokerGateway
	limiter        *MockProviderLimiter
	weather        *MockWeatherFetcher
	air            *MockAirQualityFetcher
	geo            *MockGeoAirQualityFetcher
	uc             *usecases.SyncUsecase
}

func newSyncFixture() *syncFixture {
	f := &syncFixture{
		stationRepo:    new(MockWeatherStationRepository),
		sensorRepo:     new(MockAirQualitySensorRepository),
		weatherObsRepo: new(MockWeatherObservationRepository),
		airObsRepo:     new(MockAirQualityObservationRepository),
		providerRepo:   new(MockProviderRepository),
		entityRepo:     new(MockNGSIEntityRepository),
		broker:         new(MockBrokerGateway),
		limiter:        new(MockProviderLimiter),
		weather:        new(MockWeatherFetcher),
		air:            new(MockAirQualityFetcher),
		geo:            new(MockGeoAirQualityFetcher),
	}

	resolver := usecases.NewCredentialResolver(
		f.providerRepo, new(MockUserAPIKeyRepository), new(MockSystemAPIKeyRepository), vault.New(testMasterSecret),
	)
	publisher := usecases.NewEntityPublisher(f.entityRepo, f.broker)

	f.uc = usecases.NewSyncUsecase(
		f.stationRepo, f.sensorRepo, f.weatherObsRepo, f.airObsRepo,
		f.providerRepo, resolver, publisher, f.limiter,
	)
	f.uc.SetWeatherFetcherFactory(func(apiKey string) usecases.WeatherFetcher { return f.weather })
	f.uc.SetAirQualityFetcherFactory(func(apiKey string) usecases.AirQualityFetcher { return f.air })
	f.uc.SetGeoFetcherFactory(func(apiKey string) usecases.GeoAirQualityFetcher { return f.geo })
	return f
}

// stubCredentials routes resolution to the environment path for every slug.
func (f *syncFixture) stubCredentials(t *testing.T) {
	t.Helper()
	f.providerRepo.On("FindBySlug", mock.Anything, mock.AnythingOfType("string")).Return(nil, domainerrors.ErrNotFound)
	t.Setenv("OPENWEATHERMAP_API_KEY", "owm-key")
	t.Setenv("OPENAQ_API_KEY", "aq-key")
}

func (f *syncFixture) stubPublishing() {
	f.entityRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*entities.NGSIEntity")).Return(nil)
	f.entityRepo.On("MarkSynced", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil)
	f.broker.On("UpsertEntity", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("[]uint8")).Return(nil)
}

func testStation(stationID string) *entities.WeatherStation {
	return &entities.WeatherStation{
		ID:        uuid.New(),
		StationID: stationID,
		Name:      "Station " + stationID,
		Latitude:  10.82,
		Longitude: 106.63,
		IsActive:  true,
	}
}

func testSensor(sensorID string) *entities.AirQualitySensor {
	return &entities.AirQualitySensor{
		ID:       uuid.New(),
		SensorID: sensorID,
		Name:     "Sensor " + sensorID,
		Latitude: 10.82, Longitude: 106.63,
		IsActive: true,
	}
}

func weatherResult() *providers.WeatherResult {
	return &providers.WeatherResult{
		Latitude:     10.82,
		Longitude:    106.63,
		LocationName: "Ho Chi Minh City",
		Temperature:  null.Float64From(31.5),
		Humidity:     null.Float64From(70),
		Description:  "scattered clouds",
		ObservedAt:   time.Now().UTC(),
		Source:       "openweathermap",
	}
}

func TestSyncWeather_SyncsAllActiveStations(t *testing.T) {
	f := newSyncFixture()
	f.stubCredentials(t)
	f.stubPublishing()

	f.stationRepo.On("ListActive", mock.Anything).Return([]*entities.WeatherStation{
		testStation("hcm-001"), testStation("hcm-002"),
	}, nil)
	f.limiter.On("Allow", mock.Anything, providers.SlugOpenWeather, 0, 0).Return(true, nil)
	f.weather.On("GetCurrentWeather", mock.Anything, 10.82, 106.63).Return(weatherResult(), nil)
	f.weatherObsRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.WeatherObservation")).Return(nil)

	report, err := f.uc.SyncWeather(context.Background())

	require.NoError(t, err)
	assert.Equal(t, entities.SyncReport{Attempted: 2, Synced: 2}, report)
	f.weatherObsRepo.AssertNumberOfCalls(t, "Create", 2)
	f.broker.AssertNumberOfCalls(t, "UpsertEntity", 2)
}

func TestSyncWeather_OneFailureDoesNotAbortBatch(t *testing.T) {
	f := newSyncFixture()
	f.stubCredentials(t)
	f.stubPublishing()

	good := testStation("hcm-001")
	bad := testStation("hcm-002")
	bad.Latitude, bad.Longitude = 48.85, 2.35

	f.stationRepo.On("ListActive", mock.Anything).Return([]*entities.WeatherStation{bad, good}, nil)
	f.limiter.On("Allow", mock.Anything, providers.SlugOpenWeather, 0, 0).Return(true, nil)
	f.weather.On("GetCurrentWeather", mock.Anything, 48.85, 2.35).Return(nil, domainerrors.ErrProviderUnavailable)
	f.weather.On("GetCurrentWeather", mock.Anything, 10.82, 106.63).Return(weatherResult(), nil)
	f.weatherObsRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.WeatherObservation")).Return(nil)

	report, err := f.uc.SyncWeather(context.Background())

	require.NoError(t, err)
	assert.Equal(t, entities.SyncReport{Attempted: 2, Synced: 1, Failed: 1}, report)
}

func TestSyncWeather_StopsWhenRateLimited(t *testing.T) {
	f := newSyncFixture()
	f.stubCredentials(t)

	f.stationRepo.On("ListActive", mock.Anything).Return([]*entities.WeatherStation{
		testStation("hcm-001"), testStation("hcm-002"),
	}, nil)
	f.limiter.On("Allow", mock.Anything, providers.SlugOpenWeather, 0, 0).Return(false, nil)

	report, err := f.uc.SyncWeather(context.Background())

	require.NoError(t, err)
	assert.Equal(t, entities.SyncReport{}, report)
	f.weather.AssertNotCalled(t, "GetCurrentWeather", mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncWeather_LimiterErrorFailsOpen(t *testing.T) {
	f := newSyncFixture()
	f.stubCredentials(t)
	f.stubPublishing()

	f.stationRepo.On("ListActive", mock.Anything).Return([]*entities.WeatherStation{testStation("hcm-001")}, nil)
	f.limiter.On("Allow", mock.Anything, providers.SlugOpenWeather, 0, 0).Return(false, assert.AnError)
	f.weather.On("GetCurrentWeather", mock.Anything, 10.82, 106.63).Return(weatherResult(), nil)
	f.weatherObsRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.WeatherObservation")).Return(nil)

	report, err := f.uc.SyncWeather(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Synced)
}

func TestSyncAirQuality_DerivesAQIFromPM25(t *testing.T) {
	f := newSyncFixture()
	f.stubCredentials(t)
	f.stubPublishing()

	f.sensorRepo.On("ListActive", mock.Anything).Return([]*entities.AirQualitySensor{testSensor("aq-001")}, nil)
	f.limiter.On("Allow", mock.Anything, providers.SlugOpenAQ, 0, 0).Return(true, nil)
	f.air.On("GetLatestMeasurements", mock.Anything, 10.82, 106.63, float64(10000)).Return(&providers.AirQualityResult{
		PM25:       null.Float64From(45.2),
		ObservedAt: time.Now().UTC(),
		Source:     "openaq",
	}, nil)

	var stored *entities.AirQualityObservation
	f.airObsRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.AirQualityObservation")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*entities.AirQualityObservation)
		}).Return(nil)

	report, err := f.uc.SyncAirQuality(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Synced)
	require.NotNil(t, stored)
	require.True(t, stored.AirQualityIndex.Valid)
	assert.InDelta(t, 125, stored.AirQualityIndex.Float64, 1)
}

func TestSyncLocationWeather_RateLimited(t *testing.T) {
	f := newSyncFixture()
	f.providerRepo.On("FindBySlug", mock.Anything, mock.AnythingOfType("string")).Return(nil, domainerrors.ErrNotFound)
	f.limiter.On("Allow", mock.Anything, providers.SlugOpenWeather, 0, 0).Return(false, nil)

	_, err := f.uc.SyncLocationWeather(context.Background(), 10.82, 106.63, "", nil)

	require.ErrorIs(t, err, domainerrors.ErrRateLimited)
}

func TestSyncLocationWeather_NameFallsBackToProvider(t *testing.T) {
	f := newSyncFixture()
	f.stubCredentials(t)
	f.stubPublishing()

	f.limiter.On("Allow", mock.Anything, providers.SlugOpenWeather, 0, 0).Return(true, nil)
	f.weather.On("GetCurrentWeather", mock.Anything, 10.82, 106.63).Return(weatherResult(), nil)
	f.weatherObsRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.WeatherObservation")).Return(nil)

	obs, err := f.uc.SyncLocationWeather(context.Background(), 10.82, 106.63, "", nil)

	require.NoError(t, err)
	assert.Equal(t, "Ho Chi Minh City", obs.LocationName)
	assert.Nil(t, obs.StationID)
}

func TestSyncLocationAirQuality_NoDataAnywhere(t *testing.T) {
	f := newSyncFixture()
	f.stubCredentials(t)
	t.Setenv("WAQI_API_KEY", "")

	f.limiter.On("Allow", mock.Anything, providers.SlugOpenAQ, 0, 0).Return(true, nil)
	f.limiter.On("Allow", mock.Anything, providers.SlugWAQI, 0, 0).Return(true, nil)
	f.air.On("GetLatestMeasurements", mock.Anything, 10.82, 106.63, float64(10000)).
		Return(nil, domainerrors.ErrNoDataFound)

	// No WAQI credential either, so the fallback is skipped.
	_, err := f.uc.SyncLocationAirQuality(context.Background(), 10.82, 106.63, "", nil)

	require.ErrorIs(t, err, domainerrors.ErrNoDataFound)
	f.geo.AssertNotCalled(t, "GetByCoordinates", mock.Anything, mock.Anything, mock.Anything)
	f.airObsRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSyncLocationAirQuality_FallsBackToWAQI(t *testing.T) {
	f := newSyncFixture()
	f.stubCredentials(t)
	f.stubPublishing()
	t.Setenv("WAQI_API_KEY", "waqi-token")

	f.limiter.On("Allow", mock.Anything, providers.SlugOpenAQ, 0, 0).Return(true, nil)
	f.limiter.On("Allow", mock.Anything, providers.SlugWAQI, 0, 0).Return(true, nil)
	f.air.On("GetLatestMeasurements", mock.Anything, 10.82, 106.63, float64(10000)).
		Return(nil, domainerrors.ErrNoDataFound)
	f.geo.On("GetByCoordinates", mock.Anything, 10.82, 106.63).Return(&providers.AirQualityResult{
		LocationName: "Saigon Zoo",
		AQI:          null.Float64From(92),
		PM25:         null.Float64From(31.2),
		ObservedAt:   time.Now().UTC(),
		Source:       providers.SlugWAQI,
	}, nil)
	f.airObsRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.AirQualityObservation")).Return(nil)

	obs, err := f.uc.SyncLocationAirQuality(context.Background(), 10.82, 106.63, "", nil)

	require.NoError(t, err)
	assert.Equal(t, providers.SlugWAQI, obs.Source)
	assert.Equal(t, 92.0, obs.AirQualityIndex.Float64)
}

func TestSyncLocationAirQuality_UpstreamErrorDoesNotFallBack(t *testing.T) {
	f := newSyncFixture()
	f.stubCredentials(t)

	f.limiter.On("Allow", mock.Anything, providers.SlugOpenAQ, 0, 0).Return(true, nil)
	f.air.On("GetLatestMeasurements", mock.Anything, 10.82, 106.63, float64(10000)).
		Return(nil, domainerrors.ErrProviderUnavailable)

	_, err := f.uc.SyncLocationAirQuality(context.Background(), 10.82, 106.63, "", nil)

	require.ErrorIs(t, err, domainerrors.ErrProviderUnavailable)
	f.geo.AssertNotCalled(t, "GetByCoordinates", mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncWeather_BrokerFailureKeepsObservation(t *testing.T) {
	f := newSyncFixture()
	f.stubCredentials(t)

	f.stationRepo.On("ListActive", mock.Anything).Return([]*entities.WeatherStation{testStation("hcm-001")}, nil)
	f.limiter.On("Allow", mock.Anything, providers.SlugOpenWeather, 0, 0).Return(true, nil)
	f.weather.On("GetCurrentWeather", mock.Anything, 10.82, 106.63).Return(weatherResult(), nil)
	f.weatherObsRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.WeatherObservation")).Return(nil)

	f.entityRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*entities.NGSIEntity")).Return(nil)
	f.broker.On("UpsertEntity", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("[]uint8")).
		Return(domainerrors.ErrBrokerUnavailable)

	report, err := f.uc.SyncWeather(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Synced)
	f.entityRepo.AssertNotCalled(t, "MarkSynced", mock.Anything, mock.Anything)
}
