package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	"github.com/Hazhaz1412/smart-city-iot/internal/infrastructure/broker"
	"github.com/Hazhaz1412/smart-city-iot/internal/infrastructure/providers"
	"github.com/Hazhaz1412/smart-city-iot/pkg/utils"
)

// Mock ProviderRepository
type MockProviderRepository struct {
	mock.Mock
}

func (m *MockProviderRepository) Create(ctx context.Context, provider *entities.ExternalAPIProvider) error {
	return m.Called(ctx, provider).Error(0)
}

func (m *MockProviderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ExternalAPIProvider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ExternalAPIProvider), args.Error(1)
}

func (m *MockProviderRepository) FindBySlug(ctx context.Context, slug string) (*entities.ExternalAPIProvider, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ExternalAPIProvider), args.Error(1)
}

func (m *MockProviderRepository) List(ctx context.Context, category string, activeOnly bool) ([]*entities.ExternalAPIProvider, error) {
	args := m.Called(ctx, category, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ExternalAPIProvider), args.Error(1)
}

func (m *MockProviderRepository) Update(ctx context.Context, provider *entities.ExternalAPIProvider) error {
	return m.Called(ctx, provider).Error(0)
}

func (m *MockProviderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Mock UserAPIKeyRepository
type MockUserAPIKeyRepository struct {
	mock.Mock
}

func (m *MockUserAPIKeyRepository) Upsert(ctx context.Context, key *entities.UserAPIKey) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockUserAPIKeyRepository) FindByUserAndProvider(ctx context.Context, userID, providerID uuid.UUID) (*entities.UserAPIKey, error) {
	args := m.Called(ctx, userID, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserAPIKey), args.Error(1)
}

func (m *MockUserAPIKeyRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.UserAPIKey, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.UserAPIKey), args.Error(1)
}

func (m *MockUserAPIKeyRepository) RecordUsage(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserAPIKeyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Mock SystemAPIKeyRepository
type MockSystemAPIKeyRepository struct {
	mock.Mock
}

func (m *MockSystemAPIKeyRepository) Upsert(ctx context.Context, key *entities.SystemAPIKey) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockSystemAPIKeyRepository) FindByProviderID(ctx context.Context, providerID uuid.UUID) (*entities.SystemAPIKey, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SystemAPIKey), args.Error(1)
}

func (m *MockSystemAPIKeyRepository) List(ctx context.Context) ([]*entities.SystemAPIKey, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SystemAPIKey), args.Error(1)
}

func (m *MockSystemAPIKeyRepository) RecordUsage(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSystemAPIKeyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

// Mock WeatherStationRepository
type MockWeatherStationRepository struct {
	mock.Mock
}

func (m *MockWeatherStationRepository) Create(ctx context.Context, station *entities.WeatherStation) error {
	return m.Called(ctx, station).Error(0)
}

func (m *MockWeatherStationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.WeatherStation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WeatherStation), args.Error(1)
}

func (m *MockWeatherStationRepository) FindByStationID(ctx context.Context, stationID string) (*entities.WeatherStation, error) {
	args := m.Called(ctx, stationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WeatherStation), args.Error(1)
}

func (m *MockWeatherStationRepository) ListActive(ctx context.Context) ([]*entities.WeatherStation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.WeatherStation), args.Error(1)
}

func (m *MockWeatherStationRepository) List(ctx context.Context) ([]*entities.WeatherStation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.WeatherStation), args.Error(1)
}

func (m *MockWeatherStationRepository) Update(ctx context.Context, station *entities.WeatherStation) error {
	return m.Called(ctx, station).Error(0)
}

func (m *MockWeatherStationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Mock AirQualitySensorRepository
type MockAirQualitySensorRepository struct {
	mock.Mock
}

func (m *MockAirQualitySensorRepository) Create(ctx context.Context, sensor *entities.AirQualitySensor) error {
	return m.Called(ctx, sensor).Error(0)
}

func (m *MockAirQualitySensorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.AirQualitySensor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AirQualitySensor), args.Error(1)
}

func (m *MockAirQualitySensorRepository) FindBySensorID(ctx context.Context, sensorID string) (*entities.AirQualitySensor, error) {
	args := m.Called(ctx, sensorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AirQualitySensor), args.Error(1)
}

func (m *MockAirQualitySensorRepository) ListActive(ctx context.Context) ([]*entities.AirQualitySensor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.AirQualitySensor), args.Error(1)
}

func (m *MockAirQualitySensorRepository) List(ctx context.Context) ([]*entities.AirQualitySensor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.AirQualitySensor), args.Error(1)
}

func (m *MockAirQualitySensorRepository) Update(ctx context.Context, sensor *entities.AirQualitySensor) error {
	return m.Called(ctx, sensor).Error(0)
}

func (m *MockAirQualitySensorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Mock WeatherObservationRepository
type MockWeatherObservationRepository struct {
	mock.Mock
}

func (m *MockWeatherObservationRepository) Create(ctx context.Context, obs *entities.WeatherObservation) error {
	args := m.Called(ctx, obs)
	if obs.ID == uuid.Nil {
		obs.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockWeatherObservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.WeatherObservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WeatherObservation), args.Error(1)
}

func (m *MockWeatherObservationRepository) ListByStation(ctx context.Context, stationID uuid.UUID, p utils.PaginationParams) ([]*entities.WeatherObservation, int64, error) {
	args := m.Called(ctx, stationID, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.WeatherObservation), args.Get(1).(int64), args.Error(2)
}

func (m *MockWeatherObservationRepository) ListRecent(ctx context.Context, p utils.PaginationParams) ([]*entities.WeatherObservation, int64, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.WeatherObservation), args.Get(1).(int64), args.Error(2)
}

// Mock AirQualityObservationRepository
type MockAirQualityObservationRepository struct {
	mock.Mock
}

func (m *MockAirQualityObservationRepository) Create(ctx context.Context, obs *entities.AirQualityObservation) error {
	args := m.Called(ctx, obs)
	if obs.ID == uuid.Nil {
		obs.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockAirQualityObservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.AirQualityObservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AirQualityObservation), args.Error(1)
}

func (m *MockAirQualityObservationRepository) ListBySensor(ctx context.Context, sensorID uuid.UUID, p utils.PaginationParams) ([]*entities.AirQualityObservation, int64, error) {
	args := m.Called(ctx, sensorID, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.AirQualityObservation), args.Get(1).(int64), args.Error(2)
}

func (m *MockAirQualityObservationRepository) ListRecent(ctx context.Context, p utils.PaginationParams) ([]*entities.AirQualityObservation, int64, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.AirQualityObservation), args.Get(1).(int64), args.Error(2)
}

// Mock NGSIEntityRepository
type MockNGSIEntityRepository struct {
	mock.Mock
}

func (m *MockNGSIEntityRepository) Upsert(ctx context.Context, entity *entities.NGSIEntity) error {
	args := m.Called(ctx, entity)
	if entity.ID == uuid.Nil {
		entity.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockNGSIEntityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.NGSIEntity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.NGSIEntity), args.Error(1)
}

func (m *MockNGSIEntityRepository) FindByEntityID(ctx context.Context, entityID string) (*entities.NGSIEntity, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.NGSIEntity), args.Error(1)
}

func (m *MockNGSIEntityRepository) List(ctx context.Context, entityType string, p utils.PaginationParams) ([]*entities.NGSIEntity, int64, error) {
	args := m.Called(ctx, entityType, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.NGSIEntity), args.Get(1).(int64), args.Error(2)
}

func (m *MockNGSIEntityRepository) MarkSynced(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNGSIEntityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Mock context broker gateway
type MockBrokerGateway struct {
	mock.Mock
}

func (m *MockBrokerGateway) UpsertEntity(ctx context.Context, entityID string, document []byte) error {
	return m.Called(ctx, entityID, document).Error(0)
}

func (m *MockBrokerGateway) GetEntity(ctx context.Context, entityID string) (map[string]any, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockBrokerGateway) DeleteEntity(ctx context.Context, entityID string) error {
	return m.Called(ctx, entityID).Error(0)
}

func (m *MockBrokerGateway) QueryEntities(ctx context.Context, params broker.QueryParams) ([]map[string]any, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]any), args.Error(1)
}

func (m *MockBrokerGateway) QueryTemporal(ctx context.Context, params broker.TemporalParams) ([]map[string]any, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]any), args.Error(1)
}

func (m *MockBrokerGateway) Ping(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

// Mock weather fetcher
type MockWeatherFetcher struct {
	mock.Mock
}

func (m *MockWeatherFetcher) GetCurrentWeather(ctx context.Context, lat, lon float64) (*providers.WeatherResult, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*providers.WeatherResult), args.Error(1)
}

// Mock air quality fetcher
type MockAirQualityFetcher struct {
	mock.Mock
}

func (m *MockAirQualityFetcher) GetLatestMeasurements(ctx context.Context, lat, lon, radiusMeters float64) (*providers.AirQualityResult, error) {
	args := m.Called(ctx, lat, lon, radiusMeters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*providers.AirQualityResult), args.Error(1)
}

type MockGeoAirQualityFetcher struct {
	mock.Mock
}

func (m *MockGeoAirQualityFetcher) GetByCoordinates(ctx context.Context, lat, lon float64) (*providers.AirQualityResult, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*providers.AirQualityResult), args.Error(1)
}

// Mock provider rate limiter
type MockProviderLimiter struct {
	mock.Mock
}

func (m *MockProviderLimiter) Allow(ctx context.Context, providerSlug string, perMinute, perDay int) (bool, error) {
	args := m.Called(ctx, providerSlug, perMinute, perDay)
	return args.Bool(0), args.Error(1)
}
