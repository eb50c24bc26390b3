package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	domainerrors "github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
	"github.com/Hazhaz1412/smart-city-iot/internal/domain/repositories"
	"github.com/Hazhaz1412/smart-city-iot/internal/infrastructure/providers"
	"github.com/Hazhaz1412/smart-city-iot/pkg/logger"
	"github.com/Hazhaz1412/smart-city-iot/pkg/metrics"
	"github.com/Hazhaz1412/smart-city-iot/pkg/ngsild"
)

const defaultSearchRadiusMeters = 10000

// WeatherFetcher fetches a current weather reading for a coordinate pair.
type WeatherFetcher interface {
	GetCurrentWeather(ctx context.Context, lat, lon float64) (*providers.WeatherResult, error)
}

// AirQualityFetcher fetches the latest air quality reading near a coordinate pair.
type AirQualityFetcher interface {
	GetLatestMeasurements(ctx context.Context, lat, lon, radiusMeters float64) (*providers.AirQualityResult, error)
}

// GeoAirQualityFetcher fetches an aggregated air quality feed for a coordinate
// pair. Used as the fallback source when the primary provider has no
// measurements near the location.
type GeoAirQualityFetcher interface {
	GetByCoordinates(ctx context.Context, lat, lon float64) (*providers.AirQualityResult, error)
}

// ContextBroker pushes entity documents to the context broker.
type ContextBroker interface {
	UpsertEntity(ctx context.Context, entityID string, document []byte) error
}

// ProviderLimiter enforces per-provider request budgets.
type ProviderLimiter interface {
	Allow(ctx context.Context, providerSlug string, perMinute, perDay int) (bool, error)
}

// SyncUsecase pulls readings from external providers, persists them, and
// forwards the resulting NGSI-LD entities to the context broker. A single
// failing station or sensor never aborts the rest of the batch.
type SyncUsecase struct {
	stationRepo    repositories.WeatherStationRepository
	sensorRepo     repositories.AirQualitySensorRepository
	weatherObsRepo repositories.WeatherObservationRepository
	airObsRepo     repositories.AirQualityObservationRepository
	providerRepo   repositories.ProviderRepository
	resolver       *CredentialResolver
	publisher      *EntityPublisher
	limiter        ProviderLimiter

	newWeatherFetcher    func(apiKey string) WeatherFetcher
	newAirQualityFetcher func(apiKey string) AirQualityFetcher
	newGeoFetcher        func(apiKey string) GeoAirQualityFetcher
}

func NewSyncUsecase(
	stationRepo repositories.WeatherStationRepository,
	sensorRepo repositories.AirQualitySensorRepository,
	weatherObsRepo repositories.WeatherObservationRepository,
	airObsRepo repositories.AirQualityObservationRepository,
	providerRepo repositories.ProviderRepository,
	resolver *CredentialResolver,
	publisher *EntityPublisher,
	limiter ProviderLimiter,
) *SyncUsecase {
	return &SyncUsecase{
		stationRepo:    stationRepo,
		sensorRepo:     sensorRepo,
		weatherObsRepo: weatherObsRepo,
		airObsRepo:     airObsRepo,
		providerRepo:   providerRepo,
		resolver:       resolver,
		publisher:      publisher,
		limiter:        limiter,
		newWeatherFetcher: func(apiKey string) WeatherFetcher {
			return providers.NewOpenWeatherClient(apiKey, "")
		},
		newAirQualityFetcher: func(apiKey string) AirQualityFetcher {
			return providers.NewOpenAQClient(apiKey, "")
		},
		newGeoFetcher: func(apiKey string) GeoAirQualityFetcher {
			return providers.NewWAQIClient(apiKey, "")
		},
	}
}

// SetWeatherFetcherFactory overrides the weather client constructor.
// Used by tests to inject fakes.
func (u *SyncUsecase) SetWeatherFetcherFactory(f func(apiKey string) WeatherFetcher) {
	u.newWeatherFetcher = f
}

// SetAirQualityFetcherFactory overrides the air quality client constructor.
func (u *SyncUsecase) SetAirQualityFetcherFactory(f func(apiKey string) AirQualityFetcher) {
	u.newAirQualityFetcher = f
}

// SetGeoFetcherFactory overrides the fallback air quality client constructor.
func (u *SyncUsecase) SetGeoFetcherFactory(f func(apiKey string) GeoAirQualityFetcher) {
	u.newGeoFetcher = f
}

// SyncWeather fetches current weather for every active station and reports
// attempted/synced/failed counts.
func (u *SyncUsecase) SyncWeather(ctx context.Context) (entities.SyncReport, error) {
	start := time.Now()
	var report entities.SyncReport

	stations, err := u.stationRepo.ListActive(ctx)
	if err != nil {
		metrics.GetMetrics().RecordSyncRun("weather", "error", time.Since(start))
		return report, err
	}

	apiKey, _ := u.resolver.Resolve(ctx, providers.SlugOpenWeather, nil)
	client := u.newWeatherFetcher(apiKey)

	for _, station := range stations {
		if !u.allowCall(ctx, providers.SlugOpenWeather) {
			logger.Warn(ctx, "Weather sync stopped by provider rate limit",
				zap.Int("synced", report.Synced),
				zap.Int("remaining", len(stations)-report.Attempted),
			)
			break
		}
		report.Attempted++

		result, err := client.GetCurrentWeather(ctx, station.Latitude, station.Longitude)
		if err != nil {
			report.Failed++
			metrics.GetMetrics().RecordSyncFailure("weather")
			logger.Warn(ctx, "Weather fetch failed for station",
				zap.String("station_id", station.StationID),
				zap.Error(err),
			)
			continue
		}

		obs := weatherObservationFrom(result, &station.ID, station.Name, station.Latitude, station.Longitude)
		if err := u.weatherObsRepo.Create(ctx, obs); err != nil {
			report.Failed++
			metrics.GetMetrics().RecordSyncFailure("weather")
			logger.Error(ctx, "Failed to persist weather observation",
				zap.String("station_id", station.StationID),
				zap.Error(err),
			)
			continue
		}

		u.publishWeather(ctx, obs, station.StationID)
		metrics.GetMetrics().RecordSyncEntity("weather")
		report.Synced++
	}

	metrics.GetMetrics().RecordSyncRun("weather", "ok", time.Since(start))
	return report, nil
}

// SyncAirQuality fetches the latest air quality for every active sensor and
// reports attempted/synced/failed counts.
func (u *SyncUsecase) SyncAirQuality(ctx context.Context) (entities.SyncReport, error) {
	start := time.Now()
	var report entities.SyncReport

	sensors, err := u.sensorRepo.ListActive(ctx)
	if err != nil {
		metrics.GetMetrics().RecordSyncRun("air_quality", "error", time.Since(start))
		return report, err
	}

	apiKey, _ := u.resolver.Resolve(ctx, providers.SlugOpenAQ, nil)
	client := u.newAirQualityFetcher(apiKey)

	for _, sensor := range sensors {
		if !u.allowCall(ctx, providers.SlugOpenAQ) {
			logger.Warn(ctx, "Air quality sync stopped by provider rate limit",
				zap.Int("synced", report.Synced),
				zap.Int("remaining", len(sensors)-report.Attempted),
			)
			break
		}
		report.Attempted++

		result, err := client.GetLatestMeasurements(ctx, sensor.Latitude, sensor.Longitude, defaultSearchRadiusMeters)
		if err != nil {
			report.Failed++
			metrics.GetMetrics().RecordSyncFailure("air_quality")
			logger.Warn(ctx, "Air quality fetch failed for sensor",
				zap.String("sensor_id", sensor.SensorID),
				zap.Error(err),
			)
			continue
		}

		obs := airQualityObservationFrom(result, &sensor.ID, sensor.Name, sensor.Latitude, sensor.Longitude)
		if err := u.airObsRepo.Create(ctx, obs); err != nil {
			report.Failed++
			metrics.GetMetrics().RecordSyncFailure("air_quality")
			logger.Error(ctx, "Failed to persist air quality observation",
				zap.String("sensor_id", sensor.SensorID),
				zap.Error(err),
			)
			continue
		}

		u.publishAirQuality(ctx, obs, sensor.SensorID)
		metrics.GetMetrics().RecordSyncEntity("air_quality")
		report.Synced++
	}

	metrics.GetMetrics().RecordSyncRun("air_quality", "ok", time.Since(start))
	return report, nil
}

// SyncLocationWeather performs a single fetch+persist for an arbitrary
// location not registered as a station.
func (u *SyncUsecase) SyncLocationWeather(ctx context.Context, lat, lon float64, name string, userID *uuid.UUID) (*entities.WeatherObservation, error) {
	if !u.allowCall(ctx, providers.SlugOpenWeather) {
		return nil, domainerrors.ErrRateLimited
	}

	apiKey, _ := u.resolver.Resolve(ctx, providers.SlugOpenWeather, userID)
	client := u.newWeatherFetcher(apiKey)

	result, err := client.GetCurrentWeather(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	locationName := name
	if locationName == "" {
		locationName = result.LocationName
	}

	obs := weatherObservationFrom(result, nil, locationName, lat, lon)
	if err := u.weatherObsRepo.Create(ctx, obs); err != nil {
		return nil, err
	}

	u.publishWeather(ctx, obs, "loc-"+obs.ID.String())
	return obs, nil
}

// SyncLocationAirQuality performs a single fetch+persist for an arbitrary
// location not registered as a sensor.
func (u *SyncUsecase) SyncLocationAirQuality(ctx context.Context, lat, lon float64, name string, userID *uuid.UUID) (*entities.AirQualityObservation, error) {
	if !u.allowCall(ctx, providers.SlugOpenAQ) {
		return nil, domainerrors.ErrRateLimited
	}

	apiKey, _ := u.resolver.Resolve(ctx, providers.SlugOpenAQ, userID)
	client := u.newAirQualityFetcher(apiKey)

	result, err := client.GetLatestMeasurements(ctx, lat, lon, defaultSearchRadiusMeters)
	if errors.Is(err, domainerrors.ErrNoDataFound) {
		result, err = u.fallbackAirQuality(ctx, lat, lon, userID)
	}
	if err != nil {
		return nil, err
	}

	locationName := name
	if locationName == "" {
		locationName = result.LocationName
	}

	obs := airQualityObservationFrom(result, nil, locationName, lat, lon)
	if err := u.airObsRepo.Create(ctx, obs); err != nil {
		return nil, err
	}

	u.publishAirQuality(ctx, obs, "loc-"+obs.ID.String())
	return obs, nil
}

// fallbackAirQuality queries the WAQI aggregated feed when the primary
// provider has no measurements near the location.
func (u *SyncUsecase) fallbackAirQuality(ctx context.Context, lat, lon float64, userID *uuid.UUID) (*providers.AirQualityResult, error) {
	if !u.allowCall(ctx, providers.SlugWAQI) {
		return nil, domainerrors.ErrRateLimited
	}

	apiKey, ok := u.resolver.Resolve(ctx, providers.SlugWAQI, userID)
	if !ok {
		return nil, domainerrors.ErrNoDataFound
	}

	logger.Info(ctx, "Falling back to WAQI feed",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
	)
	return u.newGeoFetcher(apiKey).GetByCoordinates(ctx, lat, lon)
}

// allowCall consults the provider rate limiter using the registry's limits.
// It fails open: limiter errors and unknown providers never block a sync.
func (u *SyncUsecase) allowCall(ctx context.Context, slug string) bool {
	if u.limiter == nil {
		return true
	}

	perMinute, perDay := 0, 0
	if provider, err := u.providerRepo.FindBySlug(ctx, slug); err == nil {
		perMinute = provider.RateLimitPerMin
		perDay = provider.RateLimitPerDay
	}

	allowed, err := u.limiter.Allow(ctx, slug, perMinute, perDay)
	if err != nil {
		logger.Warn(ctx, "Rate limiter unavailable, allowing call",
			zap.String("provider", slug),
			zap.Error(err),
		)
		return true
	}
	return allowed
}

func (u *SyncUsecase) publishWeather(ctx context.Context, obs *entities.WeatherObservation, localID string) {
	entity, err := ngsild.NewWeatherObserved(ngsild.WeatherObservedInput{
		ObservationID: fmt.Sprintf("%s-%s", localID, obs.ObservedAt.UTC().Format("20060102150405")),
		LocationName:  obs.LocationName,
		Latitude:      obs.Latitude,
		Longitude:     obs.Longitude,
		Temperature:   obs.Temperature,
		Humidity:      obs.Humidity,
		Pressure:      obs.Pressure,
		WindSpeed:     obs.WindSpeed,
		WindDirection: obs.WindDirection,
		Precipitation: obs.Precipitation,
		Description:   obs.WeatherType,
		ObservedAt:    obs.ObservedAt,
	})
	if err != nil {
		logger.Error(ctx, "Failed to build WeatherObserved entity", zap.Error(err))
		return
	}
	u.publisher.Publish(ctx, entity, obs.Latitude, obs.Longitude)
}

func (u *SyncUsecase) publishAirQuality(ctx context.Context, obs *entities.AirQualityObservation, localID string) {
	entity, err := ngsild.NewAirQualityObserved(ngsild.AirQualityObservedInput{
		ObservationID: fmt.Sprintf("%s-%s", localID, obs.ObservedAt.UTC().Format("20060102150405")),
		LocationName:  obs.LocationName,
		Latitude:      obs.Latitude,
		Longitude:     obs.Longitude,
		AQI:           obs.AirQualityIndex,
		PM25:          obs.PM25,
		PM10:          obs.PM10,
		NO2:           obs.NO2,
		O3:            obs.O3,
		CO:            obs.CO,
		SO2:           obs.SO2,
		ObservedAt:    obs.ObservedAt,
	})
	if err != nil {
		logger.Error(ctx, "Failed to build AirQualityObserved entity", zap.Error(err))
		return
	}
	u.publisher.Publish(ctx, entity, obs.Latitude, obs.Longitude)
}

func weatherObservationFrom(result *providers.WeatherResult, stationID *uuid.UUID, name string, lat, lon float64) *entities.WeatherObservation {
	return &entities.WeatherObservation{
		StationID:     stationID,
		LocationName:  name,
		Latitude:      lat,
		Longitude:     lon,
		Temperature:   result.Temperature,
		Humidity:      result.Humidity,
		Pressure:      result.Pressure,
		WindSpeed:     result.WindSpeed,
		WindDirection: result.WindDirection,
		Precipitation: result.Precipitation,
		WeatherType:   result.Description,
		Source:        result.Source,
		ObservedAt:    result.ObservedAt,
	}
}

func airQualityObservationFrom(result *providers.AirQualityResult, sensorID *uuid.UUID, name string, lat, lon float64) *entities.AirQualityObservation {
	aqi := result.AQI
	if !aqi.Valid && result.PM25.Valid {
		aqi = null.Float64From(float64(providers.CalculateAQIFromPM25(result.PM25.Float64)))
	}

	return &entities.AirQualityObservation{
		SensorID:        sensorID,
		LocationName:    name,
		Latitude:        lat,
		Longitude:       lon,
		AirQualityIndex: aqi,
		PM25:            result.PM25,
		PM10:            result.PM10,
		NO2:             result.NO2,
		O3:              result.O3,
		CO:              result.CO,
		SO2:             result.SO2,
		Source:          result.Source,
		ObservedAt:      result.ObservedAt,
	}
}
