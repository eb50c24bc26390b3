package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	domainerrors "github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
	"github.com/Hazhaz1412/smart-city-iot/internal/infrastructure/models"
	"github.com/Hazhaz1412/smart-city-iot/pkg/utils"
)

// WeatherObservationRepository implements weather measurement storage
type WeatherObservationRepository struct {
	db *gorm.DB
}

// NewWeatherObservationRepository creates a new weather observation repository
func NewWeatherObservationRepository(db *gorm.DB) *WeatherObservationRepository {
	return &WeatherObservationRepository{db: db}
}

// Create stores a new observation
func (r *WeatherObservationRepository) Create(ctx context.Context, obs *entities.WeatherObservation) error {
	m := &models.WeatherObservation{
		ID:            obs.ID,
		StationID:     obs.StationID,
		LocationName:  obs.LocationName,
		Latitude:      obs.Latitude,
		Longitude:     obs.Longitude,
		Temperature:   obs.Temperature.Ptr(),
		Humidity:      obs.Humidity.Ptr(),
		Pressure:      obs.Pressure.Ptr(),
		WindSpeed:     obs.WindSpeed.Ptr(),
		WindDirection: obs.WindDirection.Ptr(),
		Precipitation: obs.Precipitation.Ptr(),
		WeatherType:   obs.WeatherType,
		Source:        obs.Source,
		ObservedAt:    obs.ObservedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	obs.ID = m.ID
	obs.CreatedAt = m.CreatedAt
	return nil
}

// FindByID gets an observation by ID
func (r *WeatherObservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.WeatherObservation, error) {
	var m models.WeatherObservation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return weatherObsToEntity(&m), nil
}

// ListByStation lists observations of a station, newest first
func (r *WeatherObservationRepository) ListByStation(ctx context.Context, stationID uuid.UUID, p utils.PaginationParams) ([]*entities.WeatherObservation, int64, error) {
	return r.listWhere(ctx, p, "station_id = ?", stationID)
}

// ListRecent lists the most recent observations across stations
func (r *WeatherObservationRepository) ListRecent(ctx context.Context, p utils.PaginationParams) ([]*entities.WeatherObservation, int64, error) {
	return r.listWhere(ctx, p, "")
}

func (r *WeatherObservationRepository) listWhere(ctx context.Context, p utils.PaginationParams, cond string, args ...interface{}) ([]*entities.WeatherObservation, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.WeatherObservation{})
	if cond != "" {
		query = query.Where(cond, args...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var obsModels []models.WeatherObservation
	if err := query.Order("observed_at DESC").
		Offset(p.CalculateOffset()).Limit(p.Limit).
		Find(&obsModels).Error; err != nil {
		return nil, 0, err
	}

	observations := make([]*entities.WeatherObservation, 0, len(obsModels))
	for i := range obsModels {
		observations = append(observations, weatherObsToEntity(&obsModels[i]))
	}
	return observations, total, nil
}

func weatherObsToEntity(m *models.WeatherObservation) *entities.WeatherObservation {
	return &entities.WeatherObservation{
		ID:            m.ID,
		StationID:     m.StationID,
		LocationName:  m.LocationName,
		Latitude:      m.Latitude,
		Longitude:     m.Longitude,
		Temperature:   null.Float64FromPtr(m.Temperature),
		Humidity:      null.Float64FromPtr(m.Humidity),
		Pressure:      null.Float64FromPtr(m.Pressure),
		WindSpeed:     null.Float64FromPtr(m.WindSpeed),
		WindDirection: null.Float64FromPtr(m.WindDirection),
		Precipitation: null.Float64FromPtr(m.Precipitation),
		WeatherType:   m.WeatherType,
		Source:        m.Source,
		ObservedAt:    m.ObservedAt,
		CreatedAt:     m.CreatedAt,
	}
}

// AirQualityObservationRepository implements air quality measurement storage
type AirQualityObservationRepository struct {
	db *gorm.DB
}

// NewAirQualityObservationRepository creates a new air quality observation repository
func NewAirQualityObservationRepository(db *gorm.DB) *AirQualityObservationRepository {
	return &AirQualityObservationRepository{db: db}
}

// Create stores a new observation
func (r *AirQualityObservationRepository) Create(ctx context.Context, obs *entities.AirQualityObservation) error {
	m := &models.AirQualityObservation{
		ID:              obs.ID,
		SensorID:        obs.SensorID,
		LocationName:    obs.LocationName,
		Latitude:        obs.Latitude,
		Longitude:       obs.Longitude,
		AirQualityIndex: obs.AirQualityIndex.Ptr(),
		PM25:            obs.PM25.Ptr(),
		PM10:            obs.PM10.Ptr(),
		NO2:             obs.NO2.Ptr(),
		O3:              obs.O3.Ptr(),
		CO:              obs.CO.Ptr(),
		SO2:             obs.SO2.Ptr(),
		Source:          obs.Source,
		ObservedAt:      obs.ObservedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	obs.ID = m.ID
	obs.CreatedAt = m.CreatedAt
	return nil
}

// FindByID gets an observation by ID
func (r *AirQualityObservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.AirQualityObservation, error) {
	var m models.AirQualityObservation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return airQualityObsToEntity(&m), nil
}

// ListBySensor lists observations of a sensor, newest first
func (r *AirQualityObservationRepository) ListBySensor(ctx context.Context, sensorID uuid.UUID, p utils.PaginationParams) ([]*entities.AirQualityObservation, int64, error) {
	return r.listWhere(ctx, p, "sensor_id = ?", sensorID)
}

// ListRecent lists the most recent observations across sensors
func (r *AirQualityObservationRepository) ListRecent(ctx context.Context, p utils.PaginationParams) ([]*entities.AirQualityObservation, int64, error) {
	return r.listWhere(ctx, p, "")
}

func (r *AirQualityObservationRepository) listWhere(ctx context.Context, p utils.PaginationParams, cond string, args ...interface{}) ([]*entities.AirQualityObservation, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AirQualityObservation{})
	if cond != "" {
		query = query.Where(cond, args...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var obsModels []models.AirQualityObservation
	if err := query.Order("observed_at DESC").
		Offset(p.CalculateOffset()).Limit(p.Limit).
		Find(&obsModels).Error; err != nil {
		return nil, 0, err
	}

	observations := make([]*entities.AirQualityObservation, 0, len(obsModels))
	for i := range obsModels {
		observations = append(observations, airQualityObsToEntity(&obsModels[i]))
	}
	return observations, total, nil
}

func airQualityObsToEntity(m *models.AirQualityObservation) *entities.AirQualityObservation {
	return &entities.AirQualityObservation{
		ID:              m.ID,
		SensorID:        m.SensorID,
		LocationName:    m.LocationName,
		Latitude:        m.Latitude,
		Longitude:       m.Longitude,
		AirQualityIndex: null.Float64FromPtr(m.AirQualityIndex),
		PM25:            null.Float64FromPtr(m.PM25),
		PM10:            null.Float64FromPtr(m.PM10),
		NO2:             null.Float64FromPtr(m.NO2),
		O3:              null.Float64FromPtr(m.O3),
		CO:              null.Float64FromPtr(m.CO),
		SO2:             null.Float64FromPtr(m.SO2),
		Source:          m.Source,
		ObservedAt:      m.ObservedAt,
		CreatedAt:       m.CreatedAt,
	}
}
