package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	domainerrors "github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
	"github.com/Hazhaz1412/smart-city-iot/internal/infrastructure/models"
)

// WeatherStationRepository implements weather station storage
type WeatherStationRepository struct {
	db *gorm.DB
}

// NewWeatherStationRepository creates a new weather station repository
func NewWeatherStationRepository(db *gorm.DB) *WeatherStationRepository {
	return &WeatherStationRepository{db: db}
}

// Create registers a new station
func (r *WeatherStationRepository) Create(ctx context.Context, station *entities.WeatherStation) error {
	m := &models.WeatherStation{
		ID:        station.ID,
		StationID: station.StationID,
		Name:      station.Name,
		Latitude:  station.Latitude,
		Longitude: station.Longitude,
		Address:   station.Address,
		IsActive:  station.IsActive,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	station.ID = m.ID
	station.CreatedAt = m.CreatedAt
	station.UpdatedAt = m.UpdatedAt
	return nil
}

// FindByID gets a station by ID
func (r *WeatherStationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.WeatherStation, error) {
	var m models.WeatherStation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return weatherStationToEntity(&m), nil
}

// FindByStationID gets a station by its external identifier
func (r *WeatherStationRepository) FindByStationID(ctx context.Context, stationID string) (*entities.WeatherStation, error) {
	var m models.WeatherStation
	if err := r.db.WithContext(ctx).Where("station_id = ?", stationID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return weatherStationToEntity(&m), nil
}

// ListActive lists stations eligible for periodic sync
func (r *WeatherStationRepository) ListActive(ctx context.Context) ([]*entities.WeatherStation, error) {
	return r.list(ctx, true)
}

// List lists all stations
func (r *WeatherStationRepository) List(ctx context.Context) ([]*entities.WeatherStation, error) {
	return r.list(ctx, false)
}

func (r *WeatherStationRepository) list(ctx context.Context, activeOnly bool) ([]*entities.WeatherStation, error) {
	var stationModels []models.WeatherStation
	query := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&stationModels).Error; err != nil {
		return nil, err
	}

	stations := make([]*entities.WeatherStation, 0, len(stationModels))
	for i := range stationModels {
		stations = append(stations, weatherStationToEntity(&stationModels[i]))
	}
	return stations, nil
}

// Update updates a station
func (r *WeatherStationRepository) Update(ctx context.Context, station *entities.WeatherStation) error {
	result := r.db.WithContext(ctx).Model(&models.WeatherStation{}).
		Where("id = ?", station.ID).
		Updates(map[string]interface{}{
			"name":       station.Name,
			"latitude":   station.Latitude,
			"longitude":  station.Longitude,
			"address":    station.Address,
			"is_active":  station.IsActive,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete soft deletes a station
func (r *WeatherStationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.WeatherStation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func weatherStationToEntity(m *models.WeatherStation) *entities.WeatherStation {
	return &entities.WeatherStation{
		ID:        m.ID,
		StationID: m.StationID,
		Name:      m.Name,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		Address:   m.Address,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// AirQualitySensorRepository implements air quality sensor storage
type AirQualitySensorRepository struct {
	db *gorm.DB
}

// NewAirQualitySensorRepository creates a new air quality sensor repository
func NewAirQualitySensorRepository(db *gorm.DB) *AirQualitySensorRepository {
	return &AirQualitySensorRepository{db: db}
}

// Create registers a new sensor
func (r *AirQualitySensorRepository) Create(ctx context.Context, sensor *entities.AirQualitySensor) error {
	m := &models.AirQualitySensor{
		ID:        sensor.ID,
		SensorID:  sensor.SensorID,
		Name:      sensor.Name,
		Latitude:  sensor.Latitude,
		Longitude: sensor.Longitude,
		Address:   sensor.Address,
		IsActive:  sensor.IsActive,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	sensor.ID = m.ID
	sensor.CreatedAt = m.CreatedAt
	sensor.UpdatedAt = m.UpdatedAt
	return nil
}

// FindByID gets a sensor by ID
func (r *AirQualitySensorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.AirQualitySensor, error) {
	var m models.AirQualitySensor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return sensorToEntity(&m), nil
}

// FindBySensorID gets a sensor by its external identifier
func (r *AirQualitySensorRepository) FindBySensorID(ctx context.Context, sensorID string) (*entities.AirQualitySensor, error) {
	var m models.AirQualitySensor
	if err := r.db.WithContext(ctx).Where("sensor_id = ?", sensorID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return sensorToEntity(&m), nil
}

// ListActive lists sensors eligible for periodic sync
func (r *AirQualitySensorRepository) ListActive(ctx context.Context) ([]*entities.AirQualitySensor, error) {
	return r.list(ctx, true)
}

// List lists all sensors
func (r *AirQualitySensorRepository) List(ctx context.Context) ([]*entities.AirQualitySensor, error) {
	return r.list(ctx, false)
}

func (r *AirQualitySensorRepository) list(ctx context.Context, activeOnly bool) ([]*entities.AirQualitySensor, error) {
	var sensorModels []models.AirQualitySensor
	query := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&sensorModels).Error; err != nil {
		return nil, err
	}

	sensors := make([]*entities.AirQualitySensor, 0, len(sensorModels))
	for i := range sensorModels {
		sensors = append(sensors, sensorToEntity(&sensorModels[i]))
	}
	return sensors, nil
}

// Update updates a sensor
func (r *AirQualitySensorRepository) Update(ctx context.Context, sensor *entities.AirQualitySensor) error {
	result := r.db.WithContext(ctx).Model(&models.AirQualitySensor{}).
		Where("id = ?", sensor.ID).
		Updates(map[string]interface{}{
			"name":       sensor.Name,
			"latitude":   sensor.Latitude,
			"longitude":  sensor.Longitude,
			"address":    sensor.Address,
			"is_active":  sensor.IsActive,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete soft deletes a sensor
func (r *AirQualitySensorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AirQualitySensor{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func sensorToEntity(m *models.AirQualitySensor) *entities.AirQualitySensor {
	return &entities.AirQualitySensor{
		ID:        m.ID,
		SensorID:  m.SensorID,
		Name:      m.Name,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		Address:   m.Address,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
