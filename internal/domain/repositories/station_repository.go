package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
)

type WeatherStationRepository interface {
	Create(ctx context.Context, station *entities.WeatherStation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.WeatherStation, error)
	FindByStationID(ctx context.Context, stationID string) (*entities.WeatherStation, error)
	ListActive(ctx context.Context) ([]*entities.WeatherStation, error)
	List(ctx context.Context) ([]*entities.WeatherStation, error)
	Update(ctx context.Context, station *entities.WeatherStation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type AirQualitySensorRepository interface {
	Create(ctx context.Context, sensor *entities.AirQualitySensor) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.AirQualitySensor, error)
	FindBySensorID(ctx context.Context, sensorID string) (*entities.AirQualitySensor, error)
	ListActive(ctx context.Context) ([]*entities.AirQualitySensor, error)
	List(ctx context.Context) ([]*entities.AirQualitySensor, error)
	Update(ctx context.Context, sensor *entities.AirQualitySensor) error
	Delete(ctx context.Context, id uuid.UUID) error
}
