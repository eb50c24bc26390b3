package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	"github.com/Hazhaz1412/smart-city-iot/pkg/utils"
)

type WeatherObservationRepository interface {
	Create(ctx context.Context, obs *entities.WeatherObservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.WeatherObservation, error)
	ListByStation(ctx context.Context, stationID uuid.UUID, p utils.PaginationParams) ([]*entities.WeatherObservation, int64, error)
	ListRecent(ctx context.Context, p utils.PaginationParams) ([]*entities.WeatherObservation, int64, error)
}

type AirQualityObservationRepository interface {
	Create(ctx context.Context, obs *entities.AirQualityObservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.AirQualityObservation, error)
	ListBySensor(ctx context.Context, sensorID uuid.UUID, p utils.PaginationParams) ([]*entities.AirQualityObservation, int64, error)
	ListRecent(ctx context.Context, p utils.PaginationParams) ([]*entities.AirQualityObservation, int64, error)
}
