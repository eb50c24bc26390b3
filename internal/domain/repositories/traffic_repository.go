package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	"github.com/Hazhaz1412/smart-city-iot/pkg/utils"
)

type TrafficFlowRepository interface {
	Create(ctx context.Context, obs *entities.TrafficFlowObservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.TrafficFlowObservation, error)
	ListRecent(ctx context.Context, p utils.PaginationParams) ([]*entities.TrafficFlowObservation, int64, error)
}

type TrafficIncidentRepository interface {
	Create(ctx context.Context, incident *entities.TrafficIncident) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.TrafficIncident, error)
	List(ctx context.Context, status string) ([]*entities.TrafficIncident, error)
	Update(ctx context.Context, incident *entities.TrafficIncident) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BusStationRepository interface {
	Create(ctx context.Context, station *entities.BusStation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.BusStation, error)
	List(ctx context.Context) ([]*entities.BusStation, error)
	Update(ctx context.Context, station *entities.BusStation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ParkingSpotRepository interface {
	Create(ctx context.Context, spot *entities.ParkingSpot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ParkingSpot, error)
	List(ctx context.Context) ([]*entities.ParkingSpot, error)
	Update(ctx context.Context, spot *entities.ParkingSpot) error
	Delete(ctx context.Context, id uuid.UUID) error
}
