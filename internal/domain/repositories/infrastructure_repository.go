package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
)

type WaterSupplyPointRepository interface {
	Create(ctx context.Context, point *entities.WaterSupplyPoint) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.WaterSupplyPoint, error)
	List(ctx context.Context) ([]*entities.WaterSupplyPoint, error)
	Update(ctx context.Context, point *entities.WaterSupplyPoint) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type DrainagePointRepository interface {
	Create(ctx context.Context, point *entities.DrainagePoint) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.DrainagePoint, error)
	List(ctx context.Context) ([]*entities.DrainagePoint, error)
	Update(ctx context.Context, point *entities.DrainagePoint) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type StreetLightRepository interface {
	Create(ctx context.Context, light *entities.StreetLight) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.StreetLight, error)
	List(ctx context.Context) ([]*entities.StreetLight, error)
	Update(ctx context.Context, light *entities.StreetLight) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type EnergyMeterRepository interface {
	Create(ctx context.Context, meter *entities.EnergyMeter) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.EnergyMeter, error)
	List(ctx context.Context) ([]*entities.EnergyMeter, error)
	Update(ctx context.Context, meter *entities.EnergyMeter) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TelecomTowerRepository interface {
	Create(ctx context.Context, tower *entities.TelecomTower) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.TelecomTower, error)
	List(ctx context.Context) ([]*entities.TelecomTower, error)
	Update(ctx context.Context, tower *entities.TelecomTower) error
	Delete(ctx context.Context, id uuid.UUID) error
}
