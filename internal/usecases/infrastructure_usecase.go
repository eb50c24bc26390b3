package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	domainerrors "github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
	"github.com/Hazhaz1412/smart-city-iot/internal/domain/repositories"
	"github.com/Hazhaz1412/smart-city-iot/pkg/ngsild"
)

// InfrastructureUsecase manages city infrastructure assets. Every create and
// update rebuilds the asset's NGSI-LD entity and pushes it to the broker.
type InfrastructureUsecase struct {
	waterRepo repositories.WaterSupplyPointRepository
	drainRepo repositories.DrainagePointRepository
	lightRepo repositories.StreetLightRepository
	meterRepo repositories.EnergyMeterRepository
	towerRepo repositories.TelecomTowerRepository
	publisher *EntityPublisher
}

func NewInfrastructureUsecase(
	waterRepo repositories.WaterSupplyPointRepository,
	drainRepo repositories.DrainagePointRepository,
	lightRepo repositories.StreetLightRepository,
	meterRepo repositories.EnergyMeterRepository,
	towerRepo repositories.TelecomTowerRepository,
	publisher *EntityPublisher,
) *InfrastructureUsecase {
	return &InfrastructureUsecase{
		waterRepo: waterRepo,
		drainRepo: drainRepo,
		lightRepo: lightRepo,
		meterRepo: meterRepo,
		towerRepo: towerRepo,
		publisher: publisher,
	}
}

func defaultStatus(status entities.InfrastructureStatus) entities.InfrastructureStatus {
	if status == "" {
		return entities.StatusOperational
	}
	return status
}

func lastReading(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// Water supply points

func (u *InfrastructureUsecase) SaveWaterSupplyPoint(ctx context.Context, point *entities.WaterSupplyPoint) error {
	point.Status = defaultStatus(point.Status)

	entity, err := ngsild.NewWaterSupplyPoint(ngsild.WaterSupplyPointInput{
		EntityID:      point.EntityID,
		Name:          point.Name,
		Latitude:      point.Latitude,
		Longitude:     point.Longitude,
		PointType:     point.PointType,
		Status:        string(point.Status),
		Capacity:      point.Capacity,
		CurrentLevel:  point.CurrentLevel,
		FlowRate:      point.FlowRate,
		Pressure:      point.Pressure,
		PHLevel:       point.PHLevel,
		ChlorineLevel: point.ChlorineLevel,
		Turbidity:     point.Turbidity,
		LastReadingAt: lastReading(point.LastReadingAt),
	})
	if err != nil {
		return domainerrors.BadRequest(err.Error())
	}

	if point.ID == uuid.Nil {
		err = u.waterRepo.Create(ctx, point)
	} else {
		err = u.waterRepo.Update(ctx, point)
	}
	if err != nil {
		return err
	}

	u.publisher.Publish(ctx, entity, point.Latitude, point.Longitude)
	return nil
}

func (u *InfrastructureUsecase) GetWaterSupplyPoint(ctx context.Context, id uuid.UUID) (*entities.WaterSupplyPoint, error) {
	return u.waterRepo.FindByID(ctx, id)
}

func (u *InfrastructureUsecase) ListWaterSupplyPoints(ctx context.Context) ([]*entities.WaterSupplyPoint, error) {
	return u.waterRepo.List(ctx)
}

func (u *InfrastructureUsecase) DeleteWaterSupplyPoint(ctx context.Context, id uuid.UUID) error {
	return u.waterRepo.Delete(ctx, id)
}

// Drainage points

func (u *InfrastructureUsecase) SaveDrainagePoint(ctx context.Context, point *entities.DrainagePoint) error {
	point.Status = defaultStatus(point.Status)

	entity, err := ngsild.NewDrainagePoint(ngsild.DrainagePointInput{
		EntityID:      point.EntityID,
		Name:          point.Name,
		Latitude:      point.Latitude,
		Longitude:     point.Longitude,
		PointType:     point.PointType,
		Status:        string(point.Status),
		FloodRisk:     point.FloodRisk,
		Capacity:      point.Capacity,
		CurrentLevel:  point.CurrentLevel,
		FlowRate:      point.FlowRate,
		LastReadingAt: lastReading(point.LastReadingAt),
	})
	if err != nil {
		return domainerrors.BadRequest(err.Error())
	}

	if point.ID == uuid.Nil {
		err = u.drainRepo.Create(ctx, point)
	} else {
		err = u.drainRepo.Update(ctx, point)
	}
	if err != nil {
		return err
	}

	u.publisher.Publish(ctx, entity, point.Latitude, point.Longitude)
	return nil
}

func (u *InfrastructureUsecase) GetDrainagePoint(ctx context.Context, id uuid.UUID) (*entities.DrainagePoint, error) {
	return u.drainRepo.FindByID(ctx, id)
}

func (u *InfrastructureUsecase) ListDrainagePoints(ctx context.Context) ([]*entities.DrainagePoint, error) {
	return u.drainRepo.List(ctx)
}

func (u *InfrastructureUsecase) DeleteDrainagePoint(ctx context.Context, id uuid.UUID) error {
	return u.drainRepo.Delete(ctx, id)
}

// Street lights

func (u *InfrastructureUsecase) SaveStreetLight(ctx context.Context, light *entities.StreetLight) error {
	light.Status = defaultStatus(light.Status)

	entity, err := ngsild.NewStreetLight(ngsild.StreetLightInput{
		EntityID:            light.EntityID,
		Name:                light.Name,
		Latitude:            light.Latitude,
		Longitude:           light.Longitude,
		LampType:            light.LampType,
		Status:              string(light.Status),
		PowerRating:         light.PowerRating,
		BrightnessLevel:     light.BrightnessLevel,
		EnergyConsumedToday: light.EnergyConsumedToday,
		OperatingHours:      light.OperatingHours,
		IsSmart:             light.IsSmart,
		LastReadingAt:       lastReading(light.LastReadingAt),
	})
	if err != nil {
		return domainerrors.BadRequest(err.Error())
	}

	if light.ID == uuid.Nil {
		err = u.lightRepo.Create(ctx, light)
	} else {
		err = u.lightRepo.Update(ctx, light)
	}
	if err != nil {
		return err
	}

	u.publisher.Publish(ctx, entity, light.Latitude, light.Longitude)
	return nil
}

func (u *InfrastructureUsecase) GetStreetLight(ctx context.Context, id uuid.UUID) (*entities.StreetLight, error) {
	return u.lightRepo.FindByID(ctx, id)
}

func (u *InfrastructureUsecase) ListStreetLights(ctx context.Context) ([]*entities.StreetLight, error) {
	return u.lightRepo.List(ctx)
}

func (u *InfrastructureUsecase) DeleteStreetLight(ctx context.Context, id uuid.UUID) error {
	return u.lightRepo.Delete(ctx, id)
}

// Energy meters

func (u *InfrastructureUsecase) SaveEnergyMeter(ctx context.Context, meter *entities.EnergyMeter) error {
	meter.Status = defaultStatus(meter.Status)

	entity, err := ngsild.NewEnergyMeter(ngsild.EnergyMeterInput{
		EntityID:         meter.EntityID,
		Name:             meter.Name,
		Latitude:         meter.Latitude,
		Longitude:        meter.Longitude,
		MeterType:        meter.MeterType,
		Status:           string(meter.Status),
		CurrentPower:     meter.CurrentPower,
		Voltage:          meter.Voltage,
		Current:          meter.Current,
		PowerFactor:      meter.PowerFactor,
		Frequency:        meter.Frequency,
		TodayConsumption: meter.TodayConsumption,
		MonthConsumption: meter.MonthConsumption,
		LastReadingAt:    lastReading(meter.LastReadingAt),
	})
	if err != nil {
		return domainerrors.BadRequest(err.Error())
	}

	if meter.ID == uuid.Nil {
		err = u.meterRepo.Create(ctx, meter)
	} else {
		err = u.meterRepo.Update(ctx, meter)
	}
	if err != nil {
		return err
	}

	u.publisher.Publish(ctx, entity, meter.Latitude, meter.Longitude)
	return nil
}

func (u *InfrastructureUsecase) GetEnergyMeter(ctx context.Context, id uuid.UUID) (*entities.EnergyMeter, error) {
	return u.meterRepo.FindByID(ctx, id)
}

func (u *InfrastructureUsecase) ListEnergyMeters(ctx context.Context) ([]*entities.EnergyMeter, error) {
	return u.meterRepo.List(ctx)
}

func (u *InfrastructureUsecase) DeleteEnergyMeter(ctx context.Context, id uuid.UUID) error {
	return u.meterRepo.Delete(ctx, id)
}

// Telecom towers

func (u *InfrastructureUsecase) SaveTelecomTower(ctx context.Context, tower *entities.TelecomTower) error {
	tower.Status = defaultStatus(tower.Status)

	entity, err := ngsild.NewTelecomTower(ngsild.TelecomTowerInput{
		EntityID:          tower.EntityID,
		Name:              tower.Name,
		Latitude:          tower.Latitude,
		Longitude:         tower.Longitude,
		TowerType:         tower.TowerType,
		Status:            string(tower.Status),
		Height:            tower.Height,
		CoverageRadius:    tower.CoverageRadius,
		ActiveConnections: tower.ActiveConnections,
		MaxConnections:    tower.MaxConnections,
		BandwidthUsage:    tower.BandwidthUsage,
		SignalStrength:    tower.SignalStrength,
		LastReadingAt:     lastReading(tower.LastReadingAt),
	})
	if err != nil {
		return domainerrors.BadRequest(err.Error())
	}

	if tower.ID == uuid.Nil {
		err = u.towerRepo.Create(ctx, tower)
	} else {
		err = u.towerRepo.Update(ctx, tower)
	}
	if err != nil {
		return err
	}

	u.publisher.Publish(ctx, entity, tower.Latitude, tower.Longitude)
	return nil
}

func (u *InfrastructureUsecase) GetTelecomTower(ctx context.Context, id uuid.UUID) (*entities.TelecomTower, error) {
	return u.towerRepo.FindByID(ctx, id)
}

func (u *InfrastructureUsecase) ListTelecomTowers(ctx context.Context) ([]*entities.TelecomTower, error) {
	return u.towerRepo.List(ctx)
}

func (u *InfrastructureUsecase) DeleteTelecomTower(ctx context.Context, id uuid.UUID) error {
	return u.towerRepo.Delete(ctx, id)
}
