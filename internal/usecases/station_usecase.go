package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	domainerrors "github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
	"github.com/Hazhaz1412/smart-city-iot/internal/domain/repositories"
	"github.com/Hazhaz1412/smart-city-iot/pkg/ngsild"
)

// StationUsecase manages weather stations and air quality sensors.
// Registering one also builds its NGSI-LD entity and pushes it to the broker.
type StationUsecase struct {
	stationRepo repositories.WeatherStationRepository
	sensorRepo  repositories.AirQualitySensorRepository
	publisher   *EntityPublisher
}

func NewStationUsecase(
	stationRepo repositories.WeatherStationRepository,
	sensorRepo repositories.AirQualitySensorRepository,
	publisher *EntityPublisher,
) *StationUsecase {
	return &StationUsecase{
		stationRepo: stationRepo,
		sensorRepo:  sensorRepo,
		publisher:   publisher,
	}
}

func (u *StationUsecase) CreateWeatherStation(ctx context.Context, input *entities.CreateStationInput) (*entities.WeatherStation, error) {
	if _, err := u.stationRepo.FindByStationID(ctx, input.StationID); err == nil {
		return nil, domainerrors.Conflict("station id already registered")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	station := &entities.WeatherStation{
		StationID: input.StationID,
		Name:      input.Name,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Address:   input.Address,
		IsActive:  isActive,
	}

	entity, err := ngsild.NewWeatherStation(station.StationID, station.Name, station.Latitude, station.Longitude, station.Address)
	if err != nil {
		return nil, domainerrors.BadRequest(err.Error())
	}

	if err := u.stationRepo.Create(ctx, station); err != nil {
		return nil, err
	}

	u.publisher.Publish(ctx, entity, station.Latitude, station.Longitude)
	return station, nil
}

func (u *StationUsecase) GetWeatherStation(ctx context.Context, id uuid.UUID) (*entities.WeatherStation, error) {
	return u.stationRepo.FindByID(ctx, id)
}

func (u *StationUsecase) ListWeatherStations(ctx context.Context, activeOnly bool) ([]*entities.WeatherStation, error) {
	if activeOnly {
		return u.stationRepo.ListActive(ctx)
	}
	return u.stationRepo.List(ctx)
}

func (u *StationUsecase) UpdateWeatherStation(ctx context.Context, id uuid.UUID, input *entities.CreateStationInput) (*entities.WeatherStation, error) {
	station, err := u.stationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	station.Name = input.Name
	station.Latitude = input.Latitude
	station.Longitude = input.Longitude
	station.Address = input.Address
	if input.IsActive != nil {
		station.IsActive = *input.IsActive
	}

	entity, err := ngsild.NewWeatherStation(station.StationID, station.Name, station.Latitude, station.Longitude, station.Address)
	if err != nil {
		return nil, domainerrors.BadRequest(err.Error())
	}

	if err := u.stationRepo.Update(ctx, station); err != nil {
		return nil, err
	}

	u.publisher.Publish(ctx, entity, station.Latitude, station.Longitude)
	return station, nil
}

func (u *StationUsecase) DeleteWeatherStation(ctx context.Context, id uuid.UUID) error {
	return u.stationRepo.Delete(ctx, id)
}

func (u *StationUsecase) CreateAirQualitySensor(ctx context.Context, input *entities.CreateStationInput) (*entities.AirQualitySensor, error) {
	if _, err := u.sensorRepo.FindBySensorID(ctx, input.StationID); err == nil {
		return nil, domainerrors.Conflict("sensor id already registered")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	sensor := &entities.AirQualitySensor{
		SensorID:  input.StationID,
		Name:      input.Name,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Address:   input.Address,
		IsActive:  isActive,
	}

	entity, err := ngsild.NewAirQualitySensor(sensor.SensorID, sensor.Name, sensor.Latitude, sensor.Longitude)
	if err != nil {
		return nil, domainerrors.BadRequest(err.Error())
	}

	if err := u.sensorRepo.Create(ctx, sensor); err != nil {
		return nil, err
	}

	u.publisher.Publish(ctx, entity, sensor.Latitude, sensor.Longitude)
	return sensor, nil
}

func (u *StationUsecase) GetAirQualitySensor(ctx context.Context, id uuid.UUID) (*entities.AirQualitySensor, error) {
	return u.sensorRepo.FindByID(ctx, id)
}

func (u *StationUsecase) ListAirQualitySensors(ctx context.Context, activeOnly bool) ([]*entities.AirQualitySensor, error) {
	if activeOnly {
		return u.sensorRepo.ListActive(ctx)
	}
	return u.sensorRepo.List(ctx)
}

func (u *StationUsecase) UpdateAirQualitySensor(ctx context.Context, id uuid.UUID, input *entities.CreateStationInput) (*entities.AirQualitySensor, error) {
	sensor, err := u.sensorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sensor.Name = input.Name
	sensor.Latitude = input.Latitude
	sensor.Longitude = input.Longitude
	sensor.Address = input.Address
	if input.IsActive != nil {
		sensor.IsActive = *input.IsActive
	}

	entity, err := ngsild.NewAirQualitySensor(sensor.SensorID, sensor.Name, sensor.Latitude, sensor.Longitude)
	if err != nil {
		return nil, domainerrors.BadRequest(err.Error())
	}

	if err := u.sensorRepo.Update(ctx, sensor); err != nil {
		return nil, err
	}

	u.publisher.Publish(ctx, entity, sensor.Latitude, sensor.Longitude)
	return sensor, nil
}

func (u *StationUsecase) DeleteAirQualitySensor(ctx context.Context, id uuid.UUID) error {
	return u.sensorRepo.Delete(ctx, id)
}
