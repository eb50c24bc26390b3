package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	domainerrors "github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
	"github.com/Hazhaz1412/smart-city-iot/internal/domain/repositories"
	"github.com/Hazhaz1412/smart-city-iot/pkg/ngsild"
	"github.com/Hazhaz1412/smart-city-iot/pkg/utils"
)

// TrafficUsecase covers traffic flow observations, incidents, bus stations
// and parking spots. Records are mirrored to the context broker as NGSI-LD
// entities on every write.
type TrafficUsecase struct {
	flowRepo     repositories.TrafficFlowRepository
	incidentRepo repositories.TrafficIncidentRepository
	busRepo      repositories.BusStationRepository
	parkingRepo  repositories.ParkingSpotRepository
	publisher    *EntityPublisher
}

func NewTrafficUsecase(
	flowRepo repositories.TrafficFlowRepository,
	incidentRepo repositories.TrafficIncidentRepository,
	busRepo repositories.BusStationRepository,
	parkingRepo repositories.ParkingSpotRepository,
	publisher *EntityPublisher,
) *TrafficUsecase {
	return &TrafficUsecase{
		flowRepo:     flowRepo,
		incidentRepo: incidentRepo,
		busRepo:      busRepo,
		parkingRepo:  parkingRepo,
		publisher:    publisher,
	}
}

// RecordFlowObservation stores a traffic flow measurement and publishes a
// TrafficFlowObserved entity for it.
func (u *TrafficUsecase) RecordFlowObservation(ctx context.Context, obs *entities.TrafficFlowObservation) error {
	if obs.ObservedAt.IsZero() {
		obs.ObservedAt = time.Now().UTC()
	}
	if obs.ObservationID == "" {
		obs.ObservationID = "traffic-" + obs.ObservedAt.UTC().Format("20060102150405")
	}

	entity, err := ngsild.NewTrafficFlowObserved(
		obs.ObservationID,
		obs.Latitude,
		obs.Longitude,
		obs.Intensity,
		obs.Occupancy.Float64,
		obs.AverageSpeed.Float64,
		obs.ObservedAt,
	)
	if err != nil {
		return domainerrors.BadRequest(err.Error())
	}

	if err := u.flowRepo.Create(ctx, obs); err != nil {
		return err
	}

	u.publisher.Publish(ctx, entity, obs.Latitude, obs.Longitude)
	return nil
}

func (u *TrafficUsecase) GetFlowObservation(ctx context.Context, id uuid.UUID) (*entities.TrafficFlowObservation, error) {
	return u.flowRepo.FindByID(ctx, id)
}

func (u *TrafficUsecase) ListFlowObservations(ctx context.Context, p utils.PaginationParams) ([]*entities.TrafficFlowObservation, int64, error) {
	return u.flowRepo.ListRecent(ctx, p)
}

// Incidents

func (u *TrafficUsecase) SaveIncident(ctx context.Context, incident *entities.TrafficIncident) error {
	if incident.Severity == "" {
		incident.Severity = entities.SeverityLow
	}
	if incident.Status == "" {
		incident.Status = "active"
	}
	if incident.ReportedAt.IsZero() {
		incident.ReportedAt = time.Now().UTC()
	}

	entity, err := ngsild.NewTrafficIncident(ngsild.TrafficIncidentInput{
		EntityID:     incident.EntityID,
		Title:        incident.Title,
		Latitude:     incident.Latitude,
		Longitude:    incident.Longitude,
		IncidentType: incident.IncidentType,
		Severity:     string(incident.Severity),
		Status:       incident.Status,
		Description:  incident.Description,
		ReportedAt:   incident.ReportedAt,
	})
	if err != nil {
		return domainerrors.BadRequest(err.Error())
	}

	if incident.ID == uuid.Nil {
		err = u.incidentRepo.Create(ctx, incident)
	} else {
		err = u.incidentRepo.Update(ctx, incident)
	}
	if err != nil {
		return err
	}

	u.publisher.Publish(ctx, entity, incident.Latitude, incident.Longitude)
	return nil
}

func (u *TrafficUsecase) GetIncident(ctx context.Context, id uuid.UUID) (*entities.TrafficIncident, error) {
	return u.incidentRepo.FindByID(ctx, id)
}

func (u *TrafficUsecase) ListIncidents(ctx context.Context, status string) ([]*entities.TrafficIncident, error) {
	return u.incidentRepo.List(ctx, status)
}

// ResolveIncident marks an incident resolved and re-publishes its entity.
func (u *TrafficUsecase) ResolveIncident(ctx context.Context, id uuid.UUID) (*entities.TrafficIncident, error) {
	incident, err := u.incidentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	incident.Status = "resolved"
	incident.ResolvedAt = &now
	if err := u.SaveIncident(ctx, incident); err != nil {
		return nil, err
	}
	return incident, nil
}

func (u *TrafficUsecase) DeleteIncident(ctx context.Context, id uuid.UUID) error {
	return u.incidentRepo.Delete(ctx, id)
}

// Bus stations

func (u *TrafficUsecase) SaveBusStation(ctx context.Context, station *entities.BusStation) error {
	if station.Status == "" {
		station.Status = "operational"
	}

	entity, err := ngsild.NewBusStation(ngsild.BusStationInput{
		EntityID:             station.EntityID,
		Name:                 station.Name,
		Latitude:             station.Latitude,
		Longitude:            station.Longitude,
		StationType:          station.StationType,
		Status:               station.Status,
		Routes:               station.Routes,
		HasShelter:           station.HasShelter,
		WheelchairAccessible: station.WheelchairAccessible,
	})
	if err != nil {
		return domainerrors.BadRequest(err.Error())
	}

	if station.ID == uuid.Nil {
		err = u.busRepo.Create(ctx, station)
	} else {
		err = u.busRepo.Update(ctx, station)
	}
	if err != nil {
		return err
	}

	u.publisher.Publish(ctx, entity, station.Latitude, station.Longitude)
	return nil
}

func (u *TrafficUsecase) GetBusStation(ctx context.Context, id uuid.UUID) (*entities.BusStation, error) {
	return u.busRepo.FindByID(ctx, id)
}

func (u *TrafficUsecase) ListBusStations(ctx context.Context) ([]*entities.BusStation, error) {
	return u.busRepo.List(ctx)
}

func (u *TrafficUsecase) DeleteBusStation(ctx context.Context, id uuid.UUID) error {
	return u.busRepo.Delete(ctx, id)
}

// Parking spots

func (u *TrafficUsecase) SaveParkingSpot(ctx context.Context, spot *entities.ParkingSpot) error {
	if spot.Status == "" {
		spot.Status = "open"
	}

	entity, err := ngsild.NewParkingSpot(ngsild.ParkingSpotInput{
		EntityID:        spot.EntityID,
		Name:            spot.Name,
		Latitude:        spot.Latitude,
		Longitude:       spot.Longitude,
		ParkingType:     spot.ParkingType,
		Status:          spot.Status,
		TotalSpaces:     spot.TotalSpaces,
		AvailableSpaces: spot.AvailableSpaces,
		PricePerHour:    spot.PricePerHour,
		Currency:        spot.Currency,
		ObservedAt:      time.Now().UTC(),
	})
	if err != nil {
		return domainerrors.BadRequest(err.Error())
	}

	if spot.ID == uuid.Nil {
		err = u.parkingRepo.Create(ctx, spot)
	} else {
		err = u.parkingRepo.Update(ctx, spot)
	}
	if err != nil {
		return err
	}

	u.publisher.Publish(ctx, entity, spot.Latitude, spot.Longitude)
	return nil
}

func (u *TrafficUsecase) GetParkingSpot(ctx context.Context, id uuid.UUID) (*entities.ParkingSpot, error) {
	return u.parkingRepo.FindByID(ctx, id)
}

func (u *TrafficUsecase) ListParkingSpots(ctx context.Context) ([]*entities.ParkingSpot, error) {
	return u.parkingRepo.List(ctx)
}

func (u *TrafficUsecase) DeleteParkingSpot(ctx context.Context, id uuid.UUID) error {
	return u.parkingRepo.Delete(ctx, id)
}
