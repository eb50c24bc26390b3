package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	domainerrors "github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
	"github.com/Hazhaz1412/smart-city-iot/internal/infrastructure/models"
	"github.com/Hazhaz1412/smart-city-iot/pkg/utils"
)

// TrafficFlowRepository implements traffic flow measurement storage
type TrafficFlowRepository struct {
	db *gorm.DB
}

func NewTrafficFlowRepository(db *gorm.DB) *TrafficFlowRepository {
	return &TrafficFlowRepository{db: db}
}

func (r *TrafficFlowRepository) Create(ctx context.Context, obs *entities.TrafficFlowObservation) error {
	m := &models.TrafficFlowObservation{
		ID:            obs.ID,
		ObservationID: obs.ObservationID,
		Latitude:      obs.Latitude,
		Longitude:     obs.Longitude,
		RoadName:      obs.RoadName,
		Intensity:     obs.Intensity,
		Occupancy:     obs.Occupancy.Ptr(),
		AverageSpeed:  obs.AverageSpeed.Ptr(),
		ObservedAt:    obs.ObservedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	obs.ID = m.ID
	obs.CreatedAt = m.CreatedAt
	return nil
}

func (r *TrafficFlowRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.TrafficFlowObservation, error) {
	var m models.TrafficFlowObservation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return trafficFlowToEntity(&m), nil
}

func (r *TrafficFlowRepository) ListRecent(ctx context.Context, p utils.PaginationParams) ([]*entities.TrafficFlowObservation, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TrafficFlowObservation{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var obsModels []models.TrafficFlowObservation
	if err := query.Order("observed_at DESC").
		Offset(p.CalculateOffset()).Limit(p.Limit).
		Find(&obsModels).Error; err != nil {
		return nil, 0, err
	}

	observations := make([]*entities.TrafficFlowObservation, 0, len(obsModels))
	for i := range obsModels {
		observations = append(observations, trafficFlowToEntity(&obsModels[i]))
	}
	return observations, total, nil
}

func trafficFlowToEntity(m *models.TrafficFlowObservation) *entities.TrafficFlowObservation {
	return &entities.TrafficFlowObservation{
		ID:            m.ID,
		ObservationID: m.ObservationID,
		Latitude:      m.Latitude,
		Longitude:     m.Longitude,
		RoadName:      m.RoadName,
		Intensity:     m.Intensity,
		Occupancy:     null.Float64FromPtr(m.Occupancy),
		AverageSpeed:  null.Float64FromPtr(m.AverageSpeed),
		ObservedAt:    m.ObservedAt,
		CreatedAt:     m.CreatedAt,
	}
}

// TrafficIncidentRepository implements traffic incident storage
type TrafficIncidentRepository struct {
	db *gorm.DB
}

func NewTrafficIncidentRepository(db *gorm.DB) *TrafficIncidentRepository {
	return &TrafficIncidentRepository{db: db}
}

func (r *TrafficIncidentRepository) Create(ctx context.Context, incident *entities.TrafficIncident) error {
	m := &models.TrafficIncident{
		ID:           incident.ID,
		EntityID:     incident.EntityID,
		Title:        incident.Title,
		Latitude:     incident.Latitude,
		Longitude:    incident.Longitude,
		IncidentType: incident.IncidentType,
		Severity:     string(incident.Severity),
		Status:       incident.Status,
		Description:  incident.Description,
		ReportedAt:   incident.ReportedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	incident.ID = m.ID
	incident.CreatedAt = m.CreatedAt
	incident.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *TrafficIncidentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.TrafficIncident, error) {
	var m models.TrafficIncident
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return incidentToEntity(&m), nil
}

func (r *TrafficIncidentRepository) List(ctx context.Context, status string) ([]*entities.TrafficIncident, error) {
	var incidentModels []models.TrafficIncident
	query := r.db.WithContext(ctx).Order("reported_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&incidentModels).Error; err != nil {
		return nil, err
	}

	incidents := make([]*entities.TrafficIncident, 0, len(incidentModels))
	for i := range incidentModels {
		incidents = append(incidents, incidentToEntity(&incidentModels[i]))
	}
	return incidents, nil
}

func (r *TrafficIncidentRepository) Update(ctx context.Context, incident *entities.TrafficIncident) error {
	updates := map[string]interface{}{
		"title":         incident.Title,
		"latitude":      incident.Latitude,
		"longitude":     incident.Longitude,
		"incident_type": incident.IncidentType,
		"severity":      string(incident.Severity),
		"status":        incident.Status,
		"description":   incident.Description,
		"updated_at":    time.Now(),
	}
	if incident.ResolvedAt != nil {
		updates["resolved_at"] = *incident.ResolvedAt
	}

	result := r.db.WithContext(ctx).Model(&models.TrafficIncident{}).
		Where("id = ?", incident.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *TrafficIncidentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.TrafficIncident{}, id)
}

func incidentToEntity(m *models.TrafficIncident) *entities.TrafficIncident {
	return &entities.TrafficIncident{
		ID:           m.ID,
		EntityID:     m.EntityID,
		Title:        m.Title,
		Latitude:     m.Latitude,
		Longitude:    m.Longitude,
		IncidentType: m.IncidentType,
		Severity:     entities.IncidentSeverity(m.Severity),
		Status:       m.Status,
		Description:  m.Description,
		ReportedAt:   m.ReportedAt,
		ResolvedAt:   m.ResolvedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// BusStationRepository implements bus station storage
type BusStationRepository struct {
	db *gorm.DB
}

func NewBusStationRepository(db *gorm.DB) *BusStationRepository {
	return &BusStationRepository{db: db}
}

func (r *BusStationRepository) Create(ctx context.Context, station *entities.BusStation) error {
	routes := ""
	if len(station.Routes) > 0 {
		b, err := json.Marshal(station.Routes)
		if err != nil {
			return err
		}
		routes = string(b)
	}

	m := &models.BusStation{
		ID:                   station.ID,
		EntityID:             station.EntityID,
		Name:                 station.Name,
		Latitude:             station.Latitude,
		Longitude:            station.Longitude,
		StationType:          station.StationType,
		Status:               station.Status,
		Routes:               routes,
		HasShelter:           station.HasShelter,
		WheelchairAccessible: station.WheelchairAccessible,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	station.ID = m.ID
	station.CreatedAt = m.CreatedAt
	station.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *BusStationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.BusStation, error) {
	var m models.BusStation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return busStationToEntity(&m), nil
}

func (r *BusStationRepository) List(ctx context.Context) ([]*entities.BusStation, error) {
	var stationModels []models.BusStation
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&stationModels).Error; err != nil {
		return nil, err
	}
	stations := make([]*entities.BusStation, 0, len(stationModels))
	for i := range stationModels {
		stations = append(stations, busStationToEntity(&stationModels[i]))
	}
	return stations, nil
}

func (r *BusStationRepository) Update(ctx context.Context, station *entities.BusStation) error {
	routes := ""
	if len(station.Routes) > 0 {
		b, err := json.Marshal(station.Routes)
		if err != nil {
			return err
		}
		routes = string(b)
	}

	result := r.db.WithContext(ctx).Model(&models.BusStation{}).
		Where("id = ?", station.ID).
		Updates(map[string]interface{}{
			"name":                  station.Name,
			"latitude":              station.Latitude,
			"longitude":             station.Longitude,
			"station_type":          station.StationType,
			"status":                station.Status,
			"routes":                routes,
			"has_shelter":           station.HasShelter,
			"wheelchair_accessible": station.WheelchairAccessible,
			"updated_at":            time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *BusStationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.BusStation{}, id)
}

func busStationToEntity(m *models.BusStation) *entities.BusStation {
	var routes []string
	if m.Routes != "" {
		_ = json.Unmarshal([]byte(m.Routes), &routes)
	}

	return &entities.BusStation{
		ID:                   m.ID,
		EntityID:             m.EntityID,
		Name:                 m.Name,
		Latitude:             m.Latitude,
		Longitude:            m.Longitude,
		StationType:          m.StationType,
		Status:               m.Status,
		Routes:               routes,
		HasShelter:           m.HasShelter,
		WheelchairAccessible: m.WheelchairAccessible,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// ParkingSpotRepository implements parking facility storage
type ParkingSpotRepository struct {
	db *gorm.DB
}

func NewParkingSpotRepository(db *gorm.DB) *ParkingSpotRepository {
	return &ParkingSpotRepository{db: db}
}

func (r *ParkingSpotRepository) Create(ctx context.Context, spot *entities.ParkingSpot) error {
	m := &models.ParkingSpot{
		ID:              spot.ID,
		EntityID:        spot.EntityID,
		Name:            spot.Name,
		Latitude:        spot.Latitude,
		Longitude:       spot.Longitude,
		ParkingType:     spot.ParkingType,
		Status:          spot.Status,
		TotalSpaces:     spot.TotalSpaces,
		AvailableSpaces: spot.AvailableSpaces,
		PricePerHour:    spot.PricePerHour.Ptr(),
		Currency:        spot.Currency,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	spot.ID = m.ID
	spot.CreatedAt = m.CreatedAt
	spot.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *ParkingSpotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ParkingSpot, error) {
	var m models.ParkingSpot
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return parkingSpotToEntity(&m), nil
}

func (r *ParkingSpotRepository) List(ctx context.Context) ([]*entities.ParkingSpot, error) {
	var spotModels []models.ParkingSpot
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&spotModels).Error; err != nil {
		return nil, err
	}
	spots := make([]*entities.ParkingSpot, 0, len(spotModels))
	for i := range spotModels {
		spots = append(spots, parkingSpotToEntity(&spotModels[i]))
	}
	return spots, nil
}

func (r *ParkingSpotRepository) Update(ctx context.Context, spot *entities.ParkingSpot) error {
	result := r.db.WithContext(ctx).Model(&models.ParkingSpot{}).
		Where("id = ?", spot.ID).
		Updates(map[string]interface{}{
			"name":             spot.Name,
			"latitude":         spot.Latitude,
			"longitude":        spot.Longitude,
			"parking_type":     spot.ParkingType,
			"status":           spot.Status,
			"total_spaces":     spot.TotalSpaces,
			"available_spaces": spot.AvailableSpaces,
			"price_per_hour":   spot.PricePerHour.Ptr(),
			"currency":         spot.Currency,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ParkingSpotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.ParkingSpot{}, id)
}

func parkingSpotToEntity(m *models.ParkingSpot) *entities.ParkingSpot {
	return &entities.ParkingSpot{
		ID:              m.ID,
		EntityID:        m.EntityID,
		Name:            m.Name,
		Latitude:        m.Latitude,
		Longitude:       m.Longitude,
		ParkingType:     m.ParkingType,
		Status:          m.Status,
		TotalSpaces:     m.TotalSpaces,
		AvailableSpaces: m.AvailableSpaces,
		PricePerHour:    null.Float64FromPtr(m.PricePerHour),
		Currency:        m.Currency,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
