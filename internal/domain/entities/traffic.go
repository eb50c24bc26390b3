package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TrafficFlowObservation is a point-in-time traffic flow measurement
type TrafficFlowObservation struct {
	ID            uuid.UUID    `json:"id"`
	ObservationID string       `json:"observationId"`
	Latitude      float64      `json:"latitude"`
	Longitude     float64      `json:"longitude"`
	RoadName      string       `json:"roadName,omitempty"`
	Intensity     int          `json:"intensity"`
	Occupancy     null.Float64 `json:"occupancy,omitempty"`
	AverageSpeed  null.Float64 `json:"averageSpeed,omitempty"`
	ObservedAt    time.Time    `json:"observedAt"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// IncidentSeverity classifies traffic incidents
type IncidentSeverity string

const (
	SeverityLow      IncidentSeverity = "low"
	SeverityMedium   IncidentSeverity = "medium"
	SeverityHigh     IncidentSeverity = "high"
	SeverityCritical IncidentSeverity = "critical"
)

// TrafficIncident represents a reported traffic incident
type TrafficIncident struct {
	ID           uuid.UUID        `json:"id"`
	EntityID     string           `json:"entityId"`
	Title        string           `json:"title"`
	Latitude     float64          `json:"latitude"`
	Longitude    float64          `json:"longitude"`
	IncidentType string           `json:"incidentType,omitempty"`
	Severity     IncidentSeverity `json:"severity"`
	Status       string           `json:"status"`
	Description  string           `json:"description,omitempty"`
	ReportedAt   time.Time        `json:"reportedAt"`
	ResolvedAt   *time.Time       `json:"resolvedAt,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// BusStation represents a bus station or stop
type BusStation struct {
	ID                   uuid.UUID `json:"id"`
	EntityID             string    `json:"entityId"`
	Name                 string    `json:"name"`
	Latitude             float64   `json:"latitude"`
	Longitude            float64   `json:"longitude"`
	StationType          string    `json:"stationType,omitempty"`
	Status               string    `json:"status"`
	Routes               []string  `json:"routes,omitempty"`
	HasShelter           bool      `json:"hasShelter"`
	WheelchairAccessible bool      `json:"wheelchairAccessible"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// ParkingSpot represents a parking facility and its availability
type ParkingSpot struct {
	ID              uuid.UUID    `json:"id"`
	EntityID        string       `json:"entityId"`
	Name            string       `json:"name"`
	Latitude        float64      `json:"latitude"`
	Longitude       float64      `json:"longitude"`
	ParkingType     string       `json:"parkingType,omitempty"`
	Status          string       `json:"status"`
	TotalSpaces     int          `json:"totalSpaces"`
	AvailableSpaces int          `json:"availableSpaces"`
	PricePerHour    null.Float64 `json:"pricePerHour,omitempty"`
	Currency        string       `json:"currency,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}
