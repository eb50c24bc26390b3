package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrafficFlowObservation struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ObservationID string    `gorm:"type:varchar(100);not null;index"`
	Latitude      float64   `gorm:"not null"`
	Longitude     float64   `gorm:"not null"`
	RoadName      string    `gorm:"type:varchar(200)"`
	Intensity     int       `gorm:"not null"`
	Occupancy     *float64
	AverageSpeed  *float64
	ObservedAt    time.Time `gorm:"not null;index"`
	CreatedAt     time.Time
}

func (TrafficFlowObservation) TableName() string {
	return "traffic_flow_observations"
}

type TrafficIncident struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	EntityID     string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Title        string    `gorm:"type:varchar(200);not null"`
	Latitude     float64   `gorm:"not null"`
	Longitude    float64   `gorm:"not null"`
	IncidentType string    `gorm:"type:varchar(50)"`
	Severity     string    `gorm:"type:varchar(20);not null;default:'low'"`
	Status       string    `gorm:"type:varchar(30);not null;default:'reported'"`
	Description  string    `gorm:"type:text"`
	ReportedAt   time.Time `gorm:"not null"`
	ResolvedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (TrafficIncident) TableName() string {
	return "traffic_incidents"
}

type BusStation struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	EntityID             string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name                 string    `gorm:"type:varchar(200);not null"`
	Latitude             float64   `gorm:"not null"`
	Longitude            float64   `gorm:"not null"`
	StationType          string    `gorm:"type:varchar(50)"`
	Status               string    `gorm:"type:varchar(30);not null;default:'operational'"`
	Routes               string    `gorm:"type:text"` // JSON array
	HasShelter           bool      `gorm:"default:false;not null"`
	WheelchairAccessible bool      `gorm:"default:false;not null"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}

func (BusStation) TableName() string {
	return "bus_stations"
}

type ParkingSpot struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	EntityID        string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name            string    `gorm:"type:varchar(200);not null"`
	Latitude        float64   `gorm:"not null"`
	Longitude       float64   `gorm:"not null"`
	ParkingType     string    `gorm:"type:varchar(50)"`
	Status          string    `gorm:"type:varchar(30);not null;default:'open'"`
	TotalSpaces     int       `gorm:"default:0"`
	AvailableSpaces int       `gorm:"default:0"`
	PricePerHour    *float64
	Currency        string `gorm:"type:varchar(10)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (ParkingSpot) TableName() string {
	return "parking_spots"
}
