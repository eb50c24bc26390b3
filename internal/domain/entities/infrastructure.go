package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// InfrastructureStatus is the operational status shared by city assets
type InfrastructureStatus string

const (
	StatusOperational InfrastructureStatus = "operational"
	StatusMaintenance InfrastructureStatus = "maintenance"
	StatusFaulty      InfrastructureStatus = "faulty"
	StatusOffline     InfrastructureStatus = "offline"
)

// WaterSupplyPoint represents a water supply asset and its last reading
type WaterSupplyPoint struct {
	ID            uuid.UUID            `json:"id"`
	EntityID      string               `json:"entityId"`
	Name          string               `json:"name"`
	Latitude      float64              `json:"latitude"`
	Longitude     float64              `json:"longitude"`
	PointType     string               `json:"pointType,omitempty"`
	Status        InfrastructureStatus `json:"status"`
	Capacity      float64              `json:"capacity"`
	CurrentLevel  float64              `json:"currentLevel"`
	FlowRate      null.Float64         `json:"flowRate,omitempty"`
	Pressure      null.Float64         `json:"pressure,omitempty"`
	PHLevel       null.Float64         `json:"phLevel,omitempty"`
	ChlorineLevel null.Float64         `json:"chlorineLevel,omitempty"`
	Turbidity     null.Float64         `json:"turbidity,omitempty"`
	LastReadingAt *time.Time           `json:"lastReadingAt,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// DrainagePoint represents a drainage asset. CurrentLevel is a percentage.
type DrainagePoint struct {
	ID            uuid.UUID            `json:"id"`
	EntityID      string               `json:"entityId"`
	Name          string               `json:"name"`
	Latitude      float64              `json:"latitude"`
	Longitude     float64              `json:"longitude"`
	PointType     string               `json:"pointType,omitempty"`
	Status        InfrastructureStatus `json:"status"`
	FloodRisk     string               `json:"floodRisk,omitempty"`
	Capacity      float64              `json:"capacity"`
	CurrentLevel  float64              `json:"currentLevel"`
	FlowRate      null.Float64         `json:"flowRate,omitempty"`
	LastReadingAt *time.Time           `json:"lastReadingAt,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// StreetLight represents a street light pole
type StreetLight struct {
	ID                  uuid.UUID            `json:"id"`
	EntityID            string               `json:"entityId"`
	Name                string               `json:"name"`
	Latitude            float64              `json:"latitude"`
	Longitude           float64              `json:"longitude"`
	LampType            string               `json:"lampType,omitempty"`
	Status              InfrastructureStatus `json:"status"`
	PowerRating         null.Float64         `json:"powerRating,omitempty"`
	BrightnessLevel     null.Float64         `json:"brightnessLevel,omitempty"`
	EnergyConsumedToday null.Float64         `json:"energyConsumedToday,omitempty"`
	OperatingHours      null.Float64         `json:"operatingHours,omitempty"`
	IsSmart             bool                 `json:"isSmart"`
	LastReadingAt       *time.Time           `json:"lastReadingAt,omitempty"`
	CreatedAt           time.Time            `json:"createdAt"`
	UpdatedAt           time.Time            `json:"updatedAt"`
}

// EnergyMeter represents an energy meter and its last reading
type EnergyMeter struct {
	ID               uuid.UUID            `json:"id"`
	EntityID         string               `json:"entityId"`
	Name             string               `json:"name"`
	Latitude         float64              `json:"latitude"`
	Longitude        float64              `json:"longitude"`
	MeterType        string               `json:"meterType,omitempty"`
	Status           InfrastructureStatus `json:"status"`
	CurrentPower     null.Float64         `json:"currentPower,omitempty"`
	Voltage          null.Float64         `json:"voltage,omitempty"`
	Current          null.Float64         `json:"current,omitempty"`
	PowerFactor      null.Float64         `json:"powerFactor,omitempty"`
	Frequency        null.Float64         `json:"frequency,omitempty"`
	TodayConsumption null.Float64         `json:"todayConsumption,omitempty"`
	MonthConsumption null.Float64         `json:"monthConsumption,omitempty"`
	LastReadingAt    *time.Time           `json:"lastReadingAt,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}

// TelecomTower represents a telecom tower and its current load
type TelecomTower struct {
	ID                uuid.UUID            `json:"id"`
	EntityID          string               `json:"entityId"`
	Name              string               `json:"name"`
	Latitude          float64              `json:"latitude"`
	Longitude         float64              `json:"longitude"`
	TowerType         string               `json:"towerType,omitempty"`
	Status            InfrastructureStatus `json:"status"`
	Height            null.Float64         `json:"height,omitempty"`
	CoverageRadius    null.Float64         `json:"coverageRadius,omitempty"`
	ActiveConnections int                  `json:"activeConnections"`
	MaxConnections    int                  `json:"maxConnections"`
	BandwidthUsage    null.Float64         `json:"bandwidthUsage,omitempty"`
	SignalStrength    null.Float64         `json:"signalStrength,omitempty"`
	LastReadingAt     *time.Time           `json:"lastReadingAt,omitempty"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}
