package entities

import (
	"time"

	"github.com/google/uuid"
)

// WeatherStation represents a registered weather measurement site
type WeatherStation struct {
	ID        uuid.UUID `json:"id"`
	StationID string    `json:"stationId"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Address   string    `json:"address,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AirQualitySensor represents a registered air quality measurement site
type AirQualitySensor struct {
	ID        uuid.UUID `json:"id"`
	SensorID  string    `json:"sensorId"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Address   string    `json:"address,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateStationInput represents input for registering a station or sensor
type CreateStationInput struct {
	StationID string  `json:"stationId" binding:"required,min=1,max=100"`
	Name      string  `json:"name" binding:"required,min=1,max=200"`
	Latitude  float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"required,min=-180,max=180"`
	Address   string  `json:"address"`
	IsActive  *bool   `json:"isActive"`
}
