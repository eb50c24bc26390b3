package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// WeatherObservation is a point-in-time weather measurement.
// Absent measurements are invalid null values, never zeros.
type WeatherObservation struct {
	ID            uuid.UUID    `json:"id"`
	StationID     *uuid.UUID   `json:"stationId,omitempty"`
	LocationName  string       `json:"locationName,omitempty"`
	Latitude      float64      `json:"latitude"`
	Longitude     float64      `json:"longitude"`
	Temperature   null.Float64 `json:"temperature,omitempty"`
	Humidity      null.Float64 `json:"humidity,omitempty"`
	Pressure      null.Float64 `json:"pressure,omitempty"`
	WindSpeed     null.Float64 `json:"windSpeed,omitempty"`
	WindDirection null.Float64 `json:"windDirection,omitempty"`
	Precipitation null.Float64 `json:"precipitation,omitempty"`
	WeatherType   string       `json:"weatherType,omitempty"`
	Source        string       `json:"source,omitempty"`
	ObservedAt    time.Time    `json:"observedAt"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// AirQualityObservation is a point-in-time air quality measurement
type AirQualityObservation struct {
	ID              uuid.UUID    `json:"id"`
	SensorID        *uuid.UUID   `json:"sensorId,omitempty"`
	LocationName    string       `json:"locationName,omitempty"`
	Latitude        float64      `json:"latitude"`
	Longitude       float64      `json:"longitude"`
	AirQualityIndex null.Float64 `json:"airQualityIndex,omitempty"`
	PM25            null.Float64 `json:"pm25,omitempty"`
	PM10            null.Float64 `json:"pm10,omitempty"`
	NO2             null.Float64 `json:"no2,omitempty"`
	O3              null.Float64 `json:"o3,omitempty"`
	CO              null.Float64 `json:"co,omitempty"`
	SO2             null.Float64 `json:"so2,omitempty"`
	Source          string       `json:"source,omitempty"`
	ObservedAt      time.Time    `json:"observedAt"`
	CreatedAt       time.Time    `json:"createdAt"`
}
