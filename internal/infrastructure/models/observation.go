package models

import (
	"time"

	"github.com/google/uuid"
)

// Observation rows are append-only, no soft delete.

type WeatherObservation struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	StationID     *uuid.UUID `gorm:"type:uuid;index"`
	LocationName  string     `gorm:"type:varchar(200)"`
	Latitude      float64    `gorm:"not null"`
	Longitude     float64    `gorm:"not null"`
	Temperature   *float64
	Humidity      *float64
	Pressure      *float64
	WindSpeed     *float64
	WindDirection *float64
	Precipitation *float64
	WeatherType   string    `gorm:"type:varchar(100)"`
	Source        string    `gorm:"type:varchar(50)"`
	ObservedAt    time.Time `gorm:"not null;index"`
	CreatedAt     time.Time
}

func (WeatherObservation) TableName() string {
	return "weather_observations"
}

type AirQualityObservation struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	SensorID        *uuid.UUID `gorm:"type:uuid;index"`
	LocationName    string     `gorm:"type:varchar(200)"`
	Latitude        float64    `gorm:"not null"`
	Longitude       float64    `gorm:"not null"`
	AirQualityIndex *float64
	PM25            *float64
	PM10            *float64
	NO2             *float64
	O3              *float64
	CO              *float64
	SO2             *float64
	Source          string    `gorm:"type:varchar(50)"`
	ObservedAt      time.Time `gorm:"not null;index"`
	CreatedAt       time.Time
}

func (AirQualityObservation) TableName() string {
	return "air_quality_observations"
}
