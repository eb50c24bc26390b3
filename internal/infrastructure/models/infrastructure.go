package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WaterSupplyPoint struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	EntityID      string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name          string    `gorm:"type:varchar(200);not null"`
	Latitude      float64   `gorm:"not null"`
	Longitude     float64   `gorm:"not null"`
	PointType     string    `gorm:"type:varchar(50)"`
	Status        string    `gorm:"type:varchar(30);not null;default:'operational'"`
	Capacity      float64
	CurrentLevel  float64
	FlowRate      *float64
	Pressure      *float64
	PHLevel       *float64
	ChlorineLevel *float64
	Turbidity     *float64
	LastReadingAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (WaterSupplyPoint) TableName() string {
	return "water_supply_points"
}

type DrainagePoint struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	EntityID      string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name          string    `gorm:"type:varchar(200);not null"`
	Latitude      float64   `gorm:"not null"`
	Longitude     float64   `gorm:"not null"`
	PointType     string    `gorm:"type:varchar(50)"`
	Status        string    `gorm:"type:varchar(30);not null;default:'operational'"`
	FloodRisk     string    `gorm:"type:varchar(30)"`
	Capacity      float64
	CurrentLevel  float64
	FlowRate      *float64
	LastReadingAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (DrainagePoint) TableName() string {
	return "drainage_points"
}

type StreetLight struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	EntityID            string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name                string    `gorm:"type:varchar(200);not null"`
	Latitude            float64   `gorm:"not null"`
	Longitude           float64   `gorm:"not null"`
	LampType            string    `gorm:"type:varchar(50)"`
	Status              string    `gorm:"type:varchar(30);not null;default:'operational'"`
	PowerRating         *float64
	BrightnessLevel     *float64
	EnergyConsumedToday *float64
	OperatingHours      *float64
	IsSmart             bool `gorm:"default:false;not null"`
	LastReadingAt       *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           gorm.DeletedAt `gorm:"index"`
}

func (StreetLight) TableName() string {
	return "street_lights"
}

type EnergyMeter struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	EntityID         string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name             string    `gorm:"type:varchar(200);not null"`
	Latitude         float64   `gorm:"not null"`
	Longitude        float64   `gorm:"not null"`
	MeterType        string    `gorm:"type:varchar(50)"`
	Status           string    `gorm:"type:varchar(30);not null;default:'operational'"`
	CurrentPower     *float64
	Voltage          *float64
	Current          *float64
	PowerFactor      *float64
	Frequency        *float64
	TodayConsumption *float64
	MonthConsumption *float64
	LastReadingAt    *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (EnergyMeter) TableName() string {
	return "energy_meters"
}

type TelecomTower struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	EntityID          string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name              string    `gorm:"type:varchar(200);not null"`
	Latitude          float64   `gorm:"not null"`
	Longitude         float64   `gorm:"not null"`
	TowerType         string    `gorm:"type:varchar(50)"`
	Status            string    `gorm:"type:varchar(30);not null;default:'operational'"`
	Height            *float64
	CoverageRadius    *float64
	ActiveConnections int `gorm:"default:0"`
	MaxConnections    int `gorm:"default:0"`
	BandwidthUsage    *float64
	SignalStrength    *float64
	LastReadingAt     *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (TelecomTower) TableName() string {
	return "telecom_towers"
}
