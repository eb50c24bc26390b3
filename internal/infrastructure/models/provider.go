package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExternalAPIProvider struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name            string    `gorm:"type:varchar(100);not null"`
	Slug            string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Category        string    `gorm:"type:varchar(30);not null;index"`
	BaseURL         string    `gorm:"type:varchar(500);not null"`
	DocsURL         string    `gorm:"type:varchar(500)"`
	Description     string    `gorm:"type:text"`
	AuthType        string    `gorm:"type:varchar(30);not null"`
	AuthKeyName     string    `gorm:"type:varchar(100)"`
	DefaultHeaders  string    `gorm:"type:text"` // JSON object
	RateLimitPerMin int       `gorm:"default:0"`
	RateLimitPerDay int       `gorm:"default:0"`
	IsActive        bool      `gorm:"not null"`
	IsPremium       bool      `gorm:"default:false;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (ExternalAPIProvider) TableName() string {
	return "external_api_providers"
}
