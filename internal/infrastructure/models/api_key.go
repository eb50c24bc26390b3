package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserAPIKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_provider"`
	ProviderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_provider"`
	Label        string    `gorm:"type:varchar(100)"`
	EncryptedKey []byte    `gorm:"type:bytea;not null"` // AES-256-GCM, nonce-prefixed
	MaskedKey    string    `gorm:"type:varchar(30);not null"`
	IsActive     bool      `gorm:"not null"`
	UsageCount   int64     `gorm:"default:0;not null"`
	LastUsedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`

	Provider ExternalAPIProvider `gorm:"foreignKey:ProviderID"`
}

func (UserAPIKey) TableName() string {
	return "user_api_keys"
}

type SystemAPIKey struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ProviderID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	EncryptedKey      []byte    `gorm:"type:bytea;not null"`
	MaskedKey         string    `gorm:"type:varchar(30);not null"`
	IsActive          bool      `gorm:"not null"`
	AllowUserOverride bool      `gorm:"not null"`
	UsageCount        int64     `gorm:"default:0;not null"`
	LastUsedAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`

	Provider ExternalAPIProvider `gorm:"foreignKey:ProviderID"`
}

func (SystemAPIKey) TableName() string {
	return "system_api_keys"
}
