package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NGSIEntity struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	EntityID      string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	EntityType    string    `gorm:"type:varchar(100);not null;index"`
	Document      string    `gorm:"type:text;not null"` // NGSI-LD JSON
	Latitude      float64
	Longitude     float64
	SyncedToOrion bool `gorm:"default:false;not null"`
	LastSyncAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (NGSIEntity) TableName() string {
	return "ngsi_entities"
}
