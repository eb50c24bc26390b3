package entities

import (
	"time"

	"github.com/google/uuid"
)

// NGSIEntity is a stored NGSI-LD entity document together with its
// context broker sync state.
type NGSIEntity struct {
	ID            uuid.UUID  `json:"id"`
	EntityID      string     `json:"entityId"`
	EntityType    string     `json:"entityType"`
	Document      []byte     `json:"document"`
	Latitude      float64    `json:"latitude"`
	Longitude     float64    `json:"longitude"`
	SyncedToOrion bool       `json:"syncedToOrion"`
	LastSyncAt    *time.Time `json:"lastSyncAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
