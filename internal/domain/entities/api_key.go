package entities

import (
	"time"

	"github.com/google/uuid"
)

// UserAPIKey is a per-user credential for an external provider.
// The key material is stored encrypted and is never serialized.
type UserAPIKey struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"userId"`
	ProviderID   uuid.UUID  `json:"providerId"`
	ProviderSlug string     `json:"providerSlug,omitempty"`
	Label        string     `json:"label,omitempty"`
	EncryptedKey []byte     `json:"-"`
	MaskedKey    string     `json:"maskedKey"`
	IsActive     bool       `json:"isActive"`
	UsageCount   int64      `json:"usageCount"`
	LastUsedAt   *time.Time `json:"lastUsedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// SystemAPIKey is the platform-wide credential for a provider, at most
// one per provider. AllowUserOverride lets user keys take precedence.
type SystemAPIKey struct {
	ID                uuid.UUID  `json:"id"`
	ProviderID        uuid.UUID  `json:"providerId"`
	ProviderSlug      string     `json:"providerSlug,omitempty"`
	EncryptedKey      []byte     `json:"-"`
	MaskedKey         string     `json:"maskedKey"`
	IsActive          bool       `json:"isActive"`
	AllowUserOverride bool       `json:"allowUserOverride"`
	UsageCount        int64      `json:"usageCount"`
	LastUsedAt        *time.Time `json:"lastUsedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// SetUserAPIKeyInput represents input for storing a user provider key
type SetUserAPIKeyInput struct {
	APIKey   string `json:"apiKey" binding:"required,min=4"`
	Label    string `json:"label"`
	IsActive *bool  `json:"isActive"`
}

// SetSystemAPIKeyInput represents input for storing the system provider key
type SetSystemAPIKeyInput struct {
	APIKey            string `json:"apiKey" binding:"required,min=4"`
	IsActive          *bool  `json:"isActive"`
	AllowUserOverride *bool  `json:"allowUserOverride"`
}
