package entities

import (
	"time"

	"github.com/google/uuid"
)

// ProviderCategory classifies external data providers
type ProviderCategory string

const (
	CategoryWeather    ProviderCategory = "weather"
	CategoryAirQuality ProviderCategory = "air_quality"
	CategoryTraffic    ProviderCategory = "traffic"
	CategoryMaps       ProviderCategory = "maps"
	CategoryIoT        ProviderCategory = "iot"
	CategoryOther      ProviderCategory = "other"
)

// AuthType describes how a provider expects its credential
type AuthType string

const (
	AuthAPIKeyQuery  AuthType = "api_key_query"
	AuthAPIKeyHeader AuthType = "api_key_header"
	AuthBearerToken  AuthType = "bearer_token"
	AuthBasicAuth    AuthType = "basic_auth"
	AuthOAuth2       AuthType = "oauth2"
	AuthNone         AuthType = "none"
)

// ExternalAPIProvider represents an entry in the external provider registry
type ExternalAPIProvider struct {
	ID              uuid.UUID         `json:"id"`
	Name            string            `json:"name"`
	Slug            string            `json:"slug"`
	Category        ProviderCategory  `json:"category"`
	BaseURL         string            `json:"baseUrl"`
	DocsURL         string            `json:"docsUrl,omitempty"`
	Description     string            `json:"description,omitempty"`
	AuthType        AuthType          `json:"authType"`
	AuthKeyName     string            `json:"authKeyName,omitempty"`
	DefaultHeaders  map[string]string `json:"defaultHeaders,omitempty"`
	RateLimitPerMin int               `json:"rateLimitPerMinute"`
	RateLimitPerDay int               `json:"rateLimitPerDay"`
	IsActive        bool              `json:"isActive"`
	IsPremium       bool              `json:"isPremium"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// CreateProviderInput represents input for registering a provider
type CreateProviderInput struct {
	Name            string            `json:"name" binding:"required,min=2,max=100"`
	Slug            string            `json:"slug" binding:"required,min=2,max=100"`
	Category        string            `json:"category" binding:"required"`
	BaseURL         string            `json:"baseUrl" binding:"required,url"`
	DocsURL         string            `json:"docsUrl"`
	Description     string            `json:"description"`
	AuthType        string            `json:"authType" binding:"required"`
	AuthKeyName     string            `json:"authKeyName"`
	DefaultHeaders  map[string]string `json:"defaultHeaders"`
	RateLimitPerMin int               `json:"rateLimitPerMinute"`
	RateLimitPerDay int               `json:"rateLimitPerDay"`
	IsActive        *bool             `json:"isActive"`
	IsPremium       bool              `json:"isPremium"`
}

// UpdateProviderInput represents a partial provider update
type UpdateProviderInput struct {
	Name            *string           `json:"name"`
	Category        *string           `json:"category"`
	BaseURL         *string           `json:"baseUrl"`
	DocsURL         *string           `json:"docsUrl"`
	Description     *string           `json:"description"`
	AuthType        *string           `json:"authType"`
	AuthKeyName     *string           `json:"authKeyName"`
	DefaultHeaders  map[string]string `json:"defaultHeaders"`
	RateLimitPerMin *int              `json:"rateLimitPerMinute"`
	RateLimitPerDay *int              `json:"rateLimitPerDay"`
	IsActive        *bool             `json:"isActive"`
	IsPremium       *bool             `json:"isPremium"`
}

// ValidCategory reports whether s is a known provider category
func ValidCategory(s string) bool {
	switch ProviderCategory(s) {
	case CategoryWeather, CategoryAirQuality, CategoryTraffic, CategoryMaps, CategoryIoT, CategoryOther:
		return true
	}
	return false
}

// ValidAuthType reports whether s is a known auth type
func ValidAuthType(s string) bool {
	switch AuthType(s) {
	case AuthAPIKeyQuery, AuthAPIKeyHeader, AuthBearerToken, AuthBasicAuth, AuthOAuth2, AuthNone:
		return true
	}
	return false
}
