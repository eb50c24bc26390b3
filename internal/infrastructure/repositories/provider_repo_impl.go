package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	domainerrors "github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
	"github.com/Hazhaz1412/smart-city-iot/internal/infrastructure/models"
)

// ProviderRepository implements external provider registry operations
type ProviderRepository struct {
	db *gorm.DB
}

// NewProviderRepository creates a new provider repository
func NewProviderRepository(db *gorm.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

// Create registers a new provider
func (r *ProviderRepository) Create(ctx context.Context, provider *entities.ExternalAPIProvider) error {
	m, err := r.toModel(provider)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	provider.ID = m.ID
	provider.CreatedAt = m.CreatedAt
	provider.UpdatedAt = m.UpdatedAt
	return nil
}

// FindByID gets a provider by ID
func (r *ProviderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ExternalAPIProvider, error) {
	var m models.ExternalAPIProvider
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// FindBySlug gets a provider by its unique slug
func (r *ProviderRepository) FindBySlug(ctx context.Context, slug string) (*entities.ExternalAPIProvider, error) {
	var m models.ExternalAPIProvider
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List lists providers with optional category and active filters
func (r *ProviderRepository) List(ctx context.Context, category string, activeOnly bool) ([]*entities.ExternalAPIProvider, error) {
	var providerModels []models.ExternalAPIProvider
	query := r.db.WithContext(ctx).Order("name ASC")

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Find(&providerModels).Error; err != nil {
		return nil, err
	}

	providers := make([]*entities.ExternalAPIProvider, 0, len(providerModels))
	for i := range providerModels {
		providers = append(providers, r.toEntity(&providerModels[i]))
	}
	return providers, nil
}

// Update updates a provider
func (r *ProviderRepository) Update(ctx context.Context, provider *entities.ExternalAPIProvider) error {
	m, err := r.toModel(provider)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&models.ExternalAPIProvider{}).
		Where("id = ?", provider.ID).
		Updates(map[string]interface{}{
			"name":               m.Name,
			"category":           m.Category,
			"base_url":           m.BaseURL,
			"docs_url":           m.DocsURL,
			"description":        m.Description,
			"auth_type":          m.AuthType,
			"auth_key_name":      m.AuthKeyName,
			"default_headers":    m.DefaultHeaders,
			"rate_limit_per_min": m.RateLimitPerMin,
			"rate_limit_per_day": m.RateLimitPerDay,
			"is_active":          m.IsActive,
			"is_premium":         m.IsPremium,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete soft deletes a provider
func (r *ProviderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExternalAPIProvider{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ProviderRepository) toModel(e *entities.ExternalAPIProvider) (*models.ExternalAPIProvider, error) {
	headers := ""
	if len(e.DefaultHeaders) > 0 {
		b, err := json.Marshal(e.DefaultHeaders)
		if err != nil {
			return nil, err
		}
		headers = string(b)
	}

	return &models.ExternalAPIProvider{
		ID:              e.ID,
		Name:            e.Name,
		Slug:            e.Slug,
		Category:        string(e.Category),
		BaseURL:         e.BaseURL,
		DocsURL:         e.DocsURL,
		Description:     e.Description,
		AuthType:        string(e.AuthType),
		AuthKeyName:     e.AuthKeyName,
		DefaultHeaders:  headers,
		RateLimitPerMin: e.RateLimitPerMin,
		RateLimitPerDay: e.RateLimitPerDay,
		IsActive:        e.IsActive,
		IsPremium:       e.IsPremium,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}, nil
}

func (r *ProviderRepository) toEntity(m *models.ExternalAPIProvider) *entities.ExternalAPIProvider {
	var headers map[string]string
	if m.DefaultHeaders != "" {
		// malformed stored JSON degrades to no default headers
		_ = json.Unmarshal([]byte(m.DefaultHeaders), &headers)
	}

	return &entities.ExternalAPIProvider{
		ID:              m.ID,
		Name:            m.Name,
		Slug:            m.Slug,
		Category:        entities.ProviderCategory(m.Category),
		BaseURL:         m.BaseURL,
		DocsURL:         m.DocsURL,
		Description:     m.Description,
		AuthType:        entities.AuthType(m.AuthType),
		AuthKeyName:     m.AuthKeyName,
		DefaultHeaders:  headers,
		RateLimitPerMin: m.RateLimitPerMin,
		RateLimitPerDay: m.RateLimitPerDay,
		IsActive:        m.IsActive,
		IsPremium:       m.IsPremium,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
