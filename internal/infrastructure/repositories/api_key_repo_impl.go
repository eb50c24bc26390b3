package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	domainerrors "github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
	"github.com/Hazhaz1412/smart-city-iot/internal/infrastructure/models"
)

// UserAPIKeyRepository implements per-user provider key storage
type UserAPIKeyRepository struct {
	db *gorm.DB
}

// NewUserAPIKeyRepository creates a new user API key repository
func NewUserAPIKeyRepository(db *gorm.DB) *UserAPIKeyRepository {
	return &UserAPIKeyRepository{db: db}
}

// Upsert creates or replaces the key for a user and provider pair
func (r *UserAPIKeyRepository) Upsert(ctx context.Context, key *entities.UserAPIKey) error {
	var existing models.UserAPIKey
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND provider_id = ?", key.UserID, key.ProviderID).
		First(&existing).Error

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		m := &models.UserAPIKey{
			ID:           key.ID,
			UserID:       key.UserID,
			ProviderID:   key.ProviderID,
			Label:        key.Label,
			EncryptedKey: key.EncryptedKey,
			MaskedKey:    key.MaskedKey,
			IsActive:     key.IsActive,
		}
		if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
			return err
		}
		key.ID = m.ID
		return nil
	}

	updates := map[string]interface{}{
		"label":         key.Label,
		"encrypted_key": key.EncryptedKey,
		"masked_key":    key.MaskedKey,
		"is_active":     key.IsActive,
		"updated_at":    time.Now(),
	}
	if err := r.db.WithContext(ctx).Model(&models.UserAPIKey{}).
		Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
		return err
	}
	key.ID = existing.ID
	return nil
}

// FindByUserAndProvider gets the user's key for a provider
func (r *UserAPIKeyRepository) FindByUserAndProvider(ctx context.Context, userID, providerID uuid.UUID) (*entities.UserAPIKey, error) {
	var m models.UserAPIKey
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND provider_id = ?", userID, providerID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userKeyToEntity(&m), nil
}

// FindByUserID lists all keys of a user
func (r *UserAPIKeyRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.UserAPIKey, error) {
	var keyModels []models.UserAPIKey
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&keyModels).Error; err != nil {
		return nil, err
	}

	keys := make([]*entities.UserAPIKey, 0, len(keyModels))
	for i := range keyModels {
		keys = append(keys, userKeyToEntity(&keyModels[i]))
	}
	return keys, nil
}

// RecordUsage increments the usage counter and stamps last use
func (r *UserAPIKeyRepository) RecordUsage(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.UserAPIKey{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"usage_count":  gorm.Expr("usage_count + 1"),
			"last_used_at": time.Now(),
		}).Error
}

// Delete soft deletes a user key
func (r *UserAPIKeyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.UserAPIKey{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func userKeyToEntity(m *models.UserAPIKey) *entities.UserAPIKey {
	return &entities.UserAPIKey{
		ID:           m.ID,
		UserID:       m.UserID,
		ProviderID:   m.ProviderID,
		Label:        m.Label,
		EncryptedKey: m.EncryptedKey,
		MaskedKey:    m.MaskedKey,
		IsActive:     m.IsActive,
		UsageCount:   m.UsageCount,
		LastUsedAt:   m.LastUsedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// SystemAPIKeyRepository implements platform-wide provider key storage
type SystemAPIKeyRepository struct {
	db *gorm.DB
}

// NewSystemAPIKeyRepository creates a new system API key repository
func NewSystemAPIKeyRepository(db *gorm.DB) *SystemAPIKeyRepository {
	return &SystemAPIKeyRepository{db: db}
}

// Upsert creates or replaces the system key for a provider
func (r *SystemAPIKeyRepository) Upsert(ctx context.Context, key *entities.SystemAPIKey) error {
	var existing models.SystemAPIKey
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", key.ProviderID).
		First(&existing).Error

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		m := &models.SystemAPIKey{
			ID:                key.ID,
			ProviderID:        key.ProviderID,
			EncryptedKey:      key.EncryptedKey,
			MaskedKey:         key.MaskedKey,
			IsActive:          key.IsActive,
			AllowUserOverride: key.AllowUserOverride,
		}
		if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
			return err
		}
		key.ID = m.ID
		return nil
	}

	updates := map[string]interface{}{
		"encrypted_key":       key.EncryptedKey,
		"masked_key":          key.MaskedKey,
		"is_active":           key.IsActive,
		"allow_user_override": key.AllowUserOverride,
		"updated_at":          time.Now(),
	}
	if err := r.db.WithContext(ctx).Model(&models.SystemAPIKey{}).
		Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
		return err
	}
	key.ID = existing.ID
	return nil
}

// FindByProviderID gets the system key for a provider
func (r *SystemAPIKeyRepository) FindByProviderID(ctx context.Context, providerID uuid.UUID) (*entities.SystemAPIKey, error) {
	var m models.SystemAPIKey
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return systemKeyToEntity(&m), nil
}

// List lists all system keys
func (r *SystemAPIKeyRepository) List(ctx context.Context) ([]*entities.SystemAPIKey, error) {
	var keyModels []models.SystemAPIKey
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&keyModels).Error; err != nil {
		return nil, err
	}

	keys := make([]*entities.SystemAPIKey, 0, len(keyModels))
	for i := range keyModels {
		keys = append(keys, systemKeyToEntity(&keyModels[i]))
	}
	return keys, nil
}

// RecordUsage increments the usage counter and stamps last use
func (r *SystemAPIKeyRepository) RecordUsage(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.SystemAPIKey{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"usage_count":  gorm.Expr("usage_count + 1"),
			"last_used_at": time.Now(),
		}).Error
}

// Delete soft deletes a system key
func (r *SystemAPIKeyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SystemAPIKey{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func systemKeyToEntity(m *models.SystemAPIKey) *entities.SystemAPIKey {
	return &entities.SystemAPIKey{
		ID:                m.ID,
		ProviderID:        m.ProviderID,
		EncryptedKey:      m.EncryptedKey,
		MaskedKey:         m.MaskedKey,
		IsActive:          m.IsActive,
		AllowUserOverride: m.AllowUserOverride,
		UsageCount:        m.UsageCount,
		LastUsedAt:        m.LastUsedAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
