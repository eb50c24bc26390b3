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
	"github.com/Hazhaz1412/smart-city-iot/pkg/utils"
)

// NGSIEntityRepository implements stored NGSI-LD entity persistence
type NGSIEntityRepository struct {
	db *gorm.DB
}

// NewNGSIEntityRepository creates a new NGSI entity repository
func NewNGSIEntityRepository(db *gorm.DB) *NGSIEntityRepository {
	return &NGSIEntityRepository{db: db}
}

// Upsert stores the entity document, replacing any previous version
// with the same entity URN.
func (r *NGSIEntityRepository) Upsert(ctx context.Context, entity *entities.NGSIEntity) error {
	var existing models.NGSIEntity
	err := r.db.WithContext(ctx).Where("entity_id = ?", entity.EntityID).First(&existing).Error

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		m := &models.NGSIEntity{
			ID:            entity.ID,
			EntityID:      entity.EntityID,
			EntityType:    entity.EntityType,
			Document:      string(entity.Document),
			Latitude:      entity.Latitude,
			Longitude:     entity.Longitude,
			SyncedToOrion: entity.SyncedToOrion,
			LastSyncAt:    entity.LastSyncAt,
		}
		if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
			return err
		}
		entity.ID = m.ID
		return nil
	}

	updates := map[string]interface{}{
		"entity_type":     entity.EntityType,
		"document":        string(entity.Document),
		"latitude":        entity.Latitude,
		"longitude":       entity.Longitude,
		"synced_to_orion": entity.SyncedToOrion,
		"updated_at":      time.Now(),
	}
	if entity.LastSyncAt != nil {
		updates["last_sync_at"] = *entity.LastSyncAt
	}
	if err := r.db.WithContext(ctx).Model(&models.NGSIEntity{}).
		Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
		return err
	}
	entity.ID = existing.ID
	return nil
}

// FindByID gets a stored entity by ID
func (r *NGSIEntityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.NGSIEntity, error) {
	var m models.NGSIEntity
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return ngsiEntityToEntity(&m), nil
}

// FindByEntityID gets a stored entity by its NGSI-LD URN
func (r *NGSIEntityRepository) FindByEntityID(ctx context.Context, entityID string) (*entities.NGSIEntity, error) {
	var m models.NGSIEntity
	if err := r.db.WithContext(ctx).Where("entity_id = ?", entityID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return ngsiEntityToEntity(&m), nil
}

// List lists stored entities with optional type filter, newest first
func (r *NGSIEntityRepository) List(ctx context.Context, entityType string, p utils.PaginationParams) ([]*entities.NGSIEntity, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.NGSIEntity{})
	if entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entityModels []models.NGSIEntity
	if err := query.Order("updated_at DESC").
		Offset(p.CalculateOffset()).Limit(p.Limit).
		Find(&entityModels).Error; err != nil {
		return nil, 0, err
	}

	result := make([]*entities.NGSIEntity, 0, len(entityModels))
	for i := range entityModels {
		result = append(result, ngsiEntityToEntity(&entityModels[i]))
	}
	return result, total, nil
}

// MarkSynced flags the entity as pushed to the broker
func (r *NGSIEntityRepository) MarkSynced(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.NGSIEntity{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"synced_to_orion": true,
			"last_sync_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete soft deletes a stored entity
func (r *NGSIEntityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.NGSIEntity{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func ngsiEntityToEntity(m *models.NGSIEntity) *entities.NGSIEntity {
	return &entities.NGSIEntity{
		ID:            m.ID,
		EntityID:      m.EntityID,
		EntityType:    m.EntityType,
		Document:      []byte(m.Document),
		Latitude:      m.Latitude,
		Longitude:     m.Longitude,
		SyncedToOrion: m.SyncedToOrion,
		LastSyncAt:    m.LastSyncAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
