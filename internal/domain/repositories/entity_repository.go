package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	"github.com/Hazhaz1412/smart-city-iot/pkg/utils"
)

type NGSIEntityRepository interface {
	Upsert(ctx context.Context, entity *entities.NGSIEntity) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.NGSIEntity, error)
	FindByEntityID(ctx context.Context, entityID string) (*entities.NGSIEntity, error)
	List(ctx context.Context, entityType string, p utils.PaginationParams) ([]*entities.NGSIEntity, int64, error)
	MarkSynced(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
