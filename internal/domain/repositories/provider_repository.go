package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
)

type ProviderRepository interface {
	Create(ctx context.Context, provider *entities.ExternalAPIProvider) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ExternalAPIProvider, error)
	FindBySlug(ctx context.Context, slug string) (*entities.ExternalAPIProvider, error)
	List(ctx context.Context, category string, activeOnly bool) ([]*entities.ExternalAPIProvider, error)
	Update(ctx context.Context, provider *entities.ExternalAPIProvider) error
	Delete(ctx context.Context, id uuid.UUID) error
}
