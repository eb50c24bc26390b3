package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
)

type UserAPIKeyRepository interface {
	Upsert(ctx context.Context, key *entities.UserAPIKey) error
	FindByUserAndProvider(ctx context.Context, userID, providerID uuid.UUID) (*entities.UserAPIKey, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.UserAPIKey, error)
	RecordUsage(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SystemAPIKeyRepository interface {
	Upsert(ctx context.Context, key *entities.SystemAPIKey) error
	FindByProviderID(ctx context.Context, providerID uuid.UUID) (*entities.SystemAPIKey, error)
	List(ctx context.Context) ([]*entities.SystemAPIKey, error)
	RecordUsage(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
