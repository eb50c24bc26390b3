package usecases

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	domainerrors "github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
	"github.com/Hazhaz1412/smart-city-iot/internal/domain/repositories"
	"github.com/Hazhaz1412/smart-city-iot/internal/infrastructure/broker"
	"github.com/Hazhaz1412/smart-city-iot/pkg/logger"
	"github.com/Hazhaz1412/smart-city-iot/pkg/utils"
)

// BrokerGateway is the full broker surface used by the entity usecase,
// including passthrough queries against Orion-LD.
type BrokerGateway interface {
	ContextBroker
	GetEntity(ctx context.Context, entityID string) (map[string]any, error)
	DeleteEntity(ctx context.Context, entityID string) error
	QueryEntities(ctx context.Context, params broker.QueryParams) ([]map[string]any, error)
	QueryTemporal(ctx context.Context, params broker.TemporalParams) ([]map[string]any, error)
	Ping(ctx context.Context) bool
}

// EntityUsecase manages stored NGSI-LD entity documents and their broker
// sync state.
type EntityUsecase struct {
	entityRepo repositories.NGSIEntityRepository
	broker     BrokerGateway
}

func NewEntityUsecase(entityRepo repositories.NGSIEntityRepository, gateway BrokerGateway) *EntityUsecase {
	return &EntityUsecase{
		entityRepo: entityRepo,
		broker:     gateway,
	}
}

func (u *EntityUsecase) List(ctx context.Context, entityType string, p utils.PaginationParams) ([]*entities.NGSIEntity, int64, error) {
	return u.entityRepo.List(ctx, entityType, p)
}

func (u *EntityUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.NGSIEntity, error) {
	return u.entityRepo.FindByID(ctx, id)
}

func (u *EntityUsecase) GetByEntityID(ctx context.Context, entityID string) (*entities.NGSIEntity, error) {
	return u.entityRepo.FindByEntityID(ctx, entityID)
}

// Delete removes the stored document and best-effort deletes it from the
// broker. A broker failure does not undo the local delete.
func (u *EntityUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := u.entityRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := u.entityRepo.Delete(ctx, id); err != nil {
		return err
	}

	if record.SyncedToOrion {
		if err := u.broker.DeleteEntity(ctx, record.EntityID); err != nil {
			logger.Warn(ctx, "Failed to delete entity from broker",
				zap.String("entity_id", record.EntityID),
				zap.Error(err),
			)
		}
	}
	return nil
}

// SyncToOrion pushes one stored document to the broker and marks it synced.
func (u *EntityUsecase) SyncToOrion(ctx context.Context, id uuid.UUID) (*entities.NGSIEntity, error) {
	record, err := u.entityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.broker.UpsertEntity(ctx, record.EntityID, record.Document); err != nil {
		return nil, domainerrors.BadGateway("failed to push entity to context broker", err)
	}

	if err := u.entityRepo.MarkSynced(ctx, record.ID); err != nil {
		return nil, err
	}
	return u.entityRepo.FindByID(ctx, id)
}

// QueryOrion runs a passthrough entity query against the broker.
func (u *EntityUsecase) QueryOrion(ctx context.Context, params broker.QueryParams) ([]map[string]any, error) {
	docs, err := u.broker.QueryEntities(ctx, params)
	if err != nil {
		return nil, domainerrors.BadGateway("context broker query failed", err)
	}
	return docs, nil
}

// GetFromOrion fetches a live entity document from the broker.
func (u *EntityUsecase) GetFromOrion(ctx context.Context, entityID string) (map[string]any, error) {
	return u.broker.GetEntity(ctx, entityID)
}

// QueryTemporal runs a passthrough temporal query against the broker.
func (u *EntityUsecase) QueryTemporal(ctx context.Context, params broker.TemporalParams) ([]map[string]any, error) {
	docs, err := u.broker.QueryTemporal(ctx, params)
	if err != nil {
		return nil, domainerrors.BadGateway("context broker temporal query failed", err)
	}
	return docs, nil
}

// BrokerHealthy reports broker reachability for the health endpoint.
func (u *EntityUsecase) BrokerHealthy(ctx context.Context) bool {
	return u.broker.Ping(ctx)
}
