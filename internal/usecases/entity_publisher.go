package usecases

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	"github.com/Hazhaz1412/smart-city-iot/internal/domain/repositories"
	"github.com/Hazhaz1412/smart-city-iot/pkg/logger"
	"github.com/Hazhaz1412/smart-city-iot/pkg/ngsild"
)

// EntityPublisher stores NGSI-LD documents locally and forwards them to the
// context broker. A broker failure leaves the record stored but unsynced;
// the caller's operation still succeeds.
type EntityPublisher struct {
	entityRepo repositories.NGSIEntityRepository
	broker     ContextBroker
}

func NewEntityPublisher(entityRepo repositories.NGSIEntityRepository, broker ContextBroker) *EntityPublisher {
	return &EntityPublisher{
		entityRepo: entityRepo,
		broker:     broker,
	}
}

// Publish stores the entity document and pushes it to the broker.
func (p *EntityPublisher) Publish(ctx context.Context, entity ngsild.Entity, lat, lon float64) {
	doc, err := entity.ToJSON()
	if err != nil {
		logger.Error(ctx, "Failed to serialize entity document", zap.Error(err))
		return
	}

	record := &entities.NGSIEntity{
		EntityID:   entity.ID(),
		EntityType: entity.Type(),
		Document:   doc,
		Latitude:   lat,
		Longitude:  lon,
	}
	if err := p.entityRepo.Upsert(ctx, record); err != nil {
		logger.Error(ctx, "Failed to store entity document",
			zap.String("entity_id", entity.ID()),
			zap.Error(err),
		)
	}

	if err := p.broker.UpsertEntity(ctx, entity.ID(), doc); err != nil {
		logger.Warn(ctx, "Broker push failed, entity kept unsynced",
			zap.String("entity_id", entity.ID()),
			zap.Error(err),
		)
		return
	}

	if record.ID != uuid.Nil {
		_ = p.entityRepo.MarkSynced(ctx, record.ID)
	}
}
