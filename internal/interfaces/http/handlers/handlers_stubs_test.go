package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	domainerrors "github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
	"github.com/Hazhaz1412/smart-city-iot/internal/infrastructure/broker"
	"github.com/Hazhaz1412/smart-city-iot/pkg/utils"
)

type userRepoStub struct {
	createFn      func(ctx context.Context, user *entities.User) error
	findByIDFn    func(ctx context.Context, id uuid.UUID) (*entities.User, error)
	findByEmailFn func(ctx context.Context, email string) (*entities.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *entities.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	user.ID = uuid.New()
	return nil
}

func (s *userRepoStub) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	if s.findByIDFn != nil {
		return s.findByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	if s.findByEmailFn != nil {
		return s.findByEmailFn(ctx, email)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) Update(context.Context, *entities.User) error { return nil }

type providerRepoStub struct {
	createFn     func(ctx context.Context, provider *entities.ExternalAPIProvider) error
	findBySlugFn func(ctx context.Context, slug string) (*entities.ExternalAPIProvider, error)
	listFn       func(ctx context.Context, category string, activeOnly bool) ([]*entities.ExternalAPIProvider, error)
}

func (s *providerRepoStub) Create(ctx context.Context, provider *entities.ExternalAPIProvider) error {
	if s.createFn != nil {
		return s.createFn(ctx, provider)
	}
	provider.ID = uuid.New()
	return nil
}

func (s *providerRepoStub) FindByID(context.Context, uuid.UUID) (*entities.ExternalAPIProvider, error) {
	return nil, domainerrors.ErrNotFound
}

func (s *providerRepoStub) FindBySlug(ctx context.Context, slug string) (*entities.ExternalAPIProvider, error) {
	if s.findBySlugFn != nil {
		return s.findBySlugFn(ctx, slug)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *providerRepoStub) List(ctx context.Context, category string, activeOnly bool) ([]*entities.ExternalAPIProvider, error) {
	if s.listFn != nil {
		return s.listFn(ctx, category, activeOnly)
	}
	return nil, nil
}

func (s *providerRepoStub) Update(context.Context, *entities.ExternalAPIProvider) error { return nil }
func (s *providerRepoStub) Delete(context.Context, uuid.UUID) error                     { return nil }

type userKeyRepoStub struct {
	upsertFn     func(ctx context.Context, key *entities.UserAPIKey) error
	findByUserFn func(ctx context.Context, userID uuid.UUID) ([]*entities.UserAPIKey, error)
}

func (s *userKeyRepoStub) Upsert(ctx context.Context, key *entities.UserAPIKey) error {
	if s.upsertFn != nil {
		return s.upsertFn(ctx, key)
	}
	key.ID = uuid.New()
	return nil
}

func (s *userKeyRepoStub) FindByUserAndProvider(context.Context, uuid.UUID, uuid.UUID) (*entities.UserAPIKey, error) {
	return nil, domainerrors.ErrNotFound
}

func (s *userKeyRepoStub) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.UserAPIKey, error) {
	if s.findByUserFn != nil {
		return s.findByUserFn(ctx, userID)
	}
	return nil, nil
}

func (s *userKeyRepoStub) RecordUsage(context.Context, uuid.UUID) error { return nil }
func (s *userKeyRepoStub) Delete(context.Context, uuid.UUID) error      { return nil }

type systemKeyRepoStub struct {
	upsertFn         func(ctx context.Context, key *entities.SystemAPIKey) error
	findByProviderFn func(ctx context.Context, providerID uuid.UUID) (*entities.SystemAPIKey, error)
	listFn           func(ctx context.Context) ([]*entities.SystemAPIKey, error)
}

func (s *systemKeyRepoStub) Upsert(ctx context.Context, key *entities.SystemAPIKey) error {
	if s.upsertFn != nil {
		return s.upsertFn(ctx, key)
	}
	key.ID = uuid.New()
	return nil
}

func (s *systemKeyRepoStub) FindByProviderID(ctx context.Context, providerID uuid.UUID) (*entities.SystemAPIKey, error) {
	if s.findByProviderFn != nil {
		return s.findByProviderFn(ctx, providerID)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *systemKeyRepoStub) List(ctx context.Context) ([]*entities.SystemAPIKey, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func (s *systemKeyRepoStub) RecordUsage(context.Context, uuid.UUID) error { return nil }
func (s *systemKeyRepoStub) Delete(context.Context, uuid.UUID) error      { return nil }

type entityRepoStub struct {
	findByIDFn func(ctx context.Context, id uuid.UUID) (*entities.NGSIEntity, error)
	listFn     func(ctx context.Context, entityType string, p utils.PaginationParams) ([]*entities.NGSIEntity, int64, error)
	deleteFn   func(ctx context.Context, id uuid.UUID) error
}

func (s *entityRepoStub) Upsert(ctx context.Context, entity *entities.NGSIEntity) error {
	entity.ID = uuid.New()
	return nil
}

func (s *entityRepoStub) FindByID(ctx context.Context, id uuid.UUID) (*entities.NGSIEntity, error) {
	if s.findByIDFn != nil {
		return s.findByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *entityRepoStub) FindByEntityID(context.Context, string) (*entities.NGSIEntity, error) {
	return nil, domainerrors.ErrNotFound
}

func (s *entityRepoStub) List(ctx context.Context, entityType string, p utils.PaginationParams) ([]*entities.NGSIEntity, int64, error) {
	if s.listFn != nil {
		return s.listFn(ctx, entityType, p)
	}
	return nil, 0, nil
}

func (s *entityRepoStub) MarkSynced(context.Context, uuid.UUID) error { return nil }

func (s *entityRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

type gatewayStub struct {
	queryFn    func(ctx context.Context, params broker.QueryParams) ([]map[string]any, error)
	temporalFn func(ctx context.Context, params broker.TemporalParams) ([]map[string]any, error)
	healthy    bool
}

func (s *gatewayStub) UpsertEntity(context.Context, string, []byte) error { return nil }

func (s *gatewayStub) GetEntity(context.Context, string) (map[string]any, error) {
	return nil, errors.New("unused")
}

func (s *gatewayStub) DeleteEntity(context.Context, string) error { return nil }

func (s *gatewayStub) QueryEntities(ctx context.Context, params broker.QueryParams) ([]map[string]any, error) {
	if s.queryFn != nil {
		return s.queryFn(ctx, params)
	}
	return nil, nil
}

func (s *gatewayStub) QueryTemporal(ctx context.Context, params broker.TemporalParams) ([]map[string]any, error) {
	if s.temporalFn != nil {
		return s.temporalFn(ctx, params)
	}
	return nil, nil
}

func (s *gatewayStub) Ping(context.Context) bool { return s.healthy }

type stationRepoStub struct {
	listActiveFn func(ctx context.Context) ([]*entities.WeatherStation, error)
}

func (s *stationRepoStub) Create(ctx context.Context, station *entities.WeatherStation) error {
	station.ID = uuid.New()
	return nil
}

func (s *stationRepoStub) FindByID(context.Context, uuid.UUID) (*entities.WeatherStation, error) {
	return nil, domainerrors.ErrNotFound
}

func (s *stationRepoStub) FindByStationID(context.Context, string) (*entities.WeatherStation, error) {
	return nil, domainerrors.ErrNotFound
}

func (s *stationRepoStub) ListActive(ctx context.Context) ([]*entities.WeatherStation, error) {
	if s.listActiveFn != nil {
		return s.listActiveFn(ctx)
	}
	return nil, nil
}

func (s *stationRepoStub) List(context.Context) ([]*entities.WeatherStation, error) {
	return nil, nil
}

func (s *stationRepoStub) Update(context.Context, *entities.WeatherStation) error { return nil }
func (s *stationRepoStub) Delete(context.Context, uuid.UUID) error                { return nil }

type sensorRepoStub struct{}

func (sensorRepoStub) Create(ctx context.Context, sensor *entities.AirQualitySensor) error {
	sensor.ID = uuid.New()
	return nil
}

func (sensorRepoStub) FindByID(context.Context, uuid.UUID) (*entities.AirQualitySensor, error) {
	return nil, domainerrors.ErrNotFound
}

func (sensorRepoStub) FindBySensorID(context.Context, string) (*entities.AirQualitySensor, error) {
	return nil, domainerrors.ErrNotFound
}

func (sensorRepoStub) ListActive(context.Context) ([]*entities.AirQualitySensor, error) {
	return nil, nil
}

func (sensorRepoStub) List(context.Context) ([]*entities.AirQualitySensor, error) { return nil, nil }
func (sensorRepoStub) Update(context.Context, *entities.AirQualitySensor) error   { return nil }
func (sensorRepoStub) Delete(context.Context, uuid.UUID) error                    { return nil }

type weatherObsRepoStub struct {
	createFn func(ctx context.Context, obs *entities.WeatherObservation) error
}

func (s *weatherObsRepoStub) Create(ctx context.Context, obs *entities.WeatherObservation) error {
	if s.createFn != nil {
		return s.createFn(ctx, obs)
	}
	obs.ID = uuid.New()
	return nil
}

func (s *weatherObsRepoStub) FindByID(context.Context, uuid.UUID) (*entities.WeatherObservation, error) {
	return nil, domainerrors.ErrNotFound
}

func (s *weatherObsRepoStub) ListByStation(context.Context, uuid.UUID, utils.PaginationParams) ([]*entities.WeatherObservation, int64, error) {
	return nil, 0, nil
}

func (s *weatherObsRepoStub) ListRecent(context.Context, utils.PaginationParams) ([]*entities.WeatherObservation, int64, error) {
	return nil, 0, nil
}

type airObsRepoStub struct{}

func (airObsRepoStub) Create(ctx context.Context, obs *entities.AirQualityObservation) error {
	obs.ID = uuid.New()
	return nil
}

func (airObsRepoStub) FindByID(context.Context, uuid.UUID) (*entities.AirQualityObservation, error) {
	return nil, domainerrors.ErrNotFound
}

func (airObsRepoStub) ListBySensor(context.Context, uuid.UUID, utils.PaginationParams) ([]*entities.AirQualityObservation, int64, error) {
	return nil, 0, nil
}

func (airObsRepoStub) ListRecent(context.Context, utils.PaginationParams) ([]*entities.AirQualityObservation, int64, error) {
	return nil, 0, nil
}

type limiterStub struct {
	allowFn func(ctx context.Context, providerSlug string, perMinute, perDay int) (bool, error)
}

func (s *limiterStub) Allow(ctx context.Context, providerSlug string, perMinute, perDay int) (bool, error) {
	if s.allowFn != nil {
		return s.allowFn(ctx, providerSlug, perMinute, perDay)
	}
	return true, nil
}
