package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	"github.com/Hazhaz1412/smart-city-iot/internal/domain/repositories"
	"github.com/Hazhaz1412/smart-city-iot/internal/usecases"
)

// Mock WaterSupplyPointRepository
type MockWaterSupplyPointRepository struct {
	mock.Mock
}

func (m *MockWaterSupplyPointRepository) Create(ctx context.Context, point *entities.WaterSupplyPoint) error {
	args := m.Called(ctx, point)
	if point.ID == uuid.Nil {
		point.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockWaterSupplyPointRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.WaterSupplyPoint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WaterSupplyPoint), args.Error(1)
}

func (m *MockWaterSupplyPointRepository) List(ctx context.Context) ([]*entities.WaterSupplyPoint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.WaterSupplyPoint), args.Error(1)
}

func (m *MockWaterSupplyPointRepository) Update(ctx context.Context, point *entities.WaterSupplyPoint) error {
	return m.Called(ctx, point).Error(0)
}

func (m *MockWaterSupplyPointRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Mock StreetLightRepository
type MockStreetLightRepository struct {
	mock.Mock
}

func (m *MockStreetLightRepository) Create(ctx context.Context, light *entities.StreetLight) error {
	args := m.Called(ctx, light)
	if light.ID == uuid.Nil {
		light.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockStreetLightRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.StreetLight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.StreetLight), args.Error(1)
}

func (m *MockStreetLightRepository) List(ctx context.Context) ([]*entities.StreetLight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.StreetLight), args.Error(1)
}

func (m *MockStreetLightRepository) Update(ctx context.Context, light *entities.StreetLight) error {
	return m.Called(ctx, light).Error(0)
}

func (m *MockStreetLightRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// The drainage, meter and tower repos follow the same CRUD surface; the
// usecase tests below only need water and street light flows plus nil-safe
// stand-ins for the rest.
type stubDrainageRepo struct{ repositories.DrainagePointRepository }
type stubMeterRepo struct{ repositories.EnergyMeterRepository }
type stubTowerRepo struct{ repositories.TelecomTowerRepository }

type infraFixture struct {
	waterRepo  *MockWaterSupplyPointRepository
	lightRepo  *MockStreetLightRepository
	entityRepo *MockNGSIEntityRepository
	broker     *MockBrokerGateway
	uc         *usecases.InfrastructureUsecase
}

func newInfraFixture() *infraFixture {
	f := &infraFixture{
		waterRepo:  new(MockWaterSupplyPointRepository),
		lightRepo:  new(MockStreetLightRepository),
		entityRepo: new(MockNGSIEntityRepository),
		broker:     new(MockBrokerGateway),
	}
	publisher := usecases.NewEntityPublisher(f.entityRepo, f.broker)
	f.uc = usecases.NewInfrastructureUsecase(
		f.waterRepo, stubDrainageRepo{}, f.lightRepo, stubMeterRepo{}, stubTowerRepo{}, publisher,
	)
	return f
}

func (f *infraFixture) stubPublishing() {
	f.entityRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*entities.NGSIEntity")).Return(nil)
	f.entityRepo.On("MarkSynced", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil)
	f.broker.On("UpsertEntity", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("[]uint8")).Return(nil)
}

func TestSaveWaterSupplyPoint_CreateDefaultsStatus(t *testing.T) {
	f := newInfraFixture()
	f.stubPublishing()

	f.waterRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.WaterSupplyPoint")).Return(nil)

	point := &entities.WaterSupplyPoint{
		EntityID:     "water-plant-thu-duc",
		Name:         "Thu Duc Water Plant",
		Latitude:     10.85,
		Longitude:    106.75,
		PointType:    "treatment_plant",
		Capacity:     300000,
		CurrentLevel: 210000,
		Pressure:     null.Float64From(2.4),
	}

	require.NoError(t, f.uc.SaveWaterSupplyPoint(context.Background(), point))
	assert.Equal(t, entities.StatusOperational, point.Status)
	f.waterRepo.AssertCalled(t, "Create", mock.Anything, point)
	f.broker.AssertNumberOfCalls(t, "UpsertEntity", 1)
}

func TestSaveWaterSupplyPoint_UpdateWhenIDSet(t *testing.T) {
	f := newInfraFixture()
	f.stubPublishing()

	point := &entities.WaterSupplyPoint{
		ID:        uuid.New(),
		EntityID:  "water-plant-thu-duc",
		Name:      "Thu Duc Water Plant",
		Latitude:  10.85,
		Longitude: 106.75,
		Status:    entities.StatusMaintenance,
	}
	f.waterRepo.On("Update", mock.Anything, point).Return(nil)

	require.NoError(t, f.uc.SaveWaterSupplyPoint(context.Background(), point))
	assert.Equal(t, entities.StatusMaintenance, point.Status)
	f.waterRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSaveWaterSupplyPoint_InvalidCoordinates(t *testing.T) {
	f := newInfraFixture()

	point := &entities.WaterSupplyPoint{
		EntityID:  "bad-point",
		Name:      "Bad Point",
		Latitude:  200,
		Longitude: 106.75,
	}

	require.Error(t, f.uc.SaveWaterSupplyPoint(context.Background(), point))
	f.waterRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSaveStreetLight(t *testing.T) {
	f := newInfraFixture()
	f.stubPublishing()

	f.lightRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.StreetLight")).Return(nil)

	light := &entities.StreetLight{
		EntityID:        "light-nguyen-hue-12",
		Name:            "Nguyen Hue 12",
		Latitude:        10.7735,
		Longitude:       106.7034,
		LampType:        "led",
		PowerRating:     null.Float64From(120),
		BrightnessLevel: null.Float64From(80),
		IsSmart:         true,
	}

	require.NoError(t, f.uc.SaveStreetLight(context.Background(), light))
	assert.Equal(t, entities.StatusOperational, light.Status)
	f.broker.AssertNumberOfCalls(t, "UpsertEntity", 1)
}

func TestListWaterSupplyPoints(t *testing.T) {
	f := newInfraFixture()

	f.waterRepo.On("List", mock.Anything).Return([]*entities.WaterSupplyPoint{{Name: "Plant A"}}, nil)

	list, err := f.uc.ListWaterSupplyPoints(context.Background())

	require.NoError(t, err)
	assert.Len(t, list, 1)
}
