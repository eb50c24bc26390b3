package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	"github.com/Hazhaz1412/smart-city-iot/internal/usecases"
	"github.com/Hazhaz1412/smart-city-iot/pkg/utils"
)

// Mock TrafficFlowRepository
type MockTrafficFlowRepository struct {
	mock.Mock
}

func (m *MockTrafficFlowRepository) Create(ctx context.Context, obs *entities.TrafficFlowObservation) error {
	args := m.Called(ctx, obs)
	if obs.ID == uuid.Nil {
		obs.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockTrafficFlowRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.TrafficFlowObservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TrafficFlowObservation), args.Error(1)
}

func (m *MockTrafficFlowRepository) ListRecent(ctx context.Context, p utils.PaginationParams) ([]*entities.TrafficFlowObservation, int64, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.TrafficFlowObservation), args.Get(1).(int64), args.Error(2)
}

// Mock TrafficIncidentRepository
type MockTrafficIncidentRepository struct {
	mock.Mock
}

func (m *MockTrafficIncidentRepository) Create(ctx context.Context, incident *entities.TrafficIncident) error {
	args := m.Called(ctx, incident)
	if incident.ID == uuid.Nil {
		incident.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockTrafficIncidentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.TrafficIncident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TrafficIncident), args.Error(1)
}

func (m *MockTrafficIncidentRepository) List(ctx context.Context, status string) ([]*entities.TrafficIncident, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TrafficIncident), args.Error(1)
}

func (m *MockTrafficIncidentRepository) Update(ctx context.Context, incident *entities.TrafficIncident) error {
	return m.Called(ctx, incident).Error(0)
}

func (m *MockTrafficIncidentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Mock BusStationRepository
type MockBusStationRepository struct {
	mock.Mock
}

func (m *MockBusStationRepository) Create(ctx context.Context, station *entities.BusStation) error {
	return m.Called(ctx, station).Error(0)
}

func (m *MockBusStationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.BusStation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BusStation), args.Error(1)
}

func (m *MockBusStationRepository) List(ctx context.Context) ([]*entities.BusStation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.BusStation), args.Error(1)
}

func (m *MockBusStationRepository) Update(ctx context.Context, station *entities.BusStation) error {
	return m.Called(ctx, station).Error(0)
}

func (m *MockBusStationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Mock ParkingSpotRepository
type MockParkingSpotRepository struct {
	mock.Mock
}

func (m *MockParkingSpotRepository) Create(ctx context.Context, spot *entities.ParkingSpot) error {
	return m.Called(ctx, spot).Error(0)
}

func (m *MockParkingSpotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ParkingSpot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ParkingSpot), args.Error(1)
}

func (m *MockParkingSpotRepository) List(ctx context.Context) ([]*entities.ParkingSpot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ParkingSpot), args.Error(1)
}

func (m *MockParkingSpotRepository) Update(ctx context.Context, spot *entities.ParkingSpot) error {
	return m.Called(ctx, spot).Error(0)
}

func (m *MockParkingSpotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type trafficFixture struct {
	flowRepo     *MockTrafficFlowRepository
	incidentRepo *MockTrafficIncidentRepository
	busRepo      *MockBusStationRepository
	parkingRepo  *MockParkingSpotRepository
	entityRepo   *MockNGSIEntityRepository
	broker       *MockBrokerGateway
	uc           *usecases.TrafficUsecase
}

func newTrafficFixture() *trafficFixture {
	f := &trafficFixture{
		flowRepo:     new(MockTrafficFlowRepository),
		incidentRepo: new(MockTrafficIncidentRepository),
		busRepo:      new(MockBusStationRepository),
		parkingRepo:  new(MockParkingSpotRepository),
		entityRepo:   new(MockNGSIEntityRepository),
		broker:       new(MockBrokerGateway),
	}
	publisher := usecases.NewEntityPublisher(f.entityRepo, f.broker)
	f.uc = usecases.NewTrafficUsecase(f.flowRepo, f.incidentRepo, f.busRepo, f.parkingRepo, publisher)
	return f
}

func (f *trafficFixture) stubPublishing() {
	f.entityRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*entities.NGSIEntity")).Return(nil)
	f.entityRepo.On("MarkSynced", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil)
	f.broker.On("UpsertEntity", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("[]uint8")).Return(nil)
}

func TestRecordFlowObservation_FillsDefaults(t *testing.T) {
	f := newTrafficFixture()
	f.stubPublishing()

	f.flowRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.TrafficFlowObservation")).Return(nil)

	obs := &entities.TrafficFlowObservation{
		Latitude:     10.78,
		Longitude:    106.69,
		RoadName:     "Vo Van Kiet",
		Intensity:    420,
		Occupancy:    null.Float64From(65),
		AverageSpeed: null.Float64From(28.5),
	}

	require.NoError(t, f.uc.RecordFlowObservation(context.Background(), obs))
	assert.False(t, obs.ObservedAt.IsZero())
	assert.NotEmpty(t, obs.ObservationID)
	f.broker.AssertNumberOfCalls(t, "UpsertEntity", 1)
}

func TestSaveIncident_Defaults(t *testing.T) {
	f := newTrafficFixture()
	f.stubPublishing()

	f.incidentRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.TrafficIncident")).Return(nil)

	incident := &entities.TrafficIncident{
		EntityID:     "incident-vvk-001",
		Title:        "Two-vehicle collision",
		Latitude:     10.78,
		Longitude:    106.69,
		IncidentType: "accident",
	}

	require.NoError(t, f.uc.SaveIncident(context.Background(), incident))
	assert.Equal(t, entities.SeverityLow, incident.Severity)
	assert.Equal(t, "active", incident.Status)
	assert.False(t, incident.ReportedAt.IsZero())
}

func TestResolveIncident(t *testing.T) {
	f := newTrafficFixture()
	f.stubPublishing()

	existing := &entities.TrafficIncident{
		ID:         uuid.New(),
		EntityID:   "incident-vvk-001",
		Title:      "Two-vehicle collision",
		Latitude:   10.78,
		Longitude:  106.69,
		Severity:   entities.SeverityMedium,
		Status:     "active",
		ReportedAt: time.Now().UTC().Add(-time.Hour),
	}

	f.incidentRepo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	f.incidentRepo.On("Update", mock.Anything, existing).Return(nil)

	resolved, err := f.uc.ResolveIncident(context.Background(), existing.ID)

	require.NoError(t, err)
	assert.Equal(t, "resolved", resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)
	f.incidentRepo.AssertCalled(t, "Update", mock.Anything, existing)
}

func TestSaveBusStation(t *testing.T) {
	f := newTrafficFixture()
	f.stubPublishing()

	f.busRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.BusStation")).Return(nil)

	station := &entities.BusStation{
		EntityID:   "bus-ben-thanh",
		Name:       "Ben Thanh Terminal",
		Latitude:   10.7721,
		Longitude:  106.6983,
		Routes:     []string{"01", "03", "19"},
		HasShelter: true,
	}

	require.NoError(t, f.uc.SaveBusStation(context.Background(), station))
	assert.Equal(t, "operational", station.Status)
}

func TestSaveParkingSpot(t *testing.T) {
	f := newTrafficFixture()
	f.stubPublishing()

	f.parkingRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.ParkingSpot")).Return(nil)

	spot := &entities.ParkingSpot{
		EntityID:        "parking-takashimaya",
		Name:            "Takashimaya Basement",
		Latitude:        10.7731,
		Longitude:       106.7011,
		ParkingType:     "underground",
		TotalSpaces:     250,
		AvailableSpaces: 40,
		PricePerHour:    null.Float64From(25000),
		Currency:        "VND",
	}

	require.NoError(t, f.uc.SaveParkingSpot(context.Background(), spot))
	assert.Equal(t, "open", spot.Status)
	f.broker.AssertNumberOfCalls(t, "UpsertEntity", 1)
}

func TestListFlowObservations(t *testing.T) {
	f := newTrafficFixture()

	p := utils.PaginationParams{Page: 1, Limit: 20}
	f.flowRepo.On("ListRecent", mock.Anything, p).Return([]*entities.TrafficFlowObservation{{Intensity: 100}}, int64(1), nil)

	list, total, err := f.uc.ListFlowObservations(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}
