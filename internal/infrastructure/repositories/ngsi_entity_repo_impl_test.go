package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	domainerrors "github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
	"github.com/Hazhaz1412/smart-city-iot/pkg/utils"
)

func TestNGSIEntityRepositoryUpsertByURN(t *testing.T) {
	db := newTestDB(t)
	createNGSIEntityTable(t, db)
	repo := NewNGSIEntityRepository(db)
	ctx := context.Background()

	first := &entities.NGSIEntity{
		ID:         uuid.New(),
		EntityID:   "urn:ngsi-ld:WeatherStation:hanoi-1",
		EntityType: "WeatherStation",
		Document:   []byte(`{"id":"urn:ngsi-ld:WeatherStation:hanoi-1"}`),
		Latitude:   21.0285,
		Longitude:  105.8542,
	}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &entities.NGSIEntity{
		ID:         uuid.New(),
		EntityID:   "urn:ngsi-ld:WeatherStation:hanoi-1",
		EntityType: "WeatherStation",
		Document:   []byte(`{"id":"urn:ngsi-ld:WeatherStation:hanoi-1","v":2}`),
		Latitude:   21.0285,
		Longitude:  105.8542,
	}
	require.NoError(t, repo.Upsert(ctx, second))
	assert.Equal(t, first.ID, second.ID, "same URN keeps the original row")

	got, err := repo.FindByEntityID(ctx, "urn:ngsi-ld:WeatherStation:hanoi-1")
	require.NoError(t, err)
	assert.Contains(t, string(got.Document), `"v":2`)
}

func TestNGSIEntityRepositoryMarkSynced(t *testing.T) {
	db := newTestDB(t)
	createNGSIEntityTable(t, db)
	repo := NewNGSIEntityRepository(db)
	ctx := context.Background()

	e := &entities.NGSIEntity{
		ID:         uuid.New(),
		EntityID:   "urn:ngsi-ld:StreetLight:sl-1",
		EntityType: "StreetLight",
		Document:   []byte(`{}`),
	}
	require.NoError(t, repo.Upsert(ctx, e))
	assert.False(t, e.SyncedToOrion)

	require.NoError(t, repo.MarkSynced(ctx, e.ID))

	got, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, got.SyncedToOrion)
	assert.NotNil(t, got.LastSyncAt)

	assert.ErrorIs(t, repo.MarkSynced(ctx, uuid.New()), domainerrors.ErrNotFound)
}

func TestNGSIEntityRepositoryListByType(t *testing.T) {
	db := newTestDB(t)
	createNGSIEntityTable(t, db)
	repo := NewNGSIEntityRepository(db)
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		require.NoError(t, repo.Upsert(ctx, &entities.NGSIEntity{
			ID:         uuid.New(),
			EntityID:   "urn:ngsi-ld:WeatherStation:" + id,
			EntityType: "WeatherStation",
			Document:   []byte(`{}`),
		}))
	}
	require.NoError(t, repo.Upsert(ctx, &entities.NGSIEntity{
		ID:         uuid.New(),
		EntityID:   "urn:ngsi-ld:ParkingSpot:p-1",
		EntityType: "ParkingSpot",
		Document:   []byte(`{}`),
	}))

	stations, total, err := repo.List(ctx, "WeatherStation", utils.GetPaginationParams(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, stations, 2)

	all, total, err := repo.List(ctx, "", utils.GetPaginationParams(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)
}
