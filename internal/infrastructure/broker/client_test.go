package broker_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
	"github.com/Hazhaz1412/smart-city-iot/internal/infrastructure/broker"
)

func TestCreateEntity(t *testing.T) {
	var gotBody map[string]any
	var gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/ngsi-ld/v1/entities", r.URL.Path)
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := broker.NewClient(server.URL)
	doc := []byte(`{"id":"urn:ngsi-ld:WeatherStation:hanoi-1","type":"WeatherStation"}`)
	require.NoError(t, client.CreateEntity(context.Background(), doc))

	assert.Equal(t, "application/ld+json", gotContentType)
	assert.Equal(t, "urn:ngsi-ld:WeatherStation:hanoi-1", gotBody["id"])
}

func TestUpsertEntityFallsBackToPatch(t *testing.T) {
	var patched bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusConflict)
		case r.Method == http.MethodPatch:
			require.Equal(t, "/ngsi-ld/v1/entities/urn:ngsi-ld:WeatherStation:hanoi-1/attrs", r.URL.Path)
			var attrs map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&attrs))
			assert.NotContains(t, attrs, "id")
			assert.NotContains(t, attrs, "type")
			patched = true
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer server.Close()

	client := broker.NewClient(server.URL)
	doc := []byte(`{"id":"urn:ngsi-ld:WeatherStation:hanoi-1","type":"WeatherStation","temperature":{"type":"Property","value":28.5}}`)
	require.NoError(t, client.UpsertEntity(context.Background(), "urn:ngsi-ld:WeatherStation:hanoi-1", doc))
	assert.True(t, patched)
}

func TestGetEntityNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := broker.NewClient(server.URL)
	_, err := client.GetEntity(context.Background(), "urn:ngsi-ld:WeatherStation:ghost")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestGetEntity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/ld+json")
		_, _ = w.Write([]byte(`{"id":"urn:ngsi-ld:AirQualitySensor:aq-1","type":"AirQualitySensor"}`))
	}))
	defer server.Close()

	client := broker.NewClient(server.URL)
	entity, err := client.GetEntity(context.Background(), "urn:ngsi-ld:AirQualitySensor:aq-1")
	require.NoError(t, err)
	assert.Equal(t, "AirQualitySensor", entity["type"])
}

func TestQueryEntitiesParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "WeatherObserved", q.Get("type"))
		assert.Equal(t, "temperature>25", q.Get("q"))
		assert.Equal(t, "near;maxDistance==2000", q.Get("georel"))
		assert.Equal(t, "Point", q.Get("geometry"))
		assert.Equal(t, "10", q.Get("limit"))
		_, _ = w.Write([]byte(`[{"id":"urn:ngsi-ld:WeatherObserved:x"}]`))
	}))
	defer server.Close()

	client := broker.NewClient(server.URL)
	result, err := client.QueryEntities(context.Background(), broker.QueryParams{
		Type:        "WeatherObserved",
		Query:       "temperature>25",
		GeoRel:      "near;maxDistance==2000",
		Geometry:    "Point",
		Coordinates: "[105.85,21.02]",
		Limit:       10,
	})
	require.NoError(t, err)
	require.Len(t, result, 1)
}

func TestQueryTemporalBetween(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/ngsi-ld/v1/temporal/entities", r.URL.Path)
		assert.Equal(t, "between", q.Get("timerel"))
		assert.NotEmpty(t, q.Get("timeAt"))
		assert.NotEmpty(t, q.Get("endTimeAt"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := broker.NewClient(server.URL)
	_, err := client.QueryTemporal(context.Background(), broker.TemporalParams{
		Type:      "WeatherObserved",
		TimeRel:   "between",
		TimeAt:    time.Now().Add(-time.Hour),
		EndTimeAt: time.Now(),
	})
	require.NoError(t, err)
}

func TestCreateSubscriptionExtractsID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ngsi-ld/v1/subscriptions", r.URL.Path)
		w.Header().Set("Location", "/ngsi-ld/v1/subscriptions/urn:ngsi-ld:Subscription:abc123")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := broker.NewClient(server.URL)
	id, err := client.CreateSubscription(context.Background(), []byte(`{"type":"Subscription"}`))
	require.NoError(t, err)
	assert.Equal(t, "urn:ngsi-ld:Subscription:abc123", id)
}

func TestBrokerDownReturnsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := broker.NewClient(server.URL)
	err := client.CreateEntity(context.Background(), []byte(`{}`))
	assert.ErrorIs(t, err, errors.ErrBrokerUnavailable)
}

func TestDeleteEntity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := broker.NewClient(server.URL)
	require.NoError(t, client.DeleteEntity(context.Background(), "urn:ngsi-ld:StreetLight:sl-1"))
}
