package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
)

func freshBreakers(t *testing.T) {
	t.Helper()
	SetGlobalRegistry(NewBreakerRegistry(DefaultBreakerConfig))
}

func TestOpenWeatherClient_GetCurrentWeather(t *testing.T) {
	freshBreakers(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "secret-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "21.0285", r.URL.Query().Get("lat"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"name": "Hanoi",
			"coord": {"lat": 21.0285, "lon": 105.8542},
			"main": {"temp": 31.2, "humidity": 78, "pressure": 1008},
			"wind": {"speed": 3.6, "deg": 140},
			"weather": [{"description": "scattered clouds"}],
			"dt": 1735689600
		}`))
	}))
	defer server.Close()

	client := NewOpenWeatherClient("secret-key", server.URL)
	result, err := client.GetCurrentWeather(context.Background(), 21.0285, 105.8542)

	require.NoError(t, err)
	assert.Equal(t, "Hanoi", result.LocationName)
	assert.Equal(t, 21.0285, result.Latitude)
	assert.Equal(t, "openweathermap", result.Source)
	require.True(t, result.Temperature.Valid)
	assert.Equal(t, 31.2, result.Temperature.Float64)
	require.True(t, result.WindDirection.Valid)
	assert.Equal(t, 140.0, result.WindDirection.Float64)
	assert.False(t, result.Precipitation.Valid)
	assert.Equal(t, "scattered clouds", result.Description)
	assert.Equal(t, int64(1735689600), result.ObservedAt.Unix())
}

func TestOpenWeatherClient_GetWeatherByCity(t *testing.T) {
	freshBreakers(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Da Nang", r.URL.Query().Get("q"))
		assert.Empty(t, r.URL.Query().Get("lat"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"name": "Da Nang",
			"coord": {"lat": 16.0544, "lon": 108.2022},
			"main": {"temp": 29.0, "humidity": 70, "pressure": 1010},
			"wind": {"speed": 5.1, "deg": 90},
			"weather": [{"description": "light rain"}],
			"rain": {"1h": 0.4},
			"dt": 1735693200
		}`))
	}))
	defer server.Close()

	client := NewOpenWeatherClient("secret-key", server.URL)
	result, err := client.GetWeatherByCity(context.Background(), "Da Nang")

	require.NoError(t, err)
	assert.Equal(t, 16.0544, result.Latitude)
	assert.Equal(t, 108.2022, result.Longitude)
	require.True(t, result.Precipitation.Valid)
	assert.Equal(t, 0.4, result.Precipitation.Float64)
}

func TestOpenWeatherClient_MissingMeasurementsStayNull(t *testing.T) {
	freshBreakers(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name": "Hue", "main": {"temp": 25.5}, "dt": 1735689600}`))
	}))
	defer server.Close()

	client := NewOpenWeatherClient("secret-key", server.URL)
	result, err := client.GetCurrentWeather(context.Background(), 16.4637, 107.5909)

	require.NoError(t, err)
	assert.True(t, result.Temperature.Valid)
	assert.False(t, result.Humidity.Valid)
	assert.False(t, result.Pressure.Valid)
	assert.False(t, result.WindSpeed.Valid)
}

func TestOpenWeatherClient_UpstreamError(t *testing.T) {
	freshBreakers(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod": 401, "message": "Invalid API key"}`))
	}))
	defer server.Close()

	client := NewOpenWeatherClient("bad-key", server.URL)
	_, err := client.GetCurrentWeather(context.Background(), 21.0285, 105.8542)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrProviderUnavailable)
}

func TestOpenWeatherClient_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	freshBreakers(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewOpenWeatherClient("secret-key", server.URL)
	for i := 0; i < 6; i++ {
		_, _ = client.GetCurrentWeather(context.Background(), 21.0, 105.0)
	}

	_, err := client.GetCurrentWeather(context.Background(), 21.0, 105.0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker open")
}
