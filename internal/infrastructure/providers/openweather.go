package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	domainerrors "github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
	"github.com/Hazhaz1412/smart-city-iot/pkg/logger"
	"github.com/Hazhaz1412/smart-city-iot/pkg/metrics"
)

const (
	openWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

	// SlugOpenWeather is the registry slug for OpenWeatherMap.
	SlugOpenWeather = "openweathermap"
)

// OpenWeatherClient fetches current weather from the OpenWeatherMap API.
type OpenWeatherClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewOpenWeatherClient creates a client with the given API key.
// An empty baseURL uses the production endpoint.
func NewOpenWeatherClient(apiKey, baseURL string) *OpenWeatherClient {
	if baseURL == "" {
		baseURL = openWeatherBaseURL
	}
	return &OpenWeatherClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type openWeatherResponse struct {
	Name  string `json:"name"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
		Pressure *float64 `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed *float64 `json:"speed"`
		Deg   *float64 `json:"deg"`
	} `json:"wind"`
	Rain struct {
		OneHour *float64 `json:"1h"`
	} `json:"rain"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Dt int64 `json:"dt"`
}

// GetCurrentWeather fetches the current weather for a coordinate pair.
func (c *OpenWeatherClient) GetCurrentWeather(ctx context.Context, lat, lon float64) (*WeatherResult, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	data, err := c.fetch(ctx, params)
	if err != nil {
		return nil, err
	}
	return parseOpenWeather(data, lat, lon), nil
}

// GetWeatherByCity fetches the current weather by city name. The coordinates
// come back from the provider response.
func (c *OpenWeatherClient) GetWeatherByCity(ctx context.Context, city string) (*WeatherResult, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	data, err := c.fetch(ctx, params)
	if err != nil {
		return nil, err
	}
	return parseOpenWeather(data, data.Coord.Lat, data.Coord.Lon), nil
}

func (c *OpenWeatherClient) fetch(ctx context.Context, params url.Values) (*openWeatherResponse, error) {
	return WithBreaker(ctx, SlugOpenWeather, func() (*openWeatherResponse, error) {
		m := metrics.GetMetrics()
		m.RecordProviderRequest(SlugOpenWeather, "current_weather")
		start := time.Now()

		reqURL := fmt.Sprintf("%s/weather?%s", c.baseURL, params.Encode())

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.http.Do(req)
		m.RecordProviderDuration(SlugOpenWeather, "current_weather", time.Since(start))
		if err != nil {
			m.RecordProviderError(SlugOpenWeather, "current_weather", "transport")
			logger.Error(ctx, "Failed to fetch weather data",
				zap.String("provider", SlugOpenWeather),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%w: %v", domainerrors.ErrProviderUnavailable, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			m.RecordProviderError(SlugOpenWeather, "current_weather", strconv.Itoa(resp.StatusCode))
			logger.Error(ctx, "OpenWeatherMap returned an error",
				zap.Int("status", resp.StatusCode),
				zap.ByteString("body", body),
			)
			return nil, fmt.Errorf("%w: openweathermap status %d", domainerrors.ErrProviderUnavailable, resp.StatusCode)
		}

		var data openWeatherResponse
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			m.RecordProviderError(SlugOpenWeather, "current_weather", "decode")
			return nil, fmt.Errorf("%w: decode: %v", domainerrors.ErrProviderUnavailable, err)
		}
		return &data, nil
	})
}

func parseOpenWeather(data *openWeatherResponse, lat, lon float64) *WeatherResult {
	result := &WeatherResult{
		Latitude:      lat,
		Longitude:     lon,
		LocationName:  data.Name,
		Temperature:   null.Float64FromPtr(data.Main.Temp),
		Humidity:      null.Float64FromPtr(data.Main.Humidity),
		Pressure:      null.Float64FromPtr(data.Main.Pressure),
		WindSpeed:     null.Float64FromPtr(data.Wind.Speed),
		WindDirection: null.Float64FromPtr(data.Wind.Deg),
		Precipitation: null.Float64FromPtr(data.Rain.OneHour),
		ObservedAt:    time.Unix(data.Dt, 0).UTC(),
		Source:        SlugOpenWeather,
	}
	if len(data.Weather) > 0 {
		result.Description = data.Weather[0].Description
	}
	return result
}
