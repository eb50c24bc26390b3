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
	waqiBaseURL = "https://api.waqi.info"

	// SlugWAQI is the registry slug for the World Air Quality Index project.
	SlugWAQI = "waqi"
)

// WAQIClient fetches air quality readings from the aqicn.org API.
type WAQIClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewWAQIClient creates a client with the given API token.
// An empty baseURL uses the production endpoint.
func NewWAQIClient(apiKey, baseURL string) *WAQIClient {
	if baseURL == "" {
		baseURL = waqiBaseURL
	}
	return &WAQIClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type waqiPollutant struct {
	V *float64 `json:"v"`
}

type waqiFeed struct {
	Status string `json:"status"`
	Data   struct {
		// The feed reports "-" instead of a number when a station has no index.
		AQI  json.RawMessage `json:"aqi"`
		City struct {
			Name string    `json:"name"`
			Geo  []float64 `json:"geo"`
		} `json:"city"`
		IAQI struct {
			PM25 waqiPollutant `json:"pm25"`
			PM10 waqiPollutant `json:"pm10"`
			O3   waqiPollutant `json:"o3"`
			NO2  waqiPollutant `json:"no2"`
			SO2  waqiPollutant `json:"so2"`
			CO   waqiPollutant `json:"co"`
		} `json:"iaqi"`
		DominentPol string `json:"dominentpol"`
		Time        struct {
			ISO string `json:"iso"`
		} `json:"time"`
	} `json:"data"`
}

// WAQIStation is a station entry from the WAQI search endpoint.
type WAQIStation struct {
	UID     int    `json:"uid"`
	AQI     string `json:"aqi"`
	Station struct {
		Name string    `json:"name"`
		Geo  []float64 `json:"geo"`
	} `json:"station"`
}

// GetByCity fetches air quality for a named city feed.
func (c *WAQIClient) GetByCity(ctx context.Context, city string) (*AirQualityResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: waqi token not configured", domainerrors.ErrNoCredential)
	}
	return c.feed(ctx, fmt.Sprintf("/feed/%s/", url.PathEscape(city)))
}

// GetByCoordinates fetches air quality for the nearest station to a coordinate pair.
func (c *WAQIClient) GetByCoordinates(ctx context.Context, lat, lon float64) (*AirQualityResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: waqi token not configured", domainerrors.ErrNoCredential)
	}
	return c.feed(ctx, fmt.Sprintf("/feed/geo:%s;%s/",
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lon, 'f', -1, 64)))
}

// SearchStations searches WAQI stations by keyword.
func (c *WAQIClient) SearchStations(ctx context.Context, keyword string) ([]WAQIStation, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: waqi token not configured", domainerrors.ErrNoCredential)
	}

	return WithBreaker(ctx, SlugWAQI, func() ([]WAQIStation, error) {
		params := url.Values{}
		params.Set("keyword", keyword)
		params.Set("token", c.apiKey)

		var payload struct {
			Status string        `json:"status"`
			Data   []WAQIStation `json:"data"`
		}
		if err := c.get(ctx, "/search/?"+params.Encode(), "search", &payload); err != nil {
			return nil, err
		}
		if payload.Status != "ok" {
			return nil, fmt.Errorf("%w: waqi status %q", domainerrors.ErrProviderUnavailable, payload.Status)
		}
		return payload.Data, nil
	})
}

func (c *WAQIClient) feed(ctx context.Context, path string) (*AirQualityResult, error) {
	return WithBreaker(ctx, SlugWAQI, func() (*AirQualityResult, error) {
		params := url.Values{}
		params.Set("token", c.apiKey)

		var payload waqiFeed
		if err := c.get(ctx, path+"?"+params.Encode(), "feed", &payload); err != nil {
			return nil, err
		}
		if payload.Status != "ok" {
			metrics.GetMetrics().RecordProviderError(SlugWAQI, "feed", "api_status")
			logger.Error(ctx, "WAQI API error", zap.String("status", payload.Status))
			return nil, fmt.Errorf("%w: waqi status %q", domainerrors.ErrProviderUnavailable, payload.Status)
		}
		return parseWAQI(&payload), nil
	})
}

func (c *WAQIClient) get(ctx context.Context, pathAndQuery, operation string, out any) error {
	m := metrics.GetMetrics()
	m.RecordProviderRequest(SlugWAQI, operation)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathAndQuery, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	m.RecordProviderDuration(SlugWAQI, operation, time.Since(start))
	if err != nil {
		m.RecordProviderError(SlugWAQI, operation, "transport")
		logger.Error(ctx, "Failed to fetch WAQI data", zap.Error(err))
		return fmt.Errorf("%w: %v", domainerrors.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		m.RecordProviderError(SlugWAQI, operation, strconv.Itoa(resp.StatusCode))
		logger.Error(ctx, "WAQI returned an error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return fmt.Errorf("%w: waqi status %d", domainerrors.ErrProviderUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		m.RecordProviderError(SlugWAQI, operation, "decode")
		return fmt.Errorf("%w: decode: %v", domainerrors.ErrProviderUnavailable, err)
	}
	return nil
}

func parseWAQI(payload *waqiFeed) *AirQualityResult {
	data := payload.Data

	var aqi null.Float64
	var aqiValue float64
	if err := json.Unmarshal(data.AQI, &aqiValue); err == nil {
		aqi = null.Float64From(aqiValue)
	}

	result := &AirQualityResult{
		LocationName:      data.City.Name,
		AQI:               aqi,
		PM25:              null.Float64FromPtr(data.IAQI.PM25.V),
		PM10:              null.Float64FromPtr(data.IAQI.PM10.V),
		O3:                null.Float64FromPtr(data.IAQI.O3.V),
		NO2:               null.Float64FromPtr(data.IAQI.NO2.V),
		SO2:               null.Float64FromPtr(data.IAQI.SO2.V),
		CO:                null.Float64FromPtr(data.IAQI.CO.V),
		DominantPollutant: data.DominentPol,
		ObservedAt:        time.Now().UTC(),
		Source:            SlugWAQI,
	}

	if len(data.City.Geo) > 0 {
		result.Latitude = null.Float64From(data.City.Geo[0])
	}
	if len(data.City.Geo) > 1 {
		result.Longitude = null.Float64From(data.City.Geo[1])
	}

	if data.Time.ISO != "" {
		if ts, err := time.Parse(time.RFC3339, data.Time.ISO); err == nil {
			result.ObservedAt = ts.UTC()
		}
	}

	return result
}
