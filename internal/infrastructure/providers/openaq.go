package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	domainerrors "github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
	"github.com/Hazhaz1412/smart-city-iot/pkg/logger"
	"github.com/Hazhaz1412/smart-city-iot/pkg/metrics"
)

const (
	openAQBaseURL = "https://api.openaq.org/v3"

	// SlugOpenAQ is the registry slug for the OpenAQ platform.
	SlugOpenAQ = "openaq"
)

// openaqParamNames maps OpenAQ parameter names to our measurement fields.
var openaqParamNames = map[string]string{
	"pm2.5": "pm25",
	"pm10":  "pm10",
	"no2":   "no2",
	"o3":    "o3",
	"co":    "co",
	"so2":   "so2",
}

// OpenAQClient fetches air quality measurements from the OpenAQ v3 API.
type OpenAQClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewOpenAQClient creates a client with the given API key.
// An empty baseURL uses the production endpoint.
func NewOpenAQClient(apiKey, baseURL string) *OpenAQClient {
	if baseURL == "" {
		baseURL = openAQBaseURL
	}
	return &OpenAQClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type openaqLocationsResponse struct {
	Results []struct {
		ID int `json:"id"`
	} `json:"results"`
}

type openaqLatestResponse struct {
	Results []struct {
		Parameter struct {
			Name string `json:"name"`
		} `json:"parameter"`
		Value    *float64 `json:"value"`
		Datetime struct {
			UTC string `json:"utc"`
		} `json:"datetime"`
		Location struct {
			Name        string `json:"name"`
			Coordinates struct {
				Latitude  *float64 `json:"latitude"`
				Longitude *float64 `json:"longitude"`
			} `json:"coordinates"`
		} `json:"location"`
	} `json:"results"`
}

// GetLatestMeasurements returns the latest measurements from the station
// closest to the given coordinates, within radiusMeters. Returns ErrNoDataFound
// when no station is in range.
func (c *OpenAQClient) GetLatestMeasurements(ctx context.Context, lat, lon, radiusMeters float64) (*AirQualityResult, error) {
	return WithBreaker(ctx, SlugOpenAQ, func() (*AirQualityResult, error) {
		params := url.Values{}
		params.Set("coordinates", fmt.Sprintf("%s,%s",
			strconv.FormatFloat(lat, 'f', -1, 64),
			strconv.FormatFloat(lon, 'f', -1, 64)))
		params.Set("radius", strconv.Itoa(int(radiusMeters/1000)))
		params.Set("limit", "10")
		params.Set("order_by", "distance")

		var locations openaqLocationsResponse
		if err := c.get(ctx, "/locations?"+params.Encode(), "locations", &locations); err != nil {
			return nil, err
		}
		if len(locations.Results) == 0 {
			return nil, domainerrors.ErrNoDataFound
		}

		return c.locationLatest(ctx, locations.Results[0].ID)
	})
}

// GetMeasurementsByLocation returns the latest measurements for a known
// OpenAQ location ID.
func (c *OpenAQClient) GetMeasurementsByLocation(ctx context.Context, locationID int) (*AirQualityResult, error) {
	return WithBreaker(ctx, SlugOpenAQ, func() (*AirQualityResult, error) {
		return c.locationLatest(ctx, locationID)
	})
}

func (c *OpenAQClient) locationLatest(ctx context.Context, locationID int) (*AirQualityResult, error) {
	var latest openaqLatestResponse
	if err := c.get(ctx, fmt.Sprintf("/locations/%d/latest", locationID), "latest", &latest); err != nil {
		return nil, err
	}
	if len(latest.Results) == 0 {
		return nil, domainerrors.ErrNoDataFound
	}
	return parseOpenAQ(&latest), nil
}

func (c *OpenAQClient) get(ctx context.Context, pathAndQuery, operation string, out any) error {
	m := metrics.GetMetrics()
	m.RecordProviderRequest(SlugOpenAQ, operation)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathAndQuery, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	m.RecordProviderDuration(SlugOpenAQ, operation, time.Since(start))
	if err != nil {
		m.RecordProviderError(SlugOpenAQ, operation, "transport")
		logger.Error(ctx, "Failed to fetch air quality data", zap.Error(err))
		return fmt.Errorf("%w: %v", domainerrors.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		m.RecordProviderError(SlugOpenAQ, operation, strconv.Itoa(resp.StatusCode))
		logger.Error(ctx, "OpenAQ returned an error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return fmt.Errorf("%w: openaq status %d", domainerrors.ErrProviderUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		m.RecordProviderError(SlugOpenAQ, operation, "decode")
		return fmt.Errorf("%w: decode: %v", domainerrors.ErrProviderUnavailable, err)
	}
	return nil
}

func parseOpenAQ(latest *openaqLatestResponse) *AirQualityResult {
	result := &AirQualityResult{
		ObservedAt: time.Now().UTC(),
		Source:     SlugOpenAQ,
	}

	values := make(map[string]*float64)
	timeSet := false
	for _, entry := range latest.Results {
		if field, ok := openaqParamNames[strings.ToLower(entry.Parameter.Name)]; ok {
			values[field] = entry.Value
		}

		if result.LocationName == "" {
			result.LocationName = entry.Location.Name
			result.Latitude = null.Float64FromPtr(entry.Location.Coordinates.Latitude)
			result.Longitude = null.Float64FromPtr(entry.Location.Coordinates.Longitude)
		}

		if !timeSet && entry.Datetime.UTC != "" {
			if ts, err := time.Parse(time.RFC3339, entry.Datetime.UTC); err == nil {
				result.ObservedAt = ts.UTC()
				timeSet = true
			}
		}
	}

	result.PM25 = null.Float64FromPtr(values["pm25"])
	result.PM10 = null.Float64FromPtr(values["pm10"])
	result.NO2 = null.Float64FromPtr(values["no2"])
	result.O3 = null.Float64FromPtr(values["o3"])
	result.CO = null.Float64FromPtr(values["co"])
	result.SO2 = null.Float64FromPtr(values["so2"])

	if !result.AQI.Valid && result.PM25.Valid {
		result.AQI = null.Float64From(float64(CalculateAQIFromPM25(result.PM25.Float64)))
	}

	return result
}
