package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	domainerrors "github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
	"github.com/Hazhaz1412/smart-city-iot/pkg/logger"
	"github.com/Hazhaz1412/smart-city-iot/pkg/metrics"
)

const (
	entitiesPath      = "/ngsi-ld/v1/entities"
	subscriptionsPath = "/ngsi-ld/v1/subscriptions"
	temporalPath      = "/ngsi-ld/v1/temporal/entities"

	contentTypeLDJSON = "application/ld+json"
)

// Client talks to an NGSI-LD context broker (Orion-LD).
// Requests fail fast; there is no retry here.
type Client struct {
	baseURL string
	http    *http.Client
	metrics *metrics.Metrics
}

// NewClient creates a broker client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		metrics: metrics.GetMetrics(),
	}
}

// QueryParams holds NGSI-LD entity query parameters.
type QueryParams struct {
	Type        string
	Query       string // q expression, e.g. temperature>25
	GeoRel      string // e.g. near;maxDistance==2000
	Geometry    string // e.g. Point
	Coordinates string // e.g. [105.85,21.02]
	Limit       int
	Offset      int
}

// TemporalParams holds NGSI-LD temporal query parameters.
type TemporalParams struct {
	Type      string
	TimeRel   string // before, after, between
	TimeAt    time.Time
	EndTimeAt time.Time
	Limit     int
}

// CreateEntity pushes a new entity document to the broker.
func (c *Client) CreateEntity(ctx context.Context, document []byte) error {
	return c.send(ctx, http.MethodPost, c.baseURL+entitiesPath, document, "create_entity", http.StatusCreated)
}

// UpsertEntity creates the entity, falling back to an attribute update
// when the broker already has it.
func (c *Client) UpsertEntity(ctx context.Context, entityID string, document []byte) error {
	err := c.CreateEntity(ctx, document)
	if err == nil {
		return nil
	}

	// 409 means the entity exists; patch its attributes instead.
	var attrs map[string]any
	if jsonErr := json.Unmarshal(document, &attrs); jsonErr != nil {
		return err
	}
	delete(attrs, "id")
	delete(attrs, "type")
	patch, jsonErr := json.Marshal(attrs)
	if jsonErr != nil {
		return err
	}
	return c.UpdateEntityAttrs(ctx, entityID, patch)
}

// GetEntity retrieves an entity by its URN.
func (c *Client) GetEntity(ctx context.Context, entityID string) (map[string]any, error) {
	endpoint := c.baseURL + entitiesPath + "/" + url.PathEscape(entityID)

	body, status, err := c.do(ctx, http.MethodGet, endpoint, nil, "get_entity")
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, domainerrors.ErrNotFound
	}
	if status != http.StatusOK {
		return nil, c.unexpected(ctx, "get_entity", status, body)
	}

	var entity map[string]any
	if err := json.Unmarshal(body, &entity); err != nil {
		return nil, fmt.Errorf("decode entity: %w", err)
	}
	return entity, nil
}

// UpdateEntityAttrs patches attributes of an existing entity.
func (c *Client) UpdateEntityAttrs(ctx context.Context, entityID string, attrs []byte) error {
	endpoint := c.baseURL + entitiesPath + "/" + url.PathEscape(entityID) + "/attrs"
	return c.send(ctx, http.MethodPatch, endpoint, attrs, "update_entity", http.StatusNoContent)
}

// DeleteEntity removes an entity from the broker.
func (c *Client) DeleteEntity(ctx context.Context, entityID string) error {
	endpoint := c.baseURL + entitiesPath + "/" + url.PathEscape(entityID)
	return c.send(ctx, http.MethodDelete, endpoint, nil, "delete_entity", http.StatusNoContent)
}

// QueryEntities queries entities by type, attribute expression and geo filter.
func (c *Client) QueryEntities(ctx context.Context, params QueryParams) ([]map[string]any, error) {
	values := url.Values{}
	if params.Type != "" {
		values.Set("type", params.Type)
	}
	if params.Query != "" {
		values.Set("q", params.Query)
	}
	if params.GeoRel != "" {
		values.Set("georel", params.GeoRel)
		values.Set("geometry", params.Geometry)
		values.Set("coordinates", params.Coordinates)
	}
	if params.Limit > 0 {
		values.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		values.Set("offset", strconv.Itoa(params.Offset))
	}

	endpoint := c.baseURL + entitiesPath + "?" + values.Encode()

	body, status, err := c.do(ctx, http.MethodGet, endpoint, nil, "query_entities")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, c.unexpected(ctx, "query_entities", status, body)
	}

	var result []map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode entities: %w", err)
	}
	return result, nil
}

// QueryTemporal queries the temporal representation of entities.
func (c *Client) QueryTemporal(ctx context.Context, params TemporalParams) ([]map[string]any, error) {
	values := url.Values{}
	if params.Type != "" {
		values.Set("type", params.Type)
	}
	if params.TimeRel != "" {
		values.Set("timerel", params.TimeRel)
		values.Set("timeAt", params.TimeAt.UTC().Format(time.RFC3339))
		if params.TimeRel == "between" {
			values.Set("endTimeAt", params.EndTimeAt.UTC().Format(time.RFC3339))
		}
	}
	if params.Limit > 0 {
		values.Set("lastN", strconv.Itoa(params.Limit))
	}

	endpoint := c.baseURL + temporalPath + "?" + values.Encode()

	body, status, err := c.do(ctx, http.MethodGet, endpoint, nil, "query_temporal")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, c.unexpected(ctx, "query_temporal", status, body)
	}

	var result []map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode temporal entities: %w", err)
	}
	return result, nil
}

// CreateSubscription registers a subscription and returns the broker's
// subscription ID taken from the Location header.
func (c *Client) CreateSubscription(ctx context.Context, subscription []byte) (string, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+subscriptionsPath, bytes.NewReader(subscription))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentTypeLDJSON)

	resp, err := c.http.Do(req)
	c.metrics.RecordBrokerRequest("create_subscription", time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domainerrors.ErrBrokerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", c.unexpected(ctx, "create_subscription", resp.StatusCode, body)
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return "", fmt.Errorf("broker returned no subscription location")
	}
	return subscriptionIDFromLocation(location), nil
}

// GetSubscription retrieves a subscription by ID.
func (c *Client) GetSubscription(ctx context.Context, subscriptionID string) (map[string]any, error) {
	endpoint := c.baseURL + subscriptionsPath + "/" + url.PathEscape(subscriptionID)

	body, status, err := c.do(ctx, http.MethodGet, endpoint, nil, "get_subscription")
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, domainerrors.ErrNotFound
	}
	if status != http.StatusOK {
		return nil, c.unexpected(ctx, "get_subscription", status, body)
	}

	var sub map[string]any
	if err := json.Unmarshal(body, &sub); err != nil {
		return nil, fmt.Errorf("decode subscription: %w", err)
	}
	return sub, nil
}

// DeleteSubscription removes a subscription.
func (c *Client) DeleteSubscription(ctx context.Context, subscriptionID string) error {
	endpoint := c.baseURL + subscriptionsPath + "/" + url.PathEscape(subscriptionID)
	return c.send(ctx, http.MethodDelete, endpoint, nil, "delete_subscription", http.StatusNoContent)
}

// Ping reports whether the broker answers entity queries.
func (c *Client) Ping(ctx context.Context) bool {
	_, status, err := c.do(ctx, http.MethodGet, c.baseURL+entitiesPath+"?limit=1&type=Ping", nil, "ping")
	return err == nil && status < http.StatusInternalServerError
}

func (c *Client) send(ctx context.Context, method, endpoint string, body []byte, operation string, wantStatus int) error {
	respBody, status, err := c.do(ctx, method, endpoint, body, operation)
	if err != nil {
		return err
	}
	if status != wantStatus {
		return c.unexpected(ctx, operation, status, respBody)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, operation string) ([]byte, int, error) {
	start := time.Now()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", contentTypeLDJSON)
	}
	req.Header.Set("Accept", contentTypeLDJSON)

	resp, err := c.http.Do(req)
	c.metrics.RecordBrokerRequest(operation, time.Since(start), err)
	if err != nil {
		logger.Error(ctx, "context broker request failed",
			zap.String("operation", operation),
			zap.Error(err))
		return nil, 0, fmt.Errorf("%w: %v", domainerrors.ErrBrokerUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return respBody, resp.StatusCode, nil
}

func (c *Client) unexpected(ctx context.Context, operation string, status int, body []byte) error {
	logger.Error(ctx, "context broker returned error",
		zap.String("operation", operation),
		zap.Int("status", status),
		zap.ByteString("body", body))
	return fmt.Errorf("%w: %s returned status %d", domainerrors.ErrBrokerUnavailable, operation, status)
}

func subscriptionIDFromLocation(location string) string {
	for i := len(location) - 1; i >= 0; i-- {
		if location[i] == '/' {
			return location[i+1:]
		}
	}
	return location
}
