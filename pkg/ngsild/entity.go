package ngsild

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidCoordinate is returned when a latitude is outside [-90, 90]
	// or a longitude is outside [-180, 180].
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrMissingRequiredField is returned when a builder is given an empty
	// identifying id or name.
	ErrMissingRequiredField = errors.New("missing required field")
)

// Entity is an NGSI-LD entity document under construction. Every top-level
// key other than id, type and @context is an attribute (Property,
// Relationship or GeoProperty).
type Entity map[string]any

// NewEntity starts an entity with the urn:ngsi-ld:<Type>:<localID> identifier
// and the standard context array.
func NewEntity(localID, entityType string) Entity {
	return Entity{
		"id":       fmt.Sprintf("urn:ngsi-ld:%s:%s", entityType, localID),
		"type":     entityType,
		"@context": Context(),
	}
}

// ID returns the entity URN.
func (e Entity) ID() string {
	id, _ := e["id"].(string)
	return id
}

// Type returns the entity type.
func (e Entity) Type() string {
	t, _ := e["type"].(string)
	return t
}

// PropertyOption customises a Property attribute.
type PropertyOption func(map[string]any)

// WithObservedAt stamps the property with the observation instant.
func WithObservedAt(t time.Time) PropertyOption {
	return func(p map[string]any) {
		p["observedAt"] = t.UTC().Format(time.RFC3339)
	}
}

// WithUnitCode attaches a UN/CEFACT unit-of-measure code.
func WithUnitCode(code string) PropertyOption {
	return func(p map[string]any) {
		p["unitCode"] = code
	}
}

// AddProperty sets a Property attribute on the entity.
func (e Entity) AddProperty(name string, value any, opts ...PropertyOption) Entity {
	prop := map[string]any{
		"type":  "Property",
		"value": value,
	}
	for _, opt := range opts {
		opt(prop)
	}
	e[name] = prop
	return e
}

// AddRelationship sets a Relationship attribute pointing at another entity.
func (e Entity) AddRelationship(name, targetURN string) Entity {
	e[name] = map[string]any{
		"type":   "Relationship",
		"object": targetURN,
	}
	return e
}

// AddGeoProperty sets a Point GeoProperty. Coordinates are emitted in
// GeoJSON order, longitude first, the inverse of the (lat, lon) parameters.
func (e Entity) AddGeoProperty(latitude, longitude float64) Entity {
	return e.AddNamedGeoProperty("location", latitude, longitude)
}

// AddNamedGeoProperty is AddGeoProperty under a caller-chosen attribute name.
func (e Entity) AddNamedGeoProperty(name string, latitude, longitude float64) Entity {
	e[name] = map[string]any{
		"type": "GeoProperty",
		"value": map[string]any{
			"type":        "Point",
			"coordinates": []float64{longitude, latitude},
		},
	}
	return e
}

// ToJSON renders the document for an application/ld+json body.
func (e Entity) ToJSON() ([]byte, error) {
	return json.Marshal(map[string]any(e))
}

// validateCoordinates rejects out-of-range WGS84 decimal degrees.
func validateCoordinates(latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidCoordinate, latitude)
	}
	if longitude < -180 || longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidCoordinate, longitude)
	}
	return nil
}

// requireField rejects empty identifying fields.
func requireField(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s", ErrMissingRequiredField, field)
	}
	return nil
}
