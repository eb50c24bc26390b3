package ngsild

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// addMeasurement emits a measurement Property with observedAt and an
// optional unit code. Invalid (absent) values produce no key at all;
// omission, not a null value, signals "not observed".
func addMeasurement(e Entity, name string, value null.Float64, observedAt time.Time, unitCode string) {
	if !value.Valid {
		return
	}
	opts := []PropertyOption{WithObservedAt(observedAt)}
	if unitCode != "" {
		opts = append(opts, WithUnitCode(unitCode))
	}
	e.AddProperty(name, value.Float64, opts...)
}

// NewWeatherStation builds a WeatherStation entity. Address is optional.
func NewWeatherStation(stationID, name string, latitude, longitude float64, address string) (Entity, error) {
	if err := requireField("station id", stationID); err != nil {
		return nil, err
	}
	if err := requireField("name", name); err != nil {
		return nil, err
	}
	if err := validateCoordinates(latitude, longitude); err != nil {
		return nil, err
	}

	e := NewEntity(stationID, "WeatherStation")
	e.AddProperty("name", name)
	e.AddGeoProperty(latitude, longitude)
	if address != "" {
		e.AddProperty("address", address)
	}
	return e, nil
}

// NewAirQualitySensor builds an AirQualitySensor entity.
func NewAirQualitySensor(sensorID, name string, latitude, longitude float64) (Entity, error) {
	if err := requireField("sensor id", sensorID); err != nil {
		return nil, err
	}
	if err := requireField("name", name); err != nil {
		return nil, err
	}
	if err := validateCoordinates(latitude, longitude); err != nil {
		return nil, err
	}

	e := NewEntity(sensorID, "AirQualitySensor")
	e.AddProperty("name", name)
	e.AddProperty("category", []string{"sensor"})
	e.AddGeoProperty(latitude, longitude)
	return e, nil
}

// WeatherObservedInput carries one weather reading. Absent measurements are
// invalid null values and are omitted from the entity.
type WeatherObservedInput struct {
	ObservationID string
	LocationName  string
	Latitude      float64
	Longitude     float64
	Temperature   null.Float64
	Humidity      null.Float64
	Pressure      null.Float64
	WindSpeed     null.Float64
	WindDirection null.Float64
	Precipitation null.Float64
	Description   string
	ObservedAt    time.Time
}

// NewWeatherObserved builds a WeatherObserved entity from a reading.
func NewWeatherObserved(in WeatherObservedInput) (Entity, error) {
	if err := requireField("observation id", in.ObservationID); err != nil {
		return nil, err
	}
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}

	observedAt := in.ObservedAt
	if observedAt.IsZero() {
		observedAt = time.Now()
	}

	e := NewEntity(in.ObservationID, "WeatherObserved")
	e.AddGeoProperty(in.Latitude, in.Longitude)
	if in.LocationName != "" {
		e.AddProperty("name", in.LocationName)
	}

	addMeasurement(e, "temperature", in.Temperature, observedAt, UnitCelsius)
	addMeasurement(e, "humidity", in.Humidity, observedAt, UnitPercent)
	addMeasurement(e, "pressure", in.Pressure, observedAt, UnitHectopascal)
	addMeasurement(e, "windSpeed", in.WindSpeed, observedAt, UnitMetrePerSecond)
	addMeasurement(e, "windDirection", in.WindDirection, observedAt, UnitDegree)
	addMeasurement(e, "precipitation", in.Precipitation, observedAt, UnitMillimetre)

	if in.Description != "" {
		e.AddProperty("weatherType", in.Description)
	}
	e.AddProperty("dateObserved", observedAt.UTC().Format(time.RFC3339))
	return e, nil
}

// AirQualityObservedInput carries one air quality reading.
type AirQualityObservedInput struct {
	ObservationID string
	LocationName  string
	Latitude      float64
	Longitude     float64
	AQI           null.Float64
	PM25          null.Float64
	PM10          null.Float64
	NO2           null.Float64
	O3            null.Float64
	CO            null.Float64
	SO2           null.Float64
	ObservedAt    time.Time
}

// NewAirQualityObserved builds an AirQualityObserved entity. Pollutant
// concentrations carry the GQ unit code; the index itself is unitless.
func NewAirQualityObserved(in AirQualityObservedInput) (Entity, error) {
	if err := requireField("observation id", in.ObservationID); err != nil {
		return nil, err
	}
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}

	observedAt := in.ObservedAt
	if observedAt.IsZero() {
		observedAt = time.Now()
	}

	e := NewEntity(in.ObservationID, "AirQualityObserved")
	e.AddGeoProperty(in.Latitude, in.Longitude)
	if in.LocationName != "" {
		e.AddProperty("name", in.LocationName)
	}

	addMeasurement(e, "airQualityIndex", in.AQI, observedAt, "")
	addMeasurement(e, "pm25", in.PM25, observedAt, UnitMicrogramPerM3)
	addMeasurement(e, "pm10", in.PM10, observedAt, UnitMicrogramPerM3)
	addMeasurement(e, "no2", in.NO2, observedAt, UnitMicrogramPerM3)
	addMeasurement(e, "o3", in.O3, observedAt, UnitMicrogramPerM3)
	addMeasurement(e, "co", in.CO, observedAt, UnitMicrogramPerM3)
	addMeasurement(e, "so2", in.SO2, observedAt, UnitMicrogramPerM3)

	e.AddProperty("dateObserved", observedAt.UTC().Format(time.RFC3339))
	return e, nil
}

// NewTrafficFlowObserved builds a TrafficFlowObserved entity from traffic
// counters measured at one road segment.
func NewTrafficFlowObserved(observationID string, latitude, longitude float64, intensity int, occupancy, averageSpeed float64, observedAt time.Time) (Entity, error) {
	if err := requireField("observation id", observationID); err != nil {
		return nil, err
	}
	if err := validateCoordinates(latitude, longitude); err != nil {
		return nil, err
	}
	if observedAt.IsZero() {
		observedAt = time.Now()
	}

	e := NewEntity(observationID, "TrafficFlowObserved")
	e.AddGeoProperty(latitude, longitude)
	e.AddProperty("intensity", intensity, WithObservedAt(observedAt))
	e.AddProperty("occupancy", occupancy, WithObservedAt(observedAt), WithUnitCode(UnitPercent))
	e.AddProperty("averageVehicleSpeed", averageSpeed, WithObservedAt(observedAt), WithUnitCode(UnitKilometrePerHour))
	e.AddProperty("dateObserved", observedAt.UTC().Format(time.RFC3339))
	return e, nil
}

// Observation is a SOSA Observation entity.
type Observation struct {
	Entity
}

// NewObservation starts a SOSA Observation.
func NewObservation(observationID string) Observation {
	return Observation{NewEntity(observationID, "Observation")}
}

// SetObservedProperty links the observation to the property it measured.
func (o Observation) SetObservedProperty(propertyURI string) Observation {
	o.AddRelationship("observedProperty", propertyURI)
	return o
}

// SetSensor links the observation to the sensor that produced it.
func (o Observation) SetSensor(sensorURN string) Observation {
	o.AddRelationship("madeBySensor", sensorURN)
	return o
}

// SetResult records the simple result and its timestamps.
func (o Observation) SetResult(value any, resultTime time.Time, phenomenonTime *time.Time) Observation {
	o.AddProperty("hasSimpleResult", value)
	o.AddProperty("resultTime", resultTime.UTC().Format(time.RFC3339))
	if phenomenonTime != nil {
		o.AddProperty("phenomenonTime", phenomenonTime.UTC().Format(time.RFC3339))
	}
	return o
}

// Sensor is a SOSA Sensor entity.
type Sensor struct {
	Entity
}

// NewSensor starts a SOSA Sensor.
func NewSensor(sensorID string) Sensor {
	return Sensor{NewEntity(sensorID, "Sensor")}
}

// SetObserves declares the property this sensor observes.
func (s Sensor) SetObserves(propertyURI string) Sensor {
	s.AddRelationship("observes", propertyURI)
	return s
}

// SetHostedBy declares the platform hosting this sensor.
func (s Sensor) SetHostedBy(platformURN string) Sensor {
	s.AddRelationship("isHostedBy", platformURN)
	return s
}
