package ngsild

import (
	"math"
	"time"

	"github.com/volatiletech/null/v8"
)

// ratioPercent computes part/whole as a percentage rounded to two decimals.
// A zero denominator yields 0, never NaN or infinity.
func ratioPercent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(part/whole*100*100) / 100
}

// WaterSupplyPointInput describes a water supply point and its last reading.
type WaterSupplyPointInput struct {
	EntityID      string
	Name          string
	Latitude      float64
	Longitude     float64
	PointType     string
	Status        string
	Capacity      float64
	CurrentLevel  float64
	FlowRate      null.Float64
	Pressure      null.Float64
	PHLevel       null.Float64
	ChlorineLevel null.Float64
	Turbidity     null.Float64
	LastReadingAt time.Time
}

// NewWaterSupplyPoint builds a WaterSupplyPoint entity. The fill percentage
// is derived from capacity and current level, with a zero capacity yielding 0.
func NewWaterSupplyPoint(in WaterSupplyPointInput) (Entity, error) {
	if err := requireField("entity id", in.EntityID); err != nil {
		return nil, err
	}
	if err := requireField("name", in.Name); err != nil {
		return nil, err
	}
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}

	observedAt := in.LastReadingAt
	if observedAt.IsZero() {
		observedAt = time.Now()
	}

	e := NewEntity(in.EntityID, "WaterSupplyPoint")
	e.AddProperty("name", in.Name)
	e.AddGeoProperty(in.Latitude, in.Longitude)
	if in.PointType != "" {
		e.AddProperty("pointType", in.PointType)
	}
	if in.Status != "" {
		e.AddProperty("status", in.Status)
	}

	e.AddProperty("capacity", in.Capacity, WithUnitCode(UnitCubicMetre))
	e.AddProperty("currentLevel", in.CurrentLevel, WithObservedAt(observedAt), WithUnitCode(UnitCubicMetre))
	e.AddProperty("fillPercentage", ratioPercent(in.CurrentLevel, in.Capacity), WithObservedAt(observedAt), WithUnitCode(UnitPercent))
	addMeasurement(e, "flowRate", in.FlowRate, observedAt, UnitLitrePerMinute)
	addMeasurement(e, "pressure", in.Pressure, observedAt, UnitBar)
	addMeasurement(e, "phLevel", in.PHLevel, observedAt, "")
	addMeasurement(e, "chlorineLevel", in.ChlorineLevel, observedAt, "")
	addMeasurement(e, "turbidity", in.Turbidity, observedAt, "")
	return e, nil
}

// DrainagePointInput describes a drainage point and its last reading.
// CurrentLevel is already a percentage of capacity.
type DrainagePointInput struct {
	EntityID      string
	Name          string
	Latitude      float64
	Longitude     float64
	PointType     string
	Status        string
	FloodRisk     string
	Capacity      float64
	CurrentLevel  float64
	FlowRate      null.Float64
	LastReadingAt time.Time
}

// NewDrainagePoint builds a DrainagePoint entity.
func NewDrainagePoint(in DrainagePointInput) (Entity, error) {
	if err := requireField("entity id", in.EntityID); err != nil {
		return nil, err
	}
	if err := requireField("name", in.Name); err != nil {
		return nil, err
	}
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}

	observedAt := in.LastReadingAt
	if observedAt.IsZero() {
		observedAt = time.Now()
	}

	e := NewEntity(in.EntityID, "DrainagePoint")
	e.AddProperty("name", in.Name)
	e.AddGeoProperty(in.Latitude, in.Longitude)
	if in.PointType != "" {
		e.AddProperty("pointType", in.PointType)
	}
	if in.Status != "" {
		e.AddProperty("status", in.Status)
	}
	if in.FloodRisk != "" {
		e.AddProperty("floodRisk", in.FloodRisk)
	}

	e.AddProperty("capacity", in.Capacity, WithUnitCode(UnitCubicMetre))
	e.AddProperty("currentLevel", in.CurrentLevel, WithObservedAt(observedAt), WithUnitCode(UnitPercent))
	addMeasurement(e, "flowRate", in.FlowRate, observedAt, UnitCubicMetrePerH)
	return e, nil
}

// StreetLightInput describes a street light pole.
type StreetLightInput struct {
	EntityID            string
	Name                string
	Latitude            float64
	Longitude           float64
	LampType            string
	Status              string
	PowerRating         null.Float64
	BrightnessLevel     null.Float64
	EnergyConsumedToday null.Float64
	OperatingHours      null.Float64
	IsSmart             bool
	LastReadingAt       time.Time
}

// NewStreetLight builds a StreetLight entity.
func NewStreetLight(in StreetLightInput) (Entity, error) {
	if err := requireField("entity id", in.EntityID); err != nil {
		return nil, err
	}
	if err := requireField("name", in.Name); err != nil {
		return nil, err
	}
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}

	observedAt := in.LastReadingAt
	if observedAt.IsZero() {
		observedAt = time.Now()
	}

	e := NewEntity(in.EntityID, "StreetLight")
	e.AddProperty("name", in.Name)
	e.AddGeoProperty(in.Latitude, in.Longitude)
	if in.LampType != "" {
		e.AddProperty("lampType", in.LampType)
	}
	if in.Status != "" {
		e.AddProperty("status", in.Status)
	}
	e.AddProperty("isSmart", in.IsSmart)

	addMeasurement(e, "powerRating", in.PowerRating, observedAt, UnitKilowatt)
	addMeasurement(e, "brightnessLevel", in.BrightnessLevel, observedAt, UnitPercent)
	addMeasurement(e, "energyConsumedToday", in.EnergyConsumedToday, observedAt, UnitKilowattHour)
	addMeasurement(e, "totalOperatingHours", in.OperatingHours, observedAt, UnitHour)
	return e, nil
}

// EnergyMeterInput describes an energy meter and its last reading.
type EnergyMeterInput struct {
	EntityID         string
	Name             string
	Latitude         float64
	Longitude        float64
	MeterType        string
	Status           string
	CurrentPower     null.Float64
	Voltage          null.Float64
	Current          null.Float64
	PowerFactor      null.Float64
	Frequency        null.Float64
	TodayConsumption null.Float64
	MonthConsumption null.Float64
	LastReadingAt    time.Time
}

// NewEnergyMeter builds an EnergyMeter entity.
func NewEnergyMeter(in EnergyMeterInput) (Entity, error) {
	if err := requireField("entity id", in.EntityID); err != nil {
		return nil, err
	}
	if err := requireField("name", in.Name); err != nil {
		return nil, err
	}
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}

	observedAt := in.LastReadingAt
	if observedAt.IsZero() {
		observedAt = time.Now()
	}

	e := NewEntity(in.EntityID, "EnergyMeter")
	e.AddProperty("name", in.Name)
	e.AddGeoProperty(in.Latitude, in.Longitude)
	if in.MeterType != "" {
		e.AddProperty("meterType", in.MeterType)
	}
	if in.Status != "" {
		e.AddProperty("status", in.Status)
	}

	addMeasurement(e, "currentPower", in.CurrentPower, observedAt, UnitKilowatt)
	addMeasurement(e, "voltage", in.Voltage, observedAt, UnitVolt)
	addMeasurement(e, "current", in.Current, observedAt, UnitAmpere)
	addMeasurement(e, "powerFactor", in.PowerFactor, observedAt, "")
	addMeasurement(e, "frequency", in.Frequency, observedAt, UnitHertz)
	addMeasurement(e, "todayConsumption", in.TodayConsumption, observedAt, UnitKilowattHour)
	addMeasurement(e, "monthConsumption", in.MonthConsumption, observedAt, UnitKilowattHour)
	return e, nil
}

// TelecomTowerInput describes a telecom tower and its current load.
type TelecomTowerInput struct {
	EntityID          string
	Name              string
	Latitude          float64
	Longitude         float64
	TowerType         string
	Status            string
	Height            null.Float64
	CoverageRadius    null.Float64
	ActiveConnections int
	MaxConnections    int
	BandwidthUsage    null.Float64
	SignalStrength    null.Float64
	LastReadingAt     time.Time
}

// NewTelecomTower builds a TelecomTower entity. The utilization rate is
// derived from active and maximum connections; zero capacity yields 0.
func NewTelecomTower(in TelecomTowerInput) (Entity, error) {
	if err := requireField("entity id", in.EntityID); err != nil {
		return nil, err
	}
	if err := requireField("name", in.Name); err != nil {
		return nil, err
	}
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}

	observedAt := in.LastReadingAt
	if observedAt.IsZero() {
		observedAt = time.Now()
	}

	e := NewEntity(in.EntityID, "TelecomTower")
	e.AddProperty("name", in.Name)
	e.AddGeoProperty(in.Latitude, in.Longitude)
	if in.TowerType != "" {
		e.AddProperty("towerType", in.TowerType)
	}
	if in.Status != "" {
		e.AddProperty("status", in.Status)
	}

	addMeasurement(e, "height", in.Height, observedAt, UnitMetre)
	addMeasurement(e, "coverageRadius", in.CoverageRadius, observedAt, UnitMetre)
	e.AddProperty("activeConnections", in.ActiveConnections, WithObservedAt(observedAt))
	e.AddProperty("maxConnections", in.MaxConnections)
	e.AddProperty("utilizationRate", ratioPercent(float64(in.ActiveConnections), float64(in.MaxConnections)), WithObservedAt(observedAt), WithUnitCode(UnitPercent))
	addMeasurement(e, "bandwidthUsage", in.BandwidthUsage, observedAt, UnitPercent)
	addMeasurement(e, "signalStrength", in.SignalStrength, observedAt, UnitDecibelMilliwatt)
	return e, nil
}

// BusStationInput describes a bus station or stop.
type BusStationInput struct {
	EntityID             string
	Name                 string
	Latitude             float64
	Longitude            float64
	StationType          string
	Status               string
	Routes               []string
	HasShelter           bool
	WheelchairAccessible bool
}

// NewBusStation builds a BusStation entity.
func NewBusStation(in BusStationInput) (Entity, error) {
	if err := requireField("entity id", in.EntityID); err != nil {
		return nil, err
	}
	if err := requireField("name", in.Name); err != nil {
		return nil, err
	}
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}

	e := NewEntity(in.EntityID, "BusStation")
	e.AddProperty("name", in.Name)
	e.AddGeoProperty(in.Latitude, in.Longitude)
	if in.StationType != "" {
		e.AddProperty("stationType", in.StationType)
	}
	if in.Status != "" {
		e.AddProperty("status", in.Status)
	}
	if len(in.Routes) > 0 {
		e.AddProperty("routes", in.Routes)
	}
	e.AddProperty("hasShelter", in.HasShelter)
	e.AddProperty("wheelchairAccessible", in.WheelchairAccessible)
	return e, nil
}

// ParkingSpotInput describes a parking facility and its availability.
type ParkingSpotInput struct {
	EntityID        string
	Name            string
	Latitude        float64
	Longitude       float64
	ParkingType     string
	Status          string
	TotalSpaces     int
	AvailableSpaces int
	PricePerHour    null.Float64
	Currency        string
	ObservedAt      time.Time
}

// NewParkingSpot builds a ParkingSpot entity. The occupancy rate is derived
// from total and available spaces; a facility with zero spaces reports 0.
func NewParkingSpot(in ParkingSpotInput) (Entity, error) {
	if err := requireField("entity id", in.EntityID); err != nil {
		return nil, err
	}
	if err := requireField("name", in.Name); err != nil {
		return nil, err
	}
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}

	observedAt := in.ObservedAt
	if observedAt.IsZero() {
		observedAt = time.Now()
	}

	e := NewEntity(in.EntityID, "ParkingSpot")
	e.AddProperty("name", in.Name)
	e.AddGeoProperty(in.Latitude, in.Longitude)
	if in.ParkingType != "" {
		e.AddProperty("parkingType", in.ParkingType)
	}
	if in.Status != "" {
		e.AddProperty("status", in.Status)
	}

	e.AddProperty("totalSpaces", in.TotalSpaces)
	e.AddProperty("availableSpaces", in.AvailableSpaces, WithObservedAt(observedAt))
	occupied := float64(in.TotalSpaces - in.AvailableSpaces)
	e.AddProperty("occupancyRate", ratioPercent(occupied, float64(in.TotalSpaces)), WithObservedAt(observedAt), WithUnitCode(UnitPercent))
	if in.PricePerHour.Valid {
		e.AddProperty("pricePerHour", in.PricePerHour.Float64)
		if in.Currency != "" {
			e.AddProperty("currency", in.Currency)
		}
	}
	return e, nil
}

// TrafficIncidentInput describes a reported traffic incident.
type TrafficIncidentInput struct {
	EntityID     string
	Title        string
	Latitude     float64
	Longitude    float64
	IncidentType string
	Severity     string
	Status       string
	Description  string
	ReportedAt   time.Time
}

// NewTrafficIncident builds a TrafficIncident entity.
func NewTrafficIncident(in TrafficIncidentInput) (Entity, error) {
	if err := requireField("entity id", in.EntityID); err != nil {
		return nil, err
	}
	if err := requireField("title", in.Title); err != nil {
		return nil, err
	}
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}

	reportedAt := in.ReportedAt
	if reportedAt.IsZero() {
		reportedAt = time.Now()
	}

	e := NewEntity(in.EntityID, "TrafficIncident")
	e.AddProperty("name", in.Title)
	e.AddGeoProperty(in.Latitude, in.Longitude)
	if in.IncidentType != "" {
		e.AddProperty("incidentType", in.IncidentType)
	}
	if in.Severity != "" {
		e.AddProperty("severity", in.Severity)
	}
	if in.Status != "" {
		e.AddProperty("status", in.Status)
	}
	if in.Description != "" {
		e.AddProperty("description", in.Description)
	}
	e.AddProperty("dateReported", reportedAt.UTC().Format(time.RFC3339))
	return e, nil
}
