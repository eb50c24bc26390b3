package models

// AllModels lists every persisted model for schema migration.
func AllModels() []any {
	return []any{
		&User{},
		&ExternalAPIProvider{},
		&UserAPIKey{},
		&SystemAPIKey{},
		&WeatherStation{},
		&AirQualitySensor{},
		&WeatherObservation{},
		&AirQualityObservation{},
		&NGSIEntity{},
		&WaterSupplyPoint{},
		&DrainagePoint{},
		&StreetLight{},
		&EnergyMeter{},
		&TelecomTower{},
		&TrafficFlowObservation{},
		&TrafficIncident{},
		&BusStation{},
		&ParkingSpot{},
	}
}
