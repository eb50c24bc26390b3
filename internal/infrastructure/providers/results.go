package providers

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// WeatherResult is a normalized weather reading from an external provider.
// Absent measurements stay invalid rather than defaulting to zero.
type WeatherResult struct {
	Latitude      float64      `json:"latitude"`
	Longitude     float64      `json:"longitude"`
	LocationName  string       `json:"location_name"`
	Temperature   null.Float64 `json:"temperature"`
	Humidity      null.Float64 `json:"humidity"`
	Pressure      null.Float64 `json:"pressure"`
	WindSpeed     null.Float64 `json:"wind_speed"`
	WindDirection null.Float64 `json:"wind_direction"`
	Precipitation null.Float64 `json:"precipitation"`
	Description   string       `json:"weather_description"`
	ObservedAt    time.Time    `json:"observed_at"`
	Source        string       `json:"source"`
}

// AirQualityResult is a normalized air quality reading from an external provider.
type AirQualityResult struct {
	Latitude          null.Float64 `json:"latitude"`
	Longitude         null.Float64 `json:"longitude"`
	LocationName      string       `json:"location_name"`
	AQI               null.Float64 `json:"aqi"`
	PM25              null.Float64 `json:"pm25"`
	PM10              null.Float64 `json:"pm10"`
	O3                null.Float64 `json:"o3"`
	NO2               null.Float64 `json:"no2"`
	SO2               null.Float64 `json:"so2"`
	CO                null.Float64 `json:"co"`
	DominantPollutant string       `json:"dominant_pollutant,omitempty"`
	ObservedAt        time.Time    `json:"observed_at"`
	Source            string       `json:"source"`
}
