package providers

import "math"

type aqiBreakpoint struct {
	cLow, cHigh float64
	iLow, iHigh float64
}

// US EPA PM2.5 breakpoints (µg/m³ over 24h) mapped to AQI bands.
var pm25Breakpoints = []aqiBreakpoint{
	{0.0, 12.0, 0, 50},
	{12.1, 35.4, 51, 100},
	{35.5, 55.4, 101, 150},
	{55.5, 150.4, 151, 200},
	{150.5, 250.4, 201, 300},
	{250.5, 350.4, 301, 400},
	{350.5, 500.4, 401, 500},
}

// CalculateAQIFromPM25 computes the US EPA AQI for a PM2.5 concentration
// in µg/m³. Concentrations above the top breakpoint are clamped to 500.
func CalculateAQIFromPM25(pm25 float64) int {
	if pm25 < 0 {
		return 0
	}

	bp := pm25Breakpoints[len(pm25Breakpoints)-1]
	for _, candidate := range pm25Breakpoints {
		if pm25 <= candidate.cHigh {
			bp = candidate
			break
		}
	}

	aqi := linearScale(pm25, bp.cLow, bp.cHigh, bp.iLow, bp.iHigh)
	if aqi > 500 {
		aqi = 500
	}
	return int(math.Round(aqi))
}

// linearScale maps value from [inMin, inMax] onto [outMin, outMax].
func linearScale(value, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	return ((value-inMin)/(inMax-inMin))*(outMax-outMin) + outMin
}

// AQILevel describes an AQI band for display purposes.
type AQILevel struct {
	Level string `json:"level"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// AQILevelFor returns the display band for an AQI value, with
// Vietnamese labels for the city dashboard.
func AQILevelFor(aqi int) AQILevel {
	switch {
	case aqi <= 50:
		return AQILevel{Level: "good", Label: "Tốt", Color: "green"}
	case aqi <= 100:
		return AQILevel{Level: "moderate", Label: "Trung bình", Color: "yellow"}
	case aqi <= 150:
		return AQILevel{Level: "unhealthy_sensitive", Label: "Không tốt cho nhóm nhạy cảm", Color: "orange"}
	case aqi <= 200:
		return AQILevel{Level: "unhealthy", Label: "Không tốt", Color: "red"}
	case aqi <= 300:
		return AQILevel{Level: "very_unhealthy", Label: "Rất không tốt", Color: "purple"}
	default:
		return AQILevel{Level: "hazardous", Label: "Nguy hại", Color: "maroon"}
	}
}
