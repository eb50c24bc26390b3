package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateAQIFromPM25(t *testing.T) {
	tests := []struct {
		name string
		pm25 float64
		want int
	}{
		{"zero concentration", 0, 0},
		{"good band upper edge", 12.0, 50},
		{"moderate band", 35.4, 100},
		{"unhealthy for sensitive groups", 55.4, 150},
		{"unhealthy band", 150.4, 200},
		{"very unhealthy band", 250.4, 300},
		{"hazardous band", 350.4, 400},
		{"top of scale", 500.4, 500},
		{"beyond scale clamps to 500", 999.9, 500},
		{"negative clamps to zero", -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateAQIFromPM25(tt.pm25))
		})
	}
}

func TestCalculateAQIFromPM25_MidBand(t *testing.T) {
	// 23.75 sits halfway through the moderate band (12.1..35.4 -> 51..100)
	got := CalculateAQIFromPM25(23.75)
	assert.InDelta(t, 76, got, 1)
}

func TestAQILevelFor(t *testing.T) {
	assert.Equal(t, "good", AQILevelFor(35).Level)
	assert.Equal(t, "moderate", AQILevelFor(100).Level)
	assert.Equal(t, "unhealthy_sensitive", AQILevelFor(150).Level)
	assert.Equal(t, "unhealthy", AQILevelFor(180).Level)
	assert.Equal(t, "very_unhealthy", AQILevelFor(250).Level)
	assert.Equal(t, "hazardous", AQILevelFor(400).Level)
}
