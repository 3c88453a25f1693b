package display

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCelsiusToFahrenheit(t *testing.T) {
	assert.Equal(t, 32.0, CelsiusToFahrenheit(0))
	assert.Equal(t, 212.0, CelsiusToFahrenheit(100))
	assert.Equal(t, -40.0, CelsiusToFahrenheit(-40))
	assert.InDelta(t, 98.6, CelsiusToFahrenheit(37), 1e-9)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		seconds  int32
		expected string
	}{
		{name: "Estimating sentinel", seconds: -1, expected: "Estimating..."},
		{name: "Zero", seconds: 0, expected: "00:00:00"},
		{name: "Other negative clamps to zero", seconds: -2, expected: "00:00:00"},
		{name: "Min int32 clamps to zero", seconds: math.MinInt32, expected: "00:00:00"},
		{name: "One second", seconds: 1, expected: "00:00:01"},
		{name: "One of each", seconds: 3661, expected: "01:01:01"},
		{name: "Just under a day", seconds: 86399, expected: "23:59:59"},
		{name: "Hundred hours", seconds: 360000, expected: "100:00:00"},
		{name: "Max int32", seconds: math.MaxInt32, expected: "596523:14:07"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.seconds))
		})
	}
}
