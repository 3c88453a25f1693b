package display

import (
	"math"
	"testing"

	apperrors "meater/internal/errors"
	"meater/internal/meater"

	"github.com/stretchr/testify/assert"
)

func cookingSnapshot(internal, target float64) meater.Snapshot {
	return meater.Snapshot{
		DeviceID:      "0",
		InternalTempC: internal,
		AmbientTempC:  30.0,
		Cook: &meater.CookState{
			ID:          "0",
			Name:        "Test Cook",
			State:       "Configured",
			TargetTempC: target,
			PeakTempC:   21.0,
			ElapsedS:    1124123,
			RemainingS:  142112,
		},
	}
}

func TestBandFor_NoCook(t *testing.T) {
	for _, temps := range [][2]float64{{0, 0}, {21, 22}, {-10, 300}, {100, 100}} {
		snap := meater.Snapshot{InternalTempC: temps[0], AmbientTempC: temps[1]}
		assert.Equal(t, BandGreen, BandFor(snap))
	}
}

func TestBandFor_ReferenceCases(t *testing.T) {
	tests := []struct {
		name     string
		internal float64
		target   float64
		expected Band
	}{
		{name: "green", internal: 51.0, target: 52.0, expected: BandGreen},
		{name: "light green", internal: 31.88, target: 35.56, expected: BandLightGreen},
		{name: "red", internal: 21.0, target: 95.0, expected: BandRed},
		// 69.98F / 140F rounds up to exactly 50%.
		{name: "red max value", internal: 21.1, target: 60.0, expected: BandRed},
		// 71.6F / 140F
		{name: "red-orange", internal: 22.0, target: 60.0, expected: BandRedOrange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BandFor(cookingSnapshot(tt.internal, tt.target)))
		})
	}
}

func TestClassifyBand_Ranges(t *testing.T) {
	// Target 100C is 212F.
	tests := []struct {
		internal float64
		expected Band
	}{
		{internal: -30, expected: BandRed},
		{internal: 40, expected: BandRed},
		{internal: 45, expected: BandRedOrange},
		{internal: 50, expected: BandRedOrange},
		{internal: 55, expected: BandOrange},
		{internal: 65, expected: BandAmber},
		{internal: 75, expected: BandAmber},
		{internal: 78, expected: BandYellow},
		{internal: 85, expected: BandLightGreen},
		{internal: 92, expected: BandLightGreen},
		{internal: 93, expected: BandGreen},
		{internal: 110, expected: BandGreen},
	}

	for _, tt := range tests {
		band, err := ClassifyBand(tt.internal, 100)
		assert.NoError(t, err)
		assert.Equal(t, tt.expected, band, "internal %.1fC", tt.internal)
	}
}

func TestClassifyBand_Ambiguous(t *testing.T) {
	tests := []struct {
		name     string
		internal float64
		target   float64
	}{
		{name: "zero target", internal: 50, target: 0},
		{name: "negative target", internal: 50, target: -17.7778},
		{name: "NaN internal", internal: math.NaN(), target: 60},
		{name: "infinite target", internal: 50, target: math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			band, err := ClassifyBand(tt.internal, tt.target)
			assert.Equal(t, BandRed, band)
			assert.ErrorIs(t, err, apperrors.ErrClassificationAmbiguous)

			// The snapshot path logs and never panics.
			assert.NotPanics(t, func() {
				assert.Equal(t, BandRed, BandFor(cookingSnapshot(tt.internal, tt.target)))
			})
		})
	}
}

func TestBand_String(t *testing.T) {
	assert.Equal(t, "red", BandRed.String())
	assert.Equal(t, "green", BandGreen.String())
	assert.Equal(t, "band(9)", Band(9).String())
}
