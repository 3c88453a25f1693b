package display

import (
	"fmt"
	"log/slog"
	"math"

	apperrors "meater/internal/errors"
	"meater/internal/meater"
)

// Band is an ordinal progress category for the internal temperature.
type Band uint8

const (
	BandRed Band = iota
	BandRedOrange
	BandOrange
	BandAmber
	BandYellow
	BandLightGreen
	BandGreen
)

// upper bounds (inclusive) of the percentage ranges for BandRed..BandLightGreen.
var bandLimits = [...]int{50, 59, 69, 79, 87, 94}

func (b Band) String() string {
	switch b {
	case BandRed:
		return "red"
	case BandRedOrange:
		return "red-orange"
	case BandOrange:
		return "orange"
	case BandAmber:
		return "amber"
	case BandYellow:
		return "yellow"
	case BandLightGreen:
		return "light-green"
	case BandGreen:
		return "green"
	default:
		return fmt.Sprintf("band(%d)", uint8(b))
	}
}

// ClassifyBand maps an internal and target temperature (both Celsius) to a
// band using ceil(F(internal)/F(target)*100). Invalid input returns BandRed
// together with an error wrapping ErrClassificationAmbiguous.
func ClassifyBand(internalC, targetC float64) (Band, error) {
	if !finite(internalC) || !finite(targetC) || targetC <= 0 {
		return BandRed, fmt.Errorf("%w: internal=%v target=%v", apperrors.ErrClassificationAmbiguous, internalC, targetC)
	}

	internalF := CelsiusToFahrenheit(internalC)
	targetF := CelsiusToFahrenheit(targetC)

	pct := math.Ceil((internalF / targetF) * 100)
	for i, limit := range bandLimits {
		if pct <= float64(limit) {
			return Band(i), nil
		}
	}
	return BandGreen, nil
}

// BandFor classifies a snapshot. Without an active cook there is no target,
// which is shown as BandGreen. Ambiguous input is logged and shown as BandRed.
func BandFor(snap meater.Snapshot) Band {
	if snap.Cook == nil {
		return BandGreen
	}

	band, err := ClassifyBand(snap.InternalTempC, snap.Cook.TargetTempC)
	if err != nil {
		slog.Warn("Falling back to default temperature band", "device", snap.DeviceID, "error", err)
	}
	return band
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
