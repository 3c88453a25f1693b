// Package display derives the UI-ready view of a probe reading and hands it
// from the poller to the renderer.
package display

import (
	"fmt"
	"time"

	"meater/internal/meater"
)

// State is the UI-ready projection of one Snapshot. It is replaced as a
// whole on every publish and never patched field by field.
type State struct {
	DeviceID string

	InternalTempF float64
	AmbientTempF  float64
	TargetTempF   float64
	PeakTempF     float64

	TimeElapsed   string
	TimeRemaining string
	CookInfo      string

	InternalTempBand Band
	// Progress is internal/target in Fahrenheit, clamped to [0,1].
	Progress float64

	UpdatedAt time.Time

	// Ready is false only for the startup default.
	Ready bool
	// Seq is assigned by Channel.Publish.
	Seq uint64
}

// DefaultState is what the renderer shows before the first publish.
func DefaultState() State {
	return State{
		TimeElapsed:   ZeroDuration,
		TimeRemaining: ZeroDuration,
	}
}

// FromSnapshot applies the formatter and classifier to a decoded reading.
func FromSnapshot(snap meater.Snapshot) State {
	s := State{
		DeviceID:         snap.DeviceID,
		InternalTempF:    CelsiusToFahrenheit(snap.InternalTempC),
		AmbientTempF:     CelsiusToFahrenheit(snap.AmbientTempC),
		TimeElapsed:      ZeroDuration,
		TimeRemaining:    ZeroDuration,
		InternalTempBand: BandFor(snap),
		UpdatedAt:        snap.UpdatedAt,
		Ready:            true,
	}

	if c := snap.Cook; c != nil {
		s.TargetTempF = CelsiusToFahrenheit(c.TargetTempC)
		s.PeakTempF = CelsiusToFahrenheit(c.PeakTempC)
		s.TimeElapsed = FormatDuration(c.ElapsedS)
		s.TimeRemaining = FormatDuration(c.RemainingS)
		s.CookInfo = fmt.Sprintf("%s: %s", c.Name, c.State)
		s.Progress = progress(s.InternalTempF, s.TargetTempF)
	}
	return s
}

// HasCook reports whether the state was derived from an active cook.
func (s State) HasCook() bool {
	return s.CookInfo != ""
}

func progress(internalF, targetF float64) float64 {
	if targetF <= 0 || !finite(internalF) || !finite(targetF) {
		return 0
	}
	p := internalF / targetF
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
