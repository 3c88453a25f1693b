package db

import (
	"context"
	"time"

	"meater/internal/meater"
)

// Store interface defines the methods for persistent reading history
type Store interface {
	Close() error
	SaveReading(ctx context.Context, r Reading) error
	QueryHistory(ctx context.Context, limit int) ([]Reading, error)
}

// Reading is one recorded probe snapshot.
type Reading struct {
	ID            int64     `json:"id"`
	DeviceID      string    `json:"device_id"`
	CookID        string    `json:"cook_id,omitempty"`
	CookName      string    `json:"cook_name,omitempty"`
	CookState     string    `json:"cook_state,omitempty"`
	InternalTempC float64   `json:"internal_temp_c"`
	AmbientTempC  float64   `json:"ambient_temp_c"`
	TargetTempC   float64   `json:"target_temp_c"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// ReadingFromSnapshot flattens a snapshot for storage.
func ReadingFromSnapshot(snap meater.Snapshot, at time.Time) Reading {
	r := Reading{
		DeviceID:      snap.DeviceID,
		InternalTempC: snap.InternalTempC,
		AmbientTempC:  snap.AmbientTempC,
		RecordedAt:    at.UTC(),
	}
	if c := snap.Cook; c != nil {
		r.CookID = c.ID
		r.CookName = c.Name
		r.CookState = c.State
		r.TargetTempC = c.TargetTempC
	}
	return r
}
