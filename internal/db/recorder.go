package db

import (
	"context"
	"time"

	"meater/internal/meater"
	"meater/internal/metrics"
)

// Recorder writes every published snapshot to a Store.
type Recorder struct {
	store   Store
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewRecorder returns a Recorder backed by store. m may be nil.
func NewRecorder(store Store, m *metrics.Metrics) *Recorder {
	return &Recorder{store: store, metrics: m, now: time.Now}
}

// Observe persists snap as a Reading stamped with the current time.
func (r *Recorder) Observe(ctx context.Context, snap meater.Snapshot) error {
	err := r.store.SaveReading(ctx, ReadingFromSnapshot(snap, r.now()))
	if r.metrics != nil {
		metrics.ObserveResult(r.metrics.HistoryWrites, err)
	}
	return err
}
