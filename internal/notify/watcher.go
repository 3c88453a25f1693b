package notify

import (
	"context"
	"errors"
	"fmt"

	"meater/internal/display"
	"meater/internal/meater"
	"meater/internal/metrics"
)

// Notifier sends one message for an event.
type Notifier interface {
	Notify(ctx context.Context, eventType, threadKey, message string) error
}

// CookWatcher turns a stream of snapshots into cook notifications: a cook
// appearing, its state changing, its internal temperature reaching the
// green band and the cook going away. It is driven by a single poller and
// is not safe for concurrent use.
type CookWatcher struct {
	notifier Notifier
	metrics  *metrics.Metrics

	cookID  string
	state   string
	reached bool
}

// NewCookWatcher creates a CookWatcher. m may be nil.
func NewCookWatcher(n Notifier, m *metrics.Metrics) *CookWatcher {
	return &CookWatcher{notifier: n, metrics: m}
}

// Observe compares snap with the previous one and sends the resulting events.
func (w *CookWatcher) Observe(ctx context.Context, snap meater.Snapshot) error {
	c := snap.Cook
	if c == nil {
		if w.cookID == "" {
			return nil
		}
		key := w.cookID
		w.reset()
		return w.send(ctx, EventCookEnded, key, fmt.Sprintf("Cook on probe %s has ended", snap.DeviceID))
	}

	var errs []error
	switch {
	case c.ID != w.cookID:
		w.reset()
		w.cookID = c.ID
		w.state = c.State
		errs = append(errs, w.send(ctx, EventCookStarted, c.ID, fmt.Sprintf(
			"%s started on probe %s, target %.0f°F",
			c.Name, snap.DeviceID, display.CelsiusToFahrenheit(c.TargetTempC),
		)))
	case c.State != w.state:
		w.state = c.State
		errs = append(errs, w.send(ctx, EventCookState, c.ID, fmt.Sprintf("%s: %s", c.Name, c.State)))
	}

	if !w.reached && display.BandFor(snap) == display.BandGreen {
		w.reached = true
		errs = append(errs, w.send(ctx, EventTargetReached, c.ID, fmt.Sprintf(
			"%s is at %.0f°F, target %.0f°F",
			c.Name, display.CelsiusToFahrenheit(snap.InternalTempC), display.CelsiusToFahrenheit(c.TargetTempC),
		)))
	}
	return errors.Join(errs...)
}

func (w *CookWatcher) send(ctx context.Context, event, key, msg string) error {
	err := w.notifier.Notify(ctx, event, key, msg)
	if w.metrics != nil {
		metrics.ObserveResult(w.metrics.NotificationsSent, err)
	}
	if err != nil {
		return fmt.Errorf("notify %s: %w", event, err)
	}
	return nil
}

func (w *CookWatcher) reset() {
	w.cookID = ""
	w.state = ""
	w.reached = false
}
