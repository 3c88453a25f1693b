package polling

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"meater/internal/credentials"
	"meater/internal/display"
	apperrors "meater/internal/errors"
	"meater/internal/meater"
	"meater/internal/metrics"
	"meater/internal/telemetry"
)

// State is the position of the poller in its fetch cycle.
type State uint32

const (
	StateIdle State = iota
	StateFetching
	StatePublished
	StateFetchFailed
	StateDecodeFailed
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StatePublished:
		return "published"
	case StateFetchFailed:
		return "fetch_failed"
	case StateDecodeFailed:
		return "decode_failed"
	case StateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("State(%d)", uint32(s))
	}
}

// Fetcher retrieves the raw device payload.
type Fetcher interface {
	Devices(ctx context.Context, tok credentials.Token) ([]byte, error)
}

// Publisher receives every successfully decoded display state.
type Publisher interface {
	Publish(s display.State) display.State
}

// Observer is notified of each decoded snapshot after it has been published.
type Observer interface {
	Observe(ctx context.Context, snap meater.Snapshot) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, snap meater.Snapshot) error

func (f ObserverFunc) Observe(ctx context.Context, snap meater.Snapshot) error {
	return f(ctx, snap)
}

// Option configures a Poller.
type Option func(*Poller)

// WithMetrics records poll outcomes and the latest reading.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Poller) {
		p.metrics = m
	}
}

// WithObserver adds an observer. Observers run in registration order.
func WithObserver(o Observer) Option {
	return func(p *Poller) {
		if o != nil {
			p.observers = append(p.observers, o)
		}
	}
}

// Poller fetches device telemetry on a fixed cadence and publishes it.
type Poller struct {
	config    *Config
	token     credentials.Token
	fetcher   Fetcher
	publisher Publisher
	metrics   *metrics.Metrics
	observers []Observer
	state     atomic.Uint32
}

// NewPoller creates a new poller instance. The token is loaded once here; if
// it cannot be loaded the returned error wraps ErrCredentialMissing.
func NewPoller(cfg *Config, loader credentials.Loader, fetcher Fetcher, pub Publisher, opts ...Option) (*Poller, error) {
	if cfg == nil {
		cfg = &Config{Interval: DefaultInterval}
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}

	tok, err := loader.Load()
	if err != nil {
		if !errors.Is(err, apperrors.ErrCredentialMissing) {
			err = errors.Join(apperrors.ErrCredentialMissing, err)
		}
		return nil, err
	}

	p := &Poller{
		config:    cfg,
		token:     tok,
		fetcher:   fetcher,
		publisher: pub,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// State returns the current cycle state.
func (p *Poller) State() State {
	return State(p.state.Load())
}

func (p *Poller) setState(s State) {
	p.state.Store(uint32(s))
}

// Start runs poll cycles until ctx is cancelled. Cancellation is checked
// between cycles and during the sleep.
func (p *Poller) Start(ctx context.Context) {
	telemetry.LogInfo("Starting Meater poller", "interval", p.config.Interval)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			p.setState(StateAborted)
			telemetry.LogInfo("Stopping Meater poller")
			return
		case <-timer.C:
		}

		// Outcomes are logged inside Poll; the loop never stops on them.
		_, _ = p.Poll(ctx)

		timer.Reset(p.config.Interval)
	}
}

// Poll performs a single fetch, decode and publish cycle.
func (p *Poller) Poll(ctx context.Context) (State, error) {
	p.setState(StateFetching)

	body, err := p.fetcher.Devices(ctx, p.token)
	if err != nil {
		if !errors.Is(err, apperrors.ErrFetchFailed) {
			err = fmt.Errorf("%w: %w", apperrors.ErrFetchFailed, err)
		}
		return p.fail(StateFetchFailed, metrics.OutcomeFetchFailed, "Failed to fetch devices", err)
	}

	snap, err := meater.Decode(body)
	if err != nil {
		return p.fail(StateDecodeFailed, metrics.OutcomeDecodeFailed, "Failed to decode devices", err)
	}

	published := p.publisher.Publish(display.FromSnapshot(snap))
	p.setState(StatePublished)
	telemetry.LogDebug("Published reading",
		"seq", published.Seq,
		"device_id", published.DeviceID,
		"internal_f", published.InternalTempF,
		"band", published.InternalTempBand.String(),
	)

	if p.metrics != nil {
		p.metrics.ObservePoll(metrics.OutcomePublished)
		p.metrics.ObserveReading(published.InternalTempF, published.AmbientTempF, published.TargetTempF, int(published.InternalTempBand), time.Now())
	}

	for _, o := range p.observers {
		if err := o.Observe(ctx, snap); err != nil {
			telemetry.LogWarn("Snapshot observer failed", err)
		}
	}

	return StatePublished, nil
}

func (p *Poller) fail(s State, outcome, msg string, err error) (State, error) {
	p.setState(s)
	telemetry.LogWarn(msg, err, "state", s.String())
	if p.metrics != nil {
		p.metrics.ObservePoll(outcome)
	}
	return s, err
}
