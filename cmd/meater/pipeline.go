package main

import (
	"context"
	"errors"

	"meater/internal/config"
	"meater/internal/db"
	"meater/internal/display"
	"meater/internal/metrics"
	"meater/internal/notify"
	"meater/internal/polling"
	"meater/internal/telemetry"
)

// pipeline wires the poller to the display channel plus the optional
// history and notification observers.
type pipeline struct {
	poller  *polling.Poller
	channel *display.Channel
	metrics *metrics.Metrics
	closers []func() error
}

// buildPipeline assembles the poller for s. With observe set, readings are
// also recorded and cook notifications sent when configured. The metrics
// endpoint, if configured, runs until ctx is done.
func buildPipeline(ctx context.Context, s config.Settings, observe bool) (*pipeline, error) {
	p := &pipeline{
		channel: display.NewChannel(),
		metrics: metrics.NewMetrics(),
	}

	opts := []polling.Option{polling.WithMetrics(p.metrics)}
	if observe {
		opts = append(opts, p.observers(s)...)
	}

	poller, err := polling.NewPoller(
		polling.NewConfig(s.PollInterval),
		newCredentialStore(s),
		newAPIClient(s, p.metrics),
		p.channel,
		opts...,
	)
	if err != nil {
		p.Close()
		return nil, err
	}
	p.poller = poller

	if s.MetricsAddr != "" {
		go func() {
			if err := startMetricsServerFunc(ctx, s.MetricsAddr, p.metrics.Handler()); err != nil {
				telemetry.LogError("Metrics server stopped", err, "addr", s.MetricsAddr)
			}
		}()
	}
	return p, nil
}

func (p *pipeline) observers(s config.Settings) []polling.Option {
	var opts []polling.Option

	if s.History.Enabled {
		store, err := newHistoryStore(s)
		if err != nil {
			telemetry.LogWarn("History disabled, store unavailable", err, "type", s.History.Type)
		} else {
			p.closers = append(p.closers, store.Close)
			opts = append(opts, polling.WithObserver(db.NewRecorder(store, p.metrics)))
		}
	}

	if s.Notifications.Slack || s.Notifications.Discord {
		if n := newNotifier(s); n != nil && n.Enabled() {
			opts = append(opts, polling.WithObserver(notify.NewCookWatcher(n, p.metrics)))
		}
	}
	return opts
}

// start runs the poller in the background. The returned func blocks until
// the poller has stopped.
func (p *pipeline) start(ctx context.Context) (wait func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.poller.Start(ctx)
	}()
	return func() { <-done }
}

// Close releases the observers' resources.
func (p *pipeline) Close() error {
	var errs []error
	for _, c := range p.closers {
		errs = append(errs, c())
	}
	p.closers = nil
	return errors.Join(errs...)
}
