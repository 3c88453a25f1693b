package main

import (
	"context"

	"meater/internal/config"
	"meater/internal/credentials"
	"meater/internal/db"
	"meater/internal/meater"
	"meater/internal/metrics"
	"meater/internal/notify"
	"meater/internal/telemetry"
	"meater/internal/ui"

	"github.com/AlecAivazis/survey/v2"
)

type apiClient interface {
	Login(ctx context.Context, email, password string) (credentials.Token, error)
	Devices(ctx context.Context, tok credentials.Token) ([]byte, error)
}

type credentialStore interface {
	credentials.Loader
	Save(tok credentials.Token) error
	Delete() error
	Path() string
}

type cookNotifier interface {
	notify.Notifier
	Enabled() bool
}

// Factories and wrappers swapped out in tests.
var (
	askOneFunc = survey.AskOne

	newAPIClient = func(s config.Settings, m *metrics.Metrics) apiClient {
		c := meater.NewClient(s.APIURL, s.HTTPTimeout)
		if m != nil {
			c.HTTPClient.Transport = m.InstrumentTransport(c.HTTPClient.Transport)
		}
		return c
	}

	newCredentialStore = func(s config.Settings) credentialStore {
		return credentials.NewStore(s.DataDir)
	}

	newHistoryStore = func(s config.Settings) (db.Store, error) {
		return db.NewStore(db.StoreConfig{
			Type:             s.History.Type,
			ConnectionString: s.History.DSN,
		})
	}

	newNotifier = func(s config.Settings) cookNotifier {
		return notify.NewManager()
	}

	startBBQDashboardFunc = func(ctx context.Context, source ui.StateSource) error {
		return ui.StartBBQDashboard(ctx, source)
	}

	startMetricsServerFunc = telemetry.StartMetricsServer
)
