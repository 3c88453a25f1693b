package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresStore implements Store using PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store and applies migrations
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS readings (
			id SERIAL PRIMARY KEY,
			device_id TEXT NOT NULL,
			cook_id TEXT NOT NULL DEFAULT '',
			cook_name TEXT NOT NULL DEFAULT '',
			cook_state TEXT NOT NULL DEFAULT '',
			internal_temp_c DOUBLE PRECISION NOT NULL,
			ambient_temp_c DOUBLE PRECISION NOT NULL,
			target_temp_c DOUBLE PRECISION NOT NULL DEFAULT 0,
			recorded_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_readings_recorded_at ON readings(recorded_at);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// SaveReading inserts a new reading
func (s *PostgresStore) SaveReading(ctx context.Context, r Reading) error {
	query := `INSERT INTO readings (device_id, cook_id, cook_name, cook_state, internal_temp_c, ambient_temp_c, target_temp_c, recorded_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.db.ExecContext(ctx, query, r.DeviceID, r.CookID, r.CookName, r.CookState, r.InternalTempC, r.AmbientTempC, r.TargetTempC, r.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to save reading: %w", err)
	}
	return nil
}

// QueryHistory retrieves the most recent readings, newest first
func (s *PostgresStore) QueryHistory(ctx context.Context, limit int) ([]Reading, error) {
	query := `SELECT id, device_id, cook_id, cook_name, cook_state, internal_temp_c, ambient_temp_c, target_temp_c, recorded_at
	FROM readings ORDER BY recorded_at DESC, id DESC LIMIT $1`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	return scanReadings(rows)
}
