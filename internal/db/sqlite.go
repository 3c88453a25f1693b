package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store and applies migrations
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS readings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		device_id TEXT NOT NULL,
		cook_id TEXT NOT NULL DEFAULT '',
		cook_name TEXT NOT NULL DEFAULT '',
		cook_state TEXT NOT NULL DEFAULT '',
		internal_temp_c REAL NOT NULL,
		ambient_temp_c REAL NOT NULL,
		target_temp_c REAL NOT NULL DEFAULT 0,
		recorded_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_readings_recorded_at ON readings(recorded_at);
	`
	_, err := s.db.Exec(query)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveReading inserts a new reading
func (s *SQLiteStore) SaveReading(ctx context.Context, r Reading) error {
	query := `INSERT INTO readings (device_id, cook_id, cook_name, cook_state, internal_temp_c, ambient_temp_c, target_temp_c, recorded_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query, r.DeviceID, r.CookID, r.CookName, r.CookState, r.InternalTempC, r.AmbientTempC, r.TargetTempC, r.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to save reading: %w", err)
	}
	return nil
}

// QueryHistory retrieves the most recent readings, newest first
func (s *SQLiteStore) QueryHistory(ctx context.Context, limit int) ([]Reading, error) {
	query := `SELECT id, device_id, cook_id, cook_name, cook_state, internal_temp_c, ambient_temp_c, target_temp_c, recorded_at
	FROM readings ORDER BY recorded_at DESC, id DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	return scanReadings(rows)
}

func scanReadings(rows *sql.Rows) ([]Reading, error) {
	var history []Reading
	for rows.Next() {
		var r Reading
		if err := rows.Scan(&r.ID, &r.DeviceID, &r.CookID, &r.CookName, &r.CookState, &r.InternalTempC, &r.AmbientTempC, &r.TargetTempC, &r.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		history = append(history, r)
	}
	return history, rows.Err()
}
