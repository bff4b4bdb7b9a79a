// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records a one-line history of completed runs in a local
// SQLite database. It is informational only: recording never blocks or
// fails a run, and nothing is ever resumed from it.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/dfcamara/enuvex/pkg/types"
)

const defaultPath = "enuvex.db"

// Run is one recorded pipeline run.
type Run struct {
	ID       string
	Kind     string // "export" or "upload"
	Started  time.Time
	Finished time.Time
	Groups   int
	People   int
	Failures int
	Output   string
}

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger database, creating the schema if needed.
func Open(cfg types.LedgerConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = defaultPath
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		started_at TEXT NOT NULL,
		finished_at TEXT,
		groups_total INTEGER,
		people_total INTEGER,
		failures INTEGER,
		output TEXT
	)`)
	return err
}

// Record inserts one finished run and returns its generated id.
func (s *Store) Record(ctx context.Context, run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, kind, started_at, finished_at, groups_total, people_total, failures, output)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Kind,
		run.Started.UTC().Format(time.RFC3339),
		run.Finished.UTC().Format(time.RFC3339),
		run.Groups, run.People, run.Failures, run.Output,
	)
	if err != nil {
		return "", fmt.Errorf("recording run: %w", err)
	}
	return run.ID, nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, started_at, finished_at, groups_total, people_total, failures, output
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var started, finished string
		if err := rows.Scan(&r.ID, &r.Kind, &started, &finished,
			&r.Groups, &r.People, &r.Failures, &r.Output); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Started, _ = time.Parse(time.RFC3339, started)
		r.Finished, _ = time.Parse(time.RFC3339, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}
