// Package history keeps a local journal of notifybot runs in SQLite.
// The journal is best-effort: a journal failure is logged and never
// fails the run it records.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one recorded invocation.
type Run struct {
	ID        int64
	Command   string // "send" | "purge"
	Platform  string
	Recipient string
	Deleted   int    // purge only
	Outcome   string // "ok" or the fault kind
	CreatedAt time.Time
}

// Store implements the run journal over SQLite.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the journal database at dbPath.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	// Single connection for SQLite.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &Store{db: db, logger: logger}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		command     TEXT NOT NULL,
		platform    TEXT NOT NULL,
		recipient   TEXT NOT NULL,
		deleted     INTEGER DEFAULT 0,
		outcome     TEXT NOT NULL,
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_runs_time ON runs(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends one run to the journal.
func (s *Store) Record(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (command, platform, recipient, deleted, outcome, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.Command, run.Platform, run.Recipient, run.Deleted, run.Outcome, time.Now())
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, command, platform, recipient, deleted, outcome, created_at
		 FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Command, &r.Platform, &r.Recipient, &r.Deleted, &r.Outcome, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
