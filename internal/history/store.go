// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records completed conversions in a local SQLite database
// so the shell can show recent results.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/media-shell/pkg/types"
)

const (
	dbFile       = "history.db"
	defaultLimit = 20

	// Timestamps are stored in UTC with a fixed-width fraction so that text
	// order in created_at matches time order.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Status is the outcome of a recorded conversion.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Entry is one recorded conversion.
type Entry struct {
	ID        string    `json:"id" yaml:"id"`
	Operation string    `json:"operation" yaml:"operation"`
	Source    string    `json:"source" yaml:"source"`
	Args      []string  `json:"args,omitempty" yaml:"args,omitempty"`
	Status    Status    `json:"status" yaml:"status"`
	Output    string    `json:"output,omitempty" yaml:"output,omitempty"`
	Error     string    `json:"error,omitempty" yaml:"error,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Recorder stores conversion entries. The convert service depends on this
// interface so it can run without a database.
type Recorder interface {
	Record(ctx context.Context, e Entry) (Entry, error)
}

// Store manages the history SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates cfg.Dir/history.db and its schema.
func Open(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id TEXT PRIMARY KEY,
			operation TEXT NOT NULL,
			source TEXT NOT NULL,
			args TEXT,
			status TEXT NOT NULL,
			output TEXT,
			error TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_created_at ON conversions(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts e, filling in ID and CreatedAt when they are empty, and
// returns the stored entry. CreatedAt is converted to UTC.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	e.CreatedAt = e.CreatedAt.UTC()

	args, err := json.Marshal(e.Args)
	if err != nil {
		return Entry{}, fmt.Errorf("encoding arguments: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO conversions (id, operation, source, args, status, output, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Operation, e.Source, string(args), string(e.Status), e.Output, e.Error,
		e.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("recording conversion %s: %w", e.ID, err)
	}
	return e, nil
}

// Recent returns up to limit entries, newest first. A non-positive limit
// uses the default of 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	return s.query(ctx, `SELECT id, operation, source, args, status, output, error, created_at
		FROM conversions ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
}

// All returns every entry, oldest first.
func (s *Store) All(ctx context.Context) ([]Entry, error) {
	return s.query(ctx, `SELECT id, operation, source, args, status, output, error, created_at
		FROM conversions ORDER BY created_at ASC, rowid ASC`)
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                    Entry
			argsJSON, status, ts string
			output, errMsg       sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Operation, &e.Source, &argsJSON, &status, &output, &errMsg, &ts); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if argsJSON != "" {
			if err := json.Unmarshal([]byte(argsJSON), &e.Args); err != nil {
				return nil, fmt.Errorf("decoding arguments of %s: %w", e.ID, err)
			}
		}
		e.Status = Status(status)
		e.Output = output.String
		e.Error = errMsg.String
		if e.CreatedAt, err = parseTime(ts); err != nil {
			return nil, fmt.Errorf("parsing timestamp of %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// parseTime also accepts RFC 3339 text written by earlier versions.
func parseTime(ts string) (time.Time, error) {
	t, err := time.Parse(timeLayout, ts)
	if err == nil {
		return t, nil
	}
	if t, rfcErr := time.Parse(time.RFC3339Nano, ts); rfcErr == nil {
		return t.UTC(), nil
	}
	return time.Time{}, err
}

// ExportYAML writes every entry to w as a YAML sequence.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	entries, err := s.All(ctx)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []Entry{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}
