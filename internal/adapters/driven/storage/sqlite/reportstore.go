// Package sqlite provides SQLite-backed persistence for sync run history.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/dropsearch/internal/core/domain"
	"github.com/custodia-labs/dropsearch/internal/core/ports/driven"
)

// Ensure ReportStore implements the interface.
var _ driven.ReportStore = (*ReportStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS sync_reports (
	id          TEXT PRIMARY KEY,
	root        TEXT NOT NULL,
	started_at  TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	indexed     INTEGER NOT NULL,
	skipped     INTEGER NOT NULL,
	skips       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sync_reports_started_at ON sync_reports(started_at);
`

// ReportStore is a SQLite-backed sync report history.
type ReportStore struct {
	db   *sql.DB
	path string
}

// NewReportStore opens (or creates) the report database at dbPath.
// The schema is created on first open; reopening is a no-op.
func NewReportStore(dbPath string) (*ReportStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// WAL mode so report reads do not block a running sync's write.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &ReportStore{db: db, path: dbPath}, nil
}

// Save stores a finished report. Saving the same report ID twice overwrites.
func (s *ReportStore) Save(ctx context.Context, report domain.SyncReport) error {
	skips, err := json.Marshal(report.Skips)
	if err != nil {
		return fmt.Errorf("encoding skips: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO sync_reports (id, root, started_at, finished_at, indexed, skipped, skips)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		report.ID,
		report.Root,
		report.StartedAt.UTC().Format(time.RFC3339Nano),
		report.FinishedAt.UTC().Format(time.RFC3339Nano),
		report.Indexed,
		report.Skipped,
		string(skips),
	)
	if err != nil {
		return fmt.Errorf("inserting report: %w", err)
	}
	return nil
}

// Latest returns the most recently started report.
func (s *ReportStore) Latest(ctx context.Context) (*domain.SyncReport, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, root, started_at, finished_at, indexed, skipped, skips
		FROM sync_reports ORDER BY started_at DESC LIMIT 1
	`)

	var report domain.SyncReport
	var startedAt, finished, skips string
	err := row.Scan(&report.ID, &report.Root, &startedAt, &finished, &report.Indexed, &report.Skipped, &skips)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning report: %w", err)
	}

	if report.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	if report.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return nil, fmt.Errorf("parsing finished_at: %w", err)
	}
	if err := json.Unmarshal([]byte(skips), &report.Skips); err != nil {
		return nil, fmt.Errorf("decoding skips: %w", err)
	}

	return &report, nil
}

// Close closes the database connection.
func (s *ReportStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *ReportStore) Path() string {
	return s.path
}
