// Package journal records remote calls in a local SQLite database so that
// past activity can be reviewed with the @history operation.
//
// Arguments are never stored: they may carry passwords.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// FileName is the database file name inside the state directory.
const FileName = "journal.db"

// Entry is one recorded remote call.
type Entry struct {
	ID        int64
	Time      time.Time
	Operation string
	Target    string // default data center when issued from the shell
	ExitCode  int
	RequestID string
	Duration  time.Duration
	Error     string
}

// Journal is the database handle. A nil *Journal records nothing.
type Journal struct {
	db *sql.DB
}

// DefaultPath returns the journal path inside stateDir.
func DefaultPath(stateDir string) string {
	return filepath.Join(stateDir, FileName)
}

// Open opens or creates the journal at path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	j := &Journal{db: db}
	if err := j.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

// OpenInMemory opens a journal that lives only as long as the process (for
// testing).
func OpenInMemory() (*Journal, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	j := &Journal{db: db}
	if err := j.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

func (j *Journal) initialize() error {
	schema := `
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 2000;

		CREATE TABLE IF NOT EXISTS calls (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			called_at INTEGER NOT NULL,      -- Unix nanoseconds
			operation TEXT NOT NULL,
			target TEXT NOT NULL DEFAULT '',
			exit_code INTEGER NOT NULL,
			request_id TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL,
			error TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_calls_called_at ON calls(called_at);
	`
	if _, err := j.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize journal: %w", err)
	}
	return nil
}

// Close closes the database.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	return j.db.Close()
}

// Record appends e. A zero Time is replaced with the current time.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	if j == nil {
		return nil
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO calls (called_at, operation, target, exit_code, request_id, duration_ms, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Time.UnixNano(), e.Operation, e.Target, e.ExitCode, e.RequestID, e.Duration.Milliseconds(), e.Error)
	if err != nil {
		return fmt.Errorf("failed to record call: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. When operations are
// given, only calls to those operations are returned.
func (j *Journal) Recent(ctx context.Context, limit int, operations ...string) ([]Entry, error) {
	if j == nil {
		return nil, nil
	}
	query := `SELECT id, called_at, operation, target, exit_code, request_id, duration_ms, error FROM calls`
	var args []any
	if len(operations) > 0 {
		placeholders, opArgs := inClauseArgs(operations)
		query += " WHERE operation IN (" + placeholders + ")"
		args = append(args, opArgs...)
	}
	query += " ORDER BY called_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	return scanRows(rows, func(rows *sql.Rows) (Entry, error) {
		var e Entry
		var calledAt, durationMS int64
		err := rows.Scan(&e.ID, &calledAt, &e.Operation, &e.Target, &e.ExitCode, &e.RequestID, &durationMS, &e.Error)
		e.Time = time.Unix(0, calledAt)
		e.Duration = time.Duration(durationMS) * time.Millisecond
		return e, err
	})
}

// inClauseArgs returns "?" placeholders for items and the matching args.
func inClauseArgs(items []string) (string, []any) {
	ph := make([]string, len(items))
	args := make([]any, len(items))
	for i, item := range items {
		ph[i] = "?"
		args[i] = item
	}
	return strings.Join(ph, ", "), args
}

func scanRows[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
