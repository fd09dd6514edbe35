package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run statuses.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
	RunStatusAborted   = "aborted"
)

// Record statuses.
const (
	RecordStatusConverted = "converted"
	RecordStatusSkipped   = "skipped"
	RecordStatusFailed    = "failed"
)

// Run is one convert invocation.
type Run struct {
	ID         int64
	RunID      string
	Source     string
	Title      string
	Status     string
	Converted  int
	Total      int
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Record is one archive outcome within a run.
type Record struct {
	ID      int64
	RunID   int64
	Book    string
	Archive string
	Pages   int
	Bytes   int64
	Status  string
	Detail  string
}

// Store manages run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applySchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) applySchema(ctx context.Context) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS runs (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            run_id TEXT NOT NULL,
            source TEXT NOT NULL,
            title TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            converted INTEGER NOT NULL DEFAULT 0,
            total INTEGER NOT NULL DEFAULT 0,
            error TEXT,
            started_at TEXT NOT NULL,
            finished_at TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS records (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
            book TEXT NOT NULL,
            archive TEXT NOT NULL,
            pages INTEGER NOT NULL DEFAULT 0,
            bytes INTEGER NOT NULL DEFAULT 0,
            status TEXT NOT NULL,
            detail TEXT
        )`,
		`CREATE INDEX IF NOT EXISTS idx_records_run ON records(run_id)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// BeginRun inserts a new running run and returns its row id.
func (s *Store) BeginRun(ctx context.Context, runID, source, title string) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (run_id, source, title, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		runID,
		source,
		title,
		RunStatusRunning,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// FinishRun closes a run with its final status and counts.
func (s *Store) FinishRun(ctx context.Context, id int64, status string, converted, total int, runErr error) error {
	var detail any
	if runErr != nil {
		detail = runErr.Error()
	}
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE runs SET status = ?, converted = ?, total = ?, error = ?, finished_at = ? WHERE id = ?`,
		status,
		converted,
		total,
		detail,
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// AddRecord stores one archive outcome for a run.
func (s *Store) AddRecord(ctx context.Context, runID int64, rec Record) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO records (run_id, book, archive, pages, bytes, status, detail)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID,
		rec.Book,
		rec.Archive,
		rec.Pages,
		rec.Bytes,
		rec.Status,
		nullableString(rec.Detail),
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// RecentRuns returns the newest runs first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, run_id, source, title, status, converted, total, error, started_at, finished_at
         FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunRecords returns the records of one run in insertion order.
func (s *Store) RunRecords(ctx context.Context, runID int64) ([]Record, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, run_id, book, archive, pages, bytes, status, detail
         FROM records WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec    Record
			detail sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Book, &rec.Archive, &rec.Pages, &rec.Bytes, &rec.Status, &detail); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Detail = detail.String
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRun(rows *sql.Rows) (Run, error) {
	var (
		run        Run
		errText    sql.NullString
		startedAt  string
		finishedAt sql.NullString
	)
	if err := rows.Scan(&run.ID, &run.RunID, &run.Source, &run.Title, &run.Status, &run.Converted, &run.Total, &errText, &startedAt, &finishedAt); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Error = errText.String
	run.StartedAt = parseTimestamp(startedAt)
	if finishedAt.Valid {
		run.FinishedAt = parseTimestamp(finishedAt.String)
	}
	return run, nil
}

func parseTimestamp(value string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
