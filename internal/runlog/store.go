package runlog

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; the ledger is disposable, so a mismatch just asks for deletion.
const schemaVersion = 1

// DefaultFile is the ledger's filename inside the log directory.
const DefaultFile = "runs.db"

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// StageOutcome records how one pipeline stage ended.
type StageOutcome struct {
	Status   string         `json:"status"`
	Counters map[string]int `json:"counters,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// Run is one recorded pipeline execution.
type Run struct {
	ID         string
	DataDir    string
	Status     string
	StartedAt  time.Time
	FinishedAt time.Time
	Stages     map[string]StageOutcome
}

// Store is the SQLite-backed run ledger.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the ledger database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
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
	if err := store.initSchema(context.Background()); err != nil {
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

// Path returns the ledger file's location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("run ledger has schema version %d, expected %d (delete %s to reset)",
			version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// StartRun inserts a run in the running state.
func (s *Store) StartRun(ctx context.Context, id, dataDir string, startedAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pipeline_runs (id, data_dir, status, started_at) VALUES (?, ?, ?, ?)`,
		id, dataDir, StatusRunning, startedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun marks a run completed or failed and records the per-stage
// outcomes.
func (s *Store) FinishRun(ctx context.Context, id, status string, finishedAt time.Time, stages map[string]StageOutcome) error {
	stagesJSON, err := json.Marshal(stages)
	if err != nil {
		return fmt.Errorf("marshal stage outcomes: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE pipeline_runs SET status = ?, finished_at = ?, stages_json = ? WHERE id = ?`,
		status, finishedAt.UTC().Format(time.RFC3339Nano), string(stagesJSON), id)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run %s not found", id)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data_dir, status, started_at, finished_at, stages_json
         FROM pipeline_runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			startedAt  string
			finishedAt sql.NullString
			stagesJSON sql.NullString
		)
		if err := rows.Scan(&run.ID, &run.DataDir, &run.Status, &startedAt, &finishedAt, &stagesJSON); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if parsed, perr := time.Parse(time.RFC3339Nano, startedAt); perr == nil {
			run.StartedAt = parsed
		}
		if finishedAt.Valid {
			if parsed, perr := time.Parse(time.RFC3339Nano, finishedAt.String); perr == nil {
				run.FinishedAt = parsed
			}
		}
		if stagesJSON.Valid && stagesJSON.String != "" {
			if err := json.Unmarshal([]byte(stagesJSON.String), &run.Stages); err != nil {
				return nil, fmt.Errorf("decode stage outcomes for %s: %w", run.ID, err)
			}
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
