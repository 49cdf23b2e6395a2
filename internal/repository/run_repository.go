package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteRunRepository implements RunRepository over a local sqlite
// database file: the schema is embedded at build time and applied on
// open, using database/sql over modernc.org/sqlite (no cgo required).
type SQLiteRunRepository struct {
	db *sql.DB
}

// NewSQLiteRunRepository opens (creating if necessary) the sqlite
// database at dsn and ensures its schema exists. dsn is a
// database/sql data source name, e.g. "file:objmeasure-runs.db?cache=shared".
func NewSQLiteRunRepository(dsn string) (*SQLiteRunRepository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open run history database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply run history schema: %w", err)
	}

	return &SQLiteRunRepository{db: db}, nil
}

func (r *SQLiteRunRepository) SaveRun(ctx context.Context, run *RunRecord) error {
	featureNames, err := json.Marshal(run.FeatureNames)
	if err != nil {
		return fmt.Errorf("encode feature names: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO runs (run_id, image_source, started_at, duration_sec, object_count, feature_names, connectivity, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			duration_sec = excluded.duration_sec,
			object_count = excluded.object_count,
			success = excluded.success,
			error_message = excluded.error_message
	`,
		run.ID, run.ImageSource, run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.Duration, run.ObjectCount, string(featureNames), run.Connectivity,
		boolToInt(run.Success), run.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save run record: %w", err)
	}
	return nil
}

func (r *SQLiteRunRepository) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT run_id, image_source, started_at, duration_sec, object_count, feature_names, connectivity, success, error_message
		FROM runs WHERE run_id = ?
	`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run record: %w", err)
	}
	return run, nil
}

func (r *SQLiteRunRepository) ListRuns(ctx context.Context, imageSource string, limit int) ([]*RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows *sql.Rows
	var err error
	if imageSource == "" {
		rows, err = r.db.QueryContext(ctx, `
			SELECT run_id, image_source, started_at, duration_sec, object_count, feature_names, connectivity, success, error_message
			FROM runs ORDER BY started_at DESC LIMIT ?
		`, limit)
	} else {
		rows, err = r.db.QueryContext(ctx, `
			SELECT run_id, image_source, started_at, duration_sec, object_count, feature_names, connectivity, success, error_message
			FROM runs WHERE image_source = ? ORDER BY started_at DESC LIMIT ?
		`, imageSource, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("list run records: %w", err)
	}
	defer rows.Close()

	var out []*RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run record: %w", err)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (r *SQLiteRunRepository) Close() error {
	return r.db.Close()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*RunRecord, error) {
	var run RunRecord
	var startedAt, featureNames string
	var success int

	if err := row.Scan(
		&run.ID, &run.ImageSource, &startedAt, &run.Duration, &run.ObjectCount,
		&featureNames, &run.Connectivity, &success, &run.ErrorMessage,
	); err != nil {
		return nil, err
	}

	parsed, err := time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	run.StartedAt = parsed
	run.Success = success != 0

	if err := json.Unmarshal([]byte(featureNames), &run.FeatureNames); err != nil {
		return nil, fmt.Errorf("decode feature names: %w", err)
	}

	return &run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
