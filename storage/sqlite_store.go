package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"quote-insights/utils"
)

var sqliteDialect = dialect{
	name:        "sqlite",
	maxParams:   999,
	placeholder: func(int) string { return "?" },
	schema: []string{
		`PRAGMA foreign_keys = ON`,
		`PRAGMA busy_timeout = 5000`,
		`CREATE TABLE IF NOT EXISTS quote_runs (
			run_id          TEXT PRIMARY KEY,
			source          TEXT NOT NULL DEFAULT '',
			processed_at    TIMESTAMP NOT NULL,
			total_records   INTEGER NOT NULL DEFAULT 0,
			success         INTEGER NOT NULL DEFAULT 0,
			failure         INTEGER NOT NULL DEFAULT 0,
			skipped         INTEGER NOT NULL DEFAULT 0,
			unique_requests INTEGER NOT NULL DEFAULT 0,
			unique_chassis  INTEGER NOT NULL DEFAULT 0,
			created_at      TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS quotes (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id            TEXT NOT NULL REFERENCES quote_runs(run_id) ON DELETE CASCADE,
			row_index         INTEGER NOT NULL,
			requested_at      TIMESTAMP,
			insurance_type    TEXT NOT NULL DEFAULT '',
			outcome           TEXT NOT NULL,
			insurance_purpose TEXT NOT NULL DEFAULT '',
			company           TEXT NOT NULL DEFAULT '',
			make              TEXT NOT NULL DEFAULT '',
			model             TEXT NOT NULL DEFAULT '',
			manufacture_year  INTEGER,
			body_category     TEXT NOT NULL DEFAULT '',
			spec              TEXT NOT NULL DEFAULT '',
			chassis           TEXT NOT NULL DEFAULT '',
			eid               TEXT NOT NULL DEFAULT '',
			quote_number      TEXT NOT NULL DEFAULT '',
			policy_number     TEXT NOT NULL DEFAULT '',
			estimated_value   TEXT NOT NULL DEFAULT '0',
			policy_premium    TEXT,
			driver_age        INTEGER,
			is_chinese        BOOLEAN NOT NULL DEFAULT FALSE,
			is_electric       BOOLEAN NOT NULL DEFAULT FALSE,
			error_text        TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_run     ON quotes(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_chassis ON quotes(chassis)`,
	},
}

// SQLiteStore persists runs and their quotes to a local SQLite file.
type SQLiteStore struct {
	sqlStore
}

// NewSQLiteStore opens (or creates) the database at path and migrates it.
func NewSQLiteStore(ctx context.Context, path string, logger *utils.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("sqlite: create dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// One connection keeps the per-connection pragmas in effect.
	db.SetMaxOpenConns(1)

	ss := &SQLiteStore{sqlStore{db: db, dialect: sqliteDialect, logger: logger}}
	if err := ss.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	return ss, nil
}
