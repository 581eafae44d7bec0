package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "github.com/lib/pq"

	"quote-insights/utils"
)

var postgresDialect = dialect{
	name:        "postgres",
	maxParams:   65535,
	placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	schema: []string{`
		CREATE TABLE IF NOT EXISTS quote_runs (
			run_id          VARCHAR(64)  PRIMARY KEY,
			source          TEXT         NOT NULL DEFAULT '',
			processed_at    TIMESTAMPTZ  NOT NULL,
			total_records   INTEGER      NOT NULL DEFAULT 0,
			success         INTEGER      NOT NULL DEFAULT 0,
			failure         INTEGER      NOT NULL DEFAULT 0,
			skipped         INTEGER      NOT NULL DEFAULT 0,
			unique_requests INTEGER      NOT NULL DEFAULT 0,
			unique_chassis  INTEGER      NOT NULL DEFAULT 0,
			created_at      TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		)`, `
		CREATE TABLE IF NOT EXISTS quotes (
			id                SERIAL PRIMARY KEY,
			run_id            VARCHAR(64)   NOT NULL REFERENCES quote_runs(run_id) ON DELETE CASCADE,
			row_index         INTEGER       NOT NULL,
			requested_at      TIMESTAMP,
			insurance_type    TEXT          NOT NULL DEFAULT '',
			outcome           VARCHAR(16)   NOT NULL,
			insurance_purpose TEXT          NOT NULL DEFAULT '',
			company           TEXT          NOT NULL DEFAULT '',
			make              TEXT          NOT NULL DEFAULT '',
			model             TEXT          NOT NULL DEFAULT '',
			manufacture_year  INTEGER,
			body_category     TEXT          NOT NULL DEFAULT '',
			spec              VARCHAR(16)   NOT NULL DEFAULT '',
			chassis           TEXT          NOT NULL DEFAULT '',
			eid               TEXT          NOT NULL DEFAULT '',
			quote_number      TEXT          NOT NULL DEFAULT '',
			policy_number     TEXT          NOT NULL DEFAULT '',
			estimated_value   NUMERIC(14,2) NOT NULL DEFAULT 0,
			policy_premium    NUMERIC(14,2),
			driver_age        INTEGER,
			is_chinese        BOOLEAN       NOT NULL DEFAULT FALSE,
			is_electric       BOOLEAN       NOT NULL DEFAULT FALSE,
			error_text        TEXT          NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_run     ON quotes(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_chassis ON quotes(chassis)`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_outcome ON quotes(outcome)`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_make    ON quotes(make, model)`,
	},
}

// PostgresStore persists runs and their quotes to PostgreSQL.
type PostgresStore struct {
	sqlStore
}

// NewPostgresStore opens a connection to PostgreSQL, waits for it to accept
// connections, runs schema migrations and returns a ready-to-use store.
func NewPostgresStore(ctx context.Context, dsn string, maxRetries int, logger *utils.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{MaxAttempts: maxRetries, BaseDelay: 2 * time.Second, Logger: logger}
	if err := retry.Do(ctx, "postgres-ping", db.PingContext); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	ps := &PostgresStore{sqlStore{db: db, dialect: postgresDialect, logger: logger}}
	if err := ps.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return ps, nil
}
