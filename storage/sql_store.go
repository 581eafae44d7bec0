package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"quote-insights/models"
	"quote-insights/utils"
)

// quoteInsertColumns is the column order used by insertBatch.
var quoteInsertColumns = []string{
	"run_id", "row_index", "requested_at", "insurance_type", "outcome",
	"insurance_purpose", "company", "make", "model", "manufacture_year",
	"body_category", "spec", "chassis", "eid", "quote_number", "policy_number",
	"estimated_value", "policy_premium", "driver_age", "is_chinese",
	"is_electric", "error_text",
}

// dialect captures what differs between the SQL backends.
type dialect struct {
	name        string
	schema      []string
	maxParams   int
	placeholder func(n int) string
}

// sqlStore implements RunStore on top of database/sql.
type sqlStore struct {
	db      *sql.DB
	dialect dialect
	logger  *utils.Logger
}

func (s *sqlStore) migrate(ctx context.Context) error {
	for _, stmt := range s.dialect.schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveRun stores the run summary and all of its quotes in one transaction.
// Saving the same run ID again replaces the earlier copy.
func (s *sqlStore) SaveRun(ctx context.Context, run RunSummary, records []*models.QuoteRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", s.dialect.name, err)
	}
	defer func() { _ = tx.Rollback() }()

	ph := s.dialect.placeholder
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM quotes WHERE run_id = "+ph(1), run.RunID); err != nil {
		return fmt.Errorf("%s: clear quotes: %w", s.dialect.name, err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM quote_runs WHERE run_id = "+ph(1), run.RunID); err != nil {
		return fmt.Errorf("%s: clear run: %w", s.dialect.name, err)
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO quote_runs (run_id, source, processed_at, total_records, success, failure, skipped, unique_requests, unique_chassis)
		VALUES (%s)`, placeholders(ph, 1, 9)),
		run.RunID, run.Source, run.ProcessedAt.UTC(), run.TotalRecords,
		run.Success, run.Failure, run.Skipped, run.UniqueRequests, run.UniqueChassis,
	); err != nil {
		return fmt.Errorf("%s: insert run: %w", s.dialect.name, err)
	}

	batchSize := s.dialect.maxParams / len(quoteInsertColumns)
	if batchSize > 50 {
		batchSize = 50
	}
	for i := 0; i < len(records); i += batchSize {
		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}
		if err := s.insertBatch(ctx, tx, run.RunID, i, records[i:end]); err != nil {
			return fmt.Errorf("%s: insert quotes: %w", s.dialect.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", s.dialect.name, err)
	}
	s.logger.Info("[store] %s: saved run %s with %d quotes", s.dialect.name, run.RunID, len(records))
	return nil
}

func (s *sqlStore) insertBatch(ctx context.Context, tx *sql.Tx, runID string, offset int, batch []*models.QuoteRecord) error {
	cols := len(quoteInsertColumns)
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, r := range batch {
		if r == nil {
			continue
		}
		base := len(valueArgs)
		valueStrings = append(valueStrings, "("+placeholders(s.dialect.placeholder, base+1, cols)+")")
		valueArgs = append(valueArgs,
			runID, offset+idx, nullTime(r.RequestedAt), r.InsuranceType, r.Outcome.Label(),
			r.InsurancePurpose, r.CompanyName, r.Make, r.Model, nullInt(r.ManufactureYear),
			r.BodyCategory, r.SpecLabel(), r.Chassis, r.EID, r.QuoteNumber, r.PolicyNumber,
			r.EstimatedValue, r.PolicyPremium, nullInt(r.DriverAge), r.Chinese,
			r.Electric, r.ErrorText,
		)
	}
	if len(valueStrings) == 0 {
		return nil
	}

	query := fmt.Sprintf("INSERT INTO quotes (%s) VALUES %s",
		strings.Join(quoteInsertColumns, ", "), strings.Join(valueStrings, ","))
	_, err := tx.ExecContext(ctx, query, valueArgs...)
	return err
}

// CountQuotes returns how many quotes are stored for runID.
func (s *sqlStore) CountQuotes(ctx context.Context, runID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM quotes WHERE run_id = "+s.dialect.placeholder(1), runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%s: count quotes: %w", s.dialect.name, err)
	}
	return n, nil
}

// FetchRuns lists stored runs, most recent first.
func (s *sqlStore) FetchRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, source, processed_at, total_records, success, failure, skipped, unique_requests, unique_chassis
		FROM quote_runs
		ORDER BY processed_at DESC, run_id
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch runs: %w", s.dialect.name, err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(
			&r.RunID, &r.Source, &r.ProcessedAt, &r.TotalRecords, &r.Success,
			&r.Failure, &r.Skipped, &r.UniqueRequests, &r.UniqueChassis,
		); err != nil {
			return nil, fmt.Errorf("%s: scan run: %w", s.dialect.name, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

func placeholders(ph func(int) string, start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = ph(start + i)
	}
	return strings.Join(parts, ",")
}

func nullInt(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
