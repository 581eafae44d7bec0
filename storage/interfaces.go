package storage

import (
	"context"
	"time"

	"quote-insights/models"
)

// RunSummary describes one processed export. It is stored alongside the
// run's quotes so runs can be compared later.
type RunSummary struct {
	RunID          string
	Source         string
	ProcessedAt    time.Time
	TotalRecords   int
	Success        int
	Failure        int
	Skipped        int
	UniqueRequests int
	UniqueChassis  int
}

// NewRunSummary fills the counters of a RunSummary from stats.
func NewRunSummary(runID, source string, processedAt time.Time, stats *models.Statistics) RunSummary {
	return RunSummary{
		RunID:          runID,
		Source:         source,
		ProcessedAt:    processedAt,
		TotalRecords:   stats.TotalRecords,
		Success:        stats.Overall.Pass,
		Failure:        stats.Overall.Fail,
		Skipped:        stats.Overall.Skip,
		UniqueRequests: stats.UniqueRequests.Total,
		UniqueChassis:  stats.UniqueChassis.Total,
	}
}

// RunStore is the interface any database backend must satisfy.
type RunStore interface {
	SaveRun(ctx context.Context, run RunSummary, records []*models.QuoteRecord) error
	Close() error
}

// QuoteWriter is the interface for flat-file exports of normalized quotes.
type QuoteWriter interface {
	WriteQuotes(records []*models.QuoteRecord) error
	Close() error
}
