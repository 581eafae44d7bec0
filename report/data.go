// Package report renders quote statistics as a self-contained HTML dashboard
// and prints it to PDF through headless Chrome.
package report

import (
	"time"

	"quote-insights/models"
)

// Data is everything the dashboard shows for one run.
type Data struct {
	Title       string
	RunID       string
	Source      string
	GeneratedAt time.Time
	Stats       *models.Statistics
	// Records feeds the detail table; at most MaxRecordRows are listed and
	// zero hides the table.
	Records       []*models.QuoteRecord
	MaxRecordRows int
}
