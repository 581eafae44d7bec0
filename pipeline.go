package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"quote-insights/config"
	"quote-insights/loader"
	"quote-insights/models"
	"quote-insights/report"
	"quote-insights/services"
	"quote-insights/storage"
	"quote-insights/utils"
)

// Suffixes of the files a run writes next to each other.
const (
	dashboardSuffix = "_dashboard.html"
	pdfSuffix       = "_dashboard.pdf"
	quotesSuffix    = "_quotes.csv"
)

// pipeline turns one export into a dashboard, a normalized CSV and,
// optionally, a stored run. It is safe to run for several files at once.
type pipeline struct {
	cfg      *config.Config
	settings config.Settings
	logger   *utils.Logger

	loader  *loader.Loader
	cleaner *services.Cleaner
	stats   *services.StatisticsService
	html    *report.HTMLRenderer
	pdf     *report.PDFRenderer
	store   storage.RunStore

	printMu sync.Mutex
	printer *services.InsightPrinter
	now     func() time.Time
}

func newPipeline(cfg *config.Config, settings config.Settings, store storage.RunStore, out io.Writer, logger *utils.Logger) (*pipeline, error) {
	html, err := report.NewHTMLRenderer(logger)
	if err != nil {
		return nil, err
	}

	p := &pipeline{
		cfg:      cfg,
		settings: settings,
		logger:   logger,
		loader:   loader.New(logger),
		cleaner:  services.NewCleaner(logger),
		stats: services.NewStatisticsService(logger, services.Limits{
			TopRequested:         settings.TopRequested,
			TopCompRejected:      settings.TopCompRejected,
			TopTPLRejectedModels: settings.TopTPLRejectedModels,
		}),
		html:    html,
		store:   store,
		printer: services.NewInsightPrinter(out),
		now:     time.Now,
	}
	if cfg.RenderPDF {
		p.pdf = report.NewPDFRenderer(cfg.ChromeBin, cfg.MaxRetries, logger)
	}
	return p, nil
}

// accepts reports whether path is an input the pipeline should pick up.
// Its own CSV exports are skipped so a shared input/output directory does
// not feed back into itself.
func (p *pipeline) accepts(path string) bool {
	return loader.Supported(path) && !strings.HasSuffix(strings.ToLower(path), quotesSuffix)
}

func (p *pipeline) title() string {
	if p.settings.Title != "" {
		return p.settings.Title
	}
	return p.cfg.ReportTitle
}

// run processes one file end to end.
func (p *pipeline) run(ctx context.Context, path string) error {
	runID := uuid.NewString()
	started := p.now()
	name := filepath.Base(path)
	p.logger.Info("[pipeline] %s: run %s started", name, runID)

	rows, err := p.loader.Load(path)
	if err != nil {
		return err
	}
	records := p.cleaner.Clean(rows)

	stats, err := p.stats.Calculate(records)
	if err != nil {
		return fmt.Errorf("pipeline: aggregate: %w", err)
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	htmlPath := filepath.Join(p.cfg.OutputDir, base+dashboardSuffix)

	data := report.Data{
		Title:       p.title(),
		RunID:       runID,
		Source:      name,
		GeneratedAt: started,
		Stats:       stats,
		Records:     records,
	}
	if p.settings.IncludeRecords {
		data.MaxRecordRows = p.settings.MaxRecordRows
	}
	if err := p.html.RenderFile(htmlPath, data); err != nil {
		return err
	}

	if p.pdf != nil {
		pdfPath := filepath.Join(p.cfg.OutputDir, base+pdfSuffix)
		if err := p.pdf.Render(ctx, htmlPath, pdfPath); err != nil {
			// The HTML dashboard is already on disk; a missing PDF is not fatal.
			p.logger.Error("[pipeline] %s: %v", name, err)
		}
	}

	if err := p.writeQuotes(filepath.Join(p.cfg.OutputDir, base+quotesSuffix), records); err != nil {
		return err
	}

	if p.store != nil {
		summary := storage.NewRunSummary(runID, name, started, stats)
		if err := p.store.SaveRun(ctx, summary, records); err != nil {
			p.logger.Error("[pipeline] %s: store run: %v", name, err)
		}
	}

	p.printMu.Lock()
	p.printer.Print(name, stats)
	p.printMu.Unlock()

	p.logger.Info("[pipeline] %s: done in %v", name, time.Since(started).Round(time.Millisecond))
	return nil
}

func (p *pipeline) writeQuotes(path string, records []*models.QuoteRecord) error {
	w, err := storage.NewCSVWriter(path)
	if err != nil {
		return err
	}
	if err := w.WriteQuotes(records); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("csv: close: %w", err)
	}
	p.logger.Info("[pipeline] Normalized quotes saved to %s", path)
	return nil
}

// collectInputs expands a directory into its supported files, sorted by
// name. A file path is returned as is.
func (p *pipeline) collectInputs(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{input}, nil
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		path := filepath.Join(input, e.Name())
		if !e.IsDir() && p.accepts(path) {
			files = append(files, path)
		}
	}
	return files, nil
}
