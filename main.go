package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"quote-insights/config"
	"quote-insights/loader"
	"quote-insights/storage"
	"quote-insights/utils"
	"quote-insights/watch"
)

func main() {
	cfg := config.Load()

	flag.StringVar(&cfg.InputPath, "input", cfg.InputPath, "export file or directory of exports")
	flag.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "output directory")
	flag.BoolVar(&cfg.RenderPDF, "pdf", cfg.RenderPDF, "also print the dashboard to PDF")
	flag.StringVar(&cfg.StoreDriver, "store", cfg.StoreDriver, "run store: none, postgres or sqlite")
	flag.StringVar(&cfg.SettingsFile, "settings", cfg.SettingsFile, "report settings YAML file")
	watchMode := flag.Bool("watch", false, "keep watching the input directory for new exports")
	flag.Parse()

	logger := utils.NewLogger(cfg.LogLevel)
	logger.Info("=== Quote Insights starting ===")
	logger.Info("Config: input %s | out %s | pdf %v | store %s | concurrency %d",
		cfg.InputPath, cfg.OutputDir, cfg.RenderPDF, cfg.StoreDriver, cfg.MaxConcurrency)

	settings, err := config.LoadSettings(cfg.SettingsFile)
	if err != nil {
		logger.Error("Failed to load settings: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open %s store: %v", cfg.StoreDriver, err)
		os.Exit(1)
	}
	if store != nil {
		defer store.Close()
	}

	p, err := newPipeline(cfg, settings, store, os.Stdout, logger)
	if err != nil {
		logger.Error("Failed to set up pipeline: %v", err)
		os.Exit(1)
	}

	if *watchMode {
		w := watch.New(cfg.InputPath, watch.Options{
			Debounce: time.Duration(cfg.WatchDebounceMs) * time.Millisecond,
			TTL:      time.Duration(cfg.CacheTTLMin) * time.Minute,
			Accept:   p.accepts,
		}, p.run, logger)
		if err := w.Run(ctx); err != nil {
			logger.Error("Watch failed: %v", err)
			os.Exit(1)
		}
		logger.Info("Watcher stopped")
		return
	}

	files, err := p.collectInputs(cfg.InputPath)
	if err != nil {
		logger.Error("%s", describe(cfg.InputPath, err))
		os.Exit(1)
	}
	if len(files) == 0 {
		logger.Error("No supported exports found in %s", cfg.InputPath)
		os.Exit(1)
	}

	if failed := runAll(ctx, p, files, cfg.MaxConcurrency, logger); failed > 0 {
		logger.Error("%d of %d files failed", failed, len(files))
		os.Exit(1)
	}
	fmt.Printf("  Done. Dashboards → %s\n\n", cfg.OutputDir)
}

// runAll processes files on a worker pool and returns how many failed. Each
// file is aggregated independently.
func runAll(ctx context.Context, p *pipeline, files []string, workers int, logger *utils.Logger) int {
	pool := utils.NewWorkerPool(workers, 0)
	var (
		mu     sync.Mutex
		failed int
	)
	for _, file := range files {
		file := file
		pool.Submit(func() {
			if err := p.run(ctx, file); err != nil {
				logger.Error("%s", describe(file, err))
				mu.Lock()
				failed++
				mu.Unlock()
			}
		})
	}
	pool.Wait()
	return failed
}

func openStore(ctx context.Context, cfg *config.Config, logger *utils.Logger) (storage.RunStore, error) {
	switch strings.ToLower(cfg.StoreDriver) {
	case config.StoreNone, "":
		return nil, nil
	case config.StorePostgres:
		return storage.NewPostgresStore(ctx, cfg.DSN(), cfg.MaxRetries, logger)
	case config.StoreSQLite:
		return storage.NewSQLiteStore(ctx, cfg.SQLitePath, logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// describe turns the user-visible failures into plain messages.
func describe(path string, err error) string {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Sprintf("Input not found: %s", path)
	case errors.Is(err, loader.ErrUnsupportedFormat):
		return fmt.Sprintf("Unsupported file format: %s (use .csv, .txt, .tsv or .xlsx)", path)
	case errors.Is(err, loader.ErrNoRows):
		return fmt.Sprintf("No data rows in %s", path)
	default:
		return fmt.Sprintf("%s: %v", path, err)
	}
}
