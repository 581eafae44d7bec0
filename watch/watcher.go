// Package watch regenerates dashboards as quote exports land in a directory.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/patrickmn/go-cache"

	"quote-insights/utils"
)

// Handler processes one settled file.
type Handler func(ctx context.Context, path string) error

// Options tune a Watcher. Zero values pick the defaults.
type Options struct {
	// Debounce is how long a file must stay quiet before it is processed.
	Debounce time.Duration
	// TTL is how long a processed fingerprint suppresses identical content.
	TTL time.Duration
	// Accept filters paths; nil accepts everything.
	Accept func(path string) bool
}

// Watcher monitors a directory and calls Handler for new or changed files.
type Watcher struct {
	dir     string
	opts    Options
	handler Handler
	logger  *utils.Logger

	// seen maps content fingerprints to the path first processed with them.
	seen     *cache.Cache
	inFlight *utils.PathSet

	mu     sync.Mutex
	timers map[string]*time.Timer
	wg     sync.WaitGroup
}

func New(dir string, opts Options, handler Handler, logger *utils.Logger) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = 1500 * time.Millisecond
	}
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Minute
	}
	return &Watcher{
		dir:      dir,
		opts:     opts,
		handler:  handler,
		logger:   logger,
		seen:     cache.New(opts.TTL, 2*opts.TTL),
		inFlight: utils.NewPathSet(),
		timers:   make(map[string]*time.Timer),
	}
}

// Run watches the directory until ctx is cancelled. Files already present
// are processed first.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch: add %q: %w", w.dir, err)
	}
	w.logger.Info("[watch] Watching %s (debounce %v)", w.dir, w.opts.Debounce)

	if err := w.Backfill(ctx); err != nil {
		w.logger.Warn("[watch] Backfill failed: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			w.stopTimers()
			w.wg.Wait()
			return nil
		case evt, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if evt.Op&(fsnotify.Create|fsnotify.Write) != 0 && w.accepts(evt.Name) {
				w.schedule(ctx, evt.Name)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("[watch] watcher error: %v", err)
		}
	}
}

// Backfill processes the files already in the directory.
func (w *Watcher) Backfill(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("watch: read dir: %w", err)
	}
	for _, e := range entries {
		path := filepath.Join(w.dir, e.Name())
		if e.IsDir() || !w.accepts(path) {
			continue
		}
		if _, err := w.Process(ctx, path); err != nil {
			w.logger.Error("[watch] %s: %v", e.Name(), err)
		}
	}
	return nil
}

// Process fingerprints path and runs the handler unless the same content was
// handled within the TTL. It reports whether the handler ran.
func (w *Watcher) Process(ctx context.Context, path string) (bool, error) {
	if !w.inFlight.Add(path) {
		return false, nil
	}
	defer w.inFlight.Remove(path)

	fp, err := fingerprint(path)
	if err != nil {
		return false, fmt.Errorf("watch: fingerprint: %w", err)
	}
	if prev, found := w.seen.Get(fp); found {
		w.logger.Debug("[watch] %s unchanged (same content as %s), skipping", filepath.Base(path), prev)
		return false, nil
	}

	if err := w.handler(ctx, path); err != nil {
		return true, err
	}
	w.seen.Set(fp, path, cache.DefaultExpiration)
	return true, nil
}

func (w *Watcher) accepts(path string) bool {
	base := filepath.Base(path)
	// Editor and office lock files.
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "~$") {
		return false
	}
	return w.opts.Accept == nil || w.opts.Accept(path)
}

// schedule (re)arms the debounce timer for path.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok && t.Stop() {
		t.Reset(w.opts.Debounce)
		return
	}

	var t *time.Timer
	w.wg.Add(1)
	t = time.AfterFunc(w.opts.Debounce, func() {
		defer w.wg.Done()
		w.mu.Lock()
		if w.timers[path] == t {
			delete(w.timers, path)
		}
		w.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		if ran, err := w.Process(ctx, path); err != nil {
			w.logger.Error("[watch] %s: %v", filepath.Base(path), err)
		} else if ran {
			w.logger.Info("[watch] Processed %s", filepath.Base(path))
		}
	})
	w.timers[path] = t
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.timers {
		if t.Stop() {
			w.wg.Done()
		}
		delete(w.timers, path)
	}
}

func fingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
