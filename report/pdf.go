package report

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"quote-insights/utils"
)

// A4 landscape, in inches.
const (
	paperWidth  = 11.69
	paperHeight = 8.27
)

// PDFRenderer prints a rendered dashboard to PDF with headless Chrome.
type PDFRenderer struct {
	chromeBin string
	timeout   time.Duration
	logger    *utils.Logger
	retry     *utils.RetryConfig
}

// NewPDFRenderer creates a PDFRenderer. chromeBin may be empty.
func NewPDFRenderer(chromeBin string, maxRetries int, logger *utils.Logger) *PDFRenderer {
	return &PDFRenderer{
		chromeBin: chromeBin,
		timeout:   60 * time.Second,
		logger:    logger,
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Render loads htmlPath in a headless browser and writes the printed page to
// pdfPath.
func (p *PDFRenderer) Render(ctx context.Context, htmlPath, pdfPath string) error {
	src, err := fileURL(htmlPath)
	if err != nil {
		return fmt.Errorf("pdf: resolve %q: %w", htmlPath, err)
	}
	if err := os.MkdirAll(filepath.Dir(pdfPath), 0755); err != nil {
		return fmt.Errorf("pdf: create output dir: %w", err)
	}

	chromeBin := findChromeBinary(p.chromeBin)
	p.logger.Debug("[report] Using browser binary: %q", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("allow-file-access-from-files", true),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	var pdf []byte
	err = p.retry.Do(allocCtx, "print-pdf", func(ctx context.Context) error {
		// Suppress chromedp log noise
		tabCtx, cancel := chromedp.NewContext(ctx, chromedp.WithLogf(func(string, ...interface{}) {}))
		defer cancel()

		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, p.timeout)
		defer cancelTimeout()

		return chromedp.Run(tabCtx,
			chromedp.Navigate(src),
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.ActionFunc(func(ctx context.Context) error {
				buf, _, err := page.PrintToPDF().
					WithPrintBackground(true).
					WithPaperWidth(paperWidth).
					WithPaperHeight(paperHeight).
					Do(ctx)
				if err != nil {
					return fmt.Errorf("chromedp print: %w", err)
				}
				pdf = buf
				return nil
			}),
		)
	})
	if err != nil {
		return fmt.Errorf("pdf: %w", err)
	}

	if err := os.WriteFile(pdfPath, pdf, 0644); err != nil {
		return fmt.Errorf("pdf: write %q: %w", pdfPath, err)
	}
	p.logger.Info("[report] PDF written to %s (%d bytes)", pdfPath, len(pdf))
	return nil
}

// fileURL turns a local path into a file:// URL Chrome can open.
func fileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}
