package report

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"quote-insights/utils"
)

//go:embed templates/dashboard.html.tmpl
var templateFS embed.FS

// HTMLRenderer writes the dashboard as one HTML document with inline CSS and
// SVG charts.
type HTMLRenderer struct {
	tmpl   *template.Template
	logger *utils.Logger
}

// NewHTMLRenderer parses the embedded dashboard template.
func NewHTMLRenderer(logger *utils.Logger) (*HTMLRenderer, error) {
	tmpl, err := template.New("dashboard.html.tmpl").
		Funcs(template.FuncMap{
			"int":   formatInt,
			"pct":   formatPercent,
			"money": formatMoney,
			"inc":   func(i int) int { return i + 1 },
		}).
		ParseFS(templateFS, "templates/dashboard.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("report: parse template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl, logger: logger}, nil
}

// Render executes the dashboard template for data into w.
func (r *HTMLRenderer) Render(w io.Writer, data Data) error {
	if data.Stats == nil {
		return errors.New("report: render: no statistics")
	}
	if err := r.tmpl.Execute(w, buildDashboard(data)); err != nil {
		return fmt.Errorf("report: render: %w", err)
	}
	return nil
}

// RenderFile renders data to path, creating parent directories.
func (r *HTMLRenderer) RenderFile(path string, data Data) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("report: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create file %q: %w", path, err)
	}
	if err := r.Render(f, data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("report: close %q: %w", path, err)
	}

	r.logger.Info("[report] Dashboard written to %s", path)
	return nil
}
