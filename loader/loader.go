// Package loader turns quote exports on disk into raw rows for the cleaner.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quote-insights/models"
	"quote-insights/normalize"
	"quote-insights/utils"
)

var (
	// ErrUnsupportedFormat is returned for extensions the loader cannot read.
	ErrUnsupportedFormat = errors.New("loader: unsupported file format")
	// ErrNoRows is returned when a file has a header but no data rows.
	ErrNoRows = errors.New("loader: no data rows")
)

type format int

const (
	formatUnknown format = iota
	formatDelimited
	formatSpreadsheet
)

func detectFormat(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", ".tsv":
		return formatDelimited
	case ".xlsx", ".xlsm", ".xltx":
		return formatSpreadsheet
	default:
		return formatUnknown
	}
}

// Supported reports whether Load can read the file at path.
func Supported(path string) bool {
	return detectFormat(path) != formatUnknown
}

// table is a parsed sheet: one header row and the data rows beneath it.
type table struct {
	headers []string
	rows    [][]string
}

// Loader reads delimited text and spreadsheet exports.
type Loader struct {
	logger *utils.Logger
}

func New(logger *utils.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads path and returns one RawRow per non-blank data row. Date
// columns are already normalized.
func (l *Loader) Load(path string) ([]models.RawRow, error) {
	f := detectFormat(path)
	if f == formatUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("loader: open %q: %w", path, err)
	}

	var (
		t   table
		err error
	)
	switch f {
	case formatDelimited:
		t, err = l.readDelimited(path)
	case formatSpreadsheet:
		t, err = l.readSpreadsheet(path)
	}
	if err != nil {
		return nil, err
	}

	rows := t.rawRows()
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRows, path)
	}
	l.logger.Info("[loader] %s: %d rows, %d columns", filepath.Base(path), len(rows), len(t.headers))
	return rows, nil
}

// rawRows pairs cells with headers, pads short rows, drops blank rows and
// columns without a header, and normalizes date columns.
func (t table) rawRows() []models.RawRow {
	isDate := make([]bool, len(t.headers))
	for i, h := range t.headers {
		isDate[i] = normalize.IsDateColumn(h)
	}

	out := make([]models.RawRow, 0, len(t.rows))
	for _, cells := range t.rows {
		if blank(cells) {
			continue
		}
		fields := make([]models.Field, 0, len(t.headers))
		for i, h := range t.headers {
			if h == "" {
				continue
			}
			var v string
			if i < len(cells) {
				v = cells[i]
			}
			if isDate[i] {
				v = normalize.Date(v)
			}
			fields = append(fields, models.Field{Name: h, Value: v})
		}
		out = append(out, models.NewRawRow(fields))
	}
	return out
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func cleanHeaders(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(strings.TrimPrefix(c, "\ufeff"))
	}
	return out
}
