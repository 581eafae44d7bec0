package loader

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"quote-insights/models"
	"quote-insights/normalize"
)

// headerScanRows bounds how far down each sheet a header row is looked for.
const headerScanRows = 30

var recognizedKeys = func() map[string]struct{} {
	m := make(map[string]struct{}, len(models.RecognizedColumns))
	for _, c := range models.RecognizedColumns {
		m[normalize.HeaderKey(c)] = struct{}{}
	}
	return m
}()

func (l *Loader) readSpreadsheet(path string) (table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return table{}, fmt.Errorf("loader: open workbook %q: %w", path, err)
	}
	defer f.Close()

	var (
		best      table
		bestSheet string
		bestScore = -1
	)
	for _, sheet := range f.GetSheetList() {
		// Raw values keep dates as serial numbers, which normalize.Date reads.
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return table{}, fmt.Errorf("loader: read sheet %q: %w", sheet, err)
		}
		idx, score := pickHeaderRow(rows)
		if idx < 0 || score <= bestScore {
			continue
		}
		best = table{headers: cleanHeaders(rows[idx]), rows: rows[idx+1:]}
		bestSheet, bestScore = sheet, score
	}
	if bestScore < 0 {
		return table{}, nil
	}

	l.logger.Debug("[loader] %s: sheet %q, %d recognized columns", path, bestSheet, bestScore)
	return best, nil
}

// pickHeaderRow returns the first non-blank row with the most recognized
// column names among the first headerScanRows rows, or -1 if all are blank.
func pickHeaderRow(rows [][]string) (int, int) {
	idx, best := -1, -1
	for i := 0; i < len(rows) && i < headerScanRows; i++ {
		if blank(rows[i]) {
			continue
		}
		if score := headerScore(rows[i]); score > best {
			idx, best = i, score
		}
	}
	return idx, best
}

func headerScore(cells []string) int {
	n := 0
	for _, c := range cells {
		if _, ok := recognizedKeys[normalize.HeaderKey(c)]; ok {
			n++
		}
	}
	return n
}
