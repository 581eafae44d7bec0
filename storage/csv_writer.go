package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"quote-insights/models"
	"quote-insights/normalize"
	"quote-insights/services"
)

// quoteColumns is the header of the normalized export. Names follow the
// source schema so the file loads back through the loader.
var quoteColumns = []string{
	"QuoteRequestedOn", "InsuranceType", "Status", "InsurancePurpose", "ICName",
	"ShoryMakeEn", "ShoryModelEn", "ManufactureYear", "BodyCategory", "OverrideIsGccSpec",
	"ChassisNumber", "EID", "QuotationNo", "PolicyNumber", "EstimatedValue",
	"PolicyPremium", "Age", "IsChinese", "FuelType", "ErrorText",
}

// CSVWriter writes normalized quotes to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes a UTF-8 BOM and the header row. Intermediate directories are
// created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	// Spreadsheet apps need the BOM to pick UTF-8.
	if _, err := f.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write bom: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(quoteColumns); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteQuotes appends one row per record.
func (c *CSVWriter) WriteQuotes(records []*models.QuoteRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range records {
		if r == nil {
			continue
		}
		if err := c.writer.Write(quoteRow(r)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func quoteRow(r *models.QuoteRecord) []string {
	var requested string
	if !r.RequestedAt.IsZero() {
		requested = r.RequestedAt.Format(normalize.OutputLayout)
	}
	var premium string
	if r.PolicyPremium.Valid {
		premium = r.PolicyPremium.Decimal.String()
	}
	fuel, _ := services.Lookup(r.Raw, models.ColFuelType)
	if fuel == "" && r.Electric {
		fuel = services.ElectricFuel
	}

	return []string{
		requested,
		r.InsuranceType,
		r.Outcome.Label(),
		r.InsurancePurpose,
		r.CompanyName,
		r.Make,
		r.Model,
		optionalInt(r.ManufactureYear),
		r.BodyCategory,
		r.OverrideSpec,
		r.Chassis,
		r.EID,
		r.QuoteNumber,
		r.PolicyNumber,
		r.EstimatedValue.String(),
		premium,
		optionalInt(r.DriverAge),
		strconv.FormatBool(r.Chinese),
		fuel,
		r.ErrorText,
	}
}

func optionalInt(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
