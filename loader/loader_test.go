package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"

	"quote-insights/models"
	"quote-insights/utils"
)

func newTestLoader() *Loader {
	return New(utils.NewDiscardLogger())
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func load(t *testing.T, path string) []models.RawRow {
	t.Helper()
	rows, err := newTestLoader().Load(path)
	if err != nil {
		t.Fatalf("Load(%s): %v", filepath.Base(path), err)
	}
	return rows
}

func TestLoadDelimitedVariants(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
	}{
		{"comma with bom", "a.csv", append([]byte{0xEF, 0xBB, 0xBF},
			"Status,ChassisNumber,QuoteRequestedOn\nSuccess,abc123,15/03/2024 10:00\n"...)},
		{"semicolon", "b.csv", []byte("Status;ChassisNumber;QuoteRequestedOn\r\nSuccess;abc123;15/03/2024 10:00\r\n")},
		{"tab", "c.tsv", []byte("Status\tChassisNumber\tQuoteRequestedOn\nSuccess\tabc123\t15/03/2024 10:00\n")},
		{"sep directive", "d.txt", []byte("sep=|\nStatus|ChassisNumber|QuoteRequestedOn\nSuccess|abc123|15/03/2024 10:00\n")},
		{"quoted commas do not win", "e.csv", []byte("Status;ChassisNumber;QuoteRequestedOn\n\"a,b\";abc123;15/03/2024 10:00\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := load(t, writeFile(t, tt.file, tt.data))
			if len(rows) != 1 {
				t.Fatalf("got %d rows; want 1", len(rows))
			}
			if got := rows[0].Value("chassisnumber"); got != "abc123" {
				t.Errorf("ChassisNumber = %q; want abc123", got)
			}
			if got := rows[0].Value("QuoteRequestedOn"); got != "2024-03-15 10:00:00" {
				t.Errorf("QuoteRequestedOn = %q; want normalized date", got)
			}
		})
	}
}

func TestLoadUTF16(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	data, err := enc.Bytes([]byte("Make,Model\nKia,Sportage\n"))
	if err != nil {
		t.Fatal(err)
	}

	rows := load(t, writeFile(t, "utf16.csv", data))
	if len(rows) != 1 || rows[0].Value("Make") != "Kia" || rows[0].Value("Model") != "Sportage" {
		t.Errorf("unexpected rows: %+v", rows)
	}
}

func TestLoadLatin1Fallback(t *testing.T) {
	// "Citroën" in Windows-1252.
	data := []byte("Make,Model\nCitro\xebn,C4\n")

	rows := load(t, writeFile(t, "latin1.csv", data))
	if got := rows[0].Value("Make"); got != "Citroën" {
		t.Errorf("Make = %q; want Citroën", got)
	}
}

func TestLoadSkipsBlankRowsAndPadsShortRows(t *testing.T) {
	data := []byte("Make,Model,Age\n\nKia\n,,\nToyota,Camry,40\n")

	rows := load(t, writeFile(t, "short.csv", data))
	if len(rows) != 2 {
		t.Fatalf("got %d rows; want 2", len(rows))
	}
	if !rows[0].Has("Age") || rows[0].Value("Age") != "" {
		t.Errorf("short row should be padded with empty Age, got %+v", rows[0].Fields())
	}
	if rows[1].Value("Age") != "40" {
		t.Errorf("Age = %q; want 40", rows[1].Value("Age"))
	}
}

func TestLoadUnparseableDateBecomesEmpty(t *testing.T) {
	rows := load(t, writeFile(t, "d.csv", []byte("RegistrationDate,Make\n10:30,Kia\n")))
	if got := rows[0].Value("RegistrationDate"); got != "" {
		t.Errorf("RegistrationDate = %q; want empty", got)
	}
	if !rows[0].Has("RegistrationDate") {
		t.Error("date column should still be present")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := newTestLoader().Load(filepath.Join(dir, "quotes.pdf"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("pdf: err = %v; want ErrUnsupportedFormat", err)
	}

	_, err = newTestLoader().Load(filepath.Join(dir, "missing.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing: err = %v; want os.ErrNotExist", err)
	}

	_, err = newTestLoader().Load(writeFile(t, "header.csv", []byte("Status,Make\n")))
	if !errors.Is(err, ErrNoRows) {
		t.Errorf("header only: err = %v; want ErrNoRows", err)
	}

	_, err = newTestLoader().Load(writeFile(t, "empty.csv", nil))
	if !errors.Is(err, ErrNoRows) {
		t.Errorf("empty: err = %v; want ErrNoRows", err)
	}
}

func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		header string
		want   rune
	}{
		{"a,b,c", ','},
		{"a;b;c", ';'},
		{"a\tb\tc", '\t'},
		{"a|b|c", '|'},
		{"a;b,c", ','},
		{"single", ','},
	}
	for _, tt := range tests {
		if got := sniffDelimiter(tt.header); got != tt.want {
			t.Errorf("sniffDelimiter(%q) = %q; want %q", tt.header, got, tt.want)
		}
	}
}

func TestLoadSpreadsheetPicksBestSheetAndHeader(t *testing.T) {
	f := excelize.NewFile()
	if err := f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Notes", "Prepared by ops"}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.NewSheet("Quotes"); err != nil {
		t.Fatal(err)
	}
	rows := map[string][]interface{}{
		"A1": {"Weekly export"},
		"A3": {"QuoteRequestedOn", "Status", "ChassisNumber", "InsuranceType"},
		"A4": {45292, "Success", "abc123", "Third Party"},
		"A5": {45293, "Failed", "xyz789", "Comprehensive"},
	}
	for cell, values := range rows {
		values := values
		if err := f.SetSheetRow("Quotes", cell, &values); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "quotes.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	got := load(t, path)
	if len(got) != 2 {
		t.Fatalf("got %d rows; want 2", len(got))
	}
	if v := got[0].Value("QuoteRequestedOn"); v != "2024-01-01 00:00:00" {
		t.Errorf("QuoteRequestedOn = %q; want 2024-01-01 00:00:00", v)
	}
	if v := got[1].Value("InsuranceType"); v != "Comprehensive" {
		t.Errorf("InsuranceType = %q; want Comprehensive", v)
	}
}

func TestSupported(t *testing.T) {
	for path, want := range map[string]bool{
		"a.CSV": true, "b.xlsx": true, "c.tsv": true, "d.xls": false, "e": false,
	} {
		if got := Supported(path); got != want {
			t.Errorf("Supported(%q) = %v; want %v", path, got, want)
		}
	}
}
