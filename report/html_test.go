package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"quote-insights/models"
	"quote-insights/utils"
)

func sampleStats() *models.Statistics {
	return &models.Statistics{
		TotalRecords: 3,
		ThirdParty: models.GroupStats{
			Group: models.GroupThirdParty, TotalQuotes: 2, PassCount: 1, FailCount: 1,
			FailurePercentage: 50,
			FailureReasons:    []models.LabelCount{{Label: "Vehicle <blocked>", Count: 1}},
		},
		Comprehensive: models.GroupStats{
			Group: models.GroupComprehensive, TotalQuotes: 1, PassCount: 1,
			BlockedEstimatedValue: decimal.NewFromInt(1250000),
		},
		Overall: models.OutcomeCounts{Total: 3, Pass: 2, Fail: 1},
		TPLBodyOutcomes: []models.OutcomeBreakdown{
			{Label: "Sedan", Success: 1, Failure: 1},
		},
		SalesByBodyType: []models.SalesConversion{
			{Label: "Sedan", Requests: 2, Successful: 2, Sold: 1, Premium: decimal.RequireFromString("1500.5"), QuoteRatio: 100, ConversionRatio: 50},
		},
		TopRequestedMakeModels: []models.MakeModelStat{
			{Make: "Toyota", Model: "Camry", UniqueChassis: 2, SuccessChassis: 2},
		},
		RequestedRange: models.DateRange{
			From: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		},
	}
}

func render(t *testing.T, data Data) string {
	t.Helper()
	r, err := NewHTMLRenderer(utils.NewDiscardLogger())
	if err != nil {
		t.Fatalf("NewHTMLRenderer: %v", err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, data); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestRenderDashboard(t *testing.T) {
	out := render(t, Data{
		Title:       "Quotes & Sales",
		RunID:       "run-42",
		Source:      "march.csv",
		GeneratedAt: time.Date(2024, 4, 1, 9, 30, 0, 0, time.UTC),
		Stats:       sampleStats(),
	})

	wants := []string{
		"<title>Quotes &amp; Sales</title>",
		"Run run-42",
		"01 Mar 2024",
		"31 Mar 2024",
		"Vehicle &lt;blocked&gt;",
		"1,250,000.00",
		"1,500.50",
		"50.00%",
		"<svg",
		"TPL by body category",
		"Camry",
	}
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Errorf("dashboard missing %q", w)
		}
	}
	if strings.Contains(out, "<h2>Records</h2>") {
		t.Error("records table should be hidden when MaxRecordRows is zero")
	}
	if strings.Contains(out, "http://") && !strings.Contains(out, "http://www.w3.org/2000/svg") {
		t.Error("dashboard should not reference external assets")
	}
}

func TestRenderRecordsAreCapped(t *testing.T) {
	premium := decimal.NewNullDecimal(decimal.NewFromInt(900))
	records := []*models.QuoteRecord{
		{InsuranceType: "Third Party", Outcome: models.OutcomeSuccess, Make: "Kia", Chassis: "AAA111", PolicyPremium: premium},
		{InsuranceType: "Third Party", Outcome: models.OutcomeFailure, Make: "Nissan", Chassis: "BBB222"},
		{InsuranceType: "Comprehensive", Outcome: models.OutcomeSuccess, Make: "Lexus", Chassis: "CCC333"},
	}

	out := render(t, Data{Title: "t", Stats: sampleStats(), Records: records, MaxRecordRows: 2})

	if !strings.Contains(out, "Showing 2 of 3 records.") {
		t.Error("expected records summary line")
	}
	if !strings.Contains(out, "AAA111") || !strings.Contains(out, "BBB222") {
		t.Error("first two records should be listed")
	}
	if strings.Contains(out, "CCC333") {
		t.Error("third record should be cut off")
	}
	if !strings.Contains(out, "900.00") {
		t.Error("premium should be formatted")
	}
}

func TestRenderRequiresStats(t *testing.T) {
	r, err := NewHTMLRenderer(utils.NewDiscardLogger())
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Render(&bytes.Buffer{}, Data{Title: "x"}); err == nil {
		t.Error("expected error for missing statistics")
	}
}

func TestNewChartScalesToLargestRow(t *testing.T) {
	c := outcomeChart("x", []models.OutcomeBreakdown{
		{Label: "A", Success: 3, Failure: 1},
		{Label: "B", Success: 0, Failure: 2},
		{Label: "C"},
	})

	if len(c.Rows) != 3 {
		t.Fatalf("rows = %d; want 3", len(c.Rows))
	}
	a := c.Rows[0]
	if len(a.Segments) != 2 || a.Segments[0].Width+a.Segments[1].Width != chartBarWidth {
		t.Errorf("largest row should span the full bar width, got %+v", a.Segments)
	}
	if got := c.Rows[1].Segments[0].Width; got != chartBarWidth/2 {
		t.Errorf("B width = %d; want %d", got, chartBarWidth/2)
	}
	if len(c.Rows[2].Segments) != 0 {
		t.Error("zero row should have no segments")
	}
}

func TestFormatting(t *testing.T) {
	ints := map[int]string{0: "0", 999: "999", 1000: "1,000", -1234567: "-1,234,567"}
	for n, want := range ints {
		if got := formatInt(n); got != want {
			t.Errorf("formatInt(%d) = %q; want %q", n, got, want)
		}
	}

	money := map[string]string{"0": "0.00", "1234.5": "1,234.50", "-999999.999": "-1,000,000.00"}
	for in, want := range money {
		if got := formatMoney(decimal.RequireFromString(in)); got != want {
			t.Errorf("formatMoney(%s) = %q; want %q", in, got, want)
		}
	}

	if got := formatPercent(200.0 / 3); got != "66.67%" {
		t.Errorf("formatPercent = %q", got)
	}
	if got := formatDate(time.Time{}); got != "-" {
		t.Errorf("formatDate(zero) = %q; want -", got)
	}
}

func TestFileURL(t *testing.T) {
	u, err := fileURL("/tmp/out/report dashboard.html")
	if err != nil {
		t.Fatal(err)
	}
	if u != "file:///tmp/out/report%20dashboard.html" {
		t.Errorf("fileURL = %q", u)
	}
}

func TestFindChromeBinaryPrefersConfigured(t *testing.T) {
	if got := findChromeBinary("/opt/chrome"); got != "/opt/chrome" {
		t.Errorf("findChromeBinary = %q; want /opt/chrome", got)
	}
}
