package services

import (
	"bytes"
	"strings"
	"testing"

	"quote-insights/models"
)

func TestInsightPrinter(t *testing.T) {
	stats := &models.Statistics{
		TotalRecords: 4,
		Overall:      models.OutcomeCounts{Total: 4, Pass: 3, Fail: 1},
		ThirdParty: models.GroupStats{
			Group: models.GroupThirdParty, TotalQuotes: 4, PassCount: 3, FailCount: 1,
			FailurePercentage: 25,
			FailureReasons:    []models.LabelCount{{Label: "Blacklisted chassis", Count: 1}},
		},
		Comprehensive: models.GroupStats{Group: models.GroupComprehensive},
		TopRequestedMakeModels: []models.MakeModelStat{
			{Make: "Toyota", Model: "Land Cruiser", UniqueChassis: 3},
		},
	}

	var buf bytes.Buffer
	NewInsightPrinter(&buf).Print("march.csv", stats)
	out := buf.String()

	for _, want := range []string{"march.csv", "25.00%", "Blacklisted chassis", "Toyota Land Cruiser", "No failures"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestShorten(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is far too long", 10, "this is..."},
		{"مرحبا بالعالم", 8, "مرحبا..."},
	}
	for _, tt := range tests {
		if got := shorten(tt.in, tt.max); got != tt.want {
			t.Errorf("shorten(%q, %d) = %q; want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
