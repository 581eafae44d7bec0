package models

import "testing"

func TestRawRowCaseInsensitive(t *testing.T) {
	r := NewRawRow([]Field{
		{Name: "ChassisNumber", Value: "ABC"},
		{Name: "Status", Value: "Failed"},
		{Name: "STATUS", Value: "Success"},
	})

	if got := r.Value("chassisnumber"); got != "ABC" {
		t.Errorf("Value(chassisnumber) = %q; want ABC", got)
	}
	if got := r.Value("status"); got != "Success" {
		t.Errorf("later duplicate should win, got %q", got)
	}
	if r.Len() != 2 {
		t.Errorf("Len = %d; want 2", r.Len())
	}
	if fields := r.Fields(); fields[1].Name != "Status" {
		t.Errorf("first spelling should keep its position, got %q", fields[1].Name)
	}
	if r.Has("EID") {
		t.Error("Has(EID) should be false")
	}
}

func TestRawRowFieldsIsACopy(t *testing.T) {
	r := RawRowFromMap(map[string]string{"Make": "Kia"})
	fields := r.Fields()
	fields[0].Value = "Audi"
	if got := r.Value("make"); got != "Kia" {
		t.Errorf("row mutated through Fields(): %q", got)
	}
}

func TestQuoteRecordGroup(t *testing.T) {
	tests := []struct {
		insType string
		want    Group
	}{
		{"Third Party", GroupThirdParty},
		{" third party ", GroupThirdParty},
		{"COMPREHENSIVE", GroupComprehensive},
		{"Third Party Plus", GroupNone},
		{"", GroupNone},
	}
	for _, tt := range tests {
		q := &QuoteRecord{InsuranceType: tt.insType}
		if got := q.Group(); got != tt.want {
			t.Errorf("Group(%q) = %v; want %v", tt.insType, got, tt.want)
		}
	}
}
