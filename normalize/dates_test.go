package normalize

import (
	"regexp"
	"testing"
)

var outputFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)

func TestDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-15", "2024-03-15 00:00:00"},
		{"2024-03-15 08:05", "2024-03-15 08:05:00"},
		{"2024-03-15T08:05:09", "2024-03-15 08:05:09"},
		{"2024-03-15 08:05:09.123", "2024-03-15 08:05:09"},
		{"2024-03-15T08:05:09Z", "2024-03-15 08:05:09"},
		{"2024-03-15T08:05:09.5+04:00", "2024-03-15 08:05:09"},
		{"2024-03-15T08:05:09+04:00[Asia/Dubai]", "2024-03-15 08:05:09"},
		{"15/03/2024", "2024-03-15 00:00:00"},
		{"03/15/2024 17:45", "2024-03-15 17:45:00"},
		{"05/03/2024", "2024-03-05 00:00:00"},
		{"5/3/2024", "2024-03-05 00:00:00"},
		{"15.03.2024 10:00:00", "2024-03-15 10:00:00"},
		{"15-03-2024", "2024-03-15 00:00:00"},
		{"2024/03/15", "2024-03-15 00:00:00"},
		{"45292", "2024-01-01 00:00:00"},
		{"45292.5", "2024-01-01 12:00:00"},
		{"1", "1900-01-01 00:00:00"},
		{"61", "1900-03-01 00:00:00"},
		{"10:30", ""},
		{"10:30:15", ""},
		{"", ""},
		{"null", ""},
		{"not a date", ""},
		{"2024-13-45", ""},
	}

	for _, tt := range tests {
		if got := Date(tt.in); got != tt.want {
			t.Errorf("Date(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestDateIsIdempotent(t *testing.T) {
	inputs := []string{
		"2024-03-15", "15/03/2024 09:30", "45292.25", "2024-03-15T08:05:09Z",
		"garbage", "", "12:00", "31.12.1999 23:59:59",
	}
	for _, in := range inputs {
		once := Date(in)
		if once != "" && !outputFormat.MatchString(once) {
			t.Errorf("Date(%q) = %q; not in yyyy-MM-dd HH:mm:ss", in, once)
		}
		if twice := Date(once); twice != once {
			t.Errorf("Date(Date(%q)) = %q; want %q", in, twice, once)
		}
	}
}

func TestIsDateColumn(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{"RegistrationDate", true},
		{"LICENSEISSUEDATE", true},
		{"Insurance expiry date", true},
		{"QuoteRequestedOn", false},
		{"Status", false},
	}
	for _, tt := range tests {
		if got := IsDateColumn(tt.header); got != tt.want {
			t.Errorf("IsDateColumn(%q) = %v; want %v", tt.header, got, tt.want)
		}
	}
}
