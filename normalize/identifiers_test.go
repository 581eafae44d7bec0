package normalize

import "testing"

func TestChassis(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"chs123", "CHS123", true},
		{"CHS123", "CHS123", true},
		{" CHS123 ", "CHS123", true},
		{"jtd 12\t3", "JTD123", true},
		{"AB-12", "AB-12", true},
		{"", "", false},
		{"   ", "", false},
		{"NULL", "", false},
	}
	for _, tt := range tests {
		got, ok := Chassis(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Chassis(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
		if ok {
			if again, _ := Chassis(got); again != got {
				t.Errorf("Chassis not idempotent for %q: %q -> %q", tt.in, got, again)
			}
		}
	}
}

func TestEID(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"784-1990-1234567-1", "784199012345671", true},
		{" ab 12/34 ", "AB1234", true},
		{"---", "", false},
		{"null", "", false},
	}
	for _, tt := range tests {
		got, ok := EID(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("EID(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestIsNullLiteral(t *testing.T) {
	for _, s := range []string{"", "  ", "null", "NULL", " Null "} {
		if !IsNullLiteral(s) {
			t.Errorf("IsNullLiteral(%q) = false; want true", s)
		}
	}
	for _, s := range []string{"0", "nullable", "n/a"} {
		if IsNullLiteral(s) {
			t.Errorf("IsNullLiteral(%q) = true; want false", s)
		}
	}
}

func TestHeaderKey(t *testing.T) {
	if got := HeaderKey("National_ID #"); got != "nationalid" {
		t.Errorf("HeaderKey = %q; want nationalid", got)
	}
}
