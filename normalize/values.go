package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// premiumJunkRegexp drops currency symbols, codes and anything else that is
// not part of a plain decimal.
var premiumJunkRegexp = regexp.MustCompile(`[^0-9.\-]`)

// wholeFloatRegexp matches integers written with a zero fraction ("2019.0").
var wholeFloatRegexp = regexp.MustCompile(`^-?\d+(\.0+)?$`)

var (
	minInt = decimal.NewFromInt(math.MinInt)
	maxInt = decimal.NewFromInt(math.MaxInt)
)

// Category returns the trimmed value, or "" with ok=false for blank/"null".
func Category(s string) (string, bool) {
	if IsNullLiteral(s) {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// Int parses a whole number. "2019.0" is accepted since spreadsheets like to
// hand integers back as floats. Exponents and out-of-range values are rejected.
func Int(s string) (int, bool) {
	t := strings.TrimSpace(s)
	if IsNullLiteral(t) {
		return 0, false
	}
	if n, err := strconv.Atoi(t); err == nil {
		return n, true
	}
	if !wholeFloatRegexp.MatchString(t) {
		return 0, false
	}
	d, err := decimal.NewFromString(t)
	if err != nil || !d.IsInteger() || d.LessThan(minInt) || d.GreaterThan(maxInt) {
		return 0, false
	}
	return int(d.IntPart()), true
}

// Amount parses a decimal with thousands separators ("1,234.50").
// Unparsable input gives zero.
func Amount(s string) decimal.Decimal {
	t := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	t = strings.ReplaceAll(t, " ", "")
	if t == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(t)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Premium parses a money amount that may carry currency text ("AED 1,050.00").
func Premium(s string) (decimal.Decimal, bool) {
	if IsNullLiteral(s) {
		return decimal.Zero, false
	}
	t := premiumJunkRegexp.ReplaceAllString(strings.ReplaceAll(s, ",", ""), "")
	if t == "" || t == "." || t == "-" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(t)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Truthy accepts "1", "true" and "yes" in any case.
func Truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
