package normalize

import (
	"strings"
	"unicode"
)

// IsNullLiteral reports whether s should be treated as absent: blank after
// trimming or the text "null" in any case.
func IsNullLiteral(s string) bool {
	t := strings.TrimSpace(s)
	return t == "" || strings.EqualFold(t, "null")
}

// Chassis canonicalizes a chassis/VIN: all whitespace removed, upper-cased.
// ok is false when nothing is left.
func Chassis(s string) (string, bool) {
	if IsNullLiteral(s) {
		return "", false
	}
	out := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, s)
	if out == "" {
		return "", false
	}
	return out, true
}

// EID canonicalizes an Emirates/national id: every non-alphanumeric rune
// removed, upper-cased. ok is false when nothing is left.
func EID(s string) (string, bool) {
	if IsNullLiteral(s) {
		return "", false
	}
	out := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToUpper(r)
		}
		return -1
	}, s)
	if out == "" {
		return "", false
	}
	return out, true
}

// HeaderKey folds a header to lowercase alphanumerics, so "National ID" and
// "national_id" compare equal.
func HeaderKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
