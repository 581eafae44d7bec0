package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Delimiters tried by sniffDelimiter, in tie-break order.
var candidateDelimiters = []rune{',', ';', '\t', '|'}

func (l *Loader) readDelimited(path string) (table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return table{}, fmt.Errorf("loader: read %q: %w", path, err)
	}

	text, enc, err := decodeText(b)
	if err != nil {
		return table{}, fmt.Errorf("loader: decode %q: %w", path, err)
	}

	text, delim, directive := splitSepDirective(text)
	if !directive {
		delim = sniffDelimiter(firstLine(text))
	}
	l.logger.Debug("[loader] %s: encoding=%s delimiter=%q", path, enc, delim)

	return parseDelimited(text, delim)
}

// decodeText converts raw file bytes to UTF-8. BOMs decide first; BOM-less
// input that is not valid UTF-8 is read as Windows-1252.
func decodeText(b []byte) (string, string, error) {
	var dec *encoding.Decoder
	name := "utf-8"

	switch {
	case bytes.HasPrefix(b, bomUTF8):
		return string(b[len(bomUTF8):]), "utf-8-bom", nil
	case bytes.HasPrefix(b, bomUTF16LE):
		dec, name = unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder(), "utf-16le"
	case bytes.HasPrefix(b, bomUTF16BE):
		dec, name = unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder(), "utf-16be"
	case looksUTF16(b, 1):
		dec, name = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder(), "utf-16le"
	case looksUTF16(b, 0):
		dec, name = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder(), "utf-16be"
	case utf8.Valid(b):
		return string(b), name, nil
	default:
		dec, name = charmap.Windows1252.NewDecoder(), "windows-1252"
	}

	out, err := dec.Bytes(b)
	if err != nil {
		return "", name, err
	}
	return strings.TrimPrefix(string(out), "\ufeff"), name, nil
}

// looksUTF16 checks whether the bytes at the given parity of the first
// characters are all zero, as ASCII text encoded as UTF-16 would be.
func looksUTF16(b []byte, zeroAt int) bool {
	n := len(b) &^ 1
	if n > 64 {
		n = 64
	}
	if n < 4 {
		return false
	}
	for i := 0; i < n; i += 2 {
		if b[i+zeroAt] != 0 || b[i+1-zeroAt] == 0 {
			return false
		}
	}
	return true
}

// splitSepDirective strips a leading "sep=X" line and returns X.
func splitSepDirective(text string) (string, rune, bool) {
	line := firstLine(text)
	trimmed := strings.Trim(strings.TrimSpace(line), `"`)
	if len(trimmed) < 5 || !strings.EqualFold(trimmed[:4], "sep=") {
		return text, 0, false
	}
	r, size := utf8.DecodeRuneInString(trimmed[4:])
	if size == 0 || len(trimmed) != 4+size {
		return text, 0, false
	}

	rest := text[len(line):]
	rest = strings.TrimPrefix(rest, "\r")
	rest = strings.TrimPrefix(rest, "\n")
	return rest, r, true
}

func firstLine(text string) string {
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		return text[:i]
	}
	return text
}

// sniffDelimiter picks the candidate appearing most often outside quotes.
func sniffDelimiter(header string) rune {
	best, bestCount := ',', 0
	for _, d := range candidateDelimiters {
		if n := countUnquoted(header, d); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

func countUnquoted(s string, target rune) int {
	n, quoted := 0, false
	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
		case r == target && !quoted:
			n++
		}
	}
	return n
}

func parseDelimited(text string, delim rune) (table, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var t table
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return table{}, fmt.Errorf("loader: parse delimited: %w", err)
		}
		if t.headers == nil {
			if blank(rec) {
				continue
			}
			t.headers = cleanHeaders(rec)
			continue
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}
