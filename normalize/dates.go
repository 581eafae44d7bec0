// Package normalize holds the pure value normalizers shared by the loader and
// the record cleaner: tolerant date parsing, identifier canonicalization and
// numeric/categorical cleanup. Nothing in here returns an error; unparsable
// input degrades to an empty or absent value.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// OutputLayout is the single format every normalized date is rendered in.
const OutputLayout = "2006-01-02 15:04:05"

var (
	// timeOnlyRegexp matches a bare time of day with no date component.
	timeOnlyRegexp = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2}(\.\d+)?)?(\s*[AaPp][Mm])?$`)
	// serialRegexp matches spreadsheet date serials such as 45292 or 45292.5.
	serialRegexp = regexp.MustCompile(`^\d+(\.\d+)?$`)
	// zoneIDRegexp strips a trailing region id, e.g. "[Asia/Dubai]".
	zoneIDRegexp = regexp.MustCompile(`\[[^\]]+\]$`)
)

// spreadsheet serial day 1 is 1900-01-01 in the 1900 date system.
var serialEpoch = time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC)

// maxSerial is 9999-12-31.
const maxSerial = 2958465

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z07:00",
}

// datePartLayouts are tried in order; day-first wins over month-first for
// ambiguous slash dates.
var datePartLayouts = []string{
	"2006-1-2",
	"2/1/2006",
	"1/2/2006",
	"2.1.2006",
	"2-1-2006",
	"1-2-2006",
	"2006/1/2",
	"2006.1.2",
}

var timePartLayouts = []string{
	"",
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04:05 PM",
}

// dateLayouts is the cross product of date and time parts joined by a space
// or a 'T'. Fractional seconds are accepted by time.Parse after "05" even
// though the layouts do not spell them out.
var dateLayouts = buildDateLayouts()

func buildDateLayouts() []string {
	layouts := make([]string, 0, len(datePartLayouts)*(len(timePartLayouts)*2))
	for _, d := range datePartLayouts {
		for _, tp := range timePartLayouts {
			if tp == "" {
				layouts = append(layouts, d)
				continue
			}
			layouts = append(layouts, d+" "+tp, d+"T"+tp)
		}
	}
	return layouts
}

type dateParser func(string) (time.Time, bool)

var dateParsers = []dateParser{
	parseISO,
	parseLayouts,
	parseSerial,
}

// Date normalizes a free-form date or datetime into "yyyy-MM-dd HH:mm:ss".
// The first parser in the chain that accepts the text wins. Unparsable input
// and bare times of day yield "".
func Date(text string) string {
	s := strings.TrimSpace(text)
	if s == "" || IsNullLiteral(s) {
		return ""
	}
	if timeOnlyRegexp.MatchString(s) {
		return ""
	}
	for _, parse := range dateParsers {
		if t, ok := parse(s); ok {
			return t.Format(OutputLayout)
		}
	}
	return ""
}

// ParseDate returns the time behind Date(text). ok is false when Date would
// return "".
func ParseDate(text string) (time.Time, bool) {
	out := Date(text)
	if out == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(OutputLayout, out)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsDateColumn reports whether a header names a date column, i.e. contains
// "date" in any case.
func IsDateColumn(header string) bool {
	return strings.Contains(strings.ToLower(header), "date")
}

// parseISO handles instants, offsets and zoned datetimes. The wall clock of
// the given offset is kept.
func parseISO(s string) (time.Time, bool) {
	s = zoneIDRegexp.ReplaceAllString(s, "")
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseLayouts(s string) (time.Time, bool) {
	s = strings.Join(strings.Fields(s), " ")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseSerial converts a spreadsheet serial. Serials from 60 upward are moved
// back one day to skip the phantom 1900-02-29.
func parseSerial(s string) (time.Time, bool) {
	if !serialRegexp.MatchString(s) {
		return time.Time{}, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 1 || v > maxSerial {
		return time.Time{}, false
	}
	days, frac := math.Modf(v)
	if days >= 60 {
		days--
	}
	secs := int(math.Round(frac * 86400))
	t := serialEpoch.AddDate(0, 0, int(days)).Add(time.Duration(secs) * time.Second)
	return t, true
}
