package models

import (
	"sort"
	"strings"
)

// Field is one column of a raw row.
type Field struct {
	Name  string
	Value string
}

// RawRow is one parsed input row: column name -> string value, addressable
// case-insensitively, with the original column order preserved. A RawRow is
// never modified after construction.
type RawRow struct {
	fields []Field
	index  map[string]int
}

// NewRawRow builds a row from ordered fields. When two names differ only by
// case the later value wins but the first position is kept.
func NewRawRow(fields []Field) RawRow {
	r := RawRow{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		key := strings.ToLower(f.Name)
		if i, ok := r.index[key]; ok {
			r.fields[i].Value = f.Value
			continue
		}
		r.index[key] = len(r.fields)
		r.fields = append(r.fields, f)
	}
	return r
}

// RawRowFromMap builds a row from a plain map. Columns are ordered by name so
// the result does not depend on map iteration order.
func RawRowFromMap(m map[string]string) RawRow {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	fields := make([]Field, 0, len(names))
	for _, n := range names {
		fields = append(fields, Field{Name: n, Value: m[n]})
	}
	return NewRawRow(fields)
}

// Get looks a column up ignoring case.
func (r RawRow) Get(name string) (string, bool) {
	i, ok := r.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", false
	}
	return r.fields[i].Value, true
}

// Value is Get without the presence flag.
func (r RawRow) Value(name string) string {
	v, _ := r.Get(name)
	return v
}

// Has reports whether the column exists, whatever its value.
func (r RawRow) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Fields returns a copy of the columns in their original order.
func (r RawRow) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Len is the number of columns.
func (r RawRow) Len() int { return len(r.fields) }
