// Package roster reads and writes the delimited employee files. It keeps every
// raw field and the original header order so exports mirror the input.
package roster

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrMissingColumn marks a record that lacks a column an export needs.
	ErrMissingColumn = errors.New("roster: missing column")
	// ErrMissingHeader marks an input whose header lacks a configured column.
	ErrMissingHeader = errors.New("roster: missing header")
	// ErrEmpty marks an input without a header row.
	ErrEmpty = errors.New("roster: empty file")
)

// Record is one roster row: column name to raw value. Columns is the header
// order of the file the record came from and is shared between records.
type Record struct {
	Columns []string
	Values  map[string]string
	// Row is the 1-based line in the source file where the record starts,
	// header included. Zero for records built in memory.
	Row int
}

// NewRecord builds a record from parallel header and value slices.
func NewRecord(columns, values []string) Record {
	rec := Record{Columns: columns, Values: make(map[string]string, len(columns))}
	for i, col := range columns {
		if i < len(values) {
			rec.Values[col] = values[i]
		}
	}
	return rec
}

// Get returns the value for column and whether the record carries it.
func (r Record) Get(column string) (string, bool) {
	v, ok := r.Values[column]
	return v, ok
}

// Value returns the trimmed value for column or an empty string.
func (r Record) Value(column string) string {
	return strings.TrimSpace(r.Values[column])
}

// MissingColumnError reports the first record that could not be exported.
// Row is the record's source line when known, otherwise its position in the
// export.
type MissingColumnError struct {
	Row    int
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("roster: record %d has no %q column", e.Row, e.Column)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }

// HeaderError lists configured columns absent from an input header.
type HeaderError struct {
	Missing []string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("roster: header is missing %s", strings.Join(quoteAll(e.Missing), ", "))
}

func (e *HeaderError) Unwrap() error { return ErrMissingHeader }

// SortedColumns returns the union of column names across records in
// alphabetical order, for exports that do not keep the input order.
func SortedColumns(records []Record) []string {
	seen := map[string]bool{}
	var out []string
	for _, rec := range records {
		for col := range rec.Values {
			if !seen[col] {
				seen[col] = true
				out = append(out, col)
			}
		}
	}
	sort.Strings(out)
	return out
}

func quoteAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprintf("%q", v)
	}
	return out
}
