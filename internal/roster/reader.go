package roster

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Warning is a non-fatal problem found while reading a roster.
type Warning struct {
	Row     int
	Message string
}

func (w Warning) String() string {
	if w.Row > 0 {
		return fmt.Sprintf("row %d: %s", w.Row, w.Message)
	}
	return w.Message
}

// Table is a parsed roster.
type Table struct {
	Columns  []string
	Records  []Record
	Warnings []Warning
	Encoding string
}

// ReadOptions controls parsing.
type ReadOptions struct {
	// Delimiter defaults to a comma.
	Delimiter rune
	// Required header names; any absent one fails the read.
	Required []string
}

// ReadFile parses the roster at path.
func ReadFile(path string, opts ReadOptions) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("roster: read %s: %w", path, err)
	}
	table, err := Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// Read parses a roster from r.
func Read(r io.Reader, opts ReadOptions) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("roster: read: %w", err)
	}
	return Parse(data, opts)
}

// Parse turns raw roster bytes into a Table. Rows with too few fields are
// padded and rows with too many are truncated; both produce a warning.
func Parse(data []byte, opts ReadOptions) (*Table, error) {
	decoded, encoding, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("roster: read header: %w", err)
	}

	table := &Table{Encoding: encoding}
	headerLine, _ := reader.FieldPos(0)
	seen := make(map[string]bool, len(header))
	columns := make([]string, 0, len(header))
	for _, h := range header {
		h = strings.TrimSpace(h)
		if seen[h] {
			table.Warnings = append(table.Warnings, Warning{
				Row:     headerLine,
				Message: fmt.Sprintf("duplicate column %q ignored", h),
			})
			continue
		}
		seen[h] = true
		columns = append(columns, h)
	}
	if missing := missingColumns(seen, opts.Required); len(missing) > 0 {
		return nil, &HeaderError{Missing: missing}
	}
	table.Columns = columns

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			line := 0
			if errors.As(err, &parseErr) {
				line = parseErr.StartLine
			}
			table.Warnings = append(table.Warnings, Warning{
				Row:     line,
				Message: fmt.Sprintf("parse error: %v", err),
			})
			continue
		}
		// Blank lines are skipped and quoted fields may span lines, so the
		// record's line comes from the reader rather than a counter.
		rowNum, _ := reader.FieldPos(0)
		row = dedupeFields(header, row)
		if len(row) != len(columns) {
			table.Warnings = append(table.Warnings, Warning{
				Row:     rowNum,
				Message: fmt.Sprintf("row has %d columns, expected %d", len(row), len(columns)),
			})
			fitted := make([]string, len(columns))
			copy(fitted, row)
			row = fitted
		}
		rec := NewRecord(columns, row)
		rec.Row = rowNum
		table.Records = append(table.Records, rec)
	}
	return table, nil
}

// dedupeFields drops the fields that sit under duplicate header names so the
// row lines up with the de-duplicated column list.
func dedupeFields(header, row []string) []string {
	if len(header) == 0 {
		return row
	}
	seen := make(map[string]bool, len(header))
	out := make([]string, 0, len(row))
	for i, field := range row {
		if i < len(header) {
			h := strings.TrimSpace(header[i])
			if seen[h] {
				continue
			}
			seen[h] = true
		}
		out = append(out, field)
	}
	return out
}

func missingColumns(have map[string]bool, required []string) []string {
	var missing []string
	for _, col := range required {
		if col == "" || have[col] {
			continue
		}
		missing = append(missing, col)
	}
	return missing
}
