package roster

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Write emits a header row followed by one row per record, in the given
// column order. A record without one of the columns aborts the write with a
// *MissingColumnError.
func Write(w io.Writer, columns []string, records []Record, delimiter rune) error {
	writer := csv.NewWriter(w)
	if delimiter != 0 {
		writer.Comma = delimiter
	}
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("roster: write header: %w", err)
	}
	row := make([]string, len(columns))
	for i, rec := range records {
		for j, col := range columns {
			v, ok := rec.Get(col)
			if !ok {
				return &MissingColumnError{Row: sourceRow(rec, i), Column: col}
			}
			row[j] = v
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("roster: write record %d: %w", i+1, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("roster: flush: %w", err)
	}
	return nil
}

// sourceRow prefers the record's line in its source file and falls back to
// its 1-based position in the export.
func sourceRow(rec Record, index int) int {
	if rec.Row > 0 {
		return rec.Row
	}
	return index + 1
}

// WriteFile renders the records in memory first so a failed export never
// leaves a partial file behind.
func WriteFile(path string, columns []string, records []Record, delimiter rune) error {
	var buf bytes.Buffer
	if err := Write(&buf, columns, records, delimiter); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("roster: ensure dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("roster: write %s: %w", path, err)
	}
	return nil
}
