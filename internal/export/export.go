// Package export turns a list of requested managers into a subordinate file.
// It resolves each address against the directory, gathers every target's own
// record followed by its subordinates, and hands the rows to the roster sink.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kingrea/orgexport/internal/directory"
	"github.com/kingrea/orgexport/internal/logbook"
	"github.com/kingrea/orgexport/internal/roster"
)

const (
	fileExt        = ".csv"
	targetJoiner   = "_and_"
	maxFileNameLen = 200
)

var (
	// ErrNotFound marks a requested address with no roster entry.
	ErrNotFound = errors.New("export: employee not found")
	// ErrNoTargets is returned when none of the requested addresses resolved.
	ErrNoTargets = errors.New("export: no requested employee was found")
)

// Options controls a single export.
type Options struct {
	// SingleLayer limits the export to direct reports.
	SingleLayer bool
	// SortColumns writes columns alphabetically instead of in roster order.
	SortColumns bool
	OutputDir   string
	Delimiter   rune
}

// Miss is a requested address that could not be resolved.
type Miss struct {
	Email string
	Err   error
}

// Result describes what an export produced.
type Result struct {
	Path    string
	Targets []*directory.Employee
	Records []roster.Record
	Misses  []Miss
}

// Exporter runs exports against one loaded directory.
type Exporter struct {
	dir     *directory.Directory
	columns []string
	book    *logbook.Logbook
}

// New creates an exporter. columns is the roster header order; book may be nil.
func New(dir *directory.Directory, columns []string, book *logbook.Logbook) *Exporter {
	return &Exporter{dir: dir, columns: columns, book: book}
}

// Resolve maps addresses to employees. Unknown addresses become misses and
// repeated addresses are collapsed onto their first occurrence.
func (x *Exporter) Resolve(emails []string) ([]*directory.Employee, []Miss) {
	var targets []*directory.Employee
	var misses []Miss
	seen := map[string]bool{}
	for _, email := range emails {
		key := directory.NormalizeEmail(email)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		emp, ok := x.dir.Find(email)
		if !ok {
			misses = append(misses, Miss{Email: strings.TrimSpace(email), Err: ErrNotFound})
			x.book.Warn("lookup miss: %s", strings.TrimSpace(email))
			continue
		}
		targets = append(targets, emp)
	}
	return targets, misses
}

// Collect returns, for each target in turn, the target's own record followed
// by its subordinates, so every block in a merged export starts with its
// manager. People reachable from several targets are kept at
// their first position only.
func Collect(targets []*directory.Employee, singleLayer bool) []roster.Record {
	var records []roster.Record
	seen := map[string]bool{}
	add := func(emp *directory.Employee) {
		if seen[emp.Key()] {
			return
		}
		seen[emp.Key()] = true
		records = append(records, emp.Record)
	}
	for _, target := range targets {
		add(target)
		for _, sub := range directory.Subordinates(target, singleLayer) {
			add(sub)
		}
	}
	return records
}

// Export resolves emails, collects the records and writes one file named
// after the resolved targets. Misses are reported on the result; the export
// only fails outright when nothing resolved or the write fails.
func (x *Exporter) Export(emails []string, opts Options) (*Result, error) {
	targets, misses := x.Resolve(emails)
	result := &Result{Targets: targets, Misses: misses}
	if len(targets) == 0 {
		return result, ErrNoTargets
	}
	result.Records = Collect(targets, opts.SingleLayer)

	columns := x.columns
	if opts.SortColumns {
		columns = roster.SortedColumns(result.Records)
	}
	path := filepath.Join(opts.OutputDir, FileName(targets))
	if err := roster.WriteFile(path, columns, result.Records, opts.Delimiter); err != nil {
		x.book.Error("export %s failed: %v", filepath.Base(path), err)
		return result, fmt.Errorf("export %s: %w", filepath.Base(path), err)
	}
	result.Path = path
	x.book.Info("exported %d records for %s to %s (single layer: %t)",
		len(result.Records), targetNames(targets), path, opts.SingleLayer)
	return result, nil
}

// FileName builds the export name from the targets' full names, with spaces
// replaced by underscores and several targets joined by "_and_".
func FileName(targets []*directory.Employee) string {
	parts := make([]string, 0, len(targets))
	for _, emp := range targets {
		parts = append(parts, fileSafe(nameOf(emp)))
	}
	base := strings.Join(parts, targetJoiner)
	for len(base) > maxFileNameLen {
		_, size := utf8.DecodeLastRuneInString(base)
		base = base[:len(base)-size]
	}
	if base == "" {
		base = "export"
	}
	return base + fileExt
}

// ParseTargets splits operator input on commas, semicolons and whitespace.
func ParseTargets(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
}

func nameOf(emp *directory.Employee) string {
	if name := strings.TrimSpace(emp.FullName); name != "" {
		return name
	}
	local, _, _ := strings.Cut(emp.Email, "@")
	return local
}

func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return '_'
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' || r == '"' || r == '<' || r == '>' || r == '|':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, name)
}

func targetNames(targets []*directory.Employee) string {
	names := make([]string, 0, len(targets))
	for _, emp := range targets {
		names = append(names, nameOf(emp))
	}
	return strings.Join(names, ", ")
}
