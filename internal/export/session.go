package export

import (
	"strings"

	"github.com/kingrea/orgexport/internal/config"
	"github.com/kingrea/orgexport/internal/directory"
	"github.com/kingrea/orgexport/internal/logbook"
	"github.com/kingrea/orgexport/internal/roster"
)

// Session is a loaded and organized roster ready for queries.
type Session struct {
	Config    *config.Config
	Table     *roster.Table
	Directory *directory.Directory
	// Warnings collects parse and registration problems in roster order.
	Warnings []roster.Warning
	// Cycles lists reporting loops found while organizing.
	Cycles [][]*directory.Employee

	book *logbook.Logbook
}

// Open reads the configured roster, registers every employee and builds the
// supervisor edges.
func Open(cfg *config.Config, book *logbook.Logbook) (*Session, error) {
	cols := cfg.Columns()
	table, err := roster.ReadFile(cfg.InputPath(), roster.ReadOptions{
		Delimiter: cfg.Delimiter(),
		Required:  cols.Required(),
	})
	if err != nil {
		book.Error("load roster: %v", err)
		return nil, err
	}
	dir, regWarnings := directory.Load(table, cols)
	s := &Session{
		Config:    cfg,
		Table:     table,
		Directory: dir,
		Warnings:  append(append([]roster.Warning(nil), table.Warnings...), regWarnings...),
		book:      book,
	}
	s.Cycles = dir.Organize()

	book.Info("loaded %d employees from %s (%s)", dir.Len(), cfg.InputPath(), table.Encoding)
	for _, w := range s.Warnings {
		book.Warn("%s", w)
	}
	for _, cycle := range s.Cycles {
		book.Warn("reporting loop: %s", CycleString(cycle))
	}
	return s, nil
}

// Exporter returns an exporter bound to the session's directory.
func (s *Session) Exporter() *Exporter {
	return New(s.Directory, s.Table.Columns, s.book)
}

// Options returns export options seeded from the config.
func (s *Session) Options(singleLayer, sortColumns bool) Options {
	return Options{
		SingleLayer: singleLayer,
		SortColumns: sortColumns,
		OutputDir:   s.Config.OutputDir(),
		Delimiter:   s.Config.Delimiter(),
	}
}

// CycleString renders a loop as "a -> b -> a".
func CycleString(cycle []*directory.Employee) string {
	if len(cycle) == 0 {
		return ""
	}
	parts := make([]string, 0, len(cycle)+1)
	for _, emp := range cycle {
		parts = append(parts, emp.Email)
	}
	parts = append(parts, cycle[0].Email)
	return strings.Join(parts, " -> ")
}
