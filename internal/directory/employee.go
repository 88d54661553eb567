package directory

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/kingrea/orgexport/internal/config"
	"github.com/kingrea/orgexport/internal/roster"
)

// Employee is one person on the roster plus the edges built by Organize.
type Employee struct {
	FullName   string
	Email      string
	ReportsTo  string
	Title      string
	Department string

	// Record is the untouched roster row, used for re-export.
	Record roster.Record

	reports []*Employee
}

// FromRecord maps a roster row onto an Employee using the configured columns.
func FromRecord(rec roster.Record, cols config.Columns) *Employee {
	name := rec.Value(cols.FullName)
	if cols.SplitName() {
		name = strings.TrimSpace(rec.Value(cols.FirstName) + " " + rec.Value(cols.LastName))
	}
	return &Employee{
		FullName:   name,
		Email:      rec.Value(cols.Email),
		ReportsTo:  rec.Value(cols.ReportsTo),
		Title:      rec.Value(cols.Title),
		Department: rec.Value(cols.Department),
		Record:     rec,
	}
}

// Key is the normalized identity used for lookups and de-duplication.
func (e *Employee) Key() string {
	return NormalizeEmail(e.Email)
}

// DirectReports returns a copy of the employee's direct reports in roster
// order.
func (e *Employee) DirectReports() []*Employee {
	if len(e.reports) == 0 {
		return nil
	}
	out := make([]*Employee, len(e.reports))
	copy(out, e.reports)
	return out
}

// HasDirectReports reports whether anyone reports to the employee.
func (e *Employee) HasDirectReports() bool {
	return len(e.reports) > 0
}

func (e *Employee) addDirectReport(report *Employee) {
	e.reports = append(e.reports, report)
}

// NormalizeEmail case-folds and trims an address. Folding is Unicode aware
// so addresses with non-ASCII local parts still compare equal.
func NormalizeEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}
