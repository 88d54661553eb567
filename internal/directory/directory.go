// Package directory holds the in-memory roster: the email-keyed registry of
// employees, the supervisor edges built from it, and the subordinate queries
// that walk those edges.
package directory

import (
	"errors"
	"fmt"

	"github.com/kingrea/orgexport/internal/config"
	"github.com/kingrea/orgexport/internal/roster"
)

var (
	// ErrDuplicateEmail is returned by Register when the normalized email is
	// already taken. The first registration wins.
	ErrDuplicateEmail = errors.New("directory: duplicate email")
	// ErrMissingEmail is returned by Register for employees without an email.
	ErrMissingEmail = errors.New("directory: missing email")
)

// Directory owns every Employee and indexes them by normalized email.
type Directory struct {
	employees []*Employee
	byEmail   map[string]*Employee
	organized bool
}

// New returns an empty directory.
func New() *Directory {
	return &Directory{byEmail: map[string]*Employee{}}
}

// Load registers one employee per roster record. Rejected records become
// warnings carrying their source row.
func Load(table *roster.Table, cols config.Columns) (*Directory, []roster.Warning) {
	dir := New()
	var warnings []roster.Warning
	for _, rec := range table.Records {
		emp := FromRecord(rec, cols)
		if err := dir.Register(emp); err != nil {
			warnings = append(warnings, roster.Warning{
				Row:     rec.Row,
				Message: fmt.Sprintf("%s skipped: %v", displayName(emp), err),
			})
		}
	}
	return dir, warnings
}

// Register adds an employee.
func (d *Directory) Register(emp *Employee) error {
	key := emp.Key()
	if key == "" {
		return ErrMissingEmail
	}
	if _, exists := d.byEmail[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateEmail, emp.Email)
	}
	d.byEmail[key] = emp
	d.employees = append(d.employees, emp)
	return nil
}

// Find looks an employee up by email, ignoring case and surrounding space.
func (d *Directory) Find(email string) (*Employee, bool) {
	key := NormalizeEmail(email)
	if key == "" {
		return nil, false
	}
	emp, ok := d.byEmail[key]
	return emp, ok
}

// Employees returns every employee in roster order.
func (d *Directory) Employees() []*Employee {
	out := make([]*Employee, len(d.employees))
	copy(out, d.employees)
	return out
}

// Len returns the number of registered employees.
func (d *Directory) Len() int {
	return len(d.employees)
}

// Supervisor resolves the employee's manager through the directory. Employees
// naming themselves or an unknown address have no supervisor.
func (d *Directory) Supervisor(emp *Employee) (*Employee, bool) {
	sup, ok := d.Find(emp.ReportsTo)
	if !ok || sup == emp {
		return nil, false
	}
	return sup, true
}

// Roots returns employees without a resolvable supervisor, in roster order.
func (d *Directory) Roots() []*Employee {
	var roots []*Employee
	for _, emp := range d.employees {
		if _, ok := d.Supervisor(emp); !ok {
			roots = append(roots, emp)
		}
	}
	return roots
}

// Orphans returns roots that did name a supervisor which is not on the
// roster.
func (d *Directory) Orphans() []*Employee {
	var orphans []*Employee
	for _, emp := range d.employees {
		if emp.ReportsTo == "" {
			continue
		}
		if _, ok := d.Find(emp.ReportsTo); !ok {
			orphans = append(orphans, emp)
		}
	}
	return orphans
}

func displayName(emp *Employee) string {
	if emp.FullName != "" {
		return emp.FullName
	}
	if emp.Email != "" {
		return emp.Email
	}
	return "record"
}
