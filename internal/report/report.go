// Package report renders employees, reporting trees and run summaries for
// the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/orgexport/internal/directory"
)

// IndentStep is the number of spaces added per tree level.
const IndentStep = 4

var (
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	loopStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF")).
			MarginBottom(1)
)

// Card shows one employee: name, title and department, email, supervisor and
// number of direct reports.
func Card(dir *directory.Directory, emp *directory.Employee) string {
	reportsTo := "nobody"
	if sup, ok := dir.Supervisor(emp); ok {
		reportsTo = fmt.Sprintf("%s <%s>", sup.FullName, sup.Email)
	} else if emp.ReportsTo != "" {
		reportsTo = fmt.Sprintf("%s (not on roster)", emp.ReportsTo)
	}
	lines := []string{
		nameStyle.Render(headline(emp)),
		detailStyle.Render(emp.Email),
		detailStyle.Render("Reports to: " + reportsTo),
		detailStyle.Render(fmt.Sprintf("Has %d direct reports", len(emp.DirectReports()))),
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Tree lists emp and everyone below it, one line per person, indented by
// depth. maxDepth limits how many levels below emp are shown; zero means no
// limit. A person already printed is marked instead of expanded again.
func Tree(emp *directory.Employee, maxDepth int) string {
	var b strings.Builder
	writeTree(&b, emp, 0, maxDepth, map[string]bool{})
	return strings.TrimRight(b.String(), "\n")
}

func writeTree(b *strings.Builder, emp *directory.Employee, depth, maxDepth int, seen map[string]bool) {
	indent := strings.Repeat(" ", depth*IndentStep)
	if seen[emp.Key()] {
		fmt.Fprintf(b, "%s%s\n", indent, loopStyle.Render("↻ "+emp.FullName+" (reporting loop)"))
		return
	}
	seen[emp.Key()] = true
	reports := emp.DirectReports()
	line := nameStyle.Render(emp.FullName)
	if role := roleOf(emp); role != "" {
		line += " " + detailStyle.Render("- "+role)
	}
	if len(reports) > 0 {
		line += " " + mutedStyle.Render(fmt.Sprintf("[%d direct]", len(reports)))
	}
	fmt.Fprintf(b, "%s%s\n", indent, line)
	if maxDepth > 0 && depth >= maxDepth {
		if len(reports) > 0 {
			fmt.Fprintf(b, "%s%s\n", strings.Repeat(" ", (depth+1)*IndentStep), mutedStyle.Render("…"))
		}
		return
	}
	for _, report := range reports {
		writeTree(b, report, depth+1, maxDepth, seen)
	}
}

// Summary describes the loaded roster.
func Summary(dir *directory.Directory, cycles [][]*directory.Employee) string {
	lines := []string{
		headingStyle.Render(fmt.Sprintf("This company has %d employees", dir.Len())),
		detailStyle.Render(fmt.Sprintf("Top of hierarchy: %d", len(dir.Roots()))),
		detailStyle.Render(fmt.Sprintf("Supervisor not on roster: %d", len(dir.Orphans()))),
	}
	if len(cycles) > 0 {
		lines = append(lines, loopStyle.Render(fmt.Sprintf("Reporting loops: %d", len(cycles))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func headline(emp *directory.Employee) string {
	if role := roleOf(emp); role != "" {
		return emp.FullName + " - " + role
	}
	return emp.FullName
}

func roleOf(emp *directory.Employee) string {
	switch {
	case emp.Title != "" && emp.Department != "":
		return fmt.Sprintf("%s (%s)", emp.Title, emp.Department)
	case emp.Department != "":
		return "(" + emp.Department + ")"
	default:
		return emp.Title
	}
}
