package report

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
)

// Written reports a finished export.
func Written(path string, records int) string {
	return okStyle.Render("✓") + " " + fmt.Sprintf("wrote %d records to %s", records, path)
}

// Missed reports an address that is not on the roster.
func Missed(email string) string {
	return warnStyle.Render("!") + " " + fmt.Sprintf("%s is not on the roster; skipped", email)
}

// Warning renders a non-fatal problem.
func Warning(text string) string {
	return warnStyle.Render("!") + " " + text
}

// Failure renders a fatal error.
func Failure(err error) string {
	return errStyle.Render("✗") + " " + err.Error()
}
