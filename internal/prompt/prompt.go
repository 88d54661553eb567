// Package prompt asks the operator for the managers to export when none were
// given on the command line.
//
// On a terminal it runs a small bubbletea program around a single text input,
// following the usual Elm loop: key message -> Update -> View. Elsewhere it
// reads one line from the input stream.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the operator aborts the prompt.
var ErrCancelled = errors.New("prompt: cancelled")

var (
	questionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

// Model is the bubbletea model behind Ask.
type Model struct {
	question  string
	input     textinput.Model
	value     string
	done      bool
	cancelled bool
	problem   string
}

// New returns a focused prompt model.
func New(question string) *Model {
	ti := textinput.New()
	ti.Placeholder = "manager@company.com, other.manager@company.com"
	ti.Prompt = "› "
	ti.CharLimit = 2048
	ti.Width = 60
	ti.Focus()
	return &Model{question: question, input: ti}
}

// Init starts the cursor blinking.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses; enter submits a non-empty line.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				m.problem = "enter at least one email address"
				return m, nil
			}
			m.value = value
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.problem != "" && m.input.Value() != "" {
		m.problem = ""
	}
	return m, cmd
}

// View renders the question, the input line and any validation message.
func (m *Model) View() string {
	if m.done || m.cancelled {
		return ""
	}
	lines := []string{
		questionStyle.Render(m.question),
		m.input.View(),
	}
	if m.problem != "" {
		lines = append(lines, errorStyle.Render(m.problem))
	}
	lines = append(lines, hintStyle.Render("enter to export · esc to cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

// Value returns the submitted line.
func (m *Model) Value() string {
	return m.value
}

// Cancelled reports whether the operator aborted.
func (m *Model) Cancelled() bool {
	return m.cancelled
}

// Ask runs the interactive prompt on in/out and returns the submitted line.
func Ask(in io.Reader, out io.Writer, question string) (string, error) {
	final, err := tea.NewProgram(New(question), tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	m, ok := final.(*Model)
	if !ok {
		return "", fmt.Errorf("prompt: unexpected model %T", final)
	}
	if m.Cancelled() || m.Value() == "" {
		return "", ErrCancelled
	}
	return m.Value(), nil
}

// ReadLine prints the question and reads a single line from in. It is used
// when stdin is not a terminal.
func ReadLine(in io.Reader, out io.Writer, question string) (string, error) {
	fmt.Fprintf(out, "%s ", question)
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("prompt: read: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ErrCancelled
	}
	return line, nil
}
