package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeText(t *testing.T, m *Model, text string) *Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	model, ok := next.(*Model)
	if !ok {
		t.Fatalf("unexpected model type: %T", next)
	}
	return model
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestEnterSubmitsTypedLine(t *testing.T) {
	m := typeText(t, New("Whose reports?"), "ada@example.com, bo@example.com")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(*Model)
	if !isQuit(cmd) {
		t.Fatalf("enter should quit the program")
	}
	if m.Value() != "ada@example.com, bo@example.com" {
		t.Fatalf("value = %q", m.Value())
	}
	if m.View() != "" {
		t.Fatalf("finished prompt should render nothing, got %q", m.View())
	}
}

func TestEnterOnEmptyInputKeepsPrompting(t *testing.T) {
	m := New("Whose reports?")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(*Model)
	if isQuit(cmd) {
		t.Fatalf("empty submit must not quit")
	}
	if !strings.Contains(m.View(), "enter at least one email address") {
		t.Fatalf("expected validation message, got:\n%s", m.View())
	}
	m = typeText(t, m, "a")
	if strings.Contains(m.View(), "enter at least one email address") {
		t.Fatalf("validation message should clear once typing resumes")
	}
}

func TestEscCancels(t *testing.T) {
	m := typeText(t, New("Whose reports?"), "ada@example.com")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(*Model)
	if !isQuit(cmd) || !m.Cancelled() {
		t.Fatalf("esc should cancel and quit")
	}
	if m.Value() != "" {
		t.Fatalf("cancelled prompt should have no value, got %q", m.Value())
	}
}

func TestViewShowsQuestion(t *testing.T) {
	if view := New("Whose reports?").View(); !strings.Contains(view, "Whose reports?") {
		t.Fatalf("view missing question:\n%s", view)
	}
}

func TestReadLine(t *testing.T) {
	var out bytes.Buffer
	line, err := ReadLine(strings.NewReader("  ada@example.com bo@example.com\nignored\n"), &out, "Emails:")
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if line != "ada@example.com bo@example.com" {
		t.Fatalf("line = %q", line)
	}
	if !strings.HasPrefix(out.String(), "Emails:") {
		t.Fatalf("question not printed: %q", out.String())
	}
	if _, err := ReadLine(strings.NewReader(""), &out, "Emails:"); !errors.Is(err, ErrCancelled) {
		t.Fatalf("empty input should cancel, got %v", err)
	}
}
