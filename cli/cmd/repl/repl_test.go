package repl

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/vic3def/lang"
	"github.com/ardnew/vic3def/log"
)

const testProgram = `
STATE_SVEALAND = {
	id = 1
	provinces = { x000001 x000002 }
	capped_resources = { bg_iron_mining = 9 bg_logging = 12 }
}
STATE_NORRLAND = { id = 2 }
`

func testModel(t *testing.T) model {
	t.Helper()

	prog, err := lang.ParseString(t.Context(), testProgram)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	history := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	return newModel(context.Background(), prog, history, log.Logger{}, nil)
}

func typeText(m model, s string) model {
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})

	return m
}

func press(m model, k tea.KeyType) (model, tea.Cmd) {
	return m.handleKey(tea.KeyMsg{Type: k})
}

func TestModel_CompletesScopes(t *testing.T) {
	m := typeText(testModel(t), "SVEA")

	if len(m.matches) == 0 || m.matches[0].Str != "STATE_SVEALAND" {
		t.Fatalf("matches = %v, want STATE_SVEALAND first", m.matches)
	}

	m, _ = press(m, tea.KeyTab)

	if got := m.input.Value(); got != "STATE_SVEALAND" {
		t.Errorf("input after tab = %q", got)
	}
}

func TestModel_CompletesMembersAfterDot(t *testing.T) {
	m := typeText(testModel(t), "STATE_SVEALAND.")

	var got []string
	for _, match := range m.matches {
		got = append(got, match.Str)
	}

	want := "capped_resources id provinces"
	if strings.Join(got, " ") != want {
		t.Errorf("member candidates = %v, want %s", got, want)
	}
}

func TestModel_TabCyclesAndEscRestores(t *testing.T) {
	m := typeText(testModel(t), "STATE")

	if len(m.matches) < 2 {
		t.Fatalf("expected several matches, got %v", m.matches)
	}

	m, _ = press(m, tea.KeyTab)
	first := m.input.Value()

	m, _ = press(m, tea.KeyTab)
	if m.input.Value() == first {
		t.Errorf("second tab did not advance from %q", first)
	}

	m, _ = press(m, tea.KeyEsc)
	if got := m.input.Value(); got != "STATE" {
		t.Errorf("esc restored %q, want STATE", got)
	}

	if m.mode != modeEval {
		t.Error("esc while cycling should not switch mode")
	}
}

func TestModel_EvaluateAddsHistory(t *testing.T) {
	m := typeText(testModel(t), "STATE_NORRLAND.id + 1")

	m, cmd := press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected output command")
	}

	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}

	entry, err := m.history.Entry(0)
	if err != nil {
		t.Fatal(err)
	}

	if entry.Line != "STATE_NORRLAND.id + 1" || entry.Mode != modeEval {
		t.Errorf("history entry = %+v", entry)
	}

	m, _ = press(m, tea.KeyUp)
	if got := m.input.Value(); got != "STATE_NORRLAND.id + 1" {
		t.Errorf("history up = %q", got)
	}

	m, _ = press(m, tea.KeyDown)
	if got := m.input.Value(); got != "" {
		t.Errorf("history down past newest = %q, want empty", got)
	}
}

func TestModel_ModeToggle(t *testing.T) {
	m := typeText(testModel(t), "STATE_")

	m, _ = press(m, tea.KeyEsc)
	if m.mode != modeCtrl {
		t.Fatal("esc did not switch to command mode")
	}

	if m.input.Value() != "" {
		t.Errorf("command input = %q, want empty", m.input.Value())
	}

	m = typeText(m, "qu")
	if len(m.matches) == 0 || m.matches[0].Str != "quit" {
		t.Errorf("command matches = %v", m.matches)
	}

	m, _ = press(m, tea.KeyEsc)
	if m.mode != modeEval || m.input.Value() != "STATE_" {
		t.Errorf("returned to mode %d with %q", m.mode, m.input.Value())
	}
}

func TestModel_QuitCommand(t *testing.T) {
	m := testModel(t)
	m, _ = press(m, tea.KeyEsc)
	m = typeText(m, "quit")

	m, cmd := press(m, tea.KeyEnter)
	if !m.quitting || cmd == nil {
		t.Error("quit command did not quit")
	}
}

func TestModel_HelpCommand(t *testing.T) {
	m := testModel(t)
	m, _ = press(m, tea.KeyEsc)
	m = typeText(m, "help")

	if _, cmd := press(m, tea.KeyEnter); cmd == nil {
		t.Fatal("help command returned no output")
	}

	// tea.Println appends its own newline.
	if strings.HasSuffix(helpMessage, "\n") {
		t.Error("help message ends with a newline")
	}

	for _, name := range ctrlCommands {
		if !strings.Contains(helpMessage, "  "+name) {
			t.Errorf("help message does not describe %q", name)
		}
	}
}

func TestModel_ListAndKeys(t *testing.T) {
	m := testModel(t)

	list := m.listScopes()
	if !strings.Contains(list, "STATE_SVEALAND") || !strings.Contains(list, "STATE_NORRLAND") {
		t.Errorf("listScopes() = %q", list)
	}

	keys := m.listKeys([]string{"STATE_SVEALAND.capped_resources"})
	want := "  STATE_SVEALAND.capped_resources\n" +
		"  STATE_SVEALAND.capped_resources.bg_iron_mining\n" +
		"  STATE_SVEALAND.capped_resources.bg_logging"

	if keys != want {
		t.Errorf("listKeys() = %q, want %q", keys, want)
	}
}

func TestModel_FormatResult(t *testing.T) {
	m := testModel(t)

	for _, tt := range []struct {
		expr string
		want string
	}{
		{"STATE_NORRLAND.id", "2"},
		{"STATE_SVEALAND.provinces", `["x000001","x000002"]`},
		{"len(STATE_SVEALAND.capped_resources) == 2", "true"},
	} {
		v, err := lang.Evaluate(t.Context(), m.env, tt.expr)
		if err != nil {
			t.Fatalf("Evaluate(%q): %v", tt.expr, err)
		}

		if got := m.formatResult(v); got != tt.want {
			t.Errorf("formatResult(%q) = %q, want %q", tt.expr, got, tt.want)
		}
	}
}

func TestFormatPreview(t *testing.T) {
	tests := []struct {
		scope lang.Scope
		want  string
	}{
		{lang.Scope{Name: "A"}, "{ }"},
		{lang.Scope{Name: "A", Variables: []lang.Variable{{Name: "id", Value: lang.Number(1)}}}, "{ id }"},
		{lang.Scope{Name: "A", Variables: []lang.Variable{
			{Name: "id", Value: lang.Number(1)},
			{Name: "x", Value: lang.Boolean(true)},
		}}, "{ id ... } (2 variables)"},
	}

	for _, tt := range tests {
		if got := formatPreview(tt.scope); got != tt.want {
			t.Errorf("formatPreview() = %q, want %q", got, tt.want)
		}
	}
}
