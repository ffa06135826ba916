package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/berth-dev/triplet/internal/collect"
	"github.com/berth-dev/triplet/internal/intake"
)

func TestKeyNames(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []collect.Key
	}{
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'7'}}, []collect.Key{"7"}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []collect.Key{"space"}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []collect.Key{"enter"}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, []collect.Key{"esc"}},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, []collect.Key{"backspace"}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, []collect.Key{"ctrl+c"}},
		{"burst", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a b")}, []collect.Key{"a", "space", "b"}},
		{"alt", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true}, nil},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("apple"), Paste: true}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeyNames(tt.msg)
			if len(got) != len(tt.want) {
				t.Fatalf("KeyNames() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("KeyNames()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTerminalPollAndDrain(t *testing.T) {
	term := NewTerminal("esc")

	if keys := term.Poll(); len(keys) != 0 {
		t.Fatalf("Poll() on idle terminal = %v", keys)
	}

	term.push("1", "2")
	keys := term.Poll()
	if len(keys) != 2 || keys[0] != "1" || keys[1] != "2" {
		t.Errorf("Poll() = %v, want [1 2]", keys)
	}
	if keys := term.Poll(); len(keys) != 0 {
		t.Errorf("second Poll() = %v, want nothing", keys)
	}

	term.push("x")
	term.Drain()
	if keys := term.Poll(); len(keys) != 0 {
		t.Errorf("Poll() after Drain = %v, want nothing", keys)
	}
}

func TestTerminalReportsAbortAfterClose(t *testing.T) {
	term := NewTerminal("ctrl+c")
	term.close()
	term.close()

	for i := 0; i < 2; i++ {
		keys := term.Poll()
		if len(keys) != 1 || keys[0] != "ctrl+c" {
			t.Fatalf("Poll() after close = %v, want [ctrl+c]", keys)
		}
	}
}

func TestTerminalRenderSendsFrames(t *testing.T) {
	term := NewTerminal("esc")
	term.Render(collect.Word("ignored"))

	var got []tea.Msg
	term.attach(func(m tea.Msg) { got = append(got, m) })
	term.Render(collect.Word("ocean"))
	term.close()
	term.Render(collect.Word("late"))

	if len(got) != 1 {
		t.Fatalf("sent %d messages, want 1", len(got))
	}
	fm, ok := got[0].(frameMsg)
	if !ok || fm.frame.Lines[0] != "ocean" {
		t.Errorf("sent %#v, want the ocean frame", got[0])
	}
}

func TestScreenForwardsKeys(t *testing.T) {
	term := NewTerminal("esc")
	var m tea.Model = newScreen(term)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	keys := term.Poll()
	if len(keys) != 2 || keys[0] != "4" || keys[1] != "enter" {
		t.Errorf("forwarded %v, want [4 enter]", keys)
	}
}

func TestScreenShowsFrames(t *testing.T) {
	var m tea.Model = newScreen(NewTerminal("esc"))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = m.Update(frameMsg{frame: collect.Frame{
		Kind:  collect.FramePrompt,
		Lines: []string{"Type your answer and press ENTER:", "42 - 17 = ?"},
		Input: "2",
	}})

	view := m.View()
	for _, want := range []string{"42 - 17 = ?", "Answer: 2_"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
	if lines := strings.Count(view, "\n") + 1; lines != 24 {
		t.Errorf("View() has %d lines, want the full 24", lines)
	}
}

func TestScreenQuitsWhenSessionEnds(t *testing.T) {
	var m tea.Model = newScreen(NewTerminal("esc"))
	m, cmd := m.Update(sessionDoneMsg{})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("command did not quit the program")
	}
}

func TestRenderFrame(t *testing.T) {
	tests := []struct {
		frame collect.Frame
		want  string
	}{
		{collect.Blank(), ""},
		{collect.Word("thunder"), "thunder"},
		{collect.Fixation(), "+"},
		{collect.Notice("Task 1 is completed!", "Please notify the researcher."), "Please notify the researcher."},
	}
	for _, tt := range tests {
		got := RenderFrame(tt.frame)
		if tt.want == "" {
			if strings.TrimSpace(got) != "" {
				t.Errorf("blank frame rendered %q", got)
			}
			continue
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("RenderFrame(%v) = %q, want it to contain %q", tt.frame.Kind, got, tt.want)
		}
	}
}

func TestRunSessionReturnsLoopError(t *testing.T) {
	var in, out bytes.Buffer
	term := NewTerminal("esc")
	boom := errors.New("boom")

	err := runSession(term, func() error {
		term.Render(collect.Word("garden"))
		return boom
	}, tea.WithInput(&in), tea.WithOutput(&out), tea.WithoutSignalHandler())

	if !errors.Is(err, boom) {
		t.Errorf("runSession() = %v, want boom", err)
	}
	if keys := term.Poll(); len(keys) != 1 || keys[0] != "esc" {
		t.Errorf("terminal not closed after program exit, Poll() = %v", keys)
	}
}

func typeInto(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestIntakeFormSubmit(t *testing.T) {
	var m tea.Model = NewIntakeForm(intake.Participant{})

	m = typeInto(m, "12")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = typeInto(m, "24")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeInto(m, "f")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	form := m.(IntakeForm)
	if !form.Submitted() {
		t.Fatalf("form not submitted, err = %v", form.Err())
	}
	if cmd == nil {
		t.Error("expected a quit command on submit")
	}
	want := intake.Participant{ID: "12", Age: "24", Sex: "f"}
	if got := form.Participant(); got != want {
		t.Errorf("Participant() = %+v, want %+v", got, want)
	}
}

func TestIntakeFormRejectsNonNumericID(t *testing.T) {
	var m tea.Model = NewIntakeForm(intake.Participant{Age: "30", Sex: "m"})

	m = typeInto(m, "p7")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	form := m.(IntakeForm)
	if form.Submitted() {
		t.Fatal("form accepted a non-numeric participant number")
	}
	if !errors.Is(form.Err(), intake.ErrNonNumeric) {
		t.Errorf("Err() = %v, want ErrNonNumeric", form.Err())
	}
	if form.focus != fieldID {
		t.Errorf("focus = %d, want the participant field", form.focus)
	}
	if !strings.Contains(form.View(), "valid number") {
		t.Error("View() does not show the validation error")
	}
}

func TestIntakeFormPrefillFocusesFirstEmptyField(t *testing.T) {
	form := NewIntakeForm(intake.Participant{ID: "5"})
	if form.focus != fieldAge {
		t.Errorf("focus = %d, want age", form.focus)
	}

	form = NewIntakeForm(intake.Participant{ID: "5", Age: "40", Sex: "m"})
	if form.focus != fieldID {
		t.Errorf("focus = %d, want participant when all fields are filled", form.focus)
	}
}

func TestIntakeFormCancel(t *testing.T) {
	var m tea.Model = NewIntakeForm(intake.Participant{})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	form := m.(IntakeForm)
	if !form.Cancelled() || form.Submitted() {
		t.Errorf("Cancelled() = %v, Submitted() = %v", form.Cancelled(), form.Submitted())
	}
	if cmd == nil {
		t.Error("expected a quit command on cancel")
	}
}
