package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/berth-dev/triplet/internal/intake"
)

// ErrIntakeCancelled is returned when the researcher closes the intake form.
var ErrIntakeCancelled = errors.New("participant intake cancelled")

const (
	fieldID = iota
	fieldAge
	fieldSex
	fieldCount
)

var fieldLabels = [fieldCount]string{"Participant #", "Age", "Sex"}

// IntakeForm collects the participant number, age and sex.
type IntakeForm struct {
	inputs    [fieldCount]textinput.Model
	focus     int
	keys      FormKeyMap
	err       error
	submitted bool
	cancelled bool
}

// NewIntakeForm returns a form pre-filled with the fields of p that are
// already known. Focus starts on the first empty field.
func NewIntakeForm(p intake.Participant) IntakeForm {
	values := [fieldCount]string{p.ID, p.Age, p.Sex}
	f := IntakeForm{keys: DefaultFormKeyMap, focus: -1}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 32
		in.Width = 24
		in.SetValue(strings.TrimSpace(values[i]))
		f.inputs[i] = in
		if f.focus < 0 && in.Value() == "" {
			f.focus = i
		}
	}
	if f.focus < 0 {
		f.focus = fieldID
	}
	f.inputs[f.focus].Focus()
	return f
}

// Participant returns the values currently in the form.
func (f IntakeForm) Participant() intake.Participant {
	return intake.Participant{
		ID:  f.inputs[fieldID].Value(),
		Age: f.inputs[fieldAge].Value(),
		Sex: f.inputs[fieldSex].Value(),
	}.Normalized()
}

// Submitted reports whether the form was completed with valid values.
func (f IntakeForm) Submitted() bool { return f.submitted }

// Cancelled reports whether the form was closed without submitting.
func (f IntakeForm) Cancelled() bool { return f.cancelled }

// Err returns the validation error from the last submit attempt.
func (f IntakeForm) Err() error { return f.err }

func (f IntakeForm) Init() tea.Cmd {
	return textinput.Blink
}

func (f IntakeForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, f.keys.Cancel):
			f.cancelled = true
			return f, tea.Quit
		case key.Matches(msg, f.keys.Next):
			return f, f.moveFocus(1)
		case key.Matches(msg, f.keys.Prev):
			return f, f.moveFocus(-1)
		case key.Matches(msg, f.keys.Submit):
			if f.focus < fieldCount-1 {
				return f, f.moveFocus(1)
			}
			return f.submit()
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f *IntakeForm) moveFocus(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.inputs[f.focus].Focus()
}

func (f IntakeForm) submit() (tea.Model, tea.Cmd) {
	p := f.Participant()
	if err := p.Validate(); err != nil {
		f.err = err
		var cmd tea.Cmd
		switch {
		case errors.Is(err, intake.ErrMissingID), errors.Is(err, intake.ErrNonNumeric):
			cmd = f.focusField(fieldID)
		case errors.Is(err, intake.ErrMissingAge):
			cmd = f.focusField(fieldAge)
		case errors.Is(err, intake.ErrMissingSex):
			cmd = f.focusField(fieldSex)
		}
		return f, cmd
	}
	f.err = nil
	f.submitted = true
	return f, tea.Quit
}

func (f *IntakeForm) focusField(i int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = i
	return f.inputs[i].Focus()
}

func (f IntakeForm) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Participant intake"))
	b.WriteString("\n\n")
	for i, in := range f.inputs {
		label := fieldLabels[i]
		if i == f.focus {
			label = TitleStyle.Render(label)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(label), in.View()))
		b.WriteString("\n")
	}
	if f.err != nil {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(f.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(DimStyle.Render(f.keys.Help()))
	return BoxStyle.Render(b.String())
}

// RunIntake shows the intake form and returns the validated participant.
// Fields already present in p are pre-filled.
func RunIntake(p intake.Participant, opts ...tea.ProgramOption) (intake.Participant, error) {
	if !IsTTY() {
		return intake.Participant{}, ErrNotTTY
	}
	final, err := tea.NewProgram(NewIntakeForm(p), opts...).Run()
	if err != nil {
		return intake.Participant{}, fmt.Errorf("intake form: %w", err)
	}
	form, ok := final.(IntakeForm)
	if !ok || !form.Submitted() {
		return intake.Participant{}, ErrIntakeCancelled
	}
	return form.Participant(), nil
}
