// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Common key binding constants.
const (
	KeyCtrlC     = "ctrl+c"
	KeyTab       = "tab"
	KeyShiftTab  = "shift+tab"
	KeyEnter     = "enter"
	KeyEsc       = "esc"
	KeySpace     = "space"
	KeyBackspace = "backspace"
	KeyUp        = "up"
	KeyDown      = "down"
)

// ErrNotTTY is returned when an interactive screen is requested without a
// terminal on stdout.
var ErrNotTTY = errors.New("an interactive terminal is required")

// IsTTY returns true if stdout is connected to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// RunSession runs fn on its own goroutine while a full-screen Bubble Tea
// program owns the terminal and feeds it keys through t. The program quits
// when fn returns. If the program exits first, t reports the abort key so fn
// can unwind.
func RunSession(t *Terminal, fn func() error, opts ...tea.ProgramOption) error {
	if !IsTTY() {
		return ErrNotTTY
	}
	return runSession(t, fn, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
}

func runSession(t *Terminal, fn func() error, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(newScreen(t), opts...)
	t.attach(p.Send)

	errc := make(chan error, 1)
	go func() {
		err := fn()
		errc <- err
		p.Send(sessionDoneMsg{err: err})
	}()

	_, runErr := p.Run()
	t.close()
	err := <-errc
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal: %w", runErr)
	}
	return err
}
