package tui

import "github.com/charmbracelet/bubbles/key"

// FormKeyMap defines the key bindings of the intake form. Experiment keys
// are configured separately, see collect.Keymap.
type FormKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Cancel key.Binding
}

// DefaultFormKeyMap provides the default key bindings for the intake form.
var DefaultFormKeyMap = FormKeyMap{
	Next: key.NewBinding(
		key.WithKeys(KeyTab, KeyDown),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys(KeyShiftTab, KeyUp),
		key.WithHelp("shift+tab", "previous field"),
	),
	Submit: key.NewBinding(
		key.WithKeys(KeyEnter),
		key.WithHelp("enter", "next / start"),
	),
	Cancel: key.NewBinding(
		key.WithKeys(KeyEsc, KeyCtrlC),
		key.WithHelp("esc", "cancel"),
	),
}

// Help returns a one-line summary of the form bindings.
func (k FormKeyMap) Help() string {
	var out string
	for i, b := range []key.Binding{k.Next, k.Prev, k.Submit, k.Cancel} {
		h := b.Help()
		if i > 0 {
			out += "  "
		}
		out += h.Key + " " + h.Desc
	}
	return out
}
