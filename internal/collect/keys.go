// Package collect implements typed-response collection: a polling loop that
// turns key events into an editable answer buffer and ends on submit,
// timeout, or abort.
package collect

import (
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"

	"github.com/berth-dev/triplet/internal/config"
)

// Key is a normalized key name: "enter", "esc", "backspace", "space",
// "ctrl+c", or a single printable character.
type Key string

// String returns the key name. It lets Key satisfy key.Matches.
func (k Key) String() string { return string(k) }

// Printable reports whether k is a single character that should be typed
// into the buffer.
func (k Key) Printable() bool {
	if utf8.RuneCountInString(string(k)) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(string(k))
	return r >= 0x20 && r != 0x7f
}

// KeySource delivers key events. Poll returns, in arrival order, every key
// received since the previous Poll and must not block. Drain discards any
// pending keys.
type KeySource interface {
	Poll() []Key
	Drain()
}

// Keymap binds control actions to key names.
type Keymap struct {
	Continue key.Binding
	Abort    key.Binding
	Submit   key.Binding
	Delete   key.Binding
	Space    key.Binding
}

// DefaultKeymap provides the standard bindings.
var DefaultKeymap = NewKeymap(config.DefaultConfig().Keys)

// NewKeymap builds bindings from configured key names.
func NewKeymap(k config.KeysConfig) Keymap {
	return Keymap{
		Continue: key.NewBinding(
			key.WithKeys(k.Continue...),
			key.WithHelp(first(k.Continue), "continue"),
		),
		Abort: key.NewBinding(
			key.WithKeys(k.Abort...),
			key.WithHelp(first(k.Abort), "abort session"),
		),
		Submit: key.NewBinding(
			key.WithKeys(k.Submit...),
			key.WithHelp(first(k.Submit), "submit answer"),
		),
		Delete: key.NewBinding(
			key.WithKeys(k.Delete...),
			key.WithHelp(first(k.Delete), "delete last character"),
		),
		Space: key.NewBinding(
			key.WithKeys(k.Space...),
			key.WithHelp(first(k.Space), "type a space"),
		),
	}
}

func first(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return names[0]
}
