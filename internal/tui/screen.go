package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/berth-dev/triplet/internal/collect"
)

// screen is the full-screen model that shows experiment frames. It holds no
// experiment state: keys go out through the terminal, frames come back in.
type screen struct {
	term   *Terminal
	frame  collect.Frame
	width  int
	height int
	err    error
}

func newScreen(t *Terminal) screen {
	return screen{term: t}
}

func (m screen) Init() tea.Cmd {
	return nil
}

func (m screen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		m.term.push(KeyNames(msg)...)
	case frameMsg:
		m.frame = msg.frame
	case sessionDoneMsg:
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m screen) View() string {
	content := RenderFrame(m.frame)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// KeyNames converts a key message into the names the collector matches on:
// "space", "enter", "esc", "backspace", "ctrl+c" and single runes. Pastes and
// alt combinations produce nothing.
func KeyNames(msg tea.KeyMsg) []collect.Key {
	switch msg.Type {
	case tea.KeySpace:
		return []collect.Key{KeySpace}
	case tea.KeyRunes:
		if msg.Alt || msg.Paste {
			return nil
		}
		keys := make([]collect.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			if r == ' ' {
				keys = append(keys, KeySpace)
				continue
			}
			keys = append(keys, collect.Key(string(r)))
		}
		return keys
	}
	if s := msg.String(); s != "" {
		return []collect.Key{collect.Key(s)}
	}
	return nil
}

// RenderFrame draws a frame without positioning it.
func RenderFrame(f collect.Frame) string {
	switch f.Kind {
	case collect.FrameNotice:
		return NoticeStyle.Render(strings.Join(f.Lines, "\n"))
	case collect.FrameWord:
		return WordStyle.Render(strings.Join(f.Lines, " "))
	case collect.FrameFixation:
		return FixationStyle.Render(strings.Join(f.Lines, ""))
	case collect.FramePrompt:
		return lipgloss.JoinVertical(lipgloss.Center,
			PromptStyle.Render(strings.Join(f.Lines, "\n\n")),
			AnswerStyle.Render(f.AnswerLine()),
		)
	}
	return ""
}
