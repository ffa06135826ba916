package tui

import "github.com/charmbracelet/lipgloss"

// Color constants. The experiment screen stays monochrome so stimuli carry
// no colour cue; accents are for the intake form only.
const (
	primaryColor = "#7C3AED" // Purple
	errorColor   = "#EF4444" // Red
	dimColor     = "#6B7280" // Gray
	textColor    = "#F9FAFB"
)

// Style variables for consistent TUI rendering.
var (
	// NoticeStyle renders instruction screens.
	NoticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(textColor)).
			Align(lipgloss.Center)

	// WordStyle renders a single encoding word.
	WordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(textColor)).
			Bold(true)

	// FixationStyle renders the fixation cross.
	FixationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(textColor)).
			Bold(true)

	// PromptStyle renders prompt lines above the answer.
	PromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(textColor)).
			Align(lipgloss.Center)

	// AnswerStyle renders the typed answer line.
	AnswerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(textColor)).
			MarginTop(1)

	// BoxStyle provides a rounded border box with primary color.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(primaryColor)).
			Padding(1, 2)

	// TitleStyle renders titles in primary color with bold.
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// LabelStyle renders form labels.
	LabelStyle = lipgloss.NewStyle().
			Width(16)

	// DimStyle renders dim/muted text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	// ErrorStyle renders error messages in red.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor))
)
