// Package record accumulates graded trial results per phase and writes each
// phase's results to a CSV checkpoint when the phase ends.
package record

import (
	"strings"
	"unicode"

	"github.com/berth-dev/triplet/internal/stimulus"
)

// Grade reports whether response matches expected under the phase's rule.
// Distraction answers compare only their digits against the exact numeral.
// Recall answers compare case-insensitively after trimming whitespace.
// Encoding has no responses and never grades correct.
func Grade(phase stimulus.Phase, response, expected string) bool {
	switch phase {
	case stimulus.PhaseDistraction:
		return DigitsOnly(response) == expected
	case stimulus.PhaseRecall:
		return normalizeWord(response) == normalizeWord(expected)
	}
	return false
}

// DigitsOnly drops every non-digit character.
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func normalizeWord(s string) string {
	return strings.ToLower(strings.TrimFunc(s, unicode.IsSpace))
}
