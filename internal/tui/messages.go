package tui

import "github.com/berth-dev/triplet/internal/collect"

// frameMsg replaces the frame on screen.
type frameMsg struct {
	frame collect.Frame
}

// sessionDoneMsg signals that the experiment loop has returned.
type sessionDoneMsg struct {
	err error
}
