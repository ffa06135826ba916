// Package intake validates participant details collected before a session.
package intake

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors returned by Validate.
var (
	ErrMissingID  = errors.New("participant number is required")
	ErrNonNumeric = errors.New("participant number must be a valid number")
	ErrMissingAge = errors.New("age is required")
	ErrMissingSex = errors.New("sex is required")
)

// Participant holds the intake fields. Age and Sex are stored verbatim;
// only their presence is checked.
type Participant struct {
	ID  string
	Age string
	Sex string
}

// Validate checks the intake fields. It must pass before any stimulus is
// loaded or any random number is drawn.
func (p Participant) Validate() error {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		return ErrMissingID
	}
	if !isDigits(id) {
		return fmt.Errorf("%w: %q", ErrNonNumeric, p.ID)
	}
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return fmt.Errorf("%w: %q is out of range", ErrNonNumeric, p.ID)
	}
	if strings.TrimSpace(p.Age) == "" {
		return ErrMissingAge
	}
	if strings.TrimSpace(p.Sex) == "" {
		return ErrMissingSex
	}
	return nil
}

// Seed returns the numeric value of the participant identifier.
// Call Validate first.
func (p Participant) Seed() (uint64, error) {
	seed, err := strconv.ParseUint(strings.TrimSpace(p.ID), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing participant number: %w", err)
	}
	return seed, nil
}

// Normalized returns a copy with surrounding whitespace removed.
func (p Participant) Normalized() Participant {
	return Participant{
		ID:  strings.TrimSpace(p.ID),
		Age: strings.TrimSpace(p.Age),
		Sex: strings.TrimSpace(p.Sex),
	}
}

// Complete reports whether every field has a value, so that no intake form
// is needed.
func (p Participant) Complete() bool {
	n := p.Normalized()
	return n.ID != "" && n.Age != "" && n.Sex != ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
