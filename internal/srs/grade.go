package srs

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidGrade is returned when a grade is outside 0..5.
// Check with errors.Is.
var ErrInvalidGrade = errors.New("srs: grade must be 0..5")

// Grade is the learner's self-assessment of a recall, 0 (blackout)
// through 5 (perfect). Grades below 3 count as lapses.
type Grade int

// IsValid reports whether g is in the accepted 0..5 range.
func (g Grade) IsValid() bool {
	return g >= 0 && g <= 5
}

// Success reports whether g is at or above the success threshold.
func (g Grade) Success() bool {
	return g >= 3
}

func (g Grade) String() string {
	return strconv.Itoa(int(g))
}

// ParseGrade parses a grade from user input.
func ParseGrade(s string) (Grade, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGrade, s)
	}
	g := Grade(n)
	if !g.IsValid() {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidGrade, n)
	}
	return g, nil
}
