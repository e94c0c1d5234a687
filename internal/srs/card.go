package srs

import "time"

// Ease factor bounds and the fixed intervals for the first two
// successful reviews, per the classic SM-2 curve.
const (
	MinEase = 1.3
	MaxEase = 3.0

	InitialEase    = 2.5
	FirstInterval  = 1
	SecondInterval = 6
)

// CardState is the spaced-repetition state for a single opening.
// One card per opening, created lazily on first access.
type CardState struct {
	Ease         float64
	IntervalDays int
	Reps         int
	Lapses       int

	// Due is day-granular: an opening is due when Due is on or before
	// today, regardless of time of day.
	Due time.Time

	LastGrade      *Grade
	LastReviewedAt *time.Time
}

// NewCardState returns the initial state for a card created today:
// due immediately, never reviewed.
func NewCardState(today time.Time) CardState {
	return CardState{
		Ease: InitialEase,
		Due:  DateOf(today),
	}
}

// IsDue reports whether the card is due on asOf (calendar-date comparison).
func (c CardState) IsDue(asOf time.Time) bool {
	return !c.Due.After(DateOf(asOf))
}

// DateOf truncates t to its calendar date (UTC midnight). All due-date
// math runs on these day-granular values.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
