package srs

import (
	"fmt"
	"math"
	"time"
)

// Update applies one graded review to a card and returns the new state.
// The input state is not modified; on error it is returned unchanged.
//
// This is the SM-2 family update:
//   - the ease factor moves by 0.1 - (5-g)*(0.08 + (5-g)*0.02), clamped
//     to [MinEase, MaxEase], so grade 5 nudges ease up and grade 0
//     penalizes it hardest;
//   - a grade below 3 is a lapse: interval resets to 1 day, reps to 0,
//     lapses increments, and the ease penalty above still sticks;
//   - a success increments reps and schedules 1 day, then 6 days, then
//     round(previousInterval * ease) floored at 1 day.
//
// now supplies the review timestamp; the due date becomes now's calendar
// date plus the new interval.
func Update(state CardState, g Grade, now time.Time) (CardState, error) {
	if !g.IsValid() {
		return state, fmt.Errorf("%w: got %d", ErrInvalidGrade, int(g))
	}

	q := float64(g)
	ease := state.Ease + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if ease < MinEase {
		ease = MinEase
	}
	if ease > MaxEase {
		ease = MaxEase
	}

	next := state
	next.Ease = ease

	if !g.Success() {
		next.IntervalDays = 1
		next.Reps = 0
		next.Lapses = state.Lapses + 1
	} else {
		next.Reps = state.Reps + 1
		switch next.Reps {
		case 1:
			next.IntervalDays = FirstInterval
		case 2:
			next.IntervalDays = SecondInterval
		default:
			ivl := int(math.Round(float64(state.IntervalDays) * ease))
			if ivl < 1 {
				ivl = 1
			}
			next.IntervalDays = ivl
		}
	}

	next.Due = DateOf(now).AddDate(0, 0, next.IntervalDays)
	grade := g
	next.LastGrade = &grade
	reviewedAt := now
	next.LastReviewedAt = &reviewedAt
	return next, nil
}
