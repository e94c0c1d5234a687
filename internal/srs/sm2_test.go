package srs

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

func TestUpdate_InvalidGrade(t *testing.T) {
	state := NewCardState(testNow)
	for _, g := range []Grade{-1, 6, 42} {
		got, err := Update(state, g, testNow)
		if !errors.Is(err, ErrInvalidGrade) {
			t.Errorf("Update(grade=%d) error = %v, want ErrInvalidGrade", g, err)
		}
		if got != state {
			t.Errorf("Update(grade=%d) mutated state: %+v", g, got)
		}
	}
}

func TestUpdate_FirstThreeSuccesses(t *testing.T) {
	// Three perfect reviews from a fresh card: 1 day, 6 days, then
	// round(6 * ease).
	state := NewCardState(testNow)

	state, err := Update(state, 5, testNow)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if state.IntervalDays != 1 || state.Reps != 1 {
		t.Errorf("after 1st success: interval=%d reps=%d, want 1, 1", state.IntervalDays, state.Reps)
	}

	state, err = Update(state, 5, testNow.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if state.IntervalDays != 6 || state.Reps != 2 {
		t.Errorf("after 2nd success: interval=%d reps=%d, want 6, 2", state.IntervalDays, state.Reps)
	}

	state, err = Update(state, 5, testNow.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if state.Reps != 3 {
		t.Errorf("after 3rd success: reps = %d, want 3", state.Reps)
	}
	// ease went 2.5 -> 2.6 -> 2.7 -> 2.8; round(6 * 2.8) = 17.
	if state.IntervalDays != 17 {
		t.Errorf("after 3rd success: interval = %d, want 17", state.IntervalDays)
	}
	wantDue := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 17)
	if !state.Due.Equal(wantDue) {
		t.Errorf("due = %v, want %v", state.Due, wantDue)
	}
}

func TestUpdate_SuccessGradesGrowMonotonically(t *testing.T) {
	for _, g := range []Grade{3, 4, 5} {
		state := NewCardState(testNow)
		prevInterval := 0
		for i := 0; i < 8; i++ {
			next, err := Update(state, g, testNow.AddDate(0, 0, i))
			if err != nil {
				t.Fatalf("grade %d rep %d: %v", g, i, err)
			}
			if next.Reps != state.Reps+1 {
				t.Errorf("grade %d rep %d: reps = %d, want %d", g, i, next.Reps, state.Reps+1)
			}
			if next.Reps > 2 && next.IntervalDays < prevInterval {
				t.Errorf("grade %d rep %d: interval shrank %d -> %d", g, i, prevInterval, next.IntervalDays)
			}
			prevInterval = next.IntervalDays
			state = next
		}
	}
}

func TestUpdate_LapseResets(t *testing.T) {
	for _, g := range []Grade{0, 1, 2} {
		// Build up some progress first.
		state := NewCardState(testNow)
		for i := 0; i < 4; i++ {
			var err error
			state, err = Update(state, 4, testNow)
			if err != nil {
				t.Fatalf("setup: %v", err)
			}
		}
		lapsesBefore := state.Lapses

		next, err := Update(state, g, testNow)
		if err != nil {
			t.Fatalf("Update(grade=%d): %v", g, err)
		}
		if next.IntervalDays != 1 {
			t.Errorf("grade %d: interval = %d, want 1", g, next.IntervalDays)
		}
		if next.Reps != 0 {
			t.Errorf("grade %d: reps = %d, want 0", g, next.Reps)
		}
		if next.Lapses != lapsesBefore+1 {
			t.Errorf("grade %d: lapses = %d, want %d", g, next.Lapses, lapsesBefore+1)
		}
		wantDue := DateOf(testNow).AddDate(0, 0, 1)
		if !next.Due.Equal(wantDue) {
			t.Errorf("grade %d: due = %v, want %v", g, next.Due, wantDue)
		}
	}
}

func TestUpdate_EaseStaysClamped(t *testing.T) {
	for _, startEase := range []float64{MinEase, 1.7, InitialEase, 2.9, MaxEase} {
		for g := Grade(0); g <= 5; g++ {
			state := NewCardState(testNow)
			state.Ease = startEase
			next, err := Update(state, g, testNow)
			if err != nil {
				t.Fatalf("Update(ease=%v, grade=%d): %v", startEase, g, err)
			}
			if next.Ease < MinEase || next.Ease > MaxEase {
				t.Errorf("ease %v after grade %d from %v is out of [%v, %v]",
					next.Ease, g, startEase, MinEase, MaxEase)
			}
		}
	}
}

func TestUpdate_EaseDirection(t *testing.T) {
	state := NewCardState(testNow)

	up, err := Update(state, 5, testNow)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if up.Ease <= state.Ease {
		t.Errorf("grade 5: ease %v should exceed %v", up.Ease, state.Ease)
	}

	down, err := Update(state, 0, testNow)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if down.Ease >= state.Ease {
		t.Errorf("grade 0: ease %v should drop below %v", down.Ease, state.Ease)
	}

	mild, err := Update(state, 2, testNow)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if down.Ease >= mild.Ease {
		t.Errorf("grade 0 penalty (%v) should exceed grade 2 penalty (%v)", down.Ease, mild.Ease)
	}
}

func TestUpdate_RecordsLastReview(t *testing.T) {
	state, err := Update(NewCardState(testNow), 3, testNow)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if state.LastGrade == nil || *state.LastGrade != 3 {
		t.Errorf("LastGrade = %v, want 3", state.LastGrade)
	}
	if state.LastReviewedAt == nil || !state.LastReviewedAt.Equal(testNow) {
		t.Errorf("LastReviewedAt = %v, want %v", state.LastReviewedAt, testNow)
	}
}

func TestDateOf(t *testing.T) {
	d := DateOf(time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC))
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if !d.Equal(want) {
		t.Errorf("DateOf = %v, want %v", d, want)
	}
}

func TestCardState_IsDue(t *testing.T) {
	card := NewCardState(testNow)
	if !card.IsDue(testNow) {
		t.Error("fresh card should be due on its creation date")
	}
	if !card.IsDue(testNow.AddDate(0, 0, 5)) {
		t.Error("fresh card should be due later")
	}
	card.Due = DateOf(testNow).AddDate(0, 0, 3)
	// Same calendar day counts as due, regardless of time of day.
	if !card.IsDue(time.Date(2025, 3, 13, 0, 0, 1, 0, time.UTC)) {
		t.Error("card should be due at any time on its due date")
	}
	if card.IsDue(testNow.AddDate(0, 0, 2)) {
		t.Error("card should not be due before its due date")
	}
}
