package swing

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// scriptedStepper plays back a fixed score sequence: index 0 is the
// start position, index i+1 the position after tokens[i].
type scriptedStepper struct {
	scores    []int
	failAfter int // fail the Nth Score call (0-based), -1 for never

	scoreCalls int
	pushed     []string
}

func (s *scriptedStepper) Score(context.Context) (Score, error) {
	if s.failAfter >= 0 && s.scoreCalls == s.failAfter {
		return Score{}, fmt.Errorf("engine died: %w", ErrOracleUnavailable)
	}
	cp := s.scores[s.scoreCalls]
	s.scoreCalls++
	return Score{CP: cp, Display: fmt.Sprintf("%+d", cp)}, nil
}

func (s *scriptedStepper) Push(token string) error {
	s.pushed = append(s.pushed, token)
	return nil
}

func newStepper(scores ...int) *scriptedStepper {
	return &scriptedStepper{scores: scores, failAfter: -1}
}

func TestAnalyze(t *testing.T) {
	st := newStepper(0, 50, 50, -200)
	tokens := []string{"e4", "e5", "Qh5"}

	report, err := Analyze(context.Background(), tokens, st, 120)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.PliesEvaluated != 3 {
		t.Errorf("PliesEvaluated = %d, want 3", report.PliesEvaluated)
	}
	if report.Index != 2 || report.Token != "Qh5" {
		t.Errorf("winning ply = %d (%q), want 2 (Qh5)", report.Index, report.Token)
	}
	if report.Delta != -250 {
		t.Errorf("Delta = %d, want -250", report.Delta)
	}
	if !report.WhiteMove {
		t.Error("ply 2 is a White move")
	}
	if report.Before.CP != 50 || report.After.CP != -200 {
		t.Errorf("Before/After = %d/%d, want 50/-200", report.Before.CP, report.After.CP)
	}
	if report.Final.CP != -200 {
		t.Errorf("Final = %d, want -200", report.Final.CP)
	}
	if !report.Critical {
		t.Error("swing of 250cp at threshold 120 should be critical")
	}
}

func TestAnalyze_FirstPlyWinsTies(t *testing.T) {
	// Both plies swing by exactly 100; strict inequality keeps the first.
	st := newStepper(0, 100, 0)
	report, err := Analyze(context.Background(), []string{"e4", "c5"}, st, 500)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.Index != 0 || report.Token != "e4" {
		t.Errorf("winning ply = %d (%q), want 0 (e4)", report.Index, report.Token)
	}
	if report.Critical {
		t.Error("swing of 100cp at threshold 500 should not be critical")
	}
}

func TestAnalyze_BlackMoveAttribution(t *testing.T) {
	st := newStepper(0, 30, 300)
	report, err := Analyze(context.Background(), []string{"e4", "f6"}, st, 120)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.Index != 1 {
		t.Fatalf("Index = %d, want 1", report.Index)
	}
	if report.WhiteMove {
		t.Error("ply 1 is a Black move")
	}
}

func TestAnalyze_NoTokens(t *testing.T) {
	st := newStepper(40)
	report, err := Analyze(context.Background(), nil, st, 120)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.Index != -1 {
		t.Errorf("Index = %d, want -1 with no plies", report.Index)
	}
	if report.Final.CP != 40 {
		t.Errorf("Final = %d, want the start score", report.Final.CP)
	}
	if report.Critical {
		t.Error("no evaluated ply can be critical")
	}
}

func TestAnalyze_StartEvaluationFails(t *testing.T) {
	st := newStepper(0, 10)
	st.failAfter = 0
	report, err := Analyze(context.Background(), []string{"e4"}, st, 120)
	if !errors.Is(err, ErrOracleUnavailable) {
		t.Fatalf("error = %v, want ErrOracleUnavailable", err)
	}
	if report.PliesEvaluated != 0 || report.Index != -1 {
		t.Errorf("report = %+v, want empty", report)
	}
}

func TestAnalyze_MidScanFailureReturnsPartialReport(t *testing.T) {
	st := newStepper(0, 80, 0, 0)
	st.failAfter = 2 // start and ply 1 succeed, ply 2 fails
	tokens := []string{"e4", "e5", "Nf3"}

	report, err := Analyze(context.Background(), tokens, st, 120)
	if !errors.Is(err, ErrOracleUnavailable) {
		t.Fatalf("error = %v, want ErrOracleUnavailable", err)
	}
	if report.PliesEvaluated != 1 {
		t.Errorf("PliesEvaluated = %d, want 1", report.PliesEvaluated)
	}
	if report.Index != 0 || report.Delta != 80 {
		t.Errorf("partial winner = ply %d delta %d, want ply 0 delta 80", report.Index, report.Delta)
	}
	if report.Final.CP != 80 {
		t.Errorf("Final = %d, want last evaluated score 80", report.Final.CP)
	}
}

func TestAnalyze_MateScoreDominates(t *testing.T) {
	st := newStepper(0, -30, MateScore)
	report, err := Analyze(context.Background(), []string{"f3", "Qh4#"}, st, 120)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.Index != 1 {
		t.Errorf("Index = %d, want the mating ply", report.Index)
	}
	if report.Delta != MateScore+30 {
		t.Errorf("Delta = %d, want %d", report.Delta, MateScore+30)
	}
	if !report.Critical {
		t.Error("a mate swing should be critical")
	}
}

func TestAnalyze_PushFailure(t *testing.T) {
	st := newStepper(0, 0)
	pushErr := errors.New("illegal move")
	failing := &failingPush{scriptedStepper: st, err: pushErr}

	_, err := Analyze(context.Background(), []string{"Zz9"}, failing, 120)
	if !errors.Is(err, pushErr) {
		t.Fatalf("error = %v, want the push error", err)
	}
}

type failingPush struct {
	*scriptedStepper
	err error
}

func (f *failingPush) Push(string) error { return f.err }
