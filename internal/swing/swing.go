// Package swing walks an opening's moves through an evaluation oracle
// and finds the ply where the score changed the most.
package swing

import (
	"context"
	"errors"
	"fmt"
)

// ErrOracleUnavailable is returned when an evaluation query fails
// mid-scan. The scan aborts and the partial report gathered so far is
// returned alongside the error; retrying is the caller's decision.
var ErrOracleUnavailable = errors.New("swing: evaluation oracle unavailable")

// MateScore is the saturating sentinel for forced mates: large enough
// to dominate any centipawn score, finite so deltas stay ordered.
const MateScore = 100000

// Score is one evaluation from the fixed side's (White's) point of
// view, regardless of whose turn it is, so scores compare ply-to-ply.
type Score struct {
	// CP is centipawns, or ±MateScore for a forced mate.
	CP int
	// Display is the human form, e.g. "+0.35" or "M3".
	Display string
}

// Stepper is the board/oracle collaborator: it holds the current
// position, applies moves, and answers evaluation queries. Calls
// alternate Score, Push, Score, Push: each query depends on the
// position the previous move produced, so plies are never evaluated
// in parallel.
type Stepper interface {
	// Score evaluates the current position, White POV. A failed query
	// should wrap ErrOracleUnavailable.
	Score(ctx context.Context) (Score, error)

	// Push applies one move token to the position. A rejected token
	// indicates corrupt stored data and is propagated unchanged.
	Push(token string) error
}

// Report is the outcome of one line scan.
type Report struct {
	// PliesEvaluated counts moves whose resulting position was scored.
	// Equal to len(tokens) on a full scan, fewer on an aborted one.
	PliesEvaluated int

	// Final is the score after the last evaluated ply.
	Final Score

	// Index is the 0-based ply with the largest absolute score change,
	// or -1 if no ply was evaluated. Even indices are White's moves.
	Index     int
	Token     string
	WhiteMove bool
	Before    Score
	After     Score
	Delta     int

	// Critical is set when |Delta| reached the caller's threshold.
	// Presentation only: the winning ply is found the same way either way.
	Critical bool
}

// Analyze scans tokens in order: evaluate the start position, then after
// each move compute the score change and track the maximum |delta|.
// Strict inequality, so the first ply reaching the maximum wins ties.
// thresholdCP classifies the winning swing as critical.
//
// On an oracle failure the partial report is returned with the error;
// a truncated scan is never passed off as complete.
func Analyze(ctx context.Context, tokens []string, st Stepper, thresholdCP int) (Report, error) {
	report := Report{Index: -1}

	prev, err := st.Score(ctx)
	if err != nil {
		return report, fmt.Errorf("evaluate start position: %w", err)
	}
	report.Final = prev

	bestAbs := -1
	for i, tok := range tokens {
		if err := st.Push(tok); err != nil {
			return report, fmt.Errorf("apply %q at ply %d: %w", tok, i+1, err)
		}
		cur, err := st.Score(ctx)
		if err != nil {
			return report, fmt.Errorf("evaluate after ply %d: %w", i+1, err)
		}

		delta := cur.CP - prev.CP
		if abs(delta) > bestAbs {
			bestAbs = abs(delta)
			report.Index = i
			report.Token = tok
			report.WhiteMove = i%2 == 0
			report.Before = prev
			report.After = cur
			report.Delta = delta
		}

		prev = cur
		report.Final = cur
		report.PliesEvaluated = i + 1
	}

	report.Critical = report.Index >= 0 && abs(report.Delta) >= thresholdCP
	return report, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
