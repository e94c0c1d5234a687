// Package quiz scores a typed move sequence against the opening prefix
// the learner was asked to recall.
package quiz

import (
	"errors"
	"fmt"

	"github.com/abhisek/chessbook/internal/opening"
)

// ErrEmptyTarget is returned when the opening has no move tokens.
// Upstream validation should make this impossible; it is surfaced rather
// than silently scoring an empty quiz as fully correct.
var ErrEmptyTarget = errors.New("quiz: opening has no move tokens")

// ErrInvalidPromptLength is returned when the prompt length is below 1.
// A zero-length prompt would score every answer as fully correct.
var ErrInvalidPromptLength = errors.New("quiz: prompt length must be at least 1")

// Result is the outcome of checking one typed answer. Not persisted.
type Result struct {
	Target        []string
	Typed         []string
	CorrectTokens int
}

// TargetTokens returns how many tokens the learner was asked for.
func (r Result) TargetTokens() int {
	return len(r.Target)
}

// FullyCorrect reports whether every target token was matched. Typing
// more than the target carries no penalty; only the first
// TargetTokens() typed tokens matter.
func (r Result) FullyCorrect() bool {
	return r.CorrectTokens == len(r.Target)
}

// Check scores typedText against the first promptLength tokens of the
// opening. Scoring is strict prefix matching: tokens are compared
// position by position and credit stops at the first mismatch, even if
// later tokens happen to line up again.
func Check(tokens []string, typedText string, promptLength int) (Result, error) {
	if promptLength < 1 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidPromptLength, promptLength)
	}
	if len(tokens) == 0 {
		return Result{}, ErrEmptyTarget
	}
	target := tokens
	if promptLength < len(target) {
		target = target[:promptLength]
	}
	typed := opening.Tokenize(typedText)
	return Result{
		Target:        target,
		Typed:         typed,
		CorrectTokens: longestPrefixMatch(typed, target),
	}, nil
}

func longestPrefixMatch(a, b []string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
