// Package opening holds the opening-line model and the shared move-token
// helpers used by the quiz, tree, and study-sheet code.
package opening

import (
	"strings"
)

// Line is a stored opening line: a name and its SAN move sequence.
// Lines are immutable once stored; name and moves are owned by the store.
type Line struct {
	ID       int64
	Name     string
	MovesSAN string
}

// Tokens returns the line's moves as an ordered token slice.
func (l Line) Tokens() []string {
	return Tokenize(l.MovesSAN)
}

// Tokenize splits a space-separated move string into tokens,
// dropping empty fields.
func Tokenize(movesSAN string) []string {
	return strings.Fields(movesSAN)
}

// ChunkTokens joins tokens into groups of size tokens each, for
// study-sheet display. The last chunk may be shorter.
func ChunkTokens(tokens []string, size int) []string {
	if size <= 0 || len(tokens) == 0 {
		return nil
	}
	out := make([]string, 0, (len(tokens)+size-1)/size)
	for i := 0; i < len(tokens); i += size {
		end := i + size
		if end > len(tokens) {
			end = len(tokens)
		}
		out = append(out, strings.Join(tokens[i:end], " "))
	}
	return out
}
