package opening

import (
	"fmt"

	"github.com/notnil/chess"
)

// FinalGame replays a SAN move sequence from the starting position and
// returns the resulting game. It is the single place SAN legality is
// checked; everything downstream treats tokens as opaque strings.
func FinalGame(movesSAN string) (*chess.Game, error) {
	tokens := Tokenize(movesSAN)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("no moves provided")
	}
	game := chess.NewGame()
	for i, tok := range tokens {
		if err := game.MoveStr(tok); err != nil {
			return nil, fmt.Errorf("invalid SAN move %q at ply %d: %w", tok, i+1, err)
		}
	}
	return game, nil
}

// Validate reports whether movesSAN is a legal, non-empty move sequence.
func Validate(movesSAN string) error {
	_, err := FinalGame(movesSAN)
	return err
}
