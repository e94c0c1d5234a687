package cmd

import (
	"fmt"

	"github.com/abhisek/chessbook/internal/engine"
)

// formatScore renders a stored evaluation: "M3" for mate, pawns with
// two decimals otherwise, "?" when neither is set.
func formatScore(scoreCP, mateIn *int) string {
	if mateIn != nil {
		return fmt.Sprintf("M%d", *mateIn)
	}
	if scoreCP == nil {
		return "?"
	}
	return engine.FormatCP(*scoreCP)
}
