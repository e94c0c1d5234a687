package cmd

import (
	"errors"
	"fmt"

	"github.com/abhisek/chessbook/internal/opening"
	"github.com/abhisek/chessbook/internal/store"
	"github.com/abhisek/chessbook/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show an opening, its final position, notes, and latest evaluation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ln, err := st.OpeningByName(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		notes, err := st.Notes(cmd.Context(), ln.ID)
		if err != nil {
			return err
		}

		fmt.Println(ui.Bold.Render(ln.Name))
		fmt.Println(ln.MovesSAN)
		if game, err := opening.FinalGame(ln.MovesSAN); err == nil {
			fmt.Println("FEN:", game.Position().String())
		}
		if notes != "" {
			fmt.Println()
			fmt.Println(ui.Bold.Render("Notes"))
			fmt.Println(notes)
		}

		latest, err := st.LatestEval(cmd.Context(), ln.ID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			// No evaluation stored yet.
		case err != nil:
			return err
		default:
			fmt.Printf("Latest eval @ depth %d: %s\n",
				latest.Depth, ui.Accent.Render(formatScore(latest.ScoreCP, latest.MateIn)))
		}
		return nil
	},
}
