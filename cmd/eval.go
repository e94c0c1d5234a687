package cmd

import (
	"fmt"
	"time"

	"github.com/abhisek/chessbook/internal/engine"
	"github.com/abhisek/chessbook/internal/opening"
	"github.com/abhisek/chessbook/internal/store"
	"github.com/abhisek/chessbook/internal/ui"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval NAME",
	Short: "Evaluate one opening's final position and store the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		depth, _ := cmd.Flags().GetInt("depth")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ln, err := st.OpeningByName(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		eng, err := startEngine(cmd, depth)
		if err != nil {
			return err
		}
		defer eng.Close()

		stored, err := evaluateAndStore(cmd, st, eng, ln)
		if err != nil {
			return err
		}

		fmt.Printf("%s @ depth %d: %s\n", ui.Bold.Render(ln.Name), stored.Depth,
			ui.Accent.Render(formatScore(stored.ScoreCP, stored.MateIn)))
		if stored.BestMoveUCI != "" {
			fmt.Println("bestmove:", stored.BestMoveUCI)
		}
		return nil
	},
}

var evalAllCmd = &cobra.Command{
	Use:   "eval-all",
	Short: "Evaluate all openings and store the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		depth, _ := cmd.Flags().GetInt("depth")
		prefix, _ := cmd.Flags().GetString("prefix")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		openings, err := st.OpeningsByPrefix(cmd.Context(), prefix, 0)
		if err != nil {
			return err
		}
		if len(openings) == 0 {
			fmt.Println(ui.Warn.Render("No openings stored yet."))
			return nil
		}

		eng, err := startEngine(cmd, depth)
		if err != nil {
			return err
		}
		defer eng.Close()

		rows := make([][]string, 0, len(openings))
		for _, o := range openings {
			stored, err := evaluateAndStore(cmd, st, eng, o)
			if err != nil {
				return err
			}
			rows = append(rows, []string{
				o.Name,
				formatScore(stored.ScoreCP, stored.MateIn),
				stored.BestMoveUCI,
			})
		}
		fmt.Println(ui.Table([]string{"Opening", "Score", "Bestmove"}, rows))
		return nil
	},
}

// evaluateAndStore runs one fixed-depth evaluation of the line's final
// position and persists it.
func evaluateAndStore(cmd *cobra.Command, st *store.Store, eng *engine.Engine, ln opening.Line) (store.StoredEval, error) {
	game, err := opening.FinalGame(ln.MovesSAN)
	if err != nil {
		return store.StoredEval{}, err
	}
	result, err := eng.Evaluate(cmd.Context(), game.Position())
	if err != nil {
		return store.StoredEval{}, err
	}
	return st.SaveEval(cmd.Context(), store.StoredEval{
		OpeningID:   ln.ID,
		Depth:       result.Depth,
		ScoreCP:     result.ScoreCP,
		MateIn:      result.MateIn,
		BestMoveUCI: result.BestMoveUCI,
		AnalyzedAt:  time.Now(),
	})
}

func init() {
	evalCmd.Flags().Int("depth", 14, "Search depth")
	evalCmd.Flags().String("engine", "", "Path to the Stockfish binary")
	evalAllCmd.Flags().Int("depth", 14, "Search depth")
	evalAllCmd.Flags().String("prefix", "", "Filter by opening name prefix")
	evalAllCmd.Flags().String("engine", "", "Path to the Stockfish binary")
}
