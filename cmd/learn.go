package cmd

import (
	"errors"
	"fmt"
	"math"

	"github.com/abhisek/chessbook/internal/engine"
	"github.com/abhisek/chessbook/internal/opening"
	"github.com/abhisek/chessbook/internal/swing"
	"github.com/abhisek/chessbook/internal/ui"
	"github.com/spf13/cobra"
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Print a study sheet: each opening split into chunks you can rehearse",
	Long:  "Print a study sheet before quizzing: each opening's moves in small chunks, with the engine's final eval and the ply where the evaluation swings most.",
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix, _ := cmd.Flags().GetString("prefix")
		limit, _ := cmd.Flags().GetInt("limit")
		chunk, _ := cmd.Flags().GetInt("chunk")
		withEval, _ := cmd.Flags().GetBool("eval")
		depth, _ := cmd.Flags().GetInt("depth")
		swingCP, _ := cmd.Flags().GetInt("swing-cp")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		openings, err := st.OpeningsByPrefix(cmd.Context(), prefix, limit)
		if err != nil {
			return err
		}
		if len(openings) == 0 {
			fmt.Println(ui.Warn.Render("No openings found") + dimPrefix(prefix))
			return nil
		}

		var eng *engine.Engine
		if withEval {
			eng, err = startEngine(cmd, depth)
			if err != nil {
				fmt.Println(ui.Warn.Render("Stockfish not available:"), err)
				fmt.Println(ui.Dim.Render("Continuing without eval. Install Stockfish or set STOCKFISH_PATH."))
				eng = nil
			}
		}
		if eng != nil {
			defer eng.Close()
		}

		for _, o := range openings {
			toks := o.Tokens()

			var report swing.Report
			report.Index = -1
			haveEval := false
			if eng != nil {
				report, err = swing.Analyze(cmd.Context(), toks, engine.NewLineStepper(eng), swingCP)
				if err != nil {
					if !errors.Is(err, engine.ErrUnavailable) {
						return err
					}
					fmt.Println(ui.Warn.Render("Engine failed mid-scan:"), err)
					eng = nil
				}
				haveEval = report.PliesEvaluated > 0 || err == nil
			}

			highlight := -1
			if report.Critical {
				highlight = report.Index
			}

			fmt.Println()
			fmt.Println(ui.Bold.Render(o.Name))
			printChunks(toks, chunk, highlight)

			if haveEval {
				fmt.Printf("%s %s\n",
					ui.Dim.Render(fmt.Sprintf("Final eval (Stockfish d%d, White POV):", depth)),
					ui.Accent.Render(report.Final.Display))
			}
			if report.Index >= 0 {
				printSwing(report)
			}
		}
		return nil
	},
}

// printChunks renders numbered token chunks, highlighting the critical ply.
func printChunks(toks []string, chunk, criticalIdx int) {
	styled := make([]string, len(toks))
	for i, t := range toks {
		if i == criticalIdx {
			styled[i] = ui.Critical.Render(t)
		} else {
			styled[i] = t
		}
	}
	for i, ch := range opening.ChunkTokens(styled, chunk) {
		fmt.Printf("%s  %s\n", ui.Dim.Render(fmt.Sprintf("%02d", i+1)), ch)
	}
}

func printSwing(report swing.Report) {
	tag := ui.Warn.Render("Largest swing")
	if report.Critical {
		tag = ui.Error.Render("CRITICAL")
	}
	side := "Black"
	if report.WhiteMove {
		side = "White"
	}
	deltaPawns := math.Abs(float64(report.Delta)) / 100.0
	fmt.Printf("%s: ply %d (%s) %s  %s -> %s  %s\n",
		tag, report.Index+1, side, ui.Bold.Render(report.Token),
		report.Before.Display, report.After.Display,
		ui.Dim.Render(fmt.Sprintf("(swing %.2f)", deltaPawns)))
}

// startEngine resolves the Stockfish binary and performs the handshake.
func startEngine(cmd *cobra.Command, depth int) (*engine.Engine, error) {
	enginePath, _ := cmd.Flags().GetString("engine")
	path, err := engine.ResolvePath(enginePath)
	if err != nil {
		return nil, err
	}
	return engine.New(path, depth)
}

func init() {
	learnCmd.Flags().String("prefix", "", "Filter by opening name prefix")
	learnCmd.Flags().Int("limit", 20, "Max openings to print")
	learnCmd.Flags().Int("chunk", 8, "Tokens per chunk to memorize")
	learnCmd.Flags().Bool("eval", true, "Show Stockfish eval and the critical swing")
	learnCmd.Flags().Int("depth", 10, "Stockfish depth for learn evals")
	learnCmd.Flags().Int("swing-cp", 120, "Highlight swings at or above this many centipawns")
	learnCmd.Flags().String("engine", "", "Path to the Stockfish binary")
}
