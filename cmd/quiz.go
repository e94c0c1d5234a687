package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/chessbook/internal/opening"
	"github.com/abhisek/chessbook/internal/quiz"
	"github.com/abhisek/chessbook/internal/srs"
	"github.com/abhisek/chessbook/internal/ui"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Quiz yourself: type the first N moves, then grade your recall (0-5)",
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix, _ := cmd.Flags().GetString("prefix")
		limit, _ := cmd.Flags().GetInt("limit")
		tokens, _ := cmd.Flags().GetInt("tokens")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		if tokens < 1 {
			return fmt.Errorf("--tokens must be at least 1, got %d", tokens)
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		now := time.Now()
		sched := srs.NewScheduler(st)
		created, err := sched.EnsureCards(cmd.Context(), prefix, now)
		if err != nil {
			return err
		}
		if created > 0 {
			fmt.Println(ui.Dim.Render(fmt.Sprintf("Created %d study cards.", created)))
		}

		openings, err := sched.PickDue(cmd.Context(), prefix, now, limit)
		if err != nil {
			return err
		}
		if len(openings) == 0 {
			fmt.Println(ui.Warn.Render("No openings found") + dimPrefix(prefix))
			return nil
		}

		sessionID := uuid.NewString()
		reader := bufio.NewReader(os.Stdin)

		for _, o := range openings {
			toks := opening.Tokenize(o.MovesSAN)
			fmt.Printf("\n%s  %s\n", ui.Bold.Render(o.Name),
				ui.Dim.Render("(due "+o.Due.Format(time.DateOnly)+")"))

			check, err := quiz.Check(toks, "", tokens)
			if err != nil {
				return err
			}
			answer := strings.Join(check.Target, " ")

			if dryRun {
				fmt.Println(ui.Accent.Render("Answer:"), answer)
				continue
			}

			fmt.Printf("Type first %d moves (SAN tokens): ", check.TargetTokens())
			typed, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			typed = strings.TrimSpace(typed)

			check, err = quiz.Check(toks, typed, tokens)
			if err != nil {
				return err
			}
			if check.FullyCorrect() {
				fmt.Printf("%s (%d/%d)\n", ui.Success.Render("Correct"),
					check.CorrectTokens, check.TargetTokens())
			} else {
				fmt.Printf("%s (%d/%d)\n", ui.Warn.Render("Partial"),
					check.CorrectTokens, check.TargetTokens())
				fmt.Println(ui.Accent.Render("Answer:"), answer)
			}

			grade, err := promptGrade(reader)
			if err != nil {
				return err
			}

			correct := check.CorrectTokens
			target := check.TargetTokens()
			_, err = sched.ApplyGrade(cmd.Context(), time.Now(), srs.ReviewEntry{
				OpeningID:     o.ID,
				SessionID:     sessionID,
				Grade:         grade,
				PromptMode:    "name_to_moves",
				Prompt:        o.Name,
				TypedMoves:    typed,
				CorrectTokens: &correct,
				TargetTokens:  &target,
			})
			if err != nil {
				return err
			}

			notes, err := st.Notes(cmd.Context(), o.ID)
			if err != nil {
				return err
			}
			if notes != "" {
				fmt.Println(ui.Dim.Render("Note:"), notes)
			}
		}
		return nil
	},
}

// promptGrade reads a 0-5 grade, re-asking on bad input. Empty input
// defaults to 4.
func promptGrade(reader *bufio.Reader) (srs.Grade, error) {
	for {
		fmt.Print("Grade your recall (0-5) [4]: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return 0, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return srs.Grade(4), nil
		}
		g, err := srs.ParseGrade(line)
		if err != nil {
			fmt.Println(ui.Warn.Render("Grade must be an integer 0-5."))
			continue
		}
		return g, nil
	}
}

func init() {
	quizCmd.Flags().String("prefix", "", "Filter by opening name prefix")
	quizCmd.Flags().Int("limit", 10, "Max openings per session")
	quizCmd.Flags().Int("tokens", 10, "How many SAN tokens to recall")
	quizCmd.Flags().Bool("dry-run", false, "Show answers without prompting or scheduling")
}
