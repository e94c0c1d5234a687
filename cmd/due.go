package cmd

import (
	"fmt"
	"time"

	"github.com/abhisek/chessbook/internal/srs"
	"github.com/abhisek/chessbook/internal/ui"
	"github.com/spf13/cobra"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "Show what you should review today (spaced repetition)",
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix, _ := cmd.Flags().GetString("prefix")
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		now := time.Now()
		sched := srs.NewScheduler(st)
		if _, err := sched.EnsureCards(cmd.Context(), prefix, now); err != nil {
			return err
		}
		due, err := st.Due(cmd.Context(), prefix, now, limit)
		if err != nil {
			return err
		}
		if len(due) == 0 {
			fmt.Println(ui.Success.Render("Nothing due today") + dimPrefix(prefix))
			return nil
		}

		rows := make([][]string, len(due))
		for i, d := range due {
			rows[i] = []string{d.Name, d.Due.Format(time.DateOnly)}
		}
		fmt.Println(ui.Table([]string{"Opening", "Due"}, rows))
		return nil
	},
}

func dimPrefix(prefix string) string {
	if prefix == "" {
		return ""
	}
	return " " + ui.Dim.Render("(prefix: "+prefix+")")
}

func init() {
	dueCmd.Flags().String("prefix", "", "Filter by opening name prefix")
	dueCmd.Flags().Int("limit", 20, "Max openings to show")
}
