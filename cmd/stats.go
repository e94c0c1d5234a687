package cmd

import (
	"fmt"
	"time"

	"github.com/abhisek/chessbook/internal/ui"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix, _ := cmd.Flags().GetString("prefix")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.Stats(cmd.Context(), prefix, time.Now())
		if err != nil {
			return err
		}

		rows := [][]string{
			{"Openings", fmt.Sprintf("%d", stats.TotalOpenings)},
			{"Study cards", fmt.Sprintf("%d", stats.TotalCards)},
			{"Due today", fmt.Sprintf("%d", stats.CardsDue)},
			{"Avg ease", fmt.Sprintf("%.2f", stats.AvgEase)},
			{"Avg interval (days)", fmt.Sprintf("%.1f", stats.AvgInterval)},
			{"Lapses", fmt.Sprintf("%d", stats.TotalLapses)},
			{"Reviews logged", fmt.Sprintf("%d", stats.TotalReviews)},
			{"Accuracy", fmt.Sprintf("%.0f%%", stats.Accuracy*100)},
		}
		fmt.Println(ui.Table([]string{"Metric", "Value"}, rows))
		return nil
	},
}

func init() {
	statsCmd.Flags().String("prefix", "", "Filter by opening name prefix")
}
