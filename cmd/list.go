package cmd

import (
	"fmt"

	"github.com/abhisek/chessbook/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored openings",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		rows := make([][]string, len(openings))
		for i, o := range openings {
			rows[i] = []string{o.Name, o.MovesSAN}
		}
		fmt.Println(ui.Table([]string{"Name", "Moves (SAN)"}, rows))
		return nil
	},
}

func init() {
	listCmd.Flags().String("prefix", "", "Filter by opening name prefix")
}
