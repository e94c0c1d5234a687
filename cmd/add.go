package cmd

import (
	"fmt"
	"time"

	"github.com/abhisek/chessbook/internal/opening"
	"github.com/abhisek/chessbook/internal/ui"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add an opening (validates SAN moves before saving)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		moves, _ := cmd.Flags().GetString("moves")

		// Validate early so garbage never reaches the store.
		if err := opening.Validate(moves); err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ln, err := st.AddOpening(cmd.Context(), args[0], moves, time.Now())
		if err != nil {
			return err
		}
		fmt.Println(ui.Success.Render("Added"), ln.Name)
		return nil
	},
}

func init() {
	addCmd.Flags().String("moves", "", "SAN moves, space-separated")
	_ = addCmd.MarkFlagRequired("moves")
}
