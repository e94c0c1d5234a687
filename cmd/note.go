package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/chessbook/internal/ui"
	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:   "note NAME",
	Short: "Attach notes (mnemonics, triggers, plans) to an opening",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, _ := cmd.Flags().GetString("text")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ln, err := st.OpeningByName(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := st.SetNotes(cmd.Context(), ln.ID, strings.TrimSpace(text), time.Now()); err != nil {
			return err
		}
		fmt.Println(ui.Success.Render("Saved notes"), "for", ui.Bold.Render(ln.Name))
		return nil
	},
}

func init() {
	noteCmd.Flags().String("text", "", "Notes/mnemonic for this opening")
	_ = noteCmd.MarkFlagRequired("text")
}
