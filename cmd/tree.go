package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/chessbook/internal/tree"
	"github.com/abhisek/chessbook/internal/ui"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the branching structure of your lines as a decision tree",
	Long:  "Show the common starting moves, then how the lines diverge: if they play X, respond with Y.",
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix, _ := cmd.Flags().GetString("prefix")
		limit, _ := cmd.Flags().GetInt("limit")
		levels, _ := cmd.Flags().GetInt("levels")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		lines, err := st.OpeningsByPrefix(cmd.Context(), prefix, limit)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			fmt.Println(ui.Warn.Render("No openings found") + dimPrefix(prefix))
			return nil
		}

		t := tree.Build(lines, levels)

		fmt.Println(ui.Bold.Render(fmt.Sprintf("Common start (%d tokens)", len(t.CommonPrefix))))
		if len(t.CommonPrefix) == 0 {
			fmt.Println(ui.Dim.Render("(none)"))
		} else {
			fmt.Println(strings.Join(t.CommonPrefix, " "))
		}

		fmt.Println()
		fmt.Println(ui.Bold.Render("Next branches"))
		printNodes(t.Roots, "- ")
		return nil
	},
}

func printNodes(nodes []tree.Node, indent string) {
	for _, n := range nodes {
		fmt.Printf("%s%s  %s  %s\n",
			indent, ui.Accent.Render(n.Token),
			ui.Dim.Render(fmt.Sprintf("(%d)", n.Count)),
			strings.Join(n.ExampleNames, ", "))
		printNodes(n.Children, "  "+indent)
	}
}

func init() {
	treeCmd.Flags().String("prefix", "", "Filter by opening name prefix")
	treeCmd.Flags().Int("limit", 200, "Max lines to include")
	treeCmd.Flags().Int("levels", 3, "How many branching levels to show")
}
