package cmd

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/abhisek/chessbook/internal/opening"
	"github.com/abhisek/chessbook/internal/ui"
	"github.com/spf13/cobra"
)

// moveNumberRe matches PGN move numbers like "12." or "12..".
var moveNumberRe = regexp.MustCompile(`^\d+\.(\.\.)?$`)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Bulk import openings from a TSV file (name<TAB>PGN moves per line)",
	Long: `Import openings from a TSV file. Blank lines and lines starting with #
are ignored. Each remaining line is either "name<TAB>moves" or bare
moves (a name is generated). PGN move numbers and result markers are
stripped before validation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		namePrefix, _ := cmd.Flags().GetString("name-prefix")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		var added, skipped, failed int
		autoIdx := 1
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			name, pgn := splitImportLine(line, &autoIdx)
			fullName := strings.TrimSpace(namePrefix + name)
			movesSAN := sanitizePGNMoves(pgn)

			if err := opening.Validate(movesSAN); err != nil {
				failed++
				fmt.Println(ui.Error.Render("FAIL:"), fullName+":", err)
				continue
			}
			if dryRun {
				added++
				fmt.Println(ui.Success.Render("OK (validated):"), fullName)
				continue
			}

			if _, err := st.AddOpening(cmd.Context(), fullName, movesSAN, time.Now()); err != nil {
				// Name collisions are expected on re-import; anything
				// else counts as a failure.
				if strings.Contains(err.Error(), "UNIQUE") {
					skipped++
					fmt.Println(ui.Warn.Render("SKIP (already exists):"), fullName)
				} else {
					failed++
					fmt.Println(ui.Error.Render("FAIL:"), fullName+":", err)
				}
				continue
			}
			added++
			fmt.Println(ui.Success.Render("ADDED:"), fullName)
		}
		if err := scanner.Err(); err != nil {
			return err
		}

		fmt.Printf("\nDone. added=%d skipped=%d failed=%d dry_run=%v\n", added, skipped, failed, dryRun)
		return nil
	},
}

// splitImportLine splits "name<TAB>moves", generating a name for bare
// move lines.
func splitImportLine(line string, autoIdx *int) (name, pgn string) {
	if i := strings.IndexByte(line, '\t'); i >= 0 {
		name = strings.TrimSpace(line[:i])
		pgn = strings.TrimSpace(line[i+1:])
		if name != "" {
			return name, pgn
		}
		line = pgn
	}
	name = fmt.Sprintf("Imported line %d", *autoIdx)
	*autoIdx++
	return name, line
}

// sanitizePGNMoves strips move numbers and result markers, leaving bare
// SAN tokens.
func sanitizePGNMoves(pgn string) string {
	var tokens []string
	for _, tok := range strings.Fields(strings.ReplaceAll(pgn, "\n", " ")) {
		if moveNumberRe.MatchString(tok) {
			continue
		}
		switch tok {
		case "1-0", "0-1", "1/2-1/2", "*":
			continue
		}
		tokens = append(tokens, tok)
	}
	return strings.Join(tokens, " ")
}

func init() {
	importCmd.Flags().String("name-prefix", "", "Prefix added to every imported opening name")
	importCmd.Flags().Bool("dry-run", false, "Parse and validate SAN, but do not insert")
}
