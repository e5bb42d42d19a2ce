package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/robalobadob/crossword/internal/grid"
	"github.com/robalobadob/crossword/internal/puzzles"
)

var (
	checkReveal    bool
	checkStrict    bool
	checkPlain     bool
	checkNormalize bool
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	issueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	openStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("255"))
	blackStyle  = lipgloss.NewStyle().Background(lipgloss.Color("236"))
	boardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63"))
)

// errLayout is returned in strict mode when any puzzle has layout issues.
var errLayout = errors.New("layout issues found")

func init() {
	checkCmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Build the puzzles in a file and report layout issues",
		Long: `Build every puzzle in a JSON file, list its clues with the ones dropped
from the layout, and draw the resulting grid.

Examples:
  crossword check puzzles/animales.json
  crossword check --reveal=false --strict puzzles/*.json
  crossword check --normalize loose.json > clean.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o := checkOpts{reveal: checkReveal, strict: checkStrict, plain: checkPlain, normalize: checkNormalize}
			for _, path := range args {
				if err := runCheck(cmd.OutOrStdout(), path, o); err != nil {
					return err
				}
			}
			return nil
		},
	}

	checkCmd.Flags().BoolVar(&checkReveal, "reveal", true, "Show solution letters")
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Fail when a clue is dropped")
	checkCmd.Flags().BoolVar(&checkPlain, "plain", false, "Draw the grid as plain text (# black, . empty)")
	checkCmd.Flags().BoolVar(&checkNormalize, "normalize", false, "Print the puzzles in canonical JSON instead of a report")

	rootCmd.AddCommand(checkCmd)
}

type checkOpts struct {
	reveal    bool
	strict    bool
	plain     bool
	normalize bool
}

func runCheck(w io.Writer, path string, o checkOpts) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	ps, err := puzzles.Parse(b)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	bad := 0
	for _, p := range ps {
		g, err := p.Build()
		issues := grid.Issues(err)
		bad += len(issues)

		if o.normalize {
			out, err := puzzles.Canonical(p)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, string(out))
			continue
		}

		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s (%s)", p.Title, p.ID)))
		fmt.Fprintf(w, "%d clues, %d placed, %dx%d\n", len(p.Clues), len(g.Clues()), g.Size, g.Size)
		fmt.Fprintln(w, clueTable(p, issues, o.reveal))
		for _, is := range issues {
			fmt.Fprintln(w, issueStyle.Render("  ✗ "+is.Error()))
		}
		if len(issues) == 0 {
			fmt.Fprintln(w, okStyle.Render("  ✓ layout ok"))
		}
		if o.plain {
			fmt.Fprintln(w, g.Render(o.reveal))
		} else {
			fmt.Fprintln(w, boardStyle.Render(drawGrid(g, o.reveal)))
		}
	}

	if o.strict && bad > 0 {
		return fmt.Errorf("%s: %w (%d)", path, errLayout, bad)
	}
	return nil
}

func clueTable(p puzzles.Puzzle, issues []*grid.LayoutError, reveal bool) string {
	dropped := make(map[string]bool, len(issues))
	for _, is := range issues {
		dropped[is.ClueID] = true
	}

	rows := make([][]string, 0, len(p.Clues))
	for _, c := range p.Clues {
		answer := strings.Repeat("_", len([]rune(c.Answer)))
		if reveal {
			answer = string(c.Letters())
		}
		status := "placed"
		if dropped[c.ID] {
			status = "dropped"
		}
		rows = append(rows, []string{
			fmt.Sprint(c.Number),
			c.Direction.Label(),
			fmt.Sprintf("(%d,%d)", c.Row, c.Col),
			answer,
			c.Text,
			status,
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(false).
		Headers("#", "Dir", "Start", "Answer", "Clue", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 5 && row >= 0 && row < len(rows) && rows[row][5] == "dropped" {
				return issueStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Render()
}

// drawGrid renders each cell as a three-character block: the clue number (or
// a space) followed by the solution letter or a placeholder.
func drawGrid(g *grid.Grid, reveal bool) string {
	rows := make([]string, 0, g.Size)
	for _, row := range g.Cells {
		var sb strings.Builder
		for _, c := range row {
			if c.Black {
				sb.WriteString(blackStyle.Render("   "))
				continue
			}
			num := " "
			if c.Number > 0 && c.Number < 10 {
				num = fmt.Sprint(c.Number)
			} else if c.Number >= 10 {
				num = "+"
			}
			letter := "_"
			if reveal {
				letter = string(c.Solution)
			}
			sb.WriteString(openStyle.Render(num + letter + " "))
		}
		rows = append(rows, sb.String())
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
