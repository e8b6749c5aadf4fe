package cli

import (
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pcbforge/pcbforge/pkg/drc"
)

// newDRCCmd creates the drc command, which checks a finished layout
// against design rules.
func newDRCCmd() *cobra.Command {
	var (
		rulesPath   string
		reportOut   string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "drc <layout.json>",
		Short: "Check a layout against design rules",
		Long: `DRC checks a routed layout for manufacturing problems: track widths out
of range, insufficient copper clearance, undersized drills and annular
rings, a missing board outline, and unconnected nets. All checks always
run; the command fails when any violation is found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := loadLayout(args[0])
			if err != nil {
				return err
			}

			rules := drc.DefaultRules()
			if rulesPath != "" {
				rules, err = drc.LoadRules(rulesPath)
				if err != nil {
					return err
				}
			}

			report := drc.Check(layout, rules)

			if reportOut != "" {
				if err := writeJSON(reportOut, report); err != nil {
					return err
				}
				printFile(reportOut)
			}

			if report.Passed {
				printSuccess("Design rule check passed")
				return nil
			}

			if interactive {
				model := newViolationListModel(report)
				if _, err := tea.NewProgram(model).Run(); err != nil {
					return err
				}
			} else {
				printViolations(report)
			}
			return fmt.Errorf("design rule check failed with %d violations", report.Total)
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "TOML file with design rule overrides")
	cmd.Flags().StringVar(&reportOut, "report", "", "write the full report as JSON to this path")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse violations in a TUI")

	return cmd
}

// printViolations prints the report grouped by violation code.
func printViolations(report *drc.Report) {
	printError("Design rule check failed: %d violations", report.Total)
	codes := make([]string, 0, len(report.ByCode))
	for code := range report.ByCode {
		codes = append(codes, string(code))
	}
	sort.Strings(codes)
	for _, code := range codes {
		printDetail("%s: %d", code, report.ByCode[drc.Code(code)])
	}
	fmt.Println()
	for _, v := range report.Violations {
		pos := ""
		if v.Position != nil {
			pos = fmt.Sprintf(" at (%.2f, %.2f)", v.Position.X, v.Position.Y)
		}
		fmt.Println("  " + StyleWarning.Render(string(v.Code)) + " " + v.Message + StyleDim.Render(pos))
	}
}
