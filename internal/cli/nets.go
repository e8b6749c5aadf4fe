package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/pcbforge/pcbforge/pkg/nets"
	"github.com/pcbforge/pcbforge/pkg/render/netgraph"
)

// newNetsCmd creates the nets command, which classifies a design's
// connectivity and shows the routing rules each net will get.
func newNetsCmd() *cobra.Command {
	var (
		dotOut string
		svgOut string
	)

	cmd := &cobra.Command{
		Use:   "nets <design.json>",
		Short: "Classify nets and show their routing rules",
		Long: `Nets groups the design's connections into electrical nets, classifies each
by name keywords (power, ground, clock, high-speed), and prints the routing
rule it will receive. Differential pairs detected by the _P/_N and +/-
suffix conventions are listed separately.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			design, err := loadDesign(args[0])
			if err != nil {
				return err
			}

			mgr := nets.NewManager()
			mgr.Build(design.Connections)

			printNetTable(mgr)

			if pairs := mgr.Pairs(); len(pairs) > 0 {
				fmt.Println()
				fmt.Println(StyleTitle.Render("Differential Pairs"))
				for _, p := range pairs {
					printDetail("%s / %s  (%.0fΩ, max mismatch %.2fmm)",
						p.Positive, p.Negative, p.Impedance, p.MaxMismatch)
				}
			}

			if dotOut != "" {
				dot := netgraph.ToDOT(design, netgraph.Options{Detailed: true})
				if err := os.WriteFile(dotOut, []byte(dot), 0644); err != nil {
					return err
				}
				printFile(dotOut)
			}
			if svgOut != "" {
				dot := netgraph.ToDOT(design, netgraph.Options{})
				svg, err := netgraph.RenderSVG(dot)
				if err != nil {
					return err
				}
				if err := os.WriteFile(svgOut, svg, 0644); err != nil {
					return err
				}
				printFile(svgOut)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dotOut, "dot", "", "write the ratsnest as Graphviz DOT to this path")
	cmd.Flags().StringVar(&svgOut, "svg", "", "render the ratsnest as SVG to this path")

	return cmd
}

// printNetTable prints nets in routing order with their rule parameters.
func printNetTable(mgr *nets.Manager) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for _, n := range mgr.RoutingOrder() {
		rows = append(rows, []string{
			n.Name,
			string(n.Class),
			fmt.Sprintf("%.2f", n.Rule.TrackWidth),
			fmt.Sprintf("%.2f", n.Rule.Clearance),
			fmt.Sprintf("%d", n.Rule.Priority),
			fmt.Sprintf("%d", len(n.Connections)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Net", "Class", "Width", "Clear", "Prio", "Conns").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return StyleHighlight
			}
			return StyleValue
		})

	fmt.Println(t.Render())
}
