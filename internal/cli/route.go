package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pcbforge/pcbforge/pkg/pipeline"
	"github.com/pcbforge/pcbforge/pkg/render/boardsvg"
)

// newRouteCmd creates the route command, which routes a design at its
// current component positions without running the rule checker.
func newRouteCmd() *cobra.Command {
	var (
		out          string
		svgOut       string
		layers       int
		resolution   float64
		refresh      bool
		noCache      bool
		cacheBackend string
	)

	cmd := &cobra.Command{
		Use:   "route <design.json>",
		Short: "Route a design without moving components",
		Long: `Route keeps the component positions from the design document and routes
every connection with A* search: nets are classified, ordered by priority,
and each accepted trace blocks the grid for the next one. Run "pcbforge drc"
afterwards to check the result.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			design, err := loadDesign(args[0])
			if err != nil {
				return err
			}

			c, keyer, err := openCache(noCache, cacheBackend, logger)
			if err != nil {
				return err
			}
			defer c.Close()

			runner := pipeline.NewRunner(c, keyer, logger)
			result, err := runner.Execute(ctx, design, pipeline.Options{
				SkipOptimize:   true,
				SkipDRC:        true,
				GridResolution: resolution,
				Layers:         layers,
				Refresh:        refresh,
				Logger:         logger,
			})
			if err != nil {
				return err
			}

			if err := writeJSON(out, result.Layout); err != nil {
				return err
			}
			printSuccess("Routed %d of %d connections", result.Stats.RoutedCount, result.Stats.ConnectionCount)
			printFile(out)
			if result.Stats.FallbackCount > 0 {
				printWarning("%d connections fell back to direct traces", result.Stats.FallbackCount)
			}

			if svgOut != "" {
				if err := boardsvg.WriteFile(svgOut, result.Layout, boardsvg.WithLabels()); err != nil {
					return err
				}
				printFile(svgOut)
			}
			printNextStep("Check it", fmt.Sprintf("pcbforge drc %s", out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "layout.json", "output path for the routed layout")
	cmd.Flags().StringVar(&svgOut, "svg", "", "render a board preview SVG to this path")
	cmd.Flags().IntVar(&layers, "layers", pipeline.DefaultLayers, "number of copper layers")
	cmd.Flags().Float64Var(&resolution, "resolution", 0, "routing grid cell size in mm (0 = default)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the result cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching entirely")
	cmd.Flags().StringVar(&cacheBackend, "cache", "", "cache backend: redis:// URL or directory (env PCBFORGE_CACHE; default: user cache dir)")

	return cmd
}
