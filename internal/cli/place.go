package cli

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/pcbforge/pcbforge/pkg/pipeline"
	"github.com/pcbforge/pcbforge/pkg/place"
)

// newPlaceCmd creates the place command, which optimizes component
// positions without routing anything.
func newPlaceCmd() *cobra.Command {
	var (
		out        string
		method     string
		iterations int
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "place <design.json>",
		Short: "Optimize component placement only",
		Long: `Place reads a design document and optimizes component positions against
total connection wirelength, then writes the design back out with the new
positions. Use this to inspect or hand-tune placement before routing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			design, err := loadDesign(args[0])
			if err != nil {
				return err
			}
			if !pipeline.ValidMethods[method] {
				return fmt.Errorf("invalid method: %q (must be one of: anneal, force, both, grid)", method)
			}

			p := newProgress(logger)
			opt := place.New(design)
			result := opt.Run(place.Method(method), iterations, rand.New(rand.NewSource(seed)))
			design.Components = result.Components
			p.done(fmt.Sprintf("Placed %d components", len(result.Components)))

			if err := writeJSON(out, design); err != nil {
				return err
			}

			printSuccess("Placement written")
			printFile(out)
			printKeyValue("method", string(result.Method))
			printKeyValue("wirelength", fmt.Sprintf("%.1fmm → %.1fmm", result.Initial, result.Final))
			printKeyValue("improvement", fmt.Sprintf("%.1f%%", result.Improvement()))
			if len(result.Trace) > 0 {
				s := result.Summarize()
				printKeyValue("cost mean", fmt.Sprintf("%.1fmm", s.Mean))
				printKeyValue("cost stddev", fmt.Sprintf("%.2fmm", s.StdDev))
			}
			printNextStep("Route it", fmt.Sprintf("pcbforge generate %s --skip-optimize", out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "placed.json", "output path for the placed design")
	cmd.Flags().StringVarP(&method, "method", "m", pipeline.DefaultMethod, "placement method: anneal, force, both, or grid")
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 0, "iteration budget (0 = method default)")
	cmd.Flags().Int64Var(&seed, "seed", pipeline.DefaultSeed, "random seed for reproducible placement")

	return cmd
}
