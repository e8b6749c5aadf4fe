package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pcbforge/pcbforge/pkg/cache"
	"github.com/pcbforge/pcbforge/pkg/pipeline"
	"github.com/pcbforge/pcbforge/pkg/render/boardsvg"
	"github.com/pcbforge/pcbforge/pkg/store"
)

// generateFlags holds all options for the generate command.
type generateFlags struct {
	out          string
	reportOut    string
	svgOut       string
	method       string
	iterations   int
	seed         int64
	layers       int
	resolution   float64
	rulesPath    string
	skipOptimize bool
	skipDRC      bool
	refresh      bool
	noCache      bool
	cacheBackend string
	mongoURI     string
	mongoDB      string
}

// newGenerateCmd creates the generate command, which runs the full
// pipeline: placement, net classification, routing, and rule checking.
func newGenerateCmd() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate <design.json>",
		Short: "Run the full place, route, and check pipeline",
		Long: `Generate reads a design document (components, connections, board spec),
optimizes component placement, routes every connection with A* search, and
checks the finished board against design rules.

Results are cached by design content and options; identical reruns return
the cached layout. Use --refresh to force recomputation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.out, "out", "o", "layout.json", "output path for the routed layout")
	cmd.Flags().StringVar(&flags.reportOut, "report", "", "output path for the DRC report (default: no file)")
	cmd.Flags().StringVar(&flags.svgOut, "svg", "", "render a board preview SVG to this path")
	cmd.Flags().StringVarP(&flags.method, "method", "m", pipeline.DefaultMethod, "placement method: anneal, force, both, or grid")
	cmd.Flags().IntVarP(&flags.iterations, "iterations", "n", 0, "placement iteration budget (0 = method default)")
	cmd.Flags().Int64Var(&flags.seed, "seed", pipeline.DefaultSeed, "random seed for reproducible placement")
	cmd.Flags().IntVar(&flags.layers, "layers", pipeline.DefaultLayers, "number of copper layers")
	cmd.Flags().Float64Var(&flags.resolution, "resolution", 0, "routing grid cell size in mm (0 = default)")
	cmd.Flags().StringVar(&flags.rulesPath, "rules", "", "TOML file with design rule overrides")
	cmd.Flags().BoolVar(&flags.skipOptimize, "skip-optimize", false, "keep input component positions")
	cmd.Flags().BoolVar(&flags.skipDRC, "skip-drc", false, "skip the design rule check")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "bypass the result cache")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable result caching entirely")
	cmd.Flags().StringVar(&flags.cacheBackend, "cache", "", "cache backend: redis:// URL or directory (env PCBFORGE_CACHE; default: user cache dir)")
	cmd.Flags().StringVar(&flags.mongoURI, "archive", "", "MongoDB URI to archive the run (optional)")
	cmd.Flags().StringVar(&flags.mongoDB, "archive-db", "", "MongoDB database name (default: pcbforge)")

	return cmd
}

func runGenerate(cmd *cobra.Command, designPath string, flags generateFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	design, err := loadDesign(designPath)
	if err != nil {
		return err
	}

	c, keyer, err := openCache(flags.noCache, flags.cacheBackend, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	runner := pipeline.NewRunner(c, keyer, logger)
	opts := pipeline.Options{
		Method:         flags.method,
		Iterations:     flags.iterations,
		Seed:           flags.seed,
		SkipOptimize:   flags.skipOptimize,
		GridResolution: flags.resolution,
		Layers:         flags.layers,
		RulesPath:      flags.rulesPath,
		SkipDRC:        flags.skipDRC,
		Refresh:        flags.refresh,
		Logger:         logger,
	}

	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Generating layout for %s", designPath))
	spin.Start()
	p := newProgress(logger)
	result, err := runner.Execute(ctx, design, opts)
	if err != nil {
		spin.StopWithError(fmt.Sprintf("Generation failed: %v", err))
		return err
	}
	spin.Stop()
	p.done(fmt.Sprintf("Generated layout %s", result.Layout.RunID))

	if err := writeJSON(flags.out, result.Layout); err != nil {
		return err
	}
	printSuccess("Layout written")
	printFile(flags.out)

	violations := 0
	if result.Report != nil {
		violations = result.Report.Total
		if flags.reportOut != "" {
			if err := writeJSON(flags.reportOut, result.Report); err != nil {
				return err
			}
			printFile(flags.reportOut)
		}
	}
	if flags.svgOut != "" {
		if err := boardsvg.WriteFile(flags.svgOut, result.Layout, boardsvg.WithLabels()); err != nil {
			return err
		}
		printFile(flags.svgOut)
	}

	printRunStats(result.Stats.RoutedCount, result.Stats.FallbackCount, violations, result.CacheInfo.LayoutHit)

	if flags.mongoURI != "" {
		if err := archiveRun(cmd, flags, result); err != nil {
			return err
		}
	}

	if result.Report != nil && !result.Report.Passed {
		printWarning("Design rule check found %d violations", violations)
		printNextStep("Inspect them", fmt.Sprintf("pcbforge drc %s --interactive", flags.out))
	}
	return nil
}

// cacheEnvVar selects the cache backend when --cache is not given.
const cacheEnvVar = "PCBFORGE_CACHE"

// openCache selects the result cache backend. A redis:// URL opens a
// shared Redis cache with a namespaced keyer so several tools can share
// one instance; any other non-empty value is used as a cache directory;
// empty falls back to the user cache dir. A nil keyer tells the runner to
// use its default.
func openCache(disabled bool, backend string, logger *log.Logger) (cache.Cache, cache.Keyer, error) {
	if disabled {
		return cache.NewNullCache(), nil, nil
	}
	if backend == "" {
		backend = os.Getenv(cacheEnvVar)
	}
	if isRedisURL(backend) {
		logger.Debug("using shared redis cache", "url", backend)
		c, err := cache.NewRedisCache(backend)
		if err != nil {
			return nil, nil, err
		}
		return c, cache.NewScopedKeyer(nil, "pcbforge:"), nil
	}

	dir := backend
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return nil, nil, fmt.Errorf("resolving cache dir: %w", err)
		}
	}
	logger.Debug("using result cache", "dir", dir)
	c, err := cache.NewFileCache(dir)
	return c, nil, err
}

// isRedisURL reports whether s names a Redis endpoint.
func isRedisURL(s string) bool {
	return strings.HasPrefix(s, "redis://") || strings.HasPrefix(s, "rediss://")
}

// archiveRun stores the finished run in MongoDB.
func archiveRun(cmd *cobra.Command, flags generateFlags, result *pipeline.Result) error {
	ctx := cmd.Context()
	st, err := store.NewMongoStore(ctx, flags.mongoURI, flags.mongoDB)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	run := store.NewRun(result.Layout, result.Report, result.DesignHash)
	if err := st.SaveRun(ctx, run); err != nil {
		return err
	}
	printSuccess("Run archived")
	printDetail("run_id: %s", run.RunID)
	return nil
}
