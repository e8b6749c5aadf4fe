package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pcbforge/pcbforge/pkg/buildinfo"
)

// Execute runs the pcbforge CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "pcbforge",
		Short:        "pcbforge places and routes printed circuit boards",
		Long:         `pcbforge is a CLI tool that turns a component and connection list into a routed board layout: it optimizes placement, classifies nets, routes copper with A* search, and checks the result against design rules.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newPlaceCmd())
	root.AddCommand(newRouteCmd())
	root.AddCommand(newNetsCmd())
	root.AddCommand(newDRCCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newRunsCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
