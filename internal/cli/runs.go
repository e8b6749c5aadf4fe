package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/pcbforge/pcbforge/pkg/store"
)

// newRunsCmd creates the runs command for browsing the MongoDB archive
// written by "generate --archive".
func newRunsCmd() *cobra.Command {
	var (
		uri      string
		database string
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Browse archived pipeline runs",
		Long: `Runs lists, fetches, and deletes layouts archived in MongoDB by
"pcbforge generate --archive". Listings are cheap: they omit the layout
payload and show only the run summary.`,
	}
	cmd.PersistentFlags().StringVar(&uri, "archive", "", "MongoDB URI of the run archive (required)")
	cmd.PersistentFlags().StringVar(&database, "archive-db", "", "MongoDB database name (default: pcbforge)")
	_ = cmd.MarkPersistentFlagRequired("archive")

	cmd.AddCommand(newRunsListCmd(&uri, &database))
	cmd.AddCommand(newRunsShowCmd(&uri, &database))
	cmd.AddCommand(newRunsDeleteCmd(&uri, &database))

	return cmd
}

func newRunsListCmd(uri, database *string) *cobra.Command {
	var (
		design string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := store.NewMongoStore(ctx, *uri, *database)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			summaries, err := st.ListRuns(ctx, design, limit)
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				printInfo("No archived runs")
				return nil
			}
			printRunTable(summaries)
			return nil
		},
	}
	cmd.Flags().StringVar(&design, "design", "", "only list runs for this design name")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list (0 = all)")

	return cmd
}

func newRunsShowCmd(uri, database *string) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Fetch one archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := store.NewMongoStore(ctx, *uri, *database)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			run, err := st.LoadRun(ctx, args[0])
			if err != nil {
				return err
			}

			if out != "" {
				if err := writeJSON(out, run); err != nil {
					return err
				}
				printSuccess("Run written")
				printFile(out)
				return nil
			}

			printKeyValue("run_id", run.RunID)
			printKeyValue("design", run.Design)
			printKeyValue("created", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			if run.Layout != nil {
				printKeyValue("routes", fmt.Sprintf("%d", len(run.Layout.Routes)))
				printKeyValue("tracks", fmt.Sprintf("%d", len(run.Layout.Tracks)))
			}
			if run.Report != nil {
				printKeyValue("violations", fmt.Sprintf("%d", run.Report.Total))
			}
			printNextStep("Export it", fmt.Sprintf("pcbforge runs show %s --archive <uri> --out layout.json", run.RunID))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the full run as JSON to this path")

	return cmd
}

func newRunsDeleteCmd(uri, database *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := store.NewMongoStore(ctx, *uri, *database)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if err := st.DeleteRun(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Run deleted")
			printDetail("run_id: %s", args[0])
			return nil
		},
	}
}

// printRunTable renders archive summaries as a table.
func printRunTable(summaries []store.Summary) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for _, s := range summaries {
		status := "passed"
		if !s.Passed {
			status = fmt.Sprintf("%d violations", s.Violations)
		}
		rows = append(rows, []string{
			s.RunID,
			s.Design,
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			status,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Run", "Design", "Created", "DRC").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 3 {
				return StyleHighlight
			}
			return StyleValue
		})

	fmt.Println(t.Render())
}
