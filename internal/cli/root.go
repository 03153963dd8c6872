package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"disruption-stats-go/internal/dashboard"
	"disruption-stats-go/internal/dataset"
	"disruption-stats-go/internal/logger"
)

type options struct {
	dataDir  string
	timezone string
}

func (o *options) service() (*dashboard.Service, error) {
	loc, err := time.LoadLocation(o.timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", o.timezone, err)
	}
	return dashboard.NewService(dataset.NewFileSource(o.dataDir), loc, logger.Discard()), nil
}

// NewRootCommand builds the disruptionctl command tree writing to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "disruptionctl",
		Short: "Inspect yearly train disruption statistics",
		Long: `disruptionctl aggregates the yearly disruption files of the dashboard
and prints the chart series, summaries, or an xlsx export.`,
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&opts.dataDir, "data", "d", "Data", "Directory holding disruptions-<year>.json files")
	root.PersistentFlags().StringVar(&opts.timezone, "tz", "Europe/Amsterdam", "Timezone used to bucket timestamps into months")

	root.AddCommand(
		newYearsCommand(),
		newSeriesCommand(opts),
		newSummaryCommand(opts),
		newExportCommand(opts),
	)
	return root
}

func newYearsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "years",
		Short: "List the supported years, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, y := range dataset.Years {
				fmt.Fprintln(cmd.OutOrStdout(), y)
			}
			return nil
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
