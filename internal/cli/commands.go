package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"disruption-stats-go/internal/chart"
	"disruption-stats-go/internal/dashboard"
	"disruption-stats-go/internal/export"
)

func newSeriesCommand(opts *options) *cobra.Command {
	var (
		year    string
		mode    string
		compact int
		dark    bool
	)
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Print the chart descriptor for one year and chart type",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := chart.ParseMode(mode)
			if err != nil {
				return err
			}
			svc, err := opts.service()
			if err != nil {
				return err
			}
			v, err := svc.Render(cmd.Context(), dashboard.NewRenderContext(dark), dashboard.Selection{Year: year, Mode: m, Compact: compact})
			if err != nil {
				return err
			}
			if v.NoData {
				fmt.Fprintln(cmd.ErrOrStderr(), v.Message)
			}
			return printJSON(cmd.OutOrStdout(), v)
		},
	}
	cmd.Flags().StringVarP(&year, "year", "y", "2024", "Year to aggregate")
	cmd.Flags().StringVarP(&mode, "mode", "m", chart.Monthly.String(), "Chart type: monthly, causes, causesPerMonth or map")
	cmd.Flags().IntVarP(&compact, "compact", "c", 0, "Keep only the top N causes in causesPerMonth (0 keeps all)")
	cmd.Flags().BoolVar(&dark, "dark", false, "Use dark mode colors")
	return cmd
}

func newSummaryCommand(opts *options) *cobra.Command {
	var year string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print headline numbers for one year",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			sum, err := svc.Summary(cmd.Context(), year)
			if err != nil {
				return fmt.Errorf("no data available for %s: %w", year, err)
			}
			return printJSON(cmd.OutOrStdout(), sum)
		},
	}
	cmd.Flags().StringVarP(&year, "year", "y", "2024", "Year to summarize")
	return cmd
}

func newExportCommand(opts *options) *cobra.Command {
	var (
		year   string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every series of one year to an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			ys, err := svc.YearSeries(cmd.Context(), year)
			if err != nil {
				return fmt.Errorf("no data available for %s: %w", year, err)
			}
			if output == "" {
				output = fmt.Sprintf("treinstoringen-%s.xlsx", year)
			}
			err = writeFile(output, func(w io.Writer) error {
				return export.WriteWorkbook(w, year, ys.Monthly, ys.Causes, ys.PerMonth)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", year, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&year, "year", "y", "2024", "Year to export")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default treinstoringen-<year>.xlsx)")
	return cmd
}

// writeFile creates path and fills it with write. The file is removed when
// writing or closing fails, so no truncated output is left behind.
func writeFile(path string, write func(io.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
		if err != nil {
			err = errors.Join(err, removeIfExists(path))
		}
	}()
	return write(file)
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove partial output: %w", err)
	}
	return nil
}
