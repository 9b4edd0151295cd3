package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/surplus/internal/report"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	City string
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report <name>",
		Short: "Run an aggregate report",
		Long: `Run one of the fifteen fixed aggregate reports by name.

Use "surplus report list" to enumerate the reports. The
provider-contacts report requires --city.

Reports are read-only and computed from the current table state on
every run. Single-row reports fail with "empty dataset" when the
tables they aggregate over hold no qualifying rows.

Examples:
  surplus report list
  surplus report total-listed-quantity
  surplus report provider-contacts --city Austin
  surplus report claim-status-percentages --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.City, "city", "", "city filter (provider-contacts only)")
	return cmd
}

func runReport(opts *ReportOptions, cmd *cobra.Command, name string) error {
	if name == "list" {
		return listReports(opts, cmd)
	}

	spec, ok := report.Lookup(name)
	if !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown report %q (try: surplus report list)", name))
	}
	if spec.NeedsCity && opts.City == "" {
		return NewExitError(ExitCommandError, fmt.Sprintf("report %s requires --city", name))
	}

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	table, err := report.NewEngine(st).Run(cmd.Context(), name, opts.City)
	if err != nil {
		if errors.Is(err, report.ErrEmptyDataset) {
			return WrapExitError(ExitFailure, fmt.Sprintf("report %s", name), err)
		}
		return storeErr(fmt.Sprintf("report %s", name), err)
	}

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(table)
	}
	return table.Render(cmd.OutOrStdout())
}

func listReports(opts *ReportOptions, cmd *cobra.Command) error {
	catalog := report.Catalog()

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(catalog)
	}

	t := &report.Table{Columns: []string{"name", "description"}}
	for _, spec := range catalog {
		desc := spec.Description
		if spec.NeedsCity {
			desc += " (requires --city)"
		}
		t.Rows = append(t.Rows, []string{spec.Name, desc})
	}
	return t.Render(cmd.OutOrStdout())
}
