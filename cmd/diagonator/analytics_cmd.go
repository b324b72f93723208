package main

import (
	"fmt"

	"github.com/spf13/cobra"

	analyticsinadapter "diagonator/internal/modules/analytics/adapter/in"
	analyticsdomain "diagonator/internal/modules/analytics/domain"
)

func newAnalyticsCmd() *cobra.Command {
	analytics := &cobra.Command{Use: "analytics", Short: "Summarize the event log"}
	analytics.AddCommand(newAnalyticsDeactivationsCmd(), newAnalyticsRequirementsCmd(), newAnalyticsServeCmd())
	return analytics
}

type rangeFlags struct {
	from, to string
	output   string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "first date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&f.to, "to", "", "last date, YYYY-MM-DD (required)")
	cmd.Flags().StringVarP(&f.output, "output", "o", outputText, "output format: text|json")
}

// check rejects bad flags before the store is opened.
func (f *rangeFlags) check() error {
	if err := checkOutput(f.output, outputText, outputJSON); err != nil {
		return err
	}
	_, err := analyticsdomain.ParseDateRange(f.from, f.to)
	return err
}

func newAnalyticsDeactivationsCmd() *cobra.Command {
	var flags rangeFlags
	cmd := &cobra.Command{
		Use:   "deactivations",
		Short: "Hourly histogram of deactivations by reason",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := flags.check(); err != nil {
				return err
			}
			app, err := loadApp(cmd, false)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.AnalyticsCLI.Deactivations(cmd.Context(), flags.from, flags.to)
			if err != nil {
				return err
			}
			if flags.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), analyticsinadapter.RenderDeactivations(out))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newAnalyticsRequirementsCmd() *cobra.Command {
	var flags rangeFlags
	cmd := &cobra.Command{
		Use:   "requirements",
		Short: "Completion times and medians per requirement",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := flags.check(); err != nil {
				return err
			}
			app, err := loadApp(cmd, false)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.AnalyticsCLI.Requirements(cmd.Context(), flags.from, flags.to)
			if err != nil {
				return err
			}
			if flags.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), analyticsinadapter.RenderRequirements(out))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newAnalyticsServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve charts and JSON over HTTP",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, false)
			if err != nil {
				return err
			}
			defer app.Close()
			return app.Serve(cmd.Context())
		},
	}
}
