package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var output string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the diagnostic report and dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			outputPath := strings.TrimSpace(output)
			if outputPath == "" {
				outputPath = diagnosticPath(cfg)
			}

			rep, err := executeReport(cmd.Context(), cfg, reporterPaths(cfg), outputPath, logger)
			if err != nil {
				return fmt.Errorf("report: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd, rep)
			}

			renderDashboard(cmd.OutOrStdout(), rep)
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Path for the diagnostic report")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON instead of the dashboard")
	return cmd
}
