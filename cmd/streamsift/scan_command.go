package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var dataDir string
	var output string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the export archive for sensitive data",
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
				outputPath = privacyReportPath(cfg)
			}

			report, err := executeScan(cmd.Context(), cfg, resolveDir(dataDir, cfg.Paths.DataDir), outputPath, logger)
			if err != nil {
				return fmt.Errorf("scan: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd, report.Summarize())
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Analyzed %d files: %d safe, %d need review\n",
				report.FilesAnalyzed, len(report.SafeFiles), len(report.RiskyFiles))
			for _, risky := range report.RiskyFiles {
				fmt.Fprintf(out, "  %s (%d issues)\n", risky.File, len(risky.Issues))
			}
			if len(report.Recommendations) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Recommendations:")
				for _, rec := range report.Recommendations {
					fmt.Fprintf(out, "  - %s\n", rec)
				}
			}
			fmt.Fprintf(out, "\nReport written to %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory containing the export archive")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Path for the scan report")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit a JSON summary instead of text")
	return cmd
}
