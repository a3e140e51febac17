package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"streamsift/internal/textutil"
)

func newSanitizeCommand(ctx *commandContext) *cobra.Command {
	var dataDir string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "sanitize",
		Short: "Produce a redacted copy of the export archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			outDir := strings.TrimSpace(outputDir)
			if outDir == "" {
				outDir = cfg.Paths.OutputDir
			}

			res, err := executeSanitize(cmd.Context(), cfg, resolveDir(dataDir, cfg.Paths.DataDir), outDir, sanitizeReportPath(outDir), logger)
			if err != nil {
				return fmt.Errorf("sanitize: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Processed %d files: %d sanitized, %d skipped, %s redactions\n",
				res.FilesProcessed, res.FilesSanitized, res.FilesSkipped, textutil.FormatCount(int64(res.TotalRedactions)))
			fmt.Fprintf(out, "Safe datasets: %s streams, %d playlists\n",
				textutil.FormatCount(int64(res.SafeStreams)), res.SafePlaylists)
			fmt.Fprintf(out, "Sanitized copy written to %s\n", outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory containing the export archive")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for the sanitized copy")
	return cmd
}
