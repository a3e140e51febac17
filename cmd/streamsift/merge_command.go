package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"streamsift/internal/textutil"
)

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var dataDir string
	var output string

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge the export archive into a single dataset",
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
				outputPath = mergedPath(cfg)
			}

			res, err := executeMerge(cmd.Context(), resolveDir(dataDir, cfg.Paths.DataDir), outputPath, logger)
			if err != nil {
				return fmt.Errorf("merge: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Merged %s streams from %d files (%d playlists, %d invalid records dropped)\n",
				textutil.FormatCount(int64(res.TotalStreams)), res.FilesProcessed, res.Playlists, res.InvalidDropped)
			if res.SkippedFiles > 0 {
				fmt.Fprintf(out, "Skipped %d unreadable files\n", res.SkippedFiles)
			}
			fmt.Fprintf(out, "Merged data written to %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory containing the export archive")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Path for the merged dataset")
	return cmd
}
