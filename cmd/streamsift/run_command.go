package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"streamsift/internal/config"
	"streamsift/internal/pipeline"
	"streamsift/internal/runlog"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: merge, scan, sanitize, report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			ledger, err := runlog.Open(ledgerPath(cfg))
			if err != nil {
				return fmt.Errorf("open run ledger: %w", err)
			}
			defer func() {
				if closeErr := ledger.Close(); closeErr != nil {
					logger.Warn("failed to close run ledger", "error", closeErr)
				}
			}()

			dir := resolveDir(dataDir, cfg.Paths.DataDir)
			stages := pipelineStages(cfg, dir, logger)
			runner := pipeline.NewRunner(stages, lockPath(cfg), dir, ledger, logger)

			summary, runErr := runner.Run(cmd.Context())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s %s\n", summary.RunID, summary.Status)
			for _, name := range summary.Order {
				outcome := summary.Stages[name]
				line := fmt.Sprintf("  %-10s %s", name, outcome.Status)
				if outcome.Error != "" {
					line += ": " + outcome.Error
				}
				fmt.Fprintln(out, line)
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory containing the export archive")
	return cmd
}

// pipelineStages wires the stage helpers into the runner, folding each
// stage's headline numbers into the ledger counters.
func pipelineStages(cfg *config.Config, dataDir string, logger *slog.Logger) []pipeline.Stage {
	return []pipeline.Stage{
		pipeline.StageFunc{
			StageName: "merge",
			Func: func(stageCtx context.Context) (pipeline.StageResult, error) {
				res, err := executeMerge(stageCtx, dataDir, mergedPath(cfg), logger)
				return pipeline.StageResult{Counters: map[string]int{
					"files_processed": res.FilesProcessed,
					"total_streams":   res.TotalStreams,
					"playlists":       res.Playlists,
					"invalid_dropped": res.InvalidDropped,
				}}, err
			},
		},
		pipeline.StageFunc{
			StageName: "scan",
			Func: func(stageCtx context.Context) (pipeline.StageResult, error) {
				report, err := executeScan(stageCtx, cfg, dataDir, privacyReportPath(cfg), logger)
				counters := map[string]int{}
				if report != nil {
					counters["files_analyzed"] = report.FilesAnalyzed
					counters["safe_files"] = len(report.SafeFiles)
					counters["risky_files"] = len(report.RiskyFiles)
				}
				return pipeline.StageResult{Counters: counters}, err
			},
		},
		pipeline.StageFunc{
			StageName: "sanitize",
			Func: func(stageCtx context.Context) (pipeline.StageResult, error) {
				res, err := executeSanitize(stageCtx, cfg, dataDir, cfg.Paths.OutputDir, sanitizeReportPath(cfg.Paths.OutputDir), logger)
				return pipeline.StageResult{Counters: map[string]int{
					"files_processed":  res.FilesProcessed,
					"files_sanitized":  res.FilesSanitized,
					"total_redactions": res.TotalRedactions,
					"safe_streams":     res.SafeStreams,
				}}, err
			},
		},
		pipeline.StageFunc{
			StageName: "report",
			Func: func(stageCtx context.Context) (pipeline.StageResult, error) {
				rep, err := executeReport(stageCtx, cfg, reporterPaths(cfg), diagnosticPath(cfg), logger)
				counters := map[string]int{}
				if rep != nil {
					counters["total_streams"] = rep.Summary.TotalStreams
					counters["unique_artists"] = rep.Summary.UniqueArtists
					counters["total_playlists"] = rep.Summary.TotalPlaylists
				}
				return pipeline.StageResult{Counters: counters}, err
			},
		},
	}
}
