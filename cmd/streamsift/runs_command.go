package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"streamsift/internal/runlog"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent pipeline runs",
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

			runs, err := ledger.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				finished := ""
				if !run.FinishedAt.IsZero() {
					finished = run.FinishedAt.Local().Format("2006-01-02 15:04:05")
				}
				rows = append(rows, []string{
					run.ID,
					run.Status,
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					finished,
					strconv.Itoa(len(run.Stages)),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Run", "Status", "Started", "Finished", "Stages"}, rows, 4))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}
