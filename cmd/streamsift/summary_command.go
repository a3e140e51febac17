package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"streamsift/internal/report"
	"streamsift/internal/textutil"
)

func newSummaryCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show a quick overview of the processed data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			reporter := report.New(reporterPaths(cfg), reportOptions(cfg), logger)
			summary := reporter.QuickSummary()
			out := cmd.OutOrStdout()

			if !summary.HasData {
				fmt.Fprintln(out, "No processed data found. Run merge or sanitize first.")
				return nil
			}

			fmt.Fprintf(out, "Streams:  %s (%.1f hours over %.1f days of playback)\n",
				textutil.FormatCount(int64(summary.TotalStreams)), summary.TotalHours, summary.TotalDays)
			fmt.Fprintf(out, "Library:  %s artists, %s tracks\n",
				textutil.FormatCount(int64(summary.UniqueArtists)), textutil.FormatCount(int64(summary.UniqueTracks)))
			if summary.TotalPlaylists > 0 {
				fmt.Fprintf(out, "Playlists: %d with %s followers\n",
					summary.TotalPlaylists, textutil.FormatCount(int64(summary.TotalFollowers)))
			}
			if len(summary.TopArtists) > 0 {
				fmt.Fprintln(out, "\nTop artists:")
				for i, artist := range summary.TopArtists {
					fmt.Fprintf(out, "  %d. %s (%s streams)\n",
						i+1, artist.Artist, textutil.FormatCount(int64(artist.Streams)))
				}
			}
			if summary.Privacy != nil {
				fmt.Fprintf(out, "\nPrivacy: %s (%d files analyzed, %d need review)\n",
					renderPrivacyStatus(summary.PrivacyStatus, shouldColorize(out)),
					summary.Privacy.FilesAnalyzed, summary.Privacy.RiskyFiles)
			}
			return nil
		},
	}
	return cmd
}
