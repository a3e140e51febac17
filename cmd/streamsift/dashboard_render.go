package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"streamsift/internal/report"
	"streamsift/internal/textutil"
)

const (
	ansiReset = "\x1b[0m"
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiBlue  = "\x1b[34m"
)

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func renderPrivacyStatus(status string, colorize bool) string {
	if !colorize {
		return status
	}
	switch status {
	case report.StatusSafe:
		return ansiGreen + "✅ " + status + ansiReset
	case report.StatusNeedsReview:
		return ansiRed + "⚠️  " + status + ansiReset
	default:
		return status
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// renderDashboard writes the full console view of a diagnostic report.
func renderDashboard(w io.Writer, rep *report.Report) {
	colorize := shouldColorize(w)

	for _, line := range renderSectionHeader("Listening Summary", colorize) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "  Streams:        %s\n", textutil.FormatCount(int64(rep.Summary.TotalStreams)))
	fmt.Fprintf(w, "  Listening time: %.2f hours\n", rep.Summary.TotalListeningTimeHours)
	fmt.Fprintf(w, "  Unique artists: %s\n", textutil.FormatCount(int64(rep.Summary.UniqueArtists)))
	fmt.Fprintf(w, "  Unique tracks:  %s\n", textutil.FormatCount(int64(rep.Summary.UniqueTracks)))
	fmt.Fprintf(w, "  Playlists:      %d\n", rep.Summary.TotalPlaylists)
	if rep.Streaming.DateRange.Days > 0 {
		fmt.Fprintf(w, "  Date range:     %s to %s (%d days, %.1f streams/day)\n",
			rep.Streaming.DateRange.Start, rep.Streaming.DateRange.End,
			rep.Streaming.DateRange.Days, rep.Summary.AvgStreamsPerDay)
	}
	fmt.Fprintf(w, "  Privacy:        %s\n", renderPrivacyStatus(rep.Summary.PrivacyStatus, colorize))
	fmt.Fprintln(w)

	if len(rep.Artists.TopByStreams) > 0 {
		for _, line := range renderSectionHeader("Top Artists", colorize) {
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w, renderTable(
			[]string{"#", "Artist", "Streams", "Hours"},
			artistRows(rep.Artists.TopByStreams), 0, 2, 3))
		fmt.Fprintf(w, "  %d artists in the top 10%% account for %.1f%% of streams\n\n",
			rep.Artists.Diversity.Top10PercentArtists, rep.Artists.Diversity.ConcentrationRatio)
	}

	if len(rep.Tracks.TopByStreams) > 0 {
		for _, line := range renderSectionHeader("Top Tracks", colorize) {
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w, renderTable(
			[]string{"#", "Track", "Streams", "Hours"},
			trackRows(rep.Tracks.TopByStreams), 0, 2, 3))
		fmt.Fprintln(w)
	}

	if len(rep.Playlists.TopPlaylists) > 0 {
		for _, line := range renderSectionHeader("Top Playlists", colorize) {
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w, renderTable(
			[]string{"Playlist", "Followers", "Tracks"},
			playlistRows(rep.Playlists.TopPlaylists), 1, 2))
		fmt.Fprintln(w)
	}

	if rep.Streaming.TotalStreams > 0 {
		for _, line := range renderSectionHeader("Peak Listening", colorize) {
			fmt.Fprintln(w, line)
		}
		peak := rep.Temporal.PeakListening
		fmt.Fprintf(w, "  Hour:  %02d:00 (%s streams)\n", peak.Hour, textutil.FormatCount(int64(peak.PeakHourStreams)))
		fmt.Fprintf(w, "  Day:   %s (%s streams)\n", peak.Day, textutil.FormatCount(int64(peak.PeakDayStreams)))
		fmt.Fprintf(w, "  Month: %s (%s streams)\n", peak.Month, textutil.FormatCount(int64(peak.PeakMonthStreams)))
		fmt.Fprintln(w)
	}

	renderPrivacyBlock(w, &rep.Privacy, colorize)
}

func renderPrivacyBlock(w io.Writer, privacy *report.PrivacySummary, colorize bool) {
	if privacy.FilesAnalyzed == 0 && privacy.Sanitization == nil {
		return
	}
	for _, line := range renderSectionHeader("Privacy", colorize) {
		fmt.Fprintln(w, line)
	}
	if privacy.FilesAnalyzed > 0 {
		fmt.Fprintf(w, "  Files analyzed: %d (%d safe, %d need review)\n",
			privacy.FilesAnalyzed, privacy.SafeFiles, privacy.RiskyFiles)
	}
	if san := privacy.Sanitization; san != nil {
		fmt.Fprintf(w, "  Sanitized:      %d of %d files, %s redactions\n",
			san.FilesSanitized, san.FilesProcessed, textutil.FormatCount(int64(san.TotalRedactions)))
	}
	for _, rec := range privacy.Recommendations {
		fmt.Fprintf(w, "  - %s\n", rec)
	}
}

func artistRows(rankings []report.ArtistRanking) [][]string {
	rows := make([][]string, 0, len(rankings))
	for i, r := range rankings {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			r.Artist,
			textutil.FormatCount(int64(r.Streams)),
			fmt.Sprintf("%.1f", r.TimeHours),
		})
	}
	return rows
}

func trackRows(rankings []report.TrackRanking) [][]string {
	rows := make([][]string, 0, len(rankings))
	for i, r := range rankings {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			r.Track,
			textutil.FormatCount(int64(r.Streams)),
			fmt.Sprintf("%.1f", r.TimeHours),
		})
	}
	return rows
}

func playlistRows(rankings []report.PlaylistRanking) [][]string {
	rows := make([][]string, 0, len(rankings))
	for _, r := range rankings {
		rows = append(rows, []string{
			r.Name,
			textutil.FormatCount(int64(r.Followers)),
			strconv.Itoa(r.Tracks),
		})
	}
	return rows
}
