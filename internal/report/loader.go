package report

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"streamsift/internal/export"
	"streamsift/internal/jsonio"
	"streamsift/internal/merge"
	"streamsift/internal/privacy"
	"streamsift/internal/sanitize"
)

// Paths locates the reporter's inputs. Every path is optional; missing
// files simply leave their section empty.
type Paths struct {
	MergedFile         string
	SafeDir            string
	PrivacyReport      string
	SanitizationReport string
}

// DefaultPaths derives the conventional input locations from the pipeline's
// output and report directories.
func DefaultPaths(outputDir, reportDir string) Paths {
	return Paths{
		MergedFile:         filepath.Join(outputDir, merge.DefaultOutputFile),
		SafeDir:            outputDir,
		PrivacyReport:      filepath.Join(reportDir, privacy.DefaultReportFile),
		SanitizationReport: filepath.Join(outputDir, sanitize.DefaultReportFile),
	}
}

// Dataset is the listening data the analyses run over.
type Dataset struct {
	Streams   []export.StreamingRecord
	Playlists []export.Playlist
	Source    string
}

// Dataset source labels.
const (
	SourceMerged = "merged"
	SourceSafe   = "safe"
	SourceNone   = "none"
)

// mergedDocument is the subset of the merged file the reporter needs. The
// playlists pass through merging untyped, so they decode individually here.
type mergedDocument struct {
	StreamingHistory []export.StreamingRecord `json:"streaming_history"`
	Playlists        []json.RawMessage        `json:"playlists"`
}

// loadDataset prefers the merged document and falls back to the safe
// datasets when it is absent.
func loadDataset(paths Paths, logger *slog.Logger) Dataset {
	if fileExists(paths.MergedFile) {
		var doc mergedDocument
		if err := jsonio.ReadFile(paths.MergedFile, &doc); err != nil {
			logger.Warn("merged data unreadable, falling back to safe datasets",
				slog.String("path", paths.MergedFile), slog.Any("error", err))
		} else {
			ds := Dataset{
				Streams:   doc.StreamingHistory,
				Playlists: decodePlaylists(doc.Playlists, logger),
				Source:    SourceMerged,
			}
			logger.Info("loaded merged data",
				slog.Int("streams", len(ds.Streams)),
				slog.Int("playlists", len(ds.Playlists)))
			return ds
		}
	}

	ds := Dataset{Source: SourceSafe}
	safeStreaming := filepath.Join(paths.SafeDir, sanitize.SafeStreamingFile)
	if fileExists(safeStreaming) {
		if err := jsonio.ReadFile(safeStreaming, &ds.Streams); err != nil {
			logger.Warn("safe streaming history unreadable",
				slog.String("path", safeStreaming), slog.Any("error", err))
		}
	}
	safePlaylists := filepath.Join(paths.SafeDir, sanitize.SafePlaylistsFile)
	if fileExists(safePlaylists) {
		var doc struct {
			Playlists []export.Playlist `json:"playlists"`
		}
		if err := jsonio.ReadFile(safePlaylists, &doc); err != nil {
			logger.Warn("safe playlists unreadable",
				slog.String("path", safePlaylists), slog.Any("error", err))
		} else {
			ds.Playlists = doc.Playlists
		}
	}
	if len(ds.Streams) == 0 && len(ds.Playlists) == 0 {
		ds.Source = SourceNone
	}
	logger.Info("loaded safe datasets",
		slog.Int("streams", len(ds.Streams)),
		slog.Int("playlists", len(ds.Playlists)))
	return ds
}

func decodePlaylists(raw []json.RawMessage, logger *slog.Logger) []export.Playlist {
	playlists := make([]export.Playlist, 0, len(raw))
	for _, message := range raw {
		var playlist export.Playlist
		if err := json.Unmarshal(message, &playlist); err != nil {
			logger.Warn("skipping undecodable playlist", slog.Any("error", err))
			continue
		}
		playlists = append(playlists, playlist)
	}
	return playlists
}

// loadPrivacySummary reads the scanner and sanitizer reports when present.
func loadPrivacySummary(paths Paths, logger *slog.Logger) PrivacySummary {
	var summary PrivacySummary
	if fileExists(paths.PrivacyReport) {
		var scan privacy.Report
		if err := jsonio.ReadFile(paths.PrivacyReport, &scan); err != nil {
			logger.Warn("privacy report unreadable",
				slog.String("path", paths.PrivacyReport), slog.Any("error", err))
		} else {
			condensed := scan.Summarize()
			summary.FilesAnalyzed = condensed.FilesAnalyzed
			summary.SafeFiles = condensed.SafeFiles
			summary.RiskyFiles = condensed.RiskyFiles
			summary.Recommendations = condensed.Recommendations
		}
	}
	if fileExists(paths.SanitizationReport) {
		var san sanitize.Report
		if err := jsonio.ReadFile(paths.SanitizationReport, &san); err != nil {
			logger.Warn("sanitization report unreadable",
				slog.String("path", paths.SanitizationReport), slog.Any("error", err))
		} else {
			summary.Sanitization = &SanitizationSummary{
				FilesProcessed:  san.Stats.FilesProcessed,
				FilesSanitized:  san.Stats.FilesSanitized,
				TotalRedactions: san.Stats.TotalRedactions,
			}
		}
	}
	return summary
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
