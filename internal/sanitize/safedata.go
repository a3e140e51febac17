package sanitize

import (
	"context"
	"log/slog"
	"path/filepath"

	"streamsift/internal/export"
	"streamsift/internal/jsonio"
)

type safePlaylistsDocument struct {
	Playlists []export.Playlist `json:"playlists"`
}

// buildSafeStreamingHistory re-reads every streaming history file and writes
// a single flat array holding only the five safe fields. Incomplete records
// are dropped.
func (s *Sanitizer) buildSafeStreamingHistory(ctx context.Context) (int, error) {
	records := []export.StreamingRecord{}

	for _, path := range export.StreamingHistoryFiles(s.dataDir) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		var entries []export.RawStreamingEntry
		if err := jsonio.ReadFile(path, &entries); err != nil {
			s.logger.Warn("skipping unreadable streaming file",
				slog.String("file", filepath.Base(path)), slog.Any("error", err))
			continue
		}
		for _, entry := range entries {
			if record, ok := entry.Clean(); ok {
				records = append(records, record)
			}
		}
	}

	outPath := filepath.Join(s.outputDir, SafeStreamingFile)
	if err := jsonio.WriteFileAtomic(outPath, records); err != nil {
		return 0, err
	}
	s.logger.Info("safe streaming history saved",
		slog.Int("records", len(records)), slog.String("path", outPath))
	return len(records), nil
}

// buildSafePlaylists re-reads every playlist file and writes the reduced
// playlist document, with item tracks flattened out of their nested form.
func (s *Sanitizer) buildSafePlaylists(ctx context.Context) (int, error) {
	doc := safePlaylistsDocument{Playlists: []export.Playlist{}}

	for _, path := range export.PlaylistFiles(s.dataDir) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		var file struct {
			Playlists []export.Playlist `json:"playlists"`
		}
		if err := jsonio.ReadFile(path, &file); err != nil {
			s.logger.Warn("skipping unreadable playlist file",
				slog.String("file", filepath.Base(path)), slog.Any("error", err))
			continue
		}
		for _, playlist := range file.Playlists {
			if playlist.Items == nil {
				playlist.Items = []export.PlaylistItem{}
			}
			doc.Playlists = append(doc.Playlists, playlist)
		}
	}

	outPath := filepath.Join(s.outputDir, SafePlaylistsFile)
	if err := jsonio.WriteFileAtomic(outPath, doc); err != nil {
		return 0, err
	}
	s.logger.Info("safe playlists saved",
		slog.Int("playlists", len(doc.Playlists)), slog.String("path", outPath))
	return len(doc.Playlists), nil
}
