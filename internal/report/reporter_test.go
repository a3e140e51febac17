package report

import (
	"context"
	"path/filepath"
	"testing"

	"streamsift/internal/export"
	"streamsift/internal/jsonio"
	"streamsift/internal/logging"
	"streamsift/internal/merge"
	"streamsift/internal/privacy"
	"streamsift/internal/sanitize"
)

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	if err := jsonio.WriteFileAtomic(path, v); err != nil {
		t.Fatal(err)
	}
}

func TestReporterPrefersMergedData(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, merge.DefaultOutputFile), map[string]any{
		"streaming_history": []export.StreamingRecord{
			{TrackName: "One", ArtistName: "A", EndTime: "2024-01-01 10:00", MsPlayed: 3_600_000},
		},
		"playlists": []any{
			map[string]any{
				"name":              "Mix",
				"numberOfFollowers": 2,
				"items": []any{
					map[string]any{
						"track":   map[string]any{"trackName": "One", "artistName": "A"},
						"addedAt": "2024-01-01",
					},
				},
			},
		},
	})
	// Decoy safe dataset; the merged file must win.
	writeJSON(t, filepath.Join(dir, sanitize.SafeStreamingFile), []export.StreamingRecord{
		{TrackName: "Decoy", ArtistName: "B", EndTime: "2024-01-01 10:00", MsPlayed: 1},
		{TrackName: "Decoy2", ArtistName: "B", EndTime: "2024-01-01 10:00", MsPlayed: 1},
	})

	r := New(DefaultPaths(dir, dir), Options{}, logging.NewNop())
	out, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if out.Streaming.TotalStreams != 1 {
		t.Fatalf("merged data not preferred: %+v", out.Streaming)
	}
	if out.Playlists.TotalPlaylists != 1 || out.Playlists.TotalFollowers != 2 {
		t.Fatalf("unexpected playlist analysis: %+v", out.Playlists)
	}
	if out.Summary.TotalStreams != 1 || out.Summary.UniqueArtists != 1 {
		t.Fatalf("unexpected summary: %+v", out.Summary)
	}
	if out.Summary.PrivacyStatus != StatusNeedsReview {
		t.Fatalf("no privacy report should mean review: %q", out.Summary.PrivacyStatus)
	}
}

func TestReporterFallsBackToSafeData(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, sanitize.SafeStreamingFile), []export.StreamingRecord{
		{TrackName: "One", ArtistName: "A", EndTime: "2024-01-01 10:00", MsPlayed: 1000},
		{TrackName: "Two", ArtistName: "A", EndTime: "2024-01-01 11:00", MsPlayed: 1000},
	})
	writeJSON(t, filepath.Join(dir, sanitize.SafePlaylistsFile), map[string]any{
		"playlists": []export.Playlist{{Name: "Mix", NumberOfFollowers: 1}},
	})

	r := New(DefaultPaths(dir, dir), Options{}, logging.NewNop())
	out, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if out.Streaming.TotalStreams != 2 || out.Playlists.TotalPlaylists != 1 {
		t.Fatalf("safe fallback not used: %+v", out.Summary)
	}
}

func TestReporterFoldsInPrivacyReports(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, merge.DefaultOutputFile), map[string]any{
		"streaming_history": []export.StreamingRecord{},
		"playlists":         []any{},
	})
	writeJSON(t, filepath.Join(dir, privacy.DefaultReportFile), privacy.Report{
		FilesAnalyzed: 3,
		SafeFiles:     []string{"a", "b"},
		RiskyFiles:    []privacy.RiskyFile{{File: "c"}},
	})
	writeJSON(t, filepath.Join(dir, sanitize.DefaultReportFile), sanitize.Report{
		Stats: sanitize.Stats{FilesProcessed: 3, FilesSanitized: 1, TotalRedactions: 7},
	})

	r := New(DefaultPaths(dir, dir), Options{}, logging.NewNop())
	out, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if out.Privacy.FilesAnalyzed != 3 || out.Privacy.SafeFiles != 2 || out.Privacy.RiskyFiles != 1 {
		t.Fatalf("unexpected privacy summary: %+v", out.Privacy)
	}
	if out.Privacy.Sanitization == nil || out.Privacy.Sanitization.TotalRedactions != 7 {
		t.Fatalf("sanitization summary missing: %+v", out.Privacy.Sanitization)
	}
	if out.Summary.PrivacyStatus != StatusSafe {
		t.Fatalf("status = %q", out.Summary.PrivacyStatus)
	}
}

func TestReporterWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	r := New(DefaultPaths(dir, dir), Options{}, logging.NewNop())
	out, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, DefaultReportFile)
	if err := r.Write(out, path); err != nil {
		t.Fatal(err)
	}
	var loaded Report
	if err := jsonio.ReadFile(path, &loaded); err != nil {
		t.Fatal(err)
	}
	if loaded.GeneratedAt == "" {
		t.Fatal("generated_at missing")
	}
	if loaded.Summary.TotalStreams != 0 {
		t.Fatalf("empty dataset must yield zeroes: %+v", loaded.Summary)
	}
}

func TestQuickSummary(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, merge.DefaultOutputFile), map[string]any{
		"streaming_history": []export.StreamingRecord{
			{TrackName: "One", ArtistName: "A", EndTime: "2024-01-01 10:00", MsPlayed: 3_600_000},
			{TrackName: "One", ArtistName: "A", EndTime: "2024-01-02 10:00", MsPlayed: 3_600_000},
			{TrackName: "Two", ArtistName: "B", EndTime: "2024-01-03 10:00", MsPlayed: 1_800_000},
		},
		"playlists": []any{
			map[string]any{"name": "Mix", "numberOfFollowers": 4, "items": []any{}},
		},
	})

	r := New(DefaultPaths(dir, dir), Options{}, logging.NewNop())
	summary := r.QuickSummary()

	if !summary.HasData || summary.TotalStreams != 3 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(summary.TopArtists) != 2 || summary.TopArtists[0].Artist != "A" {
		t.Fatalf("unexpected top artists: %+v", summary.TopArtists)
	}
	if summary.TotalPlaylists != 1 || summary.TotalFollowers != 4 {
		t.Fatalf("unexpected playlist stats: %+v", summary)
	}
	if summary.Privacy != nil {
		t.Fatal("privacy block should be nil without a report")
	}
}
