package sanitize

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"streamsift/internal/export"
	"streamsift/internal/jsonio"
	"streamsift/internal/logging"
	"streamsift/internal/privacy"
)

func writeInput(t *testing.T, root, dir, name, content string) {
	t.Helper()
	path := filepath.Join(root, dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestSanitizer(t *testing.T, dataDir string) (*Sanitizer, string) {
	t.Helper()
	outputDir := t.TempDir()
	return New(dataDir, outputDir, Options{}, logging.NewNop()), outputDir
}

func readMirrored(t *testing.T, outputDir, dir, name string) map[string]any {
	t.Helper()
	var out map[string]any
	if err := jsonio.ReadFile(filepath.Join(outputDir, dir, name), &out); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestSanitizeRemovesSensitiveFields(t *testing.T) {
	dataDir := t.TempDir()
	writeInput(t, dataDir, export.AccountDataDir, "Account.json",
		`{"email":"x@y.com","note":"hello"}`)

	s, outputDir := newTestSanitizer(t, dataDir)
	report, res, err := s.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	out := readMirrored(t, outputDir, export.AccountDataDir, "Account.json")
	if _, ok := out["email"]; ok {
		t.Fatal("email field survived sanitization")
	}
	if out["note"] != "hello" {
		t.Fatalf("unexpected note value: %v", out["note"])
	}
	// Removal is not redaction: the dropped value is never inspected.
	if res.TotalRedactions != 0 || res.FilesSanitized != 0 {
		t.Fatalf("unexpected redaction counters: %+v", res)
	}
	if len(report.FileRedactions) != 0 {
		t.Fatalf("unexpected per-file counts: %v", report.FileRedactions)
	}
}

func TestSanitizeRedactsPatterns(t *testing.T) {
	dataDir := t.TempDir()
	writeInput(t, dataDir, export.AccountDataDir, "Note.json",
		`{"note":"contact 1.2.3.4 now"}`)

	s, outputDir := newTestSanitizer(t, dataDir)
	report, res, err := s.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	out := readMirrored(t, outputDir, export.AccountDataDir, "Note.json")
	if out["note"] != "contact [IP_ADDRESS] now" {
		t.Fatalf("unexpected redacted value: %v", out["note"])
	}
	if res.TotalRedactions != 1 || res.FilesSanitized != 1 {
		t.Fatalf("unexpected redaction counters: %+v", res)
	}
	rel := filepath.Join(export.AccountDataDir, "Note.json")
	if report.FileRedactions[rel] != 1 {
		t.Fatalf("unexpected per-file counts: %v", report.FileRedactions)
	}
}

func TestSanitizeSkipsSensitiveFiles(t *testing.T) {
	dataDir := t.TempDir()
	writeInput(t, dataDir, export.AccountDataDir, "Userdata.json",
		`{"note":"hello"}`)

	s, outputDir := newTestSanitizer(t, dataDir)
	_, res, err := s.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if res.FilesProcessed != 1 || res.FilesSkipped != 1 {
		t.Fatalf("unexpected counters: %+v", res)
	}
	mirrored := filepath.Join(outputDir, export.AccountDataDir, "Userdata.json")
	if _, err := os.Stat(mirrored); !os.IsNotExist(err) {
		t.Fatalf("skipped file was mirrored: %v", err)
	}
}

func TestSanitizeCountsRedactionsPerFile(t *testing.T) {
	dataDir := t.TempDir()
	writeInput(t, dataDir, export.AccountDataDir, "A.json",
		`{"note":"seen at 10.0.0.1"}`)
	writeInput(t, dataDir, export.AccountDataDir, "B.json",
		`{"note":"mail someone@example.com"}`)

	s, _ := newTestSanitizer(t, dataDir)
	report, res, err := s.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if res.FilesSanitized != 2 || res.TotalRedactions != 2 {
		t.Fatalf("unexpected counters: %+v", res)
	}
	for _, name := range []string{"A.json", "B.json"} {
		rel := filepath.Join(export.AccountDataDir, name)
		if report.FileRedactions[rel] != 1 {
			t.Fatalf("unexpected count for %s: %v", name, report.FileRedactions)
		}
	}
}

func TestSafeStreamingHistory(t *testing.T) {
	dataDir := t.TempDir()
	writeInput(t, dataDir, export.AccountDataDir, "StreamingHistory_music_0.json", `[
		{"trackName":"One","artistName":"A","albumName":"X","endTime":"2024-01-01 10:00","msPlayed":1000},
		{"trackName":"","artistName":"A","albumName":"X","endTime":"2024-01-01 10:05","msPlayed":1000},
		{"trackName":"Two","artistName":"B","albumName":"Y","endTime":"2024-01-01 10:10","msPlayed":"2000"}
	]`)

	s, outputDir := newTestSanitizer(t, dataDir)
	if _, res, err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	} else if res.SafeStreams != 2 {
		t.Fatalf("expected 2 safe streams, got %d", res.SafeStreams)
	}

	var records []export.StreamingRecord
	if err := jsonio.ReadFile(filepath.Join(outputDir, SafeStreamingFile), &records); err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 || records[0].TrackName != "One" || records[1].MsPlayed != 2000 {
		t.Fatalf("unexpected safe records: %+v", records)
	}
}

func TestSafePlaylists(t *testing.T) {
	dataDir := t.TempDir()
	writeInput(t, dataDir, export.AccountDataDir, "Playlist1.json", `{
		"playlists": [{
			"name": "Mix",
			"description": "favorites",
			"numberOfFollowers": 3,
			"lastModifiedDate": "2024-01-01",
			"items": [
				{"track": {"trackName": "One", "artistName": "A", "albumName": "X"}, "addedAt": "2024-01-01"}
			]
		}]
	}`)

	s, outputDir := newTestSanitizer(t, dataDir)
	if _, res, err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	} else if res.SafePlaylists != 1 {
		t.Fatalf("expected 1 safe playlist, got %d", res.SafePlaylists)
	}

	var doc struct {
		Playlists []export.Playlist `json:"playlists"`
	}
	if err := jsonio.ReadFile(filepath.Join(outputDir, SafePlaylistsFile), &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Playlists) != 1 {
		t.Fatalf("unexpected playlists: %+v", doc.Playlists)
	}
	got := doc.Playlists[0]
	if got.Name != "Mix" || got.NumberOfFollowers != 3 {
		t.Fatalf("unexpected playlist: %+v", got)
	}
	if len(got.Items) != 1 || got.Items[0].TrackName != "One" || got.Items[0].ArtistName != "A" {
		t.Fatalf("track not flattened: %+v", got.Items)
	}
}

func TestSanitizedTreeHasNoDetectorMatches(t *testing.T) {
	dataDir := t.TempDir()
	writeInput(t, dataDir, export.AccountDataDir, "Profile.json", `{
		"profile": {
			"contact": "mail me: someone@example.com",
			"devices": [
				{"id": "deadbeef-1234-abcd-0000-0123456789ab", "note": "seen at 192.168.0.1"}
			],
			"username": "bob"
		}
	}`)

	s, outputDir := newTestSanitizer(t, dataDir)
	_, res, err := s.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalRedactions != 3 {
		t.Fatalf("expected 3 redactions, got %d", res.TotalRedactions)
	}

	out := readMirrored(t, outputDir, export.AccountDataDir, "Profile.json")
	assertClean(t, out, privacy.Builtin(), privacy.RemovalFields())
}

// assertClean walks sanitized JSON and fails on any surviving removal-list
// key or detector match.
func assertClean(t *testing.T, value any, detectors []privacy.Detector, removed []string) {
	t.Helper()
	switch v := value.(type) {
	case map[string]any:
		for key, child := range v {
			for _, field := range removed {
				if strings.Contains(strings.ToLower(key), strings.ToLower(field)) {
					t.Fatalf("removal-list key %q survived", key)
				}
			}
			assertClean(t, child, detectors, removed)
		}
	case []any:
		for _, item := range v {
			assertClean(t, item, detectors, removed)
		}
	case string:
		for _, det := range detectors {
			if det.Pattern.MatchString(v) {
				t.Fatalf("detector %s still matches %q", det.Name, v)
			}
		}
	}
}

func TestWriteReport(t *testing.T) {
	dataDir := t.TempDir()
	writeInput(t, dataDir, export.AccountDataDir, "Note.json",
		`{"note":"seen at 10.0.0.1"}`)

	s, outputDir := newTestSanitizer(t, dataDir)
	report, _, err := s.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(outputDir, DefaultReportFile)
	if err := s.WriteReport(report, path); err != nil {
		t.Fatal(err)
	}

	var loaded Report
	if err := jsonio.ReadFile(path, &loaded); err != nil {
		t.Fatal(err)
	}
	if loaded.Stats.FilesProcessed != 1 || loaded.Stats.TotalRedactions != 1 {
		t.Fatalf("unexpected stats: %+v", loaded.Stats)
	}
	if loaded.OutputDirectory != outputDir {
		t.Fatalf("unexpected output directory: %q", loaded.OutputDirectory)
	}
	var hasIP bool
	for _, name := range loaded.RedactionPatterns {
		if name == "ip_addresses" {
			hasIP = true
		}
	}
	if !hasIP {
		t.Fatalf("missing pattern names: %v", loaded.RedactionPatterns)
	}
	if len(loaded.RemovedFields) == 0 {
		t.Fatal("removed fields not recorded")
	}
}
