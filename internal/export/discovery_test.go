package export

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestStreamingHistoryFilesOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ExtendedHistoryDir, "Streaming_History_Audio_2022_0.json"))
	writeFile(t, filepath.Join(root, AccountDataDir, "StreamingHistory_music_1.json"))
	writeFile(t, filepath.Join(root, AccountDataDir, "StreamingHistory_music_0.json"))
	writeFile(t, filepath.Join(root, AccountDataDir, "Playlist1.json"))

	files := StreamingHistoryFiles(root)
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %v", files)
	}
	// Regular history sorted first, extended after.
	if filepath.Base(files[0]) != "StreamingHistory_music_0.json" ||
		filepath.Base(files[1]) != "StreamingHistory_music_1.json" ||
		filepath.Base(files[2]) != "Streaming_History_Audio_2022_0.json" {
		t.Fatalf("unexpected order: %v", files)
	}
}

func TestPlaylistFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, AccountDataDir, "Playlist1.json"))
	writeFile(t, filepath.Join(root, AccountDataDir, "Playlist2.json"))
	writeFile(t, filepath.Join(root, AccountDataDir, "Identity.json"))

	files := PlaylistFiles(root)
	if len(files) != 2 {
		t.Fatalf("expected 2 playlist files, got %v", files)
	}
}

func TestJSONFilesInMissingDir(t *testing.T) {
	if files := JSONFilesIn(t.TempDir(), TechnicalLogDir); len(files) != 0 {
		t.Fatalf("expected no files, got %v", files)
	}
}
