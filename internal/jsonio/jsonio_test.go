package jsonio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doc.json")
	in := map[string]any{"name": "Liked Songs", "count": 3}

	if err := WriteFileAtomic(path, in); err != nil {
		t.Fatalf("write: %v", err)
	}

	var out map[string]any
	if err := ReadFile(path, &out); err != nil {
		t.Fatalf("read: %v", err)
	}
	if out["name"] != "Liked Songs" {
		t.Fatalf("unexpected round trip: %v", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\n  \"") {
		t.Fatalf("expected two-space indentation, got %q", data)
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	if err := WriteFileAtomic(path, []int{1, 2, 3}); err != nil {
		t.Fatalf("write: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "doc.json" {
		t.Fatalf("unexpected directory contents: %v", entries)
	}
}

func TestReadMissingFile(t *testing.T) {
	var v any
	if err := ReadFile(filepath.Join(t.TempDir(), "absent.json"), &v); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	var v any
	if err := ReadFile(path, &v); err == nil {
		t.Fatal("expected decode error")
	}
}
