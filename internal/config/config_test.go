package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValid(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Scanner.LargeNumberThreshold != defaultLargeNumberThreshold {
		t.Fatalf("unexpected threshold: %d", cfg.Scanner.LargeNumberThreshold)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")
	cfg, path, exists, err := Load(missing)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if path != missing {
		t.Fatalf("unexpected resolved path: %s", path)
	}
	if cfg.Report.TopArtists != defaultTopArtists {
		t.Fatalf("expected defaults, got %d", cfg.Report.TopArtists)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + dir + `/export"
output_dir = "` + dir + `/out"

[sanitizer]
skip_files = [" Payments.JSON "]

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not normalized: %+v", cfg.Logging)
	}
	if len(cfg.Sanitizer.SkipFiles) != 1 || cfg.Sanitizer.SkipFiles[0] != "payments.json" {
		t.Fatalf("skip files not normalized: %v", cfg.Sanitizer.SkipFiles)
	}
	if !filepath.IsAbs(cfg.Paths.DataDir) {
		t.Fatalf("data dir not absolute: %s", cfg.Paths.DataDir)
	}
}

func TestValidateRejectsSameDirs(t *testing.T) {
	cfg := Default()
	cfg.Paths.DataDir = "/tmp/export"
	cfg.Paths.OutputDir = "/tmp/export"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for output_dir == data_dir")
	}
}

func TestValidateRejectsBadDetector(t *testing.T) {
	cfg := Default()
	cfg.Paths.DataDir = "/tmp/export"
	cfg.Paths.OutputDir = "/tmp/out"
	cfg.Scanner.Detectors = []DetectorRule{{Name: "broken", Pattern: "("}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid detector pattern")
	}

	cfg.Scanner.Detectors = []DetectorRule{{Name: "odd", Pattern: "x", Risk: "extreme"}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown risk tier")
	}
}

func TestValidateRejectsBadLogging(t *testing.T) {
	cfg := Default()
	cfg.Paths.DataDir = "/tmp/export"
	cfg.Paths.OutputDir = "/tmp/out"
	cfg.Logging.Format = "xml"
	cfg.Logging.Level = "info"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	written, err := WriteSample(path)
	if err != nil {
		t.Fatalf("write sample: %v", err)
	}
	data, err := os.ReadFile(written)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[scanner]") {
		t.Fatal("sample config missing scanner section")
	}
	if _, err := WriteSample(path); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := expandPath("~/exports")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "exports") {
		t.Fatalf("unexpected expansion: %s", got)
	}
}
