package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"streamsift/internal/export"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	dataDir    string
	outputDir  string
	reportDir  string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		dataDir:    filepath.Join(base, "export"),
		outputDir:  filepath.Join(base, "safe_data"),
		reportDir:  filepath.Join(base, "reports"),
	}
	writeTestConfig(t, env)
	writeFixtureExport(t, env.dataDir)
	return env
}

func writeTestConfig(t *testing.T, env *cliTestEnv) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
data_dir = %q
output_dir = %q
report_dir = %q
log_dir = %q

[logging]
format = "json"
level = "error"
`, env.dataDir, env.outputDir, env.reportDir, filepath.Join(env.baseDir, "logs"))
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// writeFixtureExport lays out a minimal archive: one streaming history file,
// one playlist file, and one account file with a contact address.
func writeFixtureExport(t *testing.T, dataDir string) {
	t.Helper()
	accountDir := filepath.Join(dataDir, export.AccountDataDir)
	if err := os.MkdirAll(accountDir, 0o755); err != nil {
		t.Fatalf("create account dir: %v", err)
	}

	history := `[
  {"trackName": "First Song", "artistName": "Alpha", "albumName": "Debut", "endTime": "2024-01-01 10:15", "msPlayed": 240000},
  {"trackName": "Second Song", "artistName": "Alpha", "albumName": "Debut", "endTime": "2024-01-01 10:20", "msPlayed": 180000},
  {"trackName": "Third Song", "artistName": "Beta", "albumName": "Other", "endTime": "2024-01-02 21:00", "msPlayed": 200000},
  {"trackName": "", "artistName": "Dropped", "endTime": "2024-01-02 21:05", "msPlayed": 1000}
]`
	writeFixtureFile(t, filepath.Join(accountDir, "StreamingHistory_music_0.json"), history)

	playlists := `{"playlists": [
  {"name": "Road Trip", "description": "Songs for the road", "numberOfFollowers": 3,
   "items": [{"track": {"trackName": "First Song", "artistName": "Alpha", "albumName": "Debut"}, "addedAt": "2024-01-01"}]}
]}`
	writeFixtureFile(t, filepath.Join(accountDir, "Playlist1.json"), playlists)

	writeFixtureFile(t, filepath.Join(accountDir, export.UserdataFile),
		`{"email": "listener@example.com", "country": "US"}`)
}

func writeFixtureFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
