package main

import (
	"os"
	"path/filepath"
	"testing"

	"streamsift/internal/export"
)

func TestMergeCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"merge"}, env.configPath)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	// files_processed counts every accepted input file: the streaming
	// history file, the playlist file, and Userdata.json.
	requireContains(t, out, "Merged 3 streams from 3 files")
	requireContains(t, out, "1 invalid records dropped")

	merged := filepath.Join(env.outputDir, "merged_spotify_data.json")
	if _, err := os.Stat(merged); err != nil {
		t.Fatalf("expected merged dataset at %s: %v", merged, err)
	}
}

func TestScanCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"scan"}, env.configPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "Analyzed 3 files")
	requireContains(t, out, export.UserdataFile)

	reportPath := filepath.Join(env.reportDir, "privacy_analysis_report.json")
	if _, err := os.Stat(reportPath); err != nil {
		t.Fatalf("expected scan report at %s: %v", reportPath, err)
	}
}

func TestScanCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"scan", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("scan --json: %v", err)
	}
	requireContains(t, out, `"files_analyzed": 3`)
}

func TestSanitizeCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"sanitize"}, env.configPath)
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	requireContains(t, out, "Processed 3 files")
	requireContains(t, out, "1 skipped")
	requireContains(t, out, "3 streams, 1 playlists")

	// Userdata.json is on the skip list and must not be mirrored.
	skipped := filepath.Join(env.outputDir, export.AccountDataDir, export.UserdataFile)
	if _, err := os.Stat(skipped); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be absent, got err %v", skipped, err)
	}
	safe := filepath.Join(env.outputDir, "safe_streaming_history.json")
	if _, err := os.Stat(safe); err != nil {
		t.Fatalf("expected safe dataset at %s: %v", safe, err)
	}
}

func TestReportCommandDashboard(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"merge"}, env.configPath); err != nil {
		t.Fatalf("merge: %v", err)
	}
	out, _, err := runCLI(t, []string{"report"}, env.configPath)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	requireContains(t, out, "== Listening Summary ==")
	requireContains(t, out, "Streams:        3")
	requireContains(t, out, "Alpha")
	requireContains(t, out, "Needs Review")

	reportPath := filepath.Join(env.reportDir, "diagnostic_report.json")
	if _, err := os.Stat(reportPath); err != nil {
		t.Fatalf("expected diagnostic report at %s: %v", reportPath, err)
	}
}

func TestReportCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"merge"}, env.configPath); err != nil {
		t.Fatalf("merge: %v", err)
	}
	out, _, err := runCLI(t, []string{"report", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("report --json: %v", err)
	}
	requireContains(t, out, `"total_streams": 3`)
	requireContains(t, out, `"generated_at"`)
}

func TestSummaryCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"summary"}, env.configPath)
	if err != nil {
		t.Fatalf("summary without data: %v", err)
	}
	requireContains(t, out, "No processed data found")

	if _, _, err := runCLI(t, []string{"merge"}, env.configPath); err != nil {
		t.Fatalf("merge: %v", err)
	}
	out, _, err = runCLI(t, []string{"summary"}, env.configPath)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	requireContains(t, out, "Streams:  3")
	requireContains(t, out, "Alpha")
}
