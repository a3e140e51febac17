package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunCommandExecutesPipeline(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"run"}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "completed")
	for _, stage := range []string{"merge", "scan", "sanitize", "report"} {
		requireContains(t, out, stage)
	}

	for _, artifact := range []string{
		filepath.Join(env.outputDir, "merged_spotify_data.json"),
		filepath.Join(env.outputDir, "safe_streaming_history.json"),
		filepath.Join(env.outputDir, "safe_playlists.json"),
		filepath.Join(env.outputDir, "sanitization_report.json"),
		filepath.Join(env.reportDir, "privacy_analysis_report.json"),
		filepath.Join(env.reportDir, "diagnostic_report.json"),
	} {
		if _, err := os.Stat(artifact); err != nil {
			t.Fatalf("expected pipeline artifact %s: %v", artifact, err)
		}
	}
}

func TestRunsCommandListsRecordedRuns(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"runs"}, env.configPath)
	if err != nil {
		t.Fatalf("runs before any run: %v", err)
	}
	requireContains(t, out, "No recorded runs")

	if _, _, err := runCLI(t, []string{"run"}, env.configPath); err != nil {
		t.Fatalf("run: %v", err)
	}
	out, _, err = runCLI(t, []string{"runs"}, env.configPath)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	requireContains(t, out, "completed")
	requireContains(t, out, "STAGES")
}
