package main

import (
	"path/filepath"
	"strings"

	"streamsift/internal/config"
	"streamsift/internal/merge"
	"streamsift/internal/pipeline"
	"streamsift/internal/privacy"
	"streamsift/internal/report"
	"streamsift/internal/runlog"
	"streamsift/internal/sanitize"
)

// resolveDir prefers a non-empty flag value over the configured one.
func resolveDir(flagValue, cfgValue string) string {
	if trimmed := strings.TrimSpace(flagValue); trimmed != "" {
		return trimmed
	}
	return cfgValue
}

func mergedPath(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.OutputDir, merge.DefaultOutputFile)
}

func privacyReportPath(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.ReportDir, privacy.DefaultReportFile)
}

func sanitizeReportPath(outputDir string) string {
	return filepath.Join(outputDir, sanitize.DefaultReportFile)
}

func diagnosticPath(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.ReportDir, report.DefaultReportFile)
}

func reporterPaths(cfg *config.Config) report.Paths {
	return report.DefaultPaths(cfg.Paths.OutputDir, cfg.Paths.ReportDir)
}

func ledgerPath(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.LogDir, runlog.DefaultFile)
}

func lockPath(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.OutputDir, pipeline.LockFile)
}
