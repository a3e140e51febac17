package main

import (
	"context"
	"log/slog"

	"streamsift/internal/config"
	"streamsift/internal/merge"
	"streamsift/internal/privacy"
	"streamsift/internal/report"
	"streamsift/internal/sanitize"
	"streamsift/internal/services"
)

// executeMerge runs the merge stage and persists the merged document.
func executeMerge(ctx context.Context, dataDir, outputPath string, logger *slog.Logger) (merge.Result, error) {
	merger := merge.New(dataDir, logger)
	doc, res, err := merger.Run(ctx)
	if err != nil {
		return res, err
	}
	if err := merger.Write(doc, outputPath); err != nil {
		return res, err
	}
	return res, nil
}

func scannerOptions(cfg *config.Config) (privacy.ScannerOptions, error) {
	detectors, err := privacy.Detectors(cfg.Scanner.Detectors)
	if err != nil {
		return privacy.ScannerOptions{}, services.Wrap(services.ErrConfiguration, "scan", "detectors", "invalid detector rule", err)
	}
	return privacy.ScannerOptions{
		Detectors:             detectors,
		FieldRules:            privacy.FieldRulesWith(cfg.Scanner.Detectors),
		LargeNumberThreshold:  cfg.Scanner.LargeNumberThreshold,
		MaxMatchesPerDetector: cfg.Scanner.MaxMatchesPerDetector,
	}, nil
}

// executeScan runs the privacy scanner and persists the analysis report.
func executeScan(ctx context.Context, cfg *config.Config, dataDir, outputPath string, logger *slog.Logger) (*privacy.Report, error) {
	opts, err := scannerOptions(cfg)
	if err != nil {
		return nil, err
	}
	scanner := privacy.NewScanner(dataDir, opts, logger)
	rep, err := scanner.Run(ctx)
	if err != nil {
		return nil, err
	}
	if err := scanner.Write(rep, outputPath); err != nil {
		return nil, err
	}
	return rep, nil
}

func sanitizerOptions(cfg *config.Config) (sanitize.Options, error) {
	detectors, err := privacy.Detectors(cfg.Scanner.Detectors)
	if err != nil {
		return sanitize.Options{}, services.Wrap(services.ErrConfiguration, "sanitize", "detectors", "invalid detector rule", err)
	}
	return sanitize.Options{
		Detectors:          detectors,
		RemoveFields:       append(privacy.RemovalFields(), cfg.Sanitizer.RemoveFields...),
		SkipFiles:          append(sanitize.DefaultSkipFiles(), cfg.Sanitizer.SkipFiles...),
		SkipPathSubstrings: append(sanitize.DefaultSkipPathSubstrings(), cfg.Sanitizer.SkipPathSubstrings...),
	}, nil
}

// executeSanitize runs the sanitizer and persists its report alongside the
// mirrored tree.
func executeSanitize(ctx context.Context, cfg *config.Config, dataDir, outputDir, reportPath string, logger *slog.Logger) (sanitize.Result, error) {
	opts, err := sanitizerOptions(cfg)
	if err != nil {
		return sanitize.Result{}, err
	}
	sanitizer := sanitize.New(dataDir, outputDir, opts, logger)
	rep, res, err := sanitizer.Run(ctx)
	if err != nil {
		return res, err
	}
	if err := sanitizer.WriteReport(rep, reportPath); err != nil {
		return res, err
	}
	return res, nil
}

func reportOptions(cfg *config.Config) report.Options {
	return report.Options{
		TopArtists:       cfg.Report.TopArtists,
		TopTracks:        cfg.Report.TopTracks,
		TopPlaylists:     cfg.Report.TopPlaylists,
		DescriptionLimit: cfg.Report.DescriptionLimit,
	}
}

// executeReport runs the diagnostic analysis and persists the report.
func executeReport(ctx context.Context, cfg *config.Config, paths report.Paths, outputPath string, logger *slog.Logger) (*report.Report, error) {
	reporter := report.New(paths, reportOptions(cfg), logger)
	rep, err := reporter.Run(ctx)
	if err != nil {
		return nil, err
	}
	if err := reporter.Write(rep, outputPath); err != nil {
		return nil, err
	}
	return rep, nil
}
