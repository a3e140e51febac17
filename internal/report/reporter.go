package report

import (
	"context"
	"log/slog"
	"time"

	"streamsift/internal/jsonio"
	"streamsift/internal/logging"
)

// Options tunes list lengths in the generated report.
type Options struct {
	TopArtists       int
	TopTracks        int
	TopPlaylists     int
	DescriptionLimit int
}

// Reporter builds diagnostic reports from the pipeline's outputs.
type Reporter struct {
	paths  Paths
	opts   Options
	logger *slog.Logger
	now    func() time.Time
}

// New builds a reporter. Zero-valued option fields fall back to the
// conventional list lengths.
func New(paths Paths, opts Options, logger *slog.Logger) *Reporter {
	if opts.TopArtists <= 0 {
		opts.TopArtists = 20
	}
	if opts.TopTracks <= 0 {
		opts.TopTracks = 20
	}
	if opts.TopPlaylists <= 0 {
		opts.TopPlaylists = 10
	}
	if opts.DescriptionLimit <= 0 {
		opts.DescriptionLimit = 100
	}
	return &Reporter{
		paths:  paths,
		opts:   opts,
		logger: logging.WithComponent(logger, "report"),
		now:    time.Now,
	}
}

// Run loads the dataset and computes every analysis section. The reporter
// never mutates its inputs; an empty dataset yields a report of zeroes.
func (r *Reporter) Run(ctx context.Context) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dataset := loadDataset(r.paths, r.logger)
	if dataset.Source == SourceNone {
		r.logger.Warn("no listening data found, report will be empty")
	}

	streaming := analyzeStreaming(dataset.Streams)
	privacySummary := loadPrivacySummary(r.paths, r.logger)
	playlists := analyzePlaylists(dataset.Playlists, r.opts.TopPlaylists, r.opts.DescriptionLimit)

	out := &Report{
		GeneratedAt: r.now().Format(time.RFC3339),
		Streaming:   streaming,
		Artists:     analyzeArtists(dataset.Streams, r.opts.TopArtists),
		Tracks:      analyzeTracks(dataset.Streams, r.opts.TopTracks),
		Playlists:   playlists,
		Temporal:    analyzeTemporal(dataset.Streams),
		Privacy:     privacySummary,
	}
	out.Summary = buildSummary(streaming, playlists, privacySummary)

	r.logger.Info("diagnostic analysis complete",
		slog.String("source", dataset.Source),
		slog.Int("streams", streaming.TotalStreams),
		slog.Int("playlists", playlists.TotalPlaylists))
	return out, nil
}

// Write persists the report atomically.
func (r *Reporter) Write(report *Report, path string) error {
	if err := jsonio.WriteFileAtomic(path, report); err != nil {
		return err
	}
	r.logger.Info("diagnostic report saved", slog.String("path", path))
	return nil
}
