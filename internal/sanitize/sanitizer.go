package sanitize

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"streamsift/internal/export"
	"streamsift/internal/jsonio"
	"streamsift/internal/logging"
	"streamsift/internal/privacy"
)

// Output files written alongside the mirrored tree.
const (
	DefaultReportFile = "sanitization_report.json"
	SafeStreamingFile = "safe_streaming_history.json"
	SafePlaylistsFile = "safe_playlists.json"
)

// DefaultSkipFiles lists account files that are dropped wholesale. Their
// contents are sensitive enough that redaction is not worth attempting.
func DefaultSkipFiles() []string {
	return []string{
		"identity.json",
		"userdata.json",
		"payments.json",
		"follow.json",
		"inferences.json",
	}
}

// DefaultSkipPathSubstrings lists lowercase substrings that exclude a file
// by its relative path.
func DefaultSkipPathSubstrings() []string {
	return []string{"technical", "log"}
}

// Options tunes the sanitizer. Nil slices fall back to the built-in tables.
type Options struct {
	Detectors          []privacy.Detector
	RemoveFields       []string
	SkipFiles          []string
	SkipPathSubstrings []string
}

// Stats is the counters block of the sanitization report. Redactions are
// counted per file; FilesSanitized counts files with at least one redaction.
type Stats struct {
	FilesProcessed  int    `json:"files_processed"`
	FilesSanitized  int    `json:"files_sanitized"`
	FilesSkipped    int    `json:"files_skipped"`
	TotalRedactions int    `json:"total_redactions"`
	Timestamp       string `json:"timestamp"`
}

// Report is the persisted sanitization report. RedactionPatterns and
// RemovedFields record the rules in force so the output is auditable.
type Report struct {
	Stats             Stats          `json:"sanitization_stats"`
	OutputDirectory   string         `json:"output_directory"`
	RedactionPatterns []string       `json:"redaction_patterns"`
	RemovedFields     []string       `json:"removed_fields"`
	FileRedactions    map[string]int `json:"file_redactions"`
}

// Result summarizes a sanitizer run for callers.
type Result struct {
	FilesProcessed  int
	FilesSanitized  int
	FilesSkipped    int
	TotalRedactions int
	SafeStreams     int
	SafePlaylists   int
}

// Sanitizer mirrors the export tree into outputDir with sensitive fields
// removed and pattern matches redacted.
type Sanitizer struct {
	dataDir   string
	outputDir string
	opts      Options

	removeLower []string
	skipFiles   []string
	skipSubs    []string

	logger *slog.Logger
	now    func() time.Time
}

// New builds a sanitizer. Zero-valued option fields fall back to the
// built-in detector, removal and skip tables.
func New(dataDir, outputDir string, opts Options, logger *slog.Logger) *Sanitizer {
	if opts.Detectors == nil {
		opts.Detectors = privacy.Builtin()
	}
	if opts.RemoveFields == nil {
		opts.RemoveFields = privacy.RemovalFields()
	}
	if opts.SkipFiles == nil {
		opts.SkipFiles = DefaultSkipFiles()
	}
	if opts.SkipPathSubstrings == nil {
		opts.SkipPathSubstrings = DefaultSkipPathSubstrings()
	}

	s := &Sanitizer{
		dataDir:   dataDir,
		outputDir: outputDir,
		opts:      opts,
		logger:    logging.WithComponent(logger, "sanitize"),
		now:       time.Now,
	}
	for _, field := range opts.RemoveFields {
		s.removeLower = append(s.removeLower, strings.ToLower(field))
	}
	for _, name := range opts.SkipFiles {
		s.skipFiles = append(s.skipFiles, strings.ToLower(strings.TrimSpace(name)))
	}
	for _, sub := range opts.SkipPathSubstrings {
		s.skipSubs = append(s.skipSubs, strings.ToLower(strings.TrimSpace(sub)))
	}
	return s
}

// Run mirrors the sanitizable vendor folders into the output directory,
// builds the safe datasets and returns the report. Per-file failures are
// logged and skipped; the run itself only fails on cancellation or when an
// output cannot be written.
func (s *Sanitizer) Run(ctx context.Context) (*Report, Result, error) {
	var res Result
	fileRedactions := map[string]int{}

	for _, dir := range export.SanitizeDirs() {
		files := export.JSONFilesIn(s.dataDir, dir)
		if len(files) == 0 {
			s.logger.Debug("no files in directory", slog.String("dir", dir))
			continue
		}
		for _, path := range files {
			if err := ctx.Err(); err != nil {
				return nil, res, err
			}
			rel, err := filepath.Rel(s.dataDir, path)
			if err != nil {
				rel = filepath.Join(dir, filepath.Base(path))
			}
			res.FilesProcessed++

			if s.shouldSkip(rel) {
				res.FilesSkipped++
				s.logger.Info("skipping sensitive file", slog.String("file", rel))
				continue
			}

			var data any
			if err := jsonio.ReadFile(path, &data); err != nil {
				s.logger.Warn("file unreadable, not mirrored",
					slog.String("file", rel), slog.Any("error", err))
				continue
			}

			cleaned, redactions := s.sanitizeValue(data)
			if redactions > 0 {
				res.FilesSanitized++
				res.TotalRedactions += redactions
				fileRedactions[rel] = redactions
			}

			outPath := filepath.Join(s.outputDir, rel)
			if err := jsonio.WriteFileAtomic(outPath, cleaned); err != nil {
				return nil, res, err
			}
			s.logger.Debug("mirrored file",
				slog.String("file", rel), slog.Int("redactions", redactions))
		}
	}

	streams, err := s.buildSafeStreamingHistory(ctx)
	if err != nil {
		return nil, res, err
	}
	res.SafeStreams = streams

	playlists, err := s.buildSafePlaylists(ctx)
	if err != nil {
		return nil, res, err
	}
	res.SafePlaylists = playlists

	report := &Report{
		Stats: Stats{
			FilesProcessed:  res.FilesProcessed,
			FilesSanitized:  res.FilesSanitized,
			FilesSkipped:    res.FilesSkipped,
			TotalRedactions: res.TotalRedactions,
			Timestamp:       s.now().Format(time.RFC3339),
		},
		OutputDirectory:   s.outputDir,
		RedactionPatterns: privacy.DetectorNames(s.opts.Detectors),
		RemovedFields:     s.opts.RemoveFields,
		FileRedactions:    fileRedactions,
	}

	s.logger.Info("sanitization complete",
		slog.Int("files_processed", res.FilesProcessed),
		slog.Int("files_sanitized", res.FilesSanitized),
		slog.Int("files_skipped", res.FilesSkipped),
		slog.Int("total_redactions", res.TotalRedactions),
		slog.Int("safe_streams", res.SafeStreams),
		slog.Int("safe_playlists", res.SafePlaylists))
	return report, res, nil
}

// WriteReport persists the report inside the output directory.
func (s *Sanitizer) WriteReport(report *Report, path string) error {
	if err := jsonio.WriteFileAtomic(path, report); err != nil {
		return err
	}
	s.logger.Info("sanitization report saved", slog.String("path", path))
	return nil
}

// shouldSkip reports whether the file at the given relative path is dropped
// wholesale.
func (s *Sanitizer) shouldSkip(rel string) bool {
	lower := strings.ToLower(filepath.ToSlash(rel))
	for _, sub := range s.skipSubs {
		if sub != "" && strings.Contains(lower, sub) {
			return true
		}
	}
	base := filepath.Base(lower)
	for _, name := range s.skipFiles {
		if base == name {
			return true
		}
	}
	return false
}

// sanitizeValue rebuilds parsed JSON, dropping removal-list keys and
// redacting string leaves. Field removal takes precedence: a dropped key's
// value is never inspected, so its contents add nothing to the count.
func (s *Sanitizer) sanitizeValue(value any) (any, int) {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		total := 0
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if s.isRemovedField(key) {
				continue
			}
			cleaned, n := s.sanitizeValue(v[key])
			out[key] = cleaned
			total += n
		}
		return out, total
	case []any:
		out := make([]any, len(v))
		total := 0
		for i, item := range v {
			cleaned, n := s.sanitizeValue(item)
			out[i] = cleaned
			total += n
		}
		return out, total
	case string:
		return s.sanitizeString(v)
	default:
		return value, 0
	}
}

func (s *Sanitizer) isRemovedField(key string) bool {
	lower := strings.ToLower(key)
	for _, field := range s.removeLower {
		if field != "" && strings.Contains(lower, field) {
			return true
		}
	}
	return false
}

// sanitizeString applies every redaction pattern in order and returns the
// redacted string with the number of matches replaced.
func (s *Sanitizer) sanitizeString(text string) (string, int) {
	total := 0
	for _, det := range s.opts.Detectors {
		matches := det.Pattern.FindAllString(text, -1)
		if len(matches) == 0 {
			continue
		}
		text = det.Pattern.ReplaceAllLiteralString(text, det.Placeholder)
		total += len(matches)
	}
	return text, total
}
