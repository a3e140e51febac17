package merge

import (
	"context"
	"log/slog"
	"time"

	"github.com/goccy/go-json"

	"streamsift/internal/export"
	"streamsift/internal/jsonio"
	"streamsift/internal/logging"
)

// DefaultOutputFile is the merged document's filename.
const DefaultOutputFile = "merged_spotify_data.json"

// Metadata describes a merge run.
type Metadata struct {
	MergedAt       string `json:"merged_at"`
	FilesProcessed int    `json:"files_processed"`
	TotalStreams   int    `json:"total_streams"`
}

// Document is the consolidated export. Playlists pass through unmodified;
// user_data holds only the allow-listed account fields. The merged document
// deliberately retains the account email (allow-listed); only the sanitizer's
// safe outputs strip it.
type Document struct {
	StreamingHistory []export.StreamingRecord  `json:"streaming_history"`
	Playlists        []json.RawMessage         `json:"playlists"`
	UserData         map[string]map[string]any `json:"user_data"`
	Metadata         Metadata                  `json:"metadata"`
}

// Result summarizes a merge for logging and the run ledger.
type Result struct {
	FilesProcessed int `json:"files_processed"`
	TotalStreams   int `json:"total_streams"`
	Playlists      int `json:"playlists"`
	InvalidDropped int `json:"invalid_dropped"`
	SkippedFiles   int `json:"skipped_files"`
}

// Merger builds the consolidated document from a raw export tree.
type Merger struct {
	dataDir string
	logger  *slog.Logger
	now     func() time.Time
}

// New returns a Merger reading from dataDir.
func New(dataDir string, logger *slog.Logger) *Merger {
	return &Merger{
		dataDir: dataDir,
		logger:  logging.WithComponent(logger, "merge"),
		now:     time.Now,
	}
}

// Run ingests, cleans, and returns the merged document along with a summary.
// The document is fully built in memory; callers persist it with Write.
func (m *Merger) Run(ctx context.Context) (*Document, Result, error) {
	doc := &Document{
		StreamingHistory: []export.StreamingRecord{},
		Playlists:        []json.RawMessage{},
		UserData:         map[string]map[string]any{},
	}
	var res Result

	raw, err := m.ingestStreaming(ctx, &res)
	if err != nil {
		return nil, res, err
	}
	if err := m.ingestPlaylists(ctx, doc, &res); err != nil {
		return nil, res, err
	}
	if err := m.ingestUserData(ctx, doc, &res); err != nil {
		return nil, res, err
	}
	m.clean(raw, doc, &res)

	doc.Metadata = Metadata{
		MergedAt:       m.now().Format(time.RFC3339),
		FilesProcessed: res.FilesProcessed,
		TotalStreams:   res.TotalStreams,
	}
	return doc, res, nil
}

// Write persists the merged document atomically.
func (m *Merger) Write(doc *Document, path string) error {
	if err := jsonio.WriteFileAtomic(path, doc); err != nil {
		return err
	}
	m.logger.Info("merged data saved",
		slog.String("path", path),
		slog.Int("files_processed", doc.Metadata.FilesProcessed),
		slog.Int("total_streams", doc.Metadata.TotalStreams),
		slog.Int("playlists", len(doc.Playlists)))
	return nil
}

func (m *Merger) ingestStreaming(ctx context.Context, res *Result) ([]export.RawStreamingEntry, error) {
	var raw []export.RawStreamingEntry
	for _, path := range export.StreamingHistoryFiles(m.dataDir) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var entries []export.RawStreamingEntry
		if err := jsonio.ReadFile(path, &entries); err != nil {
			// Non-array content decodes with an error too; both cases skip.
			m.logger.Warn("skipping streaming file", slog.String("path", path), slog.Any("error", err))
			res.SkippedFiles++
			continue
		}
		raw = append(raw, entries...)
		res.FilesProcessed++
		m.logger.Debug("streaming file ingested", slog.String("path", path), slog.Int("records", len(entries)))
	}
	return raw, nil
}

func (m *Merger) ingestPlaylists(ctx context.Context, doc *Document, res *Result) error {
	for _, path := range export.PlaylistFiles(m.dataDir) {
		if err := ctx.Err(); err != nil {
			return err
		}
		var file export.PlaylistFile
		if err := jsonio.ReadFile(path, &file); err != nil {
			m.logger.Warn("skipping playlist file", slog.String("path", path), slog.Any("error", err))
			res.SkippedFiles++
			continue
		}
		if file.Playlists == nil {
			m.logger.Warn("skipping playlist file without playlists key", slog.String("path", path))
			res.SkippedFiles++
			continue
		}
		doc.Playlists = append(doc.Playlists, file.Playlists...)
		res.FilesProcessed++
		m.logger.Debug("playlist file ingested", slog.String("path", path), slog.Int("playlists", len(file.Playlists)))
	}
	res.Playlists = len(doc.Playlists)
	return nil
}

// Allow-lists for the well-known account files. Only these fields reach the
// merged document.
var userDataAllowLists = map[string]func(map[string]any) map[string]any{
	export.IdentityFile: func(data map[string]any) map[string]any {
		return map[string]any{
			"country":   data["country"],
			"birthdate": data["birthdate"],
			"gender":    data["gender"],
		}
	},
	export.UserdataFile: func(data map[string]any) map[string]any {
		return map[string]any{
			"username": data["username"],
			"email":    data["email"],
			"created":  data["created"],
		}
	},
	export.LibraryFile: func(data map[string]any) map[string]any {
		return map[string]any{
			"tracks_count":  sliceLen(data["tracks"]),
			"albums_count":  sliceLen(data["albums"]),
			"artists_count": sliceLen(data["artists"]),
		}
	},
}

func (m *Merger) ingestUserData(ctx context.Context, doc *Document, res *Result) error {
	for _, name := range []string{export.IdentityFile, export.UserdataFile, export.LibraryFile} {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := export.AccountFilePath(m.dataDir, name)
		var data map[string]any
		if err := jsonio.ReadFile(path, &data); err != nil {
			m.logger.Debug("account file unavailable", slog.String("path", path), slog.Any("error", err))
			continue
		}
		key := name[:len(name)-len(".json")]
		doc.UserData[key] = userDataAllowLists[name](data)
		res.FilesProcessed++
		m.logger.Debug("account file ingested", slog.String("file", name))
	}
	return nil
}

func (m *Merger) clean(raw []export.RawStreamingEntry, doc *Document, res *Result) {
	cleaned := make([]export.StreamingRecord, 0, len(raw))
	for _, entry := range raw {
		record, ok := entry.Clean()
		if !ok {
			continue
		}
		cleaned = append(cleaned, record)
	}
	doc.StreamingHistory = cleaned
	res.TotalStreams = len(cleaned)
	res.InvalidDropped = len(raw) - len(cleaned)
	m.logger.Info("streaming history cleaned",
		slog.Int("kept", len(cleaned)),
		slog.Int("dropped", res.InvalidDropped))
}

func sliceLen(v any) int {
	if items, ok := v.([]any); ok {
		return len(items)
	}
	return 0
}
