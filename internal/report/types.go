package report

// DefaultReportFile is the diagnostic report's filename.
const DefaultReportFile = "diagnostic_report.json"

// Privacy status labels shown in the summary block.
const (
	StatusSafe        = "Safe"
	StatusNeedsReview = "Needs Review"
)

// Report is the persisted diagnostic document.
type Report struct {
	GeneratedAt string            `json:"generated_at"`
	Summary     Summary           `json:"summary"`
	Streaming   StreamingAnalysis `json:"streaming_analysis"`
	Artists     ArtistAnalysis    `json:"artist_analysis"`
	Tracks      TrackAnalysis     `json:"track_analysis"`
	Playlists   PlaylistAnalysis  `json:"playlist_analysis"`
	Temporal    TemporalAnalysis  `json:"temporal_analysis"`
	Privacy     PrivacySummary    `json:"privacy_summary"`
}

// Summary is the headline block, derived entirely from the other sections.
type Summary struct {
	TotalStreams            int     `json:"total_streams"`
	TotalListeningTimeHours float64 `json:"total_listening_time_hours"`
	UniqueArtists           int     `json:"unique_artists"`
	UniqueTracks            int     `json:"unique_tracks"`
	TotalPlaylists          int     `json:"total_playlists"`
	DateRangeDays           int     `json:"date_range_days"`
	AvgStreamsPerDay        float64 `json:"avg_streams_per_day"`
	PrivacyStatus           string  `json:"privacy_status"`
}

// DateRange bounds the parseable endTime stamps in the dataset.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

// UniqueCounts are the distinct artist, track and album tallies.
type UniqueCounts struct {
	Artists int `json:"artists"`
	Tracks  int `json:"tracks"`
	Albums  int `json:"albums"`
}

// StreamingAnalysis covers the whole-dataset totals.
type StreamingAnalysis struct {
	TotalStreams   int          `json:"total_streams"`
	TotalTimeMs    int64        `json:"total_time_ms"`
	TotalTimeHours float64      `json:"total_time_hours"`
	TotalTimeDays  float64      `json:"total_time_days"`
	DateRange      DateRange    `json:"date_range"`
	UniqueCounts   UniqueCounts `json:"unique_counts"`
}

// ArtistRanking is one row in an artist top list.
type ArtistRanking struct {
	Artist    string  `json:"artist"`
	Streams   int     `json:"streams"`
	TimeHours float64 `json:"time_hours"`
}

// DiversityMetrics describes how concentrated listening is across artists.
type DiversityMetrics struct {
	Top10PercentArtists int     `json:"top_10_percent_artists"`
	ConcentrationRatio  float64 `json:"concentration_ratio"`
}

// ArtistAnalysis holds the artist aggregations.
type ArtistAnalysis struct {
	TotalArtists int              `json:"total_artists"`
	TopByStreams []ArtistRanking  `json:"top_artists_by_streams"`
	TopByTime    []ArtistRanking  `json:"top_artists_by_time"`
	Diversity    DiversityMetrics `json:"diversity_metrics"`
}

// TrackRanking is one row in a track top list. Track carries the
// "Track - Artist" display form.
type TrackRanking struct {
	Track     string  `json:"track"`
	Streams   int     `json:"streams"`
	TimeHours float64 `json:"time_hours"`
}

// TrackAnalysis holds the track aggregations.
type TrackAnalysis struct {
	TotalTracks        int            `json:"total_tracks"`
	AvgStreamsPerTrack float64        `json:"avg_streams_per_track"`
	TopByStreams       []TrackRanking `json:"top_tracks_by_streams"`
	TopByTime          []TrackRanking `json:"top_tracks_by_time"`
}

// PlaylistRanking is one row in the playlist top list.
type PlaylistRanking struct {
	Name        string `json:"name"`
	Followers   int    `json:"followers"`
	Tracks      int    `json:"tracks"`
	Description string `json:"description"`
}

// PlaylistAnalysis holds the playlist aggregations.
type PlaylistAnalysis struct {
	TotalPlaylists         int               `json:"total_playlists"`
	TotalFollowers         int               `json:"total_followers"`
	TotalTracksInPlaylists int               `json:"total_tracks_in_playlists"`
	AvgPlaylistSize        float64           `json:"avg_playlist_size"`
	TopPlaylists           []PlaylistRanking `json:"top_playlists"`
}

// PeakListening names the busiest hour, weekday and month. Ties resolve to
// the lowest hour, the earliest weekday in Monday..Sunday order and the
// lexically smallest month key.
type PeakListening struct {
	Hour             int    `json:"hour"`
	Day              string `json:"day"`
	Month            string `json:"month"`
	PeakHourStreams  int    `json:"peak_hour_streams"`
	PeakDayStreams   int    `json:"peak_day_streams"`
	PeakMonthStreams int    `json:"peak_month_streams"`
}

// TemporalAnalysis holds the time-of-day, weekday and month histograms.
type TemporalAnalysis struct {
	HourlyPatterns  map[int]int    `json:"hourly_patterns"`
	DailyPatterns   map[string]int `json:"daily_patterns"`
	MonthlyPatterns map[string]int `json:"monthly_patterns"`
	PeakListening   PeakListening  `json:"peak_listening"`
}

// SanitizationSummary condenses the sanitization report for the privacy
// block.
type SanitizationSummary struct {
	FilesProcessed  int `json:"files_processed"`
	FilesSanitized  int `json:"files_sanitized"`
	TotalRedactions int `json:"total_redactions"`
}

// PrivacySummary folds the scanner and sanitizer outcomes into the report.
type PrivacySummary struct {
	FilesAnalyzed   int                  `json:"files_analyzed"`
	SafeFiles       int                  `json:"safe_files"`
	RiskyFiles      int                  `json:"risky_files"`
	Recommendations []string             `json:"recommendations"`
	Sanitization    *SanitizationSummary `json:"sanitization,omitempty"`
}
