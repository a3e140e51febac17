package report

// QuickSummary is the reduced overview shown by the summary command. It is
// computed from the same inputs as the full report and persists nothing.
type QuickSummary struct {
	HasData        bool
	TotalStreams   int
	TotalHours     float64
	TotalDays      float64
	UniqueArtists  int
	UniqueTracks   int
	TopArtists     []ArtistRanking
	TotalPlaylists int
	TotalFollowers int
	Privacy        *PrivacySummary
	PrivacyStatus  string
}

// QuickSummary builds the reduced overview. The privacy block is nil when
// no scanner report exists.
func (r *Reporter) QuickSummary() *QuickSummary {
	dataset := loadDataset(r.paths, r.logger)
	streaming := analyzeStreaming(dataset.Streams)
	artists := analyzeArtists(dataset.Streams, 5)

	summary := &QuickSummary{
		HasData:        dataset.Source != SourceNone,
		TotalStreams:   streaming.TotalStreams,
		TotalHours:     streaming.TotalTimeHours,
		TotalDays:      streaming.TotalTimeDays,
		UniqueArtists:  streaming.UniqueCounts.Artists,
		UniqueTracks:   streaming.UniqueCounts.Tracks,
		TopArtists:     artists.TopByStreams,
		TotalPlaylists: len(dataset.Playlists),
	}
	for _, playlist := range dataset.Playlists {
		summary.TotalFollowers += playlist.NumberOfFollowers
	}

	if fileExists(r.paths.PrivacyReport) {
		privacySummary := loadPrivacySummary(r.paths, r.logger)
		summary.Privacy = &privacySummary
		summary.PrivacyStatus = StatusNeedsReview
		if privacySummary.SafeFiles > privacySummary.RiskyFiles {
			summary.PrivacyStatus = StatusSafe
		}
	}
	return summary
}
