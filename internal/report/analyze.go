package report

import (
	"math"
	"sort"
	"time"

	"streamsift/internal/export"
	"streamsift/internal/textutil"
)

// endTime stamp layouts across export vintages: RFC 3339 from the extended
// history, minute-resolution local stamps from the regular history.
var endTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func parseEndTime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range endTimeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func analyzeStreaming(streams []export.StreamingRecord) StreamingAnalysis {
	analysis := StreamingAnalysis{TotalStreams: len(streams)}
	if len(streams) == 0 {
		return analysis
	}

	artists := map[string]struct{}{}
	albums := map[string]struct{}{}
	tracks := map[export.TrackKey]struct{}{}
	var minTime, maxTime time.Time
	var haveDates bool

	for _, record := range streams {
		analysis.TotalTimeMs += record.MsPlayed
		if record.ArtistName != "" {
			artists[record.ArtistName] = struct{}{}
		}
		if record.AlbumName != "" {
			albums[record.AlbumName] = struct{}{}
		}
		if record.TrackName != "" && record.ArtistName != "" {
			tracks[record.Key()] = struct{}{}
		}
		if parsed, ok := parseEndTime(record.EndTime); ok {
			if !haveDates || parsed.Before(minTime) {
				minTime = parsed
			}
			if !haveDates || parsed.After(maxTime) {
				maxTime = parsed
			}
			haveDates = true
		}
	}

	hours := float64(analysis.TotalTimeMs) / (1000 * 60 * 60)
	analysis.TotalTimeHours = round2(hours)
	analysis.TotalTimeDays = round2(hours / 24)
	if haveDates {
		analysis.DateRange = DateRange{
			Start: minTime.Format(time.RFC3339),
			End:   maxTime.Format(time.RFC3339),
			Days:  int(maxTime.Sub(minTime).Hours() / 24),
		}
	}
	analysis.UniqueCounts = UniqueCounts{
		Artists: len(artists),
		Tracks:  len(tracks),
		Albums:  len(albums),
	}
	return analysis
}

func analyzeArtists(streams []export.StreamingRecord, topN int) ArtistAnalysis {
	artistStreams := map[string]int{}
	artistTime := map[string]int64{}
	for _, record := range streams {
		if record.ArtistName == "" {
			continue
		}
		artistStreams[record.ArtistName]++
		artistTime[record.ArtistName] += record.MsPlayed
	}

	analysis := ArtistAnalysis{
		TotalArtists: len(artistStreams),
		TopByStreams: []ArtistRanking{},
		TopByTime:    []ArtistRanking{},
	}
	if len(artistStreams) == 0 {
		return analysis
	}

	names := make([]string, 0, len(artistStreams))
	for name := range artistStreams {
		names = append(names, name)
	}

	byStreams := append([]string(nil), names...)
	sort.Slice(byStreams, func(i, j int) bool {
		a, b := byStreams[i], byStreams[j]
		if artistStreams[a] != artistStreams[b] {
			return artistStreams[a] > artistStreams[b]
		}
		return a < b
	})
	for _, name := range byStreams[:min(topN, len(byStreams))] {
		analysis.TopByStreams = append(analysis.TopByStreams, ArtistRanking{
			Artist:    name,
			Streams:   artistStreams[name],
			TimeHours: round2(float64(artistTime[name]) / (1000 * 60 * 60)),
		})
	}

	byTime := append([]string(nil), names...)
	sort.Slice(byTime, func(i, j int) bool {
		a, b := byTime[i], byTime[j]
		if artistTime[a] != artistTime[b] {
			return artistTime[a] > artistTime[b]
		}
		return a < b
	})
	for _, name := range byTime[:min(topN, len(byTime))] {
		analysis.TopByTime = append(analysis.TopByTime, ArtistRanking{
			Artist:    name,
			Streams:   artistStreams[name],
			TimeHours: round2(float64(artistTime[name]) / (1000 * 60 * 60)),
		})
	}

	analysis.Diversity = diversityMetrics(artistStreams)
	return analysis
}

// diversityMetrics counts the artists whose stream count reaches the value
// at the 90th-percentile rank, ties included.
func diversityMetrics(artistStreams map[string]int) DiversityMetrics {
	total := len(artistStreams)
	if total == 0 {
		return DiversityMetrics{}
	}
	counts := make([]int, 0, total)
	for _, count := range artistStreams {
		counts = append(counts, count)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	threshold := counts[total/10]
	top := 0
	for _, count := range counts {
		if count >= threshold {
			top++
		}
	}
	return DiversityMetrics{
		Top10PercentArtists: top,
		ConcentrationRatio:  round2(float64(top) / float64(total) * 100),
	}
}

func analyzeTracks(streams []export.StreamingRecord, topN int) TrackAnalysis {
	trackStreams := map[export.TrackKey]int{}
	trackTime := map[export.TrackKey]int64{}
	for _, record := range streams {
		if record.TrackName == "" || record.ArtistName == "" {
			continue
		}
		key := record.Key()
		trackStreams[key]++
		trackTime[key] += record.MsPlayed
	}

	analysis := TrackAnalysis{
		TotalTracks:  len(trackStreams),
		TopByStreams: []TrackRanking{},
		TopByTime:    []TrackRanking{},
	}
	if len(trackStreams) == 0 {
		return analysis
	}

	totalPlays := 0
	keys := make([]export.TrackKey, 0, len(trackStreams))
	for key, count := range trackStreams {
		keys = append(keys, key)
		totalPlays += count
	}
	analysis.AvgStreamsPerTrack = round2(float64(totalPlays) / float64(len(trackStreams)))

	byStreams := append([]export.TrackKey(nil), keys...)
	sort.Slice(byStreams, func(i, j int) bool {
		a, b := byStreams[i], byStreams[j]
		if trackStreams[a] != trackStreams[b] {
			return trackStreams[a] > trackStreams[b]
		}
		return a.Display() < b.Display()
	})
	for _, key := range byStreams[:min(topN, len(byStreams))] {
		analysis.TopByStreams = append(analysis.TopByStreams, TrackRanking{
			Track:     key.Display(),
			Streams:   trackStreams[key],
			TimeHours: round2(float64(trackTime[key]) / (1000 * 60 * 60)),
		})
	}

	byTime := append([]export.TrackKey(nil), keys...)
	sort.Slice(byTime, func(i, j int) bool {
		a, b := byTime[i], byTime[j]
		if trackTime[a] != trackTime[b] {
			return trackTime[a] > trackTime[b]
		}
		return a.Display() < b.Display()
	})
	for _, key := range byTime[:min(topN, len(byTime))] {
		analysis.TopByTime = append(analysis.TopByTime, TrackRanking{
			Track:     key.Display(),
			Streams:   trackStreams[key],
			TimeHours: round2(float64(trackTime[key]) / (1000 * 60 * 60)),
		})
	}
	return analysis
}

func analyzePlaylists(playlists []export.Playlist, topN, descriptionLimit int) PlaylistAnalysis {
	analysis := PlaylistAnalysis{
		TotalPlaylists: len(playlists),
		TopPlaylists:   []PlaylistRanking{},
	}
	if len(playlists) == 0 {
		return analysis
	}

	for _, playlist := range playlists {
		analysis.TotalFollowers += playlist.NumberOfFollowers
		analysis.TotalTracksInPlaylists += len(playlist.Items)
	}
	analysis.AvgPlaylistSize = round2(float64(analysis.TotalTracksInPlaylists) / float64(len(playlists)))

	ranked := append([]export.Playlist(nil), playlists...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].NumberOfFollowers != ranked[j].NumberOfFollowers {
			return ranked[i].NumberOfFollowers > ranked[j].NumberOfFollowers
		}
		return ranked[i].Name < ranked[j].Name
	})
	for _, playlist := range ranked[:min(topN, len(ranked))] {
		name := playlist.Name
		if name == "" {
			name = "Unknown"
		}
		analysis.TopPlaylists = append(analysis.TopPlaylists, PlaylistRanking{
			Name:        name,
			Followers:   playlist.NumberOfFollowers,
			Tracks:      len(playlist.Items),
			Description: textutil.Truncate(playlist.Description, descriptionLimit),
		})
	}
	return analysis
}

var weekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

func analyzeTemporal(streams []export.StreamingRecord) TemporalAnalysis {
	analysis := TemporalAnalysis{
		HourlyPatterns:  map[int]int{},
		DailyPatterns:   map[string]int{},
		MonthlyPatterns: map[string]int{},
	}

	for _, record := range streams {
		parsed, ok := parseEndTime(record.EndTime)
		if !ok {
			continue
		}
		analysis.HourlyPatterns[parsed.Hour()]++
		analysis.DailyPatterns[parsed.Weekday().String()]++
		analysis.MonthlyPatterns[parsed.Format("2006-01")]++
	}

	// Tie-breaks are fixed: the lowest hour and the earliest weekday in
	// Monday-first order win.
	for hour := 0; hour < 24; hour++ {
		if count := analysis.HourlyPatterns[hour]; count > analysis.PeakListening.PeakHourStreams {
			analysis.PeakListening.Hour = hour
			analysis.PeakListening.PeakHourStreams = count
		}
	}
	analysis.PeakListening.Day = "Unknown"
	for _, day := range weekdayOrder {
		if count := analysis.DailyPatterns[day]; count > analysis.PeakListening.PeakDayStreams {
			analysis.PeakListening.Day = day
			analysis.PeakListening.PeakDayStreams = count
		}
	}
	months := make([]string, 0, len(analysis.MonthlyPatterns))
	for month := range analysis.MonthlyPatterns {
		months = append(months, month)
	}
	sort.Strings(months)
	for _, month := range months {
		if count := analysis.MonthlyPatterns[month]; count > analysis.PeakListening.PeakMonthStreams {
			analysis.PeakListening.Month = month
			analysis.PeakListening.PeakMonthStreams = count
		}
	}
	return analysis
}

func buildSummary(streaming StreamingAnalysis, playlists PlaylistAnalysis, privacy PrivacySummary) Summary {
	days := streaming.DateRange.Days
	if days < 1 {
		days = 1
	}
	status := StatusNeedsReview
	if privacy.SafeFiles > privacy.RiskyFiles {
		status = StatusSafe
	}
	return Summary{
		TotalStreams:            streaming.TotalStreams,
		TotalListeningTimeHours: streaming.TotalTimeHours,
		UniqueArtists:           streaming.UniqueCounts.Artists,
		UniqueTracks:            streaming.UniqueCounts.Tracks,
		TotalPlaylists:          playlists.TotalPlaylists,
		DateRangeDays:           streaming.DateRange.Days,
		AvgStreamsPerDay:        round2(float64(streaming.TotalStreams) / float64(days)),
		PrivacyStatus:           status,
	}
}
