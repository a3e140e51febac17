package export

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// StreamingRecord is one logged playback event. A record is valid only when
// all identity fields are present and some playback actually happened.
type StreamingRecord struct {
	TrackName  string `json:"trackName"`
	ArtistName string `json:"artistName"`
	AlbumName  string `json:"albumName"`
	EndTime    string `json:"endTime"`
	MsPlayed   int64  `json:"msPlayed"`
}

// Valid reports whether the record satisfies the cleaning contract:
// trackName, artistName, and endTime non-empty and msPlayed positive.
func (r StreamingRecord) Valid() bool {
	return r.TrackName != "" && r.ArtistName != "" && r.EndTime != "" && r.MsPlayed > 0
}

// Key returns the record's composite track identity.
func (r StreamingRecord) Key() TrackKey {
	return TrackKey{Track: r.TrackName, Artist: r.ArtistName}
}

// TrackKey identifies a track by name and artist. A structured key avoids
// the delimiter collisions a "track - artist" string would allow.
type TrackKey struct {
	Track  string
	Artist string
}

// Display renders the key in the "Track - Artist" form the dashboard expects.
func (k TrackKey) Display() string {
	return k.Track + " - " + k.Artist
}

// RawStreamingEntry is the loose form a raw export entry decodes into before
// cleaning. MsPlayed arrives as a JSON number or a numeric string depending
// on the export vintage.
type RawStreamingEntry struct {
	TrackName  string `json:"trackName"`
	ArtistName string `json:"artistName"`
	AlbumName  string `json:"albumName"`
	EndTime    string `json:"endTime"`
	MsPlayed   any    `json:"msPlayed"`
}

// Clean validates and coerces the raw entry. The boolean is false when the
// entry must be dropped: missing identity fields, uncoercible msPlayed, or
// non-positive play time.
func (e RawStreamingEntry) Clean() (StreamingRecord, bool) {
	if e.TrackName == "" || e.ArtistName == "" || e.EndTime == "" {
		return StreamingRecord{}, false
	}
	ms, ok := coerceMs(e.MsPlayed)
	if !ok || ms <= 0 {
		return StreamingRecord{}, false
	}
	return StreamingRecord{
		TrackName:  e.TrackName,
		ArtistName: e.ArtistName,
		AlbumName:  e.AlbumName,
		EndTime:    e.EndTime,
		MsPlayed:   ms,
	}, true
}

func coerceMs(v any) (int64, bool) {
	switch value := v.(type) {
	case nil:
		return 0, false
	case float64:
		return int64(value), true
	case int64:
		return value, true
	case int:
		return int64(value), true
	case json.Number:
		n, err := value.Int64()
		if err != nil {
			f, ferr := value.Float64()
			if ferr != nil {
				return 0, false
			}
			return int64(f), true
		}
		return n, true
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return 0, false
		}
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(trimmed, 64)
			if ferr != nil {
				return 0, false
			}
			return int64(f), true
		}
		return n, true
	default:
		return 0, false
	}
}
