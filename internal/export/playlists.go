package export

import (
	"github.com/goccy/go-json"
)

// Playlist is the reduced, non-sensitive playlist form.
type Playlist struct {
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	NumberOfFollowers int            `json:"numberOfFollowers"`
	Items             []PlaylistItem `json:"items"`
}

// PlaylistItem is one playlist entry in its safe flat form.
type PlaylistItem struct {
	TrackName  string `json:"trackName"`
	ArtistName string `json:"artistName"`
	AlbumName  string `json:"albumName"`
	AddedAt    string `json:"addedAt"`
}

// rawPlaylistItem mirrors the vendor export shape, where track identity is
// nested under a "track" object.
type rawPlaylistItem struct {
	Track struct {
		TrackName  string `json:"trackName"`
		ArtistName string `json:"artistName"`
		AlbumName  string `json:"albumName"`
	} `json:"track"`
	TrackName  string `json:"trackName"`
	ArtistName string `json:"artistName"`
	AlbumName  string `json:"albumName"`
	AddedAt    string `json:"addedAt"`
}

// UnmarshalJSON accepts both the raw vendor shape (nested "track" object)
// and the flat safe-dataset shape.
func (p *PlaylistItem) UnmarshalJSON(data []byte) error {
	var raw rawPlaylistItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.TrackName = raw.TrackName
	p.ArtistName = raw.ArtistName
	p.AlbumName = raw.AlbumName
	if raw.Track.TrackName != "" || raw.Track.ArtistName != "" || raw.Track.AlbumName != "" {
		p.TrackName = raw.Track.TrackName
		p.ArtistName = raw.Track.ArtistName
		p.AlbumName = raw.Track.AlbumName
	}
	p.AddedAt = raw.AddedAt
	return nil
}

// PlaylistFile is the top-level shape of a playlist export file: an object
// with a "playlists" array. Files lacking the key are skipped by ingestion.
type PlaylistFile struct {
	Playlists []json.RawMessage `json:"playlists"`
}
