// Package models defines the data shapes carried between pipeline stages:
// the raw payloads returned by the Spotify API and the normalized records
// written to the database.
package models

import "time"

// ExternalURLs holds the external link block Spotify attaches to most entities.
type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

// RawArtist is an artist entry nested inside an album payload.
type RawArtist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// RawImage is an image descriptor nested inside an album payload.
// Width is left untyped; Spotify has served it as a number but the decoder
// must not abort a batch over a mistyped field.
type RawImage struct {
	URL   string      `json:"url"`
	Width interface{} `json:"width"`
}

// RawAlbum is an album exactly as the Spotify API returned it, plus the
// extraction provenance stamped by the Extractor. It only lives in memory
// between Extract and Transform.
type RawAlbum struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	AlbumType            string       `json:"album_type"`
	Artists              []RawArtist  `json:"artists"`
	Images               []RawImage   `json:"images"`
	TotalTracks          interface{}  `json:"total_tracks"`
	ReleaseDate          string       `json:"release_date"`
	ReleaseDatePrecision string       `json:"release_date_precision"`
	ExternalURLs         ExternalURLs `json:"external_urls"`

	// Provenance, set by the Extractor after the API call.
	ExtractedAt    time.Time `json:"-"`
	ExtractionType string    `json:"-"`
}

// NormalizedArtist is the validated projection of a RawArtist. An entry is
// only produced when both the id and the name were present on the source.
type NormalizedArtist struct {
	ArtistID   string
	ArtistName string
	SpotifyURL *string
}

// NormalizedAlbum is the validated, flattened projection of a RawAlbum.
// AlbumID and AlbumName are guaranteed non-empty; everything else degrades
// to nil or a default instead of failing the record.
type NormalizedAlbum struct {
	AlbumID              string
	AlbumName            string
	AlbumType            string
	ReleaseDate          *string
	ReleaseYear          *int
	ReleaseDatePrecision *string
	TotalTracks          *int
	ImageURL             *string
	SpotifyURL           *string
	PrimaryArtistID      *string
	PrimaryArtistName    string
	ExtractedAt          time.Time
	ExtractionType       string
	ProcessedAt          time.Time
	DataType             string
	Artists              []NormalizedArtist
}
