package spotify

import "github.com/agatav13/pipeline-spotify/pkg/models"

// NewReleasesPage is the response envelope of /v1/browse/new-releases.
type NewReleasesPage struct {
	Albums struct {
		Items []models.RawAlbum `json:"items"`
		Total int               `json:"total"`
	} `json:"albums"`
}

// SearchResult is the response envelope of /v1/search. Only the entity
// blocks the pipeline consumes are decoded; anything else is dropped.
type SearchResult struct {
	Albums *struct {
		Items []models.RawAlbum `json:"items"`
		Total int               `json:"total"`
	} `json:"albums"`
	Artists *struct {
		Items []Artist `json:"items"`
		Total int      `json:"total"`
	} `json:"artists"`
	Tracks *struct {
		Items []Track `json:"items"`
		Total int     `json:"total"`
	} `json:"tracks"`
}

// Artist is the full artist object returned by /v1/artists/{id}.
type Artist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres"`
	Popularity int      `json:"popularity"`
	Followers  struct {
		Total int `json:"total"`
	} `json:"followers"`
	ExternalURLs models.ExternalURLs `json:"external_urls"`
}

// Track is the track object returned by /v1/tracks/{id}.
type Track struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	DurationMs   int                 `json:"duration_ms"`
	Popularity   int                 `json:"popularity"`
	Artists      []models.RawArtist  `json:"artists"`
	Album        *models.RawAlbum    `json:"album"`
	ExternalURLs models.ExternalURLs `json:"external_urls"`
}
