package etl

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/agatav13/pipeline-spotify/pkg/logger"
	"github.com/agatav13/pipeline-spotify/pkg/models"
	"github.com/agatav13/pipeline-spotify/pkg/utils"
)

const (
	defaultAlbumType  = "unknown"
	unknownArtistName = "Unknown"
	dataTypeAlbum     = "album"
)

// SpotifyTransformer normalizes raw albums. It is pure computation: no I/O,
// and a malformed record is dropped, never an error.
type SpotifyTransformer struct {
	// now is swappable in tests.
	now func() time.Time
}

func NewSpotifyTransformer() *SpotifyTransformer {
	return &SpotifyTransformer{now: time.Now}
}

// CleanAlbum validates and flattens one raw album. It returns nil when the
// record is missing its id or name; every other defect degrades to a nil
// field or a default.
func (t *SpotifyTransformer) CleanAlbum(raw models.RawAlbum) *models.NormalizedAlbum {
	name := strings.TrimSpace(raw.Name)
	if raw.ID == "" || name == "" {
		return nil
	}

	albumType := raw.AlbumType
	if albumType == "" {
		albumType = defaultAlbumType
	}

	album := &models.NormalizedAlbum{
		AlbumID:              raw.ID,
		AlbumName:            name,
		AlbumType:            albumType,
		ReleaseDate:          strOrNil(raw.ReleaseDate),
		ReleaseYear:          releaseYear(raw.ReleaseDate),
		ReleaseDatePrecision: strOrNil(raw.ReleaseDatePrecision),
		TotalTracks:          utils.IntOrNil(raw.TotalTracks),
		ImageURL:             largestImageURL(raw.Images),
		SpotifyURL:           strOrNil(raw.ExternalURLs.Spotify),
		PrimaryArtistName:    unknownArtistName,
		ExtractedAt:          raw.ExtractedAt,
		ExtractionType:       raw.ExtractionType,
		ProcessedAt:          t.now().UTC(),
		DataType:             dataTypeAlbum,
		Artists:              cleanArtists(raw.Artists),
	}

	if len(album.Artists) > 0 {
		first := album.Artists[0]
		album.PrimaryArtistID = &first.ArtistID
		album.PrimaryArtistName = first.ArtistName
	}

	return album
}

// TransformBatch cleans every raw album, silently dropping the invalid ones
// and preserving the relative order of survivors.
func (t *SpotifyTransformer) TransformBatch(raws []models.RawAlbum) []models.NormalizedAlbum {
	albums := make([]models.NormalizedAlbum, 0, len(raws))
	skipped := 0
	for _, raw := range raws {
		cleaned := t.CleanAlbum(raw)
		if cleaned == nil {
			skipped++
			continue
		}
		albums = append(albums, *cleaned)
	}
	if skipped > 0 {
		logger.Warnf("transform: skipped %d album(s) missing id or name", skipped)
	}
	return albums
}

// cleanArtists keeps only artists that carry both an id and a name,
// in source order.
func cleanArtists(raws []models.RawArtist) []models.NormalizedArtist {
	artists := make([]models.NormalizedArtist, 0, len(raws))
	for _, a := range raws {
		if a.ID == "" || a.Name == "" {
			continue
		}
		artists = append(artists, models.NormalizedArtist{
			ArtistID:   a.ID,
			ArtistName: a.Name,
			SpotifyURL: strOrNil(a.ExternalURLs.Spotify),
		})
	}
	return artists
}

// largestImageURL picks the URL of the widest image. The sort is stable, so
// among equal widths the earliest source entry wins.
func largestImageURL(images []models.RawImage) *string {
	if len(images) == 0 {
		return nil
	}
	sorted := make([]models.RawImage, len(images))
	copy(sorted, images)
	sort.SliceStable(sorted, func(i, j int) bool {
		return utils.IntOrZero(sorted[i].Width) > utils.IntOrZero(sorted[j].Width)
	})
	return strOrNil(sorted[0].URL)
}

// releaseYear parses the leading segment of a release date ("2024-05-10",
// "2024-05", "2024") as a year. Anything unparseable yields nil.
func releaseYear(releaseDate string) *int {
	if releaseDate == "" {
		return nil
	}
	year, err := strconv.Atoi(strings.SplitN(releaseDate, "-", 2)[0])
	if err != nil {
		return nil
	}
	return &year
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
