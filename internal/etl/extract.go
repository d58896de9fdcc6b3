package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/agatav13/pipeline-spotify/internal/spotify"
	"github.com/agatav13/pipeline-spotify/pkg/models"
)

// extractionTypeNewReleases tags every extracted record with the operation
// that produced it, for audit purposes.
const extractionTypeNewReleases = "new_releases"

// ExtractionError wraps any failure of the Extract stage. The cause is
// preserved for the caller; the stage never retries.
type ExtractionError struct {
	Op  string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %s: %v", e.Op, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// CatalogClient is the slice of the Spotify client the extractor needs.
type CatalogClient interface {
	GetNewReleases(ctx context.Context, limit int) (*spotify.NewReleasesPage, error)
}

// SpotifyExtractor pulls raw albums from the catalog and stamps them with
// extraction provenance. It performs no filtering; every upstream item is
// passed through to the Transform stage.
type SpotifyExtractor struct {
	Client CatalogClient

	// now is swappable in tests.
	now func() time.Time
}

func NewSpotifyExtractor(client CatalogClient) *SpotifyExtractor {
	return &SpotifyExtractor{Client: client, now: time.Now}
}

// ExtractNewReleases fetches up to limit newly released albums. Limit must be
// in 1..50 (the upstream page-size bound). Every returned album carries the
// same batch-level ExtractedAt timestamp.
func (e *SpotifyExtractor) ExtractNewReleases(ctx context.Context, limit int) ([]models.RawAlbum, error) {
	if limit < 1 || limit > 50 {
		return nil, fmt.Errorf("limit must be between 1 and 50, got %d", limit)
	}

	page, err := e.Client.GetNewReleases(ctx, limit)
	if err != nil {
		return nil, &ExtractionError{Op: "new releases", Err: err}
	}

	extractedAt := e.now().UTC()
	albums := page.Albums.Items
	for i := range albums {
		albums[i].ExtractedAt = extractedAt
		albums[i].ExtractionType = extractionTypeNewReleases
	}
	return albums, nil
}
