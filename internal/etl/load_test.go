package etl

import (
	"context"
	"math"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agatav13/pipeline-spotify/pkg/database"
	"github.com/agatav13/pipeline-spotify/pkg/models"
)

// These tests need a real PostgreSQL instance. They skip unless
// TEST_DATABASE_URL is set, mirroring how the rest of the suite stays
// runnable offline.

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.EnsureSchema(ctx, pool))
	return pool
}

func cleanupAlbum(t *testing.T, pool *pgxpool.Pool, albumID string, artistIDs ...string) {
	t.Helper()
	t.Cleanup(func() {
		ctx := context.Background()
		_, _ = pool.Exec(ctx, "DELETE FROM album_artist WHERE album_id = $1", albumID)
		_, _ = pool.Exec(ctx, "DELETE FROM album WHERE album_id = $1", albumID)
		for _, id := range artistIDs {
			_, _ = pool.Exec(ctx, "DELETE FROM artist WHERE artist_id = $1", id)
		}
	})
}

func testAlbum() models.NormalizedAlbum {
	year := 2024
	tracks := 10
	imageURL := "img_url"
	spotifyURL := "album_url"
	artistURL := "a_url"
	precision := "day"
	releaseDate := "2024-01-01"
	now := time.Now().UTC()

	return models.NormalizedAlbum{
		AlbumID:              "test-load-1",
		AlbumName:            "Test Album",
		AlbumType:            "album",
		ReleaseDate:          &releaseDate,
		ReleaseYear:          &year,
		ReleaseDatePrecision: &precision,
		TotalTracks:          &tracks,
		ImageURL:             &imageURL,
		SpotifyURL:           &spotifyURL,
		PrimaryArtistName:    "Artist One",
		ExtractedAt:          now,
		ExtractionType:       "new_releases",
		ProcessedAt:          now,
		DataType:             "album",
		Artists: []models.NormalizedArtist{
			{ArtistID: "test-artist-1", ArtistName: "Artist One", SpotifyURL: &artistURL},
		},
	}
}

func TestLoadAlbumIsIdempotent(t *testing.T) {
	pool := testPool(t)
	loader := NewPostgresLoader(pool)
	ctx := context.Background()

	album := testAlbum()
	cleanupAlbum(t, pool, album.AlbumID, "test-artist-1")

	require.NoError(t, loader.LoadAlbum(ctx, album))

	// Second load with a changed mutable field must overwrite, not duplicate.
	album.AlbumName = "Renamed Album"
	require.NoError(t, loader.LoadAlbum(ctx, album))

	var albumCount, artistCount, linkCount int
	var name string
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM album WHERE album_id = $1", album.AlbumID).Scan(&albumCount))
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM artist WHERE artist_id = $1", "test-artist-1").Scan(&artistCount))
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM album_artist WHERE album_id = $1", album.AlbumID).Scan(&linkCount))
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT album_name FROM album WHERE album_id = $1", album.AlbumID).Scan(&name))

	assert.Equal(t, 1, albumCount)
	assert.Equal(t, 1, artistCount)
	assert.Equal(t, 1, linkCount)
	assert.Equal(t, "Renamed Album", name)
}

func TestLoadBatchRecordsSuccessMetric(t *testing.T) {
	pool := testPool(t)
	loader := NewPostgresLoader(pool)
	ctx := context.Background()

	// Album with no artists: one album row, no artist or link rows.
	album := testAlbum()
	album.AlbumID = "test-load-2"
	album.Artists = nil
	album.PrimaryArtistID = nil
	album.PrimaryArtistName = "Unknown"
	cleanupAlbum(t, pool, album.AlbumID)

	var metricsBefore int
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM pipeline_metrics").Scan(&metricsBefore))

	require.NoError(t, loader.LoadBatch(ctx, []models.NormalizedAlbum{album}))

	var linkCount int
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM album_artist WHERE album_id = $1", album.AlbumID).Scan(&linkCount))
	assert.Equal(t, 0, linkCount)

	var metricsAfter, rowsAdded int
	var operation, status string
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM pipeline_metrics").Scan(&metricsAfter))
	require.NoError(t, pool.QueryRow(ctx, `
		SELECT operation, status, rows_added FROM pipeline_metrics
		ORDER BY run_at DESC LIMIT 1`).Scan(&operation, &status, &rowsAdded))

	assert.Equal(t, metricsBefore+1, metricsAfter)
	assert.Equal(t, "new_releases", operation)
	assert.Equal(t, StatusSuccess, status)
	assert.Equal(t, 1, rowsAdded)
}

func TestLoadBatchRecordsFailureMetricAndStops(t *testing.T) {
	pool := testPool(t)
	loader := NewPostgresLoader(pool)
	ctx := context.Background()

	good := testAlbum()
	good.AlbumID = "test-load-3"
	good.Artists = nil
	cleanupAlbum(t, pool, good.AlbumID)

	// release_year is an int4 column; an overflowing value forces a genuine
	// mid-batch storage failure.
	bad := testAlbum()
	bad.AlbumID = "test-load-4"
	bad.Artists = nil
	overflow := math.MaxInt64
	bad.ReleaseYear = &overflow
	cleanupAlbum(t, pool, bad.AlbumID)

	err := loader.LoadBatch(ctx, []models.NormalizedAlbum{good, bad})
	require.Error(t, err)

	// The good album stays committed; the bad one never lands because its
	// transaction aborted.
	var goodCount, badCount int
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM album WHERE album_id = $1", good.AlbumID).Scan(&goodCount))
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM album WHERE album_id = $1", bad.AlbumID).Scan(&badCount))
	assert.Equal(t, 1, goodCount)
	assert.Equal(t, 0, badCount)

	var status string
	var rowsAdded int
	require.NoError(t, pool.QueryRow(ctx, `
		SELECT status, rows_added FROM pipeline_metrics
		ORDER BY run_at DESC LIMIT 1`).Scan(&status, &rowsAdded))
	assert.Equal(t, StatusFailure, status)
	assert.Equal(t, 2, rowsAdded)
}
