package etl

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agatav13/pipeline-spotify/pkg/logger"
	"github.com/agatav13/pipeline-spotify/pkg/models"
)

const (
	upsertAlbumSQL = `
		INSERT INTO album (
			album_id, album_name, album_type, release_date, release_year,
			release_date_precision, total_tracks, image_url, spotify_url,
			extracted_at, extraction_type, processed_at, data_type
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (album_id) DO UPDATE SET
			album_name = EXCLUDED.album_name,
			album_type = EXCLUDED.album_type,
			release_date = EXCLUDED.release_date,
			release_year = EXCLUDED.release_year,
			release_date_precision = EXCLUDED.release_date_precision,
			total_tracks = EXCLUDED.total_tracks,
			image_url = EXCLUDED.image_url,
			spotify_url = EXCLUDED.spotify_url,
			extracted_at = EXCLUDED.extracted_at,
			extraction_type = EXCLUDED.extraction_type,
			processed_at = EXCLUDED.processed_at,
			data_type = EXCLUDED.data_type`

	upsertArtistSQL = `
		INSERT INTO artist (artist_id, artist_name, spotify_url, extracted_at, processed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (artist_id) DO UPDATE SET
			artist_name = EXCLUDED.artist_name,
			spotify_url = EXCLUDED.spotify_url,
			extracted_at = EXCLUDED.extracted_at,
			processed_at = EXCLUDED.processed_at`

	insertLinkSQL = `
		INSERT INTO album_artist (album_id, artist_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`
)

// PostgresLoader persists normalized albums. Each album lands in its own
// transaction together with its artists and link rows, so a partial write of
// a single album is impossible. The batch as a whole is not atomic.
type PostgresLoader struct {
	Pool    *pgxpool.Pool
	Metrics *MetricsRecorder
}

func NewPostgresLoader(pool *pgxpool.Pool) *PostgresLoader {
	return &PostgresLoader{Pool: pool, Metrics: NewMetricsRecorder(pool)}
}

// LoadAlbum upserts one album, its artists and their link rows in a single
// transaction. Album and artist rows overwrite on conflict; link rows are
// only ever created. Rows are written album first so the link rows always
// reference existing parents.
func (l *PostgresLoader) LoadAlbum(ctx context.Context, album models.NormalizedAlbum) error {
	tx, err := l.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, upsertAlbumSQL,
		album.AlbumID, album.AlbumName, album.AlbumType, album.ReleaseDate,
		album.ReleaseYear, album.ReleaseDatePrecision, album.TotalTracks,
		album.ImageURL, album.SpotifyURL, album.ExtractedAt,
		album.ExtractionType, album.ProcessedAt, album.DataType,
	)
	if err != nil {
		return fmt.Errorf("upsert album %s: %w", album.AlbumID, err)
	}

	for _, artist := range album.Artists {
		_, err = tx.Exec(ctx, upsertArtistSQL,
			artist.ArtistID, artist.ArtistName, artist.SpotifyURL,
			album.ExtractedAt, album.ProcessedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert artist %s: %w", artist.ArtistID, err)
		}

		_, err = tx.Exec(ctx, insertLinkSQL, album.AlbumID, artist.ArtistID)
		if err != nil {
			return fmt.Errorf("link album %s to artist %s: %w", album.AlbumID, artist.ArtistID, err)
		}
	}

	return tx.Commit(ctx)
}

// LoadBatch loads albums one at a time and records exactly one metrics row on
// the terminal path. The first failure stops the batch: albums already
// committed stay committed, a failure metric is written with the attempted
// count, and the original error is returned.
func (l *PostgresLoader) LoadBatch(ctx context.Context, albums []models.NormalizedAlbum) error {
	operation := extractionTypeNewReleases
	if len(albums) > 0 && albums[0].ExtractionType != "" {
		operation = albums[0].ExtractionType
	}

	for _, album := range albums {
		if err := l.LoadAlbum(ctx, album); err != nil {
			if mErr := l.Metrics.LogRun(ctx, operation, StatusFailure, len(albums)); mErr != nil {
				logger.Errorf("failed to record failure metric: %v", mErr)
			}
			return err
		}
	}

	if err := l.Metrics.LogRun(ctx, operation, StatusSuccess, len(albums)); err != nil {
		return fmt.Errorf("record success metric: %w", err)
	}

	logger.Infof("loaded %d album(s)", len(albums))
	return nil
}
