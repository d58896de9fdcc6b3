package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Run statuses recorded in pipeline_metrics.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// MetricsRecorder appends one audit row per pipeline run to
// pipeline_metrics, capturing the row count attempted and point-in-time
// table totals. Rows are never updated or read back by the pipeline.
type MetricsRecorder struct {
	pool *pgxpool.Pool
}

func NewMetricsRecorder(pool *pgxpool.Pool) *MetricsRecorder {
	return &MetricsRecorder{pool: pool}
}

// LogRun records one run of the given operation.
func (m *MetricsRecorder) LogRun(ctx context.Context, operation, status string, rowsAdded int) error {
	var totalAlbums, totalArtists, totalLinks int

	if err := m.pool.QueryRow(ctx, "SELECT COUNT(*) FROM album").Scan(&totalAlbums); err != nil {
		return fmt.Errorf("count albums: %w", err)
	}
	if err := m.pool.QueryRow(ctx, "SELECT COUNT(*) FROM artist").Scan(&totalArtists); err != nil {
		return fmt.Errorf("count artists: %w", err)
	}
	if err := m.pool.QueryRow(ctx, "SELECT COUNT(*) FROM album_artist").Scan(&totalLinks); err != nil {
		return fmt.Errorf("count album_artist: %w", err)
	}

	_, err := m.pool.Exec(ctx, `
		INSERT INTO pipeline_metrics (
			run_at, operation, status, rows_added,
			total_albums, total_artists, total_album_artist
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		time.Now().UTC(), operation, status, rowsAdded,
		totalAlbums, totalArtists, totalLinks,
	)
	if err != nil {
		return fmt.Errorf("insert pipeline metric: %w", err)
	}
	return nil
}
