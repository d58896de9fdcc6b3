package etl

import (
	"context"

	"github.com/agatav13/pipeline-spotify/pkg/models"
)

// The three pipeline stages are deliberately distinct interfaces rather than
// one polymorphic step: each stage has its own input and output types and the
// Pipeline chains them explicitly.

type Extractor interface {
	ExtractNewReleases(ctx context.Context, limit int) ([]models.RawAlbum, error)
}

type Transformer interface {
	TransformBatch(raws []models.RawAlbum) []models.NormalizedAlbum
}

type Loader interface {
	LoadBatch(ctx context.Context, albums []models.NormalizedAlbum) error
}
