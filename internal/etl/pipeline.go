package etl

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agatav13/pipeline-spotify/pkg/logger"
)

// Pipeline runs one Extract -> Transform -> Load pass. Stages execute
// strictly in sequence and the first stage error aborts the run; the error is
// propagated to the caller untranslated.
type Pipeline struct {
	Extractor   Extractor
	Transformer Transformer
	Loader      Loader
	Limit       int
}

func NewPipeline(extractor Extractor, transformer Transformer, loader Loader, limit int) *Pipeline {
	return &Pipeline{
		Extractor:   extractor,
		Transformer: transformer,
		Loader:      loader,
		Limit:       limit,
	}
}

// Run executes one full pipeline pass.
func (p *Pipeline) Run(ctx context.Context) error {
	runID := uuid.NewString()
	startTime := time.Now()

	logger.Infof("starting pipeline run %s (limit %d)", runID, p.Limit)

	raws, err := p.Extractor.ExtractNewReleases(ctx, p.Limit)
	if err != nil {
		logger.Errorf("run %s: extraction failed: %v", runID, err)
		return err
	}
	logger.Infof("run %s: extracted %d raw album(s)", runID, len(raws))

	albums := p.Transformer.TransformBatch(raws)
	logger.Infof("run %s: transformed %d of %d album(s)", runID, len(albums), len(raws))

	if err := p.Loader.LoadBatch(ctx, albums); err != nil {
		logger.Errorf("run %s: loading failed: %v", runID, err)
		return err
	}

	logger.Infof("run %s finished in %s", runID, time.Since(startTime).Round(time.Millisecond))
	return nil
}
