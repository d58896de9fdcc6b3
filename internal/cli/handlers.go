package cli

import (
	"context"

	"github.com/agatav13/pipeline-spotify/internal/config"
	"github.com/agatav13/pipeline-spotify/internal/etl"
	"github.com/agatav13/pipeline-spotify/internal/spotify"
	"github.com/agatav13/pipeline-spotify/pkg/database"
	"github.com/agatav13/pipeline-spotify/pkg/logger"
)

// runPipeline is the root command handler: provision the schema, build the
// stages and run one Extract -> Transform -> Load pass.
func runPipeline(ctx context.Context, limit int) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	client, err := spotify.New(cfg.ClientID, cfg.ClientSecret)
	if err != nil {
		return err
	}
	if err := client.Authenticate(ctx); err != nil {
		return err
	}

	pipeline := etl.NewPipeline(
		etl.NewSpotifyExtractor(client),
		etl.NewSpotifyTransformer(),
		etl.NewPostgresLoader(pool),
		limit,
	)

	if err := pipeline.Run(ctx); err != nil {
		return err
	}

	logger.Infof("pipeline finished successfully")
	return nil
}

// runInitDB provisions the schema and exits.
func runInitDB(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	logger.Infof("schema is up to date")
	return nil
}
