// Package database manages the PostgreSQL connection pool and schema
// provisioning for the pipeline.
package database

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agatav13/pipeline-spotify/pkg/logger"
)

//go:embed schema.sql
var schemaSQL string

// Connect opens a pgx connection pool against databaseURL and verifies it
// with a ping before handing it out.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("error opening postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error connecting to postgres (ping failed): %w", err)
	}

	logger.Infof("connected to postgres")
	return pool, nil
}

// EnsureSchema creates the pipeline tables if they do not exist yet.
// The DDL is idempotent, so running it on every startup is safe.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("error provisioning schema: %w", err)
	}
	return nil
}
