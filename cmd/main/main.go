package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/agatav13/pipeline-spotify/internal/cli"
	"github.com/agatav13/pipeline-spotify/pkg/logger"
)

func main() {
	if err := logger.Init(); err != nil {
		os.Exit(1)
	}
	defer logger.Close()

	if err := godotenv.Load(); err != nil {
		logger.Warnf("no .env file found, using system environment variables")
	}

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
