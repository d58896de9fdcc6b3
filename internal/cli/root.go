// Package cli wires the command-line interface using Cobra.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the root command. Running the binary with no arguments
// provisions the schema if needed and executes one full pipeline pass.
func NewRootCmd() *cobra.Command {
	var limit int

	rootCmd := &cobra.Command{
		Use:          "pipeline-spotify",
		Short:        "ETL pipeline for loading Spotify new releases into Postgres",
		Long:         `pipeline-spotify pulls newly released albums from the Spotify API, normalizes them and upserts them into a PostgreSQL database, recording run metrics along the way.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd.Context(), limit)
		},
	}

	rootCmd.Flags().IntVarP(&limit, "limit", "l", 20, "Number of new releases to fetch (1-50)")

	rootCmd.AddCommand(newInitDBCmd())

	return rootCmd
}

// newInitDBCmd creates the "init-db" sub-command, which provisions the
// schema without running the pipeline.
func newInitDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the pipeline tables if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInitDB(cmd.Context())
		},
	}
}
