// Package main implements jobctl, a command-line front end that runs the job
// search and employer pipeline engines over JSON fixture files.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"dental-jobs/internal/common/logger"
	"dental-jobs/internal/store"
)

var rootCmd = &cobra.Command{
	Use:           "jobctl",
	Short:         "Dental job marketplace engines",
	Long:          "jobctl searches, ranks and matches dental job listings and drives the employer hiring pipeline against local JSON fixtures.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	jobsPath       string
	candidatesPath string
	countsPath     string
	logLevel       string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&jobsPath, "jobs", envOr("JOBCTL_JOBS", "testdata/jobs.json"), "Path to the jobs JSON fixture")
	flags.StringVar(&candidatesPath, "candidates", envOr("JOBCTL_CANDIDATES", "testdata/candidates.json"), "Path to the candidates JSON fixture")
	flags.StringVar(&countsPath, "counts", envOr("JOBCTL_COUNTS", ""), "Path to an application counts JSON fixture (derived from candidates when empty)")
	flags.StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "warn"), "Log level (debug, info, warn, error)")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newLogger() logger.Logger {
	return logger.NewFromOptions(logger.Options{Level: logLevel, Format: "console", Output: "stderr"})
}

func newStore() *store.JSONStore {
	return store.NewJSONStore(jobsPath, candidatesPath, countsPath)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
