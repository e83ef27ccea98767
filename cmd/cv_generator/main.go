// Package main provides the entry point for the cv_generator CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/cv-generator/internal/observability"
)

var (
	verbose bool
	debug   bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cv_generator",
	Short: "Generate styled PDF CVs from JSON data",
	Long: `cv_generator renders a JSON CV document into a paginated PDF using one of
several templates (two_column, modern, minimal).

Settings are read from CVGEN_* environment variables (and a .env file), then
from an optional --config file (YAML or JSON); command-line flags win.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = observability.NewLogger(verbose || debug)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Alias for --verbose")
}

// log returns the logger set up for the running command.
func log() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
