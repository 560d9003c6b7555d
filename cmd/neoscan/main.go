// Package main provides the CLI entry point for the neoscan runtime.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/neoscan/runtime/internal/logger"
)

// Exit codes
const (
	ExitSuccess       = 0
	ExitCriteriaError = 1
	ExitDatasetError  = 2
	ExitOutputError   = 3
	ExitLookupError   = 4
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// Dataset flags
	neofile string
	cadfile string

	// Build information (set via ldflags during build)
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Subcommands exit with their own codes; reaching this point
		// means cobra itself rejected the invocation.
		os.Exit(ExitCriteriaError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "neoscan",
	Short: "neoscan - Query NASA close-approach data for near-Earth objects",
	Long: `neoscan explores close approaches of near-Earth objects.

It loads the JPL datasets of near-Earth objects and their close approaches,
filters the approaches against a set of independent criteria evaluated
conjunctively, and writes the matches to CSV or JSON.

Examples:
  # Approaches in January 2020 by potentially hazardous objects
  neoscan query --start-date 2020-01-01 --end-date 2020-01-31 --hazardous

  # The 10 closest matches of a saved search, as JSON
  neoscan query --criteria search.yaml --limit 10 --outfile results.json

  # Look up one object and its approaches
  neoscan inspect --designation 433 --full`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetLevel(slog.LevelDebug)
		} else if quiet {
			logger.SetLevel(slog.LevelError)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("neoscan %s (commit %s, built %s)\n", version, commit, buildDate)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "log errors only")
	rootCmd.PersistentFlags().StringVar(&neofile, "neofile", "data/neos.csv", "path to the NEO dataset (CSV)")
	rootCmd.PersistentFlags().StringVar(&cadfile, "cadfile", "data/cad.json", "path to the close-approach dataset (JSON)")

	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)
}
