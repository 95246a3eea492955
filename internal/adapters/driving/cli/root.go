// Package cli provides the cobra command tree for the gitpress binary.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/gitpress-labs/gitpress/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gitpress",
	Short: "Git-backed blog synchronisation and indexing engine",
	Long: `gitpress keeps an in-memory blog index synchronised with a git
repository (or another source of truth). It polls the source for
changes, re-parses only the affected markdown documents and publishes
immutable index snapshots that readers query without locks.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "gitpress.toml", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
