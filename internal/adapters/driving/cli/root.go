// Package cli implements the edubot command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/edupath/edubot/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "edubot",
	Short: "Question answering over your course material",
	Long: `EduBot answers questions strictly from ingested course documents.

Ingest a directory of PDFs and notes, then ask questions from the command
line or serve the HTTP API.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.edubot/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
