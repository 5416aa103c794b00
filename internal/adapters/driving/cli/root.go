// Package cli implements the dropsearch command-line interface. Commands are
// thin adapters over the driving ports; service construction happens in the
// composition root and is injected before Execute.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/dropsearch/internal/core/ports/driving"
	"github.com/custodia-labs/dropsearch/internal/logger"
)

var (
	version = "dev"

	cfgFile string
	verbose bool

	searchService    driving.SearchService
	syncOrchestrator driving.SyncOrchestrator

	// configuredRoot is the remote folder from configuration, used when the
	// sync command is run without an explicit --root.
	configuredRoot string

	// initialize is set by the composition root. It loads configuration and
	// injects the services once flags have been parsed.
	initialize func(configFile string) error
)

var rootCmd = &cobra.Command{
	Use:   "dropsearch",
	Short: "Sync Dropbox text files into a local full-text search index",
	Long: `dropsearch enumerates .txt files in a Dropbox folder, resolves a shared
link for each, and indexes their content for full-text search. Search via
the CLI or the HTTP API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		// version and help need no services.
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		if initialize != nil {
			return initialize(cfgFile)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	version = v
}

// SetInitializer registers the late-bound service constructor. It runs once
// per invocation, after flag parsing and before the command body.
func SetInitializer(fn func(configFile string) error) {
	initialize = fn
}

// SetServices injects the driving services used by the commands.
func SetServices(search driving.SearchService, sync driving.SyncOrchestrator, root string) {
	searchService = search
	syncOrchestrator = sync
	configuredRoot = root
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
