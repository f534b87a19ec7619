// =============================================================================
// NFSe Importer - Root Command
// =============================================================================
//
// Defines the base command all subcommands attach to:
//
//	nfse-importer
//	├── process   (import XMLs, derive installments, export)
//	├── list      (enumerate discoverable documents)
//	└── version
//
// The root command owns the global flags and the logging setup; settings are
// loaded lazily by the subcommands that need them.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gfcontab/nfse-importer/internal/config"
)

// cfgFile is the path to the configuration file, overridable via --config.
var cfgFile string

// verbose forces debug-level logging regardless of the configured level.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "nfse-importer",
	Short: "NFSe Importer - Convert municipal NFSe XMLs into canonical accounting rows",
	Long: `NFSe Importer ingests municipal electronic-invoice (NFSe/ABRASF) XML
documents from a directory tree, a ZIP archive or a single file, and converts
each document into a canonical, currency- and date-normalized row suitable
for display, export and accounting reconciliation.

Tag layouts vary between municipalities; extraction is namespace- and
depth-agnostic, and one malformed document never aborts a batch.

Example Usage:
  nfse-importer process ./notas            # import a directory
  nfse-importer process notas.zip --csv    # import a ZIP and export CSV
  nfse-importer list ./notas               # enumerate without parsing`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadSettings reads the config file and applies it to the global logger.
func loadSettings() (*config.Settings, error) {
	settings, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	level, err := log.ParseLevel(settings.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	if verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)

	if settings.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	log.SetOutput(os.Stderr)

	return settings, nil
}
