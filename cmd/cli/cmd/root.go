// Package cmd provides the CLI commands for trade-cost.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trade-cost/internal/config"
	"trade-cost/internal/logging"
)

var (
	cfgFile string
	verbose bool

	cfg = config.Default()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "trade-cost",
	Short: "Compute the landed cost of importing a shipment",
	Long: `trade-cost computes the fully-loaded cost of importing goods from an
origin country to a destination country: freight, insurance, customs
duties and taxes, inland transport, and a percentage breakdown.

Examples:
  trade-cost estimate shipment.json
  trade-cost estimate --format json shipment.json`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (json or yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	logging.Sugar.Debugw("configuration initialized",
		"config_file", cfgFile,
		"log_level", cfg.Logging.Level,
	)
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("trade-cost version 0.1.0")
	},
}
