// =============================================================================
// FBA Settlement Analyzer - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base that all other commands (analyze, validate, version) attach to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (settlement-analyzer)
//   ├── analyzeCmd  (settlement-analyzer analyze)
//   ├── validateCmd (settlement-analyzer validate)
//   └── versionCmd  (settlement-analyzer version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the run configuration file.
// Overridden with the --config flag.
var cfgFile string

// verbose enables debug logging when set.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "settlement-analyzer",
	Short: "FBA Settlement Analyzer - per-SKU reconciliation of marketplace settlement statements",
	Long: `FBA Settlement Analyzer ingests a marketplace settlement statement
(tab-delimited flat file v2) together with optional auxiliary reports
(inventory archive, storage fee reports, advertising spend, unit costs) and
produces a per-SKU financial reconciliation: units sold, revenue components,
fees, storage charges, advertising spend, cost of goods, and the resulting
profit and ROI, exported as a multi-sheet XLSX workbook.

Every input and option is declared in a YAML configuration file; a run is a
single synchronous batch with no persistence between runs.

Example Usage:
  settlement-analyzer analyze                      # Run with ./config.yaml
  settlement-analyzer analyze --config ./may.yaml  # Run with a custom config
  settlement-analyzer validate                     # Check config and inputs only`,

	Run: func(cmd *cobra.Command, args []string) {
		// No subcommand: print the help message.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs the CLI.
// Called once from main.main().
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
		"Path to the run configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
