// =============================================================================
// FBA Settlement Analyzer - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks the configuration
// and every configured input file without producing any output. It loads the
// statement and the auxiliary reports through the same code paths the analyze
// command uses, so a clean validate run means analyze will get past every
// schema check.
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/auxdata"
	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/config"
	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/ledger"
	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/tabular"
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and input files without processing",
	Long: `The validate command loads the run configuration, verifies every
configured input file exists, and checks that each file carries its required
columns. Nothing is written.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate()
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// runValidate checks the configuration and inputs.
func runValidate() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	fmt.Printf("Configuration OK: %s\n", cfgFile)

	if problems := cfg.CheckInputFiles(); len(problems) > 0 {
		return fmt.Errorf("input files not usable:\n  %s", strings.Join(problems, "\n  "))
	}
	fmt.Println("Input files present")

	table, err := tabular.Read(cfg.StatementFile, tabular.TabSettings())
	if err != nil {
		return fmt.Errorf("statement: %w", err)
	}
	stmt, err := ledger.ParseStatement(table)
	if err != nil {
		return fmt.Errorf("statement: %w", err)
	}
	fmt.Printf("Statement OK: %d rows, period %s to %s\n",
		len(stmt.Rows), stmt.PeriodStart, stmt.PeriodEnd)
	if len(stmt.Unrecognized) > 0 {
		for desc, count := range stmt.Unrecognized {
			fmt.Printf("  warning: unrecognized amount-description %q (%d rows)\n", desc, count)
		}
	}
	if stmt.MalformedQuantities > 0 {
		fmt.Printf("  warning: %d rows with malformed quantity-purchased, counted as zero units\n",
			stmt.MalformedQuantities)
	}

	if _, err := auxdata.Load(cfg); err != nil {
		return err
	}
	fmt.Println("Auxiliary reports OK")

	return nil
}
