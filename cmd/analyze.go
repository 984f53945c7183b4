// =============================================================================
// FBA Settlement Analyzer - Analyze Command
// =============================================================================
//
// This file defines the 'analyze' command, which runs the full reconciliation
// pipeline for one settlement statement.
//
// COMMAND USAGE:
//   settlement-analyzer analyze [flags]
//
// FLAGS:
//   --statement : Override the statement_file from the configuration
//   --dry-run   : Run the engine and log the summary without writing output
//
// PROCESSING PIPELINE:
//   1. Load the run configuration
//   2. Parse the settlement statement (period extracted from sentinel rows)
//   3. Load the configured auxiliary datasets (schema errors are fatal)
//   4. Run the report engine: classify -> aggregate -> join -> metrics ->
//      finish -> overview
//   5. Write the date-suffixed workbook into the output directory
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/auxdata"
	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/config"
	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/ledger"
	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/logger"
	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/report"
	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/tabular"
	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/workbook"
	"github.com/neoxyte/FBA-Settlement-Analyzer/pkg/utils"
)

// statementFile overrides the configured statement path when set.
var statementFile string

// dryRun runs the engine without writing the workbook.
var dryRun bool

// analyzeCmd represents the 'analyze' command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the settlement reconciliation and write the workbook",
	Long: `The analyze command parses the settlement statement, loads every auxiliary
report the configuration enables, runs the reconciliation engine, and writes
the output workbook (Sales, Overview, and family sheets) into the output
directory. The workbook name carries the statement's settlement period dates.

Schema problems in any input (a missing required column) abort the run before
any output is produced. Identifier gaps between sources are resolved by the
declared per-column fill policies and never abort the run.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze()
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(
		&statementFile,
		"statement",
		"",
		"Path to the settlement statement (overrides statement_file from config)",
	)

	analyzeCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Run the reconciliation and log the summary without writing the workbook",
	)
}

// runAnalyze orchestrates the pipeline.
func runAnalyze() error {
	startTime := time.Now()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if statementFile != "" {
		cfg.StatementFile = statementFile
	}

	log := logger.New(cfg.LogLevel, verbose)
	log.Info().Str("config", cfgFile).Str("statement", cfg.StatementFile).Msg("starting analysis")

	if problems := cfg.CheckInputFiles(); len(problems) > 0 {
		return fmt.Errorf("input files not usable:\n  %s", strings.Join(problems, "\n  "))
	}

	table, err := tabular.Read(cfg.StatementFile, tabular.TabSettings())
	if err != nil {
		return fmt.Errorf("failed to read statement: %w", err)
	}
	stmt, err := ledger.ParseStatement(table)
	if err != nil {
		return fmt.Errorf("failed to parse statement: %w", err)
	}
	log.Info().
		Int("rows", len(stmt.Rows)).
		Str("period_start", stmt.PeriodStart).
		Str("period_end", stmt.PeriodEnd).
		Msg("statement parsed")

	src, err := auxdata.Load(cfg)
	if err != nil {
		return fmt.Errorf("failed to load auxiliary reports: %w", err)
	}

	result := report.New(cfg, log).Run(stmt, src)

	if dryRun {
		log.Info().
			Dur("elapsed", time.Since(startTime)).
			Msg("dry run complete, no workbook written")
		return nil
	}

	if err := utils.EnsureDir(cfg.OutputDir); err != nil {
		return err
	}
	outPath := filepath.Join(cfg.OutputDir,
		utils.WorkbookName(result.PeriodStart, result.PeriodEnd))
	if err := workbook.Write(outPath, result); err != nil {
		return err
	}

	log.Info().
		Str("workbook", outPath).
		Dur("elapsed", time.Since(startTime)).
		Msg("analysis complete")
	return nil
}
