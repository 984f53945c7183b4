// =============================================================================
// FBA Settlement Analyzer - Main Entry Point
// =============================================================================
//
// This is the main entry point for the FBA Settlement Analyzer CLI. It
// initializes the Cobra CLI framework and delegates command execution to the
// cmd package.
//
// USAGE:
//   settlement-analyzer analyze   - Run the reconciliation for one statement
//   settlement-analyzer validate  - Check configuration and inputs only
//   settlement-analyzer version   - Display the application version
//
// ARCHITECTURE:
//   cmd/        : CLI command definitions (Cobra)
//   internal/   : Core business logic (not for external import)
//   pkg/        : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/neoxyte/FBA-Settlement-Analyzer/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
