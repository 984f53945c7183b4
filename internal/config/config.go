// =============================================================================
// FBA Settlement Analyzer - Configuration Module
// =============================================================================
//
// This module loads and validates the run configuration. The configuration
// replaces the interactive prompts of earlier revisions of the tool: every
// optional data source and every presentation option is declared up front in
// a single YAML file, loaded once into an immutable RunConfig that is passed
// explicitly to every component.
//
// CONFIGURATION FILE:
//   config.yaml in the working directory, overridable with --config.
//
// OPTIONAL DATA SOURCES:
//   The settlement statement is the only required input. The inventory
//   archive, storage reports, advertising report, and cost report are each
//   enabled by configuring their file path (plus the include_* switch for
//   advertising and cost). Storage stages are additionally gated on whether
//   the statement actually carries storage charges; that detection happens at
//   analysis time, not here.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// RUN CONFIGURATION STRUCTURE
// =============================================================================

// RunConfig holds the full configuration for one analyzer run.
// It is immutable after Load returns.
type RunConfig struct {
	// =========================================================================
	// INPUT FILES
	// =========================================================================

	// StatementFile is the path to the settlement statement flat file
	// (tab-delimited, flat file v2). Required.
	StatementFile string `yaml:"statement_file"`

	// InventoryFile is the path to the inventory archive CSV
	// (columns: sku, fnsku, asin, product-name; Windows-1252 encoded).
	// Required whenever a storage report is configured, since storage
	// reports are FNSKU-keyed and need the archive to translate to SKU.
	InventoryFile string `yaml:"inventory_file"`

	// MonthlyStorageFile is the path to the monthly storage fee report CSV
	// (columns: fnsku, estimated_monthly_storage_fee). Optional.
	MonthlyStorageFile string `yaml:"monthly_storage_file"`

	// LongTermStorageFile is the path to the long-term storage fee report CSV
	// (columns: fnsku, amount-charged). Optional.
	LongTermStorageFile string `yaml:"long_term_storage_file"`

	// AdvertisingFile is the path to the advertising spend report XLSX
	// (columns: "Advertised SKU", "Spend"). Used when IncludeAdvertising.
	AdvertisingFile string `yaml:"advertising_file"`

	// CostFile is the path to the unit cost report CSV
	// (columns: SKU, "PRODUCT COST", "SHIPPING COST"). Used when IncludeCost.
	CostFile string `yaml:"cost_file"`

	// =========================================================================
	// ANALYSIS OPTIONS
	// =========================================================================

	// IncludeAdvertising folds advertising spend into the per-SKU return.
	IncludeAdvertising bool `yaml:"include_advertising"`

	// IncludeCost folds unit costs into the report, enabling the profit and
	// ROI columns and switching the final sort to Total Profit.
	IncludeCost bool `yaml:"include_cost"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputDir is the directory the workbook is written to.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// FamilyTabs partitions the final table into extra per-family sheets.
	// Each tab selects SKUs by a prefix or substring predicate.
	FamilyTabs []FamilyTab `yaml:"family_tabs"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// FamilyTab selects a sub-view of the final table by SKU pattern.
type FamilyTab struct {
	// Name is the sheet name for this family in the output workbook.
	// "Sales" and "Overview" are reserved for the fixed sheets.
	Name string `yaml:"name"`

	// Match is the pattern applied to each SKU.
	Match string `yaml:"match"`

	// MatchType is how Match is applied: "prefix" or "contains".
	// Default: "prefix"
	MatchType string `yaml:"match_type"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads and validates the run configuration from a YAML file.
//
// PARAMETERS:
//   - path: The path to the configuration file.
//
// RETURNS:
//   - A pointer to the validated RunConfig.
//   - An error if the file cannot be read, parsed, or fails validation.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for unset options.
func applyDefaults(cfg *RunConfig) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	for i := range cfg.FamilyTabs {
		if cfg.FamilyTabs[i].MatchType == "" {
			cfg.FamilyTabs[i].MatchType = "prefix"
		}
	}
}

// Validate checks the configuration for internal consistency.
// File existence is checked separately (see CheckInputFiles) so the validate
// command can report all problems at once.
func (cfg *RunConfig) Validate() error {
	if cfg.StatementFile == "" {
		return fmt.Errorf("statement_file is required")
	}
	if cfg.IncludeAdvertising && cfg.AdvertisingFile == "" {
		return fmt.Errorf("include_advertising is set but advertising_file is empty")
	}
	if cfg.IncludeCost && cfg.CostFile == "" {
		return fmt.Errorf("include_cost is set but cost_file is empty")
	}
	if (cfg.MonthlyStorageFile != "" || cfg.LongTermStorageFile != "") && cfg.InventoryFile == "" {
		return fmt.Errorf("storage reports are FNSKU-keyed: inventory_file is required to translate FNSKU to SKU")
	}
	for i, tab := range cfg.FamilyTabs {
		if tab.Name == "" || tab.Match == "" {
			return fmt.Errorf("family_tabs[%d]: name and match are both required", i)
		}
		// Sheet names are case-insensitive in the workbook format.
		if strings.EqualFold(tab.Name, "Sales") || strings.EqualFold(tab.Name, "Overview") {
			return fmt.Errorf("family_tabs[%d]: name %q collides with a fixed output sheet", i, tab.Name)
		}
		if tab.MatchType != "prefix" && tab.MatchType != "contains" {
			return fmt.Errorf("family_tabs[%d]: match_type must be \"prefix\" or \"contains\", got %q", i, tab.MatchType)
		}
	}
	return nil
}

// CheckInputFiles verifies that every configured input file exists.
//
// RETURNS:
//   - A slice of human-readable problems, empty when everything is in place.
func (cfg *RunConfig) CheckInputFiles() []string {
	var problems []string

	check := func(label, path string) {
		if path == "" {
			return
		}
		if _, err := os.Stat(path); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", label, err))
		}
	}

	check("statement_file", cfg.StatementFile)
	check("inventory_file", cfg.InventoryFile)
	check("monthly_storage_file", cfg.MonthlyStorageFile)
	check("long_term_storage_file", cfg.LongTermStorageFile)
	if cfg.IncludeAdvertising {
		check("advertising_file", cfg.AdvertisingFile)
	}
	if cfg.IncludeCost {
		check("cost_file", cfg.CostFile)
	}

	return problems
}
