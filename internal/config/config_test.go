package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "statement_file: ./statement.txt\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OutputDir != "./output" {
		t.Errorf("OutputDir = %q, want ./output", cfg.OutputDir)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
statement_file: ./statement.txt
inventory_file: ./inventory.csv
monthly_storage_file: ./storage.csv
advertising_file: ./ads.xlsx
cost_file: ./cost.csv
include_advertising: true
include_cost: true
output_dir: ./out
log_level: debug
family_tabs:
  - name: Alpha
    match: AA-
  - name: Beta
    match: BB
    match_type: contains
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.IncludeAdvertising || !cfg.IncludeCost {
		t.Error("include flags not parsed")
	}
	if len(cfg.FamilyTabs) != 2 {
		t.Fatalf("got %d family tabs, want 2", len(cfg.FamilyTabs))
	}
	if cfg.FamilyTabs[0].MatchType != "prefix" {
		t.Errorf("default match_type = %q, want prefix", cfg.FamilyTabs[0].MatchType)
	}
	if cfg.FamilyTabs[1].MatchType != "contains" {
		t.Errorf("match_type = %q, want contains", cfg.FamilyTabs[1].MatchType)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RunConfig
		wantErr string
	}{
		{
			name:    "missing statement",
			cfg:     RunConfig{},
			wantErr: "statement_file",
		},
		{
			name:    "advertising without file",
			cfg:     RunConfig{StatementFile: "s.txt", IncludeAdvertising: true},
			wantErr: "advertising_file",
		},
		{
			name:    "cost without file",
			cfg:     RunConfig{StatementFile: "s.txt", IncludeCost: true},
			wantErr: "cost_file",
		},
		{
			name:    "storage without inventory",
			cfg:     RunConfig{StatementFile: "s.txt", MonthlyStorageFile: "m.csv"},
			wantErr: "inventory_file",
		},
		{
			name: "reserved family name",
			cfg: RunConfig{
				StatementFile: "s.txt",
				FamilyTabs:    []FamilyTab{{Name: "overview", Match: "A-", MatchType: "prefix"}},
			},
			wantErr: "collides with a fixed output sheet",
		},
		{
			name: "bad family match type",
			cfg: RunConfig{
				StatementFile: "s.txt",
				FamilyTabs:    []FamilyTab{{Name: "A", Match: "A-", MatchType: "regex"}},
			},
			wantErr: "match_type",
		},
		{
			name: "valid",
			cfg: RunConfig{
				StatementFile:      "s.txt",
				InventoryFile:      "i.csv",
				MonthlyStorageFile: "m.csv",
				FamilyTabs:         []FamilyTab{{Name: "A", Match: "A-", MatchType: "prefix"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestCheckInputFiles(t *testing.T) {
	dir := t.TempDir()
	stmt := filepath.Join(dir, "statement.txt")
	if err := os.WriteFile(stmt, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := RunConfig{
		StatementFile: stmt,
		InventoryFile: filepath.Join(dir, "missing.csv"),
	}
	problems := cfg.CheckInputFiles()
	if len(problems) != 1 || !strings.Contains(problems[0], "inventory_file") {
		t.Errorf("problems = %v, want one inventory_file entry", problems)
	}
}
