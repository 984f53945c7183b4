// =============================================================================
// FBA Settlement Analyzer - File Manager Utility
// =============================================================================
//
// Small file helpers shared by the commands and the workbook writer:
//   - Output directory management
//   - Date-suffixed workbook naming
//   - Unique temp paths for atomic replace-on-save
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// EnsureDir creates a directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// WorkbookName builds the output workbook file name from the settlement
// period dates (YYYY-MM-DD).
func WorkbookName(periodStart, periodEnd string) string {
	return fmt.Sprintf("Settlement_%s_%s.xlsx", periodStart, periodEnd)
}

// TempPath returns a unique temporary path in the same directory as the
// final path, so the final rename stays on one filesystem.
func TempPath(finalPath string) string {
	dir := filepath.Dir(finalPath)
	return filepath.Join(dir, fmt.Sprintf(".%s.tmp.xlsx", uuid.NewString()))
}
