// =============================================================================
// FBA Settlement Analyzer - Auxiliary Dataset Module
// =============================================================================
//
// This module loads the optional per-product reference reports that enrich
// the settlement reconciliation:
//
//   - Inventory archive (CSV, Windows-1252): sku, fnsku, asin, product-name.
//     Provides product titles and the FNSKU -> SKU translation map.
//   - Monthly storage fee report (CSV): fnsku, estimated_monthly_storage_fee.
//   - Long-term storage fee report (CSV): fnsku, amount-charged.
//   - Advertising spend report (XLSX): "Advertised SKU", "Spend".
//   - Unit cost report (CSV): SKU, "PRODUCT COST", "SHIPPING COST".
//
// Every dataset is read once, fully materialized, and never mutated after
// load. A missing required column in any configured report is a fatal schema
// error carrying the file path and column names.
//
// =============================================================================

package auxdata

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/config"
	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/ledger"
	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/tabular"
)

// =============================================================================
// COLUMN NAMES
// =============================================================================

const (
	colInvSKU   = "sku"
	colInvFNSKU = "fnsku"
	colInvASIN  = "asin"
	colInvTitle = "product-name"

	colStorageFNSKU = "fnsku"
	colMonthlyFee   = "estimated_monthly_storage_fee"
	colLTSFee       = "amount-charged"

	colAdSKU   = "Advertised SKU"
	colAdSpend = "Spend"

	colCostSKU      = "SKU"
	colProductCost  = "PRODUCT COST"
	colShippingCost = "SHIPPING COST"
)

// =============================================================================
// RECORD TYPES
// =============================================================================

// InventoryItem is one row of the inventory archive.
type InventoryItem struct {
	SKU   string
	FNSKU string
	ASIN  string
	Title string
}

// StorageFee is one row of a storage fee report, keyed by FNSKU.
// The fee arrives as a positive cost figure; sign handling is the joiner's
// concern, not the loader's.
type StorageFee struct {
	FNSKU string
	Fee   decimal.Decimal
}

// AdSpend is one row of the advertising report.
type AdSpend struct {
	SKU   string
	Spend decimal.Decimal
}

// Cost is one row of the unit cost report.
type Cost struct {
	SKU          string
	ProductCost  decimal.Decimal
	ShippingCost decimal.Decimal
}

// Sources bundles every auxiliary dataset configured for a run. A nil slice
// means the dataset was not configured.
type Sources struct {
	Inventory       []InventoryItem
	MonthlyStorage  []StorageFee
	LongTermStorage []StorageFee
	Advertising     []AdSpend
	Cost            []Cost
}

// =============================================================================
// BUNDLE LOADING
// =============================================================================

// Load reads every auxiliary dataset the configuration enables.
//
// PARAMETERS:
//   - cfg: The run configuration naming the report files.
//
// RETURNS:
//   - A pointer to the loaded Sources.
//   - An error on the first unreadable file or schema failure.
func Load(cfg *config.RunConfig) (*Sources, error) {
	src := &Sources{}
	var err error

	if cfg.InventoryFile != "" {
		if src.Inventory, err = LoadInventory(cfg.InventoryFile); err != nil {
			return nil, err
		}
	}
	if cfg.MonthlyStorageFile != "" {
		if src.MonthlyStorage, err = LoadMonthlyStorage(cfg.MonthlyStorageFile); err != nil {
			return nil, err
		}
	}
	if cfg.LongTermStorageFile != "" {
		if src.LongTermStorage, err = LoadLongTermStorage(cfg.LongTermStorageFile); err != nil {
			return nil, err
		}
	}
	if cfg.IncludeAdvertising {
		if src.Advertising, err = LoadAdvertising(cfg.AdvertisingFile); err != nil {
			return nil, err
		}
	}
	if cfg.IncludeCost {
		if src.Cost, err = LoadCost(cfg.CostFile); err != nil {
			return nil, err
		}
	}

	return src, nil
}

// =============================================================================
// CSV LOADERS
// =============================================================================

// LoadInventory reads the inventory archive.
// The archive is exported in a single-byte Western encoding, so it is decoded
// as Windows-1252 rather than UTF-8.
func LoadInventory(path string) ([]InventoryItem, error) {
	t, err := tabular.Read(path, tabular.Windows1252Settings())
	if err != nil {
		return nil, err
	}
	if err := t.RequireColumns(colInvSKU, colInvFNSKU, colInvASIN, colInvTitle); err != nil {
		return nil, err
	}

	items := make([]InventoryItem, 0, len(t.Rows))
	for _, row := range t.Rows {
		items = append(items, InventoryItem{
			SKU:   row[colInvSKU],
			FNSKU: row[colInvFNSKU],
			ASIN:  row[colInvASIN],
			Title: row[colInvTitle],
		})
	}
	return items, nil
}

// LoadMonthlyStorage reads the monthly storage fee report.
// Rows with a missing fee value are dropped; they carry no charge to join.
func LoadMonthlyStorage(path string) ([]StorageFee, error) {
	return loadStorageReport(path, colMonthlyFee)
}

// LoadLongTermStorage reads the long-term storage fee report.
func LoadLongTermStorage(path string) ([]StorageFee, error) {
	return loadStorageReport(path, colLTSFee)
}

func loadStorageReport(path, feeColumn string) ([]StorageFee, error) {
	t, err := tabular.Read(path, tabular.CommaSettings())
	if err != nil {
		return nil, err
	}
	if err := t.RequireColumns(colStorageFNSKU, feeColumn); err != nil {
		return nil, err
	}

	fees := make([]StorageFee, 0, len(t.Rows))
	for i, row := range t.Rows {
		if strings.TrimSpace(row[feeColumn]) == "" {
			continue
		}
		fee, err := parseMoney(row[feeColumn])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: bad %s %q: %w",
				path, i+2, feeColumn, row[feeColumn], err)
		}
		fees = append(fees, StorageFee{FNSKU: row[colStorageFNSKU], Fee: fee})
	}
	return fees, nil
}

// LoadCost reads the unit cost report.
func LoadCost(path string) ([]Cost, error) {
	t, err := tabular.Read(path, tabular.CommaSettings())
	if err != nil {
		return nil, err
	}
	if err := t.RequireColumns(colCostSKU, colProductCost, colShippingCost); err != nil {
		return nil, err
	}

	costs := make([]Cost, 0, len(t.Rows))
	for i, row := range t.Rows {
		product, err := parseMoney(row[colProductCost])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: bad %s %q: %w",
				path, i+2, colProductCost, row[colProductCost], err)
		}
		shipping, err := parseMoney(row[colShippingCost])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: bad %s %q: %w",
				path, i+2, colShippingCost, row[colShippingCost], err)
		}
		costs = append(costs, Cost{
			SKU:          row[colCostSKU],
			ProductCost:  product,
			ShippingCost: shipping,
		})
	}
	return costs, nil
}

// =============================================================================
// XLSX LOADER
// =============================================================================

// LoadAdvertising reads the advertising spend report from its first sheet.
//
// The advertising console exports XLSX rather than CSV, so this loader goes
// through excelize instead of the tabular reader. Schema errors are surfaced
// the same way: file path plus the missing column names.
func LoadAdvertising(path string) ([]AdSpend, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open advertising report: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read sheet %q: %w", path, sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: advertising report is empty", path)
	}

	skuCol, spendCol := -1, -1
	for i, header := range rows[0] {
		switch strings.TrimSpace(header) {
		case colAdSKU:
			skuCol = i
		case colAdSpend:
			spendCol = i
		}
	}
	var missing []string
	if skuCol < 0 {
		missing = append(missing, colAdSKU)
	}
	if spendCol < 0 {
		missing = append(missing, colAdSpend)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s: missing required column(s): %s",
			path, strings.Join(missing, ", "))
	}

	spends := make([]AdSpend, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if skuCol >= len(row) || strings.TrimSpace(row[skuCol]) == "" {
			continue
		}
		raw := ""
		if spendCol < len(row) {
			raw = row[spendCol]
		}
		spend, err := parseMoney(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: bad %s %q: %w",
				path, i+2, colAdSpend, raw, err)
		}
		spends = append(spends, AdSpend{
			SKU:   strings.TrimSpace(row[skuCol]),
			Spend: spend,
		})
	}
	return spends, nil
}

// parseMoney parses a report monetary value, tolerating currency symbols and
// thousands separators. Empty values parse as zero.
func parseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	return ledger.ParseAmount(s)
}
