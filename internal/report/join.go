// =============================================================================
// FBA Settlement Analyzer - Cross-Source Joiner
// =============================================================================
//
// The joiner turns the auxiliary datasets into per-SKU maps ready to merge
// into the product index. The sources disagree on identifiers: the statement
// and the advertising/cost reports key on SKU, the storage reports key on
// FNSKU. The inventory archive carries both and serves as the translation
// table.
//
// SIGN CONVENTION:
//   Storage fees and advertising spend arrive as positive cost figures but
//   enter the reconciliation as negative revenue impact. The negation happens
//   here, once, so every downstream consumer can simply add.
//
// =============================================================================

package report

import (
	"github.com/shopspring/decimal"

	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/auxdata"
)

// titleDisplayLength is the truncation applied to product titles for display
// compactness in the workbook.
const titleDisplayLength = 40

// =============================================================================
// LOOKUP
// =============================================================================

// Lookup translates FNSKU to SKU, built from the inventory archive.
type Lookup map[string]string

// BuildLookup indexes the archive by FNSKU. Later rows win on duplicate
// FNSKUs, mirroring a grouped last-value semantic; archives do not normally
// carry duplicates.
func BuildLookup(items []auxdata.InventoryItem) Lookup {
	lookup := make(Lookup, len(items))
	for _, item := range items {
		if item.FNSKU == "" || item.SKU == "" {
			continue
		}
		lookup[item.FNSKU] = item.SKU
	}
	return lookup
}

// =============================================================================
// PER-SOURCE JOINS
// =============================================================================

// TitlesBySKU extracts display titles from the inventory archive, truncated
// to 40 characters.
func TitlesBySKU(items []auxdata.InventoryItem) map[string]string {
	titles := make(map[string]string, len(items))
	for _, item := range items {
		if item.SKU == "" {
			continue
		}
		titles[item.SKU] = truncate(item.Title, titleDisplayLength)
	}
	return titles
}

// StorageBySKU groups a storage report by FNSKU, translates to SKU through
// the lookup, and negates the fee into a revenue impact.
//
// RETURNS:
//   - The per-SKU negated fee map.
//   - The number of report rows whose FNSKU had no SKU mapping. An unmapped
//     FNSKU is an identifier-resolution gap: non-fatal, the row simply cannot
//     be attributed and is skipped.
func StorageBySKU(fees []auxdata.StorageFee, lookup Lookup) (map[string]decimal.Decimal, int) {
	bySKU := make(map[string]decimal.Decimal)
	unmapped := 0
	for _, fee := range fees {
		sku, ok := lookup[fee.FNSKU]
		if !ok {
			unmapped++
			continue
		}
		bySKU[sku] = bySKU[sku].Sub(fee.Fee)
	}
	return bySKU, unmapped
}

// AdvertisingBySKU groups the advertising report by SKU and negates spend
// into a revenue impact.
func AdvertisingBySKU(ads []auxdata.AdSpend) map[string]decimal.Decimal {
	bySKU := make(map[string]decimal.Decimal)
	for _, ad := range ads {
		if ad.SKU == "" {
			continue
		}
		bySKU[ad.SKU] = bySKU[ad.SKU].Sub(ad.Spend)
	}
	return bySKU
}

// CostPerUnitBySKU derives cost-per-unit from the cost report: product cost
// plus per-unit packing (shipping) cost. SKUs whose total is zero are dropped
// entirely: a zero line means "no cost data", not "free product", and must
// not masquerade as a maximally profitable SKU.
func CostPerUnitBySKU(costs []auxdata.Cost) map[string]decimal.Decimal {
	bySKU := make(map[string]decimal.Decimal)
	for _, c := range costs {
		if c.SKU == "" {
			continue
		}
		perUnit := c.ProductCost.Add(c.ShippingCost)
		if perUnit.IsZero() {
			continue
		}
		bySKU[c.SKU] = perUnit
	}
	return bySKU
}

// truncate shortens a string to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
