// =============================================================================
// FBA Settlement Analyzer - Table Finisher
// =============================================================================
//
// The finisher takes the computed product records and produces the final
// presentation-ready table:
//
//   - Rows where revenue, spend, and total return are all exactly zero are
//     noise and removed regardless of unit count (a zero-amount unit movement
//     is not economic activity). Rows that carry money but zero total units
//     are data anomalies with an undefined per-unit return, and are dropped
//     rather than shown with a fabricated value.
//   - The table is sorted by Total Profit descending when cost is included,
//     otherwise by Total Return descending, with SKU as the tiebreaker so
//     identical inputs always produce byte-identical output.
//   - Named family sub-views are cut from the final table by the configured
//     SKU prefix/substring predicates.
//
// =============================================================================

package report

import (
	"sort"
	"strings"

	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/config"
)

// DropStats counts the rows the finisher removed, for the run summary log.
type DropStats struct {
	// ZeroActivity rows had no revenue or spend of any kind, whatever their
	// unit count.
	ZeroActivity int

	// UnitlessAnomaly rows had revenue or spend but zero total units, so
	// their per-unit return is undefined.
	UnitlessAnomaly int
}

// FamilyView is one filtered sub-view of the final table.
type FamilyView struct {
	Name     string
	Products []ProductRecord
}

// finish filters and sorts the computed records.
func finish(records []ProductRecord, inc Included) ([]ProductRecord, DropStats) {
	var stats DropStats
	kept := make([]ProductRecord, 0, len(records))

	for _, rec := range records {
		if !hasActivity(rec) {
			stats.ZeroActivity++
			continue
		}
		if rec.TotalUnits == 0 {
			stats.UnitlessAnomaly++
			continue
		}
		kept = append(kept, rec)
	}

	sort.Slice(kept, func(i, j int) bool {
		var cmp int
		if inc.Cost {
			cmp = kept[i].TotalProfit.Cmp(kept[j].TotalProfit)
		} else {
			cmp = kept[i].TotalReturn.Cmp(kept[j].TotalReturn)
		}
		if cmp != 0 {
			return cmp > 0
		}
		return kept[i].SKU < kept[j].SKU
	})

	return kept, stats
}

// hasActivity reports whether any tracked revenue or spend column is nonzero.
func hasActivity(rec ProductRecord) bool {
	return !rec.AmazonRevenue.IsZero() ||
		!rec.TotalReturn.IsZero() ||
		!rec.StorageFee.IsZero() ||
		!rec.LTSFee.IsZero() ||
		!rec.AdSpend.IsZero()
}

// familyViews cuts the configured family sub-views from the final table.
// A SKU can appear in more than one view if the predicates overlap; the
// predicates are configuration, not business logic.
func familyViews(products []ProductRecord, tabs []config.FamilyTab) []FamilyView {
	views := make([]FamilyView, 0, len(tabs))
	for _, tab := range tabs {
		view := FamilyView{Name: tab.Name}
		for _, rec := range products {
			if matchesFamily(rec.SKU, tab) {
				view.Products = append(view.Products, rec)
			}
		}
		views = append(views, view)
	}
	return views
}

// matchesFamily applies one family predicate to a SKU.
func matchesFamily(sku string, tab config.FamilyTab) bool {
	switch tab.MatchType {
	case "contains":
		return strings.Contains(sku, tab.Match)
	default:
		return strings.HasPrefix(sku, tab.Match)
	}
}
