// =============================================================================
// FBA Settlement Analyzer - Overview Summarizer
// =============================================================================
//
// The overview is the whole-statement summary sheet: total Amazon-side
// revenue, the storage and advertising totals when those stages ran, then the
// non-SKU charge breakdown, as one labeled list of amounts in fixed order.
//
// Totals are computed over the full product index, before the finisher drops
// noise and anomaly rows, so the overview reconciles against the statement
// itself rather than against the trimmed product table.
//
// =============================================================================

package report

import (
	"github.com/shopspring/decimal"

	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/ledger"
)

// OverviewLine is one labeled amount of the overview sheet.
type OverviewLine struct {
	Label  string
	Amount decimal.Decimal
}

// Display relabeling applied to non-SKU charges. StorageRenewalBilling is the
// statement's internal name for the long-term storage fee.
var nonSKULabels = map[ledger.Description]string{
	ledger.StorageRenewalBilling: "Long-Term Storage Fee",
}

// buildOverview assembles the overview lines.
//
// PARAMETERS:
//   - records: The full product index, pre-drop.
//   - agg: The bucket aggregates (source of the non-SKU breakdown).
//   - jd: The joined auxiliary maps (source of the storage/ads totals).
//   - inc: Which enrichment stages ran.
func buildOverview(records []ProductRecord, agg *Aggregates, jd *joined, inc Included) []OverviewLine {
	lines := []OverviewLine{
		{Label: "Amazon Revenue", Amount: sumAmazonRevenue(records)},
	}

	if inc.MonthlyStorage {
		lines = append(lines, OverviewLine{
			Label:  "Storage Fee",
			Amount: sumMap(jd.storage),
		})
	}
	if inc.Advertising {
		lines = append(lines, OverviewLine{
			Label:  "Advertising",
			Amount: sumMap(jd.ads),
		})
	}

	for _, charge := range agg.NonSKU {
		label := nonSKULabels[charge.Description]
		if label == "" {
			label = string(charge.Description)
		}
		lines = append(lines, OverviewLine{Label: label, Amount: charge.Amount})
	}

	return lines
}

func sumAmazonRevenue(records []ProductRecord) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(rec.AmazonRevenue)
	}
	return total
}

func sumMap(m map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range m {
		total = total.Add(v)
	}
	return total
}
