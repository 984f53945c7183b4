// =============================================================================
// FBA Settlement Analyzer - Aggregator
// =============================================================================
//
// The aggregator groups classified rows by product identifier (or by
// description text for the non-SKU bucket) and sums the bucket's column.
// Summation is plain addition, so the row order of the source statement never
// affects the result.
//
// Rows without a SKU never contribute to a per-SKU bucket: the grouping key
// must be non-empty. They surface instead through the non-SKU charge bucket
// when their description belongs there.
//
// =============================================================================

package report

import (
	"github.com/shopspring/decimal"

	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/ledger"
)

// =============================================================================
// AGGREGATE STRUCTURES
// =============================================================================

// NonSKUCharge is one summed non-product charge line.
type NonSKUCharge struct {
	Description ledger.Description
	Amount      decimal.Decimal
}

// Aggregates holds one narrow table per bucket, keyed by SKU, plus the
// statement-level storage charge flags.
type Aggregates struct {
	UnitsSold     map[string]int64
	NonSaleUnits  map[string]int64
	MerchantUnits map[string]int64

	SalesRevenue    map[string]decimal.Decimal
	Commission      map[string]decimal.Decimal
	FBAFees         map[string]decimal.Decimal
	NonSalesRevenue map[string]decimal.Decimal

	// NonSKU contains the non-zero non-product charges in catalog order.
	NonSKU []NonSKUCharge

	// MonthlyStorageCharged is true when the statement's "Storage Fee"
	// amounts sum to a nonzero value for this period.
	MonthlyStorageCharged bool

	// LTSCharged is the same detection for "StorageRenewalBilling".
	LTSCharged bool
}

// =============================================================================
// AGGREGATION
// =============================================================================

// Aggregate classifies and sums every bucket of a statement.
func Aggregate(stmt *ledger.Statement) *Aggregates {
	return &Aggregates{
		UnitsSold:     SumUnitsBySKU(Classify(stmt.Rows, UnitsSold)),
		NonSaleUnits:  SumUnitsBySKU(Classify(stmt.Rows, NonSaleUnits)),
		MerchantUnits: SumUnitsBySKU(Classify(stmt.Rows, MerchantUnits)),

		SalesRevenue:    SumAmountBySKU(Classify(stmt.Rows, SalesRevenue)),
		Commission:      SumAmountBySKU(Classify(stmt.Rows, CommissionBucket)),
		FBAFees:         SumAmountBySKU(Classify(stmt.Rows, FBAFees)),
		NonSalesRevenue: SumAmountBySKU(Classify(stmt.Rows, NonSalesRevenue)),

		NonSKU: sumNonSKU(Classify(stmt.Rows, NonSKUCharges)),

		MonthlyStorageCharged: !sumAmounts(Classify(stmt.Rows, storageChargeDetection)).IsZero(),
		LTSCharged:            !sumAmounts(Classify(stmt.Rows, ltsChargeDetection)).IsZero(),
	}
}

// SumUnitsBySKU groups rows by SKU and sums quantity-purchased.
// Rows with an empty SKU are excluded.
func SumUnitsBySKU(rows []ledger.Row) map[string]int64 {
	units := make(map[string]int64)
	for _, row := range rows {
		if row.SKU == "" {
			continue
		}
		units[row.SKU] += row.Quantity
	}
	return units
}

// SumAmountBySKU groups rows by SKU and sums the signed amount.
// Rows with an empty SKU are excluded.
func SumAmountBySKU(rows []ledger.Row) map[string]decimal.Decimal {
	amounts := make(map[string]decimal.Decimal)
	for _, row := range rows {
		if row.SKU == "" {
			continue
		}
		amounts[row.SKU] = amounts[row.SKU].Add(row.Amount)
	}
	return amounts
}

// sumNonSKU groups rows by description text, sums amounts, and keeps only the
// non-zero charges. The output follows the catalog order of the non-SKU
// descriptions so repeated runs produce identical breakdowns.
func sumNonSKU(rows []ledger.Row) []NonSKUCharge {
	sums := make(map[ledger.Description]decimal.Decimal)
	for _, row := range rows {
		sums[row.Description] = sums[row.Description].Add(row.Amount)
	}

	var charges []NonSKUCharge
	for _, desc := range nonSKUDescriptions {
		amount, ok := sums[desc]
		if !ok || amount.IsZero() {
			continue
		}
		charges = append(charges, NonSKUCharge{Description: desc, Amount: amount})
	}
	return charges
}

// sumAmounts sums the amount column of a row set.
func sumAmounts(rows []ledger.Row) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Amount)
	}
	return total
}
