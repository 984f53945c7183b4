// =============================================================================
// FBA Settlement Analyzer - Metrics Engine
// =============================================================================
//
// The metrics engine combines the bucketed aggregates and the joined
// auxiliary data into the derived columns of a ProductRecord. The computation
// order is fixed and config-independent; configuration only decides which
// enrichment stages contribute, never when they run:
//
//   1. Total Units          = Units Sold + Non-Sale Units + Merchant Units
//   2. Amazon Revenue       = Sales Revenue + Commission + FBA Fees
//                             + Non-Sales Revenue            (missing -> 0)
//   3. + Storage Fee        when the period was charged      (missing -> 0)
//   4. + Advertising Spend  when advertising is included     (missing -> 0)
//   5. + Long-Term Storage  when the period was charged      (missing -> 0)
//   6. Return Per Unit      = Total Return / Total Units     (0 units -> null)
//   7. Cost, Profit, ROI    when cost is included
//
// An undefined ratio (zero denominator) is a null decimal, never a fabricated
// zero; the finisher decides which nulls drop the row and which merely leave
// a blank cell.
//
// =============================================================================

package report

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// INCLUDED STAGES
// =============================================================================

// Included records which optional enrichment stages contributed to a run.
// Advertising and cost follow the run configuration; the storage stages are
// auto-detected from the statement and additionally require their report to
// be configured.
type Included struct {
	MonthlyStorage  bool
	LongTermStorage bool
	Advertising     bool
	Cost            bool
}

// BeforeStorageAds reports whether the secondary "return before storage and
// advertising" comparison column is carried.
func (inc Included) BeforeStorageAds() bool {
	return inc.MonthlyStorage || inc.LongTermStorage || inc.Advertising
}

// =============================================================================
// PRODUCT RECORD
// =============================================================================

// ProductRecord is the per-SKU output row of the reconciliation.
// All canonical field names; presentation labels are applied at the workbook
// boundary only.
type ProductRecord struct {
	SKU   string
	Title string

	// Unit buckets.
	UnitsSold     int64
	NonSaleUnits  int64
	MerchantUnits int64
	TotalUnits    int64

	// Revenue buckets.
	SalesRevenue    decimal.Decimal
	Commission      decimal.Decimal
	FBAFees         decimal.Decimal
	NonSalesRevenue decimal.Decimal
	AmazonRevenue   decimal.Decimal

	// Enrichment columns, zero-filled when their stage ran and the SKU had
	// no matching source row. Meaningful only when the stage is included.
	StorageFee decimal.Decimal
	LTSFee     decimal.Decimal
	AdSpend    decimal.Decimal

	// Derived totals.
	ReturnBeforeStorageAds decimal.Decimal
	TotalReturn            decimal.Decimal
	ReturnPerUnit          decimal.NullDecimal

	// Cost metrics, meaningful only when the cost stage is included.
	CostPerUnit decimal.Decimal
	TotalCost   decimal.Decimal
	TotalProfit decimal.Decimal
	ROI         decimal.NullDecimal
	ROIWithAds  decimal.NullDecimal
	ROIDelta    decimal.NullDecimal
}

// joined bundles the per-SKU auxiliary maps produced by the joiner.
type joined struct {
	titles  map[string]string
	storage map[string]decimal.Decimal
	lts     map[string]decimal.Decimal
	ads     map[string]decimal.Decimal
	cost    map[string]decimal.Decimal
}

// =============================================================================
// RECORD COMPUTATION
// =============================================================================

// buildRecord computes the full ProductRecord for one SKU. Missing bucket and
// enrichment values fill to zero here, per the declared fill policy; only
// ratios stay null when undefined.
func buildRecord(sku string, agg *Aggregates, jd *joined, inc Included) ProductRecord {
	rec := ProductRecord{
		SKU:   sku,
		Title: jd.titles[sku],

		UnitsSold:     agg.UnitsSold[sku],
		NonSaleUnits:  agg.NonSaleUnits[sku],
		MerchantUnits: agg.MerchantUnits[sku],

		SalesRevenue:    agg.SalesRevenue[sku],
		Commission:      agg.Commission[sku],
		FBAFees:         agg.FBAFees[sku],
		NonSalesRevenue: agg.NonSalesRevenue[sku],
	}

	rec.TotalUnits = rec.UnitsSold + rec.NonSaleUnits + rec.MerchantUnits

	rec.AmazonRevenue = rec.SalesRevenue.
		Add(rec.Commission).
		Add(rec.FBAFees).
		Add(rec.NonSalesRevenue)

	rec.ReturnBeforeStorageAds = rec.AmazonRevenue
	rec.TotalReturn = rec.AmazonRevenue

	if inc.MonthlyStorage {
		rec.StorageFee = jd.storage[sku]
		rec.TotalReturn = rec.TotalReturn.Add(rec.StorageFee)
	}
	if inc.Advertising {
		rec.AdSpend = jd.ads[sku]
		rec.TotalReturn = rec.TotalReturn.Add(rec.AdSpend)
	}
	if inc.LongTermStorage {
		rec.LTSFee = jd.lts[sku]
		rec.TotalReturn = rec.TotalReturn.Add(rec.LTSFee)
	}

	if rec.TotalUnits != 0 {
		rec.ReturnPerUnit = nullDecimal(
			rec.TotalReturn.Div(decimal.NewFromInt(rec.TotalUnits)))
	}

	if inc.Cost {
		rec.CostPerUnit = jd.cost[sku]
		rec.TotalCost = rec.CostPerUnit.Mul(decimal.NewFromInt(rec.TotalUnits)).Neg()
		rec.TotalProfit = rec.TotalCost.Add(rec.TotalReturn)

		if !rec.TotalCost.IsZero() {
			rec.ROI = nullDecimal(rec.TotalProfit.Neg().Div(rec.TotalCost))
		}

		if inc.Advertising {
			// Parallel ROI treating advertising as cost instead of as a
			// revenue reduction. Profit is unchanged; the denominator grows.
			costWithAds := rec.TotalCost.Add(rec.AdSpend)
			if !costWithAds.IsZero() {
				rec.ROIWithAds = nullDecimal(rec.TotalProfit.Neg().Div(costWithAds))
			}
			if rec.ROI.Valid && rec.ROIWithAds.Valid {
				rec.ROIDelta = nullDecimal(
					rec.ROI.Decimal.Sub(rec.ROIWithAds.Decimal))
			}
		}
	}

	return rec
}

// nullDecimal wraps a computed value as a valid NullDecimal.
func nullDecimal(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
