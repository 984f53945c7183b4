// =============================================================================
// FBA Settlement Analyzer - Report Engine Orchestration
// =============================================================================
//
// The Analyzer runs the full reconciliation for one statement: classify and
// aggregate the ledger, join the auxiliary datasets, compute the derived
// metrics, finish the table, and assemble the overview. It is a synchronous
// single-pass batch; the statement and auxiliary sources are immutable inputs
// and the Result is built fresh on every call.
//
// =============================================================================

package report

import (
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/auxdata"
	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/config"
	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/ledger"
)

// =============================================================================
// ANALYZER
// =============================================================================

// Analyzer runs the reconciliation pipeline.
type Analyzer struct {
	cfg *config.RunConfig
	log zerolog.Logger
}

// New creates an Analyzer for one run configuration.
func New(cfg *config.RunConfig, log zerolog.Logger) *Analyzer {
	return &Analyzer{cfg: cfg, log: log}
}

// Result is the complete output of one reconciliation run.
type Result struct {
	// Products is the final sorted per-SKU table.
	Products []ProductRecord

	// Overview is the whole-statement summary, in display order.
	Overview []OverviewLine

	// Families are the configured sub-views of the product table.
	Families []FamilyView

	// Included records which enrichment stages contributed.
	Included Included

	// Dropped counts the rows removed by the finisher.
	Dropped DropStats

	// PeriodStart / PeriodEnd are the statement period dates (YYYY-MM-DD).
	PeriodStart string
	PeriodEnd   string
}

// =============================================================================
// PIPELINE
// =============================================================================

// Run executes the reconciliation.
//
// PARAMETERS:
//   - stmt: The parsed settlement statement.
//   - src: The loaded auxiliary datasets. Datasets the configuration did not
//     enable are nil and their stages are skipped.
//
// RETURNS:
//   - The complete Result. Identifier-resolution gaps and numeric
//     degeneracies are handled per fill policy and never fail the run;
//     schema errors were already caught at load time.
func (a *Analyzer) Run(stmt *ledger.Statement, src *auxdata.Sources) *Result {
	for desc, count := range stmt.Unrecognized {
		a.log.Warn().
			Str("description", desc).
			Int("rows", count).
			Msg("unrecognized amount-description, classified as other")
	}
	if stmt.MalformedQuantities > 0 {
		a.log.Warn().
			Int("rows", stmt.MalformedQuantities).
			Msg("malformed quantity-purchased values counted as zero units")
	}

	agg := Aggregate(stmt)

	inc := Included{
		MonthlyStorage:  agg.MonthlyStorageCharged && src.MonthlyStorage != nil,
		LongTermStorage: agg.LTSCharged && src.LongTermStorage != nil,
		Advertising:     a.cfg.IncludeAdvertising,
		Cost:            a.cfg.IncludeCost,
	}
	if agg.MonthlyStorageCharged && src.MonthlyStorage == nil {
		a.log.Warn().Msg("statement has storage charges but no monthly storage report is configured; storage stage skipped")
	}
	if agg.LTSCharged && src.LongTermStorage == nil {
		a.log.Warn().Msg("statement has long-term storage charges but no long-term storage report is configured; stage skipped")
	}

	jd := a.join(src, inc)

	index := buildIndex(agg, jd, inc)
	records := make([]ProductRecord, 0, len(index))
	for _, sku := range index {
		records = append(records, buildRecord(sku, agg, jd, inc))
	}

	overview := buildOverview(records, agg, jd, inc)
	products, dropped := finish(records, inc)
	families := familyViews(products, a.cfg.FamilyTabs)

	a.log.Info().
		Int("statement_rows", len(stmt.Rows)).
		Int("skus", len(index)).
		Int("products", len(products)).
		Int("dropped_zero_activity", dropped.ZeroActivity).
		Int("dropped_unitless", dropped.UnitlessAnomaly).
		Bool("monthly_storage", inc.MonthlyStorage).
		Bool("long_term_storage", inc.LongTermStorage).
		Bool("advertising", inc.Advertising).
		Bool("cost", inc.Cost).
		Msg("reconciliation complete")

	return &Result{
		Products:    products,
		Overview:    overview,
		Families:    families,
		Included:    inc,
		Dropped:     dropped,
		PeriodStart: stmt.PeriodStart,
		PeriodEnd:   stmt.PeriodEnd,
	}
}

// join builds the per-SKU auxiliary maps for the stages that run.
func (a *Analyzer) join(src *auxdata.Sources, inc Included) *joined {
	jd := &joined{
		titles:  TitlesBySKU(src.Inventory),
		storage: map[string]decimal.Decimal{},
		lts:     map[string]decimal.Decimal{},
		ads:     map[string]decimal.Decimal{},
		cost:    map[string]decimal.Decimal{},
	}

	lookup := BuildLookup(src.Inventory)

	if inc.MonthlyStorage {
		var unmapped int
		jd.storage, unmapped = StorageBySKU(src.MonthlyStorage, lookup)
		if unmapped > 0 {
			a.log.Warn().
				Int("rows", unmapped).
				Msg("monthly storage rows with FNSKU not in inventory archive; skipped")
		}
	}
	if inc.LongTermStorage {
		var unmapped int
		jd.lts, unmapped = StorageBySKU(src.LongTermStorage, lookup)
		if unmapped > 0 {
			a.log.Warn().
				Int("rows", unmapped).
				Msg("long-term storage rows with FNSKU not in inventory archive; skipped")
		}
	}
	if inc.Advertising {
		jd.ads = AdvertisingBySKU(src.Advertising)
	}
	if inc.Cost {
		jd.cost = CostPerUnitBySKU(src.Cost)
	}

	return jd
}

// buildIndex unions the SKUs of every bucket and every joined enrichment
// source into the product index, sorted for deterministic iteration.
//
// The title map is deliberately excluded: the inventory archive lists the
// whole catalog, and outer-joining it would flood the index with products
// that had no statement activity at all. Titles enrich existing rows only.
func buildIndex(agg *Aggregates, jd *joined, inc Included) []string {
	seen := make(map[string]bool)

	for sku := range agg.UnitsSold {
		seen[sku] = true
	}
	for sku := range agg.NonSaleUnits {
		seen[sku] = true
	}
	for sku := range agg.MerchantUnits {
		seen[sku] = true
	}
	for sku := range agg.SalesRevenue {
		seen[sku] = true
	}
	for sku := range agg.Commission {
		seen[sku] = true
	}
	for sku := range agg.FBAFees {
		seen[sku] = true
	}
	for sku := range agg.NonSalesRevenue {
		seen[sku] = true
	}
	if inc.MonthlyStorage {
		for sku := range jd.storage {
			seen[sku] = true
		}
	}
	if inc.LongTermStorage {
		for sku := range jd.lts {
			seen[sku] = true
		}
	}
	if inc.Advertising {
		for sku := range jd.ads {
			seen[sku] = true
		}
	}
	if inc.Cost {
		for sku := range jd.cost {
			seen[sku] = true
		}
	}

	index := make([]string, 0, len(seen))
	for sku := range seen {
		index = append(index, sku)
	}
	sort.Strings(index)
	return index
}
