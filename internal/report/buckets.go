// =============================================================================
// FBA Settlement Analyzer - Bucket Catalog
// =============================================================================
//
// This file declares the classification buckets that partition settlement
// line items into the semantic categories of the reconciliation. A bucket is
// a fixed set of amount-description tags, optionally narrowed by fulfillment
// channel, read on one of two axes: units (quantity-purchased) or amount.
//
// The catalog is static, data-driven business knowledge. Two details are
// deliberate and load-bearing:
//
//   - Units sold keys off Commission presence on the marketplace channel,
//     not off per-unit fulfillment fees. The fee-based definition was an
//     earlier rule superseded once fee waivers made it undercount.
//
//   - The non-sale-units and non-sales-revenue description sets overlap but
//     are NOT identical. Units and revenue are tracked on independent axes:
//     RefundCommission moves revenue and marks a unit movement, while
//     COMPENSATED_CLAWBACK, VariableClosingFee and RestockingFee move revenue
//     without any unit movement. Do not unify the two sets.
//
// =============================================================================

package report

import "github.com/neoxyte/FBA-Settlement-Analyzer/internal/ledger"

// =============================================================================
// BUCKET DEFINITION
// =============================================================================

// Axis selects which column of a line item a bucket accumulates.
type Axis int

const (
	// AxisUnits sums the quantity-purchased column.
	AxisUnits Axis = iota

	// AxisAmount sums the signed monetary amount column.
	AxisAmount
)

// BucketDef defines one classification bucket.
type BucketDef struct {
	// Name is the canonical (internal) name of the bucket. Presentation
	// labels live in internal/workbook, never here.
	Name string

	// Descriptions is the set of amount-description tags in this bucket.
	Descriptions map[ledger.Description]bool

	// FilterChannel narrows the bucket to one fulfillment channel when true.
	FilterChannel bool

	// Channel is the required channel when FilterChannel is set.
	Channel ledger.Channel

	// Axis is the column this bucket accumulates.
	Axis Axis
}

// descSet builds a membership set from a list of descriptions.
func descSet(descs ...ledger.Description) map[ledger.Description]bool {
	set := make(map[ledger.Description]bool, len(descs))
	for _, d := range descs {
		set[d] = true
	}
	return set
}

// =============================================================================
// THE CATALOG
// =============================================================================

// nonSaleUnitDescriptions are the unit movements outside a sale: free
// replacements, refund handling, and warehouse damage/loss reimbursements.
var nonSaleUnitDescriptions = []ledger.Description{
	ledger.FreeReplacementRefundItems,
	ledger.RefundCommission,
	ledger.ReversalReimbursement,
	ledger.WarehouseDamage,
	ledger.WarehouseDamageException,
	ledger.WarehouseLost,
	ledger.WarehouseLostManual,
}

// nonSalesRevenueDescriptions is the revenue-axis counterpart. It is a
// superset of the unit set; see the file header for why the asymmetry stays.
var nonSalesRevenueDescriptions = append(append([]ledger.Description{},
	nonSaleUnitDescriptions...),
	ledger.CompensatedClawback,
	ledger.VariableClosingFee,
	ledger.RestockingFee,
)

// UnitsSold counts marketplace-fulfilled units where Amazon charged its
// commission.
var UnitsSold = BucketDef{
	Name:          "UnitsSold",
	Descriptions:  descSet(ledger.Commission),
	FilterChannel: true,
	Channel:       ledger.ChannelAmazon,
	Axis:          AxisUnits,
}

// NonSaleUnits counts unit movements that are not sales.
var NonSaleUnits = BucketDef{
	Name:         "NonSaleUnits",
	Descriptions: descSet(nonSaleUnitDescriptions...),
	Axis:         AxisUnits,
}

// MerchantUnits counts merchant-fulfilled sale units.
var MerchantUnits = BucketDef{
	Name:          "MerchantUnits",
	Descriptions:  descSet(ledger.Principal),
	FilterChannel: true,
	Channel:       ledger.ChannelMerchant,
	Axis:          AxisUnits,
}

// SalesRevenue accumulates the principal of every sale, all channels.
var SalesRevenue = BucketDef{
	Name:         "SalesRevenue",
	Descriptions: descSet(ledger.Principal),
	Axis:         AxisAmount,
}

// CommissionBucket accumulates Amazon's referral commission.
var CommissionBucket = BucketDef{
	Name:         "Commission",
	Descriptions: descSet(ledger.Commission),
	Axis:         AxisAmount,
}

// FBAFees accumulates the fulfillment fee family.
var FBAFees = BucketDef{
	Name: "FBAFees",
	Descriptions: descSet(
		ledger.FBAPerOrderFulfillmentFee,
		ledger.FBAPerUnitFulfillmentFee,
		ledger.FBAWeightBasedFee,
	),
	Axis: AxisAmount,
}

// NonSalesRevenue accumulates revenue movements outside a sale.
var NonSalesRevenue = BucketDef{
	Name:         "NonSalesRevenue",
	Descriptions: descSet(nonSalesRevenueDescriptions...),
	Axis:         AxisAmount,
}

// nonSKUDescriptions are statement charges not attributable to a single
// product. Order matters: it is the display order of the overview breakdown.
var nonSKUDescriptions = []ledger.Description{
	ledger.SubscriptionFee,
	ledger.PreviousReserveAmountBalance,
	ledger.CurrentReserveAmount,
	ledger.RemovalComplete,
	ledger.Adjustment,
	ledger.DisposalComplete,
	ledger.FBACustomerReturnPerUnitFee,
	ledger.ShippingLabelPurchase,
	ledger.ShippingLabelPurchaseReturn,
	ledger.IncorrectFeesNonItemized,
	ledger.FBAInboundTransportationFee,
	ledger.FBAPickAndPackFee,
	ledger.StorageRenewalBilling,
}

// NonSKUCharges accumulates the non-product charges, grouped by description
// text rather than SKU.
var NonSKUCharges = BucketDef{
	Name:         "NonSKUCharges",
	Descriptions: descSet(nonSKUDescriptions...),
	Axis:         AxisAmount,
}

// storageChargeDetection and ltsChargeDetection feed the auto-detected
// include_monthly_storage / include_long_term_storage flags: a period is
// "charged" when the summed amount for the description is nonzero.
var storageChargeDetection = BucketDef{
	Name:         "StorageChargeDetection",
	Descriptions: descSet(ledger.StorageFee),
	Axis:         AxisAmount,
}

var ltsChargeDetection = BucketDef{
	Name:         "LTSChargeDetection",
	Descriptions: descSet(ledger.StorageRenewalBilling),
	Axis:         AxisAmount,
}
