package report

import (
	"testing"

	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/ledger"
)

func TestClassifyChannelFilter(t *testing.T) {
	rows := []ledger.Row{
		row("A1", ledger.ChannelAmazon, ledger.Commission, "-1.50", 1),
		row("A2", ledger.ChannelMerchant, ledger.Commission, "-1.00", 1),
		row("A3", ledger.ChannelNone, ledger.Commission, "-0.50", 1),
	}

	matched := Classify(rows, UnitsSold)
	if len(matched) != 1 || matched[0].SKU != "A1" {
		t.Errorf("UnitsSold matched %v, want only the AFN commission row", matched)
	}

	// Sales revenue has no channel filter: Principal on any channel counts.
	rows = []ledger.Row{
		row("A1", ledger.ChannelAmazon, ledger.Principal, "10.00", 1),
		row("A2", ledger.ChannelMerchant, ledger.Principal, "12.00", 1),
	}
	if got := len(Classify(rows, SalesRevenue)); got != 2 {
		t.Errorf("SalesRevenue matched %d rows, want 2", got)
	}
	// Merchant units require both the merchant channel and Principal.
	if got := Classify(rows, MerchantUnits); len(got) != 1 || got[0].SKU != "A2" {
		t.Errorf("MerchantUnits matched %v, want only the MFN principal row", got)
	}
}

func TestClassifyEmptyMatchIsValid(t *testing.T) {
	rows := []ledger.Row{
		row("A1", ledger.ChannelAmazon, ledger.Principal, "10.00", 1),
	}
	if got := Classify(rows, FBAFees); got != nil {
		t.Errorf("expected empty match, got %v", got)
	}
}

// TestNonSaleBucketsAreDeliberatelyAsymmetric pins the overlapping but
// non-identical description sets of the non-sale-units and non-sales-revenue
// buckets. Units and revenue are tracked on independent axes; the revenue set
// is a strict superset. If this test fails because someone "unified" the two
// sets, revert that change.
func TestNonSaleBucketsAreDeliberatelyAsymmetric(t *testing.T) {
	unitOnly := []ledger.Description{
		ledger.FreeReplacementRefundItems,
		ledger.RefundCommission,
		ledger.ReversalReimbursement,
		ledger.WarehouseDamage,
		ledger.WarehouseDamageException,
		ledger.WarehouseLost,
		ledger.WarehouseLostManual,
	}
	revenueOnly := []ledger.Description{
		ledger.CompensatedClawback,
		ledger.VariableClosingFee,
		ledger.RestockingFee,
	}

	for _, d := range unitOnly {
		if !NonSaleUnits.Descriptions[d] {
			t.Errorf("%s missing from NonSaleUnits", d)
		}
		if !NonSalesRevenue.Descriptions[d] {
			t.Errorf("%s missing from NonSalesRevenue (revenue set is a superset)", d)
		}
	}
	for _, d := range revenueOnly {
		if NonSaleUnits.Descriptions[d] {
			t.Errorf("%s must NOT be in NonSaleUnits: it moves revenue without units", d)
		}
		if !NonSalesRevenue.Descriptions[d] {
			t.Errorf("%s missing from NonSalesRevenue", d)
		}
	}

	if len(NonSaleUnits.Descriptions) != len(unitOnly) {
		t.Errorf("NonSaleUnits has %d descriptions, want %d",
			len(NonSaleUnits.Descriptions), len(unitOnly))
	}
	if len(NonSalesRevenue.Descriptions) != len(unitOnly)+len(revenueOnly) {
		t.Errorf("NonSalesRevenue has %d descriptions, want %d",
			len(NonSalesRevenue.Descriptions), len(unitOnly)+len(revenueOnly))
	}
}

// TestRefundCommissionOnBothAxes verifies the design choice that a single
// description can contribute to independently computed buckets.
func TestRefundCommissionOnBothAxes(t *testing.T) {
	rows := []ledger.Row{
		row("A1", ledger.ChannelAmazon, ledger.RefundCommission, "0.30", 1),
	}
	if len(Classify(rows, NonSaleUnits)) != 1 {
		t.Error("RefundCommission must contribute to non-sale units")
	}
	if len(Classify(rows, NonSalesRevenue)) != 1 {
		t.Error("RefundCommission must contribute to non-sales revenue")
	}
}

func TestNonSKUBucketMembership(t *testing.T) {
	in := []ledger.Description{
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
	for _, d := range in {
		if !NonSKUCharges.Descriptions[d] {
			t.Errorf("%s missing from NonSKUCharges", d)
		}
	}
	if NonSKUCharges.Descriptions[ledger.Principal] || NonSKUCharges.Descriptions[ledger.StorageFee] {
		t.Error("per-SKU descriptions must not leak into NonSKUCharges")
	}
}
