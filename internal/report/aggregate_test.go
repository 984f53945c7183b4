package report

import (
	"math/rand"
	"testing"

	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/ledger"
)

func TestSumAmountBySKUExcludesEmptySKU(t *testing.T) {
	rows := []ledger.Row{
		row("A1", ledger.ChannelAmazon, ledger.Principal, "10.00", 1),
		row("", ledger.ChannelAmazon, ledger.Principal, "99.00", 1),
	}
	sums := SumAmountBySKU(rows)
	if len(sums) != 1 {
		t.Fatalf("got %d keys, want 1 (empty SKU excluded)", len(sums))
	}
	assertDecimal(t, "A1", sums["A1"], "10.00")
}

func TestAggregateOrderInvariance(t *testing.T) {
	rows := []ledger.Row{
		row("A1", ledger.ChannelAmazon, ledger.Principal, "10.00", 1),
		row("A1", ledger.ChannelAmazon, ledger.Principal, "11.50", 1),
		row("A2", ledger.ChannelAmazon, ledger.Principal, "7.25", 1),
		row("A1", ledger.ChannelAmazon, ledger.Commission, "-1.50", 1),
		row("A2", ledger.ChannelAmazon, ledger.Commission, "-1.10", 1),
		row("A1", ledger.ChannelAmazon, ledger.FBAPerUnitFulfillmentFee, "-3.20", 0),
	}

	want := Aggregate(statement(rows...))

	shuffled := make([]ledger.Row, len(rows))
	copy(shuffled, rows)
	rng := rand.New(rand.NewSource(42))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	got := Aggregate(statement(shuffled...))

	for sku, amount := range want.SalesRevenue {
		if !got.SalesRevenue[sku].Equal(amount) {
			t.Errorf("SalesRevenue[%s]: %s != %s after shuffle", sku, got.SalesRevenue[sku], amount)
		}
	}
	for sku, units := range want.UnitsSold {
		if got.UnitsSold[sku] != units {
			t.Errorf("UnitsSold[%s]: %d != %d after shuffle", sku, got.UnitsSold[sku], units)
		}
	}
	for sku, amount := range want.FBAFees {
		if !got.FBAFees[sku].Equal(amount) {
			t.Errorf("FBAFees[%s]: %s != %s after shuffle", sku, got.FBAFees[sku], amount)
		}
	}
}

func TestAggregateStorageDetection(t *testing.T) {
	t.Run("charged", func(t *testing.T) {
		agg := Aggregate(statement(
			row("", ledger.ChannelNone, ledger.StorageFee, "-12.34", 0),
		))
		if !agg.MonthlyStorageCharged {
			t.Error("MonthlyStorageCharged = false, want true")
		}
	})

	t.Run("zero amounts across all rows", func(t *testing.T) {
		agg := Aggregate(statement(
			row("", ledger.ChannelNone, ledger.StorageFee, "0", 0),
			row("", ledger.ChannelNone, ledger.StorageFee, "0.00", 0),
		))
		if agg.MonthlyStorageCharged {
			t.Error("MonthlyStorageCharged = true for all-zero storage rows, want false")
		}
	})

	t.Run("long-term storage", func(t *testing.T) {
		agg := Aggregate(statement(
			row("", ledger.ChannelNone, ledger.StorageRenewalBilling, "-4.00", 0),
		))
		if !agg.LTSCharged {
			t.Error("LTSCharged = false, want true")
		}
	})
}

func TestAggregateNonSKUCharges(t *testing.T) {
	agg := Aggregate(statement(
		row("", ledger.ChannelNone, ledger.CurrentReserveAmount, "-50.00", 0),
		row("", ledger.ChannelNone, ledger.SubscriptionFee, "-39.99", 0),
		row("", ledger.ChannelNone, ledger.Adjustment, "0", 0),
		row("", ledger.ChannelNone, ledger.SubscriptionFee, "0.00", 0),
	))

	if len(agg.NonSKU) != 2 {
		t.Fatalf("got %d non-SKU charges, want 2 (zero-sum charges filtered)", len(agg.NonSKU))
	}
	// Catalog order: subscription fee before reserves.
	if agg.NonSKU[0].Description != ledger.SubscriptionFee {
		t.Errorf("first charge = %s, want Subscription Fee", agg.NonSKU[0].Description)
	}
	assertDecimal(t, "subscription", agg.NonSKU[0].Amount, "-39.99")
	if agg.NonSKU[1].Description != ledger.CurrentReserveAmount {
		t.Errorf("second charge = %s, want Current Reserve Amount", agg.NonSKU[1].Description)
	}
}

// Re-deriving Amazon Revenue from the independently computed buckets must
// equal the sum of its four components exactly.
func TestBucketSumsRecombineExactly(t *testing.T) {
	rows := []ledger.Row{
		row("A1", ledger.ChannelAmazon, ledger.Principal, "10.00", 1),
		row("A1", ledger.ChannelAmazon, ledger.Commission, "-1.50", 1),
		row("A1", ledger.ChannelAmazon, ledger.FBAPerOrderFulfillmentFee, "-1.00", 0),
		row("A1", ledger.ChannelAmazon, ledger.FBAWeightBasedFee, "-0.45", 0),
		row("A1", ledger.ChannelAmazon, ledger.RestockingFee, "0.75", 0),
	}
	agg := Aggregate(statement(rows...))

	total := agg.SalesRevenue["A1"].
		Add(agg.Commission["A1"]).
		Add(agg.FBAFees["A1"]).
		Add(agg.NonSalesRevenue["A1"])
	assertDecimal(t, "recombined revenue", total, "7.80")
}
