package report

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/auxdata"
	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/config"
	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/ledger"
)

func TestOverviewOrderAndRelabel(t *testing.T) {
	stmt := statement(
		row("A1", ledger.ChannelAmazon, ledger.Principal, "10.00", 1),
		row("A1", ledger.ChannelAmazon, ledger.Commission, "-1.50", 1),
		row("", ledger.ChannelNone, ledger.StorageFee, "-1.00", 0),
		row("", ledger.ChannelNone, ledger.SubscriptionFee, "-39.99", 0),
		row("", ledger.ChannelNone, ledger.StorageRenewalBilling, "-4.00", 0),
	)
	src := &auxdata.Sources{
		Inventory:      []auxdata.InventoryItem{{SKU: "A1", FNSKU: "X001"}},
		MonthlyStorage: []auxdata.StorageFee{{FNSKU: "X001", Fee: dec("5.00")}},
		Advertising:    []auxdata.AdSpend{{SKU: "A1", Spend: dec("2.00")}},
	}
	cfg := &config.RunConfig{IncludeAdvertising: true}

	res := New(cfg, zerolog.Nop()).Run(stmt, src)

	wantLabels := []string{
		"Amazon Revenue",
		"Storage Fee",
		"Advertising",
		"Subscription Fee",
		"Long-Term Storage Fee",
	}
	if len(res.Overview) != len(wantLabels) {
		t.Fatalf("got %d overview lines, want %d: %+v", len(res.Overview), len(wantLabels), res.Overview)
	}
	for i, want := range wantLabels {
		if res.Overview[i].Label != want {
			t.Errorf("line %d = %q, want %q", i, res.Overview[i].Label, want)
		}
	}

	assertDecimal(t, "amazon revenue", res.Overview[0].Amount, "8.50")
	assertDecimal(t, "storage total", res.Overview[1].Amount, "-5.00")
	assertDecimal(t, "advertising total", res.Overview[2].Amount, "-2.00")
	assertDecimal(t, "subscription", res.Overview[3].Amount, "-39.99")
	assertDecimal(t, "long-term storage", res.Overview[4].Amount, "-4.00")
}

func TestOverviewWithoutOptionalStages(t *testing.T) {
	stmt := statement(
		row("A1", ledger.ChannelAmazon, ledger.Principal, "10.00", 1),
		row("A1", ledger.ChannelAmazon, ledger.Commission, "-1.50", 1),
	)

	res := New(&config.RunConfig{}, zerolog.Nop()).Run(stmt, &auxdata.Sources{})

	if len(res.Overview) != 1 {
		t.Fatalf("got %d overview lines, want only Amazon Revenue: %+v", len(res.Overview), res.Overview)
	}
	if res.Overview[0].Label != "Amazon Revenue" {
		t.Errorf("line = %q, want Amazon Revenue", res.Overview[0].Label)
	}
}
