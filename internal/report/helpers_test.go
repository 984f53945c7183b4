package report

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/ledger"
)

// row builds a statement line item for tests.
func row(sku string, ch ledger.Channel, desc ledger.Description, amount string, qty int64) ledger.Row {
	return ledger.Row{
		SKU:         sku,
		Channel:     ch,
		Description: desc,
		Amount:      dec(amount),
		Quantity:    qty,
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// statement wraps rows into a Statement with a fixed period.
func statement(rows ...ledger.Row) *ledger.Statement {
	return &ledger.Statement{
		Rows:         rows,
		PeriodStart:  "2024-05-01",
		PeriodEnd:    "2024-05-15",
		Unrecognized: map[string]int{},
	}
}

// assertDecimal fails the test when got != want.
func assertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}
