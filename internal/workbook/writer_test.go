package workbook

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/report"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleResult() *report.Result {
	return &report.Result{
		Products: []report.ProductRecord{
			{
				SKU:           "A1",
				Title:         "Widget Pro",
				UnitsSold:     3,
				TotalUnits:    3,
				SalesRevenue:  dec("30.00"),
				Commission:    dec("-4.50"),
				AmazonRevenue: dec("25.50"),
				TotalReturn:   dec("25.50"),
				ReturnPerUnit: decimal.NullDecimal{Decimal: dec("8.50"), Valid: true},
			},
			{
				SKU:           "B2",
				UnitsSold:     1,
				TotalUnits:    1,
				SalesRevenue:  dec("10.00"),
				AmazonRevenue: dec("10.00"),
				TotalReturn:   dec("10.00"),
				// Undefined ratio: the cell must stay empty.
				ReturnPerUnit: decimal.NullDecimal{},
			},
		},
		Overview: []report.OverviewLine{
			{Label: "Amazon Revenue", Amount: dec("35.50")},
			{Label: "Subscription Fee", Amount: dec("-39.99")},
		},
		Families: []report.FamilyView{
			{Name: "Alpha", Products: nil},
		},
		PeriodStart: "2024-05-01",
		PeriodEnd:   "2024-05-15",
	}
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Settlement_2024-05-01_2024-05-15.xlsx")

	if err := Write(path, sampleResult()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := map[string]bool{"Sales": true, "Overview": true, "Alpha": true}
	for _, s := range sheets {
		delete(want, s)
	}
	if len(want) != 0 {
		t.Errorf("missing sheets: %v (got %v)", want, sheets)
	}

	// Header row of the Sales sheet.
	if got, _ := f.GetCellValue("Sales", "A1"); got != "SKU" {
		t.Errorf("Sales!A1 = %q, want SKU", got)
	}
	if got, _ := f.GetCellValue("Sales", "B1"); got != "Title" {
		t.Errorf("Sales!B1 = %q, want Title", got)
	}

	// First data row.
	if got, _ := f.GetCellValue("Sales", "A2"); got != "A1" {
		t.Errorf("Sales!A2 = %q, want A1", got)
	}
	if got, _ := f.GetCellValue("Sales", "B2"); got != "Widget Pro" {
		t.Errorf("Sales!B2 = %q, want Widget Pro", got)
	}

	// Overview lines.
	if got, _ := f.GetCellValue("Overview", "A2"); got != "Amazon Revenue" {
		t.Errorf("Overview!A2 = %q, want Amazon Revenue", got)
	}
	if got, _ := f.GetCellValue("Overview", "B3"); got != "-39.99" {
		t.Errorf("Overview!B3 = %q, want -39.99", got)
	}
}

func TestProductColumnsConditional(t *testing.T) {
	tests := []struct {
		name    string
		inc     report.Included
		want    []string
		notWant []string
	}{
		{
			name:    "base",
			inc:     report.Included{},
			want:    []string{"SKU", "Amazon Revenue", "Total Return", "Return Per Unit"},
			notWant: []string{"Storage Fee", "Advertising Spend", "ROI", "Return Before Storage & Ads"},
		},
		{
			name:    "storage only",
			inc:     report.Included{MonthlyStorage: true},
			want:    []string{"Storage Fee", "Return Before Storage & Ads"},
			notWant: []string{"Advertising Spend", "Long-Term Storage Fee", "ROI"},
		},
		{
			name:    "cost without ads",
			inc:     report.Included{Cost: true},
			want:    []string{"Cost Per Unit", "Total Cost", "Total Profit", "ROI"},
			notWant: []string{"ROI (Ads as Cost)", "ROI Delta"},
		},
		{
			name: "everything",
			inc: report.Included{
				MonthlyStorage:  true,
				LongTermStorage: true,
				Advertising:     true,
				Cost:            true,
			},
			want: []string{
				"Storage Fee", "Advertising Spend", "Long-Term Storage Fee",
				"ROI (Ads as Cost)", "ROI Delta",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels := map[string]bool{}
			for _, col := range productColumns(tt.inc) {
				labels[col.label] = true
			}
			for _, w := range tt.want {
				if !labels[w] {
					t.Errorf("column %q missing", w)
				}
			}
			for _, nw := range tt.notWant {
				if labels[nw] {
					t.Errorf("column %q should not be present", nw)
				}
			}
		})
	}
}
