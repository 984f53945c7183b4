// =============================================================================
// FBA Settlement Analyzer - Workbook Writer Module
// =============================================================================
//
// This module is the serialization boundary of the analyzer. It takes the
// finished reconciliation result and emits the output XLSX workbook:
//
//   Sales     - the final per-SKU product table
//   Overview  - the whole-statement summary (labeled amounts)
//   <family>  - one sheet per configured SKU family sub-view
//
// Presentation concerns live here and only here: the display-label mapping
// from canonical field names, which optional columns appear for which
// included stages, column widths, and number formatting. The metrics engine
// never sees a display label.
//
// =============================================================================

package workbook

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/report"
	"github.com/neoxyte/FBA-Settlement-Analyzer/pkg/utils"
)

// ratioPlaces is the rounding applied to per-unit and ROI ratios for display.
const ratioPlaces = 4

// =============================================================================
// COLUMN LAYOUT
// =============================================================================

// column describes one output column of a product sheet.
type column struct {
	// label is the display header.
	label string

	// width is the sheet column width in characters.
	width float64

	// value extracts the cell value for a record. Returning nil leaves the
	// cell empty (the missing-value presentation for undefined ratios).
	value func(rec *report.ProductRecord) interface{}
}

// productColumns builds the display column layout for the included stages.
// The order is fixed; configuration only adds or removes columns.
func productColumns(inc report.Included) []column {
	cols := []column{
		{"SKU", 24, func(r *report.ProductRecord) interface{} { return r.SKU }},
		{"Title", 42, func(r *report.ProductRecord) interface{} { return r.Title }},
		{"Units Sold", 11, func(r *report.ProductRecord) interface{} { return r.UnitsSold }},
		{"Non-Sale Units", 14, func(r *report.ProductRecord) interface{} { return r.NonSaleUnits }},
		{"Merchant Fulfilled Units", 22, func(r *report.ProductRecord) interface{} { return r.MerchantUnits }},
		{"Total Units", 11, func(r *report.ProductRecord) interface{} { return r.TotalUnits }},
		{"Sales Revenue", 14, func(r *report.ProductRecord) interface{} { return money(r.SalesRevenue) }},
		{"Commission", 12, func(r *report.ProductRecord) interface{} { return money(r.Commission) }},
		{"FBA Fees", 12, func(r *report.ProductRecord) interface{} { return money(r.FBAFees) }},
		{"Non-Sales Revenue", 17, func(r *report.ProductRecord) interface{} { return money(r.NonSalesRevenue) }},
		{"Amazon Revenue", 15, func(r *report.ProductRecord) interface{} { return money(r.AmazonRevenue) }},
	}

	if inc.MonthlyStorage {
		cols = append(cols, column{"Storage Fee", 12,
			func(r *report.ProductRecord) interface{} { return money(r.StorageFee) }})
	}
	if inc.Advertising {
		cols = append(cols, column{"Advertising Spend", 17,
			func(r *report.ProductRecord) interface{} { return money(r.AdSpend) }})
	}
	if inc.LongTermStorage {
		cols = append(cols, column{"Long-Term Storage Fee", 20,
			func(r *report.ProductRecord) interface{} { return money(r.LTSFee) }})
	}
	if inc.BeforeStorageAds() {
		cols = append(cols, column{"Return Before Storage & Ads", 24,
			func(r *report.ProductRecord) interface{} { return money(r.ReturnBeforeStorageAds) }})
	}

	cols = append(cols,
		column{"Total Return", 13,
			func(r *report.ProductRecord) interface{} { return money(r.TotalReturn) }},
		column{"Return Per Unit", 15,
			func(r *report.ProductRecord) interface{} { return ratio(r.ReturnPerUnit) }},
	)

	if inc.Cost {
		cols = append(cols,
			column{"Cost Per Unit", 13,
				func(r *report.ProductRecord) interface{} { return money(r.CostPerUnit) }},
			column{"Total Cost", 12,
				func(r *report.ProductRecord) interface{} { return money(r.TotalCost) }},
			column{"Total Profit", 13,
				func(r *report.ProductRecord) interface{} { return money(r.TotalProfit) }},
			column{"ROI", 10,
				func(r *report.ProductRecord) interface{} { return ratio(r.ROI) }},
		)
		if inc.Advertising {
			cols = append(cols,
				column{"ROI (Ads as Cost)", 16,
					func(r *report.ProductRecord) interface{} { return ratio(r.ROIWithAds) }},
				column{"ROI Delta", 10,
					func(r *report.ProductRecord) interface{} { return ratio(r.ROIDelta) }},
			)
		}
	}

	return cols
}

// money renders a monetary decimal as a numeric cell value.
func money(d decimal.Decimal) interface{} {
	return d.InexactFloat64()
}

// ratio renders a nullable ratio; nil leaves the cell empty.
func ratio(d decimal.NullDecimal) interface{} {
	if !d.Valid {
		return nil
	}
	return d.Decimal.Round(ratioPlaces).InexactFloat64()
}

// =============================================================================
// WORKBOOK EMISSION
// =============================================================================

// Write emits the full workbook for a result.
//
// PARAMETERS:
//   - path: The final workbook path. The file is written to a temporary name
//     in the same directory first and renamed into place, so a failed run
//     never leaves a truncated workbook behind.
//   - res: The finished reconciliation result.
//
// RETURNS:
//   - An error if any sheet cannot be written or the file cannot be saved.
func Write(path string, res *report.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the Sales sheet.
	if err := f.SetSheetName(f.GetSheetName(0), "Sales"); err != nil {
		return fmt.Errorf("failed to create Sales sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	cols := productColumns(res.Included)

	if err := writeProductSheet(f, "Sales", cols, res.Products, headerStyle); err != nil {
		return err
	}
	if err := writeOverviewSheet(f, res.Overview, headerStyle); err != nil {
		return err
	}
	for _, family := range res.Families {
		if _, err := f.NewSheet(family.Name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", family.Name, err)
		}
		if err := writeProductSheet(f, family.Name, cols, family.Products, headerStyle); err != nil {
			return err
		}
	}

	tmp := utils.TempPath(path)
	if err := f.SaveAs(tmp); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move workbook into place: %w", err)
	}
	return nil
}

// writeProductSheet writes the header row, data rows, and column widths of
// one product-table sheet.
func writeProductSheet(f *excelize.File, sheet string, cols []column, products []report.ProductRecord, headerStyle int) error {
	for i, col := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col.label); err != nil {
			return fmt.Errorf("%s: failed to write header: %w", sheet, err)
		}

		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, col.width); err != nil {
			return fmt.Errorf("%s: failed to set column width: %w", sheet, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(cols))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("%s: failed to style header: %w", sheet, err)
	}

	for rowIdx := range products {
		rec := &products[rowIdx]
		for colIdx, col := range cols {
			value := col.value(rec)
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("%s: failed to write row %d: %w", sheet, rowIdx+2, err)
			}
		}
	}

	return nil
}

// writeOverviewSheet writes the labeled-amount summary sheet.
func writeOverviewSheet(f *excelize.File, lines []report.OverviewLine, headerStyle int) error {
	const sheet = "Overview"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create Overview sheet: %w", err)
	}

	if err := f.SetCellValue(sheet, "A1", "Line"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "B1", "Amount"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "B1", headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", 34); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 15); err != nil {
		return err
	}

	for i, line := range lines {
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), line.Label); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), line.Amount.InexactFloat64()); err != nil {
			return err
		}
	}

	return nil
}
