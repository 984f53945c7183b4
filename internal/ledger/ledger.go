// =============================================================================
// FBA Settlement Analyzer - Settlement Ledger Module
// =============================================================================
//
// This module models the settlement statement flat file (v2). Each data row
// is one transaction line item: a signed monetary amount tagged with an
// amount-description, optionally attributed to a SKU and a fulfillment
// channel. A sentinel subset of rows carries the statement period dates and
// no amount-description; the period is extracted from those rows before they
// are discarded.
//
// The amount-description vocabulary is closed but extensible: descriptions
// observed in the wild that are not in the known set are counted and logged
// as unrecognized rather than silently dropped into no bucket.
//
// =============================================================================

package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/neoxyte/FBA-Settlement-Analyzer/internal/tabular"
)

// =============================================================================
// COLUMN NAMES
// =============================================================================

// Settlement flat file v2 column headers the analyzer depends on.
const (
	ColSKU             = "sku"
	ColDescription     = "amount-description"
	ColAmount          = "amount"
	ColQuantity        = "quantity-purchased"
	ColFulfillment     = "fulfillment-id"
	ColStartDate       = "settlement-start-date"
	ColEndDate         = "settlement-end-date"
	ColTransactionType = "transaction-type"
)

// RequiredColumns lists every statement column the pipeline reads.
func RequiredColumns() []string {
	return []string{
		ColSKU,
		ColDescription,
		ColAmount,
		ColQuantity,
		ColFulfillment,
		ColStartDate,
		ColEndDate,
		ColTransactionType,
	}
}

// =============================================================================
// FULFILLMENT CHANNEL
// =============================================================================

// Channel is the fulfillment channel of a line item.
type Channel int

const (
	// ChannelNone marks rows with no fulfillment attribution
	// (subscription fees, reserves, adjustments).
	ChannelNone Channel = iota

	// ChannelAmazon is marketplace fulfillment (flat file value "AFN").
	ChannelAmazon

	// ChannelMerchant is merchant fulfillment (flat file value "MFN").
	ChannelMerchant
)

// ParseChannel maps a fulfillment-id value to a Channel.
func ParseChannel(s string) Channel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AFN":
		return ChannelAmazon
	case "MFN":
		return ChannelMerchant
	default:
		return ChannelNone
	}
}

// =============================================================================
// AMOUNT DESCRIPTIONS
// =============================================================================

// Description is a settlement amount-description tag.
type Description string

// The known amount-description vocabulary. Bucket membership is defined in
// internal/report over these constants.
const (
	Principal                     Description = "Principal"
	Commission                    Description = "Commission"
	FBAPerOrderFulfillmentFee     Description = "FBAPerOrderFulfillmentFee"
	FBAPerUnitFulfillmentFee      Description = "FBAPerUnitFulfillmentFee"
	FBAWeightBasedFee             Description = "FBAWeightBasedFee"
	FreeReplacementRefundItems    Description = "FREE_REPLACEMENT_REFUND_ITEMS"
	RefundCommission              Description = "RefundCommission"
	ReversalReimbursement         Description = "REVERSAL_REIMBURSEMENT"
	WarehouseDamage               Description = "WAREHOUSE_DAMAGE"
	WarehouseDamageException      Description = "WAREHOUSE_DAMAGE_EXCEPTION"
	WarehouseLost                 Description = "WAREHOUSE_LOST"
	WarehouseLostManual           Description = "WAREHOUSE_LOST_MANUAL"
	CompensatedClawback           Description = "COMPENSATED_CLAWBACK"
	VariableClosingFee            Description = "VariableClosingFee"
	RestockingFee                 Description = "RestockingFee"
	SubscriptionFee               Description = "Subscription Fee"
	PreviousReserveAmountBalance  Description = "Previous Reserve Amount Balance"
	CurrentReserveAmount          Description = "Current Reserve Amount"
	RemovalComplete               Description = "RemovalComplete"
	Adjustment                    Description = "Adjustment"
	DisposalComplete              Description = "DisposalComplete"
	FBACustomerReturnPerUnitFee   Description = "FBACustomerReturnPerUnitFee"
	ShippingLabelPurchase         Description = "Shipping label purchase"
	ShippingLabelPurchaseReturn   Description = "Shipping label purchase for return"
	IncorrectFeesNonItemized      Description = "INCORRECT_FEES_NON_ITEMIZED"
	FBAInboundTransportationFee   Description = "FBAInboundTransportationFee"
	FBAPickAndPackFee             Description = "FBA Pick & Pack Fee"
	StorageFee                    Description = "Storage Fee"
	StorageRenewalBilling         Description = "StorageRenewalBilling"
	Shipping                      Description = "Shipping"
	ShippingChargeback            Description = "ShippingChargeback"
	Giftwrap                      Description = "Giftwrap"
	GiftwrapChargeback            Description = "GiftwrapChargeback"
	Goodwill                      Description = "Goodwill"
)

// knownDescriptions is the closed vocabulary. Descriptions outside this set
// are reported as unrecognized at load time.
var knownDescriptions = map[Description]bool{
	Principal:                    true,
	Commission:                   true,
	FBAPerOrderFulfillmentFee:    true,
	FBAPerUnitFulfillmentFee:     true,
	FBAWeightBasedFee:            true,
	FreeReplacementRefundItems:   true,
	RefundCommission:             true,
	ReversalReimbursement:        true,
	WarehouseDamage:              true,
	WarehouseDamageException:     true,
	WarehouseLost:                true,
	WarehouseLostManual:          true,
	CompensatedClawback:          true,
	VariableClosingFee:           true,
	RestockingFee:                true,
	SubscriptionFee:              true,
	PreviousReserveAmountBalance: true,
	CurrentReserveAmount:         true,
	RemovalComplete:              true,
	Adjustment:                   true,
	DisposalComplete:             true,
	FBACustomerReturnPerUnitFee:  true,
	ShippingLabelPurchase:        true,
	ShippingLabelPurchaseReturn:  true,
	IncorrectFeesNonItemized:     true,
	FBAInboundTransportationFee:  true,
	FBAPickAndPackFee:            true,
	StorageFee:                   true,
	StorageRenewalBilling:        true,
	Shipping:                     true,
	ShippingChargeback:           true,
	Giftwrap:                     true,
	GiftwrapChargeback:           true,
	Goodwill:                     true,
}

// Known reports whether d is part of the known vocabulary.
func (d Description) Known() bool {
	return knownDescriptions[d]
}

// =============================================================================
// ROW AND STATEMENT STRUCTURES
// =============================================================================

// Row is one settlement transaction line item.
type Row struct {
	// SKU is the seller product identifier. Empty for non-SKU charges
	// (subscription fees, reserves, shipping label purchases).
	SKU string

	// Channel is the fulfillment channel, ChannelNone when absent.
	Channel Channel

	// TransactionType is the raw transaction-type tag (Order, Refund, ...).
	TransactionType string

	// Description is the amount-description tag.
	Description Description

	// Amount is the signed monetary amount in the statement currency.
	Amount decimal.Decimal

	// Quantity is the quantity-purchased value; zero when the column is null.
	Quantity int64
}

// Statement is a fully parsed settlement statement.
type Statement struct {
	// Rows contains every transaction line item, in file order.
	Rows []Row

	// PeriodStart and PeriodEnd are the settlement period dates as
	// YYYY-MM-DD strings, extracted from the statement's sentinel rows.
	PeriodStart string
	PeriodEnd   string

	// Unrecognized counts rows per amount-description outside the known
	// vocabulary. These rows are kept in Rows (they still feed the totals a
	// human checks against the deposit) but contribute to no bucket.
	Unrecognized map[string]int

	// MalformedQuantities counts rows whose quantity-purchased value was
	// present but not an integer. The rows are kept with zero units so a
	// corrupted quantity column surfaces in the logs instead of silently
	// zeroing unit counts.
	MalformedQuantities int
}

// =============================================================================
// PARSING
// =============================================================================

// ParseStatement converts a raw statement table into a Statement.
//
// PARAMETERS:
//   - t: The tab-delimited statement table.
//
// RETURNS:
//   - A pointer to the Statement.
//   - An error if a required column is absent (fatal schema error) or if the
//     statement carries no period dates.
//
// PERIOD EXTRACTION:
//   The flat file opens with a summary row that has the settlement period
//   populated and no amount-description. That row is consumed here and does
//   not become a transaction Row; the invariant downstream is that every Row
//   has a non-empty Description.
func ParseStatement(t *tabular.Table) (*Statement, error) {
	if err := t.RequireColumns(RequiredColumns()...); err != nil {
		return nil, err
	}

	stmt := &Statement{
		Rows:         make([]Row, 0, len(t.Rows)),
		Unrecognized: make(map[string]int),
	}

	for i, raw := range t.Rows {
		desc := strings.TrimSpace(raw[ColDescription])

		if desc == "" {
			// Sentinel row: pick up the period, keep the first occurrence.
			if stmt.PeriodStart == "" && raw[ColStartDate] != "" {
				stmt.PeriodStart = datePrefix(raw[ColStartDate])
				stmt.PeriodEnd = datePrefix(raw[ColEndDate])
			}
			continue
		}

		amount, err := ParseAmount(raw[ColAmount])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: bad amount %q: %w",
				t.SourceFile, i+2, raw[ColAmount], err)
		}

		quantity, ok := parseQuantity(raw[ColQuantity])
		if !ok {
			stmt.MalformedQuantities++
		}

		row := Row{
			SKU:             strings.TrimSpace(raw[ColSKU]),
			Channel:         ParseChannel(raw[ColFulfillment]),
			TransactionType: strings.TrimSpace(raw[ColTransactionType]),
			Description:     Description(desc),
			Amount:          amount,
			Quantity:        quantity,
		}

		if !row.Description.Known() {
			stmt.Unrecognized[desc]++
		}

		stmt.Rows = append(stmt.Rows, row)
	}

	if stmt.PeriodStart == "" {
		return nil, fmt.Errorf("%s: no settlement period found in statement", t.SourceFile)
	}

	return stmt, nil
}

// ParseAmount parses a statement monetary value.
// Empty values parse as zero; thousands separators are tolerated.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// parseQuantity parses quantity-purchased. A null value is zero units; a
// malformed value also yields zero units but reports ok=false so the caller
// can count it.
func parseQuantity(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	q, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return q, true
}

// datePrefix reduces a statement timestamp to its YYYY-MM-DD prefix, which is
// the format used in the output workbook name.
func datePrefix(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
