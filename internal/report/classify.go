// =============================================================================
// FBA Settlement Analyzer - Line-Item Classifier
// =============================================================================
//
// The classifier selects the subset of statement rows belonging to a bucket.
// It is pure and stateless: an empty match set is a valid result meaning "no
// contribution", never an error.
//
// =============================================================================

package report

import "github.com/neoxyte/FBA-Settlement-Analyzer/internal/ledger"

// Classify returns the rows matching a bucket definition.
//
// PARAMETERS:
//   - rows: The statement line items, in any order.
//   - def: The bucket definition (description set, optional channel filter).
//
// RETURNS:
//   - The matching rows, in input order.
func Classify(rows []ledger.Row, def BucketDef) []ledger.Row {
	var matched []ledger.Row
	for _, row := range rows {
		if Matches(row, def) {
			matched = append(matched, row)
		}
	}
	return matched
}

// Matches reports whether a single row belongs to a bucket.
func Matches(row ledger.Row, def BucketDef) bool {
	if !def.Descriptions[row.Description] {
		return false
	}
	if def.FilterChannel && row.Channel != def.Channel {
		return false
	}
	return true
}
