// =============================================================================
// Sales Analyzer - Record Mutations
// =============================================================================
//
// Guarded edits to the held record set and saving it as
// "<stem>_updated<ext>". Edits never touch the source file.
//
// MODIFY FLOWS:
//   - With an index: only that record, and only if its order id matches.
//   - Without an index: every record carrying the order id.
//
// =============================================================================

package aggregator

import (
	"math"
	"path/filepath"

	"github.com/ginjaninja78/sales-analyzer/internal/apperr"
	"github.com/ginjaninja78/sales-analyzer/internal/types"
	"github.com/ginjaninja78/sales-analyzer/pkg/utils"
)

// =============================================================================
// MUTATIONS
// =============================================================================

// ModifyEntry updates the quantity and/or unit price of records with the
// given order id.
//
// PARAMETERS:
//   - orderID: The order id to match.
//   - upd: The new values. Nil fields are left unchanged.
//   - targetIndex: When non-nil, only the record at that index is changed,
//     and only if its order id matches. When nil, every record with the id
//     is changed.
//
// RETURNS:
//   - true if at least one record matched, false otherwise. A non-positive
//     new value also returns false and changes nothing.
func (a *Aggregator) ModifyEntry(orderID string, upd types.EntryUpdate, targetIndex *int) bool {
	if a.records == nil {
		return false
	}
	if upd.Quantity != nil && *upd.Quantity <= 0 {
		a.logger.Debug("modify rejected", "order_id", orderID, "reason", "non-positive quantity")
		return false
	}
	if upd.Price != nil && !validPrice(*upd.Price) {
		a.logger.Debug("modify rejected", "order_id", orderID, "reason", "invalid price")
		return false
	}

	var targets []int
	if targetIndex != nil {
		r, ok := a.records.At(*targetIndex)
		if !ok || r.OrderID != orderID {
			return false
		}
		targets = []int{*targetIndex}
	} else {
		for i, r := range a.records.Records {
			if r.OrderID == orderID {
				targets = append(targets, i)
			}
		}
		if len(targets) == 0 {
			return false
		}
	}

	for _, i := range targets {
		if upd.Quantity != nil {
			a.records.Records[i].Quantity = *upd.Quantity
		}
		if upd.Price != nil {
			a.records.Records[i].UnitPrice = *upd.Price
		}
	}

	a.logger.Info("entry modified", "order_id", orderID, "records_changed", len(targets))
	return true
}

// AddEntry appends r to the record set. A blank address is replaced by the
// placeholder.
//
// RETURNS:
//   - false when no record set is held or r breaks a record invariant
//     (blank order id or product, non-positive quantity or price, zero date).
func (a *Aggregator) AddEntry(r types.Record) bool {
	if a.records == nil {
		return false
	}
	if r.OrderID == "" || r.Product == "" || r.Quantity <= 0 || !validPrice(r.UnitPrice) || r.OrderDate.IsZero() {
		a.logger.Debug("add rejected", "order_id", r.OrderID)
		return false
	}
	if r.PurchaseAddress == "" {
		r.PurchaseAddress = a.placeholder
	}

	a.records.Append(r)
	a.logger.Info("entry added", "order_id", r.OrderID, "product", r.Product)
	return true
}

// =============================================================================
// PERSISTENCE
// =============================================================================

// Save writes the record set to "<stem>_updated<ext>" in the output
// directory, creating the directory if needed. Saving an already updated
// file overwrites it instead of stacking suffixes.
//
// RETURNS:
//   - The path written.
//   - A NOT_LOADED error when no record set is held, or a SAVE error
//     wrapping the I/O failure.
func (a *Aggregator) Save(originalPath string) (string, error) {
	if a.records == nil {
		return "", apperr.NotLoaded()
	}

	path := filepath.Join(a.outputDir, utils.UpdatedFileName(originalPath))

	if err := utils.EnsureDir(a.outputDir); err != nil {
		return "", apperr.Save(path, err)
	}
	if err := a.writer.WriteFile(path, a.records); err != nil {
		return "", apperr.Save(path, err)
	}

	a.logger.Info("data saved", "path", path, "records", a.records.Len())
	return path, nil
}

func validPrice(p float64) bool {
	return p > 0 && !math.IsInf(p, 0) && !math.IsNaN(p)
}
