package reconcile

import "strings"

// StockRow is one row of the authoritative stock source.
type StockRow struct {
	SKU      string
	Quantity int
}

// Snapshot is an immutable SKU -> quantity mapping built once per sync run.
type Snapshot struct {
	stock      map[string]int
	duplicates int
}

// NewSnapshot builds a snapshot from stock rows.
// Blank SKUs are dropped, negative quantities clamp to 0 and a repeated SKU
// keeps the last row seen.
func NewSnapshot(rows []StockRow) Snapshot {
	stock := make(map[string]int, len(rows))
	dups := 0
	for _, r := range rows {
		sku := normalizeSKU(r.SKU)
		if sku == "" {
			continue
		}
		if _, seen := stock[sku]; seen {
			dups++
		}
		q := r.Quantity
		if q < 0 {
			q = 0
		}
		stock[sku] = q
	}
	return Snapshot{stock: stock, duplicates: dups}
}

// SnapshotFromMap is a convenience constructor mostly used by tests.
func SnapshotFromMap(m map[string]int) Snapshot {
	rows := make([]StockRow, 0, len(m))
	for sku, q := range m {
		rows = append(rows, StockRow{SKU: sku, Quantity: q})
	}
	return NewSnapshot(rows)
}

// Lookup returns the authoritative quantity for sku.
func (s Snapshot) Lookup(sku string) (int, bool) {
	sku = normalizeSKU(sku)
	if sku == "" {
		return 0, false
	}
	q, ok := s.stock[sku]
	return q, ok
}

// Len returns the number of distinct SKUs.
func (s Snapshot) Len() int {
	return len(s.stock)
}

// Duplicates returns how many rows overrode an earlier row with the same SKU.
func (s Snapshot) Duplicates() int {
	return s.duplicates
}

func normalizeSKU(sku string) string {
	return strings.TrimSpace(sku)
}
