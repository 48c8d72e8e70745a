package reconcile

import (
	"bytes"
	"encoding/json"
	"fmt"

	"catalog-sync/core/utils"
)

// ProductType is the catalog type of a product.
type ProductType string

const (
	// ProductSimple is a product without variations; stock and visibility are set on it directly.
	ProductSimple ProductType = "simple"
	// ProductVariable is a parent product whose stock lives on its variations.
	ProductVariable ProductType = "variable"
)

// Visibility is the storefront catalog visibility of a product.
type Visibility string

const (
	// VisibilityVisible shows the product in shop and search results.
	VisibilityVisible Visibility = "visible"
	// VisibilityHidden hides the product from the storefront.
	VisibilityHidden Visibility = "hidden"
)

// VisibilityFor returns the visibility a product should have for the given stock.
func VisibilityFor(stock int) Visibility {
	if stock > 0 {
		return VisibilityVisible
	}
	return VisibilityHidden
}

// Quantity is an optional stock quantity. The zero value is "not tracked".
// Every aggregation point uses UnwrapOr(0).
type Quantity struct {
	value int
	valid bool
}

// Some returns a tracked quantity.
func Some(n int) Quantity {
	return Quantity{value: n, valid: true}
}

// None returns an untracked quantity.
func None() Quantity {
	return Quantity{}
}

// Get returns the value and whether it is tracked.
func (q Quantity) Get() (int, bool) {
	return q.value, q.valid
}

// IsSet reports whether the quantity is tracked.
func (q Quantity) IsSet() bool {
	return q.valid
}

// UnwrapOr returns the tracked value or def.
func (q Quantity) UnwrapOr(def int) int {
	if !q.valid {
		return def
	}
	return q.value
}

// String implements fmt.Stringer.
func (q Quantity) String() string {
	if !q.valid {
		return "null"
	}
	return fmt.Sprintf("%d", q.value)
}

// MarshalJSON encodes an untracked quantity as null.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if !q.valid {
		return []byte("null"), nil
	}
	return json.Marshal(q.value)
}

// UnmarshalJSON accepts null, numbers and numeric strings.
// Empty strings decode as untracked.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*q = None()
		return nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid quantity %s: %w", string(data), err)
	}

	switch v := raw.(type) {
	case float64:
		*q = Some(utils.ToInt(v))
	case string:
		if v == "" {
			*q = None()
			return nil
		}
		n, ok := utils.ParseInt(v)
		if !ok {
			return fmt.Errorf("invalid quantity %q", v)
		}
		*q = Some(n)
	default:
		return fmt.Errorf("invalid quantity %s", string(data))
	}
	return nil
}

// Product is a catalog product as returned by the remote catalog.
type Product struct {
	// ID is the remote identifier.
	ID int64 `json:"id"`

	// Name is the human-readable product name.
	Name string `json:"name"`

	// Type is "simple" or "variable".
	Type ProductType `json:"type"`

	// SKU is required only for simple products.
	SKU string `json:"sku"`

	// StockQuantity is absent when stock is not tracked. Ignored for variable products.
	StockQuantity Quantity `json:"stock_quantity"`

	// Visibility is the current catalog visibility.
	Visibility Visibility `json:"catalog_visibility"`

	// DecodeError is set when the catalog entry did not fit this shape.
	// Only ID and Name are filled on a best-effort basis then.
	DecodeError string `json:"-"`
}

// Variation is a child of a variable product.
type Variation struct {
	// ID is the remote identifier of the variation.
	ID int64 `json:"id"`

	// SKU may be empty.
	SKU string `json:"sku"`

	// StockQuantity is absent when stock is not tracked.
	StockQuantity Quantity `json:"stock_quantity"`

	// DecodeError is set when the catalog entry did not fit this shape.
	DecodeError string `json:"-"`
}

// PageItem pairs a product with its already-fetched variations.
// Variations is nil for simple products.
type PageItem struct {
	Product    Product
	Variations []Variation
}

// SimpleUpdate is one entry of a batched simple-product update.
type SimpleUpdate struct {
	ID         int64      `json:"id"`
	Quantity   int        `json:"stock_quantity"`
	Visibility Visibility `json:"catalog_visibility"`
}

// VariationUpdate is a planned stock write for a single variation.
type VariationUpdate struct {
	ProductID   int64    `json:"product_id"`
	VariationID int64    `json:"variation_id"`
	SKU         string   `json:"sku"`
	From        Quantity `json:"from"`
	To          int      `json:"to"`
}

// VisibilityUpdate is a planned visibility write for a variable parent.
type VisibilityUpdate struct {
	ProductID int64      `json:"product_id"`
	From      Visibility `json:"from"`
	To        Visibility `json:"to"`
}

// SkippedProduct records a product the engine refused to touch.
type SkippedProduct struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// ProductPlan is the outcome of planning a single product.
type ProductPlan struct {
	// ProductID is the planned product.
	ProductID int64

	// VariationUpdates are the per-variation stock writes (variable products only).
	VariationUpdates []VariationUpdate

	// Visibility is set when the parent visibility must change (variable products only).
	Visibility *VisibilityUpdate

	// Simple is set when the simple product needs a batch entry.
	Simple *SimpleUpdate

	// AggregateStock is the summed stock of a variable product after reconciliation.
	AggregateStock int

	// Skipped is set when the product was not planned at all.
	Skipped *SkippedProduct
}

// IsEmpty reports whether the plan carries no mutation.
func (p ProductPlan) IsEmpty() bool {
	return len(p.VariationUpdates) == 0 && p.Visibility == nil && p.Simple == nil
}

// PageResult summarizes the mutations applied for one page.
type PageResult struct {
	// Updated counts variation writes plus accepted batch entries.
	Updated int `json:"updated"`

	// VariationUpdates counts applied variation stock writes.
	VariationUpdates int `json:"variation_updates"`

	// VisibilityUpdates counts applied parent visibility writes.
	VisibilityUpdates int `json:"visibility_updates"`

	// SimpleUpdates counts accepted simple-product batch entries.
	SimpleUpdates int `json:"simple_updates"`

	// Rejected lists batch entries the catalog refused.
	Rejected []BatchRejection `json:"rejected,omitempty"`

	// Skipped lists products left untouched because of an unexpected shape.
	Skipped []SkippedProduct `json:"skipped,omitempty"`
}

// Options controls engine behavior.
type Options struct {
	// DryRun plans every mutation but sends none.
	DryRun bool

	// VariationConcurrency bounds parallel variation writes for one parent.
	// Values below 1 mean sequential.
	VariationConcurrency int
}
