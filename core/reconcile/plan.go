package reconcile

import "fmt"

// PlanPage plans every product of a page. It performs no I/O.
func PlanPage(items []PageItem, snapshot Snapshot) []ProductPlan {
	plans := make([]ProductPlan, 0, len(items))
	for _, item := range items {
		plans = append(plans, PlanProduct(item, snapshot))
	}
	return plans
}

// PlanProduct decides the mutations one product needs to match the snapshot.
// Products with an unexpected shape come back with Skipped set and no mutation.
func PlanProduct(item PageItem, snapshot Snapshot) ProductPlan {
	p := item.Product
	if p.DecodeError != "" {
		return skippedPlan(p, "malformed product: "+p.DecodeError)
	}
	if p.ID <= 0 {
		return skippedPlan(p, "missing product id")
	}

	switch p.Type {
	case ProductVariable:
		return planVariable(p, item.Variations, snapshot)
	case ProductSimple:
		return planSimple(p, snapshot)
	default:
		return skippedPlan(p, fmt.Sprintf("unsupported product type %q", p.Type))
	}
}

// planVariable reconciles every variation and derives the parent visibility from
// the aggregate of their stock. The parent's own stock field is never read.
func planVariable(p Product, variations []Variation, snapshot Snapshot) ProductPlan {
	plan := ProductPlan{ProductID: p.ID}

	for _, v := range variations {
		if v.DecodeError != "" {
			return skippedPlan(p, fmt.Sprintf("malformed variation %d: %s", v.ID, v.DecodeError))
		}
		if v.ID <= 0 {
			return skippedPlan(p, "variation without id")
		}

		target, ok := snapshot.Lookup(v.SKU)
		if !ok {
			// Unmatched variations keep their stock and still count toward visibility.
			plan.AggregateStock += v.StockQuantity.UnwrapOr(0)
			continue
		}

		plan.AggregateStock += target
		if v.StockQuantity.UnwrapOr(0) != target {
			plan.VariationUpdates = append(plan.VariationUpdates, VariationUpdate{
				ProductID:   p.ID,
				VariationID: v.ID,
				SKU:         v.SKU,
				From:        v.StockQuantity,
				To:          target,
			})
		}
	}

	desired := VisibilityFor(plan.AggregateStock)
	if p.Visibility != desired {
		plan.Visibility = &VisibilityUpdate{ProductID: p.ID, From: p.Visibility, To: desired}
	}
	return plan
}

// planSimple leaves products whose SKU is unknown to the stock source untouched:
// a missing SKU is not evidence that the item is out of stock.
func planSimple(p Product, snapshot Snapshot) ProductPlan {
	plan := ProductPlan{ProductID: p.ID}

	target, ok := snapshot.Lookup(p.SKU)
	if !ok {
		return plan
	}

	desired := VisibilityFor(target)
	plan.AggregateStock = target
	if p.StockQuantity.UnwrapOr(0) != target || p.Visibility != desired {
		plan.Simple = &SimpleUpdate{ID: p.ID, Quantity: target, Visibility: desired}
	}
	return plan
}

func skippedPlan(p Product, reason string) ProductPlan {
	return ProductPlan{
		ProductID: p.ID,
		Skipped:   &SkippedProduct{ID: p.ID, Name: p.Name, Reason: reason},
	}
}
