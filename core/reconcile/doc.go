// Package reconcile decides and applies the stock and visibility mutations that
// bring a remote product catalog in line with an authoritative stock snapshot.
//
// # Architecture
//
// The package is split in two halves:
//
// 1. Planning: PlanProduct and PlanPage are pure functions over a PageItem and a
//    Snapshot. They never perform I/O, which makes them the unit under test for
//    most reconciliation rules.
//
// 2. Applying: Engine.ReconcilePage executes a page of plans against a
//    CatalogWriter. Variation writes may run in parallel for one parent, the
//    parent visibility is written only after all of them succeeded, and simple
//    products are coalesced into one batch call per page.
//
// # Rules
//
//   - A variable product's visibility follows the summed stock of its
//     variations. Unmatched variations contribute their existing stock.
//   - A simple product whose SKU is missing from the snapshot is left untouched.
//   - Untracked quantities are read as 0 wherever stock is compared or summed.
//
// # Errors
//
// DataSourceError and CatalogTransportError are fatal for a run. PartialBatchError
// is absorbed by the engine and reported through PageResult.Rejected.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(client, logger, reconcile.Options{VariationConcurrency: 4})
//	result, err := engine.ReconcilePage(ctx, items, snapshot)
package reconcile
