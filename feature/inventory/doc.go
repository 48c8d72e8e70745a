// Package inventory keeps the storefront catalog in line with warehouse stock.
//
// # Components
//
//   - DBSnapshotProvider: reads (sku, quantity) rows from the stock view.
//   - Runner: one full pass. Snapshot first, then catalog pages in order,
//     each page handed to the reconcile engine. It always returns a Summary,
//     also when the run aborts.
//   - BucketArchive: stores every Summary as JSON in object storage.
//   - Service: coalesces concurrent triggers, keeps the last summary,
//     archives it and publishes sync.completed.
//
// # Stop conditions
//
// A run ends on an empty page (completed), on a catalog failure
// (transport_error), when the snapshot cannot be read (data_source_error),
// when the catalog keeps returning pages past MaxPages (max_pages) or when the
// context is canceled between pages (canceled). Pages already reconciled stay
// applied in every case.
//
// # HTTP Endpoints
//
//   - POST /inventory/sync : runs a pass and returns the summary.
//   - GET /inventory/sync/last : summary of the most recent run.
//   - GET /inventory/reports : archived report keys (supports ?limit=).
package inventory
