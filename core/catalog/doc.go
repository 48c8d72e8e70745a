// Package catalog is the WooCommerce REST v3 binding of the remote catalog
// used by the reconciliation engine.
//
// Client implements reconcile.Catalog:
//
//   - ListProductsPage: GET /products, ordered by id, trimmed with _fields.
//   - ListVariations: GET /products/{id}/variations, first page only (max 100).
//   - UpdateVariationStock: PUT /products/{id}/variations/{vid}.
//   - UpdateProductVisibility: PUT /products/{id}.
//   - BatchUpdateSimpleProducts: POST /products/batch in chunks of 100.
//
// Requests authenticate with HTTP basic auth, are rate limited, and retry on
// network errors, 429 and 5xx with exponential backoff that honours Retry-After.
// Every failure is returned as *reconcile.CatalogTransportError. Rejected batch
// entries are returned as *reconcile.PartialBatchError.
//
// # Usage
//
//	client, err := catalog.NewClient(cfg.Catalog, logger)
//	products, err := client.ListProductsPage(ctx, 1, 20)
package catalog
