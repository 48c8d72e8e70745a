package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CatalogReader is the read side of the remote catalog.
type CatalogReader interface {
	// ListProductsPage returns one page of products; an empty slice ends pagination.
	ListProductsPage(ctx context.Context, page, pageSize int) ([]Product, error)

	// ListVariations returns the variations of a variable product (first page only).
	ListVariations(ctx context.Context, productID int64, pageSize int) ([]Variation, error)
}

// CatalogWriter is the write side of the remote catalog. Every call has
// set-value semantics and is safe to repeat.
type CatalogWriter interface {
	// UpdateVariationStock enables stock management and sets the quantity.
	UpdateVariationStock(ctx context.Context, productID, variationID int64, quantity int) error

	// UpdateProductVisibility sets the catalog visibility only.
	UpdateProductVisibility(ctx context.Context, productID int64, visibility Visibility) error

	// BatchUpdateSimpleProducts updates many simple products in one call.
	// Per-entry rejections are reported as *PartialBatchError.
	BatchUpdateSimpleProducts(ctx context.Context, updates []SimpleUpdate) error
}

// Catalog is the full remote catalog contract.
type Catalog interface {
	CatalogReader
	CatalogWriter
}

// Engine applies the minimal set of stock and visibility mutations for a page.
// It holds no state between calls.
type Engine struct {
	writer CatalogWriter
	logger *zap.Logger
	opts   Options
}

// NewEngine creates a reconciliation engine writing through writer.
func NewEngine(writer CatalogWriter, logger *zap.Logger, opts Options) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.VariationConcurrency < 1 {
		opts.VariationConcurrency = 1
	}
	return &Engine{writer: writer, logger: logger, opts: opts}
}

// ReconcilePage plans and applies the mutations for one page of products.
//
// Variation writes go out individually, the parent visibility is decided only
// after all of its variation writes succeeded, and simple products are
// coalesced into a single batch call at the end of the page.
//
// A *CatalogTransportError aborts the page; the returned PageResult still
// counts what was applied before the failure. A *PartialBatchError is logged
// and absorbed unless it also carries a transport failure.
func (e *Engine) ReconcilePage(ctx context.Context, items []PageItem, snapshot Snapshot) (PageResult, error) {
	var result PageResult
	var pending []SimpleUpdate

	// Cancellation is honoured between pages, never in the middle of a product.
	ctx = context.WithoutCancel(ctx)

	for _, item := range items {
		plan := PlanProduct(item, snapshot)

		if plan.Skipped != nil {
			e.logger.Warn("Skipping product",
				zap.Int64("product_id", plan.Skipped.ID),
				zap.String("name", plan.Skipped.Name),
				zap.String("reason", plan.Skipped.Reason),
			)
			result.Skipped = append(result.Skipped, *plan.Skipped)
			continue
		}

		if item.Product.Type == ProductVariable {
			if err := e.applyVariable(ctx, item.Product, plan, &result); err != nil {
				return result, err
			}
			continue
		}

		if plan.Simple != nil {
			e.logger.Debug("Simple product queued",
				zap.Int64("product_id", plan.Simple.ID),
				zap.String("sku", item.Product.SKU),
				zap.Stringer("from", item.Product.StockQuantity),
				zap.Int("to", plan.Simple.Quantity),
				zap.String("visibility", string(plan.Simple.Visibility)),
			)
			pending = append(pending, *plan.Simple)
		}
	}

	if len(pending) == 0 {
		return result, nil
	}
	if err := e.flushSimple(ctx, pending, &result); err != nil {
		return result, err
	}
	return result, nil
}

// applyVariable writes variation stock, waits for every write, then fixes the
// parent visibility. A failed variation write returns before visibility is
// evaluated so it is never decided from partial data.
func (e *Engine) applyVariable(ctx context.Context, p Product, plan ProductPlan, result *PageResult) error {
	applied, err := e.applyVariations(ctx, plan.VariationUpdates)
	result.VariationUpdates += applied
	result.Updated += applied
	if err != nil {
		return err
	}

	if plan.Visibility == nil {
		return nil
	}

	e.logger.Info("Updating parent visibility",
		zap.Int64("product_id", p.ID),
		zap.String("name", p.Name),
		zap.String("from", string(plan.Visibility.From)),
		zap.String("to", string(plan.Visibility.To)),
		zap.Int("aggregate_stock", plan.AggregateStock),
		zap.Bool("dry_run", e.opts.DryRun),
	)
	if !e.opts.DryRun {
		if err := e.writer.UpdateProductVisibility(ctx, p.ID, plan.Visibility.To); err != nil {
			return asTransportError(err, "update_visibility", fmt.Sprintf("product %d", p.ID))
		}
	}
	result.VisibilityUpdates++
	return nil
}

func (e *Engine) applyVariations(ctx context.Context, updates []VariationUpdate) (int, error) {
	if len(updates) == 0 {
		return 0, nil
	}

	var (
		mu      sync.Mutex
		applied int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.VariationConcurrency)

	for _, u := range updates {
		g.Go(func() error {
			e.logger.Debug("Updating variation stock",
				zap.Int64("product_id", u.ProductID),
				zap.Int64("variation_id", u.VariationID),
				zap.String("sku", u.SKU),
				zap.Stringer("from", u.From),
				zap.Int("to", u.To),
				zap.Bool("dry_run", e.opts.DryRun),
			)
			if !e.opts.DryRun {
				if err := e.writer.UpdateVariationStock(gctx, u.ProductID, u.VariationID, u.To); err != nil {
					return asTransportError(err, "update_variation",
						fmt.Sprintf("product %d variation %d", u.ProductID, u.VariationID))
				}
			}
			mu.Lock()
			applied++
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	return applied, err
}

// flushSimple submits the page's simple-product batch once.
func (e *Engine) flushSimple(ctx context.Context, pending []SimpleUpdate, result *PageResult) error {
	e.logger.Info("Submitting simple product batch",
		zap.Int("entries", len(pending)),
		zap.Bool("dry_run", e.opts.DryRun),
	)
	if e.opts.DryRun {
		result.SimpleUpdates += len(pending)
		result.Updated += len(pending)
		return nil
	}

	err := e.writer.BatchUpdateSimpleProducts(ctx, pending)
	if err == nil {
		result.SimpleUpdates += len(pending)
		result.Updated += len(pending)
		return nil
	}

	var partial *PartialBatchError
	if errors.As(err, &partial) {
		for _, r := range partial.Rejected {
			e.logger.Warn("Batch entry rejected",
				zap.Int64("product_id", r.ID),
				zap.String("code", r.Code),
				zap.String("message", r.Message),
			)
		}
		accepted := len(pending) - len(partial.Rejected)
		if partial.Err != nil {
			accepted = partial.Accepted
		}
		accepted = max(accepted, 0)
		result.SimpleUpdates += accepted
		result.Updated += accepted
		result.Rejected = append(result.Rejected, partial.Rejected...)
		if partial.Err != nil {
			return asTransportError(partial.Err, "batch_update", fmt.Sprintf("%d products", len(pending)))
		}
		return nil
	}

	return asTransportError(err, "batch_update", fmt.Sprintf("%d products", len(pending)))
}

// asTransportError keeps typed catalog errors and wraps anything else.
func asTransportError(err error, op, resource string) error {
	var te *CatalogTransportError
	if errors.As(err, &te) {
		return err
	}
	return &CatalogTransportError{Op: op, Resource: resource, Err: err}
}
