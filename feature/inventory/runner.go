package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-sync/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// StopReason says why a sync run ended.
type StopReason string

const (
	StopCompleted       StopReason = "completed"
	StopTransportError  StopReason = "transport_error"
	StopDataSourceError StopReason = "data_source_error"
	StopMaxPages        StopReason = "max_pages"
	StopCanceled        StopReason = "canceled"
)

// Summary is the outcome of one sync run. It is produced even when the run aborts.
type Summary struct {
	ItemsUpdated      int                        `json:"items_updated"`
	PagesProcessed    int                        `json:"pages_processed"`
	Failed            bool                       `json:"failed"`
	StopReason        StopReason                 `json:"stop_reason"`
	Error             string                     `json:"error,omitempty"`
	SnapshotSize      int                        `json:"snapshot_size"`
	VariationUpdates  int                        `json:"variation_updates"`
	VisibilityUpdates int                        `json:"visibility_updates"`
	SimpleUpdates     int                        `json:"simple_updates"`
	Rejected          []reconcile.BatchRejection `json:"rejected"`
	Skipped           []reconcile.SkippedProduct `json:"skipped"`
	DryRun            bool                       `json:"dry_run"`
	StartedAt         time.Time                  `json:"started_at"`
	FinishedAt        time.Time                  `json:"finished_at"`
}

func (s *Summary) add(r reconcile.PageResult) {
	s.ItemsUpdated += r.Updated
	s.VariationUpdates += r.VariationUpdates
	s.VisibilityUpdates += r.VisibilityUpdates
	s.SimpleUpdates += r.SimpleUpdates
	s.Rejected = append(s.Rejected, r.Rejected...)
	s.Skipped = append(s.Skipped, r.Skipped...)
}

func (s *Summary) fail(reason StopReason, err error) {
	s.Failed = true
	s.StopReason = reason
	if err != nil {
		s.Error = err.Error()
	}
}

// Runner performs one full pass: snapshot, then every catalog page in order.
type Runner struct {
	catalog   reconcile.Catalog
	snapshots SnapshotProvider
	cfg       Config
	logger    *zap.Logger
	now       func() time.Time
}

// NewRunner creates a sync runner.
func NewRunner(catalog reconcile.Catalog, snapshots SnapshotProvider, cfg Config, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		catalog:   catalog,
		snapshots: snapshots,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes one sync pass and always returns a summary.
// Cancellation is checked between pages.
func (r *Runner) Run(ctx context.Context) (summary Summary) {
	summary = Summary{
		StopReason: StopCompleted,
		DryRun:     r.cfg.DryRun,
		StartedAt:  r.now().UTC(),
		Rejected:   []reconcile.BatchRejection{},
		Skipped:    []reconcile.SkippedProduct{},
	}
	defer func() {
		summary.FinishedAt = r.now().UTC()
		r.logSummary(summary)
	}()

	snapshot, err := r.snapshots.Fetch(ctx)
	if err != nil {
		r.logger.Error("Stock snapshot unavailable, no mutation attempted", zap.Error(err))
		summary.fail(StopDataSourceError, err)
		return summary
	}
	summary.SnapshotSize = snapshot.Len()

	engine := reconcile.NewEngine(r.catalog, r.logger, reconcile.Options{
		DryRun:               r.cfg.DryRun,
		VariationConcurrency: r.cfg.variationConcurrency(),
	})

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("Sync canceled", zap.Int("next_page", page))
			summary.fail(StopCanceled, err)
			return summary
		}

		products, err := r.catalog.ListProductsPage(ctx, page, r.cfg.pageSize())
		if err != nil {
			r.stopOnError(ctx, &summary, page, err)
			return summary
		}
		if len(products) == 0 {
			return summary
		}
		if r.cfg.MaxPages > 0 && page > r.cfg.MaxPages {
			r.logger.Error("Maximum page count reached, catalog still returns products",
				zap.Int("max_pages", r.cfg.MaxPages))
			summary.fail(StopMaxPages, fmt.Errorf("catalog returned more than %d pages", r.cfg.MaxPages))
			return summary
		}

		items, err := r.loadVariations(ctx, products)
		if err != nil {
			r.stopOnError(ctx, &summary, page, err)
			return summary
		}

		result, err := engine.ReconcilePage(ctx, items, snapshot)
		summary.add(result)
		if err != nil {
			r.stopOnError(ctx, &summary, page, err)
			return summary
		}

		summary.PagesProcessed++
		r.logger.Info("Page reconciled",
			zap.Int("page", page),
			zap.Int("products", len(products)),
			zap.Int("updated", result.Updated),
			zap.Int("visibility_updates", result.VisibilityUpdates),
			zap.Int("rejected", len(result.Rejected)),
			zap.Int("skipped", len(result.Skipped)),
		)
	}
}

// loadVariations fetches the variations of every variable product on the page.
func (r *Runner) loadVariations(ctx context.Context, products []reconcile.Product) ([]reconcile.PageItem, error) {
	items := make([]reconcile.PageItem, len(products))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.variationConcurrency())

	for i, p := range products {
		items[i].Product = p
		if p.Type != reconcile.ProductVariable || p.ID <= 0 || p.DecodeError != "" {
			continue
		}
		g.Go(func() error {
			variations, err := r.catalog.ListVariations(gctx, p.ID, r.cfg.variationPageSize())
			if err != nil {
				return err
			}
			items[i].Variations = variations
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Runner) stopOnError(ctx context.Context, summary *Summary, page int, err error) {
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		r.logger.Warn("Sync canceled", zap.Int("page", page))
		summary.fail(StopCanceled, err)
		return
	}

	var te *reconcile.CatalogTransportError
	if !errors.As(err, &te) {
		err = &reconcile.CatalogTransportError{Op: "sync", Resource: fmt.Sprintf("page %d", page), Err: err}
	}
	r.logger.Error("Catalog transport failed, remaining pages skipped",
		zap.Int("page", page),
		zap.Int("pages_processed", summary.PagesProcessed),
		zap.Error(err),
	)
	summary.fail(StopTransportError, err)
}

func (r *Runner) logSummary(s Summary) {
	fields := []zap.Field{
		zap.Int("items_updated", s.ItemsUpdated),
		zap.Int("pages_processed", s.PagesProcessed),
		zap.Bool("failed", s.Failed),
		zap.String("stop_reason", string(s.StopReason)),
		zap.Int("snapshot_size", s.SnapshotSize),
		zap.Int("rejected", len(s.Rejected)),
		zap.Int("skipped", len(s.Skipped)),
		zap.Bool("dry_run", s.DryRun),
		zap.Duration("duration", s.FinishedAt.Sub(s.StartedAt)),
	}
	msg := fmt.Sprintf("%d items processed", s.ItemsUpdated)
	if s.Failed {
		r.logger.Warn(msg, fields...)
		return
	}
	r.logger.Info(msg, fields...)
}
