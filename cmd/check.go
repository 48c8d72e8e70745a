package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-sync/core/catalog"
	"catalog-sync/core/config"
	"catalog-sync/core/storage"
	"catalog-sync/feature/inventory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkFix bool

// checkCmd verifies the environment a sync run depends on.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the stock view, the catalog API and the report bucket",
	Long: `Runs one check per dependency and logs the result:
  - the stock view exposes the configured SKU and quantity columns
  - the WooCommerce API answers with the configured credentials
  - the report bucket exists (created with --fix) when storage is enabled`,
	RunE: runChecks,
}

func init() {
	checkCmd.Flags().BoolVar(&checkFix, "fix", false, "Create the report bucket when it is missing")
	RootCmd.AddCommand(checkCmd)
}

func runChecks(cmd *cobra.Command, args []string) error {
	cfg, l, err := loadRuntime()
	if err != nil {
		return err
	}
	defer l.Sync()

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	var failed []string
	report := func(name string, err error) {
		if err != nil {
			failed = append(failed, name)
			l.Error("Check failed", zap.String("check", name), zap.Error(err))
			return
		}
		l.Info("Check passed", zap.String("check", name))
	}

	report("stock_view", checkStockView(ctx, cfg, l))
	report("catalog", checkCatalog(ctx, cfg.Catalog, l))
	if cfg.Storage.Enabled {
		report("report_bucket", checkBucket(ctx, cfg.Storage, checkFix, l))
	} else {
		l.Info("Check skipped", zap.String("check", "report_bucket"), zap.String("reason", "storage disabled"))
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d checks failed: %v", len(failed), failed)
	}
	return nil
}

func checkStockView(ctx context.Context, cfg *config.Config, l *zap.Logger) error {
	db := connectDatabase(cfg.Database, l)
	if db == nil {
		return errors.New("database unreachable")
	}
	provider, err := inventory.NewDBSnapshotProvider(db, cfg.Sync, l)
	if err != nil {
		return err
	}
	return provider.Check(ctx)
}

func checkCatalog(ctx context.Context, cfg catalog.Config, l *zap.Logger) error {
	client, err := catalog.NewClient(cfg, l.Named("catalog"))
	if err != nil {
		return err
	}
	products, err := client.ListProductsPage(ctx, 1, 1)
	if err != nil {
		return err
	}
	l.Debug("Catalog reachable", zap.Int("products_on_first_page", len(products)))
	return nil
}

func checkBucket(ctx context.Context, cfg storage.Config, fix bool, l *zap.Logger) error {
	client, err := storage.NewClient(cfg)
	if err != nil {
		return err
	}
	ok, err := storage.EnsureBucket(ctx, client, cfg.Bucket, cfg.Region, fix)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %s does not exist, rerun with --fix to create it", cfg.Bucket)
	}
	l.Debug("Report bucket ready", zap.String("bucket", cfg.Bucket))
	return nil
}
