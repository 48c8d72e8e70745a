package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncDryRun   bool
	syncMaxPages int
	syncPageSize int
	syncJSON     bool
)

// syncCmd runs one reconciliation pass and exits.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one inventory sync pass",
	Long: `Reads the stock snapshot, walks every catalog page and pushes stock and
visibility changes to WooCommerce. Exits non-zero when the run aborts.

Examples:
  # Full pass
  catalog-sync sync

  # Show what would change without writing
  catalog-sync sync --dry-run --json

  # Smaller pages, hard stop after 10 pages
  catalog-sync sync --page-size 10 --max-pages 10`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Plan every change without writing to the catalog")
	syncCmd.Flags().IntVar(&syncMaxPages, "max-pages", 0, "Override SYNC_MAX_PAGES (0 keeps the configured value)")
	syncCmd.Flags().IntVar(&syncPageSize, "page-size", 0, "Override SYNC_PAGE_SIZE (0 keeps the configured value)")
	syncCmd.Flags().BoolVar(&syncJSON, "json", false, "Print the run summary as JSON on stdout")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, l, err := loadRuntime()
	if err != nil {
		return err
	}
	defer l.Sync()

	if syncDryRun {
		cfg.Sync.DryRun = true
	}
	if syncMaxPages > 0 {
		cfg.Sync.MaxPages = syncMaxPages
	}
	if syncPageSize > 0 {
		cfg.Sync.PageSize = syncPageSize
	}
	if err := cfg.ValidateSync(); err != nil {
		return err
	}

	// Cancellation takes effect between pages
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := connectDatabase(cfg.Database, l)

	publisher := newPublisher(cfg.Events, l)
	defer publisher.Close()

	svc, err := newSyncService(ctx, cfg, l, db, publisher)
	if err != nil {
		return err
	}

	l.Info("Starting inventory sync",
		zap.Bool("dry_run", cfg.Sync.DryRun),
		zap.Int("page_size", cfg.Sync.PageSize),
		zap.Int("max_pages", cfg.Sync.MaxPages),
	)
	summary, _ := svc.Run(ctx)

	if syncJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			return err
		}
	}

	if summary.Failed {
		return fmt.Errorf("sync stopped (%s) after %d pages: %s", summary.StopReason, summary.PagesProcessed, summary.Error)
	}
	return nil
}
