package cmd

import (
	"context"
	"fmt"

	"catalog-sync/core/catalog"
	"catalog-sync/core/config"
	"catalog-sync/core/database"
	"catalog-sync/core/events"
	"catalog-sync/core/logger"
	"catalog-sync/core/storage"
	"catalog-sync/feature/inventory"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// loadRuntime loads configuration and builds the logger.
func loadRuntime() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

// connectDatabase returns nil when the stock database is unreachable so the
// caller can decide whether that is fatal. A sync run reports it as a data
// source error.
func connectDatabase(cfg database.Config, l *zap.Logger) *gorm.DB {
	db, err := database.Connect(cfg)
	if err != nil {
		l.Warn("Database connection failed", zap.String("driver", cfg.Driver), zap.Error(err))
		return nil
	}
	l.Info("Connected to stock database", zap.String("driver", cfg.Driver), zap.String("name", cfg.Name))
	return db
}

// newReportArchive returns nil when storage is disabled.
func newReportArchive(ctx context.Context, cfg storage.Config, l *zap.Logger) (inventory.ReportArchive, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	client, err := storage.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	if _, err := storage.EnsureBucket(ctx, client, cfg.Bucket, cfg.Region, true); err != nil {
		return nil, err
	}
	l.Info("Report archive enabled", zap.String("bucket", cfg.Bucket), zap.String("prefix", cfg.ReportPrefix))
	return inventory.NewBucketArchive(client, cfg.Bucket, cfg.ReportPrefix), nil
}

// newSyncService wires the runner, archive and publisher into a sync service.
func newSyncService(
	ctx context.Context,
	cfg *config.Config,
	l *zap.Logger,
	db *gorm.DB,
	publisher events.Publisher,
) (*inventory.Service, error) {
	client, err := catalog.NewClient(cfg.Catalog, l.Named("catalog"))
	if err != nil {
		return nil, err
	}

	snapshots, err := inventory.NewDBSnapshotProvider(db, cfg.Sync, l.Named("snapshot"))
	if err != nil {
		return nil, err
	}

	archive, err := newReportArchive(ctx, cfg.Storage, l)
	if err != nil {
		return nil, err
	}

	runner := inventory.NewRunner(client, snapshots, cfg.Sync, l.Named("sync"))
	return inventory.NewService(runner, archive, publisher, l), nil
}

// newPublisher falls back to a no-op publisher when RabbitMQ is unreachable.
func newPublisher(cfg events.Config, l *zap.Logger) events.Publisher {
	p, err := events.New(cfg, l.Named("events"))
	if err != nil {
		l.Warn("Event publishing disabled", zap.Error(err))
		return events.Noop{}
	}
	return p
}
