package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"regexp"

	"catalog-sync/core/database"
	"catalog-sync/core/reconcile"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SnapshotProvider reads the authoritative stock.
type SnapshotProvider interface {
	Fetch(ctx context.Context) (reconcile.Snapshot, error)
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// DBSnapshotProvider reads stock rows from a table or view through gorm.
type DBSnapshotProvider struct {
	db             *gorm.DB
	view           string
	skuColumn      string
	quantityColumn string
	logger         *zap.Logger
}

// NewDBSnapshotProvider creates a provider for the configured stock view.
// Identifiers are validated because they are interpolated into SQL.
func NewDBSnapshotProvider(db *gorm.DB, cfg Config, logger *zap.Logger) (*DBSnapshotProvider, error) {
	for _, ident := range []string{cfg.StockView, cfg.SKUColumn, cfg.QuantityColumn} {
		if !identifierPattern.MatchString(ident) {
			return nil, fmt.Errorf("invalid sql identifier %q", ident)
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DBSnapshotProvider{
		db:             db,
		view:           cfg.StockView,
		skuColumn:      cfg.SKUColumn,
		quantityColumn: cfg.QuantityColumn,
		logger:         logger,
	}, nil
}

type stockRecord struct {
	SKU      sql.NullString  `gorm:"column:sku"`
	Quantity sql.NullFloat64 `gorm:"column:quantity"`
}

// Fetch reads every (sku, quantity) row. NULL quantities read as 0 and
// fractional quantities are rounded down. Any failure is a *reconcile.DataSourceError.
func (p *DBSnapshotProvider) Fetch(ctx context.Context) (reconcile.Snapshot, error) {
	if p.db == nil {
		return reconcile.Snapshot{}, &reconcile.DataSourceError{Op: "connect", Err: errors.New("database not connected")}
	}

	query := fmt.Sprintf("SELECT %s AS sku, %s AS quantity FROM %s", p.skuColumn, p.quantityColumn, p.view)

	var records []stockRecord
	if err := p.db.WithContext(ctx).Raw(query).Scan(&records).Error; err != nil {
		return reconcile.Snapshot{}, &reconcile.DataSourceError{Op: "query " + p.view, Err: err}
	}

	rows := make([]reconcile.StockRow, 0, len(records))
	for _, r := range records {
		if !r.SKU.Valid {
			continue
		}
		rows = append(rows, reconcile.StockRow{SKU: r.SKU.String, Quantity: wholeUnits(r.Quantity)})
	}

	snapshot := reconcile.NewSnapshot(rows)
	if snapshot.Duplicates() > 0 {
		p.logger.Warn("Duplicate SKUs in stock source, last row wins",
			zap.String("view", p.view),
			zap.Int("duplicates", snapshot.Duplicates()),
		)
	}
	p.logger.Info("Stock snapshot loaded",
		zap.String("view", p.view),
		zap.Int("rows", len(records)),
		zap.Int("skus", snapshot.Len()),
	)
	return snapshot, nil
}

// Check verifies that the stock view exposes both configured columns.
func (p *DBSnapshotProvider) Check(ctx context.Context) error {
	if p.db == nil {
		return &reconcile.DataSourceError{Op: "connect", Err: errors.New("database not connected")}
	}
	missing, err := database.MissingColumns(p.db.WithContext(ctx), p.view, p.skuColumn, p.quantityColumn)
	if err != nil {
		return &reconcile.DataSourceError{Op: "inspect " + p.view, Err: err}
	}
	if len(missing) > 0 {
		return &reconcile.DataSourceError{Op: "inspect " + p.view, Err: fmt.Errorf("missing columns %v", missing)}
	}
	return nil
}

func wholeUnits(q sql.NullFloat64) int {
	if !q.Valid || math.IsNaN(q.Float64) || math.IsInf(q.Float64, 0) {
		return 0
	}
	return int(math.Floor(q.Float64))
}
