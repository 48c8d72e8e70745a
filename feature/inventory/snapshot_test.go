package inventory

import (
	"context"
	"errors"
	"testing"

	"catalog-sync/core/database"
	"catalog-sync/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func defaultConfig() Config {
	return Config{
		PageSize:          20,
		VariationPageSize: 100,
		StockView:         "vista_stock_web",
		SKUColumn:         "sku",
		QuantityColumn:    "stock_total_web",
	}
}

func setupStockDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	require.NoError(t, db.Exec("CREATE TABLE stock (sku TEXT, stock_total_web REAL)").Error)
	require.NoError(t, db.Exec("CREATE VIEW vista_stock_web AS SELECT sku, stock_total_web FROM stock").Error)
	return db
}

func TestDBSnapshotProvider_Fetch(t *testing.T) {
	db := setupStockDB(t)
	require.NoError(t, db.Exec(`INSERT INTO stock (sku, stock_total_web) VALUES
		('A-1', 5),
		(' B-2 ', 2.7),
		('C-3', NULL),
		('D-4', -4),
		(NULL, 9),
		('', 9),
		('A-1', 7)`).Error)

	p, err := NewDBSnapshotProvider(db, defaultConfig(), zap.NewNop())
	require.NoError(t, err)

	snap, err := p.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, snap.Len())
	assert.Equal(t, 1, snap.Duplicates())

	tests := []struct {
		sku  string
		want int
	}{
		{"A-1", 7},
		{"B-2", 2},
		{"C-3", 0},
		{"D-4", 0},
	}
	for _, tt := range tests {
		t.Run(tt.sku, func(t *testing.T) {
			q, ok := snap.Lookup(tt.sku)
			assert.True(t, ok)
			assert.Equal(t, tt.want, q)
		})
	}
}

func TestDBSnapshotProvider_NilDB(t *testing.T) {
	p, err := NewDBSnapshotProvider(nil, defaultConfig(), nil)
	require.NoError(t, err)

	_, err = p.Fetch(context.Background())

	var dsErr *reconcile.DataSourceError
	assert.ErrorAs(t, err, &dsErr)
}

func TestDBSnapshotProvider_QueryError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT sku AS sku, stock_total_web AS quantity FROM vista_stock_web").
		WillReturnError(errors.New("relation does not exist"))

	p, err := NewDBSnapshotProvider(db, defaultConfig(), nil)
	require.NoError(t, err)

	_, err = p.Fetch(context.Background())

	var dsErr *reconcile.DataSourceError
	require.ErrorAs(t, err, &dsErr)
	assert.Contains(t, dsErr.Error(), "relation does not exist")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewDBSnapshotProvider_RejectsBadIdentifiers(t *testing.T) {
	cfg := defaultConfig()
	cfg.StockView = "stock; DROP TABLE stock"

	_, err := NewDBSnapshotProvider(nil, cfg, nil)
	assert.ErrorContains(t, err, "invalid sql identifier")

	cfg = defaultConfig()
	cfg.StockView = "public.vista_stock_web"
	_, err = NewDBSnapshotProvider(nil, cfg, nil)
	assert.NoError(t, err)
}

func TestDBSnapshotProvider_Check(t *testing.T) {
	db := setupStockDB(t)

	p, err := NewDBSnapshotProvider(db, defaultConfig(), nil)
	require.NoError(t, err)
	assert.NoError(t, p.Check(context.Background()))

	cfg := defaultConfig()
	cfg.QuantityColumn = "stock_total"
	p, err = NewDBSnapshotProvider(db, cfg, nil)
	require.NoError(t, err)

	err = p.Check(context.Background())
	var dsErr *reconcile.DataSourceError
	require.ErrorAs(t, err, &dsErr)
	assert.Contains(t, err.Error(), "stock_total")
}
