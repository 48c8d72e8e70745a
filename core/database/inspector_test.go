package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE stock (id INTEGER PRIMARY KEY, SKU TEXT, stock_total_web INTEGER)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "stock")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}
	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["sku"], "field names are lower-cased")
	assert.Equal(t, "integer", colMap["stock_total_web"])

	// PRAGMA table_info returns no rows for a missing table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestGetTableColumns_View(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	require.NoError(t, db.Exec("CREATE TABLE stock (sku TEXT, qty INTEGER)").Error)
	require.NoError(t, db.Exec("CREATE VIEW vista_stock_web AS SELECT sku, qty AS stock_total_web FROM stock").Error)

	missing, err := MissingColumns(db, "vista_stock_web", "sku", "stock_total_web")
	require.NoError(t, err)
	assert.Empty(t, missing)

	missing, err = MissingColumns(db, "vista_stock_web", "sku", "stock_total")
	require.NoError(t, err)
	assert.Equal(t, []string{"stock_total"}, missing)

	_, err = MissingColumns(db, "nope", "sku")
	assert.ErrorContains(t, err, "not found")
}

func TestGetTableColumns_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("SKU", "VARCHAR(64)", "NO", "PRI", nil, "").
		AddRow("stock_total_web", "INT", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `vista_stock_web`").WillReturnRows(rows)

	columns, err := GetTableColumns(db, "vista_stock_web")
	require.NoError(t, err)
	assert.Equal(t, []ColumnInfo{
		{Field: "sku", Type: "varchar(64)"},
		{Field: "stock_total_web", Type: "int"},
	}, columns)
	assert.NoError(t, mock.ExpectationsWereMet())
}
