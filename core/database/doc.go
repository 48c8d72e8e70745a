// Package database handles database connections and schema inspection.
//
// It wraps GORM to open Postgres, MySQL or SQLite connections from the
// application's configuration. The stock source is normally Postgres; SQLite is
// used for local runs and tests.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let the check command verify that the
// configured stock view exposes the SKU and quantity columns before a sync runs.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "vista_stock_web", "sku", "stock_total_web")
package database
