// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL connections (or SQLite for
// local projects and tests) from the application's configuration.
//
// # Connect
//
// Connect establishes a connection and verifies it with a ping bounded by the
// configured timeout.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table through SHOW COLUMNS (MySQL) or
// PRAGMA table_info (SQLite). The tag store uses MissingColumns to verify that
// its table matches the model before an import is saved.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "tags", "name", "addresses")
package database
