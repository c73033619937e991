package database

import (
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect initializes the database connection.
// Uses SQLite; the DSN stays swappable to another GORM driver.
//
// SQLite ships with foreign key enforcement off, and the pragma is
// per-connection, so it is passed as a DSN parameter rather than a one-off
// PRAGMA statement that would only cover a single pooled connection.
func Connect(dsn string) error {
	var err error
	DB, err = gorm.Open(sqlite.Open(withForeignKeys(dsn)), &gorm.Config{})
	if err != nil {
		return err
	}
	return nil
}

// withForeignKeys appends the sqlite foreign key parameter to a DSN unless
// the caller already set it.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// GetDB returns the database instance.
func GetDB() *gorm.DB {
	return DB
}
