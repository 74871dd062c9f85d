// Package testutil provides shared helpers for package tests.
package testutil

import (
	"context"
	"testing"

	"holonet/internal/config"
	"holonet/internal/database"

	"gorm.io/gorm"
)

// SQLiteConfig returns a config for a private in-memory SQLite database.
func SQLiteConfig() *config.Config {
	return &config.Config{
		Env:           "test",
		DBDriver:      config.DriverSQLite,
		DBSQLitePath:  ":memory:",
		DBAutoMigrate: true,
	}
}

// NewSQLiteDB opens an in-memory SQLite store with the full schema applied.
// The database is closed when the test ends.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.Open(context.Background(), SQLiteConfig())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
