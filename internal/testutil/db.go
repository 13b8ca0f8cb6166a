// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reseller-backend/internal/config"
)

// NewDB returns a migrated in-memory SQLite database with foreign keys on.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    "file::memory:?_foreign_keys=on",
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
