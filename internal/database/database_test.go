package database

import (
	"testing"

	"fbingest/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openSqlite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// each sqlite :memory: connection is its own database; pin to one
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return db
}

func TestConfigurePool(t *testing.T) {
	db := openSqlite(t)

	require.NoError(t, configurePool(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)

	// single sequential writer: exactly one connection
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestVerifyTables(t *testing.T) {
	db := openSqlite(t)

	err := VerifyTables(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "posts")

	require.NoError(t, db.AutoMigrate(&models.Post{}))
	err = VerifyTables(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "comments")

	require.NoError(t, db.AutoMigrate(&models.Comment{}))
	assert.NoError(t, VerifyTables(db))
}
