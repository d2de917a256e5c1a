package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/jobtrail/jobtrail-api/internal/config"
	"github.com/jobtrail/jobtrail-api/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database through the same GORM stack
// production uses. A single connection keeps every query on the same
// in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.Column{},
		&models.Cell{},
	))

	return db
}

func testConfig() *config.Config {
	return &config.Config{BcryptCost: bcrypt.MinCost}
}
