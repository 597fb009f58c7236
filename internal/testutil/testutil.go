// Package testutil provides the in-memory database the test suites run
// against.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/applytrack/applytrack/internal/models"
)

// OpenTestDB opens a fresh in-memory SQLite database with the full schema.
// The connection pool is capped at one so every query sees the same
// in-memory database.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate test schema: %v", err)
	}
	return db
}

// CreateUser inserts a user record directly, bypassing registration.
func CreateUser(t *testing.T, db *gorm.DB, username, email string) models.User {
	t.Helper()

	user := models.User{Username: username, Email: email, PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}
