package repository

import (
	"fmt"
	"strings"
	"testing"

	"manor_backend/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database with the full schema. The
// shared-cache name keeps the database alive across the pool's connections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.UserProfile{},
		&model.GameSession{},
		&model.PuzzleAttempt{},
		&model.SavedGame{},
	); err != nil {
		t.Fatalf("migrate schema: %v", err)
	}
	return db
}
