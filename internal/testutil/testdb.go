package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"milestone-dashboard/internal/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewTestDB открывает новую sqlite-базу в памяти со схемой.
func NewTestDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:dashboard_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// NewTestStore: database.Store поверх NewTestDB.
func NewTestStore(tb testing.TB) *database.Store {
	tb.Helper()
	return database.NewStore(NewTestDB(tb))
}
