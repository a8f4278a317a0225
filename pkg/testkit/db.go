package testkit

import (
	"context"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"agri/database"
)

// OpenTestDB returns an in-memory sqlite database with foreign keys on, the
// write-path callbacks installed and every table migrated.
func OpenTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", url.QueryEscape(t.Name()))
	gdb, err := database.New(sqlite.Open(database.SQLiteDSN(dsn)), database.Options{MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("database.New(sqlite): %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("gdb.DB: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(context.Background(), gdb); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return gdb
}

// FreezeClock replaces the timestamp source of db for the rest of the test.
func FreezeClock(t testing.TB, db *gorm.DB, at time.Time) func(time.Duration) {
	t.Helper()
	prev := db.Config.NowFunc
	now := at.UTC()
	db.Config.NowFunc = func() time.Time { return now }
	t.Cleanup(func() { db.Config.NowFunc = prev })
	return func(d time.Duration) { now = now.Add(d) }
}
