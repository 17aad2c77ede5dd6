package testutils

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/db"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var testDBSeq int64

// SetupDB initializes a unique in-memory SQLite database for testing
// and migrates the puzzle schema. The connection is closed on cleanup.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	seq := atomic.AddInt64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:rpt_%d?mode=memory&cache=shared", seq)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return gdb
}
