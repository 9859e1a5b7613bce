package testutils

import (
	"fmt"
	"sync/atomic"
	"testing"

	"cornelius-notes/cornelius/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter atomic.Int64

// SetupTestDB opens an in-memory sqlite database with the full schema
// migrated. Service tests that exercise transactions and the JSON tag
// serializer run against it instead of sqlmock. Each call gets its own
// named shared-cache database so pooled connections see one schema
// while tests stay isolated from each other.
func SetupTestDB(t *testing.T) *database.Database {
	t.Helper()

	dsn := fmt.Sprintf("file:cornelius_test_%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	testDB := &database.Database{DB: db}
	t.Cleanup(testDB.Close)

	return testDB
}
