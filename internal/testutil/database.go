// Package testutil provides shared helpers for tests: an in-memory
// database with schema applied, an in-memory artifact store, and
// builders for common records.
package testutil

import (
	"testing"

	"sitecheck/internal/artifact"
	"sitecheck/internal/database"
	"sitecheck/internal/inspect"
)

// NewTestDatabase creates a new in-memory SQLite database with schema applied.
// The database is automatically closed when the test completes.
func NewTestDatabase(t *testing.T) inspect.Database {
	t.Helper()

	sqlDB, err := database.OpenConnection(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if _, err := sqlDB.Exec(database.Schema); err != nil {
		sqlDB.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}

	db := database.NewSQLiteDatabaseFromDB(sqlDB)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// NewTestStore creates a new in-memory artifact store.
func NewTestStore() *artifact.MemoryStore {
	return artifact.NewMemoryStore()
}
