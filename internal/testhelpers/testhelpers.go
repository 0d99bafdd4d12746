package testhelpers

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stagedoor/greenroom/internal/database"
)

// NewTestDB returns an in-memory SQLite database configured the same way as
// production, along with its dialect. The database is automatically closed
// when the test completes.
func NewTestDB(t *testing.T) (*sql.DB, database.Dialect) {
	t.Helper()

	db, dialect, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db, dialect
}

// NewMigratedDB returns an in-memory database with the full schema applied.
func NewMigratedDB(t *testing.T) (*sql.DB, database.Dialect) {
	t.Helper()

	db, dialect := NewTestDB(t)
	if err := database.Migrate(context.Background(), db, dialect); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db, dialect
}
