package database_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stagedoor/greenroom/internal/database"
	"github.com/stagedoor/greenroom/internal/testhelpers"
)

func TestOpen(t *testing.T) {
	db, dialect := testhelpers.NewTestDB(t)

	if err := db.Ping(); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
	if dialect.Driver() != database.DriverSQLite {
		t.Errorf("driver = %q, want %q", dialect.Driver(), database.DriverSQLite)
	}

	// Verify WAL mode is set.
	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	// In-memory databases may report "memory" instead of "wal".
	if journalMode != "wal" && journalMode != "memory" {
		t.Errorf("journal_mode = %q, want wal or memory", journalMode)
	}

	// Verify foreign keys are enabled.
	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
}

func TestMigrate(t *testing.T) {
	db, dialect := testhelpers.NewTestDB(t)
	ctx := context.Background()

	if err := database.Migrate(ctx, db, dialect); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	// Verify schema_migrations table exists and is queryable.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("query schema_migrations: %v", err)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	db, dialect := testhelpers.NewTestDB(t)
	ctx := context.Background()

	// Run migrations twice — should not error.
	for i := 0; i < 2; i++ {
		if err := database.Migrate(ctx, db, dialect); err != nil {
			t.Fatalf("migrate (run %d): %v", i+1, err)
		}
	}
}

func TestRebind(t *testing.T) {
	sqlite := database.NewDialect(database.DriverSQLite)
	postgres := database.NewDialect(database.DriverPostgres)

	query := "SELECT id FROM awards WHERE year = ? AND name = ?"

	if got := sqlite.Rebind(query); got != query {
		t.Errorf("sqlite rebind changed query: %q", got)
	}

	want := "SELECT id FROM awards WHERE year = $1 AND name = $2"
	if got := postgres.Rebind(query); got != want {
		t.Errorf("postgres rebind = %q, want %q", got, want)
	}

	plain := "SELECT COUNT(*) FROM awards"
	if got := postgres.Rebind(plain); got != plain {
		t.Errorf("postgres rebind changed placeholder-free query: %q", got)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sqlite message", errors.New("constraint failed: UNIQUE constraint failed: awards.year (1555)"), true},
		{"wrapped sqlite message", fmt.Errorf("insert awards: %w", errors.New("UNIQUE constraint failed: awards.year")), true},
		{"postgres code", &pgconn.PgError{Code: "23505"}, true},
		{"wrapped postgres code", fmt.Errorf("insert awards: %w", &pgconn.PgError{Code: "23505"}), true},
		{"other postgres code", &pgconn.PgError{Code: "23503"}, false},
		{"unrelated", errors.New("database is locked"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := database.IsUniqueViolation(tc.err); got != tc.want {
				t.Errorf("IsUniqueViolation(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
