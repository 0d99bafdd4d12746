package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Open opens the database named by the DSN. DSNs with a postgres:// or
// postgresql:// scheme connect through pgx; anything else is treated as a
// SQLite path (":memory:" included) and configured for production use: WAL
// mode, foreign keys enabled, busy timeout of 5s.
func Open(dsn string) (*sql.DB, Dialect, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return openPostgres(dsn)
	}
	return openSQLite(dsn)
}

func openSQLite(dsn string) (*sql.DB, Dialect, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, Dialect{}, fmt.Errorf("open database: %w", err)
	}

	// Single connection for SQLite to avoid locking issues.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, Dialect{}, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	return db, Dialect{driver: DriverSQLite}, nil
}

func openPostgres(dsn string) (*sql.DB, Dialect, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, Dialect{}, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, Dialect{}, fmt.Errorf("ping database: %w", err)
	}
	return db, Dialect{driver: DriverPostgres}, nil
}

// Migrate runs all pending schema migrations for the given dialect, each
// inside its own transaction. Migrations are tracked in the
// schema_migrations table by version number.
func Migrate(ctx context.Context, db *sql.DB, d Dialect) error {
	// Ensure schema_migrations exists (outside any transaction so it's always
	// available for version checks).
	if _, err := db.ExecContext(ctx, migrationsTable(d)); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for i, stmts := range migrationsFor(d) {
		version := i + 1

		var exists int
		if err := db.QueryRowContext(ctx, d.Rebind("SELECT COUNT(*) FROM schema_migrations WHERE version = ?"), version).Scan(&exists); err != nil {
			return fmt.Errorf("check migration %d: %w", version, err)
		}
		if exists > 0 {
			continue
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", version, err)
		}

		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("migration %d: %w", version, err)
			}
		}

		if _, err := tx.ExecContext(ctx, d.Rebind("INSERT INTO schema_migrations (version) VALUES (?)"), version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %d: %w", version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", version, err)
		}
	}

	return nil
}

func migrationsTable(d Dialect) string {
	if d.Driver() == DriverPostgres {
		return `CREATE TABLE IF NOT EXISTS schema_migrations (
		version BIGINT PRIMARY KEY,
		applied_at TIMESTAMPTZ DEFAULT now()
	)`
	}
	return `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
}
