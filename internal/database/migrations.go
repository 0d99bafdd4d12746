package database

// Migrations are ordered lists of SQL statement groups, one list per
// backend. Each group runs in a single transaction; the version number is
// the 1-based index into the list. The UNIQUE constraints on business
// fields back the alternate keys the seeder reconciles on, so the database
// rejects duplicates even if two processes seed at once.

func migrationsFor(d Dialect) [][]string {
	if d.Driver() == DriverPostgres {
		return postgresMigrations
	}
	return sqliteMigrations
}

var sqliteMigrations = [][]string{
	// Migration 1: all core tables
	{
		`CREATE TABLE productions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			season TEXT NOT NULL,
			venue TEXT NOT NULL DEFAULT '',
			opens_on TEXT NOT NULL DEFAULT '',
			closes_on TEXT NOT NULL DEFAULT '',
			synopsis TEXT NOT NULL DEFAULT '',
			archived BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			UNIQUE (title, season)
		)`,
		`CREATE INDEX idx_productions_season ON productions(season)`,

		`CREATE TABLE members (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			joined_year INTEGER NOT NULL DEFAULT 0,
			bio TEXT NOT NULL DEFAULT '',
			archived BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			UNIQUE (first_name, last_name)
		)`,

		`CREATE TABLE awards (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			year INTEGER NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			category TEXT NOT NULL,
			recipient TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			UNIQUE (year, name, type, category)
		)`,
		`CREATE INDEX idx_awards_year ON awards(year)`,

		`CREATE TABLE products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			price_cents INTEGER NOT NULL DEFAULT 0,
			badge TEXT NOT NULL DEFAULT '',
			archived BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	},
}

var postgresMigrations = [][]string{
	// Migration 1: all core tables
	{
		`CREATE TABLE productions (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			season TEXT NOT NULL,
			venue TEXT NOT NULL DEFAULT '',
			opens_on TEXT NOT NULL DEFAULT '',
			closes_on TEXT NOT NULL DEFAULT '',
			synopsis TEXT NOT NULL DEFAULT '',
			archived BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			UNIQUE (title, season)
		)`,
		`CREATE INDEX idx_productions_season ON productions(season)`,

		`CREATE TABLE members (
			id BIGSERIAL PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			joined_year INTEGER NOT NULL DEFAULT 0,
			bio TEXT NOT NULL DEFAULT '',
			archived BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			UNIQUE (first_name, last_name)
		)`,

		`CREATE TABLE awards (
			id BIGSERIAL PRIMARY KEY,
			year INTEGER NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			category TEXT NOT NULL,
			recipient TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			UNIQUE (year, name, type, category)
		)`,
		`CREATE INDEX idx_awards_year ON awards(year)`,

		`CREATE TABLE products (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			price_cents INTEGER NOT NULL DEFAULT 0,
			badge TEXT NOT NULL DEFAULT '',
			archived BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	},
}
