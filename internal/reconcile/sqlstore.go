package reconcile

import (
	"context"
	"database/sql"
	"strings"

	"github.com/stagedoor/greenroom/internal/database"
)

// Table describes how one entity type maps onto its SQL table: the
// alternate-key columns used for matching, the columns written on insert,
// and the business columns rewritten on update. Update columns must not
// include key columns; updating a record never moves it to a new key.
type Table[E any, K comparable] struct {
	Name string

	KeyColumns []string
	KeyArgs    func(K) []any

	InsertColumns []string
	InsertArgs    func(E) []any

	UpdateColumns []string
	UpdateArgs    func(E) []any
}

// SQLStore adapts one database table to the Store interface. All statements
// of a run share a single transaction opened lazily on first use; Flush
// commits it. The table needs an integer id column the backend fills on
// insert, plus a UNIQUE constraint over the key columns so concurrent runs
// surface as constraint violations instead of duplicate rows.
type SQLStore[E any, K comparable] struct {
	db        *sql.DB
	dialect   database.Dialect
	table     Table[E, K]
	tx        *sql.Tx
	committed bool
}

// NewSQLStore returns a store over the given table. Callers must Close it
// when the run is over; Close after a successful Flush is a no-op.
func NewSQLStore[E any, K comparable](db *sql.DB, d database.Dialect, table Table[E, K]) *SQLStore[E, K] {
	return &SQLStore[E, K]{db: db, dialect: d, table: table}
}

func (s *SQLStore[E, K]) begin(ctx context.Context) (*sql.Tx, error) {
	if s.tx != nil {
		return s.tx, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &StoreUnavailableError{Op: "begin " + s.table.Name, Err: err}
	}
	s.tx = tx
	s.committed = false
	return tx, nil
}

func (s *SQLStore[E, K]) keyPredicate() string {
	parts := make([]string, len(s.table.KeyColumns))
	for i, col := range s.table.KeyColumns {
		parts[i] = col + " = ?"
	}
	return strings.Join(parts, " AND ")
}

// Lookup counts rows matching the alternate key.
func (s *SQLStore[E, K]) Lookup(ctx context.Context, key K) (bool, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return false, err
	}

	query := s.dialect.Rebind("SELECT COUNT(*) FROM " + s.table.Name + " WHERE " + s.keyPredicate())
	var n int
	if err := tx.QueryRowContext(ctx, query, s.table.KeyArgs(key)...).Scan(&n); err != nil {
		return false, &StoreUnavailableError{Op: "lookup " + s.table.Name, Err: err}
	}
	return n > 0, nil
}

// Insert adds a row and returns the id the backend assigned. A uniqueness
// violation comes back as a ConstraintViolationError; everything else as a
// StoreUnavailableError. The insert runs under a savepoint because Postgres
// aborts the whole transaction after a failed statement, and callers need
// the transaction alive to recover from a violation.
func (s *SQLStore[E, K]) Insert(ctx context.Context, entry E) (int64, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, "SAVEPOINT reconcile_insert"); err != nil {
		return 0, &StoreUnavailableError{Op: "insert " + s.table.Name, Err: err}
	}

	cols := s.table.InsertColumns
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	query := s.dialect.Rebind(
		"INSERT INTO " + s.table.Name + " (" + strings.Join(cols, ", ") + ") VALUES (" + placeholders + ") RETURNING id")

	var id int64
	if err := tx.QueryRowContext(ctx, query, s.table.InsertArgs(entry)...).Scan(&id); err != nil {
		_, _ = tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT reconcile_insert")
		if database.IsUniqueViolation(err) {
			return 0, &ConstraintViolationError{Op: "insert " + s.table.Name, Err: err}
		}
		return 0, &StoreUnavailableError{Op: "insert " + s.table.Name, Err: err}
	}

	if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT reconcile_insert"); err != nil {
		return 0, &StoreUnavailableError{Op: "insert " + s.table.Name, Err: err}
	}
	return id, nil
}

// Update rewrites the update columns of the row matching the alternate key.
func (s *SQLStore[E, K]) Update(ctx context.Context, key K, entry E) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}

	sets := make([]string, len(s.table.UpdateColumns))
	for i, col := range s.table.UpdateColumns {
		sets[i] = col + " = ?"
	}
	query := s.dialect.Rebind(
		"UPDATE " + s.table.Name + " SET " + strings.Join(sets, ", ") + " WHERE " + s.keyPredicate())

	args := append(s.table.UpdateArgs(entry), s.table.KeyArgs(key)...)
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return &StoreUnavailableError{Op: "update " + s.table.Name, Err: err}
	}
	return nil
}

// Flush commits the run's transaction. Without any staged change it is a
// no-op.
func (s *SQLStore[E, K]) Flush(ctx context.Context) error {
	if s.tx == nil {
		return nil
	}
	if err := s.tx.Commit(); err != nil {
		return &StoreUnavailableError{Op: "commit " + s.table.Name, Err: err}
	}
	s.committed = true
	return nil
}

// Close rolls back the transaction if Flush never committed it, leaving the
// table untouched by the aborted run.
func (s *SQLStore[E, K]) Close() error {
	if s.tx == nil || s.committed {
		return nil
	}
	return s.tx.Rollback()
}
