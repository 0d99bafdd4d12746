package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stagedoor/greenroom/internal/database"
	"github.com/stagedoor/greenroom/internal/domain"
)

// AwardStore defines the interface for award persistence.
type AwardStore interface {
	List(ctx context.Context, limit int, after string, year int, awardType string) ([]*domain.Award, bool, string, error)
	Get(ctx context.Context, id string) (*domain.Award, error)
	Create(ctx context.Context, a *domain.Award) (*domain.Award, error)
	Update(ctx context.Context, id string, a *domain.Award) (*domain.Award, error)
	Delete(ctx context.Context, id string) error
}

// SQLAwardStore implements AwardStore on either backend.
type SQLAwardStore struct {
	db *sql.DB
	d  database.Dialect
}

// NewSQLAwardStore creates a new SQLAwardStore.
func NewSQLAwardStore(db *sql.DB, d database.Dialect) *SQLAwardStore {
	return &SQLAwardStore{db: db, d: d}
}

// Create inserts a new award.
func (s *SQLAwardStore) Create(ctx context.Context, a *domain.Award) (*domain.Award, error) {
	ts := now()

	var id int64
	err := s.db.QueryRowContext(ctx, s.d.Rebind(
		`INSERT INTO awards (year, name, type, category, recipient, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		a.Year, a.Name, a.Type, a.Category, a.Recipient, ts, ts,
	).Scan(&id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("award %q (%d, %s, %s) already exists: %w", a.Name, a.Year, a.Type, a.Category, ErrConflict)
		}
		return nil, fmt.Errorf("insert award: %w", err)
	}

	out := *a
	out.ID = formatID(id)
	out.CreatedAt = ts
	out.UpdatedAt = ts
	return &out, nil
}

// List returns a paginated list of awards, optionally filtered by year and type.
func (s *SQLAwardStore) List(ctx context.Context, limit int, after string, year int, awardType string) ([]*domain.Award, bool, string, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT id, year, name, type, category, recipient, created_at, updated_at FROM awards WHERE 1 = 1`
	var args []any

	if year > 0 {
		query += ` AND year = ?`
		args = append(args, year)
	}
	if awardType != "" {
		query += ` AND type = ?`
		args = append(args, awardType)
	}
	if cursor, ok := parseID(after); ok {
		query += ` AND id > ?`
		args = append(args, cursor)
	}

	query += ` ORDER BY id ASC LIMIT ?`
	args = append(args, limit+1)

	rows, err := s.db.QueryContext(ctx, s.d.Rebind(query), args...)
	if err != nil {
		return nil, false, "", fmt.Errorf("list awards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var awards []*domain.Award
	for rows.Next() {
		var a domain.Award
		var id int64
		if err := rows.Scan(&id, &a.Year, &a.Name, &a.Type, &a.Category, &a.Recipient, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, false, "", fmt.Errorf("scan award: %w", err)
		}
		a.ID = formatID(id)
		awards = append(awards, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, false, "", fmt.Errorf("rows iteration: %w", err)
	}

	hasMore := false
	nextAfter := ""
	if len(awards) > limit {
		hasMore = true
		nextAfter = awards[limit-1].ID
		awards = awards[:limit]
	}

	return awards, hasMore, nextAfter, nil
}

// Get retrieves a single award by ID.
func (s *SQLAwardStore) Get(ctx context.Context, id string) (*domain.Award, error) {
	dbID, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}

	var a domain.Award
	err := s.db.QueryRowContext(ctx, s.d.Rebind(
		`SELECT year, name, type, category, recipient, created_at, updated_at FROM awards WHERE id = ?`),
		dbID,
	).Scan(&a.Year, &a.Name, &a.Type, &a.Category, &a.Recipient, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get award: %w", err)
	}
	a.ID = formatID(dbID)
	return &a, nil
}

// Update overwrites the business fields of an award.
func (s *SQLAwardStore) Update(ctx context.Context, id string, a *domain.Award) (*domain.Award, error) {
	dbID, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}

	res, err := s.db.ExecContext(ctx, s.d.Rebind(
		`UPDATE awards SET year = ?, name = ?, type = ?, category = ?, recipient = ?, updated_at = ? WHERE id = ?`),
		a.Year, a.Name, a.Type, a.Category, a.Recipient, now(), dbID,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("award %q (%d, %s, %s) already exists: %w", a.Name, a.Year, a.Type, a.Category, ErrConflict)
		}
		return nil, fmt.Errorf("update award: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return s.Get(ctx, id)
}

// Delete removes an award.
func (s *SQLAwardStore) Delete(ctx context.Context, id string) error {
	dbID, ok := parseID(id)
	if !ok {
		return ErrNotFound
	}

	res, err := s.db.ExecContext(ctx, s.d.Rebind(`DELETE FROM awards WHERE id = ?`), dbID)
	if err != nil {
		return fmt.Errorf("delete award: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
