package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stagedoor/greenroom/internal/database"
	"github.com/stagedoor/greenroom/internal/domain"
)

// ProductionStore defines the interface for production persistence.
type ProductionStore interface {
	List(ctx context.Context, limit int, after string, season string, archived bool) ([]*domain.Production, bool, string, error)
	Get(ctx context.Context, id string) (*domain.Production, error)
	Create(ctx context.Context, p *domain.Production) (*domain.Production, error)
	Update(ctx context.Context, id string, p *domain.Production) (*domain.Production, error)
	Delete(ctx context.Context, id string) error
}

// SQLProductionStore implements ProductionStore on either backend.
type SQLProductionStore struct {
	db *sql.DB
	d  database.Dialect
}

// NewSQLProductionStore creates a new SQLProductionStore.
func NewSQLProductionStore(db *sql.DB, d database.Dialect) *SQLProductionStore {
	return &SQLProductionStore{db: db, d: d}
}

// Create inserts a new production.
func (s *SQLProductionStore) Create(ctx context.Context, p *domain.Production) (*domain.Production, error) {
	ts := now()

	var id int64
	err := s.db.QueryRowContext(ctx, s.d.Rebind(
		`INSERT INTO productions (title, season, venue, opens_on, closes_on, synopsis, archived, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		p.Title, p.Season, p.Venue, p.OpensOn, p.ClosesOn, p.Synopsis, p.Archived, ts, ts,
	).Scan(&id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("production %q in season %q already exists: %w", p.Title, p.Season, ErrConflict)
		}
		return nil, fmt.Errorf("insert production: %w", err)
	}

	out := *p
	out.ID = formatID(id)
	out.CreatedAt = ts
	out.UpdatedAt = ts
	return &out, nil
}

// List returns a paginated list of productions, optionally filtered by season.
func (s *SQLProductionStore) List(ctx context.Context, limit int, after string, season string, archived bool) ([]*domain.Production, bool, string, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT id, title, season, venue, opens_on, closes_on, synopsis, archived, created_at, updated_at
		FROM productions WHERE archived = ?`
	args := []any{archived}

	if season != "" {
		query += ` AND season = ?`
		args = append(args, season)
	}
	if cursor, ok := parseID(after); ok {
		query += ` AND id > ?`
		args = append(args, cursor)
	}

	query += ` ORDER BY id ASC LIMIT ?`
	args = append(args, limit+1)

	rows, err := s.db.QueryContext(ctx, s.d.Rebind(query), args...)
	if err != nil {
		return nil, false, "", fmt.Errorf("list productions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var productions []*domain.Production
	for rows.Next() {
		var p domain.Production
		var id int64
		if err := rows.Scan(&id, &p.Title, &p.Season, &p.Venue, &p.OpensOn, &p.ClosesOn, &p.Synopsis, &p.Archived, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, false, "", fmt.Errorf("scan production: %w", err)
		}
		p.ID = formatID(id)
		productions = append(productions, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, false, "", fmt.Errorf("rows iteration: %w", err)
	}

	hasMore := false
	nextAfter := ""
	if len(productions) > limit {
		hasMore = true
		nextAfter = productions[limit-1].ID
		productions = productions[:limit]
	}

	return productions, hasMore, nextAfter, nil
}

// Get retrieves a single production by ID.
func (s *SQLProductionStore) Get(ctx context.Context, id string) (*domain.Production, error) {
	dbID, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}

	var p domain.Production
	err := s.db.QueryRowContext(ctx, s.d.Rebind(
		`SELECT title, season, venue, opens_on, closes_on, synopsis, archived, created_at, updated_at
		 FROM productions WHERE id = ?`),
		dbID,
	).Scan(&p.Title, &p.Season, &p.Venue, &p.OpensOn, &p.ClosesOn, &p.Synopsis, &p.Archived, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get production: %w", err)
	}
	p.ID = formatID(dbID)
	return &p, nil
}

// Update overwrites the business fields of a production.
func (s *SQLProductionStore) Update(ctx context.Context, id string, p *domain.Production) (*domain.Production, error) {
	dbID, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}

	res, err := s.db.ExecContext(ctx, s.d.Rebind(
		`UPDATE productions SET title = ?, season = ?, venue = ?, opens_on = ?, closes_on = ?, synopsis = ?, archived = ?, updated_at = ?
		 WHERE id = ?`),
		p.Title, p.Season, p.Venue, p.OpensOn, p.ClosesOn, p.Synopsis, p.Archived, now(), dbID,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("production %q in season %q already exists: %w", p.Title, p.Season, ErrConflict)
		}
		return nil, fmt.Errorf("update production: %w", err)
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

// Delete removes a production.
func (s *SQLProductionStore) Delete(ctx context.Context, id string) error {
	dbID, ok := parseID(id)
	if !ok {
		return ErrNotFound
	}

	res, err := s.db.ExecContext(ctx, s.d.Rebind(`DELETE FROM productions WHERE id = ?`), dbID)
	if err != nil {
		return fmt.Errorf("delete production: %w", err)
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
