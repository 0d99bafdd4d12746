package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stagedoor/greenroom/internal/database"
	"github.com/stagedoor/greenroom/internal/domain"
)

// ProductStore defines the interface for merch product persistence.
type ProductStore interface {
	List(ctx context.Context, limit int, after string, archived bool) ([]*domain.Product, bool, string, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// SQLProductStore implements ProductStore on either backend.
type SQLProductStore struct {
	db *sql.DB
	d  database.Dialect
}

// NewSQLProductStore creates a new SQLProductStore.
func NewSQLProductStore(db *sql.DB, d database.Dialect) *SQLProductStore {
	return &SQLProductStore{db: db, d: d}
}

// Create inserts a new product.
func (s *SQLProductStore) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ts := now()

	var id int64
	err := s.db.QueryRowContext(ctx, s.d.Rebind(
		`INSERT INTO products (name, description, price_cents, badge, archived, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		p.Name, p.Description, p.PriceCents, p.Badge, p.Archived, ts, ts,
	).Scan(&id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("product %q already exists: %w", p.Name, ErrConflict)
		}
		return nil, fmt.Errorf("insert product: %w", err)
	}

	out := *p
	out.ID = formatID(id)
	out.CreatedAt = ts
	out.UpdatedAt = ts
	return &out, nil
}

// List returns a paginated list of products.
func (s *SQLProductStore) List(ctx context.Context, limit int, after string, archived bool) ([]*domain.Product, bool, string, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT id, name, description, price_cents, badge, archived, created_at, updated_at
		FROM products WHERE archived = ?`
	args := []any{archived}

	if cursor, ok := parseID(after); ok {
		query += ` AND id > ?`
		args = append(args, cursor)
	}

	query += ` ORDER BY id ASC LIMIT ?`
	args = append(args, limit+1)

	rows, err := s.db.QueryContext(ctx, s.d.Rebind(query), args...)
	if err != nil {
		return nil, false, "", fmt.Errorf("list products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var products []*domain.Product
	for rows.Next() {
		var p domain.Product
		var id int64
		if err := rows.Scan(&id, &p.Name, &p.Description, &p.PriceCents, &p.Badge, &p.Archived, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, false, "", fmt.Errorf("scan product: %w", err)
		}
		p.ID = formatID(id)
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, false, "", fmt.Errorf("rows iteration: %w", err)
	}

	hasMore := false
	nextAfter := ""
	if len(products) > limit {
		hasMore = true
		nextAfter = products[limit-1].ID
		products = products[:limit]
	}

	return products, hasMore, nextAfter, nil
}

// Get retrieves a single product by ID.
func (s *SQLProductStore) Get(ctx context.Context, id string) (*domain.Product, error) {
	dbID, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}

	var p domain.Product
	err := s.db.QueryRowContext(ctx, s.d.Rebind(
		`SELECT name, description, price_cents, badge, archived, created_at, updated_at
		 FROM products WHERE id = ?`),
		dbID,
	).Scan(&p.Name, &p.Description, &p.PriceCents, &p.Badge, &p.Archived, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	p.ID = formatID(dbID)
	return &p, nil
}

// Update overwrites the business fields of a product.
func (s *SQLProductStore) Update(ctx context.Context, id string, p *domain.Product) (*domain.Product, error) {
	dbID, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}

	res, err := s.db.ExecContext(ctx, s.d.Rebind(
		`UPDATE products SET name = ?, description = ?, price_cents = ?, badge = ?, archived = ?, updated_at = ?
		 WHERE id = ?`),
		p.Name, p.Description, p.PriceCents, p.Badge, p.Archived, now(), dbID,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("product %q already exists: %w", p.Name, ErrConflict)
		}
		return nil, fmt.Errorf("update product: %w", err)
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

// Delete removes a product.
func (s *SQLProductStore) Delete(ctx context.Context, id string) error {
	dbID, ok := parseID(id)
	if !ok {
		return ErrNotFound
	}

	res, err := s.db.ExecContext(ctx, s.d.Rebind(`DELETE FROM products WHERE id = ?`), dbID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
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
