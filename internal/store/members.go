package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stagedoor/greenroom/internal/database"
	"github.com/stagedoor/greenroom/internal/domain"
)

// MemberStore defines the interface for member persistence.
type MemberStore interface {
	List(ctx context.Context, limit int, after string, lastName string, archived bool) ([]*domain.Member, bool, string, error)
	Get(ctx context.Context, id string) (*domain.Member, error)
	Create(ctx context.Context, m *domain.Member) (*domain.Member, error)
	Update(ctx context.Context, id string, m *domain.Member) (*domain.Member, error)
	Delete(ctx context.Context, id string) error
}

// SQLMemberStore implements MemberStore on either backend.
type SQLMemberStore struct {
	db *sql.DB
	d  database.Dialect
}

// NewSQLMemberStore creates a new SQLMemberStore.
func NewSQLMemberStore(db *sql.DB, d database.Dialect) *SQLMemberStore {
	return &SQLMemberStore{db: db, d: d}
}

// Create inserts a new member.
func (s *SQLMemberStore) Create(ctx context.Context, m *domain.Member) (*domain.Member, error) {
	ts := now()

	var id int64
	err := s.db.QueryRowContext(ctx, s.d.Rebind(
		`INSERT INTO members (first_name, last_name, joined_year, bio, archived, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		m.FirstName, m.LastName, m.JoinedYear, m.Bio, m.Archived, ts, ts,
	).Scan(&id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("member %q %q already exists: %w", m.FirstName, m.LastName, ErrConflict)
		}
		return nil, fmt.Errorf("insert member: %w", err)
	}

	out := *m
	out.ID = formatID(id)
	out.CreatedAt = ts
	out.UpdatedAt = ts
	return &out, nil
}

// List returns a paginated list of members, optionally filtered by last name.
func (s *SQLMemberStore) List(ctx context.Context, limit int, after string, lastName string, archived bool) ([]*domain.Member, bool, string, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT id, first_name, last_name, joined_year, bio, archived, created_at, updated_at
		FROM members WHERE archived = ?`
	args := []any{archived}

	if lastName != "" {
		query += ` AND last_name = ?`
		args = append(args, lastName)
	}
	if cursor, ok := parseID(after); ok {
		query += ` AND id > ?`
		args = append(args, cursor)
	}

	query += ` ORDER BY id ASC LIMIT ?`
	args = append(args, limit+1)

	rows, err := s.db.QueryContext(ctx, s.d.Rebind(query), args...)
	if err != nil {
		return nil, false, "", fmt.Errorf("list members: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var members []*domain.Member
	for rows.Next() {
		var m domain.Member
		var id int64
		if err := rows.Scan(&id, &m.FirstName, &m.LastName, &m.JoinedYear, &m.Bio, &m.Archived, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, false, "", fmt.Errorf("scan member: %w", err)
		}
		m.ID = formatID(id)
		members = append(members, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, false, "", fmt.Errorf("rows iteration: %w", err)
	}

	hasMore := false
	nextAfter := ""
	if len(members) > limit {
		hasMore = true
		nextAfter = members[limit-1].ID
		members = members[:limit]
	}

	return members, hasMore, nextAfter, nil
}

// Get retrieves a single member by ID.
func (s *SQLMemberStore) Get(ctx context.Context, id string) (*domain.Member, error) {
	dbID, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}

	var m domain.Member
	err := s.db.QueryRowContext(ctx, s.d.Rebind(
		`SELECT first_name, last_name, joined_year, bio, archived, created_at, updated_at
		 FROM members WHERE id = ?`),
		dbID,
	).Scan(&m.FirstName, &m.LastName, &m.JoinedYear, &m.Bio, &m.Archived, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	m.ID = formatID(dbID)
	return &m, nil
}

// Update overwrites the business fields of a member.
func (s *SQLMemberStore) Update(ctx context.Context, id string, m *domain.Member) (*domain.Member, error) {
	dbID, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}

	res, err := s.db.ExecContext(ctx, s.d.Rebind(
		`UPDATE members SET first_name = ?, last_name = ?, joined_year = ?, bio = ?, archived = ?, updated_at = ?
		 WHERE id = ?`),
		m.FirstName, m.LastName, m.JoinedYear, m.Bio, m.Archived, now(), dbID,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("member %q %q already exists: %w", m.FirstName, m.LastName, ErrConflict)
		}
		return nil, fmt.Errorf("update member: %w", err)
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

// Delete removes a member.
func (s *SQLMemberStore) Delete(ctx context.Context, id string) error {
	dbID, ok := parseID(id)
	if !ok {
		return ErrNotFound
	}

	res, err := s.db.ExecContext(ctx, s.d.Rebind(`DELETE FROM members WHERE id = ?`), dbID)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
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
