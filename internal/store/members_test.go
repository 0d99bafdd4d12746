package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stagedoor/greenroom/internal/domain"
	"github.com/stagedoor/greenroom/internal/store"
	"github.com/stagedoor/greenroom/internal/testhelpers"
)

var _ store.MemberStore = (*store.SQLMemberStore)(nil)

func setupMemberStore(t *testing.T) *store.SQLMemberStore {
	t.Helper()
	db, d := testhelpers.NewMigratedDB(t)
	return store.NewSQLMemberStore(db, d)
}

func TestMemberCreate(t *testing.T) {
	s := setupMemberStore(t)
	ctx := context.Background()

	m, err := s.Create(ctx, &domain.Member{
		FirstName:  "Alice",
		LastName:   "Hartley",
		JoinedYear: 2012,
		Bio:        "Founding member and frequent lead.",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if m.ID == "" {
		t.Error("expected non-empty ID")
	}
	if m.FirstName != "Alice" {
		t.Errorf("expected firstName=Alice, got %s", m.FirstName)
	}
	if m.LastName != "Hartley" {
		t.Errorf("expected lastName=Hartley, got %s", m.LastName)
	}
	if m.JoinedYear != 2012 {
		t.Errorf("expected joinedYear=2012, got %d", m.JoinedYear)
	}
}

func TestMemberCreateDuplicateName(t *testing.T) {
	s := setupMemberStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, &domain.Member{FirstName: "Ben", LastName: "Okafor"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = s.Create(ctx, &domain.Member{FirstName: "Ben", LastName: "Okafor"})
	if !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// Same last name with a different first name is fine.
	_, err = s.Create(ctx, &domain.Member{FirstName: "Ada", LastName: "Okafor"})
	if err != nil {
		t.Fatalf("create sibling: %v", err)
	}
}

func TestMemberGet(t *testing.T) {
	s := setupMemberStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, &domain.Member{FirstName: "Carol", LastName: "Jennings", JoinedYear: 2015})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.JoinedYear != 2015 {
		t.Errorf("expected joinedYear=2015, got %d", got.JoinedYear)
	}
}

func TestMemberGetNotFound(t *testing.T) {
	s := setupMemberStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "999")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemberListFilterLastName(t *testing.T) {
	s := setupMemberStore(t)
	ctx := context.Background()

	members := []*domain.Member{
		{FirstName: "Dana", LastName: "Whitfield"},
		{FirstName: "Eli", LastName: "Whitfield"},
		{FirstName: "Fay", LastName: "Moreno"},
	}
	for i, m := range members {
		if _, err := s.Create(ctx, m); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	got, _, _, err := s.List(ctx, 100, "", "Whitfield", false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 Whitfields, got %d", len(got))
	}
	for _, m := range got {
		if m.LastName != "Whitfield" {
			t.Errorf("expected lastName=Whitfield, got %s", m.LastName)
		}
	}
}

func TestMemberListPagination(t *testing.T) {
	s := setupMemberStore(t)
	ctx := context.Background()

	for i := range 5 {
		_, err := s.Create(ctx, &domain.Member{FirstName: fmt.Sprintf("Member%d", i), LastName: "Ensemble"})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	page1, hasMore, nextAfter, err := s.List(ctx, 3, "", "", false)
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if len(page1) != 3 {
		t.Fatalf("expected 3 members, got %d", len(page1))
	}
	if !hasMore {
		t.Error("expected hasMore=true")
	}

	page2, hasMore2, _, err := s.List(ctx, 3, nextAfter, "", false)
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(page2) != 2 {
		t.Fatalf("expected 2 members on page 2, got %d", len(page2))
	}
	if hasMore2 {
		t.Error("expected hasMore=false on last page")
	}
	if page2[0].ID == page1[2].ID {
		t.Error("expected page 2 to start after page 1")
	}
}

func TestMemberUpdate(t *testing.T) {
	s := setupMemberStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, &domain.Member{FirstName: "Greta", LastName: "Lindqvist", Bio: "Stage manager."})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.Bio = "Stage manager and lighting designer."
	updated, err := s.Update(ctx, created.ID, created)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Bio != "Stage manager and lighting designer." {
		t.Errorf("expected updated bio, got %s", updated.Bio)
	}
	if updated.ID != created.ID {
		t.Errorf("expected id=%s, got %s", created.ID, updated.ID)
	}
}

func TestMemberDelete(t *testing.T) {
	s := setupMemberStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, &domain.Member{FirstName: "Hugo", LastName: "Barnes"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if err := s.Delete(ctx, "31337"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
