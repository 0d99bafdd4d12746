package seed

import (
	"time"

	"github.com/stagedoor/greenroom/internal/domain"
	"github.com/stagedoor/greenroom/internal/reconcile"
)

// Alternate keys: the business fields that identify one logical entity across
// seed runs, independent of its database id. These live here, next to the
// catalogs, because changing a key set changes what "the same record" means
// and should be reviewed with the data that depends on it.

// ProductionKey identifies a production by title and season.
type ProductionKey struct {
	Title  string
	Season string
}

func ProductionKeyOf(p domain.Production) ProductionKey {
	return ProductionKey{Title: p.Title, Season: p.Season}
}

// MemberKey identifies a member by first and last name.
type MemberKey struct {
	FirstName string
	LastName  string
}

func MemberKeyOf(m domain.Member) MemberKey {
	return MemberKey{FirstName: m.FirstName, LastName: m.LastName}
}

// AwardKey identifies an award by year, name, type and category. The id field
// must never stand in for this key: a fresh catalog entry carries no id, so an
// id-based lookup always misses and every run would insert the row again.
type AwardKey struct {
	Year     int
	Name     string
	Type     string
	Category string
}

func AwardKeyOf(a domain.Award) AwardKey {
	return AwardKey{Year: a.Year, Name: a.Name, Type: a.Type, Category: a.Category}
}

// ProductKey identifies a shop product by name.
type ProductKey struct {
	Name string
}

func ProductKeyOf(p domain.Product) ProductKey {
	return ProductKey{Name: p.Name}
}

func now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

func productionTable() reconcile.Table[domain.Production, ProductionKey] {
	return reconcile.Table[domain.Production, ProductionKey]{
		Name:       "productions",
		KeyColumns: []string{"title", "season"},
		KeyArgs: func(k ProductionKey) []any {
			return []any{k.Title, k.Season}
		},
		InsertColumns: []string{"title", "season", "venue", "opens_on", "closes_on", "synopsis", "archived", "created_at", "updated_at"},
		InsertArgs: func(p domain.Production) []any {
			ts := now()
			return []any{p.Title, p.Season, p.Venue, p.OpensOn, p.ClosesOn, p.Synopsis, p.Archived, ts, ts}
		},
		UpdateColumns: []string{"venue", "opens_on", "closes_on", "synopsis", "archived", "updated_at"},
		UpdateArgs: func(p domain.Production) []any {
			return []any{p.Venue, p.OpensOn, p.ClosesOn, p.Synopsis, p.Archived, now()}
		},
	}
}

func memberTable() reconcile.Table[domain.Member, MemberKey] {
	return reconcile.Table[domain.Member, MemberKey]{
		Name:       "members",
		KeyColumns: []string{"first_name", "last_name"},
		KeyArgs: func(k MemberKey) []any {
			return []any{k.FirstName, k.LastName}
		},
		InsertColumns: []string{"first_name", "last_name", "joined_year", "bio", "archived", "created_at", "updated_at"},
		InsertArgs: func(m domain.Member) []any {
			ts := now()
			return []any{m.FirstName, m.LastName, m.JoinedYear, m.Bio, m.Archived, ts, ts}
		},
		UpdateColumns: []string{"joined_year", "bio", "archived", "updated_at"},
		UpdateArgs: func(m domain.Member) []any {
			return []any{m.JoinedYear, m.Bio, m.Archived, now()}
		},
	}
}

func awardTable() reconcile.Table[domain.Award, AwardKey] {
	return reconcile.Table[domain.Award, AwardKey]{
		Name:       "awards",
		KeyColumns: []string{"year", "name", "type", "category"},
		KeyArgs: func(k AwardKey) []any {
			return []any{k.Year, k.Name, k.Type, k.Category}
		},
		InsertColumns: []string{"year", "name", "type", "category", "recipient", "created_at", "updated_at"},
		InsertArgs: func(a domain.Award) []any {
			ts := now()
			return []any{a.Year, a.Name, a.Type, a.Category, a.Recipient, ts, ts}
		},
		UpdateColumns: []string{"recipient", "updated_at"},
		UpdateArgs: func(a domain.Award) []any {
			return []any{a.Recipient, now()}
		},
	}
}

func productTable() reconcile.Table[domain.Product, ProductKey] {
	return reconcile.Table[domain.Product, ProductKey]{
		Name:       "products",
		KeyColumns: []string{"name"},
		KeyArgs: func(k ProductKey) []any {
			return []any{k.Name}
		},
		InsertColumns: []string{"name", "description", "price_cents", "badge", "archived", "created_at", "updated_at"},
		InsertArgs: func(p domain.Product) []any {
			ts := now()
			return []any{p.Name, p.Description, p.PriceCents, p.Badge, p.Archived, ts, ts}
		},
		UpdateColumns: []string{"description", "price_cents", "badge", "archived", "updated_at"},
		UpdateArgs: func(p domain.Product) []any {
			return []any{p.Description, p.PriceCents, p.Badge, p.Archived, now()}
		},
	}
}
