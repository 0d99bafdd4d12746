package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/stagedoor/greenroom/internal/database"
	"github.com/stagedoor/greenroom/internal/domain"
	"github.com/stagedoor/greenroom/internal/metrics"
	"github.com/stagedoor/greenroom/internal/reconcile"
)

// Report summarizes one seed run.
type Report struct {
	Productions reconcile.Result `json:"productions"`
	Members     reconcile.Result `json:"members"`
	Awards      reconcile.Result `json:"awards"`
	Products    reconcile.Result `json:"products"`
}

// Run reconciles the full catalog into the database and returns per-entity
// counts. Running it again with an unchanged catalog changes nothing. Each
// entity type commits in its own transaction, so a failure partway leaves
// earlier entity types seeded and the failing one untouched. m may be nil.
func Run(ctx context.Context, db *sql.DB, d database.Dialect, catalog Catalog, m *metrics.Metrics) (report Report, err error) {
	defer func() {
		if m != nil {
			m.ObserveSeedRun(err)
		}
	}()

	observe := func(entity string, res reconcile.Result) {
		slog.Info("seeded", "entity", entity, "inserted", res.Inserted, "updated", res.Updated)
		if m != nil {
			m.ObserveSeed(entity, res.Inserted, res.Updated)
		}
	}

	if report.Productions, err = Productions(ctx, db, d, catalog.Productions); err != nil {
		return report, fmt.Errorf("seed productions: %w", err)
	}
	observe("productions", report.Productions)

	if report.Members, err = Members(ctx, db, d, catalog.Members); err != nil {
		return report, fmt.Errorf("seed members: %w", err)
	}
	observe("members", report.Members)

	if report.Awards, err = Awards(ctx, db, d, catalog.Awards); err != nil {
		return report, fmt.Errorf("seed awards: %w", err)
	}
	observe("awards", report.Awards)

	if report.Products, err = Products(ctx, db, d, catalog.Products); err != nil {
		return report, fmt.Errorf("seed products: %w", err)
	}
	observe("products", report.Products)

	return report, nil
}

// Productions reconciles the production catalog keyed on (title, season).
func Productions(ctx context.Context, db *sql.DB, d database.Dialect, catalog []domain.Production) (reconcile.Result, error) {
	s := reconcile.NewSQLStore(db, d, productionTable())
	defer func() { _ = s.Close() }()
	return reconcile.Run(ctx, s, catalog, ProductionKeyOf)
}

// Members reconciles the member catalog keyed on (first name, last name).
func Members(ctx context.Context, db *sql.DB, d database.Dialect, catalog []domain.Member) (reconcile.Result, error) {
	s := reconcile.NewSQLStore(db, d, memberTable())
	defer func() { _ = s.Close() }()
	return reconcile.Run(ctx, s, catalog, MemberKeyOf)
}

// Awards reconciles the award catalog keyed on (year, name, type, category).
func Awards(ctx context.Context, db *sql.DB, d database.Dialect, catalog []domain.Award) (reconcile.Result, error) {
	s := reconcile.NewSQLStore(db, d, awardTable())
	defer func() { _ = s.Close() }()
	return reconcile.Run(ctx, s, catalog, AwardKeyOf)
}

// Products reconciles the product catalog keyed on name.
func Products(ctx context.Context, db *sql.DB, d database.Dialect, catalog []domain.Product) (reconcile.Result, error) {
	s := reconcile.NewSQLStore(db, d, productTable())
	defer func() { _ = s.Close() }()
	return reconcile.Run(ctx, s, catalog, ProductKeyOf)
}
