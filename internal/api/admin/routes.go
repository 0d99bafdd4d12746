package admin

import (
	"database/sql"
	"net/http"

	"github.com/stagedoor/greenroom/internal/api"
	"github.com/stagedoor/greenroom/internal/database"
	"github.com/stagedoor/greenroom/internal/metrics"
	"github.com/stagedoor/greenroom/internal/seed"
)

// RegisterRoutes registers all admin API endpoints on the mux. Every admin
// endpoint requires the admin role.
func RegisterRoutes(mux *http.ServeMux, db *sql.DB, d database.Dialect, catalog seed.Catalog, m *metrics.Metrics) {
	h := &Handler{db: db, dialect: d, catalog: catalog, metrics: m}

	mux.Handle("POST /_admin/seed", api.RequireRole(api.RoleAdmin, http.HandlerFunc(h.Seed)))
	mux.Handle("POST /_admin/reset", api.RequireRole(api.RoleAdmin, http.HandlerFunc(h.Reset)))
}
