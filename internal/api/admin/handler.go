package admin

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/stagedoor/greenroom/internal/api"
	"github.com/stagedoor/greenroom/internal/database"
	"github.com/stagedoor/greenroom/internal/metrics"
	"github.com/stagedoor/greenroom/internal/seed"
)

// Handler serves the admin API at /_admin/.
type Handler struct {
	db      *sql.DB
	dialect database.Dialect
	catalog seed.Catalog
	metrics *metrics.Metrics
}

// dataTableNames lists all data tables cleared by a reset.
var dataTableNames = []string{
	"productions",
	"members",
	"awards",
	"products",
}

// Seed re-runs catalog reconciliation against the live database and returns
// the per-entity counts. Safe to call any number of times.
func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	report, err := seed.Run(r.Context(), h.db, h.dialect, h.catalog, h.metrics)
	if err != nil {
		corrID := api.CorrelationID(r.Context())
		api.WriteError(w, http.StatusInternalServerError, &api.Error{
			Status:        "error",
			Message:       fmt.Sprintf("failed to seed: %s", err),
			CorrelationID: corrID,
			Category:      "INTERNAL_ERROR",
		})
		return
	}

	api.WriteJSON(w, http.StatusOK, report)
}

// Reset drops all data from all tables and re-seeds from the catalog.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	report, err := ResetData(r.Context(), h.db, h.dialect, h.catalog, h.metrics)
	if err != nil {
		corrID := api.CorrelationID(r.Context())
		api.WriteError(w, http.StatusInternalServerError, &api.Error{
			Status:        "error",
			Message:       err.Error(),
			CorrelationID: corrID,
			Category:      "INTERNAL_ERROR",
		})
		return
	}

	api.WriteJSON(w, http.StatusOK, report)
}

// ResetData clears all data tables and re-seeds. Exported for reuse by tests
// or other callers.
func ResetData(ctx context.Context, db *sql.DB, d database.Dialect, catalog seed.Catalog, m *metrics.Metrics) (seed.Report, error) {
	for _, table := range dataTableNames {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil { //nolint:gosec // table names are hardcoded constants
			return seed.Report{}, fmt.Errorf("clear table %s: %w", table, err)
		}
	}
	return seed.Run(ctx, db, d, catalog, m)
}
