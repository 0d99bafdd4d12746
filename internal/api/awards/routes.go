package awards

import (
	"net/http"

	"github.com/stagedoor/greenroom/internal/api"
	"github.com/stagedoor/greenroom/internal/store"
)

// RegisterRoutes adds all award endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s}

	mux.HandleFunc("GET /api/v1/awards", h.List)
	mux.HandleFunc("GET /api/v1/awards/{awardId}", h.Get)
	mux.Handle("POST /api/v1/awards", api.RequireRole(api.RoleEditor, http.HandlerFunc(h.Create)))
	mux.Handle("PATCH /api/v1/awards/{awardId}", api.RequireRole(api.RoleEditor, http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/v1/awards/{awardId}", api.RequireRole(api.RoleAdmin, http.HandlerFunc(h.Delete)))
}
