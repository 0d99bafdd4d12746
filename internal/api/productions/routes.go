package productions

import (
	"net/http"

	"github.com/stagedoor/greenroom/internal/api"
	"github.com/stagedoor/greenroom/internal/store"
)

// RegisterRoutes adds all production endpoints to the given mux. Reads are
// public; writes need an editor token and deletes an admin token.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s}

	mux.HandleFunc("GET /api/v1/productions", h.List)
	mux.HandleFunc("GET /api/v1/productions/{productionId}", h.Get)
	mux.Handle("POST /api/v1/productions", api.RequireRole(api.RoleEditor, http.HandlerFunc(h.Create)))
	mux.Handle("PATCH /api/v1/productions/{productionId}", api.RequireRole(api.RoleEditor, http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/v1/productions/{productionId}", api.RequireRole(api.RoleAdmin, http.HandlerFunc(h.Delete)))
}
