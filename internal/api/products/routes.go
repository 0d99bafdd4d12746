package products

import (
	"net/http"

	"github.com/stagedoor/greenroom/internal/api"
	"github.com/stagedoor/greenroom/internal/store"
)

// RegisterRoutes adds all shop product endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s}

	mux.HandleFunc("GET /api/v1/products", h.List)
	mux.HandleFunc("GET /api/v1/products/{productId}", h.Get)
	mux.Handle("POST /api/v1/products", api.RequireRole(api.RoleEditor, http.HandlerFunc(h.Create)))
	mux.Handle("PATCH /api/v1/products/{productId}", api.RequireRole(api.RoleEditor, http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/v1/products/{productId}", api.RequireRole(api.RoleAdmin, http.HandlerFunc(h.Delete)))
}
