package productions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/stagedoor/greenroom/internal/api"
	"github.com/stagedoor/greenroom/internal/domain"
	"github.com/stagedoor/greenroom/internal/store"
)

// Handler handles production HTTP requests.
type Handler struct {
	store *store.Store
}

// List handles GET /api/v1/productions.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	after := r.URL.Query().Get("after")
	season := r.URL.Query().Get("season")
	archived := r.URL.Query().Get("archived") == "true"

	productions, hasMore, nextAfter, err := h.store.Productions.List(r.Context(), limit, after, season, archived)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, &api.Error{Status: "error", Message: err.Error(), CorrelationID: corrID, Category: "INTERNAL_ERROR"})
		return
	}

	api.WriteJSON(w, http.StatusOK, api.Collection(productions, hasMore, nextAfter))
}

// Get handles GET /api/v1/productions/{productionId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("productionId")
	corrID := api.CorrelationID(r.Context())

	p, err := h.store.Productions.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Production not found", corrID))
			return
		}
		api.WriteError(w, http.StatusInternalServerError, &api.Error{Status: "error", Message: err.Error(), CorrelationID: corrID, Category: "INTERNAL_ERROR"})
		return
	}

	api.WriteJSON(w, http.StatusOK, p)
}

// Create handles POST /api/v1/productions.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var p domain.Production
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID, nil))
		return
	}

	if p.Title == "" || p.Season == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"Production title and season are required", corrID, nil))
		return
	}

	created, err := h.store.Productions.Create(r.Context(), &p)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			api.WriteError(w, http.StatusConflict, api.NewConflictError(err.Error(), corrID))
			return
		}
		api.WriteError(w, http.StatusInternalServerError, &api.Error{Status: "error", Message: err.Error(), CorrelationID: corrID, Category: "INTERNAL_ERROR"})
		return
	}

	api.WriteJSON(w, http.StatusCreated, created)
}

// Update handles PATCH /api/v1/productions/{productionId}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("productionId")
	corrID := api.CorrelationID(r.Context())

	existing, err := h.store.Productions.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Production not found", corrID))
			return
		}
		api.WriteError(w, http.StatusInternalServerError, &api.Error{Status: "error", Message: err.Error(), CorrelationID: corrID, Category: "INTERNAL_ERROR"})
		return
	}

	var patch domain.Production
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID, nil))
		return
	}

	if patch.Title != "" {
		existing.Title = patch.Title
	}
	if patch.Season != "" {
		existing.Season = patch.Season
	}
	if patch.Venue != "" {
		existing.Venue = patch.Venue
	}
	if patch.OpensOn != "" {
		existing.OpensOn = patch.OpensOn
	}
	if patch.ClosesOn != "" {
		existing.ClosesOn = patch.ClosesOn
	}
	if patch.Synopsis != "" {
		existing.Synopsis = patch.Synopsis
	}
	existing.Archived = patch.Archived

	updated, err := h.store.Productions.Update(r.Context(), id, existing)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Production not found", corrID))
			return
		}
		if errors.Is(err, store.ErrConflict) {
			api.WriteError(w, http.StatusConflict, api.NewConflictError(err.Error(), corrID))
			return
		}
		api.WriteError(w, http.StatusInternalServerError, &api.Error{Status: "error", Message: err.Error(), CorrelationID: corrID, Category: "INTERNAL_ERROR"})
		return
	}

	api.WriteJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/v1/productions/{productionId}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("productionId")
	corrID := api.CorrelationID(r.Context())

	if err := h.store.Productions.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Production not found", corrID))
			return
		}
		api.WriteError(w, http.StatusInternalServerError, &api.Error{Status: "error", Message: err.Error(), CorrelationID: corrID, Category: "INTERNAL_ERROR"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
