package members

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/stagedoor/greenroom/internal/api"
	"github.com/stagedoor/greenroom/internal/domain"
	"github.com/stagedoor/greenroom/internal/store"
)

// Handler handles member HTTP requests.
type Handler struct {
	store *store.Store
}

// List handles GET /api/v1/members.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	after := r.URL.Query().Get("after")
	lastName := r.URL.Query().Get("lastName")
	archived := r.URL.Query().Get("archived") == "true"

	members, hasMore, nextAfter, err := h.store.Members.List(r.Context(), limit, after, lastName, archived)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, &api.Error{Status: "error", Message: err.Error(), CorrelationID: corrID, Category: "INTERNAL_ERROR"})
		return
	}

	api.WriteJSON(w, http.StatusOK, api.Collection(members, hasMore, nextAfter))
}

// Get handles GET /api/v1/members/{memberId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("memberId")
	corrID := api.CorrelationID(r.Context())

	m, err := h.store.Members.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Member not found", corrID))
			return
		}
		api.WriteError(w, http.StatusInternalServerError, &api.Error{Status: "error", Message: err.Error(), CorrelationID: corrID, Category: "INTERNAL_ERROR"})
		return
	}

	api.WriteJSON(w, http.StatusOK, m)
}

// Create handles POST /api/v1/members.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var m domain.Member
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID, nil))
		return
	}

	if m.FirstName == "" || m.LastName == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"Member firstName and lastName are required", corrID, nil))
		return
	}

	created, err := h.store.Members.Create(r.Context(), &m)
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

// Update handles PATCH /api/v1/members/{memberId}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("memberId")
	corrID := api.CorrelationID(r.Context())

	existing, err := h.store.Members.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Member not found", corrID))
			return
		}
		api.WriteError(w, http.StatusInternalServerError, &api.Error{Status: "error", Message: err.Error(), CorrelationID: corrID, Category: "INTERNAL_ERROR"})
		return
	}

	var patch domain.Member
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID, nil))
		return
	}

	if patch.FirstName != "" {
		existing.FirstName = patch.FirstName
	}
	if patch.LastName != "" {
		existing.LastName = patch.LastName
	}
	if patch.JoinedYear != 0 {
		existing.JoinedYear = patch.JoinedYear
	}
	if patch.Bio != "" {
		existing.Bio = patch.Bio
	}
	existing.Archived = patch.Archived

	updated, err := h.store.Members.Update(r.Context(), id, existing)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Member not found", corrID))
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

// Delete handles DELETE /api/v1/members/{memberId}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("memberId")
	corrID := api.CorrelationID(r.Context())

	if err := h.store.Members.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Member not found", corrID))
			return
		}
		api.WriteError(w, http.StatusInternalServerError, &api.Error{Status: "error", Message: err.Error(), CorrelationID: corrID, Category: "INTERNAL_ERROR"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
