package awards

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/stagedoor/greenroom/internal/api"
	"github.com/stagedoor/greenroom/internal/domain"
	"github.com/stagedoor/greenroom/internal/store"
)

// Handler handles award HTTP requests.
type Handler struct {
	store *store.Store
}

// List handles GET /api/v1/awards.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	after := r.URL.Query().Get("after")
	awardType := r.URL.Query().Get("type")

	year := 0
	if v := r.URL.Query().Get("year"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			year = parsed
		}
	}

	awards, hasMore, nextAfter, err := h.store.Awards.List(r.Context(), limit, after, year, awardType)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, &api.Error{Status: "error", Message: err.Error(), CorrelationID: corrID, Category: "INTERNAL_ERROR"})
		return
	}

	api.WriteJSON(w, http.StatusOK, api.Collection(awards, hasMore, nextAfter))
}

// Get handles GET /api/v1/awards/{awardId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("awardId")
	corrID := api.CorrelationID(r.Context())

	a, err := h.store.Awards.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Award not found", corrID))
			return
		}
		api.WriteError(w, http.StatusInternalServerError, &api.Error{Status: "error", Message: err.Error(), CorrelationID: corrID, Category: "INTERNAL_ERROR"})
		return
	}

	api.WriteJSON(w, http.StatusOK, a)
}

// Create handles POST /api/v1/awards.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var a domain.Award
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID, nil))
		return
	}

	if a.Year <= 0 || a.Name == "" || a.Type == "" || a.Category == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"Award year, name, type, and category are required", corrID, nil))
		return
	}

	if a.Type != domain.AwardTypeWinner && a.Type != domain.AwardTypeNominee {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			fmt.Sprintf("Invalid award type: %s", a.Type), corrID, nil))
		return
	}

	created, err := h.store.Awards.Create(r.Context(), &a)
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

// Update handles PATCH /api/v1/awards/{awardId}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("awardId")
	corrID := api.CorrelationID(r.Context())

	existing, err := h.store.Awards.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Award not found", corrID))
			return
		}
		api.WriteError(w, http.StatusInternalServerError, &api.Error{Status: "error", Message: err.Error(), CorrelationID: corrID, Category: "INTERNAL_ERROR"})
		return
	}

	var patch domain.Award
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID, nil))
		return
	}

	if patch.Type != "" && patch.Type != domain.AwardTypeWinner && patch.Type != domain.AwardTypeNominee {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			fmt.Sprintf("Invalid award type: %s", patch.Type), corrID, nil))
		return
	}

	if patch.Year != 0 {
		existing.Year = patch.Year
	}
	if patch.Name != "" {
		existing.Name = patch.Name
	}
	if patch.Type != "" {
		existing.Type = patch.Type
	}
	if patch.Category != "" {
		existing.Category = patch.Category
	}
	if patch.Recipient != "" {
		existing.Recipient = patch.Recipient
	}

	updated, err := h.store.Awards.Update(r.Context(), id, existing)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Award not found", corrID))
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

// Delete handles DELETE /api/v1/awards/{awardId}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("awardId")
	corrID := api.CorrelationID(r.Context())

	if err := h.store.Awards.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Award not found", corrID))
			return
		}
		api.WriteError(w, http.StatusInternalServerError, &api.Error{Status: "error", Message: err.Error(), CorrelationID: corrID, Category: "INTERNAL_ERROR"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
