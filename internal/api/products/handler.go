package products

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/stagedoor/greenroom/internal/api"
	"github.com/stagedoor/greenroom/internal/domain"
	"github.com/stagedoor/greenroom/internal/store"
)

// Handler handles shop product HTTP requests.
type Handler struct {
	store *store.Store
}

// List handles GET /api/v1/products.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	after := r.URL.Query().Get("after")
	archived := r.URL.Query().Get("archived") == "true"

	products, hasMore, nextAfter, err := h.store.Products.List(r.Context(), limit, after, archived)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, &api.Error{Status: "error", Message: err.Error(), CorrelationID: corrID, Category: "INTERNAL_ERROR"})
		return
	}

	api.WriteJSON(w, http.StatusOK, api.Collection(products, hasMore, nextAfter))
}

// Get handles GET /api/v1/products/{productId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("productId")
	corrID := api.CorrelationID(r.Context())

	p, err := h.store.Products.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Product not found", corrID))
			return
		}
		api.WriteError(w, http.StatusInternalServerError, &api.Error{Status: "error", Message: err.Error(), CorrelationID: corrID, Category: "INTERNAL_ERROR"})
		return
	}

	api.WriteJSON(w, http.StatusOK, p)
}

// Create handles POST /api/v1/products.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID, nil))
		return
	}

	if p.Name == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"Product name is required", corrID, nil))
		return
	}
	if p.PriceCents < 0 {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"Product priceCents must not be negative", corrID, nil))
		return
	}

	created, err := h.store.Products.Create(r.Context(), &p)
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

// Update handles PATCH /api/v1/products/{productId}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("productId")
	corrID := api.CorrelationID(r.Context())

	existing, err := h.store.Products.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Product not found", corrID))
			return
		}
		api.WriteError(w, http.StatusInternalServerError, &api.Error{Status: "error", Message: err.Error(), CorrelationID: corrID, Category: "INTERNAL_ERROR"})
		return
	}

	var patch domain.Product
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID, nil))
		return
	}

	if patch.Name != "" {
		existing.Name = patch.Name
	}
	if patch.Description != "" {
		existing.Description = patch.Description
	}
	if patch.PriceCents != 0 {
		existing.PriceCents = patch.PriceCents
	}
	existing.Badge = patch.Badge
	existing.Archived = patch.Archived

	updated, err := h.store.Products.Update(r.Context(), id, existing)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Product not found", corrID))
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

// Delete handles DELETE /api/v1/products/{productId}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("productId")
	corrID := api.CorrelationID(r.Context())

	if err := h.store.Products.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Product not found", corrID))
			return
		}
		api.WriteError(w, http.StatusInternalServerError, &api.Error{Status: "error", Message: err.Error(), CorrelationID: corrID, Category: "INTERNAL_ERROR"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
