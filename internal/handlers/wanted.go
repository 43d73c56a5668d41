package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"trip-planner/internal/models"
	"trip-planner/internal/services"
)

// WantedHandler serves the wishlist sub-resource of an event.
type WantedHandler struct {
	wantedService *services.WantedService
	accessService *services.AccessService
}

// NewWantedHandler creates a new wanted items handler
func NewWantedHandler(wantedService *services.WantedService, accessService *services.AccessService) *WantedHandler {
	return &WantedHandler{
		wantedService: wantedService,
		accessService: accessService,
	}
}

// List handles GET /api/events/{token}/wanted.
func (h *WantedHandler) List(w http.ResponseWriter, r *http.Request) {
	event, err := h.accessService.ResolveToken(chi.URLParam(r, "token"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	items, err := h.wantedService.ListByEvent(event.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// Create handles POST /api/events/{token}/wanted.
func (h *WantedHandler) Create(w http.ResponseWriter, r *http.Request) {
	event, err := h.accessService.ResolveToken(chi.URLParam(r, "token"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var req models.WantedItemCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.wantedService.Create(event.ID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/events/{token}/wanted/{id}.
func (h *WantedHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, err := h.accessService.ResolveToken(chi.URLParam(r, "token")); err != nil {
		respondServiceError(w, err)
		return
	}

	var req models.WantedItemUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.wantedService.Update(chi.URLParam(r, "id"), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/events/{token}/wanted/{id}.
func (h *WantedHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.accessService.ResolveToken(chi.URLParam(r, "token")); err != nil {
		respondServiceError(w, err)
		return
	}

	if err := h.wantedService.Delete(chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "item deleted"})
}
