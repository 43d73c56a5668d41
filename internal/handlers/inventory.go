package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"trip-planner/internal/models"
	"trip-planner/internal/services"
)

// InventoryHandler serves the packing list sub-resource of an event.
type InventoryHandler struct {
	inventoryService *services.InventoryService
	accessService    *services.AccessService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *services.InventoryService, accessService *services.AccessService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		accessService:    accessService,
	}
}

// List handles GET /api/events/{token}/inventory. Items assigned to a
// participant carry the participant's name for display.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	event, err := h.accessService.ResolveToken(chi.URLParam(r, "token"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	items, err := h.inventoryService.ListByEvent(event.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// Create handles POST /api/events/{token}/inventory.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	event, err := h.accessService.ResolveToken(chi.URLParam(r, "token"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var req models.InventoryItemCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.inventoryService.Create(event.ID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/events/{token}/inventory/{id}.
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, err := h.accessService.ResolveToken(chi.URLParam(r, "token")); err != nil {
		respondServiceError(w, err)
		return
	}

	var req models.InventoryItemUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.inventoryService.Update(chi.URLParam(r, "id"), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/events/{token}/inventory/{id}.
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.accessService.ResolveToken(chi.URLParam(r, "token")); err != nil {
		respondServiceError(w, err)
		return
	}

	if err := h.inventoryService.Delete(chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "item deleted"})
}
