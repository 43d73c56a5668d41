package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"trip-planner/internal/models"
	"trip-planner/internal/services"
)

// TransportHandler serves the transport legs of an event, including seat
// assignments.
type TransportHandler struct {
	transportService *services.TransportService
	accessService    *services.AccessService
}

// NewTransportHandler creates a new transport handler
func NewTransportHandler(transportService *services.TransportService, accessService *services.AccessService) *TransportHandler {
	return &TransportHandler{
		transportService: transportService,
		accessService:    accessService,
	}
}

// List handles GET /api/events/{token}/transport. Every leg carries its
// derived occupancy and per-seat price fields.
func (h *TransportHandler) List(w http.ResponseWriter, r *http.Request) {
	event, err := h.accessService.ResolveToken(chi.URLParam(r, "token"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	legs, err := h.transportService.ListByEvent(event.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, legs)
}

// Create handles POST /api/events/{token}/transport.
func (h *TransportHandler) Create(w http.ResponseWriter, r *http.Request) {
	event, err := h.accessService.ResolveToken(chi.URLParam(r, "token"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var req models.TransportCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	leg, err := h.transportService.Create(event.ID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, leg)
}

// Update handles PUT /api/events/{token}/transport/{id}.
func (h *TransportHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, err := h.accessService.ResolveToken(chi.URLParam(r, "token")); err != nil {
		respondServiceError(w, err)
		return
	}

	var req models.TransportUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	leg, err := h.transportService.Update(chi.URLParam(r, "id"), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, leg)
}

// Delete handles DELETE /api/events/{token}/transport/{id}.
func (h *TransportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.accessService.ResolveToken(chi.URLParam(r, "token")); err != nil {
		respondServiceError(w, err)
		return
	}

	if err := h.transportService.Delete(chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "transport deleted"})
}

type assignmentRequest struct {
	TransportID   string `json:"transport_id"`
	ParticipantID string `json:"participant_id"`
}

func (req *assignmentRequest) validate() error {
	if req.TransportID == "" || req.ParticipantID == "" {
		return models.ErrInvalidInput
	}
	return nil
}

// Assign handles POST /api/events/{token}/transport/assign. Assigning the
// same participant twice is reported as a conflict, never a duplicate row.
func (h *TransportHandler) Assign(w http.ResponseWriter, r *http.Request) {
	if _, err := h.accessService.ResolveToken(chi.URLParam(r, "token")); err != nil {
		respondServiceError(w, err)
		return
	}

	var req assignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, http.StatusBadRequest, "transport_id and participant_id are required")
		return
	}

	assignment, err := h.transportService.Assign(req.TransportID, req.ParticipantID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, assignment)
}

// Unassign handles DELETE /api/events/{token}/transport/assign.
func (h *TransportHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	if _, err := h.accessService.ResolveToken(chi.URLParam(r, "token")); err != nil {
		respondServiceError(w, err)
		return
	}

	var req assignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, http.StatusBadRequest, "transport_id and participant_id are required")
		return
	}

	if err := h.transportService.Unassign(req.TransportID, req.ParticipantID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "assignment removed"})
}
