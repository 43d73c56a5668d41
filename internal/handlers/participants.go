package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"trip-planner/internal/models"
	"trip-planner/internal/services"
)

// ParticipantHandler serves the participant sub-resource of an event.
type ParticipantHandler struct {
	participantService *services.ParticipantService
	accessService      *services.AccessService
}

// NewParticipantHandler creates a new participant handler
func NewParticipantHandler(participantService *services.ParticipantService, accessService *services.AccessService) *ParticipantHandler {
	return &ParticipantHandler{
		participantService: participantService,
		accessService:      accessService,
	}
}

// List handles GET /api/events/{token}/participants.
func (h *ParticipantHandler) List(w http.ResponseWriter, r *http.Request) {
	event, err := h.accessService.ResolveToken(chi.URLParam(r, "token"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	participants, err := h.participantService.ListByEvent(event.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, participants)
}

// Create handles POST /api/events/{token}/participants.
func (h *ParticipantHandler) Create(w http.ResponseWriter, r *http.Request) {
	event, err := h.accessService.ResolveToken(chi.URLParam(r, "token"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var req models.ParticipantCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	participant, err := h.participantService.Create(event.ID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, participant)
}

// Update handles PUT /api/events/{token}/participants/{id}.
func (h *ParticipantHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, err := h.accessService.ResolveToken(chi.URLParam(r, "token")); err != nil {
		respondServiceError(w, err)
		return
	}

	var req models.ParticipantUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	participant, err := h.participantService.Update(chi.URLParam(r, "id"), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, participant)
}

// Delete handles DELETE /api/events/{token}/participants/{id}.
func (h *ParticipantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.accessService.ResolveToken(chi.URLParam(r, "token")); err != nil {
		respondServiceError(w, err)
		return
	}

	if err := h.participantService.Delete(chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "participant deleted"})
}
