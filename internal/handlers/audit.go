package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"trip-planner/internal/services"
)

// AuditHandler exposes the change history of an event, newest first.
type AuditHandler struct {
	auditService  *services.AuditService
	accessService *services.AccessService
}

// NewAuditHandler creates a new audit log handler
func NewAuditHandler(auditService *services.AuditService, accessService *services.AccessService) *AuditHandler {
	return &AuditHandler{
		auditService:  auditService,
		accessService: accessService,
	}
}

// List handles GET /api/events/{token}/audit-logs.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	event, err := h.accessService.ResolveToken(chi.URLParam(r, "token"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	logs, err := h.auditService.ListByEvent(event.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, logs)
}
