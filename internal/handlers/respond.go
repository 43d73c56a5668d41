package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"trip-planner/internal/models"
)

func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, map[string]string{"error": message})
}

// respondServiceError maps domain errors to HTTP status codes. Unknown
// errors are logged with detail but reported to the client generically.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrEventNotFound),
		errors.Is(err, models.ErrParticipantNotFound),
		errors.Is(err, models.ErrTransportNotFound),
		errors.Is(err, models.ErrItemNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidPin),
		errors.Is(err, models.ErrInvalidHash),
		errors.Is(err, models.ErrPinMismatch),
		errors.Is(err, models.ErrAlreadyAssigned),
		errors.Is(err, models.ErrNotAssigned),
		errors.Is(err, models.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
