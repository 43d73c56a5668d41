package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"trip-planner/internal/middleware"
	"trip-planner/internal/models"
	"trip-planner/internal/services"
)

// EventHandler serves the event lifecycle and the access gate endpoints.
type EventHandler struct {
	eventService  *services.EventService
	accessService *services.AccessService
	rateLimiter   *middleware.PinRateLimiter
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *services.EventService, accessService *services.AccessService, rateLimiter *middleware.PinRateLimiter) *EventHandler {
	return &EventHandler{
		eventService:  eventService,
		accessService: accessService,
		rateLimiter:   rateLimiter,
	}
}

// eventResponse decorates an event with its display-only cost split.
type eventResponse struct {
	*models.Event
	PricePerPerson string `json:"price_per_person"`
}

func (h *EventHandler) eventWithPrice(w http.ResponseWriter, statusCode int, event *models.Event) {
	perPerson, err := h.eventService.PricePerPerson(event)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, statusCode, &eventResponse{Event: event, PricePerPerson: perPerson})
}

// Create handles POST /api/events. The response is the only place the
// generated access token and PIN are handed out together.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.EventCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.eventService.Create(&req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.eventWithPrice(w, http.StatusCreated, event)
}

// Get handles GET /api/events/{token}.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	event, err := h.accessService.ResolveToken(token)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.eventWithPrice(w, http.StatusOK, hidePin(event))
}

// Update handles PUT /api/events/{token}.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var req models.EventUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.eventService.Update(token, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.eventWithPrice(w, http.StatusOK, hidePin(event))
}

type joinRequest struct {
	Hash string `json:"hash"`
}

// Join handles POST /api/events/join: a hand-typed 20-character share hash
// is exchanged for the event's access token and name.
func (h *EventHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.accessService.JoinByHash(req.Hash)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"access_token": event.AccessToken,
		"name":         event.Name,
	})
}

type verifyPinRequest struct {
	AccessToken string `json:"access_token"`
	PinCode     string `json:"pin_code"`
}

// VerifyPin handles POST /api/events/verify-pin. Malformed input is
// rejected before an attempt is spent, so typos never eat into the budget.
// Rate limit headers are set on every response that consulted the limiter.
func (h *EventHandler) VerifyPin(w http.ResponseWriter, r *http.Request) {
	var req verifyPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AccessToken == "" {
		respondError(w, http.StatusBadRequest, "access token is required")
		return
	}
	if !models.ValidPinCode(req.PinCode) {
		respondError(w, http.StatusBadRequest, models.ErrInvalidPin.Error())
		return
	}

	result := h.rateLimiter.CheckAndConsume(middleware.ClientKey(r))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", result.ResetTime.Format(time.RFC3339))

	if !result.Allowed {
		respondError(w, http.StatusTooManyRequests, "too many attempts, please try again later")
		return
	}

	event, err := h.accessService.VerifyPIN(req.AccessToken, req.PinCode)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"access_token": event.AccessToken,
		"name":         event.Name,
	})
}

// ResetRateLimit handles POST /api/events/reset-rate-limit. There is no
// auth gate on this endpoint in the current design.
func (h *EventHandler) ResetRateLimit(w http.ResponseWriter, r *http.Request) {
	h.rateLimiter.Reset()
	respondJSON(w, http.StatusOK, map[string]string{"message": "rate limiter reset"})
}

// hidePin returns a copy of the event with the PIN cleared. Read access
// via the token must not reveal the edit PIN.
func hidePin(event *models.Event) *models.Event {
	clean := *event
	clean.PinCode = nil
	return &clean
}
