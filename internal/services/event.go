package services

import (
	"fmt"

	"trip-planner/internal/models"
	"trip-planner/internal/utils"
)

// EventRepository interface for event data operations
type EventRepository interface {
	Create(req *models.EventCreateRequest, accessToken string) (*models.Event, error)
	GetByToken(token string) (*models.Event, error)
	GetByID(id string) (*models.Event, error)
	Update(event *models.Event) (*models.Event, error)
	CountParticipants(eventID string) (int, error)
}

// EventService handles event-level business logic
type EventService struct {
	eventRepo EventRepository
	audit     *AuditService
}

// NewEventService creates a new event service
func NewEventService(eventRepo EventRepository, audit *AuditService) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		audit:     audit,
	}
}

// Create creates a new event. The access token is generated here and is
// immutable afterwards: link events get a UUID token, PIN events get a
// 20-character share hash plus a generated 4-digit PIN when the request
// does not carry one.
func (s *EventService) Create(req *models.EventCreateRequest) (*models.Event, error) {
	if req.AccessType == "" {
		req.AccessType = models.AccessPin
	}
	var accessToken string
	if req.AccessType == models.AccessLink {
		accessToken = utils.GenerateAccessUUID()
		req.PinCode = nil
	} else {
		hash, err := utils.GenerateAccessHash()
		if err != nil {
			return nil, fmt.Errorf("failed to generate access token: %w", err)
		}
		accessToken = hash

		if req.PinCode == nil || *req.PinCode == "" {
			pin, err := utils.GeneratePinCode()
			if err != nil {
				return nil, fmt.Errorf("failed to generate pin: %w", err)
			}
			req.PinCode = &pin
		}
	}

	event, err := s.eventRepo.Create(req, accessToken)
	if err != nil {
		return nil, err
	}

	s.audit.LogChange(event.ID, models.AuditActionCreate, models.AuditTableEvents, event.ID, nil, map[string]interface{}{
		"name":       event.Name,
		"start_date": event.StartDate,
		"end_date":   event.EndDate,
	})

	return event, nil
}

// Get resolves an event by access token and attaches the per-event price
// split (event price divided evenly across participants, rounded to the
// nearest unit; a different rule from the per-leg transport figure).
func (s *EventService) Get(token string) (*models.Event, error) {
	event, err := s.eventRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// PricePerPerson returns the event-level cost split for display on the
// summary view.
func (s *EventService) PricePerPerson(event *models.Event) (string, error) {
	count, err := s.eventRepo.CountParticipants(event.ID)
	if err != nil {
		return "", err
	}
	return EventPricePerPerson(event.Price, count).String(), nil
}

// Update applies a partial update to an event and records old/new snapshots
// of the changed fields.
func (s *EventService) Update(token string, req *models.EventUpdateRequest) (*models.Event, error) {
	event, err := s.eventRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}

	oldValues := make(map[string]interface{})
	newValues := make(map[string]interface{})

	if req.Name != nil && *req.Name != event.Name {
		oldValues["name"] = event.Name
		newValues["name"] = *req.Name
		event.Name = *req.Name
	}
	if req.Description != nil {
		oldValues["description"] = event.Description
		newValues["description"] = *req.Description
		event.Description = req.Description
	}
	if req.StartDate != nil {
		oldValues["start_date"] = event.StartDate
		newValues["start_date"] = *req.StartDate
		event.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		oldValues["end_date"] = event.EndDate
		newValues["end_date"] = *req.EndDate
		event.EndDate = *req.EndDate
	}
	if req.MaxParticipants != nil {
		oldValues["max_participants"] = event.MaxParticipants
		newValues["max_participants"] = *req.MaxParticipants
		event.MaxParticipants = *req.MaxParticipants
	}
	if req.Price != nil {
		oldValues["price"] = event.Price
		newValues["price"] = *req.Price
		event.Price = *req.Price
	}
	if req.PinCode != nil {
		oldValues["pin_code"] = event.PinCode
		newValues["pin_code"] = *req.PinCode
		if *req.PinCode == "" {
			event.PinCode = nil
		} else {
			event.PinCode = req.PinCode
		}
	}
	if req.MapLink != nil {
		oldValues["map_link"] = event.MapLink
		newValues["map_link"] = *req.MapLink
		event.MapLink = req.MapLink
	}
	if req.BookingLink != nil {
		oldValues["booking_link"] = event.BookingLink
		newValues["booking_link"] = *req.BookingLink
		event.BookingLink = req.BookingLink
	}
	if req.ImageURL != nil {
		oldValues["image_url"] = event.ImageURL
		newValues["image_url"] = *req.ImageURL
		event.ImageURL = req.ImageURL
	}
	if req.PaymentStatus != nil {
		oldValues["payment_status"] = event.PaymentStatus
		newValues["payment_status"] = *req.PaymentStatus
		event.PaymentStatus = *req.PaymentStatus
	}

	updated, err := s.eventRepo.Update(event)
	if err != nil {
		return nil, err
	}

	if len(newValues) > 0 {
		s.audit.LogChange(updated.ID, models.AuditActionUpdate, models.AuditTableEvents, updated.ID, oldValues, newValues)
	}

	return updated, nil
}
