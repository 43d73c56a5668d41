package services

import (
	"trip-planner/internal/models"

	"github.com/shopspring/decimal"
)

// TransportRepository interface for transport and assignment data operations
type TransportRepository interface {
	ListByEvent(eventID string) ([]*models.Transport, error)
	Create(eventID string, req *models.TransportCreateRequest) (*models.Transport, error)
	GetByID(id string) (*models.Transport, error)
	Update(t *models.Transport) (*models.Transport, error)
	Delete(id string) error
	ListAssignments(transportID string) ([]*models.TransportAssignment, error)
	CreateAssignment(transportID, participantID string) (*models.TransportAssignment, error)
	DeleteAssignment(transportID, participantID string) error
}

// TransportService maintains transport legs and the participant-to-leg
// assignment relation, and derives capacity and cost-split figures.
type TransportService struct {
	transportRepo TransportRepository
	audit         *AuditService
}

// NewTransportService creates a new transport service
func NewTransportService(transportRepo TransportRepository, audit *AuditService) *TransportService {
	return &TransportService{
		transportRepo: transportRepo,
		audit:         audit,
	}
}

// ComputeDerived fills in the derived figures for one transport leg:
//
//   - AssignedCount: number of assignment rows.
//   - IsFull: count has reached capacity. Capacity 0 means "not tracked",
//     never "no seats", so such a leg is never full.
//   - PricePerPerson: leg price split across the assigned participants,
//     rounded UP so the sum collected never falls short of the total. With
//     no one assigned it shows the full price as if one person paid.
//
// Nothing here is stored; the figures are recomputed on every read.
func ComputeDerived(t *models.Transport) {
	t.AssignedCount = len(t.AssignedParticipantIDs)
	t.IsFull = t.Capacity > 0 && t.AssignedCount >= t.Capacity
	t.PricePerPerson = LegPricePerPerson(t.Price, t.AssignedCount)
}

// LegPricePerPerson is the transport-leg cost split: ceil(price / max(n, 1)).
func LegPricePerPerson(price decimal.Decimal, assignedCount int) decimal.Decimal {
	divisor := assignedCount
	if divisor < 1 {
		divisor = 1
	}
	return price.Div(decimal.NewFromInt(int64(divisor))).Ceil()
}

// EventPricePerPerson is the whole-trip cost split shown on the event
// summary: round(price / max(n, 1)), nearest unit. This deliberately uses a
// different rounding rule and a different divisor (participants, not
// assignments) from LegPricePerPerson; the two must not be unified.
func EventPricePerPerson(price decimal.Decimal, participantCount int) decimal.Decimal {
	divisor := participantCount
	if divisor < 1 {
		divisor = 1
	}
	return price.Div(decimal.NewFromInt(int64(divisor))).Round(0)
}

// ListByEvent retrieves all transport legs for an event with derived
// figures attached.
func (s *TransportService) ListByEvent(eventID string) ([]*models.Transport, error) {
	legs, err := s.transportRepo.ListByEvent(eventID)
	if err != nil {
		return nil, err
	}
	for _, t := range legs {
		ComputeDerived(t)
	}
	return legs, nil
}

// Create adds a transport leg to an event
func (s *TransportService) Create(eventID string, req *models.TransportCreateRequest) (*models.Transport, error) {
	t, err := s.transportRepo.Create(eventID, req)
	if err != nil {
		return nil, err
	}
	ComputeDerived(t)

	s.audit.LogChange(eventID, models.AuditActionInsert, models.AuditTableTransport, t.ID, nil, map[string]interface{}{
		"type":     t.Type,
		"capacity": t.Capacity,
		"price":    t.Price,
	})

	return t, nil
}

// Update applies a partial update to a transport leg
func (s *TransportService) Update(id string, req *models.TransportUpdateRequest) (*models.Transport, error) {
	t, err := s.transportRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	oldValues := map[string]interface{}{
		"type":     t.Type,
		"capacity": t.Capacity,
		"price":    t.Price,
	}

	if req.Type != nil {
		t.Type = *req.Type
	}
	if req.DepartureLocation != nil {
		t.DepartureLocation = req.DepartureLocation
	}
	if req.DepartureTime != nil {
		t.DepartureTime = req.DepartureTime
	}
	if req.ArrivalLocation != nil {
		t.ArrivalLocation = req.ArrivalLocation
	}
	if req.IntermediateStops != nil {
		t.IntermediateStops = req.IntermediateStops
	}
	if req.Capacity != nil {
		t.Capacity = *req.Capacity
	}
	if req.Price != nil {
		t.Price = *req.Price
	}
	if req.Notes != nil {
		t.Notes = req.Notes
	}

	updated, err := s.transportRepo.Update(t)
	if err != nil {
		return nil, err
	}
	updated.AssignedParticipantIDs = t.AssignedParticipantIDs
	ComputeDerived(updated)

	s.audit.LogChange(updated.EventID, models.AuditActionUpdate, models.AuditTableTransport, updated.ID, oldValues, map[string]interface{}{
		"type":     updated.Type,
		"capacity": updated.Capacity,
		"price":    updated.Price,
	})

	return updated, nil
}

// Delete removes a transport leg
func (s *TransportService) Delete(id string) error {
	t, err := s.transportRepo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.transportRepo.Delete(id); err != nil {
		return err
	}

	s.audit.LogChange(t.EventID, models.AuditActionDelete, models.AuditTableTransport, t.ID, map[string]interface{}{
		"type": t.Type,
	}, nil)

	return nil
}

// Assign links a participant to a transport leg. The pre-check gives a
// fast ErrAlreadyAssigned; under a race the storage uniqueness constraint
// produces the same error, so either order of two concurrent requests
// converges on one outcome. Capacity is advisory and never blocks an
// assignment.
func (s *TransportService) Assign(transportID, participantID string) (*models.TransportAssignment, error) {
	t, err := s.transportRepo.GetByID(transportID)
	if err != nil {
		return nil, err
	}

	for _, assigned := range t.AssignedParticipantIDs {
		if assigned == participantID {
			return nil, models.ErrAlreadyAssigned
		}
	}

	assignment, err := s.transportRepo.CreateAssignment(transportID, participantID)
	if err != nil {
		return nil, err
	}

	s.audit.LogChange(t.EventID, models.AuditActionInsert, models.AuditTableTransportAssignments, assignment.ID, nil, map[string]interface{}{
		"transport_id":   transportID,
		"participant_id": participantID,
	})

	return assignment, nil
}

// Unassign removes a participant from a transport leg
func (s *TransportService) Unassign(transportID, participantID string) error {
	t, err := s.transportRepo.GetByID(transportID)
	if err != nil {
		return err
	}

	if err := s.transportRepo.DeleteAssignment(transportID, participantID); err != nil {
		return err
	}

	s.audit.LogChange(t.EventID, models.AuditActionDelete, models.AuditTableTransportAssignments, "", map[string]interface{}{
		"transport_id":   transportID,
		"participant_id": participantID,
	}, nil)

	return nil
}
