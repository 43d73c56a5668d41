package services

import (
	"trip-planner/internal/models"
)

// ParticipantRepository interface for participant data operations
type ParticipantRepository interface {
	ListByEvent(eventID string) ([]*models.Participant, error)
	Create(eventID string, req *models.ParticipantCreateRequest) (*models.Participant, error)
	GetByID(id string) (*models.Participant, error)
	Update(p *models.Participant) (*models.Participant, error)
	Delete(id string) error
}

// ParticipantService handles participant business logic
type ParticipantService struct {
	participantRepo ParticipantRepository
	audit           *AuditService
}

// NewParticipantService creates a new participant service
func NewParticipantService(participantRepo ParticipantRepository, audit *AuditService) *ParticipantService {
	return &ParticipantService{
		participantRepo: participantRepo,
		audit:           audit,
	}
}

// ListByEvent retrieves all participants for an event
func (s *ParticipantService) ListByEvent(eventID string) ([]*models.Participant, error) {
	return s.participantRepo.ListByEvent(eventID)
}

// Create adds a participant to an event
func (s *ParticipantService) Create(eventID string, req *models.ParticipantCreateRequest) (*models.Participant, error) {
	p, err := s.participantRepo.Create(eventID, req)
	if err != nil {
		return nil, err
	}

	s.audit.LogChange(eventID, models.AuditActionInsert, models.AuditTableParticipants, p.ID, nil, map[string]interface{}{
		"name":              p.Name,
		"staying_full_time": p.StayingFullTime,
	})

	return p, nil
}

// Update applies a partial update to a participant
func (s *ParticipantService) Update(id string, req *models.ParticipantUpdateRequest) (*models.Participant, error) {
	p, err := s.participantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	oldValues := map[string]interface{}{
		"name":              p.Name,
		"staying_full_time": p.StayingFullTime,
		"notes":             p.Notes,
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Phone != nil {
		p.Phone = req.Phone
	}
	if req.StayingFullTime != nil {
		p.StayingFullTime = *req.StayingFullTime
	}
	if req.Notes != nil {
		p.Notes = req.Notes
	}

	updated, err := s.participantRepo.Update(p)
	if err != nil {
		return nil, err
	}

	s.audit.LogChange(updated.EventID, models.AuditActionUpdate, models.AuditTableParticipants, updated.ID, oldValues, map[string]interface{}{
		"name":              updated.Name,
		"staying_full_time": updated.StayingFullTime,
		"notes":             updated.Notes,
	})

	return updated, nil
}

// Delete removes a participant. The storage cascade drops the participant's
// transport assignments, so subsequent transport listings carry no dangling
// references.
func (s *ParticipantService) Delete(id string) error {
	p, err := s.participantRepo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.participantRepo.Delete(id); err != nil {
		return err
	}

	s.audit.LogChange(p.EventID, models.AuditActionDelete, models.AuditTableParticipants, p.ID, map[string]interface{}{
		"name": p.Name,
	}, nil)

	return nil
}
