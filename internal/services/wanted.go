package services

import (
	"trip-planner/internal/models"
)

// WantedRepository interface for wanted item data operations
type WantedRepository interface {
	ListByEvent(eventID string) ([]*models.WantedItem, error)
	Create(eventID string, req *models.WantedItemCreateRequest) (*models.WantedItem, error)
	GetByID(id string) (*models.WantedItem, error)
	Update(item *models.WantedItem) (*models.WantedItem, error)
	Delete(id string) error
}

// WantedService handles wanted item business logic. Converting a wanted
// item into an inventory item is two independent client calls (create the
// inventory item, then delete the wanted item) and is intentionally not
// transactional.
type WantedService struct {
	wantedRepo WantedRepository
	audit      *AuditService
}

// NewWantedService creates a new wanted item service
func NewWantedService(wantedRepo WantedRepository, audit *AuditService) *WantedService {
	return &WantedService{
		wantedRepo: wantedRepo,
		audit:      audit,
	}
}

// ListByEvent retrieves all wanted items for an event
func (s *WantedService) ListByEvent(eventID string) ([]*models.WantedItem, error) {
	return s.wantedRepo.ListByEvent(eventID)
}

// Create adds a wanted item to an event
func (s *WantedService) Create(eventID string, req *models.WantedItemCreateRequest) (*models.WantedItem, error) {
	item, err := s.wantedRepo.Create(eventID, req)
	if err != nil {
		return nil, err
	}

	s.audit.LogChange(eventID, models.AuditActionInsert, models.AuditTableWantedItems, item.ID, nil, map[string]interface{}{
		"name": item.Name,
		"note": item.Note,
	})

	return item, nil
}

// Update applies a partial update to a wanted item
func (s *WantedService) Update(id string, req *models.WantedItemUpdateRequest) (*models.WantedItem, error) {
	item, err := s.wantedRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	oldValues := map[string]interface{}{
		"name": item.Name,
		"note": item.Note,
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Note != nil {
		item.Note = req.Note
	}

	updated, err := s.wantedRepo.Update(item)
	if err != nil {
		return nil, err
	}

	s.audit.LogChange(updated.EventID, models.AuditActionUpdate, models.AuditTableWantedItems, updated.ID, oldValues, map[string]interface{}{
		"name": updated.Name,
		"note": updated.Note,
	})

	return updated, nil
}

// Delete removes a wanted item
func (s *WantedService) Delete(id string) error {
	item, err := s.wantedRepo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.wantedRepo.Delete(id); err != nil {
		return err
	}

	s.audit.LogChange(item.EventID, models.AuditActionDelete, models.AuditTableWantedItems, item.ID, map[string]interface{}{
		"name": item.Name,
	}, nil)

	return nil
}
