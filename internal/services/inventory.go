package services

import (
	"trip-planner/internal/models"
)

// InventoryRepository interface for inventory item data operations
type InventoryRepository interface {
	ListByEvent(eventID string) ([]*models.InventoryItem, error)
	Create(eventID string, req *models.InventoryItemCreateRequest) (*models.InventoryItem, error)
	GetByID(id string) (*models.InventoryItem, error)
	Update(item *models.InventoryItem) (*models.InventoryItem, error)
	Delete(id string) error
}

// InventoryService handles inventory item business logic
type InventoryService struct {
	inventoryRepo InventoryRepository
	audit         *AuditService
}

// NewInventoryService creates a new inventory service
func NewInventoryService(inventoryRepo InventoryRepository, audit *AuditService) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		audit:         audit,
	}
}

// ListByEvent retrieves all inventory items for an event
func (s *InventoryService) ListByEvent(eventID string) ([]*models.InventoryItem, error) {
	return s.inventoryRepo.ListByEvent(eventID)
}

// Create adds an inventory item to an event
func (s *InventoryService) Create(eventID string, req *models.InventoryItemCreateRequest) (*models.InventoryItem, error) {
	item, err := s.inventoryRepo.Create(eventID, req)
	if err != nil {
		return nil, err
	}

	s.audit.LogChange(eventID, models.AuditActionInsert, models.AuditTableInventoryItems, item.ID, nil, map[string]interface{}{
		"name":     item.Name,
		"quantity": item.Quantity,
	})

	return item, nil
}

// Update applies a partial update to an inventory item
func (s *InventoryService) Update(id string, req *models.InventoryItemUpdateRequest) (*models.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	oldValues := map[string]interface{}{
		"name":        item.Name,
		"quantity":    item.Quantity,
		"assigned_to": item.AssignedTo,
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.AssignedTo != nil {
		if *req.AssignedTo == "" {
			item.AssignedTo = nil
		} else {
			item.AssignedTo = req.AssignedTo
		}
	}
	if req.Notes != nil {
		item.Notes = req.Notes
	}

	updated, err := s.inventoryRepo.Update(item)
	if err != nil {
		return nil, err
	}

	s.audit.LogChange(updated.EventID, models.AuditActionUpdate, models.AuditTableInventoryItems, updated.ID, oldValues, map[string]interface{}{
		"name":        updated.Name,
		"quantity":    updated.Quantity,
		"assigned_to": updated.AssignedTo,
	})

	return updated, nil
}

// Delete removes an inventory item
func (s *InventoryService) Delete(id string) error {
	item, err := s.inventoryRepo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.inventoryRepo.Delete(id); err != nil {
		return err
	}

	s.audit.LogChange(item.EventID, models.AuditActionDelete, models.AuditTableInventoryItems, item.ID, map[string]interface{}{
		"name": item.Name,
	}, nil)

	return nil
}
