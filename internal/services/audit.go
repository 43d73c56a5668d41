package services

import (
	"encoding/json"
	"log"

	"trip-planner/internal/models"
)

// AuditLogRepository interface for audit log data operations
type AuditLogRepository interface {
	Create(req *models.AuditLogCreateRequest) (*models.AuditLog, error)
	ListByEvent(eventID string) ([]*models.AuditLog, error)
}

// AuditService handles the append-only change history of an event
type AuditService struct {
	auditRepo AuditLogRepository
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo AuditLogRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// LogChange appends an audit entry for a mutation. Audit failures never fail
// the mutation itself; they are logged and swallowed.
func (s *AuditService) LogChange(eventID, action, tableName, recordID string, oldValues, newValues interface{}) {
	req := &models.AuditLogCreateRequest{
		EventID:   eventID,
		Action:    action,
		TableName: tableName,
	}
	if recordID != "" {
		req.RecordID = &recordID
	}

	if oldValues != nil {
		raw, err := json.Marshal(oldValues)
		if err != nil {
			log.Printf("audit: failed to encode old values: %v", err)
			return
		}
		req.OldValues = raw
	}
	if newValues != nil {
		raw, err := json.Marshal(newValues)
		if err != nil {
			log.Printf("audit: failed to encode new values: %v", err)
			return
		}
		req.NewValues = raw
	}

	if _, err := s.auditRepo.Create(req); err != nil {
		log.Printf("audit: failed to record change: %v", err)
	}
}

// ListByEvent retrieves the audit history for an event, newest first
func (s *AuditService) ListByEvent(eventID string) ([]*models.AuditLog, error) {
	return s.auditRepo.ListByEvent(eventID)
}
