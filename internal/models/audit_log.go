package models

import (
	"encoding/json"
	"time"
)

// Audit actions recorded for mutations.
const (
	AuditActionCreate = "CREATE"
	AuditActionInsert = "INSERT"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
)

// Logical table names used in audit entries.
const (
	AuditTableEvents               = "events"
	AuditTableParticipants         = "participants"
	AuditTableTransport            = "transport"
	AuditTableTransportAssignments = "transport_assignments"
	AuditTableInventoryItems       = "inventory_items"
	AuditTableWantedItems          = "wanted_items"
)

// AuditLog is an append-only record of a create/update/delete action on an
// event's data. Entries are never mutated or deleted by the application.
type AuditLog struct {
	ID        string          `json:"id" db:"id"`
	EventID   string          `json:"event_id" db:"event_id"`
	Action    string          `json:"action" db:"action"`
	TableName string          `json:"table_name" db:"table_name"`
	RecordID  *string         `json:"record_id" db:"record_id"`
	OldValues json.RawMessage `json:"old_values" db:"old_values"`
	NewValues json.RawMessage `json:"new_values" db:"new_values"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// AuditLogCreateRequest represents the data needed to append an audit entry
type AuditLogCreateRequest struct {
	EventID   string          `json:"event_id"`
	Action    string          `json:"action"`
	TableName string          `json:"table_name"`
	RecordID  *string         `json:"record_id"`
	OldValues json.RawMessage `json:"old_values"`
	NewValues json.RawMessage `json:"new_values"`
}
