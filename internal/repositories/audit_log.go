package repositories

import (
	"database/sql"
	"fmt"

	"trip-planner/internal/models"
)

// AuditLogRepository handles audit log data operations. The table is
// append-only: the application never updates or deletes entries.
type AuditLogRepository struct {
	db *sql.DB
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *sql.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Create appends a new audit log entry
func (r *AuditLogRepository) Create(req *models.AuditLogCreateRequest) (*models.AuditLog, error) {
	query := `
		INSERT INTO audit_logs (event_id, action, table_name, record_id, old_values, new_values)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, event_id, action, table_name, record_id, old_values, new_values, created_at`

	entry := &models.AuditLog{}
	var oldValues, newValues []byte

	err := r.db.QueryRow(
		query,
		req.EventID,
		req.Action,
		req.TableName,
		req.RecordID,
		nullableJSON(req.OldValues),
		nullableJSON(req.NewValues),
	).Scan(
		&entry.ID,
		&entry.EventID,
		&entry.Action,
		&entry.TableName,
		&entry.RecordID,
		&oldValues,
		&newValues,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit log: %w", err)
	}

	entry.OldValues = oldValues
	entry.NewValues = newValues

	return entry, nil
}

// ListByEvent retrieves all audit entries for an event, newest first
func (r *AuditLogRepository) ListByEvent(eventID string) ([]*models.AuditLog, error) {
	rows, err := r.db.Query(`
		SELECT id, event_id, action, table_name, record_id, old_values, new_values, created_at
		FROM audit_logs
		WHERE event_id = $1
		ORDER BY created_at DESC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	var entries []*models.AuditLog
	for rows.Next() {
		entry := &models.AuditLog{}
		var oldValues, newValues []byte

		err := rows.Scan(
			&entry.ID,
			&entry.EventID,
			&entry.Action,
			&entry.TableName,
			&entry.RecordID,
			&oldValues,
			&newValues,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}

		entry.OldValues = oldValues
		entry.NewValues = newValues
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit logs: %w", err)
	}

	return entries, nil
}

// nullableJSON converts an empty JSON payload to a SQL NULL
func nullableJSON(raw []byte) interface{} {
	if len(raw) == 0 {
		return sql.NullString{}
	}
	return raw
}
