package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"trip-planner/internal/models"
)

// InventoryRepository handles inventory item data operations
type InventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *sql.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

const inventoryColumns = `id, event_id, name, description, quantity, assigned_to, notes, created_at, updated_at`

func scanInventoryItem(row interface{ Scan(...interface{}) error }) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	err := row.Scan(
		&item.ID,
		&item.EventID,
		&item.Name,
		&item.Description,
		&item.Quantity,
		&item.AssignedTo,
		&item.Notes,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListByEvent retrieves all inventory items for an event, oldest first, with
// the assigned participant's name joined in.
func (r *InventoryRepository) ListByEvent(eventID string) ([]*models.InventoryItem, error) {
	rows, err := r.db.Query(`
		SELECT i.id, i.event_id, i.name, i.description, i.quantity, i.assigned_to,
			p.name AS assigned_participant_name, i.notes, i.created_at, i.updated_at
		FROM inventory_items i
		LEFT JOIN participants p ON i.assigned_to = p.id
		WHERE i.event_id = $1
		ORDER BY i.created_at ASC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory items: %w", err)
	}
	defer rows.Close()

	var items []*models.InventoryItem
	for rows.Next() {
		item := &models.InventoryItem{}
		err := rows.Scan(
			&item.ID,
			&item.EventID,
			&item.Name,
			&item.Description,
			&item.Quantity,
			&item.AssignedTo,
			&item.AssignedParticipantName,
			&item.Notes,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory items: %w", err)
	}

	return items, nil
}

// Create adds an inventory item to an event
func (r *InventoryRepository) Create(eventID string, req *models.InventoryItemCreateRequest) (*models.InventoryItem, error) {
	query := fmt.Sprintf(`
		INSERT INTO inventory_items (event_id, name, description, quantity, assigned_to, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`, inventoryColumns)

	item, err := scanInventoryItem(r.db.QueryRow(query, eventID, req.Name, req.Description, req.Quantity, req.AssignedTo, req.Notes))
	if err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	return item, nil
}

// GetByID retrieves an inventory item by id
func (r *InventoryRepository) GetByID(id string) (*models.InventoryItem, error) {
	query := fmt.Sprintf("SELECT %s FROM inventory_items WHERE id = $1", inventoryColumns)

	item, err := scanInventoryItem(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}

	return item, nil
}

// Update persists the updatable fields of an inventory item
func (r *InventoryRepository) Update(item *models.InventoryItem) (*models.InventoryItem, error) {
	query := fmt.Sprintf(`
		UPDATE inventory_items
		SET name = $2, description = $3, quantity = $4, assigned_to = $5, notes = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING %s`, inventoryColumns)

	updated, err := scanInventoryItem(r.db.QueryRow(query, item.ID, item.Name, item.Description, item.Quantity, item.AssignedTo, item.Notes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}

	return updated, nil
}

// Delete removes an inventory item
func (r *InventoryRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM inventory_items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return models.ErrItemNotFound
	}

	return nil
}
