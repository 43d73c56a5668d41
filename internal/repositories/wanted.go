package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"trip-planner/internal/models"
)

// WantedRepository handles wanted item data operations
type WantedRepository struct {
	db *sql.DB
}

// NewWantedRepository creates a new wanted item repository
func NewWantedRepository(db *sql.DB) *WantedRepository {
	return &WantedRepository{db: db}
}

const wantedColumns = `id, event_id, name, note, created_at, updated_at`

func scanWantedItem(row interface{ Scan(...interface{}) error }) (*models.WantedItem, error) {
	item := &models.WantedItem{}
	err := row.Scan(
		&item.ID,
		&item.EventID,
		&item.Name,
		&item.Note,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListByEvent retrieves all wanted items for an event, oldest first
func (r *WantedRepository) ListByEvent(eventID string) ([]*models.WantedItem, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM wanted_items
		WHERE event_id = $1
		ORDER BY created_at ASC`, wantedColumns)

	rows, err := r.db.Query(query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wanted items: %w", err)
	}
	defer rows.Close()

	var items []*models.WantedItem
	for rows.Next() {
		item, err := scanWantedItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wanted item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wanted items: %w", err)
	}

	return items, nil
}

// Create adds a wanted item to an event
func (r *WantedRepository) Create(eventID string, req *models.WantedItemCreateRequest) (*models.WantedItem, error) {
	query := fmt.Sprintf(`
		INSERT INTO wanted_items (event_id, name, note)
		VALUES ($1, $2, $3)
		RETURNING %s`, wantedColumns)

	item, err := scanWantedItem(r.db.QueryRow(query, eventID, req.Name, req.Note))
	if err != nil {
		return nil, fmt.Errorf("failed to create wanted item: %w", err)
	}

	return item, nil
}

// GetByID retrieves a wanted item by id
func (r *WantedRepository) GetByID(id string) (*models.WantedItem, error) {
	query := fmt.Sprintf("SELECT %s FROM wanted_items WHERE id = $1", wantedColumns)

	item, err := scanWantedItem(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get wanted item: %w", err)
	}

	return item, nil
}

// Update persists the updatable fields of a wanted item
func (r *WantedRepository) Update(item *models.WantedItem) (*models.WantedItem, error) {
	query := fmt.Sprintf(`
		UPDATE wanted_items
		SET name = $2, note = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING %s`, wantedColumns)

	updated, err := scanWantedItem(r.db.QueryRow(query, item.ID, item.Name, item.Note))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to update wanted item: %w", err)
	}

	return updated, nil
}

// Delete removes a wanted item
func (r *WantedRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM wanted_items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete wanted item: %w", err)
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
