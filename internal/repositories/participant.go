package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"trip-planner/internal/models"
)

// ParticipantRepository handles participant data operations
type ParticipantRepository struct {
	db *sql.DB
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(db *sql.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

const participantColumns = `id, event_id, name, phone, staying_full_time, notes, created_at, updated_at`

func scanParticipant(row interface{ Scan(...interface{}) error }) (*models.Participant, error) {
	p := &models.Participant{}
	err := row.Scan(
		&p.ID,
		&p.EventID,
		&p.Name,
		&p.Phone,
		&p.StayingFullTime,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListByEvent retrieves all participants for an event, oldest first
func (r *ParticipantRepository) ListByEvent(eventID string) ([]*models.Participant, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM participants
		WHERE event_id = $1
		ORDER BY created_at ASC`, participantColumns)

	rows, err := r.db.Query(query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participants: %w", err)
	}

	return participants, nil
}

// Create adds a participant to an event
func (r *ParticipantRepository) Create(eventID string, req *models.ParticipantCreateRequest) (*models.Participant, error) {
	query := fmt.Sprintf(`
		INSERT INTO participants (event_id, name, phone, staying_full_time, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`, participantColumns)

	p, err := scanParticipant(r.db.QueryRow(query, eventID, req.Name, req.Phone, req.StayingFullTime, req.Notes))
	if err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}

	return p, nil
}

// GetByID retrieves a participant by id
func (r *ParticipantRepository) GetByID(id string) (*models.Participant, error) {
	query := fmt.Sprintf("SELECT %s FROM participants WHERE id = $1", participantColumns)

	p, err := scanParticipant(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	return p, nil
}

// Update persists the updatable fields of a participant
func (r *ParticipantRepository) Update(p *models.Participant) (*models.Participant, error) {
	query := fmt.Sprintf(`
		UPDATE participants
		SET name = $2, phone = $3, staying_full_time = $4, notes = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING %s`, participantColumns)

	updated, err := scanParticipant(r.db.QueryRow(query, p.ID, p.Name, p.Phone, p.StayingFullTime, p.Notes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to update participant: %w", err)
	}

	return updated, nil
}

// Delete removes a participant. Transport assignments are removed by the
// foreign key cascade.
func (r *ParticipantRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM participants WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return models.ErrParticipantNotFound
	}

	return nil
}
