package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"trip-planner/internal/models"

	"github.com/lib/pq"
)

// uniqueViolation is the Postgres error code for unique constraint failures.
const uniqueViolation = "23505"

// TransportRepository handles transport and assignment data operations
type TransportRepository struct {
	db *sql.DB
}

// NewTransportRepository creates a new transport repository
func NewTransportRepository(db *sql.DB) *TransportRepository {
	return &TransportRepository{db: db}
}

const transportColumns = `id, event_id, type, departure_location, departure_time, arrival_location,
	intermediate_stops, capacity, price, notes, created_at, updated_at`

func scanTransport(row interface{ Scan(...interface{}) error }) (*models.Transport, error) {
	t := &models.Transport{}
	var stops []byte
	err := row.Scan(
		&t.ID,
		&t.EventID,
		&t.Type,
		&t.DepartureLocation,
		&t.DepartureTime,
		&t.ArrivalLocation,
		&stops,
		&t.Capacity,
		&t.Price,
		&t.Notes,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.IntermediateStops = []models.TransportStop{}
	if len(stops) > 0 {
		if err := json.Unmarshal(stops, &t.IntermediateStops); err != nil {
			return nil, fmt.Errorf("failed to decode intermediate stops: %w", err)
		}
	}
	t.AssignedParticipantIDs = []string{}

	return t, nil
}

// ListByEvent retrieves all transport legs for an event, oldest first, with
// their assignment lists attached.
func (r *TransportRepository) ListByEvent(eventID string) ([]*models.Transport, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM transport
		WHERE event_id = $1
		ORDER BY created_at ASC`, transportColumns)

	rows, err := r.db.Query(query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transport: %w", err)
	}
	defer rows.Close()

	var legs []*models.Transport
	byID := make(map[string]*models.Transport)
	for rows.Next() {
		t, err := scanTransport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transport: %w", err)
		}
		legs = append(legs, t)
		byID[t.ID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transport: %w", err)
	}

	// Attach assignments for the whole event in one pass
	assignRows, err := r.db.Query(`
		SELECT ta.transport_id, ta.participant_id
		FROM transport_assignments ta
		JOIN transport t ON ta.transport_id = t.id
		WHERE t.event_id = $1
		ORDER BY ta.created_at ASC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transport assignments: %w", err)
	}
	defer assignRows.Close()

	for assignRows.Next() {
		var transportID, participantID string
		if err := assignRows.Scan(&transportID, &participantID); err != nil {
			return nil, fmt.Errorf("failed to scan transport assignment: %w", err)
		}
		if t, ok := byID[transportID]; ok {
			t.AssignedParticipantIDs = append(t.AssignedParticipantIDs, participantID)
		}
	}
	if err := assignRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transport assignments: %w", err)
	}

	return legs, nil
}

// Create adds a transport leg to an event
func (r *TransportRepository) Create(eventID string, req *models.TransportCreateRequest) (*models.Transport, error) {
	stops := req.IntermediateStops
	if stops == nil {
		stops = []models.TransportStop{}
	}
	stopsJSON, err := json.Marshal(stops)
	if err != nil {
		return nil, fmt.Errorf("failed to encode intermediate stops: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO transport (event_id, type, departure_location, departure_time, arrival_location,
			intermediate_stops, capacity, price, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s`, transportColumns)

	t, err := scanTransport(r.db.QueryRow(
		query,
		eventID,
		req.Type,
		req.DepartureLocation,
		req.DepartureTime,
		req.ArrivalLocation,
		stopsJSON,
		req.Capacity,
		req.Price,
		req.Notes,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}

	return t, nil
}

// GetByID retrieves a transport leg by id with its assignment list attached
func (r *TransportRepository) GetByID(id string) (*models.Transport, error) {
	query := fmt.Sprintf("SELECT %s FROM transport WHERE id = $1", transportColumns)

	t, err := scanTransport(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrTransportNotFound
		}
		return nil, fmt.Errorf("failed to get transport: %w", err)
	}

	assignments, err := r.ListAssignments(id)
	if err != nil {
		return nil, err
	}
	for _, a := range assignments {
		t.AssignedParticipantIDs = append(t.AssignedParticipantIDs, a.ParticipantID)
	}

	return t, nil
}

// Update persists the updatable fields of a transport leg
func (r *TransportRepository) Update(t *models.Transport) (*models.Transport, error) {
	stops := t.IntermediateStops
	if stops == nil {
		stops = []models.TransportStop{}
	}
	stopsJSON, err := json.Marshal(stops)
	if err != nil {
		return nil, fmt.Errorf("failed to encode intermediate stops: %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE transport
		SET type = $2, departure_location = $3, departure_time = $4, arrival_location = $5,
			intermediate_stops = $6, capacity = $7, price = $8, notes = $9, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING %s`, transportColumns)

	updated, err := scanTransport(r.db.QueryRow(
		query,
		t.ID,
		t.Type,
		t.DepartureLocation,
		t.DepartureTime,
		t.ArrivalLocation,
		stopsJSON,
		t.Capacity,
		t.Price,
		t.Notes,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrTransportNotFound
		}
		return nil, fmt.Errorf("failed to update transport: %w", err)
	}

	return updated, nil
}

// Delete removes a transport leg and, via cascade, its assignments
func (r *TransportRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM transport WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete transport: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return models.ErrTransportNotFound
	}

	return nil
}

// ListAssignments retrieves the assignment rows for a transport leg
func (r *TransportRepository) ListAssignments(transportID string) ([]*models.TransportAssignment, error) {
	rows, err := r.db.Query(`
		SELECT id, transport_id, participant_id, created_at
		FROM transport_assignments
		WHERE transport_id = $1
		ORDER BY created_at ASC`, transportID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*models.TransportAssignment
	for rows.Next() {
		a := &models.TransportAssignment{}
		if err := rows.Scan(&a.ID, &a.TransportID, &a.ParticipantID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// CreateAssignment links a participant to a transport leg. The unique
// constraint on (transport_id, participant_id) is the final arbiter under
// concurrency; a violation surfaces as ErrAlreadyAssigned, the same error
// the service pre-check produces.
func (r *TransportRepository) CreateAssignment(transportID, participantID string) (*models.TransportAssignment, error) {
	a := &models.TransportAssignment{}
	err := r.db.QueryRow(`
		INSERT INTO transport_assignments (transport_id, participant_id)
		VALUES ($1, $2)
		RETURNING id, transport_id, participant_id, created_at`,
		transportID, participantID,
	).Scan(&a.ID, &a.TransportID, &a.ParticipantID, &a.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, models.ErrAlreadyAssigned
		}
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	return a, nil
}

// DeleteAssignment unlinks a participant from a transport leg
func (r *TransportRepository) DeleteAssignment(transportID, participantID string) error {
	result, err := r.db.Exec(`
		DELETE FROM transport_assignments
		WHERE transport_id = $1 AND participant_id = $2`,
		transportID, participantID)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return models.ErrNotAssigned
	}

	return nil
}
