package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"trip-planner/internal/models"
)

// EventRepository handles event data operations
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, name, description, start_date, end_date, max_participants, price,
	access_type, access_token, pin_code, map_link, booking_link, image_url, payment_status,
	created_at, updated_at`

func scanEvent(row interface{ Scan(...interface{}) error }) (*models.Event, error) {
	event := &models.Event{}
	err := row.Scan(
		&event.ID,
		&event.Name,
		&event.Description,
		&event.StartDate,
		&event.EndDate,
		&event.MaxParticipants,
		&event.Price,
		&event.AccessType,
		&event.AccessToken,
		&event.PinCode,
		&event.MapLink,
		&event.BookingLink,
		&event.ImageURL,
		&event.PaymentStatus,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// Create creates a new event. The access token and PIN are generated by the
// service layer before reaching the repository.
func (r *EventRepository) Create(req *models.EventCreateRequest, accessToken string) (*models.Event, error) {
	query := fmt.Sprintf(`
		INSERT INTO events (name, description, start_date, end_date, max_participants, price,
			access_type, access_token, pin_code, map_link, booking_link, image_url, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING %s`, eventColumns)

	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.PaymentUnpaid
	}

	event, err := scanEvent(r.db.QueryRow(
		query,
		req.Name,
		req.Description,
		req.StartDate,
		req.EndDate,
		req.MaxParticipants,
		req.Price,
		req.AccessType,
		accessToken,
		req.PinCode,
		req.MapLink,
		req.BookingLink,
		req.ImageURL,
		paymentStatus,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// GetByToken retrieves an event by its access token (exact match).
func (r *EventRepository) GetByToken(token string) (*models.Event, error) {
	query := fmt.Sprintf("SELECT %s FROM events WHERE access_token = $1", eventColumns)

	event, err := scanEvent(r.db.QueryRow(query, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event by token: %w", err)
	}

	return event, nil
}

// GetByID retrieves an event by its id
func (r *EventRepository) GetByID(id string) (*models.Event, error) {
	query := fmt.Sprintf("SELECT %s FROM events WHERE id = $1", eventColumns)

	event, err := scanEvent(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// Update persists the updatable fields of an event. The access token and
// access type are immutable after creation and are never written here.
func (r *EventRepository) Update(event *models.Event) (*models.Event, error) {
	query := fmt.Sprintf(`
		UPDATE events
		SET name = $2, description = $3, start_date = $4, end_date = $5, max_participants = $6,
			price = $7, pin_code = $8, map_link = $9, booking_link = $10, image_url = $11,
			payment_status = $12, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING %s`, eventColumns)

	updated, err := scanEvent(r.db.QueryRow(
		query,
		event.ID,
		event.Name,
		event.Description,
		event.StartDate,
		event.EndDate,
		event.MaxParticipants,
		event.Price,
		event.PinCode,
		event.MapLink,
		event.BookingLink,
		event.ImageURL,
		event.PaymentStatus,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return updated, nil
}

// CountParticipants returns the number of participants for an event
func (r *EventRepository) CountParticipants(eventID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM participants WHERE event_id = $1", eventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count participants: %w", err)
	}
	return count, nil
}
