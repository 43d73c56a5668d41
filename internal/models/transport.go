package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransportStop is one intermediate stop on a transport leg. Stops are
// stored as an ordered JSON sequence on the transport row.
type TransportStop struct {
	Location string  `json:"location"`
	Time     *string `json:"time"`
	Notes    *string `json:"notes"`
}

// Transport is one leg (bus, carpool, ...) participants attach to via
// assignments. Capacity is advisory: assignments beyond it are allowed.
type Transport struct {
	ID                string          `json:"id" db:"id"`
	EventID           string          `json:"event_id" db:"event_id"`
	Type              string          `json:"type" db:"type"`
	DepartureLocation *string         `json:"departure_location" db:"departure_location"`
	DepartureTime     *time.Time      `json:"departure_time" db:"departure_time"`
	ArrivalLocation   *string         `json:"arrival_location" db:"arrival_location"`
	IntermediateStops []TransportStop `json:"intermediate_stops" db:"intermediate_stops"`
	Capacity          int             `json:"capacity" db:"capacity"`
	Price             decimal.Decimal `json:"price" db:"price"`
	Notes             *string         `json:"notes" db:"notes"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`

	// IDs of participants currently assigned to this leg, loaded with
	// the transport row.
	AssignedParticipantIDs []string `json:"assigned_participant_ids"`

	// Derived figures, recomputed on every read.
	AssignedCount  int             `json:"assigned_count"`
	IsFull         bool            `json:"is_full"`
	PricePerPerson decimal.Decimal `json:"price_per_person"`
}

// TransportAssignment links one participant to one transport leg. A given
// (transport_id, participant_id) pair exists at most once.
type TransportAssignment struct {
	ID            string    `json:"id" db:"id"`
	TransportID   string    `json:"transport_id" db:"transport_id"`
	ParticipantID string    `json:"participant_id" db:"participant_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// TransportCreateRequest represents the data needed to add a transport leg
type TransportCreateRequest struct {
	Type              string          `json:"type"`
	DepartureLocation *string         `json:"departure_location"`
	DepartureTime     *time.Time      `json:"departure_time"`
	ArrivalLocation   *string         `json:"arrival_location"`
	IntermediateStops []TransportStop `json:"intermediate_stops"`
	Capacity          int             `json:"capacity"`
	Price             decimal.Decimal `json:"price"`
	Notes             *string         `json:"notes"`
}

// TransportUpdateRequest represents the fields that can be updated
type TransportUpdateRequest struct {
	Type              *string          `json:"type"`
	DepartureLocation *string          `json:"departure_location"`
	DepartureTime     *time.Time       `json:"departure_time"`
	ArrivalLocation   *string          `json:"arrival_location"`
	IntermediateStops []TransportStop  `json:"intermediate_stops"`
	Capacity          *int             `json:"capacity"`
	Price             *decimal.Decimal `json:"price"`
	Notes             *string          `json:"notes"`
}

func (req *TransportCreateRequest) Validate() error {
	if strings.TrimSpace(req.Type) == "" {
		return errors.New("type is required")
	}
	if req.Capacity < 0 {
		return errors.New("capacity cannot be negative")
	}
	if req.Price.IsNegative() {
		return errors.New("price cannot be negative")
	}
	return nil
}

func (req *TransportUpdateRequest) Validate() error {
	if req.Type != nil && strings.TrimSpace(*req.Type) == "" {
		return errors.New("type cannot be empty")
	}
	if req.Capacity != nil && *req.Capacity < 0 {
		return errors.New("capacity cannot be negative")
	}
	if req.Price != nil && req.Price.IsNegative() {
		return errors.New("price cannot be negative")
	}
	return nil
}
