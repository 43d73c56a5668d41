package models

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccessType describes how editing an event is gated.
type AccessType string

const (
	// AccessLink means anyone holding the share link may edit.
	AccessLink AccessType = "link"
	// AccessPin means edits require the 4-digit PIN.
	AccessPin AccessType = "pin"
)

// PaymentStatus is a manually toggled flag on the event.
type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "paid"
	PaymentUnpaid PaymentStatus = "unpaid"
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// Event is the top-level trip record everything else belongs to.
// The access token is the public identifier used in share URLs and is
// immutable after creation.
type Event struct {
	ID              string          `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	Description     *string         `json:"description" db:"description"`
	StartDate       time.Time       `json:"start_date" db:"start_date"`
	EndDate         time.Time       `json:"end_date" db:"end_date"`
	MaxParticipants int             `json:"max_participants" db:"max_participants"`
	Price           decimal.Decimal `json:"price" db:"price"`
	AccessType      AccessType      `json:"access_type" db:"access_type"`
	AccessToken     string          `json:"access_token" db:"access_token"`
	PinCode         *string         `json:"pin_code,omitempty" db:"pin_code"`
	MapLink         *string         `json:"map_link" db:"map_link"`
	BookingLink     *string         `json:"booking_link" db:"booking_link"`
	ImageURL        *string         `json:"image_url" db:"image_url"`
	PaymentStatus   PaymentStatus   `json:"payment_status" db:"payment_status"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// HasPin reports whether edits on this event are PIN gated.
func (e *Event) HasPin() bool {
	return e.PinCode != nil && *e.PinCode != ""
}

// EventCreateRequest represents the data needed to create a new event
type EventCreateRequest struct {
	Name            string          `json:"name"`
	Description     *string         `json:"description"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	MaxParticipants int             `json:"max_participants"`
	Price           decimal.Decimal `json:"price"`
	AccessType      AccessType      `json:"access_type"`
	PinCode         *string         `json:"pin_code"`
	MapLink         *string         `json:"map_link"`
	BookingLink     *string         `json:"booking_link"`
	ImageURL        *string         `json:"image_url"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
}

// EventUpdateRequest represents the fields that can be updated on an event.
// Nil fields are left untouched. The access token is never updatable.
type EventUpdateRequest struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	StartDate       *time.Time       `json:"start_date"`
	EndDate         *time.Time       `json:"end_date"`
	MaxParticipants *int             `json:"max_participants"`
	Price           *decimal.Decimal `json:"price"`
	PinCode         *string          `json:"pin_code"`
	MapLink         *string          `json:"map_link"`
	BookingLink     *string          `json:"booking_link"`
	ImageURL        *string          `json:"image_url"`
	PaymentStatus   *PaymentStatus   `json:"payment_status"`
}

// Validate validates event creation data
func (req *EventCreateRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}
	if len(req.Name) > 255 {
		return errors.New("name must be less than 255 characters")
	}
	if req.StartDate.IsZero() {
		return errors.New("start date is required")
	}
	if req.EndDate.IsZero() {
		return errors.New("end date is required")
	}
	if req.StartDate.After(req.EndDate) {
		return errors.New("start date must be before end date")
	}
	if req.MaxParticipants < 0 {
		return errors.New("max participants cannot be negative")
	}
	if req.Price.IsNegative() {
		return errors.New("price cannot be negative")
	}
	if req.AccessType != "" && req.AccessType != AccessLink && req.AccessType != AccessPin {
		return errors.New("invalid access type")
	}
	if req.PinCode != nil && !ValidPinCode(*req.PinCode) {
		return ErrInvalidPin
	}
	if req.PaymentStatus != "" && req.PaymentStatus != PaymentPaid && req.PaymentStatus != PaymentUnpaid {
		return errors.New("invalid payment status")
	}
	return nil
}

// Validate validates event update data
func (req *EventUpdateRequest) Validate() error {
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return errors.New("name cannot be empty")
		}
		if len(*req.Name) > 255 {
			return errors.New("name must be less than 255 characters")
		}
	}
	if req.StartDate != nil && req.EndDate != nil && req.StartDate.After(*req.EndDate) {
		return errors.New("start date must be before end date")
	}
	if req.MaxParticipants != nil && *req.MaxParticipants < 0 {
		return errors.New("max participants cannot be negative")
	}
	if req.Price != nil && req.Price.IsNegative() {
		return errors.New("price cannot be negative")
	}
	if req.PinCode != nil && *req.PinCode != "" && !ValidPinCode(*req.PinCode) {
		return ErrInvalidPin
	}
	if req.PaymentStatus != nil && *req.PaymentStatus != PaymentPaid && *req.PaymentStatus != PaymentUnpaid {
		return errors.New("invalid payment status")
	}
	return nil
}

// ValidPinCode reports whether pin is a well-formed 4-digit PIN.
func ValidPinCode(pin string) bool {
	return pinPattern.MatchString(pin)
}
