package models

import (
	"errors"
	"strings"
	"time"
)

// Participant belongs to exactly one event. Deleting one cascades removal
// from all transport assignments.
type Participant struct {
	ID              string    `json:"id" db:"id"`
	EventID         string    `json:"event_id" db:"event_id"`
	Name            string    `json:"name" db:"name"`
	Phone           *string   `json:"phone" db:"phone"`
	StayingFullTime bool      `json:"staying_full_time" db:"staying_full_time"`
	Notes           *string   `json:"notes" db:"notes"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// ParticipantCreateRequest represents the data needed to add a participant
type ParticipantCreateRequest struct {
	Name            string  `json:"name"`
	Phone           *string `json:"phone"`
	StayingFullTime bool    `json:"staying_full_time"`
	Notes           *string `json:"notes"`
}

// ParticipantUpdateRequest represents the fields that can be updated
type ParticipantUpdateRequest struct {
	Name            *string `json:"name"`
	Phone           *string `json:"phone"`
	StayingFullTime *bool   `json:"staying_full_time"`
	Notes           *string `json:"notes"`
}

func (req *ParticipantCreateRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}
	if len(req.Name) > 255 {
		return errors.New("name must be less than 255 characters")
	}
	return nil
}

func (req *ParticipantUpdateRequest) Validate() error {
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return errors.New("name cannot be empty")
		}
		if len(*req.Name) > 255 {
			return errors.New("name must be less than 255 characters")
		}
	}
	return nil
}
