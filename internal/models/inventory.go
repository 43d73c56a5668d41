package models

import (
	"errors"
	"strings"
	"time"
)

// InventoryItem is a shared item already on hand for the event. It can
// optionally be assigned to a participant who brings it.
type InventoryItem struct {
	ID                      string    `json:"id" db:"id"`
	EventID                 string    `json:"event_id" db:"event_id"`
	Name                    string    `json:"name" db:"name"`
	Description             *string   `json:"description" db:"description"`
	Quantity                int       `json:"quantity" db:"quantity"`
	AssignedTo              *string   `json:"assigned_to" db:"assigned_to"`
	AssignedParticipantName *string   `json:"assigned_participant_name"`
	Notes                   *string   `json:"notes" db:"notes"`
	CreatedAt               time.Time `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time `json:"updated_at" db:"updated_at"`
}

// InventoryItemCreateRequest represents the data needed to add an item
type InventoryItemCreateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Quantity    int     `json:"quantity"`
	AssignedTo  *string `json:"assigned_to"`
	Notes       *string `json:"notes"`
}

// InventoryItemUpdateRequest represents the fields that can be updated
type InventoryItemUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Quantity    *int    `json:"quantity"`
	AssignedTo  *string `json:"assigned_to"`
	Notes       *string `json:"notes"`
}

func (req *InventoryItemCreateRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}
	if req.Quantity < 0 {
		return errors.New("quantity cannot be negative")
	}
	return nil
}

func (req *InventoryItemUpdateRequest) Validate() error {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		return errors.New("quantity cannot be negative")
	}
	return nil
}
