package models

import (
	"errors"
	"strings"
	"time"
)

// WantedItem is a desired-but-not-yet-acquired item. The expected workflow
// is create, optionally convert to an inventory item assigned to a
// participant, then delete. The conversion is two independent calls, not a
// transaction.
type WantedItem struct {
	ID        string    `json:"id" db:"id"`
	EventID   string    `json:"event_id" db:"event_id"`
	Name      string    `json:"name" db:"name"`
	Note      *string   `json:"note" db:"note"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// WantedItemCreateRequest represents the data needed to add a wanted item
type WantedItemCreateRequest struct {
	Name string  `json:"name"`
	Note *string `json:"note"`
}

// WantedItemUpdateRequest represents the fields that can be updated
type WantedItemUpdateRequest struct {
	Name *string `json:"name"`
	Note *string `json:"note"`
}

func (req *WantedItemCreateRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

func (req *WantedItemUpdateRequest) Validate() error {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return errors.New("name cannot be empty")
	}
	return nil
}
