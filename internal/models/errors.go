package models

import "errors"

// Common errors used throughout the application
var (
	ErrEventNotFound       = errors.New("event not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrTransportNotFound   = errors.New("transport not found")
	ErrItemNotFound        = errors.New("item not found")
	ErrInvalidHash         = errors.New("hash must be exactly 20 characters")
	ErrInvalidPin          = errors.New("pin must be exactly 4 digits")
	ErrPinMismatch         = errors.New("pin does not match this event")
	ErrAlreadyAssigned     = errors.New("participant already assigned to transport")
	ErrNotAssigned         = errors.New("participant not assigned to transport")
	ErrInvalidInput        = errors.New("invalid input")
)
