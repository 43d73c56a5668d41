package services

import (
	"trip-planner/internal/models"
)

// AccessHashLength is the length of the opaque 20-character share hash used
// by the join flow.
const AccessHashLength = 20

// AccessService resolves access tokens and verifies edit PINs. It issues no
// server-side sessions: every page load starts read-only and the client
// keeps the outcome of a successful PIN check for the lifetime of the view.
type AccessService struct {
	eventRepo EventRepository
}

// NewAccessService creates a new access service
func NewAccessService(eventRepo EventRepository) *AccessService {
	return &AccessService{eventRepo: eventRepo}
}

// ResolveToken looks up the event identified by an opaque access token.
// Tokens are matched exactly; malformed input simply yields
// models.ErrEventNotFound, never a validation error.
func (s *AccessService) ResolveToken(token string) (*models.Event, error) {
	if token == "" {
		return nil, models.ErrEventNotFound
	}
	return s.eventRepo.GetByToken(token)
}

// JoinByHash resolves an event from a hand-typed 20-character share hash.
// Length is the only format rule, so the UI can distinguish a typo from an
// unknown hash.
func (s *AccessService) JoinByHash(hash string) (*models.Event, error) {
	if len(hash) != AccessHashLength {
		return nil, models.ErrInvalidHash
	}
	return s.eventRepo.GetByToken(hash)
}

// VerifyPIN checks a 4-digit edit PIN against the event identified by
// token. A malformed PIN fails before the store is consulted. Events
// without a PIN are open for editing to anyone holding the token.
func (s *AccessService) VerifyPIN(token, pin string) (*models.Event, error) {
	if !models.ValidPinCode(pin) {
		return nil, models.ErrInvalidPin
	}

	event, err := s.ResolveToken(token)
	if err != nil {
		return nil, err
	}

	if event.HasPin() && *event.PinCode != pin {
		return nil, models.ErrPinMismatch
	}

	return event, nil
}
