package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-planner/internal/models"
)

// Mock EventRepository for testing
type mockEventRepository struct {
	events           map[string]*models.Event // keyed by access token
	byID             map[string]*models.Event
	participantCount int
	lookups          int
	createError      error
	updateError      error
}

func newMockEventRepository() *mockEventRepository {
	return &mockEventRepository{
		events: make(map[string]*models.Event),
		byID:   make(map[string]*models.Event),
	}
}

func (m *mockEventRepository) add(event *models.Event) {
	m.events[event.AccessToken] = event
	m.byID[event.ID] = event
}

func (m *mockEventRepository) Create(req *models.EventCreateRequest, accessToken string) (*models.Event, error) {
	if m.createError != nil {
		return nil, m.createError
	}

	event := &models.Event{
		ID:              "evt-" + accessToken[:4],
		Name:            req.Name,
		Description:     req.Description,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		MaxParticipants: req.MaxParticipants,
		Price:           req.Price,
		AccessType:      req.AccessType,
		AccessToken:     accessToken,
		PinCode:         req.PinCode,
		PaymentStatus:   req.PaymentStatus,
	}
	if event.PaymentStatus == "" {
		event.PaymentStatus = models.PaymentUnpaid
	}
	m.add(event)
	return event, nil
}

func (m *mockEventRepository) GetByToken(token string) (*models.Event, error) {
	m.lookups++
	event, exists := m.events[token]
	if !exists {
		return nil, models.ErrEventNotFound
	}
	return event, nil
}

func (m *mockEventRepository) GetByID(id string) (*models.Event, error) {
	m.lookups++
	event, exists := m.byID[id]
	if !exists {
		return nil, models.ErrEventNotFound
	}
	return event, nil
}

func (m *mockEventRepository) Update(event *models.Event) (*models.Event, error) {
	if m.updateError != nil {
		return nil, m.updateError
	}
	m.add(event)
	return event, nil
}

func (m *mockEventRepository) CountParticipants(eventID string) (int, error) {
	return m.participantCount, nil
}

func pinnedEvent(token, pin string) *models.Event {
	return &models.Event{
		ID:          "evt-1",
		Name:        "Summer Trip",
		AccessType:  models.AccessPin,
		AccessToken: token,
		PinCode:     &pin,
	}
}

func TestAccessService_ResolveToken(t *testing.T) {
	repo := newMockEventRepository()
	repo.add(pinnedEvent("aBcDeFgHiJkLmNoPqRsT", "1234"))
	service := NewAccessService(repo)

	event, err := service.ResolveToken("aBcDeFgHiJkLmNoPqRsT")
	require.NoError(t, err)
	assert.Equal(t, "Summer Trip", event.Name)

	_, err = service.ResolveToken("unknown-token")
	assert.ErrorIs(t, err, models.ErrEventNotFound)
}

func TestAccessService_ResolveToken_EmptyToken(t *testing.T) {
	repo := newMockEventRepository()
	service := NewAccessService(repo)

	_, err := service.ResolveToken("")
	assert.ErrorIs(t, err, models.ErrEventNotFound)
	assert.Equal(t, 0, repo.lookups, "empty token must not reach the store")
}

func TestAccessService_JoinByHash(t *testing.T) {
	repo := newMockEventRepository()
	repo.add(pinnedEvent("aBcDeFgHiJkLmNoPqRsT", "1234"))
	service := NewAccessService(repo)

	tests := []struct {
		name    string
		hash    string
		wantErr error
	}{
		{name: "valid hash", hash: "aBcDeFgHiJkLmNoPqRsT"},
		{name: "too short", hash: "abc", wantErr: models.ErrInvalidHash},
		{name: "too long", hash: "aBcDeFgHiJkLmNoPqRsT1", wantErr: models.ErrInvalidHash},
		{name: "empty", hash: "", wantErr: models.ErrInvalidHash},
		{name: "right length but unknown", hash: "00000000000000000000", wantErr: models.ErrEventNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := service.JoinByHash(tt.hash)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Summer Trip", event.Name)
		})
	}
}

func TestAccessService_JoinByHash_LengthCheckBeforeStore(t *testing.T) {
	repo := newMockEventRepository()
	service := NewAccessService(repo)

	_, err := service.JoinByHash("short")
	assert.ErrorIs(t, err, models.ErrInvalidHash)
	assert.Equal(t, 0, repo.lookups)
}

func TestAccessService_VerifyPIN(t *testing.T) {
	repo := newMockEventRepository()
	repo.add(pinnedEvent("aBcDeFgHiJkLmNoPqRsT", "1234"))
	service := NewAccessService(repo)

	tests := []struct {
		name    string
		token   string
		pin     string
		wantErr error
	}{
		{name: "correct pin", token: "aBcDeFgHiJkLmNoPqRsT", pin: "1234"},
		{name: "wrong pin", token: "aBcDeFgHiJkLmNoPqRsT", pin: "9999", wantErr: models.ErrPinMismatch},
		{name: "unknown token", token: "nope", pin: "1234", wantErr: models.ErrEventNotFound},
		{name: "pin too short", token: "aBcDeFgHiJkLmNoPqRsT", pin: "123", wantErr: models.ErrInvalidPin},
		{name: "pin too long", token: "aBcDeFgHiJkLmNoPqRsT", pin: "12345", wantErr: models.ErrInvalidPin},
		{name: "pin not digits", token: "aBcDeFgHiJkLmNoPqRsT", pin: "12a4", wantErr: models.ErrInvalidPin},
		{name: "empty pin", token: "aBcDeFgHiJkLmNoPqRsT", pin: "", wantErr: models.ErrInvalidPin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := service.VerifyPIN(tt.token, tt.pin)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Summer Trip", event.Name)
		})
	}
}

func TestAccessService_VerifyPIN_MalformedPinSkipsStore(t *testing.T) {
	repo := newMockEventRepository()
	repo.add(pinnedEvent("aBcDeFgHiJkLmNoPqRsT", "1234"))
	service := NewAccessService(repo)

	_, err := service.VerifyPIN("aBcDeFgHiJkLmNoPqRsT", "12ab")
	assert.ErrorIs(t, err, models.ErrInvalidPin)
	assert.Equal(t, 0, repo.lookups, "malformed pin must fail before any lookup")
}

func TestAccessService_VerifyPIN_OpenEvent(t *testing.T) {
	repo := newMockEventRepository()
	repo.add(&models.Event{
		ID:          "evt-2",
		Name:        "Open Trip",
		AccessType:  models.AccessLink,
		AccessToken: "11111111-2222-3333-4444-555555555555",
	})
	service := NewAccessService(repo)

	// An event without a PIN accepts any well-formed PIN.
	event, err := service.VerifyPIN("11111111-2222-3333-4444-555555555555", "0000")
	require.NoError(t, err)
	assert.Equal(t, "Open Trip", event.Name)
}
