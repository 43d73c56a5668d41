package services

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-planner/internal/models"
)

// Mock TransportRepository for testing
type mockTransportRepository struct {
	legs        map[string]*models.Transport
	assignments map[string][]string // transport ID -> participant IDs
	nextID      int
	assignError error
}

func newMockTransportRepository() *mockTransportRepository {
	return &mockTransportRepository{
		legs:        make(map[string]*models.Transport),
		assignments: make(map[string][]string),
		nextID:      1,
	}
}

func (m *mockTransportRepository) add(t *models.Transport) {
	if t.ID == "" {
		t.ID = fmt.Sprintf("trn-%d", m.nextID)
		m.nextID++
	}
	m.legs[t.ID] = t
}

func (m *mockTransportRepository) ListByEvent(eventID string) ([]*models.Transport, error) {
	var out []*models.Transport
	for _, t := range m.legs {
		if t.EventID == eventID {
			copied := *t
			copied.AssignedParticipantIDs = m.assignments[t.ID]
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockTransportRepository) Create(eventID string, req *models.TransportCreateRequest) (*models.Transport, error) {
	t := &models.Transport{
		EventID:           eventID,
		Type:              req.Type,
		DepartureLocation: req.DepartureLocation,
		DepartureTime:     req.DepartureTime,
		ArrivalLocation:   req.ArrivalLocation,
		IntermediateStops: req.IntermediateStops,
		Capacity:          req.Capacity,
		Price:             req.Price,
		Notes:             req.Notes,
	}
	m.add(t)
	return t, nil
}

func (m *mockTransportRepository) GetByID(id string) (*models.Transport, error) {
	t, exists := m.legs[id]
	if !exists {
		return nil, models.ErrTransportNotFound
	}
	copied := *t
	copied.AssignedParticipantIDs = m.assignments[id]
	return &copied, nil
}

func (m *mockTransportRepository) Update(t *models.Transport) (*models.Transport, error) {
	if _, exists := m.legs[t.ID]; !exists {
		return nil, models.ErrTransportNotFound
	}
	m.legs[t.ID] = t
	copied := *t
	return &copied, nil
}

func (m *mockTransportRepository) Delete(id string) error {
	if _, exists := m.legs[id]; !exists {
		return models.ErrTransportNotFound
	}
	delete(m.legs, id)
	delete(m.assignments, id)
	return nil
}

func (m *mockTransportRepository) ListAssignments(transportID string) ([]*models.TransportAssignment, error) {
	var out []*models.TransportAssignment
	for _, pid := range m.assignments[transportID] {
		out = append(out, &models.TransportAssignment{TransportID: transportID, ParticipantID: pid})
	}
	return out, nil
}

func (m *mockTransportRepository) CreateAssignment(transportID, participantID string) (*models.TransportAssignment, error) {
	if m.assignError != nil {
		return nil, m.assignError
	}
	for _, pid := range m.assignments[transportID] {
		if pid == participantID {
			return nil, models.ErrAlreadyAssigned
		}
	}
	m.assignments[transportID] = append(m.assignments[transportID], participantID)
	return &models.TransportAssignment{
		ID:            fmt.Sprintf("asg-%d", len(m.assignments[transportID])),
		TransportID:   transportID,
		ParticipantID: participantID,
	}, nil
}

func (m *mockTransportRepository) DeleteAssignment(transportID, participantID string) error {
	pids := m.assignments[transportID]
	for i, pid := range pids {
		if pid == participantID {
			m.assignments[transportID] = append(pids[:i], pids[i+1:]...)
			return nil
		}
	}
	return models.ErrNotAssigned
}

func setupTransportService() (*TransportService, *mockTransportRepository) {
	repo := newMockTransportRepository()
	return NewTransportService(repo, NewAuditService(&mockAuditLogRepository{})), repo
}

func TestLegPricePerPerson(t *testing.T) {
	tests := []struct {
		name  string
		price string
		count int
		want  string
	}{
		{name: "splits and rounds up", price: "1200", count: 5, want: "240"},
		{name: "uneven split rounds up", price: "1000", count: 3, want: "334"},
		{name: "no assignments shows full price", price: "1000", count: 0, want: "1000"},
		{name: "single assignment", price: "1000", count: 1, want: "1000"},
		{name: "fractional result rounds up", price: "1001", count: 2, want: "501"},
		{name: "zero price", price: "0", count: 4, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := decimal.NewFromString(tt.price)
			require.NoError(t, err)
			got := LegPricePerPerson(price, tt.count)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

// The leg split rounds up while the event-level split rounds to nearest;
// the same figures can give different results under the two rules.
func TestCostSplitRoundingRulesDiffer(t *testing.T) {
	price := decimal.NewFromInt(1000)

	leg := LegPricePerPerson(price, 3)
	event := EventPricePerPerson(price, 3)

	assert.Equal(t, "334", leg.String())
	assert.Equal(t, "333", event.String())
}

func TestComputeDerived(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		assigned int
		price    int64
		wantFull bool
		wantPer  string
	}{
		{name: "under capacity", capacity: 4, assigned: 2, price: 1200, wantFull: false, wantPer: "600"},
		{name: "at capacity", capacity: 4, assigned: 4, price: 1200, wantFull: true, wantPer: "300"},
		{name: "over capacity still full", capacity: 4, assigned: 5, price: 1200, wantFull: true, wantPer: "240"},
		{name: "zero capacity never full", capacity: 0, assigned: 50, price: 1200, wantFull: false, wantPer: "24"},
		{name: "empty leg", capacity: 4, assigned: 0, price: 1000, wantFull: false, wantPer: "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leg := &models.Transport{
				Capacity: tt.capacity,
				Price:    decimal.NewFromInt(tt.price),
			}
			for i := 0; i < tt.assigned; i++ {
				leg.AssignedParticipantIDs = append(leg.AssignedParticipantIDs, fmt.Sprintf("p-%d", i))
			}

			ComputeDerived(leg)

			assert.Equal(t, tt.assigned, leg.AssignedCount)
			assert.Equal(t, tt.wantFull, leg.IsFull)
			assert.Equal(t, tt.wantPer, leg.PricePerPerson.String())
		})
	}
}

func TestTransportService_Assign(t *testing.T) {
	service, repo := setupTransportService()
	repo.add(&models.Transport{ID: "trn-1", EventID: "evt-1", Type: "bus", Capacity: 2})

	assignment, err := service.Assign("trn-1", "p-1")
	require.NoError(t, err)
	assert.Equal(t, "trn-1", assignment.TransportID)
	assert.Equal(t, "p-1", assignment.ParticipantID)
}

func TestTransportService_Assign_Duplicate(t *testing.T) {
	service, repo := setupTransportService()
	repo.add(&models.Transport{ID: "trn-1", EventID: "evt-1", Type: "bus"})

	_, err := service.Assign("trn-1", "p-1")
	require.NoError(t, err)

	_, err = service.Assign("trn-1", "p-1")
	assert.ErrorIs(t, err, models.ErrAlreadyAssigned)
	assert.Equal(t, []string{"p-1"}, repo.assignments["trn-1"], "duplicate must not add a row")
}

func TestTransportService_Assign_RaceMapsToSameError(t *testing.T) {
	service, repo := setupTransportService()
	repo.add(&models.Transport{ID: "trn-1", EventID: "evt-1", Type: "bus"})

	// The pre-check passes but the store hits its uniqueness constraint,
	// as happens when two requests race. The caller sees the same error
	// either way.
	repo.assignError = models.ErrAlreadyAssigned

	_, err := service.Assign("trn-1", "p-1")
	assert.ErrorIs(t, err, models.ErrAlreadyAssigned)
}

func TestTransportService_Assign_BeyondCapacity(t *testing.T) {
	service, repo := setupTransportService()
	repo.add(&models.Transport{ID: "trn-1", EventID: "evt-1", Type: "carpool", Capacity: 1})

	_, err := service.Assign("trn-1", "p-1")
	require.NoError(t, err)

	// Capacity is advisory: the second assignment succeeds and the leg
	// reports itself full.
	_, err = service.Assign("trn-1", "p-2")
	require.NoError(t, err)

	leg, err := service.ListByEvent("evt-1")
	require.NoError(t, err)
	require.Len(t, leg, 1)
	assert.True(t, leg[0].IsFull)
	assert.Equal(t, 2, leg[0].AssignedCount)
}

func TestTransportService_Unassign(t *testing.T) {
	service, repo := setupTransportService()
	repo.add(&models.Transport{ID: "trn-1", EventID: "evt-1", Type: "bus"})

	_, err := service.Assign("trn-1", "p-1")
	require.NoError(t, err)

	require.NoError(t, service.Unassign("trn-1", "p-1"))

	err = service.Unassign("trn-1", "p-1")
	assert.ErrorIs(t, err, models.ErrNotAssigned)
}

func TestTransportService_Unassign_UnknownTransport(t *testing.T) {
	service, _ := setupTransportService()

	err := service.Unassign("missing", "p-1")
	assert.ErrorIs(t, err, models.ErrTransportNotFound)
}

func TestTransportService_ListByEvent_DerivedFields(t *testing.T) {
	service, repo := setupTransportService()
	repo.add(&models.Transport{ID: "trn-1", EventID: "evt-1", Type: "bus", Capacity: 4, Price: decimal.NewFromInt(1200)})
	repo.assignments["trn-1"] = []string{"p-1", "p-2", "p-3", "p-4", "p-5"}

	legs, err := service.ListByEvent("evt-1")
	require.NoError(t, err)
	require.Len(t, legs, 1)

	assert.Equal(t, 5, legs[0].AssignedCount)
	assert.True(t, legs[0].IsFull)
	assert.Equal(t, "240", legs[0].PricePerPerson.String())
}

func TestTransportService_Update_Partial(t *testing.T) {
	service, repo := setupTransportService()
	repo.add(&models.Transport{ID: "trn-1", EventID: "evt-1", Type: "bus", Capacity: 4, Price: decimal.NewFromInt(1200)})
	repo.assignments["trn-1"] = []string{"p-1", "p-2"}

	capacity := 2
	updated, err := service.Update("trn-1", &models.TransportUpdateRequest{Capacity: &capacity})
	require.NoError(t, err)

	assert.Equal(t, "bus", updated.Type, "untouched fields keep their values")
	assert.Equal(t, 2, updated.Capacity)
	assert.True(t, updated.IsFull, "derived fields reflect the new capacity")
}

func TestTransportService_Delete(t *testing.T) {
	service, repo := setupTransportService()
	repo.add(&models.Transport{ID: "trn-1", EventID: "evt-1", Type: "bus"})

	require.NoError(t, service.Delete("trn-1"))
	assert.ErrorIs(t, service.Delete("trn-1"), models.ErrTransportNotFound)
}
