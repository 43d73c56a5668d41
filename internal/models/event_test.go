package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidPinCode(t *testing.T) {
	tests := []struct {
		pin  string
		want bool
	}{
		{"1234", true},
		{"0000", true},
		{"9999", true},
		{"123", false},
		{"12345", false},
		{"12a4", false},
		{"12.4", false},
		{"", false},
		{" 1234", false},
	}

	for _, tt := range tests {
		t.Run(tt.pin, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidPinCode(tt.pin))
		})
	}
}

func TestEvent_HasPin(t *testing.T) {
	pin := "1234"
	empty := ""

	assert.True(t, (&Event{PinCode: &pin}).HasPin())
	assert.False(t, (&Event{PinCode: &empty}).HasPin())
	assert.False(t, (&Event{}).HasPin())
}

func TestEventCreateRequest_Validate(t *testing.T) {
	valid := func() *EventCreateRequest {
		return &EventCreateRequest{
			Name:      "Summer Trip",
			StartDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC),
			Price:     decimal.NewFromInt(1000),
		}
	}

	tests := []struct {
		name    string
		mutate  func(*EventCreateRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(r *EventCreateRequest) {}},
		{name: "missing name", mutate: func(r *EventCreateRequest) { r.Name = "  " }, wantErr: true},
		{name: "dates reversed", mutate: func(r *EventCreateRequest) {
			r.StartDate, r.EndDate = r.EndDate, r.StartDate
		}, wantErr: true},
		{name: "negative price", mutate: func(r *EventCreateRequest) { r.Price = decimal.NewFromInt(-1) }, wantErr: true},
		{name: "negative max participants", mutate: func(r *EventCreateRequest) { r.MaxParticipants = -1 }, wantErr: true},
		{name: "bad access type", mutate: func(r *EventCreateRequest) { r.AccessType = "open" }, wantErr: true},
		{name: "link access type", mutate: func(r *EventCreateRequest) { r.AccessType = AccessLink }},
		{name: "bad pin", mutate: func(r *EventCreateRequest) {
			pin := "12345"
			r.PinCode = &pin
		}, wantErr: true},
		{name: "bad payment status", mutate: func(r *EventCreateRequest) { r.PaymentStatus = "pending" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEventUpdateRequest_Validate(t *testing.T) {
	goodPin := "1234"
	badPin := "abc"
	emptyPin := ""
	emptyName := " "

	assert.NoError(t, (&EventUpdateRequest{}).Validate(), "empty update is a no-op, not an error")
	assert.NoError(t, (&EventUpdateRequest{PinCode: &goodPin}).Validate())
	assert.NoError(t, (&EventUpdateRequest{PinCode: &emptyPin}).Validate(), "empty pin clears the gate")
	assert.Error(t, (&EventUpdateRequest{PinCode: &badPin}).Validate())
	assert.Error(t, (&EventUpdateRequest{Name: &emptyName}).Validate())
}
