package model

import (
	"reflect"
	"testing"
)

func TestAllowedActions(t *testing.T) {
	tests := []struct {
		name   string
		status BookingStatus
		role   Role
		want   []BookingAction
	}{
		{"provider from pending", BookingStatusPending, RoleProvider, []BookingAction{ActionConfirm, ActionCancel}},
		{"provider from confirmed", BookingStatusConfirmed, RoleProvider, []BookingAction{ActionComplete, ActionCancel}},
		{"provider from completed", BookingStatusCompleted, RoleProvider, nil},
		{"provider from cancelled", BookingStatusCancelled, RoleProvider, nil},
		{"customer from pending", BookingStatusPending, RoleCustomer, []BookingAction{ActionCancel}},
		{"customer from confirmed", BookingStatusConfirmed, RoleCustomer, nil},
		{"customer from completed", BookingStatusCompleted, RoleCustomer, nil},
		{"admin has no booking actions", BookingStatusPending, RoleAdmin, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.status.AllowedActions(tt.role)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AllowedActions(%s) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestAllows(t *testing.T) {
	if !BookingStatusPending.Allows(RoleProvider, ActionConfirm) {
		t.Error("provider must be able to confirm a pending booking")
	}
	if BookingStatusPending.Allows(RoleProvider, ActionComplete) {
		t.Error("provider must not complete a pending booking")
	}
	if !BookingStatusPending.Allows(RoleCustomer, ActionCancel) {
		t.Error("customer must be able to cancel a pending booking")
	}
	if BookingStatusConfirmed.Allows(RoleCustomer, ActionCancel) {
		t.Error("customer must not cancel a confirmed booking")
	}
}

func TestTerminalAndActive(t *testing.T) {
	tests := []struct {
		status   BookingStatus
		terminal bool
		active   bool
	}{
		{BookingStatusPending, false, true},
		{BookingStatusConfirmed, false, true},
		{BookingStatusCompleted, true, false},
		{BookingStatusCancelled, true, false},
		{BookingStatusRejected, true, false},
	}

	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.terminal {
			t.Errorf("%s.Terminal() = %v, want %v", tt.status, got, tt.terminal)
		}
		if got := tt.status.Active(); got != tt.active {
			t.Errorf("%s.Active() = %v, want %v", tt.status, got, tt.active)
		}
	}
}

func TestResultStatus(t *testing.T) {
	tests := []struct {
		action BookingAction
		want   BookingStatus
	}{
		{ActionConfirm, BookingStatusConfirmed},
		{ActionComplete, BookingStatusCompleted},
		{ActionCancel, BookingStatusCancelled},
	}

	for _, tt := range tests {
		if got := tt.action.ResultStatus(); got != tt.want {
			t.Errorf("%s.ResultStatus() = %s, want %s", tt.action, got, tt.want)
		}
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw  string
		want Role
	}{
		{"CUSTOMER", RoleCustomer},
		{"SERVICE_PROVIDER", RoleProvider},
		{"PROVIDER", RoleProvider}, // старый формат бэкенда
		{"ADMIN", RoleAdmin},
		{"", RoleCustomer},
		{"garbage", RoleCustomer},
	}

	for _, tt := range tests {
		if got := ParseRole(tt.raw); got != tt.want {
			t.Errorf("ParseRole(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}
