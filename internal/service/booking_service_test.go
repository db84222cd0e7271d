package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/quickserve/quickserve_bot/internal/api"
	"github.com/quickserve/quickserve_bot/internal/model"
	"go.uber.org/zap"
)

func testSession(userID int64, role model.Role) *model.Session {
	return &model.Session{
		ChatID:    userID * 100,
		UserID:    userID,
		Role:      role,
		Token:     "test-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, value interface{}) {
	t.Helper()
	if err := json.NewEncoder(w).Encode(value); err != nil {
		t.Fatal(err)
	}
}

func TestProviderActionPatchesLocally(t *testing.T) {
	var listCalls, actionCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/provider/bookings/10", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&listCalls, 1)
		writeJSON(t, w, []model.Booking{
			{BookingID: 1, Status: model.BookingStatusPending},
			{BookingID: 2, Status: model.BookingStatusConfirmed},
		})
	})
	mux.HandleFunc("/provider/bookings/1/confirm", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&actionCalls, 1)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	svc := NewBookingService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())
	session := testSession(10, model.RoleProvider)

	if _, err := svc.RefreshProviderBookings(context.Background(), session); err != nil {
		t.Fatal(err)
	}

	if err := svc.ProviderAction(context.Background(), session, 1, model.ActionConfirm); err != nil {
		t.Fatalf("ProviderAction: %v", err)
	}

	// Успех патчит локальный список без перезапроса
	bookings := svc.ProviderBookings(10)
	if bookings[0].Status != model.BookingStatusConfirmed {
		t.Errorf("booking 1 status = %s, want CONFIRMED", bookings[0].Status)
	}
	if got := atomic.LoadInt32(&listCalls); got != 1 {
		t.Errorf("list fetched %d times, want 1", got)
	}
	if got := atomic.LoadInt32(&actionCalls); got != 1 {
		t.Errorf("action called %d times, want 1", got)
	}
}

func TestProviderActionRejectedWithoutNetwork(t *testing.T) {
	var actionCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/provider/bookings/10", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []model.Booking{{BookingID: 1, Status: model.BookingStatusCompleted}})
	})
	mux.HandleFunc("/provider/bookings/1/confirm", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&actionCalls, 1)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	svc := NewBookingService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())
	session := testSession(10, model.RoleProvider)

	if _, err := svc.RefreshProviderBookings(context.Background(), session); err != nil {
		t.Fatal(err)
	}

	// COMPLETED терминален: действие отклоняется до сети
	if err := svc.ProviderAction(context.Background(), session, 1, model.ActionConfirm); err == nil {
		t.Error("expected error for action on terminal booking")
	}
	if got := atomic.LoadInt32(&actionCalls); got != 0 {
		t.Errorf("action endpoint was called %d times, want 0", got)
	}
}

func TestProviderActionServerErrorKeepsStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/provider/bookings/10", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []model.Booking{{BookingID: 1, Status: model.BookingStatusPending}})
	})
	mux.HandleFunc("/provider/bookings/1/confirm", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"booking was cancelled meanwhile"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	svc := NewBookingService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())
	session := testSession(10, model.RoleProvider)

	if _, err := svc.RefreshProviderBookings(context.Background(), session); err != nil {
		t.Fatal(err)
	}

	err := svc.ProviderAction(context.Background(), session, 1, model.ActionConfirm)
	if err == nil {
		t.Fatal("expected server error")
	}
	if got := api.ServerMessage(err); got != "booking was cancelled meanwhile" {
		t.Errorf("server message = %q", got)
	}

	// Ошибка не трогает локальный список
	if status := svc.ProviderBookings(10)[0].Status; status != model.BookingStatusPending {
		t.Errorf("status after failed action = %s, want PENDING", status)
	}
}

func TestCustomerCancelDoesNotPreValidate(t *testing.T) {
	var cancelCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/customer/bookings/20", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []model.Booking{{BookingID: 5, Status: model.BookingStatusConfirmed}})
	})
	mux.HandleFunc("/customer/bookings/5/cancel", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&cancelCalls, 1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"only pending bookings can be cancelled"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	svc := NewBookingService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())
	session := testSession(20, model.RoleCustomer)

	if _, err := svc.RefreshCustomerBookings(context.Background(), session); err != nil {
		t.Fatal(err)
	}

	// Статус заранее не проверяется: решает бэкенд
	err := svc.CustomerCancel(context.Background(), session, 5)
	if err == nil {
		t.Fatal("expected rejection from backend")
	}
	if got := atomic.LoadInt32(&cancelCalls); got != 1 {
		t.Errorf("cancel called %d times, want 1", got)
	}
	if status := svc.CustomerBookings(20)[0].Status; status != model.BookingStatusConfirmed {
		t.Errorf("status after rejected cancel = %s, want CONFIRMED", status)
	}
}

func TestCustomerCancelPatchesOnSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/customer/bookings/20", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []model.Booking{{BookingID: 5, Status: model.BookingStatusPending}})
	})
	mux.HandleFunc("/customer/bookings/5/cancel", func(w http.ResponseWriter, r *http.Request) {})
	server := httptest.NewServer(mux)
	defer server.Close()

	svc := NewBookingService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())
	session := testSession(20, model.RoleCustomer)

	if _, err := svc.RefreshCustomerBookings(context.Background(), session); err != nil {
		t.Fatal(err)
	}
	if err := svc.CustomerCancel(context.Background(), session, 5); err != nil {
		t.Fatal(err)
	}

	if status := svc.CustomerBookings(20)[0].Status; status != model.BookingStatusCancelled {
		t.Errorf("status = %s, want CANCELLED", status)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	// До валидного запроса сеть не нужна
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	}))
	defer server.Close()

	svc := NewBookingService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())
	session := testSession(20, model.RoleCustomer)
	listing := &model.Listing{ID: 3, ProviderID: 10}

	tests := []struct {
		name    string
		session *model.Session
		listing *model.Listing
		date    string
		slot    string
	}{
		{"nil session", nil, listing, "2025-01-15", "09:00 AM"},
		{"nil listing", session, nil, "2025-01-15", "09:00 AM"},
		{"unresolved provider", session, &model.Listing{ID: 3}, "2025-01-15", "09:00 AM"},
		{"unresolved listing", session, &model.Listing{ProviderID: 10}, "2025-01-15", "09:00 AM"},
		{"no date", session, listing, "", "09:00 AM"},
		{"no slot", session, listing, "2025-01-15", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateBooking(context.Background(), tt.session, tt.listing, tt.date, tt.slot); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestRefreshSortsNewestFirst(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/customer/bookings/20", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []model.Booking{
			{BookingID: 1, Status: model.BookingStatusPending},
			{BookingID: 3, Status: model.BookingStatusPending},
			{BookingID: 2, Status: model.BookingStatusPending},
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	svc := NewBookingService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())
	bookings, err := svc.RefreshCustomerBookings(context.Background(), testSession(20, model.RoleCustomer))
	if err != nil {
		t.Fatal(err)
	}

	wantOrder := []int64{3, 2, 1}
	for i, want := range wantOrder {
		if bookings[i].BookingID != want {
			t.Errorf("position %d: id %d, want %d", i, bookings[i].BookingID, want)
		}
	}
}

func TestForgetDropsLists(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/customer/bookings/20", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []model.Booking{{BookingID: 1, Status: model.BookingStatusPending}})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	svc := NewBookingService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())
	if _, err := svc.RefreshCustomerBookings(context.Background(), testSession(20, model.RoleCustomer)); err != nil {
		t.Fatal(err)
	}

	svc.Forget(20)
	if got := svc.CustomerBookings(20); len(got) != 0 {
		t.Errorf("list after Forget = %v, want empty", got)
	}
}

func TestSplitBookings(t *testing.T) {
	bookings := []model.Booking{
		{BookingID: 1, Status: model.BookingStatusPending},
		{BookingID: 2, Status: model.BookingStatusCompleted},
		{BookingID: 3, Status: model.BookingStatusConfirmed},
		{BookingID: 4, Status: model.BookingStatusCancelled},
		{BookingID: 5, Status: model.BookingStatusRejected},
	}

	active, history := SplitBookings(bookings)

	if len(active) != 2 || active[0].BookingID != 1 || active[1].BookingID != 3 {
		t.Errorf("active = %v", active)
	}
	if len(history) != 3 {
		t.Errorf("history = %v", history)
	}
}
