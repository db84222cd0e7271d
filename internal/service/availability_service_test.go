package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/quickserve/quickserve_bot/internal/api"
	"github.com/quickserve/quickserve_bot/internal/model"
	"go.uber.org/zap"
)

func TestLoadWeekdayFillsDraft(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/provider/availability/10", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("day"); got != "MONDAY" {
			t.Errorf("day = %q, want MONDAY", got)
		}
		// Провайдерский вид отдаёт объект с timeSlots
		w.Write([]byte(`{"day":"MONDAY","timeSlots":["09:00 AM","11:00 AM"]}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	svc := NewAvailabilityService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())
	session := testSession(10, model.RoleProvider)

	slots, err := svc.LoadWeekday(context.Background(), session, model.Monday)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(slots, []string{"09:00 AM", "11:00 AM"}) {
		t.Errorf("slots = %v", slots)
	}

	draft := svc.Draft(10, model.Monday)
	if !reflect.DeepEqual(draft, slots) {
		t.Errorf("draft = %v, want %v", draft, slots)
	}
}

func TestToggleIsLocalOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	}))
	defer server.Close()

	svc := NewAvailabilityService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())

	slots, err := svc.Toggle(10, model.Monday, "09:00 AM")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(slots, []string{"09:00 AM"}) {
		t.Errorf("slots after toggle on = %v", slots)
	}

	slots, err = svc.Toggle(10, model.Monday, "09:00 AM")
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 0 {
		t.Errorf("slots after toggle off = %v", slots)
	}
}

func TestToggleRejectsUnknownSlot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	svc := NewAvailabilityService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())

	// Слоты берутся только из фиксированного меню
	if _, err := svc.Toggle(10, model.Monday, "03:00 AM"); err == nil {
		t.Error("slot outside the candidate menu must be rejected")
	}
}

func TestSaveSendsWholeDay(t *testing.T) {
	var saved model.DaySchedule

	mux := http.NewServeMux()
	mux.HandleFunc("/provider/availability/10", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"timeSlots":["09:00 AM"]}`))
		case http.MethodPost:
			if err := decodeBody(r, &saved); err != nil {
				t.Errorf("decode schedule: %v", err)
			}
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	svc := NewAvailabilityService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())
	session := testSession(10, model.RoleProvider)

	if _, err := svc.LoadWeekday(context.Background(), session, model.Tuesday); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Toggle(10, model.Tuesday, "10:00 AM"); err != nil {
		t.Fatal(err)
	}

	if err := svc.Save(context.Background(), session, model.Tuesday); err != nil {
		t.Fatal(err)
	}

	if saved.Day != model.Tuesday {
		t.Errorf("saved day = %s, want TUESDAY", saved.Day)
	}
	if !reflect.DeepEqual(saved.TimeSlots, []string{"09:00 AM", "10:00 AM"}) {
		t.Errorf("saved slots = %v, want the whole day set", saved.TimeSlots)
	}
}

func TestDraftReturnsCopy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	svc := NewAvailabilityService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())

	if _, err := svc.Toggle(10, model.Monday, "09:00 AM"); err != nil {
		t.Fatal(err)
	}

	draft := svc.Draft(10, model.Monday)
	draft[0] = "mutated"

	if got := svc.Draft(10, model.Monday)[0]; got != "09:00 AM" {
		t.Errorf("internal draft was mutated through the copy: %q", got)
	}
}
