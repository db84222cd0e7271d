package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/quickserve/quickserve_bot/internal/api"
	"github.com/quickserve/quickserve_bot/internal/model"
	"go.uber.org/zap"
)

func decodeBody(r *http.Request, out interface{}) error {
	return json.NewDecoder(r.Body).Decode(out)
}

func writeJSONValue(w http.ResponseWriter, value interface{}) {
	json.NewEncoder(w).Encode(value)
}

// reviewServer стаб бэкенда отзывов: отзывы по бронированиям плюс
// принудительные ошибки по отдельным бронированиям
type reviewServer struct {
	mu      sync.Mutex
	reviews map[int64][]model.Review
	failing map[int64]bool
}

func newReviewServer() (*reviewServer, *httptest.Server) {
	rs := &reviewServer{
		reviews: make(map[int64][]model.Review),
		failing: make(map[int64]bool),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/customer/reviews", func(w http.ResponseWriter, r *http.Request) {
		var req model.CreateReviewRequest
		if err := decodeBody(r, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		rs.mu.Lock()
		rs.reviews[req.BookingID] = []model.Review{{
			ID:        req.BookingID * 10,
			BookingID: req.BookingID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		}}
		rs.mu.Unlock()
	})
	mux.HandleFunc("/customer/reviews/", func(w http.ResponseWriter, r *http.Request) {
		var bookingID int64
		fmt.Sscanf(r.URL.Path, "/customer/reviews/%d", &bookingID)

		rs.mu.Lock()
		defer rs.mu.Unlock()
		if rs.failing[bookingID] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		reviews := rs.reviews[bookingID]
		if reviews == nil {
			reviews = []model.Review{}
		}
		writeJSONValue(w, reviews)
	})

	return rs, httptest.NewServer(mux)
}

func TestSyncCompletedPromptsOncePerSession(t *testing.T) {
	_, server := newReviewServer()
	defer server.Close()

	svc := NewReviewService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())
	session := testSession(20, model.RoleCustomer)

	bookings := []model.Booking{
		{BookingID: 1, Status: model.BookingStatusCompleted},
		{BookingID: 2, Status: model.BookingStatusCompleted},
		{BookingID: 3, Status: model.BookingStatusPending},
	}

	prompt := svc.SyncCompleted(context.Background(), session, bookings)
	if prompt == nil || prompt.BookingID != 1 {
		t.Fatalf("prompt = %+v, want booking 1", prompt)
	}

	// Подсказка one-shot: повтор в той же сессии молчит
	if again := svc.SyncCompleted(context.Background(), session, bookings); again != nil {
		t.Errorf("second sync prompted again: %+v", again)
	}

	// Logout сбрасывает флаг
	svc.Forget(20)
	if prompt := svc.SyncCompleted(context.Background(), session, bookings); prompt == nil {
		t.Error("prompt must fire again after Forget")
	}
}

func TestSyncCompletedSkipsReviewed(t *testing.T) {
	rs, server := newReviewServer()
	defer server.Close()

	rs.mu.Lock()
	rs.reviews[1] = []model.Review{{ID: 10, BookingID: 1, Rating: 5, Comment: "great"}}
	rs.mu.Unlock()

	svc := NewReviewService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())
	session := testSession(20, model.RoleCustomer)

	bookings := []model.Booking{
		{BookingID: 1, Status: model.BookingStatusCompleted},
		{BookingID: 2, Status: model.BookingStatusCompleted},
	}

	prompt := svc.SyncCompleted(context.Background(), session, bookings)
	if prompt == nil || prompt.BookingID != 2 {
		t.Fatalf("prompt = %+v, want booking 2", prompt)
	}

	// Существующий отзыв попадает в кэш
	review, ok := svc.ReviewFor(20, 1)
	if !ok {
		t.Fatal("review for booking 1 must be cached")
	}
	if review.Rating != 5 {
		t.Errorf("cached rating = %d, want 5", review.Rating)
	}
}

func TestSyncCompletedIsolatesPerBookingErrors(t *testing.T) {
	rs, server := newReviewServer()
	defer server.Close()

	rs.mu.Lock()
	rs.failing[1] = true
	rs.mu.Unlock()

	svc := NewReviewService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())
	session := testSession(20, model.RoleCustomer)

	bookings := []model.Booking{
		{BookingID: 1, Status: model.BookingStatusCompleted},
		{BookingID: 2, Status: model.BookingStatusCompleted},
	}

	// Ошибка по бронированию 1 не валит обработку бронирования 2
	prompt := svc.SyncCompleted(context.Background(), session, bookings)
	if prompt == nil || prompt.BookingID != 2 {
		t.Fatalf("prompt = %+v, want booking 2", prompt)
	}
}

func TestSubmitRefreshesFromBackend(t *testing.T) {
	_, server := newReviewServer()
	defer server.Close()

	svc := NewReviewService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())
	session := testSession(20, model.RoleCustomer)

	if err := svc.Submit(context.Background(), session, 5, 4, "good job"); err != nil {
		t.Fatal(err)
	}

	// Кэш обновляется серверной версией отзыва
	review, ok := svc.ReviewFor(20, 5)
	if !ok {
		t.Fatal("submitted review must be cached")
	}
	if review.ID != 50 {
		t.Errorf("cached review id = %d, want server-assigned 50", review.ID)
	}
	if review.Rating != 4 || review.Comment != "good job" {
		t.Errorf("cached review = %+v", review)
	}
}

func TestSubmitValidatesRating(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	}))
	defer server.Close()

	svc := NewReviewService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())
	session := testSession(20, model.RoleCustomer)

	for _, rating := range []int{0, -1, 6} {
		if err := svc.Submit(context.Background(), session, 5, rating, ""); err == nil {
			t.Errorf("rating %d must be rejected before the network", rating)
		}
	}
}
