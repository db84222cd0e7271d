package stub_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/quickserve/quickserve_bot/internal/api"
	"github.com/quickserve/quickserve_bot/internal/model"
	"github.com/quickserve/quickserve_bot/internal/stub"
	"go.uber.org/zap"
)

func newTestBackend(t *testing.T) *api.Client {
	t.Helper()
	server := httptest.NewServer(stub.NewServer("test-secret", zap.NewNop()).Handler())
	t.Cleanup(server.Close)
	return api.NewClient(server.URL, zap.NewNop())
}

func userIDFromToken(t *testing.T, token string) int64 {
	t.Helper()
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		t.Fatalf("parse token: %v", err)
	}
	id, ok := claims["userId"].(float64)
	if !ok {
		t.Fatal("token has no userId claim")
	}
	return int64(id)
}

func signup(t *testing.T, client *api.Client, name, email string, role model.Role) (string, int64) {
	t.Helper()
	token, err := client.Signup(context.Background(), api.SignupRequest{
		Name:     name,
		Email:    email,
		Password: "password1",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("signup %s: %v", email, err)
	}
	return token, userIDFromToken(t, token)
}

// TestMarketplaceFlow прогоняет весь жизненный цикл: регистрация,
// модерация объявления, расписание, поиск, бронирование, переходы
// статусов, отзыв и уведомления.
func TestMarketplaceFlow(t *testing.T) {
	client := newTestBackend(t)
	ctx := context.Background()

	// Сидированный админ
	adminToken, err := client.Login(ctx, "admin@quickserve.local", "admin123")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	adminID := userIDFromToken(t, adminToken)
	adminCtx := api.WithToken(ctx, adminToken)

	providerToken, providerID := signup(t, client, "Petr", "petr@example.com", model.RoleProvider)
	providerCtx := api.WithToken(ctx, providerToken)

	customerToken, customerID := signup(t, client, "Anna", "anna@example.com", model.RoleCustomer)
	customerCtx := api.WithToken(ctx, customerToken)

	// Категории посеяны при старте
	categories, err := client.Categories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(categories) == 0 {
		t.Fatal("expected seeded categories")
	}
	categoryID := categories[0].ID

	// Провайдер создаёт объявление, оно уходит на модерацию
	listing, err := client.CreateListing(providerCtx, providerID, api.ListingUpload{
		CategoryID:  categoryID,
		Title:       "Deep cleaning",
		Description: "Full apartment cleaning",
		Price:       49.99,
	})
	if err != nil {
		t.Fatalf("create listing: %v", err)
	}
	if listing.ApprovalState != model.ApprovalPending {
		t.Errorf("new listing state = %s, want PENDING", listing.ApprovalState)
	}

	// До одобрения объявление в поиск не попадает
	if err := client.UpdateLocation(customerCtx, customerID, api.LocationUpdate{Latitude: 55.75, Longitude: 37.61}); err != nil {
		t.Fatal(err)
	}
	results, err := client.SearchListings(customerCtx, 55.75, 37.61, categoryID)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("pending listing leaked into search: %v", results)
	}

	// Админ одобряет
	pending, err := client.PendingListings(adminCtx)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].ID != listing.ID {
		t.Fatalf("pending = %v", pending)
	}
	if err := client.ModerateListing(adminCtx, listing.ID, adminID, true, ""); err != nil {
		t.Fatal(err)
	}

	providerNotifications, err := client.Notifications(providerCtx, providerID)
	if err != nil {
		t.Fatal(err)
	}
	if len(providerNotifications) == 0 || !strings.Contains(providerNotifications[0].Message, "approved") {
		t.Errorf("provider must be notified about approval, got %v", providerNotifications)
	}

	// Карточка объявления по историческому маршруту
	fetched, err := client.Listing(providerCtx, listing.ID)
	if err != nil {
		t.Fatal(err)
	}
	if fetched.ID != listing.ID || fetched.ApprovalState != model.ApprovalApproved {
		t.Errorf("fetched listing = %+v", fetched)
	}

	// Провайдер настраивает расписание на понедельник
	schedule := model.DaySchedule{Day: model.Monday, TimeSlots: []string{"09:00 AM", "10:00 AM"}}
	if err := client.SaveAvailability(providerCtx, providerID, schedule); err != nil {
		t.Fatal(err)
	}

	providerSlots, err := client.ProviderAvailability(providerCtx, providerID, model.Monday)
	if err != nil {
		t.Fatal(err)
	}
	if len(providerSlots) != 2 {
		t.Errorf("provider slots = %v", providerSlots)
	}

	customerSlots, err := client.CustomerAvailability(customerCtx, providerID, model.Monday)
	if err != nil {
		t.Fatal(err)
	}
	if len(customerSlots) != 2 {
		t.Errorf("customer slots = %v", customerSlots)
	}

	// Теперь объявление находится
	results, err = client.SearchListings(customerCtx, 55.75, 37.61, categoryID)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].ID != listing.ID {
		t.Fatalf("search results = %v", results)
	}

	// Клиент бронирует
	booking, err := client.CreateBooking(customerCtx, customerID, model.CreateBookingRequest{
		ProviderID:  providerID,
		ListingID:   listing.ID,
		BookingDate: "2025-01-13",
		TimeSlot:    "09:00 AM",
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if booking.Status != model.BookingStatusPending {
		t.Errorf("new booking status = %s, want PENDING", booking.Status)
	}
	if booking.ServiceName != "Deep cleaning" || booking.Price != 49.99 {
		t.Errorf("booking view is not joined: %+v", booking)
	}

	// Бронирование видно обеим сторонам
	customerBookings, err := client.CustomerBookings(customerCtx, customerID)
	if err != nil {
		t.Fatal(err)
	}
	if len(customerBookings) != 1 || customerBookings[0].ProviderName != "Petr" {
		t.Errorf("customer bookings = %v", customerBookings)
	}

	providerBookings, err := client.ProviderBookings(providerCtx, providerID)
	if err != nil {
		t.Fatal(err)
	}
	if len(providerBookings) != 1 || providerBookings[0].CustomerName != "Anna" {
		t.Errorf("provider bookings = %v", providerBookings)
	}

	// Провайдер подтверждает и завершает
	if err := client.ProviderBookingAction(providerCtx, booking.BookingID, model.ActionConfirm); err != nil {
		t.Fatal(err)
	}
	if err := client.ProviderBookingAction(providerCtx, booking.BookingID, model.ActionComplete); err != nil {
		t.Fatal(err)
	}

	// Повторное завершение отклоняется: статус терминален
	if err := client.ProviderBookingAction(providerCtx, booking.BookingID, model.ActionComplete); err == nil {
		t.Error("completing a completed booking must fail")
	}

	// Клиент получает уведомление со словом COMPLETED
	customerNotifications, err := client.Notifications(customerCtx, customerID)
	if err != nil {
		t.Fatal(err)
	}
	var completedNotice *model.Notification
	for i := range customerNotifications {
		if customerNotifications[i].CompletedNotice() {
			completedNotice = &customerNotifications[i]
		}
	}
	if completedNotice == nil {
		t.Fatalf("no COMPLETED notice among %v", customerNotifications)
	}

	if err := client.MarkNotificationRead(customerCtx, completedNotice.ID); err != nil {
		t.Fatal(err)
	}
	customerNotifications, err = client.Notifications(customerCtx, customerID)
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range customerNotifications {
		if n.ID == completedNotice.ID && !n.IsRead {
			t.Error("notification must be marked read")
		}
	}

	// Отзыв по завершённому бронированию, строго один
	if err := client.SubmitReview(customerCtx, model.CreateReviewRequest{
		BookingID: booking.BookingID,
		Rating:    5,
		Comment:   "excellent",
	}); err != nil {
		t.Fatal(err)
	}
	if err := client.SubmitReview(customerCtx, model.CreateReviewRequest{
		BookingID: booking.BookingID,
		Rating:    4,
	}); err == nil {
		t.Error("second review for the same booking must fail")
	}

	reviews, err := client.ReviewsByBooking(customerCtx, booking.BookingID)
	if err != nil {
		t.Fatal(err)
	}
	if len(reviews) != 1 || reviews[0].Rating != 5 || reviews[0].CustomerName != "Anna" {
		t.Errorf("reviews = %v", reviews)
	}

	// Отмена завершённого бронирования клиентом отклоняется
	if err := client.CustomerCancelBooking(customerCtx, booking.BookingID); err == nil {
		t.Error("cancelling a completed booking must fail")
	}

	// Аналитика считает бронирования
	stats, err := client.TopServices(adminCtx)
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 1 || stats[0].Name != "Deep cleaning" || stats[0].Count != 1 {
		t.Errorf("top services = %v", stats)
	}

	// Правка профиля видна в админском списке пользователей
	if err := client.UpdateProfile(customerCtx, customerID, api.ProfileUpdate{Name: "Anna K."}); err != nil {
		t.Fatal(err)
	}
	users, err := client.Users(adminCtx)
	if err != nil {
		t.Fatal(err)
	}
	renamed := false
	for _, u := range users {
		if u.ID == customerID && u.Name == "Anna K." {
			renamed = true
		}
	}
	if !renamed {
		t.Errorf("profile update not reflected in users list: %v", users)
	}
}

func TestCustomerCancelPendingBooking(t *testing.T) {
	client := newTestBackend(t)
	ctx := context.Background()

	adminToken, err := client.Login(ctx, "admin@quickserve.local", "admin123")
	if err != nil {
		t.Fatal(err)
	}
	adminCtx := api.WithToken(ctx, adminToken)

	providerToken, providerID := signup(t, client, "Petr", "petr@example.com", model.RoleProvider)
	customerToken, customerID := signup(t, client, "Anna", "anna@example.com", model.RoleCustomer)
	providerCtx := api.WithToken(ctx, providerToken)
	customerCtx := api.WithToken(ctx, customerToken)

	categories, err := client.Categories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	listing, err := client.CreateListing(providerCtx, providerID, api.ListingUpload{
		CategoryID: categories[0].ID,
		Title:      "Pipe repair",
		Price:      30,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := client.ModerateListing(adminCtx, listing.ID, userIDFromToken(t, adminToken), true, ""); err != nil {
		t.Fatal(err)
	}

	booking, err := client.CreateBooking(customerCtx, customerID, model.CreateBookingRequest{
		ProviderID:  providerID,
		ListingID:   listing.ID,
		BookingDate: "2025-01-14",
		TimeSlot:    "10:00 AM",
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := client.CustomerCancelBooking(customerCtx, booking.BookingID); err != nil {
		t.Fatalf("cancel pending booking: %v", err)
	}

	bookings, err := client.CustomerBookings(customerCtx, customerID)
	if err != nil {
		t.Fatal(err)
	}
	if bookings[0].Status != model.BookingStatusCancelled {
		t.Errorf("status = %s, want CANCELLED", bookings[0].Status)
	}

	// Провайдер узнаёт об отмене
	notifications, err := client.Notifications(providerCtx, providerID)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, n := range notifications {
		if strings.Contains(n.Message, "cancelled by the customer") {
			found = true
		}
	}
	if !found {
		t.Errorf("provider not notified about cancellation: %v", notifications)
	}
}

func TestAuthRules(t *testing.T) {
	client := newTestBackend(t)
	ctx := context.Background()

	if _, err := client.Signup(ctx, api.SignupRequest{
		Name: "Evil", Email: "evil@example.com", Password: "x1", Role: model.RoleAdmin,
	}); err == nil {
		t.Error("admin self-registration must be rejected")
	}

	signup(t, client, "Anna", "anna@example.com", model.RoleCustomer)

	if _, err := client.Signup(ctx, api.SignupRequest{
		Name: "Anna2", Email: "anna@example.com", Password: "x1", Role: model.RoleCustomer,
	}); err == nil {
		t.Error("duplicate email must be rejected")
	}

	if _, err := client.Login(ctx, "anna@example.com", "wrong"); !errors.Is(err, api.ErrUnauthorized) {
		t.Errorf("wrong password error = %v, want ErrUnauthorized", err)
	}

	if _, err := client.Login(ctx, "nobody@example.com", "x"); !errors.Is(err, api.ErrUnauthorized) {
		t.Errorf("unknown email error = %v, want ErrUnauthorized", err)
	}
}

func TestRoleEnforcement(t *testing.T) {
	client := newTestBackend(t)
	ctx := context.Background()

	customerToken, customerID := signup(t, client, "Anna", "anna@example.com", model.RoleCustomer)
	customerCtx := api.WithToken(ctx, customerToken)

	// Клиент не может ходить в провайдерские и админские эндпоинты
	if _, err := client.ProviderBookings(customerCtx, customerID); !errors.Is(err, api.ErrForbidden) {
		t.Errorf("provider endpoint for customer = %v, want ErrForbidden", err)
	}
	if _, err := client.PendingListings(customerCtx); !errors.Is(err, api.ErrForbidden) {
		t.Errorf("admin endpoint for customer = %v, want ErrForbidden", err)
	}

	// Без токена — 401
	if _, err := client.Notifications(ctx, customerID); !errors.Is(err, api.ErrUnauthorized) {
		t.Errorf("no token error = %v, want ErrUnauthorized", err)
	}
}
