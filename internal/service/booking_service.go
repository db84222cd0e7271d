package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/quickserve/quickserve_bot/internal/api"
	"github.com/quickserve/quickserve_bot/internal/model"
	"go.uber.org/zap"
)

// BookingService воркфлоу бронирования: выбор даты, получение слотов,
// создание бронирования и переходы статусов. Держит последние загруженные
// списки бронирований per-user и патчит их оптимистично после действий.
type BookingService struct {
	client *api.Client
	logger *zap.Logger

	mu            sync.Mutex
	customerLists map[int64][]model.Booking // userID -> последний загруженный список
	providerLists map[int64][]model.Booking
}

func NewBookingService(client *api.Client, logger *zap.Logger) *BookingService {
	return &BookingService{
		client:        client,
		logger:        logger,
		customerLists: make(map[int64][]model.Booking),
		providerLists: make(map[int64][]model.Booking),
	}
}

// SlotsForDate слоты провайдера на дату глазами клиента. Ключ — день
// недели, выведенный из даты: два разных числа на одну среду всегда
// покажут одинаковые слоты.
func (s *BookingService) SlotsForDate(ctx context.Context, session *model.Session, providerID int64, date string) ([]string, error) {
	day, err := model.WeekdayOfDate(date)
	if err != nil {
		return nil, err
	}

	ctx = api.WithToken(ctx, session.Token)
	slots, err := s.client.CustomerAvailability(ctx, providerID, day)
	if err != nil {
		return nil, fmt.Errorf("slots for %s: %w", day, err)
	}

	return slots, nil
}

// CreateBooking создаёт бронирование. Все четыре составляющие обязательны:
// клиент, провайдер (учитывая алиасы в объявлении), дата и слот.
func (s *BookingService) CreateBooking(ctx context.Context, session *model.Session, listing *model.Listing, date, slot string) (*model.Booking, error) {
	if session == nil || session.UserID == 0 {
		return nil, fmt.Errorf("create booking: no authenticated customer")
	}
	if listing == nil || listing.ProviderID == 0 {
		return nil, fmt.Errorf("create booking: provider is not resolved")
	}
	if listing.ID == 0 {
		return nil, fmt.Errorf("create booking: listing is not resolved")
	}
	if date == "" {
		return nil, fmt.Errorf("create booking: date is not selected")
	}
	if slot == "" {
		return nil, fmt.Errorf("create booking: time slot is not selected")
	}

	req := model.CreateBookingRequest{
		ProviderID:  listing.ProviderID,
		ListingID:   listing.ID,
		BookingDate: date,
		TimeSlot:    slot,
	}

	ctx = api.WithToken(ctx, session.Token)
	booking, err := s.client.CreateBooking(ctx, session.UserID, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Booking created",
		zap.Int64("booking_id", booking.BookingID),
		zap.Int64("customer_id", session.UserID),
		zap.Int64("provider_id", listing.ProviderID),
		zap.String("date", date),
		zap.String("slot", slot),
	)

	return booking, nil
}

// RefreshCustomerBookings перезагружает список бронирований клиента
// с бэкенда, сортирует новые первыми и запоминает его.
func (s *BookingService) RefreshCustomerBookings(ctx context.Context, session *model.Session) ([]model.Booking, error) {
	ctx = api.WithToken(ctx, session.Token)
	bookings, err := s.client.CustomerBookings(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	sortBookings(bookings)

	s.mu.Lock()
	s.customerLists[session.UserID] = bookings
	s.mu.Unlock()

	return s.CustomerBookings(session.UserID), nil
}

// RefreshProviderBookings перезагружает список бронирований провайдера
func (s *BookingService) RefreshProviderBookings(ctx context.Context, session *model.Session) ([]model.Booking, error) {
	ctx = api.WithToken(ctx, session.Token)
	bookings, err := s.client.ProviderBookings(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	sortBookings(bookings)

	s.mu.Lock()
	s.providerLists[session.UserID] = bookings
	s.mu.Unlock()

	return s.ProviderBookings(session.UserID), nil
}

// CustomerBookings последний загруженный список клиента (копия)
func (s *BookingService) CustomerBookings(userID int64) []model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Booking(nil), s.customerLists[userID]...)
}

// ProviderBookings последний загруженный список провайдера (копия)
func (s *BookingService) ProviderBookings(userID int64) []model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Booking(nil), s.providerLists[userID]...)
}

// ProviderAction выполняет действие провайдера над бронированием.
// Успех патчит только статус затронутой строки в локальном списке,
// без перезапроса. Ошибка оставляет список нетронутым.
func (s *BookingService) ProviderAction(ctx context.Context, session *model.Session, bookingID int64, action model.BookingAction) error {
	booking, ok := s.findBooking(s.providerLists, session.UserID, bookingID)
	if ok && !booking.Status.Allows(model.RoleProvider, action) {
		return fmt.Errorf("booking %d is %s, %s is not allowed", bookingID, booking.Status, action)
	}

	ctx = api.WithToken(ctx, session.Token)
	if err := s.client.ProviderBookingAction(ctx, bookingID, action); err != nil {
		return err
	}

	s.patchStatus(s.providerLists, session.UserID, bookingID, action.ResultStatus())

	s.logger.Info("Booking transition",
		zap.Int64("booking_id", bookingID),
		zap.String("action", string(action)),
		zap.Int64("provider_id", session.UserID),
	)

	return nil
}

// CustomerCancel отменяет бронирование клиентом. Статус заранее не
// проверяется: бэкенд сам отклонит отмену не-PENDING бронирования,
// его сообщение показывается пользователю как есть.
func (s *BookingService) CustomerCancel(ctx context.Context, session *model.Session, bookingID int64) error {
	ctx = api.WithToken(ctx, session.Token)
	if err := s.client.CustomerCancelBooking(ctx, bookingID); err != nil {
		return err
	}

	s.patchStatus(s.customerLists, session.UserID, bookingID, model.BookingStatusCancelled)

	s.logger.Info("Booking cancelled by customer",
		zap.Int64("booking_id", bookingID),
		zap.Int64("customer_id", session.UserID),
	)

	return nil
}

// Forget выбрасывает локальные списки пользователя (logout)
func (s *BookingService) Forget(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.customerLists, userID)
	delete(s.providerLists, userID)
}

func (s *BookingService) findBooking(lists map[int64][]model.Booking, userID, bookingID int64) (model.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range lists[userID] {
		if b.BookingID == bookingID {
			return b, true
		}
	}
	return model.Booking{}, false
}

func (s *BookingService) patchStatus(lists map[int64][]model.Booking, userID, bookingID int64, status model.BookingStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings := lists[userID]
	for i := range bookings {
		if bookings[i].BookingID == bookingID {
			bookings[i].Status = status
			return
		}
	}
}

// SplitBookings делит список на активные (PENDING/CONFIRMED) и историю
func SplitBookings(bookings []model.Booking) (active, history []model.Booking) {
	for _, b := range bookings {
		if b.Status.Active() {
			active = append(active, b)
		} else {
			history = append(history, b)
		}
	}
	return active, history
}

func sortBookings(bookings []model.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].BookingID > bookings[j].BookingID
	})
}
