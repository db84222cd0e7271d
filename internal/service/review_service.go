package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/quickserve/quickserve_bot/internal/api"
	"github.com/quickserve/quickserve_bot/internal/model"
	"go.uber.org/zap"
)

// ReviewService отзывы и авто-подсказка "оцените услугу". После каждой
// загрузки списка клиента сервис подтягивает отзывы по завершённым
// бронированиям и не больше одного раза за сессию предлагает оценить
// первое найденное без отзыва.
type ReviewService struct {
	client *api.Client
	logger *zap.Logger

	mu       sync.Mutex
	reviews  map[int64]map[int64]model.Review // userID -> bookingID -> отзыв
	prompted map[int64]bool                   // one-shot флаг авто-подсказки
}

func NewReviewService(client *api.Client, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		client:   client,
		logger:   logger,
		reviews:  make(map[int64]map[int64]model.Review),
		prompted: make(map[int64]bool),
	}
}

// SyncCompleted обновляет кэш отзывов по завершённым бронированиям и
// возвращает бронирование для авто-подсказки, если она ещё не звучала.
// Ошибка по одному бронированию логируется и пропускается, остальные
// бронирования обрабатываются дальше.
func (s *ReviewService) SyncCompleted(ctx context.Context, session *model.Session, bookings []model.Booking) *model.Booking {
	ctx = api.WithToken(ctx, session.Token)

	var firstUnreviewed *model.Booking
	for i := range bookings {
		booking := bookings[i]
		if booking.Status != model.BookingStatusCompleted {
			continue
		}

		reviews, err := s.client.ReviewsByBooking(ctx, booking.BookingID)
		if err != nil {
			s.logger.Warn("Failed to fetch review for booking",
				zap.Int64("booking_id", booking.BookingID),
				zap.Error(err),
			)
			continue
		}

		if len(reviews) > 0 {
			s.remember(session.UserID, reviews[0])
		} else if firstUnreviewed == nil {
			firstUnreviewed = &booking
		}
	}

	if firstUnreviewed == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prompted[session.UserID] {
		return nil
	}
	s.prompted[session.UserID] = true

	return firstUnreviewed
}

// Submit отправляет отзыв и перечитывает его с бэкенда: кэш обновляется
// серверной версией, а не отправленным payload.
func (s *ReviewService) Submit(ctx context.Context, session *model.Session, bookingID int64, rating int, comment string) error {
	req := model.CreateReviewRequest{
		BookingID: bookingID,
		Rating:    rating,
		Comment:   comment,
	}

	ctx = api.WithToken(ctx, session.Token)
	if err := s.client.SubmitReview(ctx, req); err != nil {
		return err
	}

	s.logger.Info("Review submitted",
		zap.Int64("booking_id", bookingID),
		zap.Int("rating", rating),
	)

	reviews, err := s.client.ReviewsByBooking(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("refresh review: %w", err)
	}
	if len(reviews) > 0 {
		s.remember(session.UserID, reviews[0])
	}

	return nil
}

// ReviewFor отзыв из кэша по бронированию
func (s *ReviewService) ReviewFor(userID, bookingID int64) (model.Review, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	review, ok := s.reviews[userID][bookingID]
	return review, ok
}

// Forget сбрасывает кэш и one-shot флаг пользователя (logout)
func (s *ReviewService) Forget(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reviews, userID)
	delete(s.prompted, userID)
}

func (s *ReviewService) remember(userID int64, review model.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reviews[userID] == nil {
		s.reviews[userID] = make(map[int64]model.Review)
	}
	s.reviews[userID][review.BookingID] = review
}
