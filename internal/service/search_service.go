package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/quickserve/quickserve_bot/internal/api"
	"github.com/quickserve/quickserve_bot/internal/model"
	"go.uber.org/zap"
)

// ErrLocationRequired поиск без локации заблокирован: ни одного
// сетевого вызова не делается.
var ErrLocationRequired = errors.New("location is required for search")

// Location координаты клиента с человекочитаемым адресом
type Location struct {
	Latitude  float64
	Longitude float64
	Address   string
}

// SearchService поиск услуг рядом с клиентом. Ранжирование по дистанции
// считает бэкенд, сервис только требует локацию до первого запроса и
// запоминает последнюю выдачу для выбора объявления кнопками.
type SearchService struct {
	client *api.Client
	logger *zap.Logger

	mu        sync.Mutex
	locations map[int64]Location        // userID -> локация
	results   map[int64][]model.Listing // userID -> последняя выдача
}

func NewSearchService(client *api.Client, logger *zap.Logger) *SearchService {
	return &SearchService{
		client:    client,
		logger:    logger,
		locations: make(map[int64]Location),
		results:   make(map[int64][]model.Listing),
	}
}

// SetLocation запоминает координаты локально и отправляет их на бэкенд
func (s *SearchService) SetLocation(ctx context.Context, session *model.Session, loc Location) error {
	ctx = api.WithToken(ctx, session.Token)
	update := api.LocationUpdate{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Address:   loc.Address,
	}
	if err := s.client.UpdateLocation(ctx, session.UserID, update); err != nil {
		return fmt.Errorf("set location: %w", err)
	}

	s.mu.Lock()
	s.locations[session.UserID] = loc
	s.mu.Unlock()

	s.logger.Info("Location updated",
		zap.Int64("user_id", session.UserID),
		zap.String("address", loc.Address),
	)

	return nil
}

// Location последняя известная локация пользователя
func (s *SearchService) Location(userID int64) (Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	loc, ok := s.locations[userID]
	return loc, ok
}

// Categories список категорий для выбора перед поиском
func (s *SearchService) Categories(ctx context.Context, session *model.Session) ([]model.Category, error) {
	ctx = api.WithToken(ctx, session.Token)
	return s.client.Categories(ctx)
}

// Search ищет одобренные объявления выбранной категории рядом с клиентом.
// Без локации поиск блокируется до единого сетевого вызова.
func (s *SearchService) Search(ctx context.Context, session *model.Session, categoryID int64) ([]model.Listing, error) {
	loc, ok := s.Location(session.UserID)
	if !ok {
		return nil, ErrLocationRequired
	}

	ctx = api.WithToken(ctx, session.Token)
	listings, err := s.client.SearchListings(ctx, loc.Latitude, loc.Longitude, categoryID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.results[session.UserID] = listings
	s.mu.Unlock()

	return listings, nil
}

// ListingFromResults объявление из последней выдачи по id
func (s *SearchService) ListingFromResults(userID, listingID int64) (*model.Listing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.results[userID] {
		if s.results[userID][i].ID == listingID {
			listing := s.results[userID][i]
			return &listing, true
		}
	}
	return nil, false
}

// Forget выбрасывает локацию и выдачу пользователя (logout)
func (s *SearchService) Forget(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locations, userID)
	delete(s.results, userID)
}
