package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/quickserve/quickserve_bot/internal/api"
	"github.com/quickserve/quickserve_bot/internal/model"
	"go.uber.org/zap"
)

// AdminService модерация объявлений, категории, пользователи и аналитика
type AdminService struct {
	client *api.Client
	logger *zap.Logger

	mu      sync.Mutex
	pending map[int64][]model.Listing // adminID -> очередь модерации
}

func NewAdminService(client *api.Client, logger *zap.Logger) *AdminService {
	return &AdminService{
		client:  client,
		logger:  logger,
		pending: make(map[int64][]model.Listing),
	}
}

// PendingListings очередь объявлений на модерацию
func (s *AdminService) PendingListings(ctx context.Context, session *model.Session) ([]model.Listing, error) {
	ctx = api.WithToken(ctx, session.Token)
	listings, err := s.client.PendingListings(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.pending[session.UserID] = listings
	s.mu.Unlock()

	return listings, nil
}

// PendingByID объявление из загруженной очереди модерации
func (s *AdminService) PendingByID(adminID, listingID int64) (*model.Listing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.pending[adminID] {
		if s.pending[adminID][i].ID == listingID {
			listing := s.pending[adminID][i]
			return &listing, true
		}
	}
	return nil, false
}

// ApprovedListings одобренные объявления (без кэша, только просмотр)
func (s *AdminService) ApprovedListings(ctx context.Context, session *model.Session) ([]model.Listing, error) {
	ctx = api.WithToken(ctx, session.Token)
	return s.client.ApprovedListings(ctx)
}

// Moderate одобряет или отклоняет объявление и убирает его из очереди
func (s *AdminService) Moderate(ctx context.Context, session *model.Session, listingID int64, approve bool, reason string) error {
	if !session.IsAdmin() {
		return fmt.Errorf("moderation requires admin role")
	}

	ctx = api.WithToken(ctx, session.Token)
	if err := s.client.ModerateListing(ctx, listingID, session.UserID, approve, reason); err != nil {
		return err
	}

	s.mu.Lock()
	queue := s.pending[session.UserID]
	for i := range queue {
		if queue[i].ID == listingID {
			s.pending[session.UserID] = append(queue[:i], queue[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.logger.Info("Listing moderated",
		zap.Int64("listing_id", listingID),
		zap.Int64("admin_id", session.UserID),
		zap.Bool("approved", approve),
	)

	return nil
}

// CreateCategory создаёт категорию услуг
func (s *AdminService) CreateCategory(ctx context.Context, session *model.Session, name, description string) error {
	if !session.IsAdmin() {
		return fmt.Errorf("category management requires admin role")
	}

	ctx = api.WithToken(ctx, session.Token)
	return s.client.CreateCategory(ctx, model.Category{Name: name, Description: description})
}

// DeleteCategory удаляет категорию
func (s *AdminService) DeleteCategory(ctx context.Context, session *model.Session, categoryID int64) error {
	if !session.IsAdmin() {
		return fmt.Errorf("category management requires admin role")
	}

	ctx = api.WithToken(ctx, session.Token)
	return s.client.DeleteCategory(ctx, categoryID)
}

// Users список пользователей
func (s *AdminService) Users(ctx context.Context, session *model.Session) ([]model.User, error) {
	ctx = api.WithToken(ctx, session.Token)
	return s.client.Users(ctx)
}

// TopCategories аналитика по категориям
func (s *AdminService) TopCategories(ctx context.Context, session *model.Session) ([]api.CategoryStat, error) {
	ctx = api.WithToken(ctx, session.Token)
	return s.client.TopCategories(ctx)
}

// TopServices аналитика по услугам
func (s *AdminService) TopServices(ctx context.Context, session *model.Session) ([]api.CategoryStat, error) {
	ctx = api.WithToken(ctx, session.Token)
	return s.client.TopServices(ctx)
}
