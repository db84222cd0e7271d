package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/quickserve/quickserve_bot/internal/api"
	"github.com/quickserve/quickserve_bot/internal/model"
	"go.uber.org/zap"
)

// ListingService объявления провайдера: создание, правка, включение и
// выключение, удаление. Держит последний загруженный список для выбора
// объявления кнопками.
type ListingService struct {
	client *api.Client
	logger *zap.Logger

	mu    sync.Mutex
	lists map[int64][]model.Listing // providerID -> последний список
}

func NewListingService(client *api.Client, logger *zap.Logger) *ListingService {
	return &ListingService{
		client: client,
		logger: logger,
		lists:  make(map[int64][]model.Listing),
	}
}

// Create создаёт объявление (multipart при наличии фото)
func (s *ListingService) Create(ctx context.Context, session *model.Session, upload api.ListingUpload) (*model.Listing, error) {
	ctx = api.WithToken(ctx, session.Token)
	listing, err := s.client.CreateListing(ctx, session.UserID, upload)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Listing created",
		zap.Int64("listing_id", listing.ID),
		zap.Int64("provider_id", session.UserID),
		zap.String("title", listing.Title),
	)

	return listing, nil
}

// Refresh перезагружает список объявлений провайдера
func (s *ListingService) Refresh(ctx context.Context, session *model.Session) ([]model.Listing, error) {
	ctx = api.WithToken(ctx, session.Token)
	listings, err := s.client.ProviderListings(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.lists[session.UserID] = listings
	s.mu.Unlock()

	return append([]model.Listing(nil), listings...), nil
}

// ByID объявление из последнего списка
func (s *ListingService) ByID(providerID, listingID int64) (*model.Listing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lists[providerID] {
		if s.lists[providerID][i].ID == listingID {
			listing := s.lists[providerID][i]
			return &listing, true
		}
	}
	return nil, false
}

// Update обновляет объявление и патчит локальную копию
func (s *ListingService) Update(ctx context.Context, session *model.Session, listingID int64, update api.ListingUpdate) error {
	ctx = api.WithToken(ctx, session.Token)
	if err := s.client.UpdateListing(ctx, listingID, update); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.lists[session.UserID] {
		if s.lists[session.UserID][i].ID == listingID {
			s.lists[session.UserID][i].Title = update.Title
			s.lists[session.UserID][i].Description = update.Description
			s.lists[session.UserID][i].Price = update.Price
			s.lists[session.UserID][i].Disabled = update.Disabled
			break
		}
	}
	s.mu.Unlock()

	return nil
}

// ToggleDisabled включает или выключает объявление
func (s *ListingService) ToggleDisabled(ctx context.Context, session *model.Session, listingID int64) error {
	listing, ok := s.ByID(session.UserID, listingID)
	if !ok {
		return fmt.Errorf("listing %d is not loaded", listingID)
	}

	update := api.ListingUpdate{
		Title:       listing.Title,
		Description: listing.Description,
		Price:       listing.Price,
		Disabled:    !listing.Disabled,
	}

	return s.Update(ctx, session, listingID, update)
}

// Delete удаляет объявление
func (s *ListingService) Delete(ctx context.Context, session *model.Session, listingID int64) error {
	ctx = api.WithToken(ctx, session.Token)
	if err := s.client.DeleteListing(ctx, listingID); err != nil {
		return err
	}

	s.mu.Lock()
	listings := s.lists[session.UserID]
	for i := range listings {
		if listings[i].ID == listingID {
			s.lists[session.UserID] = append(listings[:i], listings[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.logger.Info("Listing deleted",
		zap.Int64("listing_id", listingID),
		zap.Int64("provider_id", session.UserID),
	)

	return nil
}

// Forget выбрасывает локальный список провайдера (logout)
func (s *ListingService) Forget(providerID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lists, providerID)
}
