package handlers

import (
	"github.com/quickserve/quickserve_bot/internal/api"
	"github.com/quickserve/quickserve_bot/internal/controller/state"
	"github.com/quickserve/quickserve_bot/internal/service"
	"github.com/quickserve/quickserve_bot/internal/session"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	client        *api.Client
	sessions      *session.Store
	bookings      *service.BookingService
	availability  *service.AvailabilityService
	search        *service.SearchService
	reviews       *service.ReviewService
	notifications *service.NotificationService
	listings      *service.ListingService
	admin         *service.AdminService
	stateManager  *state.Manager
	logger        *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	client *api.Client,
	sessions *session.Store,
	bookings *service.BookingService,
	availability *service.AvailabilityService,
	search *service.SearchService,
	reviews *service.ReviewService,
	notifications *service.NotificationService,
	listings *service.ListingService,
	admin *service.AdminService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		client:        client,
		sessions:      sessions,
		bookings:      bookings,
		availability:  availability,
		search:        search,
		reviews:       reviews,
		notifications: notifications,
		listings:      listings,
		admin:         admin,
		stateManager:  stateManager,
		logger:        logger,
	}
}
