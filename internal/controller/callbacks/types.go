package callbacks

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/callbacktypes"
	"github.com/quickserve/quickserve_bot/internal/service"
	"go.uber.org/zap"
)

// Handler обрабатывает все callback query бота
type Handler struct {
	deps *callbacktypes.Handler
}

// NewHandler создаёт callback handler с зависимостями
func NewHandler(
	sessions callbacktypes.SessionSource,
	bookings *service.BookingService,
	availability *service.AvailabilityService,
	search *service.SearchService,
	reviews *service.ReviewService,
	notifications *service.NotificationService,
	listings *service.ListingService,
	admin *service.AdminService,
	stateManager callbacktypes.StateManager,
	logger *zap.Logger,
	handleSignupRole func(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, role string),
) *Handler {
	return &Handler{
		deps: &callbacktypes.Handler{
			Sessions:         sessions,
			Bookings:         bookings,
			Availability:     availability,
			Search:           search,
			Reviews:          reviews,
			Notifications:    notifications,
			Listings:         listings,
			Admin:            admin,
			StateManager:     stateManager,
			Logger:           logger,
			HandleSignupRole: handleSignupRole,
		},
	}
}

// HandleCallbackQuery входная точка всех нажатий inline кнопок
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	Route(ctx, b, update.CallbackQuery, h.deps)
}
