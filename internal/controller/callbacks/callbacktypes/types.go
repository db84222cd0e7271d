package callbacktypes

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/quickserve/quickserve_bot/internal/model"
	"github.com/quickserve/quickserve_bot/internal/service"
	"go.uber.org/zap"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	ClearState(chatID int64)
	GetState(chatID int64) UserState
	SetState(chatID int64, state UserState)
	SetData(chatID int64, key string, value interface{})
	GetData(chatID int64, key string) (interface{}, bool)
	GetAllData(chatID int64) map[string]interface{}
}

// SessionSource источник сессий для callback handlers
type SessionSource interface {
	Get(ctx context.Context, chatID int64) (*model.Session, error)
	Logout(ctx context.Context, chatID int64) error
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	Sessions      SessionSource
	Bookings      *service.BookingService
	Availability  *service.AvailabilityService
	Search        *service.SearchService
	Reviews       *service.ReviewService
	Notifications *service.NotificationService
	Listings      *service.ListingService
	Admin         *service.AdminService
	StateManager  StateManager
	Logger        *zap.Logger

	// Завершение регистрации живёт в command handlers, callback роутер
	// зовёт его по выбору роли кнопкой
	HandleSignupRole func(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, role string)
}
