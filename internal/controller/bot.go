package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/quickserve/quickserve_bot/internal/api"
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks"
	"github.com/quickserve/quickserve_bot/internal/controller/handlers"
	"github.com/quickserve/quickserve_bot/internal/controller/state"
	"github.com/quickserve/quickserve_bot/internal/service"
	"github.com/quickserve/quickserve_bot/internal/session"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	client *api.Client,
	sessions *session.Store,
	bookings *service.BookingService,
	availability *service.AvailabilityService,
	search *service.SearchService,
	reviews *service.ReviewService,
	notifications *service.NotificationService,
	listings *service.ListingService,
	admin *service.AdminService,
	logger *zap.Logger,
) *BotController {
	// Создаём менеджер состояний
	stateManager := state.NewManager()

	// Создаём обработчики команд
	cmdHandlers := handlers.NewHandlers(
		client,
		sessions,
		bookings,
		availability,
		search,
		reviews,
		notifications,
		listings,
		admin,
		stateManager,
		logger,
	)

	// Создаём адаптер для callback handlers
	stateAdapter := state.NewAdapter(stateManager)

	// Создаём callback handler с зависимостями
	callbackHandler := callbacks.NewHandler(
		sessions,
		bookings,
		availability,
		search,
		reviews,
		notifications,
		listings,
		admin,
		stateAdapter,
		logger,
		cmdHandlers.HandleSignupRole,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Регистрируем команды
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/login", bot.MatchTypeExact, c.handlers.HandleLogin)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/signup", bot.MatchTypeExact, c.handlers.HandleSignup)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/logout", bot.MatchTypeExact, c.handlers.HandleLogout)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/notifications", bot.MatchTypeExact, c.handlers.HandleNotifications)

	// Команды для клиентов
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/search", bot.MatchTypeExact, c.handlers.HandleSearch)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/location", bot.MatchTypeExact, c.handlers.HandleLocation)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mybookings", bot.MatchTypeExact, c.handlers.HandleMyBookings)

	// Команды для провайдеров
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/orders", bot.MatchTypeExact, c.handlers.HandleOrders)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/myslots", bot.MatchTypeExact, c.handlers.HandleMySlots)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mylistings", bot.MatchTypeExact, c.handlers.HandleMyListings)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/newlisting", bot.MatchTypeExact, c.handlers.HandleNewListing)

	// Команды для администраторов
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/admin", bot.MatchTypeExact, c.handlers.HandleAdmin)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "login", Description: "🔐 Войти в аккаунт"},
		{Command: "signup", Description: "📝 Зарегистрироваться"},
		{Command: "search", Description: "🔍 Найти услуги рядом"},
		{Command: "location", Description: "📍 Указать свою локацию"},
		{Command: "mybookings", Description: "📅 Мои бронирования"},
		{Command: "orders", Description: "📦 Заказы (провайдер)"},
		{Command: "myslots", Description: "🗓 Рабочие слоты (провайдер)"},
		{Command: "mylistings", Description: "🛠 Мои объявления (провайдер)"},
		{Command: "newlisting", Description: "➕ Новое объявление (провайдер)"},
		{Command: "notifications", Description: "🔔 Уведомления"},
		{Command: "logout", Description: "🚪 Выйти"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// NotifyUnread присылает пользователю сообщение о новых уведомлениях.
// Вызывается из горутины поллера.
func (c *BotController) NotifyUnread(ctx context.Context) func(chatID int64, unread int) {
	return func(chatID int64, unread int) {
		_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "🔔 У вас новые уведомления! Посмотреть: /notifications",
		})
		if err != nil {
			c.logger.Warn("Failed to send unread notice", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
