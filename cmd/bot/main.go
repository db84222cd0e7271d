package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quickserve/quickserve_bot/internal/api"
	"github.com/quickserve/quickserve_bot/internal/app"
	"github.com/quickserve/quickserve_bot/internal/config"
	"github.com/quickserve/quickserve_bot/internal/controller"
	"github.com/quickserve/quickserve_bot/internal/repository"
	"github.com/quickserve/quickserve_bot/internal/service"
	"github.com/quickserve/quickserve_bot/internal/session"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting QuickServe bot",
		zap.String("environment", cfg.Environment),
		zap.String("api_base_url", cfg.APIBaseURL))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Подключаемся к базе локальных сессий
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// Применяем миграции
	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// Клиент бэкенда и сервисы
	client := api.NewClient(cfg.APIBaseURL, logger)

	sessionRepo := repository.NewSessionRepository(pool)
	sessions := session.NewStore(sessionRepo, logger)

	bookings := service.NewBookingService(client, logger)
	availability := service.NewAvailabilityService(client, logger)
	search := service.NewSearchService(client, logger)
	reviews := service.NewReviewService(client, logger)
	notifications := service.NewNotificationService(client, logger)
	listings := service.NewListingService(client, logger)
	admin := service.NewAdminService(client, logger)

	// Телеграм бот
	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(
		b,
		client,
		sessions,
		bookings,
		availability,
		search,
		reviews,
		notifications,
		listings,
		admin,
		logger,
	)

	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	// Фоновый опрос уведомлений для всех активных сессий
	poller := app.NewNotificationPoller(sessions, notifications, app.DefaultPollInterval, logger)
	poller.OnUnread = botController.NotifyUnread(ctx)
	poller.Start(ctx)
	defer poller.Stop()

	logger.Info("🚀 Bot is up")

	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot shut down gracefully")
}
