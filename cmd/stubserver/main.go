// Stubserver поднимает in-memory бэкенд QuickServe для локальной
// разработки бота. Данные живут до перезапуска процесса.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/quickserve/quickserve_bot/internal/app"
	"github.com/quickserve/quickserve_bot/internal/stub"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	}

	env := os.Getenv("ENV")
	if env == "" {
		env = "development"
	}

	logger := app.NewLogger(env)
	defer logger.Sync()

	secret := os.Getenv("STUB_JWT_SECRET")
	if secret == "" {
		secret = "quickserve-dev-secret"
	}

	addr := os.Getenv("STUB_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	server := stub.NewServer(secret, logger)

	logger.Info("Starting QuickServe stub backend",
		zap.String("environment", env),
		zap.String("addr", addr))

	if err := server.Run(addr); err != nil {
		logger.Fatal("Stub backend stopped with error", zap.Error(err))
	}
}
