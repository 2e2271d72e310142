package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"heartguard-backend/internal/config"
	"heartguard-backend/internal/database"
	"heartguard-backend/internal/handlers"
	"heartguard-backend/internal/inference"
	"heartguard-backend/internal/notify"
	"heartguard-backend/internal/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found, using environment")
	}

	cfg := config.Load()
	setupLogger(cfg.LogLevel)

	if err := database.Connect(cfg.DB); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	notifier, err := notify.NewService(context.Background(), cfg.FirebaseCredentials, database.DB)
	if err != nil {
		// Pushes stay disabled; notification rows are still written.
		slog.Warn("push notifications disabled", "error", err)
	}

	handlers.Setup(inference.NewClient(cfg.PredictorURL), notifier)

	r := gin.Default()
	routes.SetupRoutes(r)

	slog.Info("server listening", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
	slog.SetDefault(logger)
}
