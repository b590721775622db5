package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/glicocare/glicocare/internal/config"
	"github.com/glicocare/glicocare/internal/logger"
	"github.com/glicocare/glicocare/internal/server"
	"github.com/glicocare/glicocare/internal/services"
	"github.com/glicocare/glicocare/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warn(".env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		logger.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.Info("Starting GlicoCare...")

	store, err := newStore(cfg)
	if err != nil {
		logger.Fatalf("Failed to open storage: %v", err)
	}
	logger.Info("Storage ready", "driver", cfg.Storage.Driver)

	ctx := context.Background()

	aiService, err := services.NewAIService(ctx, cfg.GeminiAPIKey, cfg.FlashModel, cfg.ProModel)
	if err != nil {
		logger.Fatalf("Failed to create AI service: %v", err)
	}
	defer aiService.Close()

	appService := services.NewAppService(store)
	if err := appService.Load(ctx); err != nil {
		logger.Fatalf("Failed to load application state: %v", err)
	}
	logger.Info("Application state loaded",
		"has_profile", appService.HasProfile(),
		"glucose_entries", len(appService.GlucoseHistory()),
		"meal_plans", len(appService.MealPlans()))

	srv := server.New(appService, aiService)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(cfg.HTTPPort)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		logger.Info("Received signal, shutting down", "signal", sig.String())
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Errorf("Server shutdown error: %v", err)
	}
	logger.Info("Server stopped")
}

func newStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageRedis:
		return storage.NewRedis(cfg.Storage.RedisHost, cfg.Storage.RedisPort)
	case config.StorageMemory:
		return storage.NewMemory(), nil
	default:
		return storage.NewSQLite(cfg.Storage.SQLitePath)
	}
}
