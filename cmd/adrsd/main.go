package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"adrs/internal/api"
	"adrs/internal/api/handlers"
	"adrs/internal/repository"
	"adrs/internal/service"
	"adrs/pkg/config"
	"adrs/pkg/logger"
	"adrs/pkg/storage"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting AI decision receipt service")

	ctx := context.Background()
	db, err := storage.Open(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open receipt store", zap.Error(err))
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db); err != nil {
		appLogger.Fatal("Failed to migrate receipt store", zap.Error(err))
	}

	receiptRepo := repository.NewReceiptRepository(db, appLogger)

	generator := service.NewMockGenerator()
	decisionService := service.NewDecisionService(receiptRepo, generator, cfg.Analytics.LowConfidenceThreshold, appLogger)

	receiptHandler := handlers.NewReceiptHandler(decisionService, appLogger)
	analyticsHandler := handlers.NewAnalyticsHandler(decisionService, appLogger)

	app := api.SetupRouter(receiptHandler, analyticsHandler, db, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
