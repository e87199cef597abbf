// Seeds the receipt store with a batch of sample decisions so the audit
// dashboard has data to render.
package main

import (
	"context"
	"log"

	"adrs/internal/repository"
	"adrs/internal/service"
	"adrs/pkg/config"
	"adrs/pkg/logger"
	"adrs/pkg/storage"

	"go.uber.org/zap"
)

var sampleInputs = []string{
	"What is the capital of France?",
	"How do I reset my password?",
	"Hello there",
	"Explain the difference between TCP and UDP",
	"Thanks for the help yesterday",
	"Why is the sky blue?",
	"Good morning",
	"What are the side effects of this medication?",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

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
	decisionService := service.NewDecisionService(receiptRepo, service.NewMockGenerator(), cfg.Analytics.LowConfidenceThreshold, appLogger)

	appLogger.Info("Seeding sample decisions", zap.Int("count", len(sampleInputs)))

	for _, input := range sampleInputs {
		receipt, err := decisionService.SubmitNewDecision(ctx, input)
		if err != nil {
			appLogger.Fatal("Failed to seed decision", zap.String("input", input), zap.Error(err))
		}
		appLogger.Info("Seeded decision",
			zap.String("receipt_id", receipt.ID.String()),
			zap.String("intent", string(receipt.Intent)),
		)
	}

	appLogger.Info("Seeding complete")
}
