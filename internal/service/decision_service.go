package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"adrs/internal/models"
	"adrs/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidVerdict = errors.New("verdict must be APPROVED or REJECTED")
	ErrEmptyInput     = errors.New("user input is required")
)

// Analytics is the aggregate risk snapshot served to the dashboard.
type Analytics struct {
	ByIntent  map[models.Intent]int `json:"by_intent"`
	Trend     []TrendPoint          `json:"trend"`
	Anomalies []*models.Receipt     `json:"anomalies"`
	Drift     []VersionDrift        `json:"drift"`
}

// DecisionService owns the receipt lifecycle: it builds receipts from raw
// input, applies reviewer verdicts, and derives analytics over the stored
// set. All persistence goes through the receipt repository.
type DecisionService struct {
	repo      *repository.ReceiptRepository
	generator Generator
	threshold float64
	logger    *zap.Logger
}

func NewDecisionService(repo *repository.ReceiptRepository, generator Generator, lowConfidenceThreshold float64, logger *zap.Logger) *DecisionService {
	return &DecisionService{
		repo:      repo,
		generator: generator,
		threshold: lowConfidenceThreshold,
		logger:    logger,
	}
}

// SubmitNewDecision runs the full create path: classify the input, generate
// the mock decision, assemble a pending receipt, and persist it. No receipt
// is returned unless the store committed it.
func (s *DecisionService) SubmitNewDecision(ctx context.Context, input string) (*models.Receipt, error) {
	if input == "" {
		return nil, ErrEmptyInput
	}

	intent := ClassifyIntent(input)
	gen := s.generator.Generate(input, intent)

	receipt := &models.Receipt{
		ID:         uuid.New(),
		CreatedAt:  time.Now().UTC(),
		UserInput:  input,
		Intent:     intent,
		AIOutput:   gen.Output,
		Reasoning:  gen.Reasoning,
		Confidence: gen.Confidence,
		Status:     models.StatusPending,
		Metadata: map[string]string{
			"model":   s.generator.Name(),
			"version": s.generator.Version(),
		},
	}

	if err := s.repo.Create(ctx, receipt); err != nil {
		s.logger.Error("Failed to persist decision receipt",
			zap.String("receipt_id", receipt.ID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to record decision: %w", err)
	}
	return receipt, nil
}

func (s *DecisionService) GetReceipt(ctx context.Context, id uuid.UUID) (*models.Receipt, error) {
	return s.repo.GetByID(ctx, id)
}

// ListReceipts returns receipts matching the status filter, oldest first.
func (s *DecisionService) ListReceipts(ctx context.Context, filter models.StatusFilter) ([]*models.Receipt, error) {
	receipts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByStatus(receipts, filter), nil
}

// ListRecent returns the newest receipts, at most limit of them.
func (s *DecisionService) ListRecent(ctx context.Context, limit int) ([]*models.Receipt, error) {
	return s.repo.ListRecent(ctx, limit)
}

// SubmitReview applies a reviewer verdict to a pending receipt. The
// reviewer identity is supplied by the caller; this service never invents
// one. Reviewing an already-reviewed receipt fails with
// repository.ErrInvalidTransition rather than overwriting the first verdict.
func (s *DecisionService) SubmitReview(ctx context.Context, id uuid.UUID, verdict models.Verdict, notes, reviewer string) error {
	if !verdict.Valid() {
		return ErrInvalidVerdict
	}
	return s.repo.UpdateReview(ctx, id, verdict.Status(), reviewer, notes)
}

// GetAnalytics recomputes the aggregate snapshot from the full receipt set.
func (s *DecisionService) GetAnalytics(ctx context.Context) (*Analytics, error) {
	receipts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &Analytics{
		ByIntent:  GroupByIntent(receipts),
		Trend:     ConfidenceTrend(receipts),
		Anomalies: LowConfidence(receipts, s.threshold),
		Drift:     ConfidenceDriftByVersion(receipts),
	}, nil
}
