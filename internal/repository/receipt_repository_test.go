package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"adrs/internal/models"
	"adrs/pkg/config"
	"adrs/pkg/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepository(t *testing.T) *ReceiptRepository {
	t.Helper()

	ctx := context.Background()
	db, err := storage.Open(ctx, &config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "receipts_test.db"),
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, Migrate(ctx, db))
	return NewReceiptRepository(db, zap.NewNop())
}

func pendingReceipt(input string) *models.Receipt {
	return &models.Receipt{
		ID:         uuid.New(),
		CreatedAt:  time.Now().UTC(),
		UserInput:  input,
		Intent:     models.IntentGeneralInteraction,
		AIOutput:   "This is a simulated AI response for: " + input,
		Reasoning:  "The system processed a general interaction using standard model weights and safety filters.",
		Confidence: 0.92,
		Status:     models.StatusPending,
		Metadata:   map[string]string{"model": "gpt-4-mock", "version": "1.0"},
	}
}

func TestReceiptRepository_CreateAndGetRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	rec := pendingReceipt("Hello there")
	require.NoError(t, repo.Create(ctx, rec))

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)

	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.UserInput, got.UserInput)
	assert.Equal(t, rec.Intent, got.Intent)
	assert.Equal(t, rec.AIOutput, got.AIOutput)
	assert.Equal(t, rec.Reasoning, got.Reasoning)
	assert.Equal(t, rec.Confidence, got.Confidence)
	assert.Equal(t, rec.Status, got.Status)
	assert.Equal(t, rec.Metadata, got.Metadata)
	assert.Nil(t, got.Review)
	assert.WithinDuration(t, rec.CreatedAt, got.CreatedAt, time.Second)
}

func TestReceiptRepository_CreateDuplicateID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	rec := pendingReceipt("first")
	require.NoError(t, repo.Create(ctx, rec))

	dup := pendingReceipt("second")
	dup.ID = rec.ID
	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, ErrDuplicateID)

	// The original record must be untouched.
	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.UserInput)
}

func TestReceiptRepository_GetUnknownID(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReceiptRepository_UpdateReview(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	rec := pendingReceipt("review me")
	require.NoError(t, repo.Create(ctx, rec))

	err := repo.UpdateReview(ctx, rec.ID, models.StatusApproved, "ops-reviewer", "looks correct")
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
	require.NotNil(t, got.Review)
	assert.Equal(t, "ops-reviewer", got.Review.Reviewer)
	assert.Equal(t, "looks correct", got.Review.Notes)
	assert.WithinDuration(t, time.Now().UTC(), got.Review.ReviewedAt, 5*time.Second)
}

func TestReceiptRepository_UpdateReviewTerminalGuard(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	rec := pendingReceipt("review once")
	require.NoError(t, repo.Create(ctx, rec))
	require.NoError(t, repo.UpdateReview(ctx, rec.ID, models.StatusApproved, "ops-reviewer", "ok"))

	err := repo.UpdateReview(ctx, rec.ID, models.StatusRejected, "other-reviewer", "changed my mind")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// First verdict must survive.
	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
	assert.Equal(t, "ops-reviewer", got.Review.Reviewer)
}

func TestReceiptRepository_UpdateReviewUnknownID(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.UpdateReview(context.Background(), uuid.New(), models.StatusApproved, "ops-reviewer", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReceiptRepository_ListAll(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, pendingReceipt("input")))
	}

	receipts, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, receipts, 3)
}

func TestReceiptRepository_ListRecent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		rec := pendingReceipt("input")
		rec.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, rec))
		ids = append(ids, rec.ID)
	}

	recent, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, ids[2], recent[0].ID)
	assert.Equal(t, ids[1], recent[1].ID)
}
