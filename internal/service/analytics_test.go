package service

import (
	"testing"
	"time"

	"adrs/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeReceipt(createdAt time.Time, confidence float64, intent models.Intent, status models.Status) *models.Receipt {
	return &models.Receipt{
		ID:         uuid.New(),
		CreatedAt:  createdAt,
		UserInput:  "input",
		Intent:     intent,
		Confidence: confidence,
		Status:     status,
		Metadata:   map[string]string{"model": "gpt-4-mock", "version": "1.0"},
	}
}

func TestGroupByIntent(t *testing.T) {
	now := time.Now()
	receipts := []*models.Receipt{
		makeReceipt(now, 0.85, models.IntentInformationQuery, models.StatusPending),
		makeReceipt(now, 0.85, models.IntentInformationQuery, models.StatusPending),
		makeReceipt(now, 0.92, models.IntentGeneralInteraction, models.StatusPending),
	}

	counts := GroupByIntent(receipts)

	assert.Equal(t, 2, counts[models.IntentInformationQuery])
	assert.Equal(t, 1, counts[models.IntentGeneralInteraction])
	assert.Len(t, counts, 2)
}

func TestConfidenceTrend_OrdersByTimestamp(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	// Deliberately out of creation order.
	receipts := []*models.Receipt{
		makeReceipt(base.Add(2*time.Hour), 0.3, models.IntentGeneralInteraction, models.StatusPending),
		makeReceipt(base, 0.9, models.IntentInformationQuery, models.StatusPending),
		makeReceipt(base.Add(time.Hour), 0.5, models.IntentGeneralInteraction, models.StatusPending),
	}

	trend := ConfidenceTrend(receipts)

	require.Len(t, trend, 3)
	for i := 1; i < len(trend); i++ {
		assert.False(t, trend[i].Timestamp.Before(trend[i-1].Timestamp),
			"trend must be non-decreasing in timestamp")
	}
	assert.Equal(t, []float64{0.9, 0.5, 0.3}, []float64{trend[0].Confidence, trend[1].Confidence, trend[2].Confidence})
}

func TestConfidenceTrend_StableForTies(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	receipts := []*models.Receipt{
		makeReceipt(ts, 0.1, models.IntentGeneralInteraction, models.StatusPending),
		makeReceipt(ts, 0.2, models.IntentGeneralInteraction, models.StatusPending),
		makeReceipt(ts, 0.3, models.IntentGeneralInteraction, models.StatusPending),
	}

	trend := ConfidenceTrend(receipts)

	require.Len(t, trend, 3)
	assert.Equal(t, 0.1, trend[0].Confidence)
	assert.Equal(t, 0.2, trend[1].Confidence)
	assert.Equal(t, 0.3, trend[2].Confidence)
}

func TestLowConfidence_StrictThreshold(t *testing.T) {
	now := time.Now()
	confidences := []float64{0.9, 0.5, 0.59, 0.6, 0.61}
	receipts := make([]*models.Receipt, len(confidences))
	for i, c := range confidences {
		receipts[i] = makeReceipt(now, c, models.IntentGeneralInteraction, models.StatusPending)
	}

	anomalies := LowConfidence(receipts, 0.6)

	require.Len(t, anomalies, 2)
	assert.Equal(t, 0.5, anomalies[0].Confidence)
	assert.Equal(t, 0.59, anomalies[1].Confidence)
}

func TestLowConfidence_Empty(t *testing.T) {
	assert.Empty(t, LowConfidence(nil, 0.6))
}

func TestFilterByStatus(t *testing.T) {
	now := time.Now()
	rejected := makeReceipt(now, 0.9, models.IntentInformationQuery, models.StatusRejected)
	receipts := []*models.Receipt{
		makeReceipt(now, 0.9, models.IntentInformationQuery, models.StatusPending),
		rejected,
		makeReceipt(now, 0.9, models.IntentInformationQuery, models.StatusApproved),
	}

	onlyRejected := FilterByStatus(receipts, models.StatusFilter(models.StatusRejected))
	require.Len(t, onlyRejected, 1)
	assert.Equal(t, rejected.ID, onlyRejected[0].ID)

	all := FilterByStatus(receipts, models.FilterAll)
	assert.ElementsMatch(t, receipts, all)
}

func TestConfidenceDriftByVersion(t *testing.T) {
	now := time.Now()
	v1a := makeReceipt(now, 0.8, models.IntentInformationQuery, models.StatusPending)
	v1b := makeReceipt(now, 0.9, models.IntentInformationQuery, models.StatusPending)
	v2 := makeReceipt(now, 0.5, models.IntentGeneralInteraction, models.StatusPending)
	v2.Metadata["version"] = "2.0"

	drift := ConfidenceDriftByVersion([]*models.Receipt{v1a, v1b, v2})

	require.Len(t, drift, 2)
	assert.Equal(t, VersionDrift{Version: "1.0", AvgConfidence: 0.85}, drift[0])
	assert.Equal(t, VersionDrift{Version: "2.0", AvgConfidence: 0.5}, drift[1])
}
