package dto

import (
	"time"

	"adrs/internal/service"
)

type TrendPointResponse struct {
	Timestamp  string  `json:"timestamp"`
	Confidence float64 `json:"confidence"`
}

type VersionDriftResponse struct {
	Version       string  `json:"version"`
	AvgConfidence float64 `json:"avg_confidence"`
}

type AnalyticsResponse struct {
	ByIntent  map[string]int         `json:"by_intent"`
	Trend     []TrendPointResponse   `json:"trend"`
	Anomalies []ReceiptResponse      `json:"anomalies"`
	Drift     []VersionDriftResponse `json:"drift"`
}

func ToAnalyticsResponse(a *service.Analytics) AnalyticsResponse {
	byIntent := make(map[string]int, len(a.ByIntent))
	for intent, count := range a.ByIntent {
		byIntent[string(intent)] = count
	}

	trend := make([]TrendPointResponse, len(a.Trend))
	for i, point := range a.Trend {
		trend[i] = TrendPointResponse{
			Timestamp:  point.Timestamp.Format(time.RFC3339Nano),
			Confidence: point.Confidence,
		}
	}

	drift := make([]VersionDriftResponse, len(a.Drift))
	for i, d := range a.Drift {
		drift[i] = VersionDriftResponse{Version: d.Version, AvgConfidence: d.AvgConfidence}
	}

	return AnalyticsResponse{
		ByIntent:  byIntent,
		Trend:     trend,
		Anomalies: ToReceiptResponses(a.Anomalies),
		Drift:     drift,
	}
}
