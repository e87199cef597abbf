package service

import (
	"math"
	"sort"
	"time"

	"adrs/internal/models"
)

// Analytics aggregation is recomputed from the full receipt set on every
// request; nothing here caches or mutates state.

type TrendPoint struct {
	Timestamp  time.Time `json:"timestamp"`
	Confidence float64   `json:"confidence"`
}

type VersionDrift struct {
	Version       string  `json:"version"`
	AvgConfidence float64 `json:"avg_confidence"`
}

// GroupByIntent counts receipts per intent category.
func GroupByIntent(receipts []*models.Receipt) map[models.Intent]int {
	counts := make(map[models.Intent]int, 2)
	for _, rec := range receipts {
		counts[rec.Intent]++
	}
	return counts
}

// ConfidenceTrend orders confidence scores ascending by creation time.
// Receipts sharing a timestamp keep their input order.
func ConfidenceTrend(receipts []*models.Receipt) []TrendPoint {
	sorted := make([]*models.Receipt, len(receipts))
	copy(sorted, receipts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	trend := make([]TrendPoint, len(sorted))
	for i, rec := range sorted {
		trend[i] = TrendPoint{Timestamp: rec.CreatedAt, Confidence: rec.Confidence}
	}
	return trend
}

// LowConfidence returns receipts whose confidence falls strictly below the
// threshold.
func LowConfidence(receipts []*models.Receipt, threshold float64) []*models.Receipt {
	var anomalies []*models.Receipt
	for _, rec := range receipts {
		if rec.Confidence < threshold {
			anomalies = append(anomalies, rec)
		}
	}
	return anomalies
}

// FilterByStatus keeps receipts matching the filter. FilterAll passes
// everything through.
func FilterByStatus(receipts []*models.Receipt, filter models.StatusFilter) []*models.Receipt {
	if filter == models.FilterAll {
		return receipts
	}
	var matched []*models.Receipt
	for _, rec := range receipts {
		if rec.Status == models.Status(filter) {
			matched = append(matched, rec)
		}
	}
	return matched
}

// ConfidenceDriftByVersion averages confidence per generator version, read
// from the receipt provenance metadata. Results are sorted by version and
// averages rounded to two decimals.
func ConfidenceDriftByVersion(receipts []*models.Receipt) []VersionDrift {
	type acc struct {
		total float64
		count int
	}
	byVersion := make(map[string]*acc)
	for _, rec := range receipts {
		version := rec.Metadata["version"]
		if version == "" {
			version = "unknown"
		}
		a, ok := byVersion[version]
		if !ok {
			a = &acc{}
			byVersion[version] = a
		}
		a.total += rec.Confidence
		a.count++
	}

	drift := make([]VersionDrift, 0, len(byVersion))
	for version, a := range byVersion {
		drift = append(drift, VersionDrift{
			Version:       version,
			AvgConfidence: math.Round(a.total/float64(a.count)*100) / 100,
		})
	}
	sort.Slice(drift, func(i, j int) bool { return drift[i].Version < drift[j].Version })
	return drift
}
