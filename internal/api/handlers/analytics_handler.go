package handlers

import (
	"adrs/internal/dto"
	"adrs/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	decisions *service.DecisionService
	logger    *zap.Logger
}

func NewAnalyticsHandler(decisions *service.DecisionService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		decisions: decisions,
		logger:    logger,
	}
}

// GetAnalytics returns the aggregate risk snapshot: intent distribution,
// confidence trend, low-confidence anomalies, and per-version drift.
func (h *AnalyticsHandler) GetAnalytics(c *fiber.Ctx) error {
	analytics, err := h.decisions.GetAnalytics(c.Context())
	if err != nil {
		h.logger.Error("Failed to compute analytics", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute analytics",
		})
	}
	return c.JSON(dto.ToAnalyticsResponse(analytics))
}
