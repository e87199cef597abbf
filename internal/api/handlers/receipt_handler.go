package handlers

import (
	"errors"
	"strconv"

	"adrs/internal/dto"
	"adrs/internal/models"
	"adrs/internal/repository"
	"adrs/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReceiptHandler struct {
	decisions *service.DecisionService
	validate  *validator.Validate
	logger    *zap.Logger
}

func NewReceiptHandler(decisions *service.DecisionService, logger *zap.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		decisions: decisions,
		validate:  validator.New(),
		logger:    logger,
	}
}

// SubmitDecision runs a simulated inference and records its receipt.
func (h *ReceiptHandler) SubmitDecision(c *fiber.Ctx) error {
	var req dto.SubmitDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": processValidationErrors(err),
		})
	}

	receipt, err := h.decisions.SubmitNewDecision(c.Context(), req.Input)
	if err != nil {
		h.logger.Error("Failed to record decision", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to record decision",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ToReceiptResponse(receipt))
}

// ListReceipts returns receipts filtered by status. With ?limit=n the
// newest n receipts are returned instead, matching the audit table view.
func (h *ReceiptHandler) ListReceipts(c *fiber.Ctx) error {
	filter := models.StatusFilter(c.Query("status", string(models.FilterAll)))
	if !filter.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status filter",
		})
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid limit",
			})
		}
		limit = parsed
	}

	var (
		receipts []*models.Receipt
		err      error
	)
	if limit > 0 {
		receipts, err = h.decisions.ListRecent(c.Context(), limit)
		if err == nil {
			receipts = service.FilterByStatus(receipts, filter)
		}
	} else {
		receipts, err = h.decisions.ListReceipts(c.Context(), filter)
	}
	if err != nil {
		h.logger.Error("Failed to list receipts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list receipts",
		})
	}

	return c.JSON(dto.ListReceiptsResponse{
		Receipts: dto.ToReceiptResponses(receipts),
		Total:    len(receipts),
	})
}

// GetReceipt returns a single receipt by id.
func (h *ReceiptHandler) GetReceipt(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid receipt ID",
		})
	}

	receipt, err := h.decisions.GetReceipt(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Receipt not found",
			})
		}
		h.logger.Error("Failed to load receipt", zap.String("receipt_id", id.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load receipt",
		})
	}

	return c.JSON(dto.ToReceiptResponse(receipt))
}

// SubmitReview applies a reviewer verdict to a pending receipt. The
// reviewer identity comes from the X-Reviewer header; it is trusted as-is
// until an authentication collaborator exists.
func (h *ReceiptHandler) SubmitReview(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid receipt ID",
		})
	}

	reviewer := c.Get("X-Reviewer")
	if reviewer == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "X-Reviewer header is required",
		})
	}

	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": processValidationErrors(err),
		})
	}

	err = h.decisions.SubmitReview(c.Context(), id, models.Verdict(req.Verdict), req.Notes, reviewer)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidVerdict):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "Verdict must be APPROVED or REJECTED",
			})
		case errors.Is(err, repository.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Receipt not found",
			})
		case errors.Is(err, repository.ErrInvalidTransition):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Receipt has already been reviewed",
			})
		default:
			h.logger.Error("Failed to record review", zap.String("receipt_id", id.String()), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to record review",
			})
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}
