package dto

import (
	"time"

	"adrs/internal/models"
)

type SubmitDecisionRequest struct {
	Input string `json:"input" validate:"required"`
}

type ReviewRequest struct {
	Verdict string `json:"verdict" validate:"required,oneof=APPROVED REJECTED"`
	Notes   string `json:"notes"`
}

type ReviewResponse struct {
	Reviewer   string `json:"reviewer"`
	Notes      string `json:"notes"`
	ReviewedAt string `json:"reviewed_at"`
}

type ReceiptResponse struct {
	ID         string            `json:"id"`
	CreatedAt  string            `json:"created_at"`
	UserInput  string            `json:"user_input"`
	Intent     string            `json:"intent"`
	AIOutput   string            `json:"ai_output"`
	Reasoning  string            `json:"reasoning"`
	Confidence float64           `json:"confidence"`
	Status     string            `json:"status"`
	Metadata   map[string]string `json:"metadata"`
	Review     *ReviewResponse   `json:"review,omitempty"`
}

type ListReceiptsResponse struct {
	Receipts []ReceiptResponse `json:"receipts"`
	Total    int               `json:"total"`
}

func ToReceiptResponse(rec *models.Receipt) ReceiptResponse {
	resp := ReceiptResponse{
		ID:         rec.ID.String(),
		CreatedAt:  rec.CreatedAt.Format(time.RFC3339Nano),
		UserInput:  rec.UserInput,
		Intent:     string(rec.Intent),
		AIOutput:   rec.AIOutput,
		Reasoning:  rec.Reasoning,
		Confidence: rec.Confidence,
		Status:     string(rec.Status),
		Metadata:   rec.Metadata,
	}
	if rec.Review != nil {
		resp.Review = &ReviewResponse{
			Reviewer:   rec.Review.Reviewer,
			Notes:      rec.Review.Notes,
			ReviewedAt: rec.Review.ReviewedAt.Format(time.RFC3339Nano),
		}
	}
	return resp
}

func ToReceiptResponses(receipts []*models.Receipt) []ReceiptResponse {
	responses := make([]ReceiptResponse, len(receipts))
	for i, rec := range receipts {
		responses[i] = ToReceiptResponse(rec)
	}
	return responses
}
