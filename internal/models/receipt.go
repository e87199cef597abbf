package models

import (
	"time"

	"github.com/google/uuid"
)

type Intent string

const (
	IntentInformationQuery   Intent = "INFORMATION_QUERY"
	IntentGeneralInteraction Intent = "GENERAL_INTERACTION"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Verdict is a reviewer's terminal decision. It is deliberately a separate
// type from Status: a verdict can never be PENDING.
type Verdict string

const (
	VerdictApproved Verdict = "APPROVED"
	VerdictRejected Verdict = "REJECTED"
)

// StatusFilter selects receipts by status when listing. FilterAll is a
// sentinel meaning "no filter" and is not itself a valid Status.
type StatusFilter string

const FilterAll StatusFilter = "ALL"

// Review holds the provenance of a human verdict. A receipt carries a
// review record iff its status has left PENDING.
type Review struct {
	Reviewer   string    `json:"reviewer"`
	Notes      string    `json:"notes"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

// Receipt is the audit record of one simulated decision. Every field except
// Status and Review is write-once, set by the factory at creation.
type Receipt struct {
	ID         uuid.UUID         `json:"id"`
	CreatedAt  time.Time         `json:"created_at"`
	UserInput  string            `json:"user_input"`
	Intent     Intent            `json:"intent"`
	AIOutput   string            `json:"ai_output"`
	Reasoning  string            `json:"reasoning"`
	Confidence float64           `json:"confidence"`
	Status     Status            `json:"status"`
	Metadata   map[string]string `json:"metadata"`
	Review     *Review           `json:"review,omitempty"`
}

// Status returns the verdict as the receipt status it resolves to.
func (v Verdict) Status() Status {
	return Status(v)
}

func (v Verdict) Valid() bool {
	return v == VerdictApproved || v == VerdictRejected
}

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

func (f StatusFilter) Valid() bool {
	return f == FilterAll || Status(f).Valid()
}
