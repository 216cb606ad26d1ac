package domain

import (
	"time"

	"github.com/google/uuid"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// CanTransitionTo: pending items can be approved or rejected; both outcomes
// are terminal.
func (s ApprovalStatus) CanTransitionTo(next ApprovalStatus) bool {
	if s != ApprovalPending {
		return false
	}
	return next == ApprovalApproved || next == ApprovalRejected
}

type QuoteStatus string

const (
	QuotePending  QuoteStatus = "pending"
	QuoteApproved QuoteStatus = "approved"
	QuoteRejected QuoteStatus = "rejected"
	QuotePartial  QuoteStatus = "partial" // mixed outcome after every item is reviewed
)

// QuoteRequest is an advertiser's batched cart submission awaiting admin
// review. Item pricing is snapshotted at submission time so later inventory
// edits do not change a quote under review.
type QuoteRequest struct {
	ID        uuid.UUID   `json:"id"`
	UserID    int         `json:"user_id"`
	Subtotal  float64     `json:"subtotal"`
	Tax       float64     `json:"tax"`
	Total     float64     `json:"total"`
	Status    QuoteStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Items     []QuoteItem `json:"items"`
}

type QuoteItem struct {
	ID             uuid.UUID      `json:"id"`
	QuoteRequestID uuid.UUID      `json:"quote_request_id"`
	AdSpaceID      int            `json:"ad_space_id"`
	Title          string         `json:"title"`         // snapshot
	PricePerDay    float64        `json:"price_per_day"` // snapshot
	StartDate      time.Time      `json:"start_date"`
	EndDate        time.Time      `json:"end_date"`
	Quantity       int            `json:"quantity"`
	Amount         float64        `json:"amount"`
	ApprovalStatus ApprovalStatus `json:"approval_status"`
}

type QuoteItemDTO struct {
	AdSpaceID int    `json:"ad_space_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate   string `json:"end_date" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type SubmitQuoteDTO struct {
	Items []QuoteItemDTO `json:"items" binding:"required,min=1,dive"`
}

type ReviewQuoteItemDTO struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
}
