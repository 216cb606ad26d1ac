package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingActive    BookingStatus = "active"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// CanTransitionTo enforces the booking lifecycle:
// pending -> confirmed -> active -> completed, cancellable until completed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingActive || next == BookingCancelled
	case BookingActive:
		return next == BookingCompleted || next == BookingCancelled
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

type Booking struct {
	ID            int           `json:"id"`
	UserID        int           `json:"user_id"`
	AdSpaceID     int           `json:"ad_space_id"`
	StartDate     time.Time     `json:"start_date"`
	EndDate       time.Time     `json:"end_date"`
	TotalAmount   float64       `json:"total_amount"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	ExpiresAt     null.Time     `json:"expires_at,omitempty"` // pending bookings auto-cancel past this
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	AdSpace *AdSpace `json:"ad_space,omitempty"`
}

type BookingDTO struct {
	AdSpaceID   int     `json:"ad_space_id" binding:"required"`
	StartDate   string  `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate     string  `json:"end_date" binding:"required"`
	TotalAmount float64 `json:"total_amount"`
}

type BookingFilterDTO struct {
	UserID    *int
	AdSpaceID *int
	Status    *BookingStatus
}

type BookingStatusDTO struct {
	Status string `json:"status" binding:"required"`
}

type PaymentStatusDTO struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}
