package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingPending, BookingActive, false},
		{BookingConfirmed, BookingActive, true},
		{BookingConfirmed, BookingCancelled, true},
		{BookingConfirmed, BookingCompleted, false},
		{BookingActive, BookingCompleted, true},
		{BookingActive, BookingCancelled, true},
		{BookingCompleted, BookingCancelled, false},
		{BookingCancelled, BookingPending, false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestApprovalStatusTransitions(t *testing.T) {
	assert.True(t, ApprovalPending.CanTransitionTo(ApprovalApproved))
	assert.True(t, ApprovalPending.CanTransitionTo(ApprovalRejected))

	// Both review outcomes are terminal.
	assert.False(t, ApprovalApproved.CanTransitionTo(ApprovalRejected))
	assert.False(t, ApprovalRejected.CanTransitionTo(ApprovalApproved))
	assert.False(t, ApprovalApproved.CanTransitionTo(ApprovalPending))
}

func TestDisplayTypeIsMovable(t *testing.T) {
	assert.True(t, DisplayAutoRickshaw.IsMovable())
	assert.True(t, DisplayBus.IsMovable())
	assert.True(t, DisplayCab.IsMovable())

	assert.False(t, DisplayBillboard.IsMovable())
	assert.False(t, DisplayDigitalScreen.IsMovable())
	assert.False(t, DisplayTransit.IsMovable())
}
