package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
	"github.com/srivastan1999/elfsod-2-sub000/internal/repository/mocks"
)

func newBookingService(t *testing.T) (*BookingService, *mocks.BookingRepository, *mocks.AdSpaceRepository, *recordingBroadcaster) {
	bookingRepo := mocks.NewBookingRepository(t)
	adRepo := mocks.NewAdSpaceRepository(t)
	broadcaster := &recordingBroadcaster{}
	svc := NewBookingService(bookingRepo, adRepo, broadcaster, zap.NewNop())
	return svc, bookingRepo, adRepo, broadcaster
}

func TestBookingCreate_ComputesAmountAndHold(t *testing.T) {
	svc, bookingRepo, adRepo, _ := newBookingService(t)

	adRepo.On("FindByID", mock.Anything, 1).Return(&domain.AdSpace{
		ID: 1, Title: "Marine Drive Billboard", PricePerDay: 1000,
		AvailabilityStatus: domain.SpaceAvailable,
	}, nil)
	bookingRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.UserID == 42 &&
			b.TotalAmount == 10000 && // 10 days at the day rate
			b.Status == domain.BookingPending &&
			b.PaymentStatus == domain.PaymentPending &&
			b.ExpiresAt.Valid
	})).Return(&domain.Booking{ID: 5}, nil)

	booking, err := svc.Create(context.Background(), 42, domain.BookingDTO{
		AdSpaceID: 1,
		StartDate: "2026-03-01",
		EndDate:   "2026-03-11",
	})

	assert.NoError(t, err)
	assert.Equal(t, 5, booking.ID)
}

func TestBookingCreate_UnavailableSpaceRejected(t *testing.T) {
	svc, _, adRepo, _ := newBookingService(t)

	adRepo.On("FindByID", mock.Anything, 1).Return(&domain.AdSpace{
		ID: 1, AvailabilityStatus: domain.SpaceUnavailable,
	}, nil)

	_, err := svc.Create(context.Background(), 42, domain.BookingDTO{
		AdSpaceID: 1, StartDate: "2026-03-01", EndDate: "2026-03-11",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestBookingUpdateStatus_ValidTransition(t *testing.T) {
	svc, bookingRepo, _, broadcaster := newBookingService(t)

	bookingRepo.On("FindByID", mock.Anything, 5).Return(&domain.Booking{
		ID: 5, Status: domain.BookingPending,
	}, nil)
	bookingRepo.On("UpdateStatus", mock.Anything, 5, domain.BookingConfirmed).Return(nil)

	booking, err := svc.UpdateStatus(context.Background(), 5, domain.BookingConfirmed)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, booking.Status)
	assert.Len(t, broadcaster.events, 1)
	assert.Equal(t, "booking.status_changed", broadcaster.events[0].Type)
}

func TestBookingUpdateStatus_InvalidTransition(t *testing.T) {
	svc, bookingRepo, _, _ := newBookingService(t)

	bookingRepo.On("FindByID", mock.Anything, 5).Return(&domain.Booking{
		ID: 5, Status: domain.BookingCompleted,
	}, nil)

	_, err := svc.UpdateStatus(context.Background(), 5, domain.BookingCancelled)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBookingUpdateStatus_UnknownStatus(t *testing.T) {
	svc, _, _, _ := newBookingService(t)

	_, err := svc.UpdateStatus(context.Background(), 5, domain.BookingStatus("parked"))

	assert.ErrorIs(t, err, ErrValidation)
}

func TestExpireOverdue_CancelsAndBroadcasts(t *testing.T) {
	svc, bookingRepo, _, broadcaster := newBookingService(t)

	bookingRepo.On("FindExpiredPending", mock.Anything).Return([]int{3, 8}, nil)
	bookingRepo.On("UpdateStatus", mock.Anything, 3, domain.BookingCancelled).Return(nil)
	bookingRepo.On("UpdateStatus", mock.Anything, 8, domain.BookingCancelled).Return(nil)

	svc.expireOverdue(context.Background())

	assert.Len(t, broadcaster.events, 2)
	assert.Equal(t, "booking.status_changed", broadcaster.events[0].Type)
}
