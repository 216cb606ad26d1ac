package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/guregu/null.v4"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
	"github.com/srivastan1999/elfsod-2-sub000/internal/repository"
)

var ErrInvalidTransition = errors.New("invalid status transition")

const expiryCheckInterval = time.Minute

type BookingService struct {
	bookingRepo repository.BookingRepository
	adRepo      repository.AdSpaceRepository
	broadcaster EventBroadcaster
	logger      *zap.Logger
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	adRepo repository.AdSpaceRepository,
	broadcaster EventBroadcaster,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		adRepo:      adRepo,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Create opens a direct booking (without going through a quote request). The
// booking starts pending with a payment hold; unpaid bookings are cancelled
// by the expiry worker.
func (s *BookingService) Create(ctx context.Context, userID int, dto domain.BookingDTO) (*domain.Booking, error) {
	start, end, err := parseDateRange(dto.StartDate, dto.EndDate)
	if err != nil {
		return nil, err
	}

	space, err := s.adRepo.FindByID(ctx, dto.AdSpaceID)
	if err != nil {
		return nil, err
	}
	if space.AvailabilityStatus != domain.SpaceAvailable {
		return nil, fmt.Errorf("%w: ad space '%s' is not available", ErrValidation, space.Title)
	}

	total := dto.TotalAmount
	if total <= 0 {
		total = space.PricePerDay * float64(bookingDays(start, end))
	}

	booking := &domain.Booking{
		UserID:        userID,
		AdSpaceID:     space.ID,
		StartDate:     start,
		EndDate:       end,
		TotalAmount:   total,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
		ExpiresAt:     null.TimeFrom(time.Now().Add(bookingHoldWindow)),
	}
	return s.bookingRepo.Create(ctx, booking)
}

func (s *BookingService) GetByID(ctx context.Context, id int) (*domain.Booking, error) {
	return s.bookingRepo.FindByID(ctx, id)
}

func (s *BookingService) Find(ctx context.Context, filter domain.BookingFilterDTO) ([]domain.Booking, error) {
	return s.bookingRepo.Find(ctx, filter)
}

// UpdateStatus moves a booking through its lifecycle, rejecting transitions
// the state machine does not allow.
func (s *BookingService) UpdateStatus(ctx context.Context, id int, next domain.BookingStatus) (*domain.Booking, error) {
	switch next {
	case domain.BookingPending, domain.BookingConfirmed, domain.BookingActive,
		domain.BookingCompleted, domain.BookingCancelled:
	default:
		return nil, fmt.Errorf("%w: unknown booking status '%s'", ErrValidation, next)
	}

	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, next)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	booking.Status = next

	s.broadcast("booking.status_changed", booking)
	return booking, nil
}

func (s *BookingService) UpdatePaymentStatus(ctx context.Context, id int, next domain.PaymentStatus) (*domain.Booking, error) {
	switch next {
	case domain.PaymentPending, domain.PaymentPaid, domain.PaymentRefunded:
	default:
		return nil, fmt.Errorf("%w: unknown payment status '%s'", ErrValidation, next)
	}

	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.bookingRepo.UpdatePaymentStatus(ctx, id, next); err != nil {
		return nil, err
	}
	booking.PaymentStatus = next
	return booking, nil
}

// RunExpiryWorker cancels pending bookings whose payment hold has lapsed.
// It blocks until ctx is cancelled; run it in its own goroutine.
func (s *BookingService) RunExpiryWorker(ctx context.Context) {
	ticker := time.NewTicker(expiryCheckInterval)
	defer ticker.Stop()

	s.logger.Info("booking expiry worker started", zap.Duration("interval", expiryCheckInterval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("booking expiry worker stopped")
			return
		case <-ticker.C:
			s.expireOverdue(ctx)
		}
	}
}

func (s *BookingService) expireOverdue(ctx context.Context) {
	ids, err := s.bookingRepo.FindExpiredPending(ctx)
	if err != nil {
		s.logger.Error("finding expired bookings", zap.Error(err))
		return
	}
	for _, id := range ids {
		if err := s.bookingRepo.UpdateStatus(ctx, id, domain.BookingCancelled); err != nil {
			s.logger.Error("cancelling expired booking", zap.Int("booking_id", id), zap.Error(err))
			continue
		}
		s.broadcast("booking.status_changed", map[string]interface{}{
			"id":     id,
			"status": domain.BookingCancelled,
			"reason": "payment hold expired",
		})
	}
	if len(ids) > 0 {
		s.logger.Info("expired pending bookings cancelled", zap.Int("count", len(ids)))
	}
}

func (s *BookingService) broadcast(eventType string, data interface{}) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.BroadcastEvent(domain.AdminEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	})
}
