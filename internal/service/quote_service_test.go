package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
	"github.com/srivastan1999/elfsod-2-sub000/internal/repository/mocks"
)

type recordingBroadcaster struct {
	events []domain.AdminEvent
}

func (r *recordingBroadcaster) BroadcastEvent(event domain.AdminEvent) {
	r.events = append(r.events, event)
}

func newQuoteService(t *testing.T) (*QuoteService, *mocks.QuoteRepository, *mocks.AdSpaceRepository, *mocks.BookingRepository, *recordingBroadcaster) {
	quoteRepo := mocks.NewQuoteRepository(t)
	adRepo := mocks.NewAdSpaceRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	broadcaster := &recordingBroadcaster{}
	svc := NewQuoteService(quoteRepo, adRepo, bookingRepo, broadcaster, 0.18, zap.NewNop())
	return svc, quoteRepo, adRepo, bookingRepo, broadcaster
}

func TestSubmit_SnapshotsAndTotals(t *testing.T) {
	svc, quoteRepo, adRepo, _, broadcaster := newQuoteService(t)

	adRepo.On("FindByID", mock.Anything, 1).Return(&domain.AdSpace{
		ID: 1, Title: "Marine Drive Billboard", PricePerDay: 1000,
		AvailabilityStatus: domain.SpaceAvailable,
	}, nil)
	adRepo.On("FindByID", mock.Anything, 2).Return(&domain.AdSpace{
		ID: 2, Title: "Metro Pillar Wrap", PricePerDay: 200,
		AvailabilityStatus: domain.SpaceAvailable,
	}, nil)
	quoteRepo.On("Create", mock.Anything, mock.Anything).Return(
		func(_ context.Context, q *domain.QuoteRequest) *domain.QuoteRequest { return q },
		func(_ context.Context, _ *domain.QuoteRequest) error { return nil },
	)

	dto := domain.SubmitQuoteDTO{Items: []domain.QuoteItemDTO{
		{AdSpaceID: 1, StartDate: "2026-03-01", EndDate: "2026-03-11"},              // 10 days, qty 1
		{AdSpaceID: 2, StartDate: "2026-03-01", EndDate: "2026-03-06", Quantity: 3}, // 5 days, qty 3
	}}
	quote, err := svc.Submit(context.Background(), 42, dto)

	assert.NoError(t, err)
	assert.Equal(t, 42, quote.UserID)
	assert.Equal(t, domain.QuotePending, quote.Status)
	assert.Len(t, quote.Items, 2)

	// Snapshots come from the ad space, not the request.
	assert.Equal(t, "Marine Drive Billboard", quote.Items[0].Title)
	assert.InDelta(t, 1000.0, quote.Items[0].PricePerDay, 1e-9)
	assert.Equal(t, 1, quote.Items[0].Quantity)
	assert.InDelta(t, 10000.0, quote.Items[0].Amount, 1e-9)
	assert.InDelta(t, 3000.0, quote.Items[1].Amount, 1e-9)

	// subtotal 13000, tax 18%, total.
	assert.InDelta(t, 13000.0, quote.Subtotal, 1e-9)
	assert.InDelta(t, 2340.0, quote.Tax, 1e-9)
	assert.InDelta(t, 15340.0, quote.Total, 1e-9)

	assert.Len(t, broadcaster.events, 1)
	assert.Equal(t, "quote_request.submitted", broadcaster.events[0].Type)
}

func TestSubmit_UnavailableSpaceRejected(t *testing.T) {
	svc, _, adRepo, _, _ := newQuoteService(t)

	adRepo.On("FindByID", mock.Anything, 1).Return(&domain.AdSpace{
		ID: 1, Title: "Booked Billboard", PricePerDay: 1000,
		AvailabilityStatus: domain.SpaceBooked,
	}, nil)

	_, err := svc.Submit(context.Background(), 42, domain.SubmitQuoteDTO{Items: []domain.QuoteItemDTO{
		{AdSpaceID: 1, StartDate: "2026-03-01", EndDate: "2026-03-11"},
	}})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestSubmit_InvalidDateRangeRejected(t *testing.T) {
	svc, _, _, _, _ := newQuoteService(t)

	_, err := svc.Submit(context.Background(), 42, domain.SubmitQuoteDTO{Items: []domain.QuoteItemDTO{
		{AdSpaceID: 1, StartDate: "2026-03-11", EndDate: "2026-03-01"},
	}})

	assert.ErrorIs(t, err, ErrValidation)
}

func reviewFixture(itemStatus domain.ApprovalStatus, otherStatus domain.ApprovalStatus) (domain.QuoteItem, *domain.QuoteRequest) {
	requestID := uuid.New()
	item := domain.QuoteItem{
		ID:             uuid.New(),
		QuoteRequestID: requestID,
		AdSpaceID:      1,
		Title:          "Marine Drive Billboard",
		PricePerDay:    1000,
		StartDate:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		Quantity:       1,
		Amount:         10000,
		ApprovalStatus: itemStatus,
	}
	other := domain.QuoteItem{
		ID:             uuid.New(),
		QuoteRequestID: requestID,
		ApprovalStatus: otherStatus,
	}
	request := &domain.QuoteRequest{
		ID:     requestID,
		UserID: 42,
		Status: domain.QuotePending,
		Items:  []domain.QuoteItem{item, other},
	}
	return item, request
}

func TestReviewItem_ApprovalCreatesPendingBooking(t *testing.T) {
	svc, quoteRepo, _, bookingRepo, broadcaster := newQuoteService(t)

	item, request := reviewFixture(domain.ApprovalPending, domain.ApprovalPending)
	// The reloaded request reflects the decision.
	request.Items[0].ApprovalStatus = domain.ApprovalApproved

	quoteRepo.On("FindItem", mock.Anything, item.ID).Return(&item, nil)
	quoteRepo.On("UpdateItemStatus", mock.Anything, item.ID, domain.ApprovalApproved).Return(nil)
	quoteRepo.On("FindByID", mock.Anything, request.ID).Return(request, nil)
	bookingRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.UserID == 42 &&
			b.AdSpaceID == 1 &&
			b.Status == domain.BookingPending &&
			b.PaymentStatus == domain.PaymentPending &&
			b.ExpiresAt.Valid
	})).Return(&domain.Booking{ID: 1}, nil)

	updated, err := svc.ReviewItem(context.Background(), item.ID, domain.ApprovalApproved)

	assert.NoError(t, err)
	// One item still pending, so the request stays pending.
	assert.Equal(t, domain.QuotePending, updated.Status)
	assert.Len(t, broadcaster.events, 1)
	assert.Equal(t, "quote_item.reviewed", broadcaster.events[0].Type)
}

func TestReviewItem_LastDecisionDerivesRequestStatus(t *testing.T) {
	cases := []struct {
		name        string
		decision    domain.ApprovalStatus
		otherStatus domain.ApprovalStatus
		want        domain.QuoteStatus
	}{
		{"all approved", domain.ApprovalApproved, domain.ApprovalApproved, domain.QuoteApproved},
		{"all rejected", domain.ApprovalRejected, domain.ApprovalRejected, domain.QuoteRejected},
		{"mixed outcome", domain.ApprovalRejected, domain.ApprovalApproved, domain.QuotePartial},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, quoteRepo, _, bookingRepo, _ := newQuoteService(t)

			item, request := reviewFixture(domain.ApprovalPending, tc.otherStatus)
			request.Items[0].ApprovalStatus = tc.decision

			quoteRepo.On("FindItem", mock.Anything, item.ID).Return(&item, nil)
			quoteRepo.On("UpdateItemStatus", mock.Anything, item.ID, tc.decision).Return(nil)
			quoteRepo.On("FindByID", mock.Anything, request.ID).Return(request, nil)
			quoteRepo.On("UpdateStatus", mock.Anything, request.ID, tc.want).Return(nil)
			if tc.decision == domain.ApprovalApproved {
				bookingRepo.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{ID: 1}, nil)
			}

			updated, err := svc.ReviewItem(context.Background(), item.ID, tc.decision)

			assert.NoError(t, err)
			assert.Equal(t, tc.want, updated.Status)
		})
	}
}

func TestReviewItem_SecondReviewRejected(t *testing.T) {
	svc, quoteRepo, _, _, _ := newQuoteService(t)

	item, _ := reviewFixture(domain.ApprovalApproved, domain.ApprovalPending)
	quoteRepo.On("FindItem", mock.Anything, item.ID).Return(&item, nil)

	_, err := svc.ReviewItem(context.Background(), item.ID, domain.ApprovalRejected)

	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestDeleteItem_PendingItemRejected(t *testing.T) {
	svc, quoteRepo, _, _, _ := newQuoteService(t)

	item, request := reviewFixture(domain.ApprovalPending, domain.ApprovalPending)
	quoteRepo.On("FindItem", mock.Anything, item.ID).Return(&item, nil)
	quoteRepo.On("FindByID", mock.Anything, request.ID).Return(request, nil)

	err := svc.DeleteItem(context.Background(), item.ID, 42, false)

	assert.ErrorIs(t, err, ErrItemPending)
}

func TestDeleteItem_ReviewedItemRemovable(t *testing.T) {
	svc, quoteRepo, _, _, _ := newQuoteService(t)

	item, request := reviewFixture(domain.ApprovalRejected, domain.ApprovalPending)
	quoteRepo.On("FindItem", mock.Anything, item.ID).Return(&item, nil)
	quoteRepo.On("FindByID", mock.Anything, request.ID).Return(request, nil)
	quoteRepo.On("DeleteItem", mock.Anything, item.ID).Return(nil)

	err := svc.DeleteItem(context.Background(), item.ID, 42, false)

	assert.NoError(t, err)
}
