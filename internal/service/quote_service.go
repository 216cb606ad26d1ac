package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/guregu/null.v4"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
	"github.com/srivastan1999/elfsod-2-sub000/internal/repository"
)

var ErrAlreadyReviewed = errors.New("quote item has already been reviewed")
var ErrItemPending = errors.New("quote item is pending review and cannot be removed")

// bookingHoldWindow is how long a booking created from an approved quote
// item stays reserved before the expiry worker cancels it unpaid.
const bookingHoldWindow = 48 * time.Hour

type QuoteService struct {
	quoteRepo   repository.QuoteRepository
	adRepo      repository.AdSpaceRepository
	bookingRepo repository.BookingRepository
	broadcaster EventBroadcaster
	taxRate     float64
	logger      *zap.Logger
}

func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	adRepo repository.AdSpaceRepository,
	bookingRepo repository.BookingRepository,
	broadcaster EventBroadcaster,
	taxRate float64,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		quoteRepo:   quoteRepo,
		adRepo:      adRepo,
		bookingRepo: bookingRepo,
		broadcaster: broadcaster,
		taxRate:     taxRate,
		logger:      logger,
	}
}

// Submit turns an advertiser's cart into a quote request awaiting admin
// review. Titles and day rates are snapshotted per item so later inventory
// edits never change a quote under review.
func (s *QuoteService) Submit(ctx context.Context, userID int, dto domain.SubmitQuoteDTO) (*domain.QuoteRequest, error) {
	quote := &domain.QuoteRequest{
		ID:     uuid.New(),
		UserID: userID,
		Status: domain.QuotePending,
	}

	for _, itemDTO := range dto.Items {
		start, end, err := parseDateRange(itemDTO.StartDate, itemDTO.EndDate)
		if err != nil {
			return nil, err
		}

		space, err := s.adRepo.FindByID(ctx, itemDTO.AdSpaceID)
		if err != nil {
			return nil, err
		}
		if space.AvailabilityStatus != domain.SpaceAvailable {
			return nil, fmt.Errorf("%w: ad space '%s' is not available", ErrValidation, space.Title)
		}

		quantity := itemDTO.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		days := bookingDays(start, end)
		amount := space.PricePerDay * float64(days) * float64(quantity)

		quote.Items = append(quote.Items, domain.QuoteItem{
			ID:             uuid.New(),
			QuoteRequestID: quote.ID,
			AdSpaceID:      space.ID,
			Title:          space.Title,
			PricePerDay:    space.PricePerDay,
			StartDate:      start,
			EndDate:        end,
			Quantity:       quantity,
			Amount:         amount,
			ApprovalStatus: domain.ApprovalPending,
		})
		quote.Subtotal += amount
	}

	quote.Tax = quote.Subtotal * s.taxRate
	quote.Total = quote.Subtotal + quote.Tax

	created, err := s.quoteRepo.Create(ctx, quote)
	if err != nil {
		return nil, err
	}

	s.broadcast("quote_request.submitted", created)
	return created, nil
}

func (s *QuoteService) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuoteRequest, error) {
	return s.quoteRepo.FindByID(ctx, id)
}

func (s *QuoteService) ListByUser(ctx context.Context, userID int) ([]domain.QuoteRequest, error) {
	return s.quoteRepo.FindByUser(ctx, userID)
}

func (s *QuoteService) ListAll(ctx context.Context) ([]domain.QuoteRequest, error) {
	return s.quoteRepo.FindAll(ctx)
}

// ReviewItem records an admin decision on one quote item. Approval creates a
// pending booking that holds the inventory until paid or expired. After each
// decision the parent request's status is recomputed from its items.
func (s *QuoteService) ReviewItem(ctx context.Context, itemID uuid.UUID, decision domain.ApprovalStatus) (*domain.QuoteRequest, error) {
	item, err := s.quoteRepo.FindItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.ApprovalStatus.CanTransitionTo(decision) {
		return nil, ErrAlreadyReviewed
	}

	if err := s.quoteRepo.UpdateItemStatus(ctx, itemID, decision); err != nil {
		return nil, err
	}

	request, err := s.quoteRepo.FindByID(ctx, item.QuoteRequestID)
	if err != nil {
		return nil, err
	}

	if decision == domain.ApprovalApproved {
		booking := &domain.Booking{
			UserID:        request.UserID,
			AdSpaceID:     item.AdSpaceID,
			StartDate:     item.StartDate,
			EndDate:       item.EndDate,
			TotalAmount:   item.Amount,
			Status:        domain.BookingPending,
			PaymentStatus: domain.PaymentPending,
			ExpiresAt:     null.TimeFrom(time.Now().Add(bookingHoldWindow)),
		}
		if _, err := s.bookingRepo.Create(ctx, booking); err != nil {
			return nil, fmt.Errorf("creating booking for approved quote item: %w", err)
		}
	}

	newStatus := deriveQuoteStatus(request.Items)
	if newStatus != request.Status {
		if err := s.quoteRepo.UpdateStatus(ctx, request.ID, newStatus); err != nil {
			return nil, err
		}
		request.Status = newStatus
	}

	s.broadcast("quote_item.reviewed", request)
	return request, nil
}

// DeleteItem removes a quote item, which is only allowed once the item has
// been reviewed; pending items stay visible to the reviewing admin. Unless
// the caller is an admin, items of other users' requests are reported as
// not found.
func (s *QuoteService) DeleteItem(ctx context.Context, itemID uuid.UUID, requesterID int, isAdmin bool) error {
	item, err := s.quoteRepo.FindItem(ctx, itemID)
	if err != nil {
		return err
	}
	if !isAdmin {
		request, err := s.quoteRepo.FindByID(ctx, item.QuoteRequestID)
		if err != nil {
			return err
		}
		if request.UserID != requesterID {
			return repository.ErrNotFound
		}
	}
	if item.ApprovalStatus == domain.ApprovalPending {
		return ErrItemPending
	}
	return s.quoteRepo.DeleteItem(ctx, itemID)
}

// deriveQuoteStatus folds the item decisions into the request status:
// all approved -> approved, all rejected -> rejected, mixed but fully
// reviewed -> partial, anything still pending keeps the request pending.
func deriveQuoteStatus(items []domain.QuoteItem) domain.QuoteStatus {
	approved, rejected := 0, 0
	for _, item := range items {
		switch item.ApprovalStatus {
		case domain.ApprovalApproved:
			approved++
		case domain.ApprovalRejected:
			rejected++
		default:
			return domain.QuotePending
		}
	}
	switch {
	case rejected == 0:
		return domain.QuoteApproved
	case approved == 0:
		return domain.QuoteRejected
	default:
		return domain.QuotePartial
	}
}

func (s *QuoteService) broadcast(eventType string, data interface{}) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.BroadcastEvent(domain.AdminEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	})
}

func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrValidation)
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrValidation)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date must be after start_date", ErrValidation)
	}
	return start, end, nil
}

func bookingDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return days
}
