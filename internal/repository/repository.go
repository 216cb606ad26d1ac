package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
)

var ErrNotFound = errors.New("record not found")
var ErrDuplicateEntry = errors.New("record already exists")
var ErrCacheMiss = errors.New("cache miss")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

type AdSpaceRepository interface {
	Create(ctx context.Context, space *domain.AdSpace) (*domain.AdSpace, error)
	FindByID(ctx context.Context, id int) (*domain.AdSpace, error)
	// Find applies the resolved filter in a single joined query, newest first.
	Find(ctx context.Context, filter domain.AdSpaceFilterDTO) ([]domain.AdSpace, error)
	Update(ctx context.Context, space *domain.AdSpace) (*domain.AdSpace, error)
	Delete(ctx context.Context, id int) error
	// FindForCategorization returns spaces eligible for the keyword cascade;
	// onlyUnmatched restricts it to spaces with no category yet.
	FindForCategorization(ctx context.Context, onlyUnmatched bool) ([]domain.AdSpace, error)
	AssignCategory(ctx context.Context, id int, categoryID int) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	FindByID(ctx context.Context, id int) (*domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	// FindByName matches exactly first, then falls back to a
	// case-insensitive match.
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	FindChildren(ctx context.Context, parentID int) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id int) error
}

type LocationRepository interface {
	Create(ctx context.Context, location *domain.Location) (*domain.Location, error)
	FindByID(ctx context.Context, id int) (*domain.Location, error)
	FindAll(ctx context.Context) ([]domain.Location, error)
	Update(ctx context.Context, location *domain.Location) (*domain.Location, error)
	Delete(ctx context.Context, id int) error
}

type PublisherRepository interface {
	Create(ctx context.Context, publisher *domain.Publisher) (*domain.Publisher, error)
	FindByID(ctx context.Context, id int) (*domain.Publisher, error)
	FindAll(ctx context.Context) ([]domain.Publisher, error)
	Update(ctx context.Context, publisher *domain.Publisher) (*domain.Publisher, error)
	Delete(ctx context.Context, id int) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindByID(ctx context.Context, id int) (*domain.Booking, error)
	Find(ctx context.Context, filter domain.BookingFilterDTO) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int, status domain.BookingStatus) error
	UpdatePaymentStatus(ctx context.Context, id int, status domain.PaymentStatus) error
	// FindExpiredPending returns IDs of pending bookings past their expiry.
	FindExpiredPending(ctx context.Context) ([]int, error)
}

type QuoteRepository interface {
	// Create persists the request and all of its items in one transaction.
	Create(ctx context.Context, quote *domain.QuoteRequest) (*domain.QuoteRequest, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.QuoteRequest, error)
	FindByUser(ctx context.Context, userID int) ([]domain.QuoteRequest, error)
	FindAll(ctx context.Context) ([]domain.QuoteRequest, error)
	FindItem(ctx context.Context, itemID uuid.UUID) (*domain.QuoteItem, error)
	UpdateItemStatus(ctx context.Context, itemID uuid.UUID, status domain.ApprovalStatus) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.QuoteStatus) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
}

// CategoryCache is a read-through cache for the category-children expansion
// done on every filtered listing. A miss is reported as ErrCacheMiss.
type CategoryCache interface {
	GetChildren(ctx context.Context, parentID int) ([]int, error)
	SetChildren(ctx context.Context, parentID int, childIDs []int) error
	Invalidate(ctx context.Context, parentID int) error
}
