// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// UserRepository mocks repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func NewUserRepository(t testingT) *UserRepository {
	m := &UserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ret := _m.Called(ctx, user)
	var r0 *domain.User
	if rf, ok := ret.Get(0).(func(context.Context, *domain.User) *domain.User); ok {
		r0 = rf(ctx, user)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.User)
	}
	return r0, ret.Error(1)
}

func (_m *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ret := _m.Called(ctx, username)
	var r0 *domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.User)
	}
	return r0, ret.Error(1)
}

func (_m *UserRepository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.User)
	}
	return r0, ret.Error(1)
}

// AdSpaceRepository mocks repository.AdSpaceRepository.
type AdSpaceRepository struct {
	mock.Mock
}

func NewAdSpaceRepository(t testingT) *AdSpaceRepository {
	m := &AdSpaceRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *AdSpaceRepository) Create(ctx context.Context, space *domain.AdSpace) (*domain.AdSpace, error) {
	ret := _m.Called(ctx, space)
	var r0 *domain.AdSpace
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.AdSpace)
	}
	return r0, ret.Error(1)
}

func (_m *AdSpaceRepository) FindByID(ctx context.Context, id int) (*domain.AdSpace, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.AdSpace
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.AdSpace)
	}
	return r0, ret.Error(1)
}

func (_m *AdSpaceRepository) Find(ctx context.Context, filter domain.AdSpaceFilterDTO) ([]domain.AdSpace, error) {
	ret := _m.Called(ctx, filter)
	var r0 []domain.AdSpace
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.AdSpace)
	}
	return r0, ret.Error(1)
}

func (_m *AdSpaceRepository) Update(ctx context.Context, space *domain.AdSpace) (*domain.AdSpace, error) {
	ret := _m.Called(ctx, space)
	var r0 *domain.AdSpace
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.AdSpace)
	}
	return r0, ret.Error(1)
}

func (_m *AdSpaceRepository) Delete(ctx context.Context, id int) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *AdSpaceRepository) FindForCategorization(ctx context.Context, onlyUnmatched bool) ([]domain.AdSpace, error) {
	ret := _m.Called(ctx, onlyUnmatched)
	var r0 []domain.AdSpace
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.AdSpace)
	}
	return r0, ret.Error(1)
}

func (_m *AdSpaceRepository) AssignCategory(ctx context.Context, id int, categoryID int) error {
	ret := _m.Called(ctx, id, categoryID)
	return ret.Error(0)
}

// CategoryRepository mocks repository.CategoryRepository.
type CategoryRepository struct {
	mock.Mock
}

func NewCategoryRepository(t testingT) *CategoryRepository {
	m := &CategoryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	ret := _m.Called(ctx, category)
	var r0 *domain.Category
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Category)
	}
	return r0, ret.Error(1)
}

func (_m *CategoryRepository) FindByID(ctx context.Context, id int) (*domain.Category, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.Category
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Category)
	}
	return r0, ret.Error(1)
}

func (_m *CategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	ret := _m.Called(ctx)
	var r0 []domain.Category
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Category)
	}
	return r0, ret.Error(1)
}

func (_m *CategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	ret := _m.Called(ctx, name)
	var r0 *domain.Category
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Category)
	}
	return r0, ret.Error(1)
}

func (_m *CategoryRepository) FindChildren(ctx context.Context, parentID int) ([]domain.Category, error) {
	ret := _m.Called(ctx, parentID)
	var r0 []domain.Category
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Category)
	}
	return r0, ret.Error(1)
}

func (_m *CategoryRepository) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	ret := _m.Called(ctx, category)
	var r0 *domain.Category
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Category)
	}
	return r0, ret.Error(1)
}

func (_m *CategoryRepository) Delete(ctx context.Context, id int) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// BookingRepository mocks repository.BookingRepository.
type BookingRepository struct {
	mock.Mock
}

func NewBookingRepository(t testingT) *BookingRepository {
	m := &BookingRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	ret := _m.Called(ctx, booking)
	var r0 *domain.Booking
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Booking)
	}
	return r0, ret.Error(1)
}

func (_m *BookingRepository) FindByID(ctx context.Context, id int) (*domain.Booking, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.Booking
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Booking)
	}
	return r0, ret.Error(1)
}

func (_m *BookingRepository) Find(ctx context.Context, filter domain.BookingFilterDTO) ([]domain.Booking, error) {
	ret := _m.Called(ctx, filter)
	var r0 []domain.Booking
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Booking)
	}
	return r0, ret.Error(1)
}

func (_m *BookingRepository) UpdateStatus(ctx context.Context, id int, status domain.BookingStatus) error {
	ret := _m.Called(ctx, id, status)
	return ret.Error(0)
}

func (_m *BookingRepository) UpdatePaymentStatus(ctx context.Context, id int, status domain.PaymentStatus) error {
	ret := _m.Called(ctx, id, status)
	return ret.Error(0)
}

func (_m *BookingRepository) FindExpiredPending(ctx context.Context) ([]int, error) {
	ret := _m.Called(ctx)
	var r0 []int
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]int)
	}
	return r0, ret.Error(1)
}

// QuoteRepository mocks repository.QuoteRepository.
type QuoteRepository struct {
	mock.Mock
}

func NewQuoteRepository(t testingT) *QuoteRepository {
	m := &QuoteRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *QuoteRepository) Create(ctx context.Context, quote *domain.QuoteRequest) (*domain.QuoteRequest, error) {
	ret := _m.Called(ctx, quote)
	var r0 *domain.QuoteRequest
	if rf, ok := ret.Get(0).(func(context.Context, *domain.QuoteRequest) *domain.QuoteRequest); ok {
		r0 = rf(ctx, quote)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.QuoteRequest)
	}
	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, *domain.QuoteRequest) error); ok {
		r1 = rf(ctx, quote)
	} else {
		r1 = ret.Error(1)
	}
	return r0, r1
}

func (_m *QuoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.QuoteRequest, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.QuoteRequest
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.QuoteRequest)
	}
	return r0, ret.Error(1)
}

func (_m *QuoteRepository) FindByUser(ctx context.Context, userID int) ([]domain.QuoteRequest, error) {
	ret := _m.Called(ctx, userID)
	var r0 []domain.QuoteRequest
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.QuoteRequest)
	}
	return r0, ret.Error(1)
}

func (_m *QuoteRepository) FindAll(ctx context.Context) ([]domain.QuoteRequest, error) {
	ret := _m.Called(ctx)
	var r0 []domain.QuoteRequest
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.QuoteRequest)
	}
	return r0, ret.Error(1)
}

func (_m *QuoteRepository) FindItem(ctx context.Context, itemID uuid.UUID) (*domain.QuoteItem, error) {
	ret := _m.Called(ctx, itemID)
	var r0 *domain.QuoteItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.QuoteItem)
	}
	return r0, ret.Error(1)
}

func (_m *QuoteRepository) UpdateItemStatus(ctx context.Context, itemID uuid.UUID, status domain.ApprovalStatus) error {
	ret := _m.Called(ctx, itemID, status)
	return ret.Error(0)
}

func (_m *QuoteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.QuoteStatus) error {
	ret := _m.Called(ctx, id, status)
	return ret.Error(0)
}

func (_m *QuoteRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	ret := _m.Called(ctx, itemID)
	return ret.Error(0)
}
