package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gopkg.in/guregu/null.v4"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
	"github.com/srivastan1999/elfsod-2-sub000/internal/repository"
	"github.com/srivastan1999/elfsod-2-sub000/internal/repository/mocks"
)

// stubCache implements repository.CategoryCache in-memory.
type stubCache struct {
	children map[int][]int
	sets     int
}

func (s *stubCache) GetChildren(_ context.Context, parentID int) ([]int, error) {
	ids, ok := s.children[parentID]
	if !ok {
		return nil, repository.ErrCacheMiss
	}
	return ids, nil
}

func (s *stubCache) SetChildren(_ context.Context, parentID int, childIDs []int) error {
	if s.children == nil {
		s.children = make(map[int][]int)
	}
	s.children[parentID] = childIDs
	s.sets++
	return nil
}

func (s *stubCache) Invalidate(_ context.Context, parentID int) error {
	delete(s.children, parentID)
	return nil
}

func newAdSpaceService(t *testing.T, cache repository.CategoryCache) (*AdSpaceService, *mocks.AdSpaceRepository, *mocks.CategoryRepository) {
	adRepo := mocks.NewAdSpaceRepository(t)
	categoryRepo := mocks.NewCategoryRepository(t)
	svc := NewAdSpaceService(adRepo, categoryRepo, nil, cache, zap.NewNop())
	return svc, adRepo, categoryRepo
}

func TestFind_DefaultsAvailabilityAndLimit(t *testing.T) {
	svc, adRepo, _ := newAdSpaceService(t, nil)

	adRepo.On("Find", mock.Anything, domain.AdSpaceFilterDTO{
		AvailabilityStatus: "available",
		Limit:              100,
	}).Return([]domain.AdSpace{}, nil)

	_, applied, err := svc.Find(context.Background(), AdSpaceQuery{})

	assert.NoError(t, err)
	assert.Equal(t, "available", applied.AvailabilityStatus)
	assert.Equal(t, 100, applied.Limit)
}

func TestFind_ExplicitCategoryIDsIncludeChildren(t *testing.T) {
	svc, adRepo, categoryRepo := newAdSpaceService(t, nil)

	categoryRepo.On("FindChildren", mock.Anything, 1).Return([]domain.Category{{ID: 4}, {ID: 5}}, nil)
	categoryRepo.On("FindChildren", mock.Anything, 2).Return([]domain.Category{}, nil)
	adRepo.On("Find", mock.Anything, mock.MatchedBy(func(f domain.AdSpaceFilterDTO) bool {
		return assert.ObjectsAreEqual([]int{1, 4, 5, 2}, f.CategoryIDs)
	})).Return([]domain.AdSpace{}, nil)

	_, applied, err := svc.Find(context.Background(), AdSpaceQuery{CategoryIDs: []int{1, 2}})

	assert.NoError(t, err)
	assert.Equal(t, []int{1, 4, 5, 2}, applied.CategoryIDs)
}

func TestFind_ParentCategoryNameExpands(t *testing.T) {
	svc, adRepo, categoryRepo := newAdSpaceService(t, nil)

	categoryRepo.On("FindByName", mock.Anything, "Transit").Return(&domain.Category{ID: 3, Name: "Transit"}, nil)
	categoryRepo.On("FindChildren", mock.Anything, 3).Return([]domain.Category{{ID: 8}}, nil)
	adRepo.On("Find", mock.Anything, mock.MatchedBy(func(f domain.AdSpaceFilterDTO) bool {
		return assert.ObjectsAreEqual([]int{3, 8}, f.CategoryIDs)
	})).Return([]domain.AdSpace{}, nil)

	_, _, err := svc.Find(context.Background(), AdSpaceQuery{ParentCategoryName: "Transit"})

	assert.NoError(t, err)
}

func TestFind_ExplicitIDsWinOverNames(t *testing.T) {
	svc, adRepo, categoryRepo := newAdSpaceService(t, nil)

	// Only the ID tier is resolved; the name tiers never hit the repository.
	categoryRepo.On("FindChildren", mock.Anything, 9).Return([]domain.Category{}, nil)
	adRepo.On("Find", mock.Anything, mock.MatchedBy(func(f domain.AdSpaceFilterDTO) bool {
		return assert.ObjectsAreEqual([]int{9}, f.CategoryIDs)
	})).Return([]domain.AdSpace{}, nil)

	_, _, err := svc.Find(context.Background(), AdSpaceQuery{
		CategoryIDs:        []int{9},
		ParentCategoryName: "Transit",
		CategoryName:       "Mall",
	})

	assert.NoError(t, err)
}

func TestFind_SingleCategoryNameNoExpansion(t *testing.T) {
	svc, adRepo, categoryRepo := newAdSpaceService(t, nil)

	categoryRepo.On("FindByName", mock.Anything, "Mall").Return(&domain.Category{ID: 6, Name: "Mall"}, nil)
	adRepo.On("Find", mock.Anything, mock.MatchedBy(func(f domain.AdSpaceFilterDTO) bool {
		return assert.ObjectsAreEqual([]int{6}, f.CategoryIDs)
	})).Return([]domain.AdSpace{}, nil)

	_, _, err := svc.Find(context.Background(), AdSpaceQuery{CategoryName: "Mall"})

	assert.NoError(t, err)
}

func TestFind_UnknownCategoryName(t *testing.T) {
	svc, _, categoryRepo := newAdSpaceService(t, nil)

	categoryRepo.On("FindByName", mock.Anything, "Zeppelin").Return(nil, repository.ErrNotFound)

	_, _, err := svc.Find(context.Background(), AdSpaceQuery{CategoryName: "Zeppelin"})

	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestFind_ChildExpansionUsesCache(t *testing.T) {
	cache := &stubCache{}
	svc, adRepo, categoryRepo := newAdSpaceService(t, cache)

	// First call misses the cache and writes it.
	categoryRepo.On("FindChildren", mock.Anything, 1).Return([]domain.Category{{ID: 4}}, nil).Once()
	adRepo.On("Find", mock.Anything, mock.Anything).Return([]domain.AdSpace{}, nil).Twice()

	_, _, err := svc.Find(context.Background(), AdSpaceQuery{CategoryIDs: []int{1}})
	assert.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// Second call is served from the cache; FindChildren is not called again.
	_, applied, err := svc.Find(context.Background(), AdSpaceQuery{CategoryIDs: []int{1}})
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 4}, applied.CategoryIDs)
}

func staticSpaceDTO() domain.AdSpaceDTO {
	locationID := 2
	lat, lng := 19.07, 72.87
	return domain.AdSpaceDTO{
		Title:       "Marine Drive Billboard",
		Description: "Sea-facing large format",
		CategoryID:  1,
		LocationID:  &locationID,
		DisplayType: string(domain.DisplayBillboard),
		PricePerDay: 5000,
		Latitude:    &lat,
		Longitude:   &lng,
	}
}

func TestCreate_StaticRequiresLocationAndCoordinates(t *testing.T) {
	svc, _, _ := newAdSpaceService(t, nil)

	dto := staticSpaceDTO()
	dto.LocationID = nil
	_, err := svc.Create(context.Background(), dto)
	assert.ErrorIs(t, err, ErrValidation)

	dto = staticSpaceDTO()
	dto.Latitude = nil
	_, err = svc.Create(context.Background(), dto)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_MovableRequiresRoute(t *testing.T) {
	svc, adRepo, _ := newAdSpaceService(t, nil)

	dto := domain.AdSpaceDTO{
		Title:       "Airport Cab Fleet",
		Description: "Full wrap branding",
		CategoryID:  1,
		DisplayType: string(domain.DisplayCab),
		PricePerDay: 800,
	}
	_, err := svc.Create(context.Background(), dto)
	assert.ErrorIs(t, err, ErrValidation)

	dto.Route = &domain.RouteInfo{CenterLat: 19.09, CenterLng: 72.86, BaseCoverageKm: 5, VehicleCount: 20}
	adRepo.On("Create", mock.Anything, mock.Anything).Return(&domain.AdSpace{ID: 1}, nil)
	_, err = svc.Create(context.Background(), dto)
	assert.NoError(t, err)
}

func TestCreate_UnknownDisplayType(t *testing.T) {
	svc, _, _ := newAdSpaceService(t, nil)

	dto := staticSpaceDTO()
	dto.DisplayType = "blimp"
	_, err := svc.Create(context.Background(), dto)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdate_MergePreservesLocationOnStaticSpace(t *testing.T) {
	svc, adRepo, _ := newAdSpaceService(t, nil)

	existing := &domain.AdSpace{
		ID:          7,
		Title:       "Marine Drive Billboard",
		DisplayType: domain.DisplayBillboard,
		LocationID:  null.IntFrom(2),
		Latitude:    null.FloatFrom(19.07),
		Longitude:   null.FloatFrom(72.87),
	}
	adRepo.On("FindByID", mock.Anything, 7).Return(existing, nil)
	adRepo.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.AdSpace) bool {
		return s.LocationID.Valid && s.LocationID.Int64 == 2
	})).Return(existing, nil)

	// Omitting location_id in the update body must not strip it.
	dto := staticSpaceDTO()
	dto.LocationID = nil
	dto.Latitude = nil
	dto.Longitude = nil

	_, err := svc.Update(context.Background(), 7, dto)
	assert.NoError(t, err)
}

func TestCoverage(t *testing.T) {
	svc, adRepo, _ := newAdSpaceService(t, nil)

	adRepo.On("FindByID", mock.Anything, 3).Return(&domain.AdSpace{
		ID:               3,
		DisplayType:      domain.DisplayAutoRickshaw,
		PricePerDay:      1000,
		DailyImpressions: 1000,
		MonthlyFootfall:  30000,
		Route:            &domain.RouteInfo{BaseCoverageKm: 5},
	}, nil)

	estimate, err := svc.Coverage(context.Background(), 3, 5)

	assert.NoError(t, err)
	assert.Equal(t, 4000, estimate.ScaledDailyImpressions)
	assert.Equal(t, 120000, estimate.ScaledMonthlyFootfall)
	assert.InDelta(t, 750.0, estimate.SurchargePerDay, 1e-9)
	assert.InDelta(t, 1750.0, estimate.TotalPricePerDay, 1e-9)
	assert.InDelta(t, 10.0, estimate.TotalRadiusKm, 1e-9)
}

func TestCoverage_StaticSpaceRejected(t *testing.T) {
	svc, adRepo, _ := newAdSpaceService(t, nil)

	adRepo.On("FindByID", mock.Anything, 9).Return(&domain.AdSpace{
		ID:          9,
		DisplayType: domain.DisplayBillboard,
	}, nil)

	_, err := svc.Coverage(context.Background(), 9, 2)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCoverage_NegativeExtensionRejected(t *testing.T) {
	svc, _, _ := newAdSpaceService(t, nil)

	_, err := svc.Coverage(context.Background(), 3, -1)
	assert.ErrorIs(t, err, ErrValidation)
}
