package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/guregu/null.v4"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
	"github.com/srivastan1999/elfsod-2-sub000/internal/repository"
)

var ErrValidation = errors.New("validation failed")
var ErrCategoryNotFound = errors.New("category not found")

// AdSpaceQuery carries the raw listing parameters as supplied by the caller.
// The three category selectors are mutually exclusive precedence tiers:
// CategoryIDs wins over ParentCategoryName, which wins over CategoryName.
type AdSpaceQuery struct {
	City               string
	CategoryIDs        []int
	ParentCategoryName string
	CategoryName       string
	PublisherIDs       []int
	DisplayType        string
	MinPrice           *float64
	MaxPrice           *float64
	MinFootfall        *int
	MaxFootfall        *int
	SearchQuery        string
	AvailabilityStatus string
	Limit              int
}

// AppliedFilters echoes the filter set actually applied, for the extended
// filter endpoint.
type AppliedFilters struct {
	City               string   `json:"city,omitempty"`
	CategoryIDs        []int    `json:"category_ids,omitempty"`
	PublisherIDs       []int    `json:"publisher_ids,omitempty"`
	DisplayType        string   `json:"display_type,omitempty"`
	MinPrice           *float64 `json:"min_price,omitempty"`
	MaxPrice           *float64 `json:"max_price,omitempty"`
	MinFootfall        *int     `json:"min_footfall,omitempty"`
	MaxFootfall        *int     `json:"max_footfall,omitempty"`
	SearchQuery        string   `json:"search_query,omitempty"`
	AvailabilityStatus string   `json:"availability_status"`
	Limit              int      `json:"limit"`
}

// CoverageEstimate is the priced coverage extension of a movable ad space.
type CoverageEstimate struct {
	AdSpaceID              int     `json:"ad_space_id"`
	BaseRadiusKm           float64 `json:"base_radius_km"`
	AdditionalKm           float64 `json:"additional_km"`
	TotalRadiusKm          float64 `json:"total_radius_km"`
	ScaledDailyImpressions int     `json:"scaled_daily_impressions"`
	ScaledMonthlyFootfall  int     `json:"scaled_monthly_footfall"`
	SurchargePerDay        float64 `json:"surcharge_per_day"`
	TotalPricePerDay       float64 `json:"total_price_per_day"`
}

type AdSpaceService struct {
	adRepo       repository.AdSpaceRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
	cache        repository.CategoryCache // optional
	logger       *zap.Logger
}

func NewAdSpaceService(
	adRepo repository.AdSpaceRepository,
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
	cache repository.CategoryCache,
	logger *zap.Logger,
) *AdSpaceService {
	return &AdSpaceService{
		adRepo:       adRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		cache:        cache,
		logger:       logger,
	}
}

const defaultListingLimit = 100

// Find resolves the category precedence tiers and runs the joined listing
// query. The city predicate is part of the query itself, so Limit always
// applies after every filter.
func (s *AdSpaceService) Find(ctx context.Context, query AdSpaceQuery) ([]domain.AdSpace, *AppliedFilters, error) {
	categoryIDs, err := s.resolveCategoryIDs(ctx, query)
	if err != nil {
		return nil, nil, err
	}

	availability := query.AvailabilityStatus
	if availability == "" {
		availability = string(domain.SpaceAvailable)
	}
	limit := query.Limit
	if limit <= 0 {
		limit = defaultListingLimit
	}

	filter := domain.AdSpaceFilterDTO{
		CategoryIDs:        categoryIDs,
		PublisherIDs:       query.PublisherIDs,
		City:               query.City,
		DisplayType:        query.DisplayType,
		MinPrice:           query.MinPrice,
		MaxPrice:           query.MaxPrice,
		MinFootfall:        query.MinFootfall,
		MaxFootfall:        query.MaxFootfall,
		SearchQuery:        query.SearchQuery,
		AvailabilityStatus: availability,
		Limit:              limit,
	}

	spaces, err := s.adRepo.Find(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	applied := &AppliedFilters{
		City:               query.City,
		CategoryIDs:        categoryIDs,
		PublisherIDs:       query.PublisherIDs,
		DisplayType:        query.DisplayType,
		MinPrice:           query.MinPrice,
		MaxPrice:           query.MaxPrice,
		MinFootfall:        query.MinFootfall,
		MaxFootfall:        query.MaxFootfall,
		SearchQuery:        query.SearchQuery,
		AvailabilityStatus: availability,
		Limit:              limit,
	}
	return spaces, applied, nil
}

// resolveCategoryIDs applies exactly one precedence tier:
// explicit ID list (children auto-included) > parent category name (expanded
// to its direct children) > single category name (no expansion).
func (s *AdSpaceService) resolveCategoryIDs(ctx context.Context, query AdSpaceQuery) ([]int, error) {
	switch {
	case len(query.CategoryIDs) > 0:
		ids := make([]int, 0, len(query.CategoryIDs))
		seen := make(map[int]bool)
		for _, id := range query.CategoryIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
			children, err := s.childIDs(ctx, id)
			if err != nil {
				return nil, err
			}
			for _, childID := range children {
				if !seen[childID] {
					seen[childID] = true
					ids = append(ids, childID)
				}
			}
		}
		return ids, nil

	case query.ParentCategoryName != "":
		parent, err := s.categoryRepo.FindByName(ctx, query.ParentCategoryName)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: '%s'", ErrCategoryNotFound, query.ParentCategoryName)
			}
			return nil, err
		}
		ids := []int{parent.ID}
		children, err := s.childIDs(ctx, parent.ID)
		if err != nil {
			return nil, err
		}
		return append(ids, children...), nil

	case query.CategoryName != "":
		category, err := s.categoryRepo.FindByName(ctx, query.CategoryName)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: '%s'", ErrCategoryNotFound, query.CategoryName)
			}
			return nil, err
		}
		return []int{category.ID}, nil
	}
	return nil, nil
}

func (s *AdSpaceService) childIDs(ctx context.Context, parentID int) ([]int, error) {
	if s.cache != nil {
		ids, err := s.cache.GetChildren(ctx, parentID)
		if err == nil {
			return ids, nil
		}
		if !errors.Is(err, repository.ErrCacheMiss) {
			// A broken cache never fails a listing.
			s.logger.Warn("category cache read failed", zap.Int("parent_id", parentID), zap.Error(err))
		}
	}

	children, err := s.categoryRepo.FindChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(children))
	for _, child := range children {
		ids = append(ids, child.ID)
	}

	if s.cache != nil {
		if err := s.cache.SetChildren(ctx, parentID, ids); err != nil {
			s.logger.Warn("category cache write failed", zap.Int("parent_id", parentID), zap.Error(err))
		}
	}
	return ids, nil
}

func (s *AdSpaceService) GetByID(ctx context.Context, id int) (*domain.AdSpace, error) {
	return s.adRepo.FindByID(ctx, id)
}

func (s *AdSpaceService) Create(ctx context.Context, dto domain.AdSpaceDTO) (*domain.AdSpace, error) {
	space, err := s.fromDTO(dto)
	if err != nil {
		return nil, err
	}
	if err := s.validate(space); err != nil {
		return nil, err
	}
	return s.adRepo.Create(ctx, space)
}

// Update merges the DTO over the stored record and re-validates the result,
// so omitting location_id on a static space cannot silently strip it.
func (s *AdSpaceService) Update(ctx context.Context, id int, dto domain.AdSpaceDTO) (*domain.AdSpace, error) {
	existing, err := s.adRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	space, err := s.fromDTO(dto)
	if err != nil {
		return nil, err
	}
	space.ID = id
	if !space.LocationID.Valid {
		space.LocationID = existing.LocationID
	}
	if !space.Latitude.Valid {
		space.Latitude = existing.Latitude
	}
	if !space.Longitude.Valid {
		space.Longitude = existing.Longitude
	}
	if space.Route == nil {
		space.Route = existing.Route
	}

	if err := s.validate(space); err != nil {
		return nil, err
	}
	return s.adRepo.Update(ctx, space)
}

func (s *AdSpaceService) Delete(ctx context.Context, id int) error {
	return s.adRepo.Delete(ctx, id)
}

func (s *AdSpaceService) fromDTO(dto domain.AdSpaceDTO) (*domain.AdSpace, error) {
	displayType := domain.DisplayType(dto.DisplayType)
	switch displayType {
	case domain.DisplayBillboard, domain.DisplayDigitalScreen, domain.DisplayTransit,
		domain.DisplayAutoRickshaw, domain.DisplayBus, domain.DisplayCab:
	default:
		return nil, fmt.Errorf("%w: unknown display type '%s'", ErrValidation, dto.DisplayType)
	}

	availability := domain.AvailabilityStatus(dto.Availability)
	if availability == "" {
		availability = domain.SpaceAvailable
	}
	switch availability {
	case domain.SpaceAvailable, domain.SpaceBooked, domain.SpaceUnavailable:
	default:
		return nil, fmt.Errorf("%w: unknown availability status '%s'", ErrValidation, dto.Availability)
	}

	space := &domain.AdSpace{
		Title:              dto.Title,
		Description:        dto.Description,
		CategoryID:         null.IntFrom(int64(dto.CategoryID)),
		DisplayType:        displayType,
		PricePerDay:        dto.PricePerDay,
		DailyImpressions:   dto.DailyImpressions,
		MonthlyFootfall:    dto.MonthlyFootfall,
		AvailabilityStatus: availability,
		Images:             dto.Images,
		Dimensions:         dto.Dimensions,
		TargetAudience:     dto.TargetAudience,
		Route:              dto.Route,
		TrafficData:        dto.TrafficData,
	}
	if dto.LocationID != nil {
		space.LocationID = null.IntFrom(int64(*dto.LocationID))
	}
	if dto.PublisherID != nil {
		space.PublisherID = null.IntFrom(int64(*dto.PublisherID))
	}
	if dto.PricePerMonth != nil {
		space.PricePerMonth = null.FloatFrom(*dto.PricePerMonth)
	}
	if dto.Latitude != nil {
		space.Latitude = null.FloatFrom(*dto.Latitude)
	}
	if dto.Longitude != nil {
		space.Longitude = null.FloatFrom(*dto.Longitude)
	}
	return space, nil
}

// validate enforces the static/movable invariant: fixed units need a
// location and coordinates, roaming units need a route.
func (s *AdSpaceService) validate(space *domain.AdSpace) error {
	if space.DisplayType.IsMovable() {
		if space.Route == nil {
			return fmt.Errorf("%w: movable ad spaces require a route", ErrValidation)
		}
		if space.Route.BaseCoverageKm <= 0 {
			return fmt.Errorf("%w: route base coverage radius must be positive", ErrValidation)
		}
		return nil
	}

	if !space.LocationID.Valid {
		return fmt.Errorf("%w: static ad spaces require a location", ErrValidation)
	}
	if !space.Latitude.Valid || !space.Longitude.Valid {
		return fmt.Errorf("%w: static ad spaces require coordinates", ErrValidation)
	}
	return nil
}

// Coverage prices a radius extension for a movable ad space.
func (s *AdSpaceService) Coverage(ctx context.Context, id int, additionalKm float64) (*CoverageEstimate, error) {
	if additionalKm < 0 {
		return nil, fmt.Errorf("%w: additional coverage must not be negative", ErrValidation)
	}

	space, err := s.adRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if space.Route == nil {
		return nil, fmt.Errorf("%w: ad space %d is not a movable unit", ErrValidation, id)
	}

	base := space.Route.BaseCoverageKm
	return &CoverageEstimate{
		AdSpaceID:              space.ID,
		BaseRadiusKm:           base,
		AdditionalKm:           additionalKm,
		TotalRadiusKm:          base + additionalKm,
		ScaledDailyImpressions: domain.ScaledImpressions(space.DailyImpressions, base, additionalKm),
		ScaledMonthlyFootfall:  domain.ScaledImpressions(space.MonthlyFootfall, base, additionalKm),
		SurchargePerDay:        domain.CoverageSurchargePerDay(space.PricePerDay, additionalKm),
		TotalPricePerDay:       space.PricePerDay + domain.CoverageSurchargePerDay(space.PricePerDay, additionalKm),
	}, nil
}
