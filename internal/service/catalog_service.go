package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/guregu/null.v4"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
	"github.com/srivastan1999/elfsod-2-sub000/internal/repository"
)

// CatalogService manages the supporting catalog entities: categories,
// locations and publishers. Category writes invalidate the cached
// parent-children expansion used by the listing filter.
type CatalogService struct {
	categoryRepo  repository.CategoryRepository
	locationRepo  repository.LocationRepository
	publisherRepo repository.PublisherRepository
	cache         repository.CategoryCache // optional
	logger        *zap.Logger
}

func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
	publisherRepo repository.PublisherRepository,
	cache repository.CategoryCache,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		categoryRepo:  categoryRepo,
		locationRepo:  locationRepo,
		publisherRepo: publisherRepo,
		cache:         cache,
		logger:        logger,
	}
}

// --- Categories ---

func (s *CatalogService) CreateCategory(ctx context.Context, dto domain.CategoryDTO) (*domain.Category, error) {
	category := &domain.Category{
		Name:    dto.Name,
		IconURL: dto.IconURL,
	}
	if dto.ParentCategoryID != nil {
		// One level of nesting only: the parent itself must be a root.
		parent, err := s.categoryRepo.FindByID(ctx, *dto.ParentCategoryID)
		if err != nil {
			return nil, err
		}
		if parent.ParentCategoryID.Valid {
			return nil, fmt.Errorf("%w: category '%s' is itself a subcategory", ErrValidation, parent.Name)
		}
		category.ParentCategoryID = null.IntFrom(int64(parent.ID))
	}

	created, err := s.categoryRepo.Create(ctx, category)
	if err != nil {
		return nil, err
	}
	if created.ParentCategoryID.Valid {
		s.invalidateChildren(ctx, int(created.ParentCategoryID.Int64))
	}
	return created, nil
}

func (s *CatalogService) GetCategoryByID(ctx context.Context, id int) (*domain.Category, error) {
	return s.categoryRepo.FindByID(ctx, id)
}

func (s *CatalogService) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.FindAll(ctx)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int, dto domain.CategoryDTO) (*domain.Category, error) {
	existing, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category := &domain.Category{
		ID:      id,
		Name:    dto.Name,
		IconURL: dto.IconURL,
	}
	if dto.ParentCategoryID != nil {
		if *dto.ParentCategoryID == id {
			return nil, fmt.Errorf("%w: a category cannot be its own parent", ErrValidation)
		}
		parent, err := s.categoryRepo.FindByID(ctx, *dto.ParentCategoryID)
		if err != nil {
			return nil, err
		}
		if parent.ParentCategoryID.Valid {
			return nil, fmt.Errorf("%w: category '%s' is itself a subcategory", ErrValidation, parent.Name)
		}
		category.ParentCategoryID = null.IntFrom(int64(parent.ID))
	}

	updated, err := s.categoryRepo.Update(ctx, category)
	if err != nil {
		return nil, err
	}

	// Both the old and new parent expansions are stale after a re-parenting.
	if existing.ParentCategoryID.Valid {
		s.invalidateChildren(ctx, int(existing.ParentCategoryID.Int64))
	}
	if updated.ParentCategoryID.Valid {
		s.invalidateChildren(ctx, int(updated.ParentCategoryID.Int64))
	}
	return updated, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int) error {
	existing, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateChildren(ctx, id)
	if existing.ParentCategoryID.Valid {
		s.invalidateChildren(ctx, int(existing.ParentCategoryID.Int64))
	}
	return nil
}

func (s *CatalogService) invalidateChildren(ctx context.Context, parentID int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, parentID); err != nil {
		s.logger.Warn("category cache invalidation failed", zap.Int("parent_id", parentID), zap.Error(err))
	}
}

// --- Locations ---

func (s *CatalogService) CreateLocation(ctx context.Context, dto domain.LocationDTO) (*domain.Location, error) {
	return s.locationRepo.Create(ctx, &domain.Location{
		City:      dto.City,
		State:     dto.State,
		Country:   dto.Country,
		Address:   dto.Address,
		Latitude:  dto.Latitude,
		Longitude: dto.Longitude,
	})
}

func (s *CatalogService) GetLocationByID(ctx context.Context, id int) (*domain.Location, error) {
	return s.locationRepo.FindByID(ctx, id)
}

func (s *CatalogService) GetAllLocations(ctx context.Context) ([]domain.Location, error) {
	return s.locationRepo.FindAll(ctx)
}

func (s *CatalogService) UpdateLocation(ctx context.Context, id int, dto domain.LocationDTO) (*domain.Location, error) {
	return s.locationRepo.Update(ctx, &domain.Location{
		ID:        id,
		City:      dto.City,
		State:     dto.State,
		Country:   dto.Country,
		Address:   dto.Address,
		Latitude:  dto.Latitude,
		Longitude: dto.Longitude,
	})
}

func (s *CatalogService) DeleteLocation(ctx context.Context, id int) error {
	return s.locationRepo.Delete(ctx, id)
}

// --- Publishers ---

func (s *CatalogService) CreatePublisher(ctx context.Context, dto domain.PublisherDTO) (*domain.Publisher, error) {
	status, err := publisherStatus(dto.VerificationStatus)
	if err != nil {
		return nil, err
	}
	return s.publisherRepo.Create(ctx, &domain.Publisher{
		Name:               dto.Name,
		Description:        dto.Description,
		VerificationStatus: status,
	})
}

func (s *CatalogService) GetPublisherByID(ctx context.Context, id int) (*domain.Publisher, error) {
	return s.publisherRepo.FindByID(ctx, id)
}

func (s *CatalogService) GetAllPublishers(ctx context.Context) ([]domain.Publisher, error) {
	return s.publisherRepo.FindAll(ctx)
}

func (s *CatalogService) UpdatePublisher(ctx context.Context, id int, dto domain.PublisherDTO) (*domain.Publisher, error) {
	status, err := publisherStatus(dto.VerificationStatus)
	if err != nil {
		return nil, err
	}
	return s.publisherRepo.Update(ctx, &domain.Publisher{
		ID:                 id,
		Name:               dto.Name,
		Description:        dto.Description,
		VerificationStatus: status,
	})
}

func (s *CatalogService) DeletePublisher(ctx context.Context, id int) error {
	return s.publisherRepo.Delete(ctx, id)
}

func publisherStatus(raw string) (domain.VerificationStatus, error) {
	if raw == "" {
		return domain.PublisherUnverified, nil
	}
	status := domain.VerificationStatus(raw)
	switch status {
	case domain.PublisherUnverified, domain.PublisherPending, domain.PublisherVerified:
		return status, nil
	}
	return "", fmt.Errorf("%w: unknown verification status '%s'", ErrValidation, raw)
}
