package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/srivastan1999/elfsod-2-sub000/internal/repository"
)

// categoryRule is one step of the keyword cascade. Rules are checked in
// order and the first match wins; a rule with suppressedBy keywords is
// skipped when any of those also occur, so e.g. a supermarket inside a mall
// is categorized as Mall, never Grocery.
type categoryRule struct {
	category     string
	keywords     []string
	suppressedBy []string
}

var categoryRules = []categoryRule{
	{category: "Billboard", keywords: []string{"billboard", "hoarding", "unipole"}},
	{category: "Metro", keywords: []string{"metro", "subway", "railway station", "train station"}},
	{category: "Mall", keywords: []string{"mall", "shopping center", "shopping centre", "multiplex"}},
	{category: "Event Venue", keywords: []string{"stadium", "arena", "concert", "exhibition", "convention", "event venue"}},
	{category: "Restaurant", keywords: []string{"restaurant", "cafe", "food court", "dining"}},
	{category: "Office Tower", keywords: []string{"office tower", "tech park", "business park", "it park"}},
	{category: "Corporate", keywords: []string{"corporate", "office", "coworking", "workspace"}},
	{category: "Hotel", keywords: []string{"hotel", "resort", "lodge"}},
	{
		category:     "Grocery",
		keywords:     []string{"grocery", "supermarket", "hypermarket", "kirana"},
		suppressedBy: []string{"mall", "shopping center", "shopping centre"},
	},
}

const fallbackCategory = "Corporate"

// classifyCategory returns the category name for an ad space's title and
// description.
func classifyCategory(title, description string) string {
	haystack := strings.ToLower(title + " " + description)
	for _, rule := range categoryRules {
		if !containsAny(haystack, rule.keywords) {
			continue
		}
		if containsAny(haystack, rule.suppressedBy) {
			continue
		}
		return rule.category
	}
	return fallbackCategory
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

// CategoryAssignment records one ad space categorized during a bulk run.
type CategoryAssignment struct {
	AdSpaceID int    `json:"ad_space_id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
}

type CategorizationSummary struct {
	Processed   int                  `json:"processed"`
	Assigned    int                  `json:"assigned"`
	Skipped     int                  `json:"skipped"`
	Assignments []CategoryAssignment `json:"assignments"`
}

type CategorizerService struct {
	adRepo       repository.AdSpaceRepository
	categoryRepo repository.CategoryRepository
	logger       *zap.Logger
}

func NewCategorizerService(adRepo repository.AdSpaceRepository, categoryRepo repository.CategoryRepository, logger *zap.Logger) *CategorizerService {
	return &CategorizerService{adRepo: adRepo, categoryRepo: categoryRepo, logger: logger}
}

// AssignCategories bulk-categorizes ad spaces by keyword matching. With
// onlyUnmatched it restricts the run to spaces without a category. Spaces
// whose computed category does not exist as a row are skipped, not failed,
// so one missing category cannot abort a bulk run.
func (s *CategorizerService) AssignCategories(ctx context.Context, onlyUnmatched bool) (*CategorizationSummary, error) {
	spaces, err := s.adRepo.FindForCategorization(ctx, onlyUnmatched)
	if err != nil {
		return nil, fmt.Errorf("loading ad spaces for categorization: %w", err)
	}

	summary := &CategorizationSummary{
		Processed:   len(spaces),
		Assignments: []CategoryAssignment{},
	}
	categoryIDs := make(map[string]int)

	for _, space := range spaces {
		name := classifyCategory(space.Title, space.Description)

		id, ok := categoryIDs[name]
		if !ok {
			category, err := s.categoryRepo.FindByName(ctx, name)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					s.logger.Warn("computed category has no row, skipping",
						zap.Int("ad_space_id", space.ID),
						zap.String("category", name))
					summary.Skipped++
					continue
				}
				return nil, fmt.Errorf("resolving category '%s': %w", name, err)
			}
			id = category.ID
			categoryIDs[name] = id
		}

		if err := s.adRepo.AssignCategory(ctx, space.ID, id); err != nil {
			return nil, fmt.Errorf("assigning category to ad space %d: %w", space.ID, err)
		}
		summary.Assigned++
		summary.Assignments = append(summary.Assignments, CategoryAssignment{
			AdSpaceID: space.ID,
			Title:     space.Title,
			Category:  name,
		})
	}

	s.logger.Info("bulk categorization finished",
		zap.Int("processed", summary.Processed),
		zap.Int("assigned", summary.Assigned),
		zap.Int("skipped", summary.Skipped))
	return summary, nil
}
