package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
	"github.com/srivastan1999/elfsod-2-sub000/internal/repository"
)

// TextCompleter is the delegated planner backend: one prompt in, one text
// completion out. Kept minimal so tests can stub it.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const (
	plannerBaseScore    = 50
	plannerMaxResults   = 10
	defaultCampaignDays = 30

	MethodAIPowered = "ai-powered"
	MethodRuleBased = "rule-based"
)

type PlannerService struct {
	adRepo repository.AdSpaceRepository
	llm    TextCompleter // nil disables the delegated path
	logger *zap.Logger
}

func NewPlannerService(adRepo repository.AdSpaceRepository, llm TextCompleter, logger *zap.Logger) *PlannerService {
	return &PlannerService{adRepo: adRepo, llm: llm, logger: logger}
}

// Suggest ranks available ad spaces against a campaign brief. The delegated
// backend is tried first when configured; any transport or parse failure
// falls back to the rule-based scorer, never to an error.
func (s *PlannerService) Suggest(ctx context.Context, brief domain.CampaignBrief) ([]domain.Suggestion, string, error) {
	spaces, err := s.adRepo.Find(ctx, domain.AdSpaceFilterDTO{
		AvailabilityStatus: string(domain.SpaceAvailable),
		Limit:              defaultListingLimit,
	})
	if err != nil {
		return nil, "", fmt.Errorf("loading candidate ad spaces: %w", err)
	}

	days := campaignDays(brief)

	if s.llm != nil {
		suggestions, err := s.suggestDelegated(ctx, brief, spaces, days)
		if err == nil {
			return suggestions, MethodAIPowered, nil
		}
		s.logger.Warn("delegated planner failed, using rule-based scoring", zap.Error(err))
	}

	return s.scoreRuleBased(brief, spaces, days), MethodRuleBased, nil
}

// campaignDays derives the campaign length from the brief's date range,
// defaulting to 30 days when the range is missing or malformed.
func campaignDays(brief domain.CampaignBrief) int {
	start, err := time.Parse("2006-01-02", brief.StartDate)
	if err != nil {
		return defaultCampaignDays
	}
	end, err := time.Parse("2006-01-02", brief.EndDate)
	if err != nil {
		return defaultCampaignDays
	}
	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return defaultCampaignDays
	}
	return days
}

// goalAffinities maps campaign goal keywords to the display types best
// suited to them.
var goalAffinities = map[string][]domain.DisplayType{
	"awareness": {domain.DisplayBillboard, domain.DisplayDigitalScreen},
	"brand":     {domain.DisplayBillboard, domain.DisplayDigitalScreen},
	"reach":     {domain.DisplayTransit, domain.DisplayBus},
	"commuter":  {domain.DisplayTransit, domain.DisplayBus, domain.DisplayCab},
	"local":     {domain.DisplayAutoRickshaw, domain.DisplayCab},
	"launch":    {domain.DisplayDigitalScreen},
}

func (s *PlannerService) scoreRuleBased(brief domain.CampaignBrief, spaces []domain.AdSpace, days int) []domain.Suggestion {
	goal := strings.ToLower(brief.Goal)
	product := strings.ToLower(brief.ProductDescription)
	audience := strings.ToLower(brief.TargetAudience)

	suggestions := make([]domain.Suggestion, 0, len(spaces))
	for _, space := range spaces {
		cost := space.PricePerDay * float64(days)
		score := plannerBaseScore
		var reasons []string

		switch {
		case cost <= brief.Budget*0.5:
			score += 20
			reasons = append(reasons, "fits comfortably within budget")
		case cost <= brief.Budget:
			score += 10
			reasons = append(reasons, "fits within budget")
		default:
			score -= 10
			reasons = append(reasons, "exceeds budget")
		}

		for keyword, displayTypes := range goalAffinities {
			if !strings.Contains(goal, keyword) {
				continue
			}
			for _, dt := range displayTypes {
				if space.DisplayType == dt {
					score += 15
					reasons = append(reasons, fmt.Sprintf("%s placement suits a '%s' goal", space.DisplayType, keyword))
				}
			}
		}

		if space.Category != nil && strings.Contains(product, strings.ToLower(space.Category.Name)) {
			score += 10
			reasons = append(reasons, fmt.Sprintf("category '%s' matches the product", space.Category.Name))
		}
		if audience != "" && space.TargetAudience != "" &&
			strings.Contains(strings.ToLower(space.TargetAudience), audience) {
			score += 5
			reasons = append(reasons, "audience profile matches")
		}

		if score > 100 {
			score = 100
		}
		if score < 0 {
			score = 0
		}

		suggestions = append(suggestions, domain.Suggestion{
			AdSpaceID:      space.ID,
			Title:          space.Title,
			Score:          score,
			Reason:         strings.Join(reasons, "; "),
			EstimatedReach: int64(space.DailyImpressions) * int64(days),
			EstimatedCost:  cost,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if len(suggestions) > plannerMaxResults {
		suggestions = suggestions[:plannerMaxResults]
	}
	return suggestions
}

func (s *PlannerService) suggestDelegated(ctx context.Context, brief domain.CampaignBrief, spaces []domain.AdSpace, days int) ([]domain.Suggestion, error) {
	prompt := buildPlannerPrompt(brief, spaces, days)
	raw, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("completion request: %w", err)
	}

	suggestions, err := parseSuggestions(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing completion: %w", err)
	}
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("completion contained no suggestions")
	}

	byID := make(map[int]domain.AdSpace, len(spaces))
	for _, space := range spaces {
		byID[space.ID] = space
	}

	// Keep only suggestions that reference real candidates and backfill the
	// reach/cost estimates the model may omit.
	kept := suggestions[:0]
	for _, sg := range suggestions {
		space, ok := byID[sg.AdSpaceID]
		if !ok {
			continue
		}
		if sg.Title == "" {
			sg.Title = space.Title
		}
		if sg.EstimatedReach == 0 {
			sg.EstimatedReach = int64(space.DailyImpressions) * int64(days)
		}
		if sg.EstimatedCost == 0 {
			sg.EstimatedCost = space.PricePerDay * float64(days)
		}
		if sg.Score > 100 {
			sg.Score = 100
		}
		if sg.Score < 0 {
			sg.Score = 0
		}
		kept = append(kept, sg)
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("no suggestion matched a candidate ad space")
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Score > kept[j].Score })
	if len(kept) > plannerMaxResults {
		kept = kept[:plannerMaxResults]
	}
	return kept, nil
}

func buildPlannerPrompt(brief domain.CampaignBrief, spaces []domain.AdSpace, days int) string {
	var b strings.Builder
	b.WriteString("You are a media planner for an outdoor advertising marketplace.\n")
	b.WriteString("Campaign brief:\n")
	fmt.Fprintf(&b, "- Goal: %s\n", brief.Goal)
	fmt.Fprintf(&b, "- Product: %s\n", brief.ProductDescription)
	if brief.TargetAudience != "" {
		fmt.Fprintf(&b, "- Target audience: %s\n", brief.TargetAudience)
	}
	fmt.Fprintf(&b, "- Budget: %.2f\n", brief.Budget)
	fmt.Fprintf(&b, "- Campaign length: %d days\n\n", days)

	b.WriteString("Available ad spaces:\n")
	for _, space := range spaces {
		category := ""
		if space.Category != nil {
			category = space.Category.Name
		}
		city := ""
		if space.Location != nil {
			city = space.Location.City
		}
		fmt.Fprintf(&b, "- id=%d title=%q category=%q display_type=%s city=%q price_per_day=%.2f daily_impressions=%d\n",
			space.ID, space.Title, category, space.DisplayType, city, space.PricePerDay, space.DailyImpressions)
	}

	b.WriteString("\nPick the best placements for this campaign (at most 10). ")
	b.WriteString("Respond with ONLY a JSON array, each element shaped as ")
	b.WriteString(`{"ad_space_id": int, "title": string, "score": int 0-100, "reason": string, "estimated_reach": int, "estimated_cost": number}.`)
	return b.String()
}

// parseSuggestions accepts a bare JSON array, a {"suggestions": [...]}
// wrapper, or either of those inside a markdown code fence.
func parseSuggestions(raw string) ([]domain.Suggestion, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	var suggestions []domain.Suggestion
	if err := json.Unmarshal([]byte(text), &suggestions); err == nil {
		return suggestions, nil
	}

	var wrapped struct {
		Suggestions []domain.Suggestion `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(text), &wrapped); err == nil && wrapped.Suggestions != nil {
		return wrapped.Suggestions, nil
	}
	return nil, fmt.Errorf("response is neither a suggestion array nor a suggestions object")
}
