package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
	"github.com/srivastan1999/elfsod-2-sub000/internal/repository/mocks"
)

type stubCompleter struct {
	response string
	err      error
}

func (s *stubCompleter) Complete(_ context.Context, _ string) (string, error) {
	return s.response, s.err
}

func availableFilter() domain.AdSpaceFilterDTO {
	return domain.AdSpaceFilterDTO{
		AvailabilityStatus: string(domain.SpaceAvailable),
		Limit:              defaultListingLimit,
	}
}

func TestCampaignDays(t *testing.T) {
	assert.Equal(t, 10, campaignDays(domain.CampaignBrief{StartDate: "2026-03-01", EndDate: "2026-03-11"}))
	assert.Equal(t, 30, campaignDays(domain.CampaignBrief{StartDate: "2026-03-01"}))
	assert.Equal(t, 30, campaignDays(domain.CampaignBrief{StartDate: "not-a-date", EndDate: "2026-03-11"}))
	// Inverted range falls back to the default too.
	assert.Equal(t, 30, campaignDays(domain.CampaignBrief{StartDate: "2026-03-11", EndDate: "2026-03-01"}))
}

func TestSuggest_RuleBased_ScoresAndSorts(t *testing.T) {
	adRepo := mocks.NewAdSpaceRepository(t)
	svc := NewPlannerService(adRepo, nil, zap.NewNop())

	spaces := []domain.AdSpace{
		{ID: 1, Title: "Pricey Billboard", DisplayType: domain.DisplayBillboard, PricePerDay: 10000, DailyImpressions: 90000},
		{ID: 2, Title: "Cheap Billboard", DisplayType: domain.DisplayBillboard, PricePerDay: 100, DailyImpressions: 20000},
		{ID: 3, Title: "Mid Transit Wrap", DisplayType: domain.DisplayTransit, PricePerDay: 900, DailyImpressions: 40000},
	}
	adRepo.On("Find", mock.Anything, availableFilter()).Return(spaces, nil)

	brief := domain.CampaignBrief{
		Goal:               "awareness",
		ProductDescription: "energy drink",
		Budget:             30000,
		StartDate:          "2026-03-01",
		EndDate:            "2026-03-31",
	}
	suggestions, method, err := svc.Suggest(context.Background(), brief)

	assert.NoError(t, err)
	assert.Equal(t, MethodRuleBased, method)
	assert.Len(t, suggestions, 3)

	// Cheap billboard: within half budget (+20) and goal-aligned (+15).
	assert.Equal(t, 2, suggestions[0].AdSpaceID)
	assert.Equal(t, 85, suggestions[0].Score)
	// Pricey billboard: over budget (-10) but goal-aligned (+15).
	for _, sg := range suggestions {
		if sg.AdSpaceID == 1 {
			assert.Equal(t, 55, sg.Score)
			assert.InDelta(t, 300000.0, sg.EstimatedCost, 1e-9)
			assert.Equal(t, int64(2700000), sg.EstimatedReach)
		}
	}

	for i := 1; i < len(suggestions); i++ {
		assert.GreaterOrEqual(t, suggestions[i-1].Score, suggestions[i].Score)
	}
	for _, sg := range suggestions {
		assert.GreaterOrEqual(t, sg.Score, 0)
		assert.LessOrEqual(t, sg.Score, 100)
	}
}

func TestSuggest_RuleBased_TruncatesToTen(t *testing.T) {
	adRepo := mocks.NewAdSpaceRepository(t)
	svc := NewPlannerService(adRepo, nil, zap.NewNop())

	spaces := make([]domain.AdSpace, 15)
	for i := range spaces {
		spaces[i] = domain.AdSpace{ID: i + 1, Title: "Space", DisplayType: domain.DisplayBillboard, PricePerDay: 100, DailyImpressions: 1000}
	}
	adRepo.On("Find", mock.Anything, availableFilter()).Return(spaces, nil)

	suggestions, _, err := svc.Suggest(context.Background(), domain.CampaignBrief{
		Goal: "reach", ProductDescription: "snacks", Budget: 100000, StartDate: "2026-03-01",
	})

	assert.NoError(t, err)
	assert.Len(t, suggestions, 10)
}

func TestSuggest_DelegatedParsesFencedJSON(t *testing.T) {
	adRepo := mocks.NewAdSpaceRepository(t)
	llm := &stubCompleter{response: "```json\n[{\"ad_space_id\": 1, \"score\": 92, \"reason\": \"great fit\"}]\n```"}
	svc := NewPlannerService(adRepo, llm, zap.NewNop())

	spaces := []domain.AdSpace{{ID: 1, Title: "Pier Billboard", PricePerDay: 500, DailyImpressions: 8000}}
	adRepo.On("Find", mock.Anything, availableFilter()).Return(spaces, nil)

	suggestions, method, err := svc.Suggest(context.Background(), domain.CampaignBrief{
		Goal: "awareness", ProductDescription: "sunscreen", Budget: 50000,
		StartDate: "2026-03-01", EndDate: "2026-03-11",
	})

	assert.NoError(t, err)
	assert.Equal(t, MethodAIPowered, method)
	assert.Len(t, suggestions, 1)
	assert.Equal(t, "Pier Billboard", suggestions[0].Title)
	assert.Equal(t, 92, suggestions[0].Score)
	// Omitted estimates are backfilled: 10 days.
	assert.Equal(t, int64(80000), suggestions[0].EstimatedReach)
	assert.InDelta(t, 5000.0, suggestions[0].EstimatedCost, 1e-9)
}

func TestSuggest_DelegatedParsesWrappedObject(t *testing.T) {
	adRepo := mocks.NewAdSpaceRepository(t)
	llm := &stubCompleter{response: `{"suggestions": [{"ad_space_id": 2, "score": 150, "reason": "x"}]}`}
	svc := NewPlannerService(adRepo, llm, zap.NewNop())

	spaces := []domain.AdSpace{{ID: 2, Title: "Metro Panel", PricePerDay: 300, DailyImpressions: 5000}}
	adRepo.On("Find", mock.Anything, availableFilter()).Return(spaces, nil)

	suggestions, method, err := svc.Suggest(context.Background(), domain.CampaignBrief{
		Goal: "reach", ProductDescription: "app", Budget: 10000, StartDate: "2026-03-01",
	})

	assert.NoError(t, err)
	assert.Equal(t, MethodAIPowered, method)
	// Out-of-range model scores are clamped.
	assert.Equal(t, 100, suggestions[0].Score)
}

func TestSuggest_DelegatedErrorFallsBackToRuleBased(t *testing.T) {
	adRepo := mocks.NewAdSpaceRepository(t)
	llm := &stubCompleter{err: errors.New("upstream timeout")}
	svc := NewPlannerService(adRepo, llm, zap.NewNop())

	spaces := []domain.AdSpace{{ID: 1, Title: "Billboard", DisplayType: domain.DisplayBillboard, PricePerDay: 100, DailyImpressions: 1000}}
	adRepo.On("Find", mock.Anything, availableFilter()).Return(spaces, nil)

	suggestions, method, err := svc.Suggest(context.Background(), domain.CampaignBrief{
		Goal: "awareness", ProductDescription: "soda", Budget: 10000, StartDate: "2026-03-01",
	})

	assert.NoError(t, err)
	assert.Equal(t, MethodRuleBased, method)
	assert.NotEmpty(t, suggestions)
}

func TestSuggest_DelegatedGarbageFallsBackToRuleBased(t *testing.T) {
	adRepo := mocks.NewAdSpaceRepository(t)
	llm := &stubCompleter{response: "I think the billboard near the pier is nice."}
	svc := NewPlannerService(adRepo, llm, zap.NewNop())

	spaces := []domain.AdSpace{{ID: 1, Title: "Billboard", DisplayType: domain.DisplayBillboard, PricePerDay: 100, DailyImpressions: 1000}}
	adRepo.On("Find", mock.Anything, availableFilter()).Return(spaces, nil)

	_, method, err := svc.Suggest(context.Background(), domain.CampaignBrief{
		Goal: "awareness", ProductDescription: "soda", Budget: 10000, StartDate: "2026-03-01",
	})

	assert.NoError(t, err)
	assert.Equal(t, MethodRuleBased, method)
}

func TestParseSuggestions_UnknownIDsAreDropped(t *testing.T) {
	adRepo := mocks.NewAdSpaceRepository(t)
	llm := &stubCompleter{response: `[{"ad_space_id": 99, "score": 80, "reason": "hallucinated"}]`}
	svc := NewPlannerService(adRepo, llm, zap.NewNop())

	spaces := []domain.AdSpace{{ID: 1, Title: "Billboard", DisplayType: domain.DisplayBillboard, PricePerDay: 100, DailyImpressions: 1000}}
	adRepo.On("Find", mock.Anything, availableFilter()).Return(spaces, nil)

	// Every suggestion referenced a non-candidate, so the delegated path is
	// rejected wholesale.
	_, method, err := svc.Suggest(context.Background(), domain.CampaignBrief{
		Goal: "awareness", ProductDescription: "soda", Budget: 10000, StartDate: "2026-03-01",
	})

	assert.NoError(t, err)
	assert.Equal(t, MethodRuleBased, method)
}
