package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
	"github.com/srivastan1999/elfsod-2-sub000/internal/repository"
	"github.com/srivastan1999/elfsod-2-sub000/internal/repository/mocks"
)

func TestClassifyCategory(t *testing.T) {
	cases := []struct {
		title       string
		description string
		want        string
	}{
		{"Downtown Metro Station Kiosk", "High traffic transit point", "Metro"},
		{"Highway Billboard NH-48", "Large format hoarding", "Billboard"},
		{"Phoenix Mall Atrium Screen", "Premium shopping centre placement", "Mall"},
		{"City Stadium LED Wall", "Visible during every match", "Event Venue"},
		{"Rooftop Cafe Table Tents", "Casual dining crowd", "Restaurant"},
		{"Cyber Tech Park Lobby", "IT park entrance display", "Office Tower"},
		{"Grand Palace Hotel Elevator", "Business travellers", "Hotel"},
		{"Fresh Mart Supermarket Aisles", "Daily grocery shoppers", "Grocery"},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, classifyCategory(tc.title, tc.description), "title=%q", tc.title)
	}
}

func TestClassifyCategory_MallSuppressesGrocery(t *testing.T) {
	got := classifyCategory("Hypermarket inside Orion Mall", "grocery anchor store")
	assert.Equal(t, "Mall", got)
}

func TestClassifyCategory_FallsBackToCorporate(t *testing.T) {
	got := classifyCategory("Riverside Ferry Deck", "scenic commuter crossing")
	assert.Equal(t, "Corporate", got)
}

func TestAssignCategories(t *testing.T) {
	adRepo := mocks.NewAdSpaceRepository(t)
	categoryRepo := mocks.NewCategoryRepository(t)
	svc := NewCategorizerService(adRepo, categoryRepo, zap.NewNop())

	spaces := []domain.AdSpace{
		{ID: 1, Title: "Downtown Metro Station Kiosk", Description: "transit point"},
		{ID: 2, Title: "Blue Line Metro Pillar", Description: "subway wrap"},
	}
	adRepo.On("FindForCategorization", mock.Anything, true).Return(spaces, nil)
	// Both spaces resolve to the same category; the lookup is memoized.
	categoryRepo.On("FindByName", mock.Anything, "Metro").Return(&domain.Category{ID: 7, Name: "Metro"}, nil).Once()
	adRepo.On("AssignCategory", mock.Anything, 1, 7).Return(nil)
	adRepo.On("AssignCategory", mock.Anything, 2, 7).Return(nil)

	summary, err := svc.AssignCategories(context.Background(), true)

	assert.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 2, summary.Assigned)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, "Metro", summary.Assignments[0].Category)
}

func TestAssignCategories_MissingCategoryRowIsSkipped(t *testing.T) {
	adRepo := mocks.NewAdSpaceRepository(t)
	categoryRepo := mocks.NewCategoryRepository(t)
	svc := NewCategorizerService(adRepo, categoryRepo, zap.NewNop())

	spaces := []domain.AdSpace{{ID: 3, Title: "Grand Palace Hotel Lobby", Description: ""}}
	adRepo.On("FindForCategorization", mock.Anything, false).Return(spaces, nil)
	categoryRepo.On("FindByName", mock.Anything, "Hotel").Return(nil, repository.ErrNotFound)

	summary, err := svc.AssignCategories(context.Background(), false)

	assert.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 0, summary.Assigned)
	assert.Equal(t, 1, summary.Skipped)
}
