package queries

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"proofr-backend/application/ports"
	"proofr-backend/domain/core/entities"
	"proofr-backend/domain/core/valueobjects"
	"proofr-backend/tests/mocks"
)

type guideSpec struct {
	title       string
	category    string
	difficulty  entities.GuideDifficulty
	viewCount   int
	avgRating   float64
	publishedAt *time.Time
}

func publishedGuide(spec guideSpec) *entities.Guide {
	createdAt := time.Now().Add(-24 * time.Hour)
	return entities.ReconstructGuide(
		valueobjects.NewGuideID(),
		"author-1",
		spec.title, entities.Slugify(spec.title), "a description", spec.category,
		spec.difficulty,
		"some guide content",
		nil,
		"",
		entities.StatusPublished,
		0.95,
		1, 3, 1, spec.viewCount,
		spec.avgRating,
		createdAt,
		spec.publishedAt, nil,
	)
}

func ts(offsetHours int) *time.Time {
	t := time.Now().Add(time.Duration(offsetHours) * time.Hour)
	return &t
}

func TestListGuidesQueryValidate(t *testing.T) {
	assert.NoError(t, ListGuidesQuery{}.Validate())
	assert.NoError(t, ListGuidesQuery{SortBy: ports.SortRecent}.Validate())
	assert.Error(t, ListGuidesQuery{SortBy: "alphabetical"}.Validate())
	assert.Error(t, ListGuidesQuery{Limit: -1}.Validate())
	assert.Error(t, ListGuidesQuery{Offset: -1}.Validate())
}

func TestListGuidesHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to popularity order", func(t *testing.T) {
		guides := []*entities.Guide{
			publishedGuide(guideSpec{title: "low", viewCount: 3, publishedAt: ts(-3)}),
			publishedGuide(guideSpec{title: "high", viewCount: 90, publishedAt: ts(-2)}),
			publishedGuide(guideSpec{title: "mid", viewCount: 40, publishedAt: ts(-1)}),
		}
		guideRepo := new(mocks.GuideRepository)
		searcher := new(mocks.GuideSearcher)
		guideRepo.On("ListPublished", mock.Anything, mock.Anything).Return(guides, nil)

		handler := NewListGuidesHandler(guideRepo, searcher, zap.NewNop())
		result, err := handler.Handle(ctx, ListGuidesQuery{})
		require.NoError(t, err)

		require.Len(t, result.Guides, 3)
		assert.Equal(t, "high", result.Guides[0].Title)
		assert.Equal(t, "mid", result.Guides[1].Title)
		assert.Equal(t, "low", result.Guides[2].Title)
		assert.Equal(t, 3, result.Total)
		assert.Equal(t, DefaultListLimit, result.Limit)
	})

	t.Run("recent sorts by published time with nil last", func(t *testing.T) {
		guides := []*entities.Guide{
			publishedGuide(guideSpec{title: "older", publishedAt: ts(-48)}),
			publishedGuide(guideSpec{title: "undated"}),
			publishedGuide(guideSpec{title: "newer", publishedAt: ts(-1)}),
		}
		guideRepo := new(mocks.GuideRepository)
		searcher := new(mocks.GuideSearcher)
		guideRepo.On("ListPublished", mock.Anything, mock.Anything).Return(guides, nil)

		handler := NewListGuidesHandler(guideRepo, searcher, zap.NewNop())
		result, err := handler.Handle(ctx, ListGuidesQuery{SortBy: ports.SortRecent})
		require.NoError(t, err)

		require.Len(t, result.Guides, 3)
		assert.Equal(t, "newer", result.Guides[0].Title)
		assert.Equal(t, "older", result.Guides[1].Title)
		assert.Equal(t, "undated", result.Guides[2].Title)
	})

	t.Run("highest rated sorts by average rating", func(t *testing.T) {
		guides := []*entities.Guide{
			publishedGuide(guideSpec{title: "three", avgRating: 3.2}),
			publishedGuide(guideSpec{title: "five", avgRating: 4.9}),
			publishedGuide(guideSpec{title: "four", avgRating: 4.1}),
		}
		guideRepo := new(mocks.GuideRepository)
		searcher := new(mocks.GuideSearcher)
		guideRepo.On("ListPublished", mock.Anything, mock.Anything).Return(guides, nil)

		handler := NewListGuidesHandler(guideRepo, searcher, zap.NewNop())
		result, err := handler.Handle(ctx, ListGuidesQuery{SortBy: ports.SortHighestRated})
		require.NoError(t, err)

		assert.Equal(t, "five", result.Guides[0].Title)
		assert.Equal(t, "four", result.Guides[1].Title)
		assert.Equal(t, "three", result.Guides[2].Title)
	})

	t.Run("paginates after sorting", func(t *testing.T) {
		var guides []*entities.Guide
		for i := 0; i < 5; i++ {
			guides = append(guides, publishedGuide(guideSpec{title: "g", viewCount: i}))
		}
		guideRepo := new(mocks.GuideRepository)
		searcher := new(mocks.GuideSearcher)
		guideRepo.On("ListPublished", mock.Anything, mock.Anything).Return(guides, nil)

		handler := NewListGuidesHandler(guideRepo, searcher, zap.NewNop())

		result, err := handler.Handle(ctx, ListGuidesQuery{Limit: 2, Offset: 4})
		require.NoError(t, err)
		assert.Len(t, result.Guides, 1)
		assert.Equal(t, 5, result.Total)
		assert.Equal(t, 4, result.Offset)

		result, err = handler.Handle(ctx, ListGuidesQuery{Limit: 2, Offset: 10})
		require.NoError(t, err)
		assert.Empty(t, result.Guides)
		assert.Equal(t, 5, result.Total)
	})

	t.Run("limit is clamped to the maximum", func(t *testing.T) {
		guideRepo := new(mocks.GuideRepository)
		searcher := new(mocks.GuideSearcher)
		guideRepo.On("ListPublished", mock.Anything, mock.Anything).Return([]*entities.Guide{}, nil)

		handler := NewListGuidesHandler(guideRepo, searcher, zap.NewNop())
		result, err := handler.Handle(ctx, ListGuidesQuery{Limit: 500})
		require.NoError(t, err)
		assert.Equal(t, MaxListLimit, result.Limit)
	})

	t.Run("filters pass through to the repository", func(t *testing.T) {
		guideRepo := new(mocks.GuideRepository)
		searcher := new(mocks.GuideSearcher)
		guideRepo.On("ListPublished", mock.Anything, ports.ListFilter{
			Category:   "essays",
			Difficulty: "advanced",
		}).Return([]*entities.Guide{}, nil)

		handler := NewListGuidesHandler(guideRepo, searcher, zap.NewNop())
		_, err := handler.Handle(ctx, ListGuidesQuery{Category: "essays", Difficulty: "advanced"})
		require.NoError(t, err)
		guideRepo.AssertExpectations(t)
	})

	t.Run("search queries delegate and keep collaborator ranking", func(t *testing.T) {
		ranked := []*entities.Guide{
			publishedGuide(guideSpec{title: "second-most-viewed", viewCount: 10}),
			publishedGuide(guideSpec{title: "most-viewed", viewCount: 99}),
		}
		guideRepo := new(mocks.GuideRepository)
		searcher := new(mocks.GuideSearcher)
		searcher.On("Search", mock.Anything, "essay tips", 20).Return(ranked, nil)

		handler := NewListGuidesHandler(guideRepo, searcher, zap.NewNop())
		result, err := handler.Handle(ctx, ListGuidesQuery{Query: "essay tips"})
		require.NoError(t, err)

		require.Len(t, result.Guides, 2)
		assert.Equal(t, "second-most-viewed", result.Guides[0].Title)
		assert.Equal(t, "most-viewed", result.Guides[1].Title)
		guideRepo.AssertNotCalled(t, "ListPublished", mock.Anything, mock.Anything)
	})
}
