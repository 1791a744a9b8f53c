package queries

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"proofr-backend/application/ports"
	"proofr-backend/domain/core/entities"
)

// Listing defaults and bounds
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// ListGuidesQuery lists published guides. When Query is set, the listing is
// delegated entirely to the search collaborator and its ranking is preserved.
type ListGuidesQuery struct {
	Query      string `json:"query,omitempty"`
	Category   string `json:"category,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	SortBy     string `json:"sort_by,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Offset     int    `json:"offset,omitempty"`
}

// Validate validates the query
func (q ListGuidesQuery) Validate() error {
	switch q.SortBy {
	case "", ports.SortRecent, ports.SortHighestRated, ports.SortPopular:
	default:
		return errors.New("sort_by must be one of: recent, highest_rated, popular")
	}
	if q.Limit < 0 {
		return errors.New("limit cannot be negative")
	}
	if q.Offset < 0 {
		return errors.New("offset cannot be negative")
	}
	return nil
}

// ListGuidesResult is the listing payload
type ListGuidesResult struct {
	Guides []*GuideView `json:"guides"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

// ListGuidesHandler handles the ListGuidesQuery
type ListGuidesHandler struct {
	guideRepo ports.GuideRepository
	searcher  ports.GuideSearcher
	logger    *zap.Logger
}

// NewListGuidesHandler creates a new handler instance
func NewListGuidesHandler(
	guideRepo ports.GuideRepository,
	searcher ports.GuideSearcher,
	logger *zap.Logger,
) *ListGuidesHandler {
	return &ListGuidesHandler{
		guideRepo: guideRepo,
		searcher:  searcher,
		logger:    logger,
	}
}

// Handle executes the list guides query
func (h *ListGuidesHandler) Handle(ctx context.Context, q ListGuidesQuery) (*ListGuidesResult, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset := q.Offset

	if q.Query != "" {
		guides, err := h.searcher.Search(ctx, q.Query, limit)
		if err != nil {
			return nil, err
		}
		return &ListGuidesResult{
			Guides: NewGuideViews(guides),
			Total:  len(guides),
			Limit:  limit,
			Offset: 0,
		}, nil
	}

	guides, err := h.guideRepo.ListPublished(ctx, ports.ListFilter{
		Category:   q.Category,
		Difficulty: q.Difficulty,
	})
	if err != nil {
		return nil, err
	}

	sortGuides(guides, q.SortBy)

	total := len(guides)
	if offset >= total {
		guides = nil
	} else {
		end := offset + limit
		if end > total {
			end = total
		}
		guides = guides[offset:end]
	}

	return &ListGuidesResult{
		Guides: NewGuideViews(guides),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

// sortGuides orders a published listing in place. Popularity is the default.
func sortGuides(guides []*entities.Guide, sortBy string) {
	switch sortBy {
	case ports.SortRecent:
		sort.SliceStable(guides, func(i, j int) bool {
			pi, pj := guides[i].PublishedAt(), guides[j].PublishedAt()
			switch {
			case pi == nil:
				return false
			case pj == nil:
				return true
			default:
				return pi.After(*pj)
			}
		})
	case ports.SortHighestRated:
		sort.SliceStable(guides, func(i, j int) bool {
			return guides[i].AvgRating() > guides[j].AvgRating()
		})
	default:
		sort.SliceStable(guides, func(i, j int) bool {
			return guides[i].ViewCount() > guides[j].ViewCount()
		})
	}
}
