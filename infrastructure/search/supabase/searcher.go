// Package supabase delegates guide search to a Postgres full-text function
// exposed through Supabase. The function owns ranking; results come back in
// its order and are never re-sorted here.
package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/supabase-community/supabase-go"
	"go.uber.org/zap"

	"proofr-backend/application/ports"
	"proofr-backend/domain/core/entities"
	"proofr-backend/domain/core/valueobjects"
	pkgerrors "proofr-backend/pkg/errors"
	"proofr-backend/pkg/utils"
)

const searchFunction = "search_guides"

// Searcher implements ports.GuideSearcher via the search_guides RPC
type Searcher struct {
	client *supabase.Client
	logger *zap.Logger
}

// NewSearcher creates a searcher backed by a Supabase project
func NewSearcher(url, key string, logger *zap.Logger) (*Searcher, error) {
	client, err := supabase.NewClient(url, key, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return &Searcher{client: client, logger: logger}, nil
}

// searchRow mirrors the row shape returned by search_guides
type searchRow struct {
	ID              string   `json:"id"`
	AuthorID        string   `json:"author_id"`
	Title           string   `json:"title"`
	Slug            string   `json:"slug"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Difficulty      string   `json:"difficulty"`
	Content         string   `json:"content"`
	Tags            []string `json:"tags"`
	MetaDescription string   `json:"meta_description"`
	Status          string   `json:"status"`
	ModerationScore float64  `json:"moderation_score"`
	Version         int      `json:"version"`
	WordCount       int      `json:"word_count"`
	ReadTime        int      `json:"read_time"`
	ViewCount       int      `json:"view_count"`
	AvgRating       float64  `json:"avg_rating"`
	CreatedAt       string   `json:"created_at"`
	PublishedAt     string   `json:"published_at"`
	LastMajorUpdate string   `json:"last_major_update"`
}

// Search runs the delegated full-text search and preserves its ranking
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]*entities.Guide, error) {
	raw := s.client.Rpc(searchFunction, "", map[string]interface{}{
		"search_query": query,
		"limit_count":  limit,
	})

	var rows []searchRow
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		s.logger.Error("search delegation failed",
			zap.String("query", query),
			zap.String("response", raw),
		)
		return nil, pkgerrors.NewExternalError("search", fmt.Errorf("unexpected search response: %w", err))
	}

	guides := make([]*entities.Guide, 0, len(rows))
	for _, row := range rows {
		guide, err := rowToGuide(row)
		if err != nil {
			s.logger.Warn("skipping unreadable search row",
				zap.String("guideID", row.ID),
				zap.Error(err),
			)
			continue
		}
		guides = append(guides, guide)
	}

	return guides, nil
}

func rowToGuide(row searchRow) (*entities.Guide, error) {
	id, err := valueobjects.NewGuideIDFromString(row.ID)
	if err != nil {
		return nil, err
	}

	createdAt, err := utils.ParseRFC3339(row.CreatedAt)
	if err != nil {
		return nil, err
	}
	var publishedAt, lastMajorUpdate *time.Time
	if row.PublishedAt != "" {
		t, err := utils.ParseRFC3339(row.PublishedAt)
		if err != nil {
			return nil, err
		}
		publishedAt = &t
	}
	if row.LastMajorUpdate != "" {
		t, err := utils.ParseRFC3339(row.LastMajorUpdate)
		if err != nil {
			return nil, err
		}
		lastMajorUpdate = &t
	}

	return entities.ReconstructGuide(
		id,
		row.AuthorID,
		row.Title, row.Slug, row.Description, row.Category,
		entities.GuideDifficulty(row.Difficulty),
		row.Content,
		row.Tags,
		row.MetaDescription,
		entities.GuideStatus(row.Status),
		row.ModerationScore,
		row.Version, row.WordCount, row.ReadTime, row.ViewCount,
		row.AvgRating,
		createdAt,
		publishedAt, lastMajorUpdate,
	), nil
}

// Disabled is the fallback searcher used when no Supabase project is
// configured; queries fail fast instead of silently returning nothing
type Disabled struct{}

// NewDisabled creates the fallback searcher
func NewDisabled() ports.GuideSearcher {
	return Disabled{}
}

// Search always reports the search backend as unavailable
func (Disabled) Search(ctx context.Context, query string, limit int) ([]*entities.Guide, error) {
	return nil, pkgerrors.NewExternalError("search", fmt.Errorf("search backend not configured"))
}
