package queries

import (
	"time"

	"proofr-backend/domain/core/entities"
)

// GuideView is the read-side projection of a guide returned by the API
type GuideView struct {
	ID              string     `json:"id"`
	AuthorID        string     `json:"author_id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Description     string     `json:"description"`
	Category        string     `json:"category"`
	Difficulty      string     `json:"difficulty"`
	Content         string     `json:"content"`
	Tags            []string   `json:"tags"`
	MetaDescription string     `json:"meta_description,omitempty"`
	Status          string     `json:"status"`
	ModerationScore float64    `json:"moderation_score"`
	Version         int        `json:"version"`
	WordCount       int        `json:"word_count"`
	ReadTime        int        `json:"read_time"`
	ViewCount       int        `json:"view_count"`
	AvgRating       float64    `json:"avg_rating"`
	CreatedAt       time.Time  `json:"created_at"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	LastMajorUpdate *time.Time `json:"last_major_update,omitempty"`
}

// NewGuideView projects a guide entity into its API shape
func NewGuideView(g *entities.Guide) *GuideView {
	return &GuideView{
		ID:              g.ID().String(),
		AuthorID:        g.AuthorID(),
		Title:           g.Title(),
		Slug:            g.Slug(),
		Description:     g.Description(),
		Category:        g.Category(),
		Difficulty:      string(g.Difficulty()),
		Content:         g.Content(),
		Tags:            g.Tags(),
		MetaDescription: g.MetaDescription(),
		Status:          string(g.Status()),
		ModerationScore: g.ModerationScore(),
		Version:         g.Version(),
		WordCount:       g.WordCount(),
		ReadTime:        g.ReadTime(),
		ViewCount:       g.ViewCount(),
		AvgRating:       g.AvgRating(),
		CreatedAt:       g.CreatedAt(),
		PublishedAt:     g.PublishedAt(),
		LastMajorUpdate: g.LastMajorUpdate(),
	}
}

// NewGuideViews projects a slice of guides
func NewGuideViews(guides []*entities.Guide) []*GuideView {
	views := make([]*GuideView, 0, len(guides))
	for _, g := range guides {
		views = append(views, NewGuideView(g))
	}
	return views
}
