package queries

import (
	"context"
	"errors"
	"sort"

	"proofr-backend/application/ports"
	"proofr-backend/domain/core/entities"
	"proofr-backend/domain/core/valueobjects"
)

// ListCommentsQuery lists a guide's visible comment threads
type ListCommentsQuery struct {
	GuideID string `json:"guide_id" validate:"required,uuid"`
}

// Validate validates the query
func (q ListCommentsQuery) Validate() error {
	if q.GuideID == "" {
		return errors.New("guide ID is required")
	}
	return nil
}

// ListCommentsResult is the threaded comment payload
type ListCommentsResult struct {
	Comments []*entities.Comment `json:"comments"`
	Total    int                 `json:"total"`
}

// ListCommentsHandler handles the ListCommentsQuery
type ListCommentsHandler struct {
	guideRepo   ports.GuideRepository
	commentRepo ports.CommentRepository
}

// NewListCommentsHandler creates a new handler instance
func NewListCommentsHandler(
	guideRepo ports.GuideRepository,
	commentRepo ports.CommentRepository,
) *ListCommentsHandler {
	return &ListCommentsHandler{
		guideRepo:   guideRepo,
		commentRepo: commentRepo,
	}
}

// Handle executes the list comments query. Top-level comments come newest
// first with their replies nested oldest first. Replies whose parent is
// hidden are dropped along with the parent.
func (h *ListCommentsHandler) Handle(ctx context.Context, q ListCommentsQuery) (*ListCommentsResult, error) {
	guideID, err := valueobjects.NewGuideIDFromString(q.GuideID)
	if err != nil {
		return nil, err
	}

	if _, err := h.guideRepo.GetByID(ctx, guideID); err != nil {
		return nil, err
	}

	comments, err := h.commentRepo.ListVisibleByGuide(ctx, guideID)
	if err != nil {
		return nil, err
	}

	threads := assembleThreads(comments)
	total := 0
	for _, c := range threads {
		total += 1 + len(c.Replies)
	}

	return &ListCommentsResult{Comments: threads, Total: total}, nil
}

func assembleThreads(comments []*entities.Comment) []*entities.Comment {
	topLevel := make([]*entities.Comment, 0, len(comments))
	byID := make(map[string]*entities.Comment, len(comments))

	for _, c := range comments {
		if !c.IsReply() {
			c.Replies = nil
			topLevel = append(topLevel, c)
			byID[c.ID.String()] = c
		}
	}

	for _, c := range comments {
		if !c.IsReply() {
			continue
		}
		parent, ok := byID[*c.ParentCommentID]
		if !ok {
			// Parent hidden or gone, the reply goes with it
			continue
		}
		parent.Replies = append(parent.Replies, c)
	}

	sort.SliceStable(topLevel, func(i, j int) bool {
		return topLevel[i].CreatedAt.After(topLevel[j].CreatedAt)
	})
	for _, c := range topLevel {
		replies := c.Replies
		sort.SliceStable(replies, func(i, j int) bool {
			return replies[i].CreatedAt.Before(replies[j].CreatedAt)
		})
	}

	return topLevel
}
