package entities

import (
	"strings"
	"time"

	"proofr-backend/domain/core/valueobjects"
	pkgerrors "proofr-backend/pkg/errors"
)

// CommentAuthor is the public identity attached to a comment.
// Only the ID and email-equivalent identifier are ever exposed.
type CommentAuthor struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Comment is a single entry in a guide's two-level thread. Replies carry
// the ID of their top-level parent; deeper nesting is not supported.
type Comment struct {
	ID              valueobjects.CommentID `json:"id"`
	GuideID         valueobjects.GuideID   `json:"guide_id"`
	Author          CommentAuthor          `json:"author"`
	Content         string                 `json:"content"`
	ParentCommentID *string                `json:"parent_comment_id,omitempty"`
	IsQuestion      bool                   `json:"is_question"`
	Hidden          bool                   `json:"hidden"`
	CreatedAt       time.Time              `json:"created_at"`
	Replies         []*Comment             `json:"replies,omitempty"`
}

// NewComment creates a comment with trimmed content and the derived
// is_question flag. Screening happens before this in the command handler.
func NewComment(guideID valueobjects.GuideID, author CommentAuthor, content string, parentCommentID *string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, pkgerrors.NewValidationError("comment content is required")
	}
	if author.ID == "" {
		return nil, pkgerrors.NewValidationError("author is required")
	}

	return &Comment{
		ID:              valueobjects.NewCommentID(),
		GuideID:         guideID,
		Author:          author,
		Content:         content,
		ParentCommentID: parentCommentID,
		IsQuestion:      strings.Contains(content, "?"),
		Hidden:          false,
		CreatedAt:       time.Now(),
	}, nil
}

// IsReply reports whether the comment is nested under a parent
func (c *Comment) IsReply() bool {
	return c.ParentCommentID != nil && *c.ParentCommentID != ""
}
