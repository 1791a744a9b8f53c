package events

// Event type names published to the event bus. The moderation pipeline
// subscribes to guide.created to start its review.
const (
	EventTypeGuideCreated        = "guide.created"
	EventTypeGuideUpdated        = "guide.updated"
	EventTypeGuideDeleted        = "guide.deleted"
	EventTypeCommentCreated      = "comment.created"
	EventTypeInteractionRecorded = "interaction.recorded"
)

// GuideCreated is raised when a guide enters the review queue
type GuideCreated struct {
	BaseEvent
	AuthorID        string  `json:"author_id"`
	Title           string  `json:"title"`
	Category        string  `json:"category"`
	ModerationScore float64 `json:"moderation_score"`
}

// NewGuideCreated creates a GuideCreated event
func NewGuideCreated(guideID, authorID, title, category string, moderationScore float64) GuideCreated {
	return GuideCreated{
		BaseEvent:       NewBaseEvent(EventTypeGuideCreated, guideID),
		AuthorID:        authorID,
		Title:           title,
		Category:        category,
		ModerationScore: moderationScore,
	}
}

// GuideUpdated is raised when an author revises a guide
type GuideUpdated struct {
	BaseEvent
	AuthorID string `json:"author_id"`
	Version  int    `json:"version"`
}

// NewGuideUpdated creates a GuideUpdated event
func NewGuideUpdated(guideID, authorID string, version int) GuideUpdated {
	return GuideUpdated{
		BaseEvent: NewBaseEvent(EventTypeGuideUpdated, guideID),
		AuthorID:  authorID,
		Version:   version,
	}
}

// GuideDeleted is raised when an author removes a guide
type GuideDeleted struct {
	BaseEvent
	AuthorID string `json:"author_id"`
}

// NewGuideDeleted creates a GuideDeleted event
func NewGuideDeleted(guideID, authorID string) GuideDeleted {
	return GuideDeleted{
		BaseEvent: NewBaseEvent(EventTypeGuideDeleted, guideID),
		AuthorID:  authorID,
	}
}

// CommentCreated is raised when a comment passes screening and is stored
type CommentCreated struct {
	BaseEvent
	GuideID    string `json:"guide_id"`
	AuthorID   string `json:"author_id"`
	IsQuestion bool   `json:"is_question"`
	IsReply    bool   `json:"is_reply"`
}

// NewCommentCreated creates a CommentCreated event
func NewCommentCreated(commentID, guideID, authorID string, isQuestion, isReply bool) CommentCreated {
	return CommentCreated{
		BaseEvent:  NewBaseEvent(EventTypeCommentCreated, commentID),
		GuideID:    guideID,
		AuthorID:   authorID,
		IsQuestion: isQuestion,
		IsReply:    isReply,
	}
}

// InteractionRecorded is raised after an interaction upsert
type InteractionRecorded struct {
	BaseEvent
	UserID string `json:"user_id"`
	Kind   string `json:"kind"`
}

// NewInteractionRecorded creates an InteractionRecorded event
func NewInteractionRecorded(guideID, userID, kind string) InteractionRecorded {
	return InteractionRecorded{
		BaseEvent: NewBaseEvent(EventTypeInteractionRecorded, guideID),
		UserID:    userID,
		Kind:      kind,
	}
}
