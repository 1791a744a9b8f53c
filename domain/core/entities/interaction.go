package entities

import (
	"time"

	pkgerrors "proofr-backend/pkg/errors"
)

// Interaction kinds accepted by the tracker
const (
	InteractionBookmark = "bookmark"
	InteractionHelpful  = "helpful"
	InteractionRating   = "rating"
	InteractionShare    = "share"
	InteractionProgress = "progress"
)

// Interaction is the engagement record for one (guide, user) pair.
// There is at most one per pair; every interaction kind writes into
// its own fields of the same record.
type Interaction struct {
	GuideID      string     `json:"guide_id"`
	UserID       string     `json:"user_id"`
	Bookmarked   bool       `json:"bookmarked"`
	BookmarkedAt *time.Time `json:"bookmarked_at,omitempty"`
	FoundHelpful bool       `json:"found_helpful"`
	Rating       *int       `json:"rating,omitempty"`
	RatedAt      *time.Time `json:"rated_at,omitempty"`
	Shared       bool       `json:"shared"`
	SharedAt     *time.Time `json:"shared_at,omitempty"`
	ShareMedium  string     `json:"share_medium,omitempty"`
	ReadProgress int        `json:"read_progress"`
}

// InteractionUpdate is a field-level change set for one interaction record.
// Only non-nil fields are written; the persistence layer must merge them
// into the existing record without touching anything else.
type InteractionUpdate struct {
	GuideID string
	UserID  string
	Kind    string

	Bookmarked     *bool
	BookmarkedAt   *time.Time
	ClearBookmark  bool
	FoundHelpful   *bool
	Rating         *int
	RatedAt        *time.Time
	Shared         *bool
	SharedAt       *time.Time
	ShareMedium    *string
	ReadProgress   *int
}

// NewBookmarkUpdate toggles the bookmark; clearing it also clears the timestamp
func NewBookmarkUpdate(guideID, userID string, on bool) *InteractionUpdate {
	u := &InteractionUpdate{
		GuideID:    guideID,
		UserID:     userID,
		Kind:       InteractionBookmark,
		Bookmarked: &on,
	}
	if on {
		now := time.Now()
		u.BookmarkedAt = &now
	} else {
		u.ClearBookmark = true
	}
	return u
}

// NewHelpfulUpdate records whether the user found the guide helpful
func NewHelpfulUpdate(guideID, userID string, helpful bool) *InteractionUpdate {
	return &InteractionUpdate{
		GuideID:      guideID,
		UserID:       userID,
		Kind:         InteractionHelpful,
		FoundHelpful: &helpful,
	}
}

// NewRatingUpdate records a star rating; values outside [1,5] are rejected
func NewRatingUpdate(guideID, userID string, rating int) (*InteractionUpdate, error) {
	if rating < 1 || rating > 5 {
		return nil, pkgerrors.NewValidationError("rating must be between 1 and 5")
	}
	now := time.Now()
	return &InteractionUpdate{
		GuideID: guideID,
		UserID:  userID,
		Kind:    InteractionRating,
		Rating:  &rating,
		RatedAt: &now,
	}, nil
}

// NewShareUpdate records a share; an empty medium is stored as "unknown"
func NewShareUpdate(guideID, userID, medium string) *InteractionUpdate {
	if medium == "" {
		medium = "unknown"
	}
	shared := true
	now := time.Now()
	return &InteractionUpdate{
		GuideID:     guideID,
		UserID:      userID,
		Kind:        InteractionShare,
		Shared:      &shared,
		SharedAt:    &now,
		ShareMedium: &medium,
	}
}

// NewProgressUpdate records read progress, clamped into [0,100]
func NewProgressUpdate(guideID, userID string, progress int) *InteractionUpdate {
	progress = ClampProgress(progress)
	return &InteractionUpdate{
		GuideID:      guideID,
		UserID:       userID,
		Kind:         InteractionProgress,
		ReadProgress: &progress,
	}
}

// ClampProgress clamps a progress value into [0,100]
func ClampProgress(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Apply merges the update into an interaction record. This is the reference
// merge semantics; the DynamoDB repository mirrors it attribute by attribute.
func (i *Interaction) Apply(u *InteractionUpdate) {
	if u.Bookmarked != nil {
		i.Bookmarked = *u.Bookmarked
	}
	if u.BookmarkedAt != nil {
		i.BookmarkedAt = u.BookmarkedAt
	}
	if u.ClearBookmark {
		i.BookmarkedAt = nil
	}
	if u.FoundHelpful != nil {
		i.FoundHelpful = *u.FoundHelpful
	}
	if u.Rating != nil {
		i.Rating = u.Rating
	}
	if u.RatedAt != nil {
		i.RatedAt = u.RatedAt
	}
	if u.Shared != nil {
		i.Shared = *u.Shared
	}
	if u.SharedAt != nil {
		i.SharedAt = u.SharedAt
	}
	if u.ShareMedium != nil {
		i.ShareMedium = *u.ShareMedium
	}
	if u.ReadProgress != nil {
		i.ReadProgress = *u.ReadProgress
	}
}
