package entities

import (
	"strings"
	"time"
	"unicode"

	"proofr-backend/domain/core/valueobjects"
	"proofr-backend/domain/events"
	pkgerrors "proofr-backend/pkg/errors"
)

// GuideStatus represents the moderation state of a guide
type GuideStatus string

const (
	StatusPendingReview GuideStatus = "pending_review"
	StatusPublished     GuideStatus = "published"
	StatusRejected      GuideStatus = "rejected"
)

// GuideDifficulty represents the intended audience level
type GuideDifficulty string

const (
	DifficultyBeginner     GuideDifficulty = "beginner"
	DifficultyIntermediate GuideDifficulty = "intermediate"
	DifficultyAdvanced     GuideDifficulty = "advanced"
)

// ParseDifficulty maps a raw string onto a difficulty, defaulting to beginner
func ParseDifficulty(s string) (GuideDifficulty, error) {
	switch GuideDifficulty(s) {
	case "":
		return DifficultyBeginner, nil
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return GuideDifficulty(s), nil
	default:
		return "", pkgerrors.NewValidationError("difficulty must be one of: beginner, intermediate, advanced")
	}
}

// moderationScorePlaceholder is stored on create until the external
// moderation pipeline scores the guide.
const moderationScorePlaceholder = 0.95

// wordsPerMinute drives the derived read_time estimate
const wordsPerMinute = 200

// Guide is the main content entity. It owns its versioning and moderation
// state; the author reference is immutable after creation.
type Guide struct {
	id              valueobjects.GuideID
	authorID        string
	title           string
	slug            string
	description     string
	category        string
	difficulty      GuideDifficulty
	content         string
	tags            []string
	metaDescription string
	status          GuideStatus
	moderationScore float64
	version         int
	wordCount       int
	readTime        int
	viewCount       int
	avgRating       float64
	createdAt       time.Time
	publishedAt     *time.Time
	lastMajorUpdate *time.Time

	events []events.DomainEvent
}

// GuideDraft carries the author-supplied fields for a new guide
type GuideDraft struct {
	Title           string
	Description     string
	Category        string
	Difficulty      string
	Content         string
	Tags            []string
	MetaDescription string
}

// NewGuide creates a guide in pending_review at version 1
func NewGuide(authorID string, draft GuideDraft) (*Guide, error) {
	return NewGuideWithID(valueobjects.NewGuideID(), authorID, draft)
}

// NewGuideWithID creates a guide with a caller-supplied ID. The API layer
// generates IDs up front so it can read back the created guide.
func NewGuideWithID(id valueobjects.GuideID, authorID string, draft GuideDraft) (*Guide, error) {
	if id.IsEmpty() {
		return nil, pkgerrors.NewValidationError("guide ID is required")
	}
	if authorID == "" {
		return nil, pkgerrors.NewValidationError("author is required")
	}
	if strings.TrimSpace(draft.Title) == "" ||
		strings.TrimSpace(draft.Description) == "" ||
		strings.TrimSpace(draft.Category) == "" ||
		strings.TrimSpace(draft.Content) == "" {
		return nil, pkgerrors.NewValidationError("missing required fields")
	}

	difficulty, err := ParseDifficulty(draft.Difficulty)
	if err != nil {
		return nil, err
	}

	tags := draft.Tags
	if tags == nil {
		tags = []string{}
	}

	g := &Guide{
		id:              id,
		authorID:        authorID,
		title:           draft.Title,
		slug:            Slugify(draft.Title),
		description:     draft.Description,
		category:        draft.Category,
		difficulty:      difficulty,
		content:         draft.Content,
		tags:            tags,
		metaDescription: draft.MetaDescription,
		status:          StatusPendingReview,
		moderationScore: moderationScorePlaceholder,
		version:         1,
		createdAt:       time.Now(),
		events:          []events.DomainEvent{},
	}
	g.recomputeReadingStats()

	g.addEvent(events.NewGuideCreated(
		g.id.String(),
		authorID,
		g.title,
		g.category,
		g.moderationScore,
	))

	return g, nil
}

// GuidePatch is the allow-listed set of author-updatable fields.
// Nil fields are left unchanged.
type GuidePatch struct {
	Title           *string
	Description     *string
	Category        *string
	Difficulty      *string
	Content         *string
	Tags            *[]string
	MetaDescription *string
}

// IsEmpty reports whether the patch changes nothing
func (p GuidePatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil &&
		p.Difficulty == nil && p.Content == nil && p.Tags == nil &&
		p.MetaDescription == nil
}

// ApplyPatch merges the patch into the guide, bumps the version by exactly
// one and stamps last_major_update. Unspecified fields are untouched.
func (g *Guide) ApplyPatch(patch GuidePatch) error {
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return pkgerrors.NewValidationError("title cannot be empty")
		}
		g.title = *patch.Title
		g.slug = Slugify(*patch.Title)
	}
	if patch.Description != nil {
		if strings.TrimSpace(*patch.Description) == "" {
			return pkgerrors.NewValidationError("description cannot be empty")
		}
		g.description = *patch.Description
	}
	if patch.Category != nil {
		if strings.TrimSpace(*patch.Category) == "" {
			return pkgerrors.NewValidationError("category cannot be empty")
		}
		g.category = *patch.Category
	}
	if patch.Difficulty != nil {
		difficulty, err := ParseDifficulty(*patch.Difficulty)
		if err != nil {
			return err
		}
		g.difficulty = difficulty
	}
	if patch.Content != nil {
		if strings.TrimSpace(*patch.Content) == "" {
			return pkgerrors.NewValidationError("content cannot be empty")
		}
		g.content = *patch.Content
		g.recomputeReadingStats()
	}
	if patch.Tags != nil {
		g.tags = *patch.Tags
	}
	if patch.MetaDescription != nil {
		g.metaDescription = *patch.MetaDescription
	}

	g.version++
	now := time.Now()
	g.lastMajorUpdate = &now

	g.addEvent(events.NewGuideUpdated(g.id.String(), g.authorID, g.version))
	return nil
}

// IsAuthoredBy reports whether userID owns this guide
func (g *Guide) IsAuthoredBy(userID string) bool {
	return g.authorID == userID
}

// IsPublished reports whether the guide is visible in public listings
func (g *Guide) IsPublished() bool {
	return g.status == StatusPublished
}

func (g *Guide) recomputeReadingStats() {
	g.wordCount = len(strings.Fields(g.content))
	g.readTime = (g.wordCount + wordsPerMinute - 1) / wordsPerMinute
	if g.readTime < 1 {
		g.readTime = 1
	}
}

// Accessors

func (g *Guide) ID() valueobjects.GuideID      { return g.id }
func (g *Guide) AuthorID() string              { return g.authorID }
func (g *Guide) Title() string                 { return g.title }
func (g *Guide) Slug() string                  { return g.slug }
func (g *Guide) Description() string           { return g.description }
func (g *Guide) Category() string              { return g.category }
func (g *Guide) Difficulty() GuideDifficulty   { return g.difficulty }
func (g *Guide) Content() string               { return g.content }
func (g *Guide) Tags() []string                { return g.tags }
func (g *Guide) MetaDescription() string       { return g.metaDescription }
func (g *Guide) Status() GuideStatus           { return g.status }
func (g *Guide) ModerationScore() float64      { return g.moderationScore }
func (g *Guide) Version() int                  { return g.version }
func (g *Guide) WordCount() int                { return g.wordCount }
func (g *Guide) ReadTime() int                 { return g.readTime }
func (g *Guide) ViewCount() int                { return g.viewCount }
func (g *Guide) AvgRating() float64            { return g.avgRating }
func (g *Guide) CreatedAt() time.Time          { return g.createdAt }
func (g *Guide) PublishedAt() *time.Time       { return g.publishedAt }
func (g *Guide) LastMajorUpdate() *time.Time   { return g.lastMajorUpdate }

// GetUncommittedEvents returns events raised since the last commit
func (g *Guide) GetUncommittedEvents() []events.DomainEvent {
	return g.events
}

// MarkEventsAsCommitted clears the uncommitted event list
func (g *Guide) MarkEventsAsCommitted() {
	g.events = []events.DomainEvent{}
}

func (g *Guide) addEvent(event events.DomainEvent) {
	g.events = append(g.events, event)
}

// ReconstructGuide rebuilds a guide from persisted state without raising events
func ReconstructGuide(
	id valueobjects.GuideID,
	authorID string,
	title, slug, description, category string,
	difficulty GuideDifficulty,
	content string,
	tags []string,
	metaDescription string,
	status GuideStatus,
	moderationScore float64,
	version, wordCount, readTime, viewCount int,
	avgRating float64,
	createdAt time.Time,
	publishedAt, lastMajorUpdate *time.Time,
) *Guide {
	if tags == nil {
		tags = []string{}
	}
	return &Guide{
		id:              id,
		authorID:        authorID,
		title:           title,
		slug:            slug,
		description:     description,
		category:        category,
		difficulty:      difficulty,
		content:         content,
		tags:            tags,
		metaDescription: metaDescription,
		status:          status,
		moderationScore: moderationScore,
		version:         version,
		wordCount:       wordCount,
		readTime:        readTime,
		viewCount:       viewCount,
		avgRating:       avgRating,
		createdAt:       createdAt,
		publishedAt:     publishedAt,
		lastMajorUpdate: lastMajorUpdate,
		events:          []events.DomainEvent{},
	}
}

// Slugify turns a title into a URL-safe slug
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
