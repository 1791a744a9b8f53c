package entities

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proofr-backend/domain/core/valueobjects"
	"proofr-backend/domain/events"
	pkgerrors "proofr-backend/pkg/errors"
)

func validDraft() GuideDraft {
	return GuideDraft{
		Title:       "Crafting a Strong Personal Statement",
		Description: "How to structure and revise your personal statement",
		Category:    "essays",
		Content:     "Start early. Revise often. Read it out loud.",
	}
}

func TestNewGuide(t *testing.T) {
	t.Run("creates a pending guide at version 1", func(t *testing.T) {
		guide, err := NewGuide("author-1", validDraft())
		require.NoError(t, err)

		assert.Equal(t, StatusPendingReview, guide.Status())
		assert.Equal(t, 1, guide.Version())
		assert.Equal(t, 0.95, guide.ModerationScore())
		assert.Equal(t, DifficultyBeginner, guide.Difficulty())
		assert.Equal(t, "crafting-a-strong-personal-statement", guide.Slug())
		assert.Nil(t, guide.PublishedAt())
		assert.NotNil(t, guide.Tags())
		assert.False(t, guide.ID().IsEmpty())
	})

	t.Run("raises a created event", func(t *testing.T) {
		guide, err := NewGuide("author-1", validDraft())
		require.NoError(t, err)

		raised := guide.GetUncommittedEvents()
		require.Len(t, raised, 1)
		created, ok := raised[0].(events.GuideCreated)
		require.True(t, ok)
		assert.Equal(t, "author-1", created.AuthorID)
		assert.Equal(t, 0.95, created.ModerationScore)

		guide.MarkEventsAsCommitted()
		assert.Empty(t, guide.GetUncommittedEvents())
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		for _, mutate := range []func(*GuideDraft){
			func(d *GuideDraft) { d.Title = "  " },
			func(d *GuideDraft) { d.Description = "" },
			func(d *GuideDraft) { d.Category = "" },
			func(d *GuideDraft) { d.Content = "" },
		} {
			draft := validDraft()
			mutate(&draft)
			_, err := NewGuide("author-1", draft)
			assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeValidation))
		}
	})

	t.Run("rejects missing author", func(t *testing.T) {
		_, err := NewGuide("", validDraft())
		assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeValidation))
	})

	t.Run("rejects unknown difficulty", func(t *testing.T) {
		draft := validDraft()
		draft.Difficulty = "expert"
		_, err := NewGuide("author-1", draft)
		assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeValidation))
	})
}

func TestNewGuideWithID(t *testing.T) {
	id := valueobjects.NewGuideID()
	guide, err := NewGuideWithID(id, "author-1", validDraft())
	require.NoError(t, err)
	assert.Equal(t, id.String(), guide.ID().String())

	_, err = NewGuideWithID(valueobjects.GuideID{}, "author-1", validDraft())
	assert.Error(t, err)
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("")
	require.NoError(t, err)
	assert.Equal(t, DifficultyBeginner, d)

	d, err = ParseDifficulty("advanced")
	require.NoError(t, err)
	assert.Equal(t, DifficultyAdvanced, d)

	_, err = ParseDifficulty("impossible")
	assert.Error(t, err)
}

func TestReadingStats(t *testing.T) {
	draft := validDraft()
	draft.Content = strings.TrimSpace(strings.Repeat("word ", 450))
	guide, err := NewGuide("author-1", draft)
	require.NoError(t, err)
	assert.Equal(t, 450, guide.WordCount())
	assert.Equal(t, 3, guide.ReadTime())

	draft.Content = "tiny"
	guide, err = NewGuide("author-1", draft)
	require.NoError(t, err)
	assert.Equal(t, 1, guide.ReadTime())
}

func TestApplyPatch(t *testing.T) {
	t.Run("bumps version and stamps last major update", func(t *testing.T) {
		guide, err := NewGuide("author-1", validDraft())
		require.NoError(t, err)
		guide.MarkEventsAsCommitted()

		title := "A New Title"
		require.NoError(t, guide.ApplyPatch(GuidePatch{Title: &title}))

		assert.Equal(t, 2, guide.Version())
		assert.Equal(t, "A New Title", guide.Title())
		assert.Equal(t, "a-new-title", guide.Slug())
		require.NotNil(t, guide.LastMajorUpdate())

		raised := guide.GetUncommittedEvents()
		require.Len(t, raised, 1)
		updated, ok := raised[0].(events.GuideUpdated)
		require.True(t, ok)
		assert.Equal(t, 2, updated.Version)
	})

	t.Run("leaves untouched fields alone", func(t *testing.T) {
		guide, err := NewGuide("author-1", validDraft())
		require.NoError(t, err)

		category := "interviews"
		require.NoError(t, guide.ApplyPatch(GuidePatch{Category: &category}))

		assert.Equal(t, "interviews", guide.Category())
		assert.Equal(t, validDraft().Title, guide.Title())
		assert.Equal(t, validDraft().Content, guide.Content())
	})

	t.Run("recomputes reading stats on content change", func(t *testing.T) {
		guide, err := NewGuide("author-1", validDraft())
		require.NoError(t, err)

		content := strings.TrimSpace(strings.Repeat("word ", 600))
		require.NoError(t, guide.ApplyPatch(GuidePatch{Content: &content}))
		assert.Equal(t, 600, guide.WordCount())
		assert.Equal(t, 3, guide.ReadTime())
	})

	t.Run("rejects blank values", func(t *testing.T) {
		guide, err := NewGuide("author-1", validDraft())
		require.NoError(t, err)

		blank := "   "
		assert.Error(t, guide.ApplyPatch(GuidePatch{Title: &blank}))
		assert.Error(t, guide.ApplyPatch(GuidePatch{Description: &blank}))
		assert.Error(t, guide.ApplyPatch(GuidePatch{Content: &blank}))

		bad := "grandmaster"
		assert.Error(t, guide.ApplyPatch(GuidePatch{Difficulty: &bad}))
		assert.Equal(t, 1, guide.Version())
	})
}

func TestIsAuthoredBy(t *testing.T) {
	guide, err := NewGuide("author-1", validDraft())
	require.NoError(t, err)
	assert.True(t, guide.IsAuthoredBy("author-1"))
	assert.False(t, guide.IsAuthoredBy("someone-else"))
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":             "hello-world",
		"  SAT vs ACT: which one? ": "sat-vs-act-which-one",
		"---":                       "",
		"Already-Slugged":           "already-slugged",
	}
	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input %q", input)
	}
}
