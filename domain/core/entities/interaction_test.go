package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookmarkUpdate(t *testing.T) {
	on := NewBookmarkUpdate("g1", "u1", true)
	require.NotNil(t, on.Bookmarked)
	assert.True(t, *on.Bookmarked)
	assert.NotNil(t, on.BookmarkedAt)
	assert.False(t, on.ClearBookmark)

	off := NewBookmarkUpdate("g1", "u1", false)
	require.NotNil(t, off.Bookmarked)
	assert.False(t, *off.Bookmarked)
	assert.Nil(t, off.BookmarkedAt)
	assert.True(t, off.ClearBookmark)
}

func TestNewRatingUpdate(t *testing.T) {
	for _, rating := range []int{1, 3, 5} {
		u, err := NewRatingUpdate("g1", "u1", rating)
		require.NoError(t, err)
		assert.Equal(t, rating, *u.Rating)
		assert.NotNil(t, u.RatedAt)
	}
	for _, rating := range []int{0, -1, 6} {
		_, err := NewRatingUpdate("g1", "u1", rating)
		assert.Error(t, err, "rating %d", rating)
	}
}

func TestNewShareUpdate(t *testing.T) {
	u := NewShareUpdate("g1", "u1", "twitter")
	assert.Equal(t, "twitter", *u.ShareMedium)
	assert.True(t, *u.Shared)
	assert.NotNil(t, u.SharedAt)

	u = NewShareUpdate("g1", "u1", "")
	assert.Equal(t, "unknown", *u.ShareMedium)
}

func TestNewProgressUpdate(t *testing.T) {
	assert.Equal(t, 0, *NewProgressUpdate("g1", "u1", -5).ReadProgress)
	assert.Equal(t, 100, *NewProgressUpdate("g1", "u1", 150).ReadProgress)
	assert.Equal(t, 42, *NewProgressUpdate("g1", "u1", 42).ReadProgress)
}

func TestInteractionApply(t *testing.T) {
	t.Run("merges kinds without clobbering", func(t *testing.T) {
		record := &Interaction{GuideID: "g1", UserID: "u1"}

		record.Apply(NewBookmarkUpdate("g1", "u1", true))
		rating, err := NewRatingUpdate("g1", "u1", 4)
		require.NoError(t, err)
		record.Apply(rating)
		record.Apply(NewProgressUpdate("g1", "u1", 80))

		assert.True(t, record.Bookmarked)
		assert.NotNil(t, record.BookmarkedAt)
		require.NotNil(t, record.Rating)
		assert.Equal(t, 4, *record.Rating)
		assert.Equal(t, 80, record.ReadProgress)
		assert.False(t, record.FoundHelpful)
		assert.False(t, record.Shared)
	})

	t.Run("clearing a bookmark drops the timestamp only", func(t *testing.T) {
		record := &Interaction{GuideID: "g1", UserID: "u1"}
		record.Apply(NewBookmarkUpdate("g1", "u1", true))
		record.Apply(NewHelpfulUpdate("g1", "u1", true))

		record.Apply(NewBookmarkUpdate("g1", "u1", false))

		assert.False(t, record.Bookmarked)
		assert.Nil(t, record.BookmarkedAt)
		assert.True(t, record.FoundHelpful)
	})

	t.Run("re-rating replaces the previous value", func(t *testing.T) {
		record := &Interaction{GuideID: "g1", UserID: "u1"}
		first, err := NewRatingUpdate("g1", "u1", 2)
		require.NoError(t, err)
		record.Apply(first)

		second, err := NewRatingUpdate("g1", "u1", 5)
		require.NoError(t, err)
		record.Apply(second)

		assert.Equal(t, 5, *record.Rating)
	})
}
