package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentScreener(t *testing.T) {
	t.Run("nil list falls back to the default", func(t *testing.T) {
		screener := NewContentScreener(nil)
		assert.Error(t, screener.Screen("this is SPAM content"))
		assert.NoError(t, screener.Screen("a perfectly fine comment"))
	})

	t.Run("matching is case-insensitive substring", func(t *testing.T) {
		screener := NewContentScreener([]string{"Badword"})
		assert.Error(t, screener.Screen("contains BADWORD inside"))
		assert.Error(t, screener.Screen("embeddedbadwordhere"))
		assert.NoError(t, screener.Screen("clean text"))
	})

	t.Run("blank terms are ignored", func(t *testing.T) {
		screener := NewContentScreener([]string{"", "  ", "blocked"})
		assert.NoError(t, screener.Screen("anything at all"))
		assert.Error(t, screener.Screen("this is blocked"))
	})

	t.Run("empty list screens nothing", func(t *testing.T) {
		screener := NewContentScreener([]string{})
		assert.NoError(t, screener.Screen("spam and abuse both fine here"))
	})
}
