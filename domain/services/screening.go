package services

import (
	"strings"

	pkgerrors "proofr-backend/pkg/errors"
)

// DefaultDenylist is the fallback screening list; deployments override it
// through configuration.
var DefaultDenylist = []string{"spam", "abuse"}

// ContentScreener rejects content containing any denylisted term.
// Matching is case-insensitive substring containment.
type ContentScreener struct {
	denylist []string
}

// NewContentScreener creates a screener; empty terms are ignored and a nil
// list falls back to the default
func NewContentScreener(denylist []string) *ContentScreener {
	if denylist == nil {
		denylist = DefaultDenylist
	}
	terms := make([]string, 0, len(denylist))
	for _, term := range denylist {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			terms = append(terms, term)
		}
	}
	return &ContentScreener{denylist: terms}
}

// Screen returns a content-rejected error when the content contains a
// denylisted term
func (s *ContentScreener) Screen(content string) error {
	lower := strings.ToLower(content)
	for _, term := range s.denylist {
		if strings.Contains(lower, term) {
			return pkgerrors.NewContentRejectedError("comment contains inappropriate content")
		}
	}
	return nil
}
