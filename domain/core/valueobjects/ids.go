package valueobjects

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// GuideID uniquely identifies a guide
type GuideID struct {
	value string
}

// NewGuideID generates a new unique guide ID
func NewGuideID() GuideID {
	return GuideID{value: uuid.New().String()}
}

// NewGuideIDFromString creates a GuideID from an existing string
func NewGuideIDFromString(s string) (GuideID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return GuideID{}, fmt.Errorf("invalid guide ID: %w", err)
	}
	return GuideID{value: s}, nil
}

// String returns the string representation
func (id GuideID) String() string {
	return id.value
}

// IsEmpty reports whether the ID is the zero value
func (id GuideID) IsEmpty() bool {
	return id.value == ""
}

// MarshalJSON encodes the ID as a plain string
func (id GuideID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

// UnmarshalJSON decodes the ID from a plain string
func (id *GuideID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := NewGuideIDFromString(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// CommentID uniquely identifies a comment
type CommentID struct {
	value string
}

// NewCommentID generates a new unique comment ID
func NewCommentID() CommentID {
	return CommentID{value: uuid.New().String()}
}

// NewCommentIDFromString creates a CommentID from an existing string
func NewCommentIDFromString(s string) (CommentID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return CommentID{}, fmt.Errorf("invalid comment ID: %w", err)
	}
	return CommentID{value: s}, nil
}

// String returns the string representation
func (id CommentID) String() string {
	return id.value
}

// IsEmpty reports whether the ID is the zero value
func (id CommentID) IsEmpty() bool {
	return id.value == ""
}

// MarshalJSON encodes the ID as a plain string
func (id CommentID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

// UnmarshalJSON decodes the ID from a plain string
func (id *CommentID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := NewCommentIDFromString(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
