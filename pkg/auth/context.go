package auth

import (
	"context"
	"errors"
)

// UserContext represents the authenticated caller
type UserContext struct {
	UserID string
	Email  string
	Roles  []string
}

type contextKey string

// UserContextKey is the context key for the authenticated user
const UserContextKey contextKey = "user"

// GetUserFromContext extracts the authenticated user from the context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(UserContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, errors.New("user not found in context")
	}
	return user, nil
}

// SetUserInContext adds the authenticated user to the context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

// CallerID returns the user ID from the context, or "" when the
// request is anonymous. Public endpoints use this for optional viewers.
func CallerID(ctx context.Context) string {
	if user, err := GetUserFromContext(ctx); err == nil {
		return user.UserID
	}
	return ""
}
