package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusOf(NewValidationError("bad")))
	assert.Equal(t, http.StatusNotFound, StatusOf(NewNotFoundError("guide")))
	assert.Equal(t, http.StatusForbidden, StatusOf(NewForbiddenError("")))
	assert.Equal(t, http.StatusGatewayTimeout, StatusOf(NewTimeoutError("query")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(NewDatabaseError("put", errors.New("x"))))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("plain")))
}

func TestStatusOfWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewNotFoundError("comment"))
	assert.Equal(t, http.StatusNotFound, StatusOf(wrapped))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "rating must be valid", MessageOf(NewValidationError("rating must be valid")))
	assert.Equal(t, "guide not found", MessageOf(NewNotFoundError("guide")))

	// Infrastructure failures never leak details
	assert.Equal(t, "internal server error", MessageOf(NewDatabaseError("put", errors.New("table missing"))))
	assert.Equal(t, "internal server error", MessageOf(NewExternalError("search", errors.New("rpc failed"))))
	assert.Equal(t, "internal server error", MessageOf(NewInternalError("nil pointer")))
	assert.Equal(t, "internal server error", MessageOf(errors.New("plain")))
}

func TestIsType(t *testing.T) {
	assert.True(t, IsType(NewContentRejectedError("nope"), ErrorTypeContentRejected))
	assert.False(t, IsType(NewContentRejectedError("nope"), ErrorTypeNotFound))
	assert.False(t, IsType(errors.New("plain"), ErrorTypeValidation))
}

func TestWithCauseUnwraps(t *testing.T) {
	cause := errors.New("root")
	err := NewInternalError("wrapper").WithCause(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "root")
}
