package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredicates(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		check  func(error) bool
		status int
	}{
		{"validation", NewValidation("bad"), IsValidation, http.StatusBadRequest},
		{"already exists", NewAlreadyExists("city", "name"), IsAlreadyExists, http.StatusConflict},
		{"not found", NewNotFound("city", "42"), IsNotFound, http.StatusNotFound},
		{"not deletable", NewNotDeletable("amenity category", "1", "amenity"), IsNotDeletable, http.StatusConflict},
		{"unsupported", NewUnsupportedOperation("listing amenity", "update"), IsUnsupportedOperation, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.Equal(t, tt.status, GetHTTPStatus(tt.err))

			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.True(t, tt.check(wrapped), "predicate must see through wrapping")
		})
	}
}

func TestPredicates_DoNotCrossMatch(t *testing.T) {
	err := NewNotFound("city", "1")

	assert.False(t, IsValidation(err))
	assert.False(t, IsAlreadyExists(err))
	assert.False(t, IsNotDeletable(err))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestGetHTTPStatus_PlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("boom")))
}

func TestInternal_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestWithDetail(t *testing.T) {
	err := NewFieldValidation("title", "title is too short").WithDetail("min", 3)

	assert.Equal(t, "title", err.Details["field"])
	assert.Equal(t, 3, err.Details["min"])
}
