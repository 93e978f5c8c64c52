package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDatabaseErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		cause  error
		status int
	}{
		{"postgres duplicate", errors.New(`duplicate key value violates unique constraint "idx_posts_slug"`), http.StatusConflict},
		{"sqlite duplicate", errors.New("UNIQUE constraint failed: posts.slug"), http.StatusConflict},
		{"foreign key", errors.New(`insert violates foreign key constraint "fk_posts_category"`), http.StatusBadRequest},
		{"not found", errors.New("record not found"), http.StatusNotFound},
		{"connection", errors.New("connection refused"), http.StatusServiceUnavailable},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
		{"nil cause", nil, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			apiErr := NewDatabaseError("create", "post", tc.cause)
			assert.Equal(t, tc.status, apiErr.StatusCode)
		})
	}
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(NewNotFound("post")))
	assert.Equal(t, http.StatusForbidden, StatusOf(NewForbiddenError("nope")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("plain")))
}

func TestIsCheckers(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFound("post")))
	assert.False(t, IsNotFound(NewForbiddenError("nope")))
	assert.True(t, IsAlreadyExists(NewAlreadyExists("post")))
	assert.False(t, IsAlreadyExists(NewNotFound("post")))
}
