package util

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestEntitySentinelsWrapTaxonomy(t *testing.T) {
	assert.ErrorIs(t, ErrTestNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrAttemptNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrMistakeNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrAttemptNotInProgress, ErrInvalidState)
	assert.ErrorIs(t, ErrAttemptNotSubmitted, ErrInvalidState)

	wrapped := fmt.Errorf("finish: %w", NewValidationError("quality", "out of range"))
	assert.ErrorIs(t, wrapped, ErrValidation)
	assert.NotErrorIs(t, wrapped, ErrNotFound)
}

func TestHandleError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name  string
		err   error
		code  int
		field string
	}{
		{"validation", NewValidationError("quality", "must be between 0 and 5"), http.StatusBadRequest, "quality"},
		{"not found", fmt.Errorf("load: %w", ErrAttemptNotFound), http.StatusNotFound, ""},
		{"invalid state", ErrAttemptNotInProgress, http.StatusConflict, ""},
		{"permission", ErrPermissionDenied, http.StatusForbidden, ""},
		{"internal", errors.New("boom"), http.StatusInternalServerError, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			HandleError(c, tc.err)
			assert.Equal(t, tc.code, w.Code)
			if tc.field != "" {
				assert.Contains(t, w.Body.String(), `"field":"`+tc.field+`"`)
			}
		})
	}
}

func TestParseID_WrapsValidationSentinel(t *testing.T) {
	id, err := ParseID("attemptId", "42")
	assert.NoError(t, err)
	assert.Equal(t, uint(42), id)

	_, err = ParseID("attemptId", "abc")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseID("attemptId", "0")
	assert.ErrorIs(t, err, ErrValidation)
}
