package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_IsAndUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	wrapped := fmt.Errorf("append: %w", ErrFileTooLarge.WithError(cause))

	assert.True(t, Is(wrapped, ErrFileTooLarge))
	assert.False(t, Is(wrapped, ErrConsentRequired))
	assert.True(t, Is(wrapped, cause))

	// Исходная переменная не изменилась
	assert.Nil(t, ErrFileTooLarge.Err)
}

func TestAppError_MarshalJSONHidesCause(t *testing.T) {
	err := StorageError(errors.New("permission denied"))

	raw, mErr := json.Marshal(err)
	require.NoError(t, mErr)
	assert.NotContains(t, string(raw), "permission denied")
	assert.Contains(t, string(raw), string(CodeStorageError))
}

func TestHandleError_JSONAndText(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	HandleError(c, ErrRateLimited)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), string(CodeRateLimited))

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	HandleTextError(c, ErrConsentRequired)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Consent is required.", w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	HandleTextError(c, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", w.Body.String())
}
