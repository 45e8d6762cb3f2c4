package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithDetails_CopyMatchesSource(t *testing.T) {
	err := ErrConflict.WithDetails(map[string]interface{}{"book_id": 1})

	assert.True(t, errors.Is(err, ErrConflict))
	assert.Nil(t, ErrConflict.Details, "预定义错误不能被修改")
	assert.Equal(t, 1, err.Details["book_id"])
}

func TestWithStatus_KeepsCode(t *testing.T) {
	err := ErrUserNotFound.WithStatus(http.StatusUnauthorized)

	assert.Equal(t, http.StatusUnauthorized, err.Status)
	assert.Equal(t, http.StatusNotFound, ErrUserNotFound.Status)
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestGetAppError_WrapsPlainError(t *testing.T) {
	raw := errors.New("connection refused")

	appErr := GetAppError(fmt.Errorf("query: %w", raw))

	assert.Equal(t, CodeInternal, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.ErrorIs(t, appErr, raw)
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("create: %w", ErrDuplicate)

	assert.True(t, HasCode(err, CodeDuplicate))
	assert.False(t, HasCode(err, CodeConflict))
	assert.False(t, HasCode(errors.New("x"), CodeDuplicate))
}
