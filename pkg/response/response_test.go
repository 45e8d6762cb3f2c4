package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

func serve(t *testing.T, err error) (int, ErrorBody) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/books/:id", func(c *gin.Context) { Error(c, err) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books/9", nil))

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestError_AppErrorEnvelope(t *testing.T) {
	code, body := serve(t, apperrors.ErrConflict.WithDetails(map[string]interface{}{"book_id": 9}))

	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, http.StatusConflict, body.Status)
	assert.Equal(t, "STATE_CONFLICT", body.Code)
	assert.Equal(t, "/books/9", body.Path)
	assert.Equal(t, float64(9), body.Details["book_id"])
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`, body.Timestamp)
}

func TestError_InternalHidesCause(t *testing.T) {
	code, body := serve(t, errors.New("dial tcp 10.0.0.1:3306: refused"))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Code)
	assert.Equal(t, "internal server error", body.Message)
	assert.NotContains(t, body.Message, "3306")
	assert.NotNil(t, body.Details)
}
