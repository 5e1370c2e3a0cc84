package response

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

	"library-catalog/internal/shared/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func run(err error) (*httptest.ResponseRecorder, Response) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/books/1", nil)

	FromError(c, err)

	var body Response
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestFromError_Classified(t *testing.T) {
	notFound := apperror.New(apperror.KindNotFound, "BOOK_NOT_FOUND", "book not found")

	w, body := run(fmt.Errorf("get book: %w", notFound))

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, body.Error)
	assert.False(t, body.Success)
	assert.Equal(t, "BOOK_NOT_FOUND", body.Error.Code)
}

func TestFromError_ValidationDetails(t *testing.T) {
	w, body := run(apperror.Validation("invalid request", map[string]string{"title": "cannot be blank"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, map[string]interface{}{"title": "cannot be blank"}, body.Error.Details)
}

func TestFromError_UnclassifiedHidesMessage(t *testing.T) {
	w, body := run(errors.New("pq: relation \"books\" does not exist"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, body.Error)
	assert.NotContains(t, body.Error.Message, "relation")
}
