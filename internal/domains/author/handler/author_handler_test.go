package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/shared/apperror"
	"library-catalog/internal/shared/listing"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Author), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, id int64, req *model.UpdateAuthorRequest) (*model.Author, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Author), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockService) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Author), args.Error(1)
}

func (m *MockService) List(ctx context.Context, q listing.Query) (listing.Page[model.Author], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(listing.Page[model.Author]), args.Error(1)
}

func (m *MockService) Options(ctx context.Context) ([]model.AuthorOption, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.AuthorOption), args.Error(1)
}

func setup() (*gin.Engine, *MockService) {
	gin.SetMode(gin.TestMode)
	svc := new(MockService)
	h := NewAuthorHandler(svc)

	r := gin.New()
	r.GET("/authors", h.List)
	r.GET("/authors/options", h.Options)
	r.GET("/authors/:id", h.GetByID)
	r.POST("/authors", h.Create)
	r.PUT("/authors/:id", h.Update)
	r.DELETE("/authors/:id", h.Delete)
	return r, svc
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestList(t *testing.T) {
	r, svc := setup()
	birth, _ := time.Parse(model.DateLayout, "1947-08-24")
	svc.On("List", mock.Anything, listing.Query{Search: "coelho", Sort: "date_desc", Page: 2, PageSize: 3}).
		Return(listing.Page[model.Author]{
			Items:      []model.Author{{ID: 1, Name: "Paulo Coelho", Nationality: "Brasil", BirthDate: birth}},
			TotalCount: 4, Page: 2, PageSize: 3, TotalPages: 2, Search: "coelho", Sort: "date_desc",
		}, nil)

	w := serve(r, http.MethodGet, "/authors?search=coelho&sort=date_desc&page=2&page_size=3", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []model.AuthorResponse `json:"data"`
		Meta map[string]any         `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "1947-08-24", body.Data[0].BirthDate)
	assert.Equal(t, float64(2), body.Meta["total_pages"])
	assert.Equal(t, "coelho", body.Meta["search"])
	assert.Equal(t, "date_desc", body.Meta["sort"])
}

func TestCreate_DuplicateIsConflict(t *testing.T) {
	r, svc := setup()
	svc.On("Create", mock.Anything, &model.CreateAuthorRequest{Name: "Paulo Coelho", Nationality: "Brasil", BirthDate: "1947-08-24"}).
		Return(nil, model.ErrDuplicateAuthor)

	w := serve(r, http.MethodPost, "/authors", `{"name":"Paulo Coelho","nationality":"Brasil","birth_date":"1947-08-24"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "DUPLICATE_AUTHOR")
}

func TestCreate_ValidationIsBadRequest(t *testing.T) {
	r, svc := setup()
	svc.On("Create", mock.Anything, mock.Anything).
		Return(nil, apperror.Validation("invalid author", map[string]string{"name": "cannot be blank"}))

	w := serve(r, http.MethodPost, "/authors", `{"birth_date":"1947-08-24"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cannot be blank")
}

func TestCreate_MalformedBody(t *testing.T) {
	r, svc := setup()

	w := serve(r, http.MethodPost, "/authors", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetByID(t *testing.T) {
	r, svc := setup()
	svc.On("GetByID", mock.Anything, int64(7)).Return(nil, model.ErrAuthorNotFound)

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/authors/7", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, "/authors/abc", "").Code)
}

func TestUpdate_Conflict(t *testing.T) {
	r, svc := setup()
	svc.On("Update", mock.Anything, int64(1), mock.Anything).Return(nil, model.ErrVersionConflict)

	w := serve(r, http.MethodPut, "/authors/1", `{"name":"Paulo Coelho","birth_date":"1947-08-24","version":1}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "VERSION_CONFLICT")
}

func TestDelete(t *testing.T) {
	r, svc := setup()
	svc.On("Delete", mock.Anything, int64(5)).Return(nil)

	w := serve(r, http.MethodDelete, "/authors/5", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}

func TestOptions(t *testing.T) {
	r, svc := setup()
	svc.On("Options", mock.Anything).Return([]model.AuthorOption{{ID: 2, Name: "J.K. Rowling"}}, nil)

	w := serve(r, http.MethodGet, "/authors/options", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "J.K. Rowling")
}
