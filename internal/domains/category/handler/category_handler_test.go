package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-backend/internal/domains/category"
	"inventory-backend/internal/shared"
)

type mockService struct {
	created   category.CategoryRequest
	deleteErr error
	getErr    error
	searchErr error
	lastTerm  string
	lastLimit int
}

func (m *mockService) ListAll(context.Context) ([]category.Category, error) {
	return []category.Category{{ID: 1, Name: "Books"}}, nil
}

func (m *mockService) ListWithProductCount(context.Context) ([]category.CategoryWithCount, error) {
	return []category.CategoryWithCount{{Category: category.Category{ID: 1, Name: "Books"}, ProductCount: 4}}, nil
}

func (m *mockService) GetByID(_ context.Context, id int64) (*category.Category, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return &category.Category{ID: id, Name: "Books"}, nil
}

func (m *mockService) Create(_ context.Context, req category.CategoryRequest) (*category.Category, error) {
	m.created = req
	return &category.Category{ID: 7, Name: req.Name, Description: req.Description}, nil
}

func (m *mockService) Update(_ context.Context, id int64, req category.CategoryRequest) (*category.Category, error) {
	return &category.Category{ID: id, Name: req.Name}, nil
}

func (m *mockService) Delete(context.Context, int64) error { return m.deleteErr }

func (m *mockService) Search(_ context.Context, term string, limit int) ([]shared.NameMatch, error) {
	m.lastTerm, m.lastLimit = term, limit
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return []shared.NameMatch{{ID: 1, Name: "Books"}}, nil
}

func (m *mockService) RefreshCache(context.Context) error { return nil }

func setupRouter(svc category.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCategoryHandler(svc)

	r := gin.New()
	g := r.Group("/api/categories")
	g.GET("", h.List)
	g.GET("/with-count", h.ListWithProductCount)
	g.GET("/search", h.Search)
	g.GET("/:id", h.GetByID)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return r
}

func perform(r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestCategoryHandler(t *testing.T) {
	tests := []struct {
		name       string
		svc        *mockService
		method     string
		path       string
		body       interface{}
		wantStatus int
		wantCode   string
	}{
		{name: "list", method: http.MethodGet, path: "/api/categories", wantStatus: http.StatusOK},
		{name: "with count", method: http.MethodGet, path: "/api/categories/with-count", wantStatus: http.StatusOK},
		{name: "get", method: http.MethodGet, path: "/api/categories/3", wantStatus: http.StatusOK},
		{name: "get bad id", method: http.MethodGet, path: "/api/categories/abc", wantStatus: http.StatusBadRequest, wantCode: "BAD_REQUEST"},
		{name: "get zero id", method: http.MethodGet, path: "/api/categories/0", wantStatus: http.StatusBadRequest, wantCode: "BAD_REQUEST"},
		{
			name: "get missing", svc: &mockService{getErr: category.ErrCategoryNotFound},
			method: http.MethodGet, path: "/api/categories/3", wantStatus: http.StatusNotFound, wantCode: "CATEGORY_NOT_FOUND",
		},
		{name: "create", method: http.MethodPost, path: "/api/categories", body: map[string]string{"name": "Toys"}, wantStatus: http.StatusCreated},
		{name: "create malformed", method: http.MethodPost, path: "/api/categories", body: "not an object", wantStatus: http.StatusBadRequest},
		{name: "update", method: http.MethodPut, path: "/api/categories/2", body: map[string]string{"name": "Toys"}, wantStatus: http.StatusOK},
		{name: "delete", method: http.MethodDelete, path: "/api/categories/2", wantStatus: http.StatusOK},
		{
			name: "delete in use", svc: &mockService{deleteErr: category.ErrCategoryInUse},
			method: http.MethodDelete, path: "/api/categories/2", wantStatus: http.StatusConflict, wantCode: "CATEGORY_IN_USE",
		},
		{
			name: "search without term", svc: &mockService{searchErr: category.ErrSearchTermRequired},
			method: http.MethodGet, path: "/api/categories/search", wantStatus: http.StatusBadRequest, wantCode: "SEARCH_TERM_REQUIRED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := tt.svc
			if svc == nil {
				svc = &mockService{}
			}

			w, body := perform(setupRouter(svc), tt.method, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			success := tt.wantStatus < 400
			assert.Equal(t, success, body["success"])
			if tt.wantCode != "" {
				e, ok := body["error"].(map[string]interface{})
				require.True(t, ok)
				assert.Equal(t, tt.wantCode, e["code"])
			}
		})
	}
}

func TestCategoryHandler_SearchPassesQuery(t *testing.T) {
	svc := &mockService{}
	w, body := perform(setupRouter(svc), http.MethodGet, "/api/categories/search?q=boo&limit=5", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "boo", svc.lastTerm)
	assert.Equal(t, 5, svc.lastLimit)
	assert.Len(t, body["data"], 1)
}

func TestCategoryHandler_WithCountPayload(t *testing.T) {
	w, body := perform(setupRouter(&mockService{}), http.MethodGet, "/api/categories/with-count", nil)

	require.Equal(t, http.StatusOK, w.Code)
	rows := body["data"].([]interface{})
	first := rows[0].(map[string]interface{})
	assert.EqualValues(t, 4, first["product_count"])
	assert.Equal(t, "Books", first["name"])
}
