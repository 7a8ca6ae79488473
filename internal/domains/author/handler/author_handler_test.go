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
	"github.com/xuri/excelize/v2"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/entity"
	"library-backend/internal/shared/export"
	"library-backend/internal/shared/query"
)

// ====================================
// FAKE SERVICE
// ====================================

type stubService struct {
	authors    map[int64]*model.Author
	lastFilter query.Filter
	lastPatch  *model.UpdateAuthorRequest
}

func newStubService() *stubService {
	return &stubService{authors: map[int64]*model.Author{
		1: {Base: entity.Base{ID: 1}, FirstName: "Terry", LastName: "Pratchett", FullName: "Terry Pratchett", Slug: "terry-pratchett"},
	}}
}

func (s *stubService) Create(_ context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}
	a := &model.Author{Base: entity.Base{ID: 2}, FirstName: req.FirstName, LastName: req.LastName, MiddleName: req.MiddleName}
	a.RebuildDerived()
	s.authors[a.ID] = a
	return a, nil
}

func (s *stubService) FindAll(_ context.Context, f query.Filter) (query.Page[*model.Author], error) {
	s.lastFilter = f
	r, err := model.Schema.Resolve(f)
	if err != nil {
		return query.Page[*model.Author]{}, err
	}
	items := make([]*model.Author, 0, len(s.authors))
	for _, a := range s.authors {
		items = append(items, a)
	}
	return query.Apply(r, items), nil
}

func (s *stubService) FindOne(_ context.Context, id int64) (*model.Author, error) {
	if a, ok := s.authors[id]; ok {
		return a, nil
	}
	return nil, model.ErrAuthorNotFound
}

func (s *stubService) FindBySlug(_ context.Context, slug string) (*model.Author, error) {
	for _, a := range s.authors {
		if a.Slug == slug {
			return a, nil
		}
	}
	return nil, model.ErrAuthorNotFound
}

func (s *stubService) Update(_ context.Context, id int64, req *model.UpdateAuthorRequest) (*model.Author, error) {
	s.lastPatch = req
	a, ok := s.authors[id]
	if !ok {
		return nil, model.ErrAuthorNotFound
	}
	if req.LastName != nil {
		a.LastName = *req.LastName
		a.RebuildDerived()
	}
	return a, nil
}

func (s *stubService) Remove(_ context.Context, id int64) (*model.Author, error) {
	a, ok := s.authors[id]
	if !ok {
		return nil, model.ErrAuthorNotFound
	}
	delete(s.authors, id)
	return a, nil
}

func (s *stubService) ExportAll(ctx context.Context, f query.Filter) ([]*model.Author, error) {
	page, err := s.FindAll(ctx, f)
	return page.Items, err
}

// ====================================
// HELPERS
// ====================================

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
	Meta *struct {
		Total int64 `json:"total"`
	} `json:"meta"`
}

func setup(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthorHandler(svc)
	r := gin.New()
	g := r.Group("/authors")
	g.GET("", h.List)
	g.GET("/export", h.Export)
	g.GET("/slug/:slug", h.GetBySlug)
	g.GET("/:id", h.GetByID)
	g.POST("", h.Create)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// ====================================
// TESTS
// ====================================

func TestCreate(t *testing.T) {
	r := setup(newStubService())

	w := do(r, http.MethodPost, "/authors", `{"first_name":"Ursula","middle_name":"K.","last_name":"Le Guin"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var a model.Author
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &a))
	assert.Equal(t, "Ursula K. Le Guin", a.FullName)
	assert.Equal(t, "ursula-k-le-guin", a.Slug)

	w = do(r, http.MethodPost, "/authors", `{"first_name":"Solo"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, w).Error.Code)
}

func TestList_ExactFilters(t *testing.T) {
	svc := newStubService()
	w := do(setup(svc), http.MethodGet, "/authors?last_name=Pratchett&sort_by=fullName", "")

	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.Equal(t, int64(1), env.Meta.Total)
	assert.Equal(t, map[string]string{"last_name": "Pratchett"}, svc.lastFilter.Exact)
	assert.Equal(t, "fullName", svc.lastFilter.SortBy)
}

func TestGet(t *testing.T) {
	r := setup(newStubService())

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/authors/1", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/authors/slug/terry-pratchett", "").Code)

	w := do(r, http.MethodGet, "/authors/0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_AUTHOR_ID", decode(t, w).Error.Code)

	w = do(r, http.MethodGet, "/authors/5", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "AUTHOR_NOT_FOUND", decode(t, w).Error.Code)
}

func TestUpdate_Patch(t *testing.T) {
	svc := newStubService()
	r := setup(svc)

	w := do(r, http.MethodPatch, "/authors/1", `{"last_name":"Pratchett-Smith"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"terry-pratchett-smith"`)
	require.NotNil(t, svc.lastPatch)
	assert.Nil(t, svc.lastPatch.FirstName)
}

func TestDelete_ReturnsRecord(t *testing.T) {
	r := setup(newStubService())

	w := do(r, http.MethodDelete, "/authors/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var a model.Author
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &a))
	assert.Equal(t, int64(1), a.ID)

	w = do(r, http.MethodGet, "/authors/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExport(t *testing.T) {
	w := do(setup(newStubService()), http.MethodGet, "/authors/export?search=terry", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentTypeXLSX, w.Header().Get("Content-Type"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Authors")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Full Name", rows[0][1])
	assert.Equal(t, "Terry Pratchett", rows[1][1])
}
