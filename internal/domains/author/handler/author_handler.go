package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/domains/author/service"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/export"
	"library-backend/internal/shared/query"
	"library-backend/internal/shared/response"
	"library-backend/internal/shared/utils"
)

// exact-match query params accepted by list and export
var filterFields = []string{"slug", "first_name", "last_name"}

type AuthorHandler struct {
	service service.Service
}

func NewAuthorHandler(svc service.Service) *AuthorHandler {
	return &AuthorHandler{service: svc}
}

func parseID(c *gin.Context) (int64, bool) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, model.ErrInvalidAuthorID)
	}
	return id, ok
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /v1/authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err))
		return
	}

	a, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, a)
}

// ════════════════════════════════════════════════════════════════
// READ
// ════════════════════════════════════════════════════════════════

// List handles GET /v1/authors?search=&slug=&first_name=&last_name=&sort_by=&order=&limit=&offset=
func (h *AuthorHandler) List(c *gin.Context) {
	f, err := query.FromRequest(c, filterFields...)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.service.FindAll(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, page.Items, &response.Meta{
		Limit:  page.Limit,
		Offset: page.Offset,
		Total:  page.Total,
	})
}

func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	a, err := h.service.FindOne(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *AuthorHandler) GetBySlug(c *gin.Context) {
	a, err := h.service.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PATCH /v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err))
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /v1/authors/:id (trả về bản ghi đã xoá)
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	a, err := h.service.Remove(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

// ════════════════════════════════════════════════════════════════
// EXPORT: GET /v1/authors/export
// ════════════════════════════════════════════════════════════════

var authorColumns = []export.Column[*model.Author]{
	{Header: "ID", Value: func(a *model.Author) any { return a.ID }},
	{Header: "Full Name", Value: func(a *model.Author) any { return a.FullName }},
	{Header: "First Name", Value: func(a *model.Author) any { return a.FirstName }},
	{Header: "Middle Name", Value: func(a *model.Author) any { return export.OptString(a.MiddleName) }},
	{Header: "Last Name", Value: func(a *model.Author) any { return a.LastName }},
	{Header: "Slug", Value: func(a *model.Author) any { return a.Slug }},
	{Header: "Bio", Value: func(a *model.Author) any { return export.OptString(a.Bio) }},
	{Header: "Created At", Value: func(a *model.Author) any { return a.CreatedAt }},
}

func (h *AuthorHandler) Export(c *gin.Context) {
	f, err := query.FromRequest(c, filterFields...)
	if err != nil {
		response.Error(c, err)
		return
	}

	authors, err := h.service.ExportAll(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}

	raw, err := export.Bytes(export.Sheet[*model.Author]{Name: "Authors", Columns: authorColumns, Rows: authors})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename("authors", time.Now())+`"`)
	c.Data(http.StatusOK, export.ContentTypeXLSX, raw)
}
