package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/genre/model"
	"library-backend/internal/domains/genre/service"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/export"
	"library-backend/internal/shared/query"
	"library-backend/internal/shared/response"
	"library-backend/internal/shared/utils"
)

type GenreHandler struct {
	service service.Service
}

func NewGenreHandler(svc service.Service) *GenreHandler {
	return &GenreHandler{service: svc}
}

func parseID(c *gin.Context) (int64, bool) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, model.ErrInvalidGenreID)
	}
	return id, ok
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /v1/genres
// ════════════════════════════════════════════════════════════════

func (h *GenreHandler) Create(c *gin.Context) {
	var req model.CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err))
		return
	}

	g, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, g)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /v1/genres?search=&slug=&sort_by=&order=&limit=&offset=
// ════════════════════════════════════════════════════════════════

func (h *GenreHandler) List(c *gin.Context) {
	f, err := query.FromRequest(c, "slug")
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

func (h *GenreHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	g, err := h.service.FindOne(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, g)
}

func (h *GenreHandler) GetBySlug(c *gin.Context) {
	g, err := h.service.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, g)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /v1/genres/:id
// ════════════════════════════════════════════════════════════════

func (h *GenreHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err))
		return
	}

	g, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, g)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /v1/genres/:id
// ════════════════════════════════════════════════════════════════

func (h *GenreHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ════════════════════════════════════════════════════════════════
// EXPORT: GET /v1/genres/export (same filters as list, no paging)
// ════════════════════════════════════════════════════════════════

var genreColumns = []export.Column[*model.Genre]{
	{Header: "ID", Value: func(g *model.Genre) any { return g.ID }},
	{Header: "Name", Value: func(g *model.Genre) any { return g.Name }},
	{Header: "Slug", Value: func(g *model.Genre) any { return g.Slug }},
	{Header: "Description", Value: func(g *model.Genre) any { return export.OptString(g.Description) }},
	{Header: "Created At", Value: func(g *model.Genre) any { return g.CreatedAt }},
	{Header: "Updated At", Value: func(g *model.Genre) any { return g.UpdatedAt }},
}

func (h *GenreHandler) Export(c *gin.Context) {
	f, err := query.FromRequest(c, "slug")
	if err != nil {
		response.Error(c, err)
		return
	}

	genres, err := h.service.ExportAll(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}

	raw, err := export.Bytes(export.Sheet[*model.Genre]{Name: "Genres", Columns: genreColumns, Rows: genres})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename("genres", time.Now())+`"`)
	c.Data(http.StatusOK, export.ContentTypeXLSX, raw)
}
