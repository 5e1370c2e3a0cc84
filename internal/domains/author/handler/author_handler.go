package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/service"
	"library-catalog/internal/shared/httpx"
	"library-catalog/internal/shared/response"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{service: svc}
}

// List - GET /api/v1/authors?search=&sort=name|name_desc|date|date_desc&page=&page_size=
func (h *AuthorHandler) List(c *gin.Context) {
	page, err := h.service.List(c.Request.Context(), httpx.ListingQuery(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	items := make([]model.AuthorResponse, len(page.Items))
	for i := range page.Items {
		items[i] = page.Items[i].ToResponse()
	}
	response.SuccessWithMeta(c, http.StatusOK, items, httpx.PageMeta(page))
}

// Options - GET /api/v1/authors/options
func (h *AuthorHandler) Options(c *gin.Context) {
	options, err := h.service.Options(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, options)
}

// GetByID - GET /api/v1/authors/:id
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := httpx.ParseID(c, "id")
	if !ok {
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a.ToResponse())
}

// Create - POST /api/v1/authors (admin)
func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	a, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, a.ToResponse())
}

// Update - PUT /api/v1/authors/:id (admin)
func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := httpx.ParseID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a.ToResponse())
}

// Delete - DELETE /api/v1/authors/:id (admin)
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := httpx.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
