package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/service"
	"library-catalog/internal/shared/httpx"
	"library-catalog/internal/shared/response"
)

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(svc service.ServiceInterface) *BookHandler {
	return &BookHandler{service: svc}
}

// List - GET /api/v1/books?search=&sort=title|price|year[_desc]&page=&page_size=
func (h *BookHandler) List(c *gin.Context) {
	page, err := h.service.List(c.Request.Context(), httpx.ListingQuery(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	items := make([]model.BookResponse, len(page.Items))
	for i := range page.Items {
		items[i] = page.Items[i].ToResponse()
	}
	response.SuccessWithMeta(c, http.StatusOK, items, httpx.PageMeta(page))
}

// GetDetail - GET /api/v1/books/:id
func (h *BookHandler) GetDetail(c *gin.Context) {
	id, ok := httpx.ParseID(c, "id")
	if !ok {
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// Create - POST /api/v1/books (admin)
func (h *BookHandler) Create(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b.ToResponse())
}

// Update - PUT /api/v1/books/:id (admin)
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := httpx.ParseID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b.ToResponse())
}

// RegenerateCover - POST /api/v1/books/:id/regenerate-cover (admin)
func (h *BookHandler) RegenerateCover(c *gin.Context) {
	id, ok := httpx.ParseID(c, "id")
	if !ok {
		return
	}

	b, err := h.service.RegenerateCover(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b.ToResponse())
}

// Delete - DELETE /api/v1/books/:id (admin)
func (h *BookHandler) Delete(c *gin.Context) {
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
