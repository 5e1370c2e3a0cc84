// Package httpx holds request parsing helpers shared by the gin handlers.
package httpx

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/shared/listing"
	"library-catalog/internal/shared/response"
)

// ParseID reads a positive int64 path parameter. On failure it writes a 400
// and returns false.
func ParseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// ListingQuery reads ?search=&sort=&page=&page_size=. Malformed numbers fall
// back to zero and are clamped later by listing.Query.Normalize.
func ListingQuery(c *gin.Context) listing.Query {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", c.Query("pageSize")))
	return listing.Query{
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
		Page:     page,
		PageSize: size,
	}
}

// PageMeta converts a listing page into the response envelope's meta block.
func PageMeta[T any](p listing.Page[T]) *response.Meta {
	return &response.Meta{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: p.TotalCount,
		TotalPages: p.TotalPages,
		Search:     p.Search,
		Sort:       p.Sort,
	}
}
