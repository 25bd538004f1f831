package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination is the meta block returned alongside paginated list payloads.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalCount  int64 `json:"total_count"`
	PageSize    int   `json:"page_size"`
}

// PageRequest carries the parsed paging query parameters.
type PageRequest struct {
	Page         int
	PageSize     int
	NoPagination bool
}

// ParsePageRequest reads page, page_size and no_pagination from the query
// string, clamping to sane bounds.
func ParsePageRequest(c *gin.Context) PageRequest {
	req := PageRequest{Page: 1, PageSize: DefaultPageSize}

	if c.Query("no_pagination") == "true" {
		req.NoPagination = true
		return req
	}
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		req.Page = v
	}
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil && v > 0 {
		req.PageSize = v
		if req.PageSize > MaxPageSize {
			req.PageSize = MaxPageSize
		}
	}
	return req
}

// Offset returns the number of documents to skip for the current page.
func (r PageRequest) Offset() int64 {
	return int64((r.Page - 1) * r.PageSize)
}

// NewPagination computes the meta block for a list of totalCount items. An
// unpaginated request returns the whole collection as one page, so the meta
// reports the actual returned size rather than the default page size.
func NewPagination(req PageRequest, totalCount int64) Pagination {
	if req.NoPagination {
		return Pagination{
			CurrentPage: 1,
			TotalPages:  1,
			TotalCount:  totalCount,
			PageSize:    int(totalCount),
		}
	}
	totalPages := int(totalCount) / req.PageSize
	if int(totalCount)%req.PageSize != 0 {
		totalPages++
	}
	if totalPages == 0 {
		totalPages = 1
	}
	return Pagination{
		CurrentPage: req.Page,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		PageSize:    req.PageSize,
	}
}
