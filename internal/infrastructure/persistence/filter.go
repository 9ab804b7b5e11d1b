package persistence

import (
	"strings"

	"github.com/orgms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyPagination applies page and ordering options to the query. Each
// repository applies its own search and field filters before calling this.
func applyPagination(query *gorm.DB, filter shared.Filter, defaultOrder string) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		dir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			dir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + dir)
	} else {
		query = query.Order(defaultOrder)
	}

	return query
}

// pageOf normalizes filter paging values for building Paginated results
func pageOf(filter shared.Filter) (page, pageSize int) {
	page = filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize = filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	return page, pageSize
}
