package handler

import (
	"fmt"
	"strconv"

	"manager_system/internal/model"

	"github.com/gin-gonic/gin"
)

// parsePage reads page, limit, sortBy and sortOrder from the query string.
func parsePage(c *gin.Context) (model.Page, error) {
	page := model.Page{
		SortBy:    c.DefaultQuery("sortBy", "name"),
		SortOrder: c.DefaultQuery("sortOrder", "asc"),
	}

	var err error
	if page.Page, err = strconv.Atoi(c.DefaultQuery("page", "1")); err != nil || page.Page < 1 {
		return page, fmt.Errorf("page must be a positive integer")
	}
	if page.Limit, err = strconv.Atoi(c.DefaultQuery("limit", "10")); err != nil || page.Limit < 1 {
		return page, fmt.Errorf("limit must be a positive integer")
	}
	if page.SortOrder != "asc" && page.SortOrder != "desc" {
		return page, fmt.Errorf("sortOrder must be asc or desc")
	}
	return page, nil
}
