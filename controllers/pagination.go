package controllers

import (
	"os"
	"strconv"

	"Blogram/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DefaultPageSize is the number of posts on a listing page unless PAGE_SIZE
// overrides it.
const DefaultPageSize = 10

func pageSize() int {
	if raw := os.Getenv("PAGE_SIZE"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			return size
		}
	}
	return DefaultPageSize
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

func parsePage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// paginatePosts slices a listing into fixed-size pages. Ordering is always
// newest-first by creation time with the row ID as a stable tie-break, so
// repeated calls over unchanged data yield identical pages. Out-of-range page
// numbers clamp to the nearest valid page instead of erroring.
func paginatePosts(db *gorm.DB, listing func(*gorm.DB) *gorm.DB, page int) ([]models.Post, Pagination, error) {
	size := pageSize()

	var total int64
	if err := listing(db).Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	offset := (page - 1) * size

	posts := []models.Post{}
	err := listing(db).
		Preload("Author").
		Preload("Group").
		Order("posts.created_at DESC, posts.id DESC").
		Offset(offset).
		Limit(size).
		Find(&posts).Error
	if err != nil {
		return nil, Pagination{}, err
	}

	pagination := Pagination{
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
	return posts, pagination, nil
}
