package controllers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"Blogram/cache"

	"github.com/gin-gonic/gin"
)

// The home listing is the only cached route. Each page number gets its own
// slot; staleness within the TTL is deliberate, so writes never invalidate.
const homeCacheKeyPrefix = "home:page:"

const defaultHomeCacheTTLMinutes = 20

func homeCacheKey(page int) string {
	return fmt.Sprintf("%s%d", homeCacheKeyPrefix, page)
}

func homeCacheTTL() time.Duration {
	if raw := os.Getenv("HOME_CACHE_TTL_MINUTES"); raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultHomeCacheTTLMinutes * time.Minute
}

// ClearResponseCache godoc
// @Summary      Clear the response cache
// @Description  Drop all cached pages so the next request rebuilds them
// @Tags         internal
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /internal/cache/clear [post]
// @Security     BearerAuth
func (server *Server) ClearResponseCache(c *gin.Context) {
	if err := cache.Clear(context.Background()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error clearing cache"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": "Cache cleared"})
}
