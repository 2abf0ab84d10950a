package controllers

import (
	"errors"
	"net/http"

	"Blogram/models"
	httpctx "Blogram/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetProfile godoc
// @Summary      Author profile
// @Description  Paginated posts by one author, plus whether the viewer follows them
// @Tags         profiles
// @Produce      json
// @Param        username  path      string  true   "Author username"
// @Param        page      query     int     false  "Page number"
// @Success      200       {object}  map[string]interface{}
// @Failure      404       {object}  map[string]interface{}
// @Router       /profile/{username} [get]
func (server *Server) GetProfile(c *gin.Context) {
	errList := map[string]string{}

	author, err := resolveUserByUsername(server.DB, c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			errList["No_user"] = "No User Found"
			c.JSON(http.StatusNotFound, gin.H{
				"status": http.StatusNotFound,
				"error":  errList,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve user"})
		return
	}

	posts, pagination, err := paginatePosts(server.DB, func(db *gorm.DB) *gorm.DB {
		return models.PostsByAuthor(db, author.ID)
	}, parsePage(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve posts"})
		return
	}

	// Follow status only means something for a logged-in viewer looking at
	// someone else's profile.
	following := false
	if viewerID, ok := httpctx.CurrentUserID(c); ok && viewerID != author.ID {
		follow := models.Follow{}
		following, err = follow.IsFollowing(server.DB, viewerID, author.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking follow status"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"author":    userToResponse(author),
			"following": following,
			"posts":     postsToResponse(posts),
		},
		"pagination": pagination,
	})
}
