package controllers

import (
	"errors"
	"net/http"

	"Blogram/models"
	httpctx "Blogram/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FollowIndex godoc
// @Summary      Followed-authors listing
// @Description  Paginated posts by the authors the viewer follows
// @Tags         follows
// @Produce      json
// @Param        page  query     int  false  "Page number"
// @Success      200   {object}  map[string]interface{}
// @Router       /follow [get]
// @Security     BearerAuth
func (server *Server) FollowIndex(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
		return
	}

	posts, pagination, err := paginatePosts(server.DB, func(db *gorm.DB) *gorm.DB {
		return models.PostsByFollowed(db, uid)
	}, parsePage(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     http.StatusOK,
		"response":   postsToResponse(posts),
		"pagination": pagination,
	})
}

// ProfileFollow godoc
// @Summary      Follow an author
// @Description  Idempotent follow; following twice leaves a single edge. Redirects to the follow listing.
// @Tags         follows
// @Param        username  path  string  true  "Author username"
// @Success      302
// @Failure      404  {object}  map[string]interface{}
// @Router       /profile/{username}/follow [post]
// @Security     BearerAuth
func (server *Server) ProfileFollow(c *gin.Context) {
	errList := map[string]string{}

	uid, _ := httpctx.CurrentUserID(c)

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

	// Following yourself is silently skipped, not an error.
	in := authzInput{UserID: uid, TargetID: author.ID}
	if canPerform(ActionFollowAuthor, in) {
		follow := models.Follow{}
		if _, err := follow.GetOrCreateFollow(server.DB, uid, author.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error following user"})
			return
		}
	}

	c.Redirect(http.StatusFound, "/follow/")
}

// ProfileUnfollow godoc
// @Summary      Unfollow an author
// @Description  Remove the follow edge; 404 when there is nothing to remove
// @Tags         follows
// @Param        username  path  string  true  "Author username"
// @Success      302
// @Failure      404  {object}  map[string]interface{}
// @Router       /profile/{username}/unfollow [post]
// @Security     BearerAuth
func (server *Server) ProfileUnfollow(c *gin.Context) {
	errList := map[string]string{}

	uid, _ := httpctx.CurrentUserID(c)
	if !canPerform(ActionUnfollowAuthor, authzInput{UserID: uid}) {
		c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
		return
	}

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

	follow := models.Follow{}
	deleted, err := follow.DeleteFollow(server.DB, uid, author.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error unfollowing user"})
		return
	}
	if deleted == 0 {
		errList["No_follow"] = "No Follow Found"
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  errList,
		})
		return
	}

	c.Redirect(http.StatusFound, "/follow/")
}
