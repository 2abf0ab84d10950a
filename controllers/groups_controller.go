package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"Blogram/models"
	"Blogram/utils/formaterror"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetGroupPosts godoc
// @Summary      Group listing
// @Description  Paginated posts of one group, newest first
// @Tags         groups
// @Produce      json
// @Param        slug  path      string  true   "Group slug"
// @Param        page  query     int     false  "Page number"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]interface{}
// @Router       /group/{slug} [get]
func (server *Server) GetGroupPosts(c *gin.Context) {
	errList := map[string]string{}

	group, err := resolveGroupBySlug(server.DB, c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			errList["No_group"] = "No Group Found"
			c.JSON(http.StatusNotFound, gin.H{
				"status": http.StatusNotFound,
				"error":  errList,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve group"})
		return
	}

	posts, pagination, err := paginatePosts(server.DB, func(db *gorm.DB) *gorm.DB {
		return models.PostsByGroup(db, group.ID)
	}, parsePage(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"group": groupToResponse(group),
			"posts": postsToResponse(posts),
		},
		"pagination": pagination,
	})
}

// CreateGroup is the administrative action that introduces a new group.
func (server *Server) CreateGroup(c *gin.Context) {
	errList := map[string]string{}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		errList["Invalid_body"] = "Unable to parse request"
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}
	group := models.Group{}
	if err := json.Unmarshal(body, &group); err != nil {
		errList["Invalid_body"] = "Unable to parse request"
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}

	group.Prepare()
	errorMessages := group.Validate()
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	created, err := group.SaveGroup(server.DB)
	if err != nil {
		formattedError := formaterror.FormatError(err.Error())
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  formattedError,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": groupToResponse(created),
	})
}

// DeleteGroup removes a group. Posts that referenced it stay up with their
// group reference cleared.
func (server *Server) DeleteGroup(c *gin.Context) {
	errList := map[string]string{}

	group, err := resolveGroupBySlug(server.DB, c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			errList["No_group"] = "No Group Found"
			c.JSON(http.StatusNotFound, gin.H{
				"status": http.StatusNotFound,
				"error":  errList,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve group"})
		return
	}

	if _, err := group.DeleteGroup(server.DB, group.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Group deleted",
	})
}
