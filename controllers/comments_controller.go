package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"Blogram/models"
	httpctx "Blogram/utils/httpctx"

	"github.com/gin-gonic/gin"
)

type commentInput struct {
	Text string `json:"text"`
}

// AddComment godoc
// @Summary      Comment on a post
// @Description  Append a comment to a post and redirect back to the detail view
// @Tags         comments
// @Accept       json
// @Param        id       path  int           true  "Post ID"
// @Param        comment  body  commentInput  true  "Comment payload"
// @Success      302
// @Failure      404  {object}  map[string]interface{}
// @Failure      422  {object}  map[string]interface{}
// @Router       /posts/{id}/comment [post]
// @Security     BearerAuth
func (server *Server) AddComment(c *gin.Context) {
	errList := map[string]string{}

	post, err := resolvePostByParam(server.DB, c.Param("id"))
	if err != nil {
		respondPostLookupError(c, err, errList)
		return
	}

	uid, _ := httpctx.CurrentUserID(c)
	if !canPerform(ActionCreateComment, authzInput{UserID: uid}) {
		c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		errList["Invalid_body"] = "Unable to parse request"
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}
	input := commentInput{}
	if err := json.Unmarshal(body, &input); err != nil {
		errList["Invalid_body"] = "Unable to parse request"
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}

	comment := models.Comment{
		PostID:   post.ID,
		AuthorID: uid,
		Text:     input.Text,
	}
	comment.Prepare()

	errorMessages := comment.Validate()
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	if _, err := comment.SaveComment(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating comment"})
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
}
