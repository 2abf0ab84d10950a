package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"Blogram/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAddCommentRedirectsToPost(t *testing.T) {
	server := setupServer(t)

	author := createTestUser(t, server.DB, "steven", false)
	commenter := createTestUser(t, server.DB, "martin", false)
	post := createTestPost(t, server.DB, author, "worth discussing", nil, time.Now())

	r := gin.Default()
	r.POST("/posts/:id/comment/", authMiddlewareForTests(commenter.ID, false), server.AddComment)

	target := fmt.Sprintf("/posts/%d/comment/", post.ID)
	payload := map[string]string{"text": "well said"}
	w := serveRequest(r, jsonRequest(t, http.MethodPost, target, payload))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d/", post.ID), w.Header().Get("Location"))

	var comments []models.Comment
	if err := server.DB.Where("post_id = ?", post.ID).Find(&comments).Error; err != nil {
		t.Fatalf("Failed to load comments: %v", err)
	}
	if assert.Len(t, comments, 1) {
		assert.Equal(t, commenter.ID, comments[0].AuthorID)
		assert.Equal(t, "well said", comments[0].Text)
	}
}

func TestAddCommentEmptyTextRejected(t *testing.T) {
	server := setupServer(t)

	author := createTestUser(t, server.DB, "steven", false)
	post := createTestPost(t, server.DB, author, "quiet", nil, time.Now())

	r := gin.Default()
	r.POST("/posts/:id/comment/", authMiddlewareForTests(author.ID, false), server.AddComment)

	target := fmt.Sprintf("/posts/%d/comment/", post.ID)
	payload := map[string]string{"text": "   "}
	w := serveRequest(r, jsonRequest(t, http.MethodPost, target, payload))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errMap := decodeBody(t, w)["error"].(map[string]interface{})
	assert.Contains(t, errMap, "Required_text")

	var count int64
	server.DB.Model(&models.Comment{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAddCommentOnMissingPostNotFound(t *testing.T) {
	server := setupServer(t)
	commenter := createTestUser(t, server.DB, "martin", false)

	r := gin.Default()
	r.POST("/posts/:id/comment/", authMiddlewareForTests(commenter.ID, false), server.AddComment)

	payload := map[string]string{"text": "into the void"}
	w := serveRequest(r, jsonRequest(t, http.MethodPost, "/posts/999/comment/", payload))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
