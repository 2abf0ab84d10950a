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

func TestHomeOrdersNewestFirst(t *testing.T) {
	server := setupServer(t)
	r := gin.Default()
	r.GET("/", server.Home)

	author := createTestUser(t, server.DB, "steven", false)

	base := time.Now().Add(-time.Hour)
	oldest := createTestPost(t, server.DB, author, "oldest", nil, base)
	tieLow := createTestPost(t, server.DB, author, "tie low", nil, base.Add(10*time.Minute))
	tieHigh := createTestPost(t, server.DB, author, "tie high", nil, base.Add(10*time.Minute))
	newest := createTestPost(t, server.DB, author, "newest", nil, base.Add(20*time.Minute))

	w := serveRequest(r, jsonRequest(t, http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	responseBody := decodeBody(t, w)
	ids := postIDs(t, responseBody["response"])

	// Newest first; posts sharing a timestamp fall back to ID order, so the
	// later insert wins the tie.
	assert.Equal(t, []uint{newest.ID, tieHigh.ID, tieLow.ID, oldest.ID}, ids)
}

func TestCreatePostUsesAuthenticatedAuthor(t *testing.T) {
	server := setupServer(t)

	author := createTestUser(t, server.DB, "steven", false)
	other := createTestUser(t, server.DB, "martin", false)

	r := gin.Default()
	r.POST("/create/", authMiddlewareForTests(author.ID, false), server.CreatePost)

	// The body tries to pin the post on someone else; that field has no home
	// in the input and the authenticated identity wins.
	payload := map[string]interface{}{
		"text":      "hello world",
		"author_id": other.ID,
	}
	w := serveRequest(r, jsonRequest(t, http.MethodPost, "/create/", payload))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/steven/", w.Header().Get("Location"))

	var posts []models.Post
	if err := server.DB.Find(&posts).Error; err != nil {
		t.Fatalf("Failed to load posts: %v", err)
	}
	if assert.Len(t, posts, 1) {
		assert.Equal(t, author.ID, posts[0].AuthorID)
		assert.Equal(t, "hello world", posts[0].Text)
	}
}

func TestCreatePostUnknownGroupRejected(t *testing.T) {
	server := setupServer(t)
	author := createTestUser(t, server.DB, "steven", false)

	r := gin.Default()
	r.POST("/create/", authMiddlewareForTests(author.ID, false), server.CreatePost)

	missing := uint(999)
	payload := map[string]interface{}{"text": "hello", "group_id": missing}
	w := serveRequest(r, jsonRequest(t, http.MethodPost, "/create/", payload))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	responseBody := decodeBody(t, w)
	errMap := responseBody["error"].(map[string]interface{})
	assert.Contains(t, errMap, "Unknown_group")
}

func TestEditPostByNonAuthorIsSilentlyIgnored(t *testing.T) {
	server := setupServer(t)

	author := createTestUser(t, server.DB, "steven", false)
	intruder := createTestUser(t, server.DB, "martin", false)
	post := createTestPost(t, server.DB, author, "original text", nil, time.Now())

	r := gin.Default()
	r.POST("/posts/:id/edit/", authMiddlewareForTests(intruder.ID, false), server.EditPost)

	payload := map[string]interface{}{"text": "rewritten"}
	target := fmt.Sprintf("/posts/%d/edit/", post.ID)
	w := serveRequest(r, jsonRequest(t, http.MethodPost, target, payload))

	// No error, no mutation: the non-author just lands on the detail view.
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d/", post.ID), w.Header().Get("Location"))

	var reloaded models.Post
	if err := server.DB.Take(&reloaded, post.ID).Error; err != nil {
		t.Fatalf("Failed to reload post: %v", err)
	}
	assert.Equal(t, "original text", reloaded.Text)
	assert.Equal(t, author.ID, reloaded.AuthorID)
}

func TestEditPostByAuthorUpdatesTextOnly(t *testing.T) {
	server := setupServer(t)

	author := createTestUser(t, server.DB, "steven", false)
	createdAt := time.Now().Add(-time.Hour).Truncate(time.Second)
	post := createTestPost(t, server.DB, author, "original text", nil, createdAt)

	r := gin.Default()
	r.POST("/posts/:id/edit/", authMiddlewareForTests(author.ID, false), server.EditPost)

	payload := map[string]interface{}{"text": "updated text"}
	target := fmt.Sprintf("/posts/%d/edit/", post.ID)
	w := serveRequest(r, jsonRequest(t, http.MethodPost, target, payload))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d/", post.ID), w.Header().Get("Location"))

	var reloaded models.Post
	if err := server.DB.Take(&reloaded, post.ID).Error; err != nil {
		t.Fatalf("Failed to reload post: %v", err)
	}
	assert.Equal(t, "updated text", reloaded.Text)
	assert.Equal(t, author.ID, reloaded.AuthorID)
	// Creation time is fixed at creation and never rewritten by an edit.
	assert.WithinDuration(t, createdAt, reloaded.CreatedAt, time.Second)
}

func TestDeletePostRemovesItsComments(t *testing.T) {
	server := setupServer(t)

	author := createTestUser(t, server.DB, "steven", false)
	commenter := createTestUser(t, server.DB, "martin", false)
	post := createTestPost(t, server.DB, author, "doomed", nil, time.Now())

	for i := 0; i < 3; i++ {
		comment := models.Comment{PostID: post.ID, AuthorID: commenter.ID, Text: fmt.Sprintf("comment %d", i)}
		if err := server.DB.Create(&comment).Error; err != nil {
			t.Fatalf("Failed to create comment: %v", err)
		}
	}

	r := gin.Default()
	r.POST("/posts/:id/delete/", authMiddlewareForTests(author.ID, false), server.DeletePost)

	target := fmt.Sprintf("/posts/%d/delete/", post.ID)
	w := serveRequest(r, jsonRequest(t, http.MethodPost, target, nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/steven/", w.Header().Get("Location"))

	var postCount, commentCount int64
	server.DB.Model(&models.Post{}).Count(&postCount)
	server.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&commentCount)
	assert.Equal(t, int64(0), postCount)
	assert.Equal(t, int64(0), commentCount)
}

func TestDeletePostByNonAuthorForbidden(t *testing.T) {
	server := setupServer(t)

	author := createTestUser(t, server.DB, "steven", false)
	intruder := createTestUser(t, server.DB, "martin", false)
	post := createTestPost(t, server.DB, author, "kept", nil, time.Now())

	r := gin.Default()
	r.POST("/posts/:id/delete/", authMiddlewareForTests(intruder.ID, false), server.DeletePost)

	target := fmt.Sprintf("/posts/%d/delete/", post.ID)
	w := serveRequest(r, jsonRequest(t, http.MethodPost, target, nil))

	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	server.DB.Model(&models.Post{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeletePostByAdminAllowed(t *testing.T) {
	server := setupServer(t)

	author := createTestUser(t, server.DB, "steven", false)
	admin := createTestUser(t, server.DB, "root", true)
	post := createTestPost(t, server.DB, author, "moderated away", nil, time.Now())

	r := gin.Default()
	r.POST("/posts/:id/delete/", authMiddlewareForTests(admin.ID, true), server.DeletePost)

	target := fmt.Sprintf("/posts/%d/delete/", post.ID)
	w := serveRequest(r, jsonRequest(t, http.MethodPost, target, nil))

	assert.Equal(t, http.StatusFound, w.Code)

	var count int64
	server.DB.Model(&models.Post{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetPostDetailIncludesComments(t *testing.T) {
	server := setupServer(t)
	r := gin.Default()
	r.GET("/posts/:id/", server.GetPost)

	author := createTestUser(t, server.DB, "steven", false)
	post := createTestPost(t, server.DB, author, "discussed", nil, time.Now())

	first := models.Comment{PostID: post.ID, AuthorID: author.ID, Text: "first", CreatedAt: time.Now().Add(-time.Minute)}
	second := models.Comment{PostID: post.ID, AuthorID: author.ID, Text: "second", CreatedAt: time.Now()}
	if err := server.DB.Create(&first).Error; err != nil {
		t.Fatalf("Failed to create comment: %v", err)
	}
	if err := server.DB.Create(&second).Error; err != nil {
		t.Fatalf("Failed to create comment: %v", err)
	}

	w := serveRequest(r, jsonRequest(t, http.MethodGet, fmt.Sprintf("/posts/%d/", post.ID), nil))
	assert.Equal(t, http.StatusOK, w.Code)

	responseBody := decodeBody(t, w)
	response := responseBody["response"].(map[string]interface{})
	comments := response["comments"].([]interface{})

	// Comments read oldest first, the opposite of post listings.
	if assert.Len(t, comments, 2) {
		assert.Equal(t, "first", comments[0].(map[string]interface{})["text"])
		assert.Equal(t, "second", comments[1].(map[string]interface{})["text"])
	}
}

func TestGetPostNotFound(t *testing.T) {
	server := setupServer(t)
	r := gin.Default()
	r.GET("/posts/:id/", server.GetPost)

	w := serveRequest(r, jsonRequest(t, http.MethodGet, "/posts/999/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	responseBody := decodeBody(t, w)
	errMap := responseBody["error"].(map[string]interface{})
	assert.Contains(t, errMap, "No_post")
}

func TestGetPostInvalidIdentifier(t *testing.T) {
	server := setupServer(t)
	r := gin.Default()
	r.GET("/posts/:id/", server.GetPost)

	w := serveRequest(r, jsonRequest(t, http.MethodGet, "/posts/not-a-number/", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
