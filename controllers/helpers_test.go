package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Blogram/cache"
	"Blogram/controllers"
	"Blogram/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// authMiddlewareForTests injects an authenticated identity without going
// through the token middleware.
func authMiddlewareForTests(userID uint, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("isAdmin", isAdmin)
		c.Next()
	}
}

// setupServer builds a Server over an in-memory database with the full schema
// and a fresh in-process cache, so tests never touch each other's state.
func setupServer(t *testing.T) *controllers.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Group{}, &models.Post{}, &models.Comment{}, &models.Follow{})
	if err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}

	cache.Use(cache.NewMemoryStore())

	return &controllers.Server{DB: db}
}

func createTestUser(t *testing.T, db *gorm.DB, username string, isAdmin bool) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
		IsAdmin:  isAdmin,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user %q: %v", username, err)
	}
	return user
}

func createTestGroup(t *testing.T, db *gorm.DB, title, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: title, Slug: slug}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("Failed to create group %q: %v", slug, err)
	}
	return group
}

func createTestPost(t *testing.T, db *gorm.DB, author *models.User, text string, groupID *uint, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Text:      text,
		AuthorID:  author.ID,
		GroupID:   groupID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}
	return post
}

func jsonRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		requestBody, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Error creating request body: %v", err)
		}
		body = bytes.NewBuffer(requestBody)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, target, body)
	if err != nil {
		t.Fatalf("Error creating HTTP request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serveRequest(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var responseBody map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &responseBody); err != nil {
		t.Fatalf("Error unmarshalling response body %q: %v", w.Body.String(), err)
	}
	return responseBody
}

// postIDs pulls the post IDs, in order, out of a listing response array.
func postIDs(t *testing.T, raw interface{}) []uint {
	t.Helper()
	items, ok := raw.([]interface{})
	if !ok {
		t.Fatalf("Expected a list of posts, got %T", raw)
	}
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		postMap, ok := item.(map[string]interface{})
		if !ok {
			t.Fatalf("Expected a post object, got %T", item)
		}
		idFloat, ok := postMap["id"].(float64)
		if !ok {
			t.Fatalf("Error extracting 'id' from post %v", postMap)
		}
		ids = append(ids, uint(idFloat))
	}
	return ids
}
