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

// All four listings share the same pagination behavior: full pages of
// PAGE_SIZE posts, with the remainder on the last page.
func TestListingsPaginateBySize(t *testing.T) {
	t.Setenv("PAGE_SIZE", "5")
	server := setupServer(t)

	author := createTestUser(t, server.DB, "steven", false)
	viewer := createTestUser(t, server.DB, "martin", false)
	group := createTestGroup(t, server.DB, "General", "general")

	if err := server.DB.Create(&models.Follow{UserID: viewer.ID, AuthorID: author.ID}).Error; err != nil {
		t.Fatalf("Failed to create follow: %v", err)
	}

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 8; i++ {
		createTestPost(t, server.DB, author, fmt.Sprintf("post %d", i), &group.ID, base.Add(time.Duration(i)*time.Minute))
	}

	r := gin.Default()
	r.GET("/", server.Home)
	r.GET("/group/:slug/", server.GetGroupPosts)
	r.GET("/profile/:username/", server.GetProfile)
	r.GET("/follow/", authMiddlewareForTests(viewer.ID, false), server.FollowIndex)

	listings := []struct {
		name   string
		target string
		posts  func(body map[string]interface{}) interface{}
	}{
		{"home", "/", func(body map[string]interface{}) interface{} {
			return body["response"]
		}},
		{"group", "/group/general/", func(body map[string]interface{}) interface{} {
			return body["response"].(map[string]interface{})["posts"]
		}},
		{"profile", "/profile/steven/", func(body map[string]interface{}) interface{} {
			return body["response"].(map[string]interface{})["posts"]
		}},
		{"follow", "/follow/", func(body map[string]interface{}) interface{} {
			return body["response"]
		}},
	}

	for _, listing := range listings {
		w := serveRequest(r, jsonRequest(t, http.MethodGet, listing.target, nil))
		assert.Equal(t, http.StatusOK, w.Code, listing.name)

		body := decodeBody(t, w)
		assert.Len(t, postIDs(t, listing.posts(body)), 5, listing.name)

		pagination := body["pagination"].(map[string]interface{})
		assert.Equal(t, float64(1), pagination["page"], listing.name)
		assert.Equal(t, float64(8), pagination["total"], listing.name)
		assert.Equal(t, float64(2), pagination["total_pages"], listing.name)
		assert.Equal(t, false, pagination["has_prev"], listing.name)
		assert.Equal(t, true, pagination["has_next"], listing.name)

		w = serveRequest(r, jsonRequest(t, http.MethodGet, listing.target+"?page=2", nil))
		assert.Equal(t, http.StatusOK, w.Code, listing.name)

		body = decodeBody(t, w)
		assert.Len(t, postIDs(t, listing.posts(body)), 3, listing.name)

		pagination = body["pagination"].(map[string]interface{})
		assert.Equal(t, float64(2), pagination["page"], listing.name)
		assert.Equal(t, true, pagination["has_prev"], listing.name)
		assert.Equal(t, false, pagination["has_next"], listing.name)
	}
}

func TestPageNumberClampsToValidRange(t *testing.T) {
	t.Setenv("PAGE_SIZE", "5")
	server := setupServer(t)

	author := createTestUser(t, server.DB, "steven", false)
	group := createTestGroup(t, server.DB, "General", "general")
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		createTestPost(t, server.DB, author, fmt.Sprintf("post %d", i), &group.ID, base.Add(time.Duration(i)*time.Minute))
	}

	r := gin.Default()
	r.GET("/group/:slug/", server.GetGroupPosts)

	// Way past the end lands on the last page, not an error.
	w := serveRequest(r, jsonRequest(t, http.MethodGet, "/group/general/?page=99", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(1), pagination["page"])
	assert.Len(t, postIDs(t, body["response"].(map[string]interface{})["posts"]), 3)

	// Zero, negative and garbage pages all read as page one.
	for _, target := range []string{"/group/general/?page=0", "/group/general/?page=-4", "/group/general/?page=abc"} {
		w = serveRequest(r, jsonRequest(t, http.MethodGet, target, nil))
		assert.Equal(t, http.StatusOK, w.Code, target)
		pagination = decodeBody(t, w)["pagination"].(map[string]interface{})
		assert.Equal(t, float64(1), pagination["page"], target)
	}
}

func TestEmptyListingHasOneEmptyPage(t *testing.T) {
	server := setupServer(t)
	createTestGroup(t, server.DB, "Empty", "empty")

	r := gin.Default()
	r.GET("/group/:slug/", server.GetGroupPosts)

	w := serveRequest(r, jsonRequest(t, http.MethodGet, "/group/empty/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Len(t, postIDs(t, body["response"].(map[string]interface{})["posts"]), 0)

	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(1), pagination["page"])
	assert.Equal(t, float64(0), pagination["total"])
	assert.Equal(t, float64(1), pagination["total_pages"])
}
