package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"Blogram/cache"
	"Blogram/models"
	httpctx "Blogram/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type postInput struct {
	Text      string `json:"text"`
	GroupID   *uint  `json:"group_id"`
	ImagePath string `json:"image_path"`
}

// Home godoc
// @Summary      Home listing
// @Description  Paginated listing of all posts, newest first. Cached.
// @Tags         posts
// @Produce      json
// @Param        page  query     int  false  "Page number"
// @Success      200   {object}  map[string]interface{}
// @Router       / [get]
func (server *Server) Home(c *gin.Context) {
	page := parsePage(c)

	ctx := context.Background()
	cacheKey := homeCacheKey(page)

	// Within the TTL the cached page is served verbatim, even when posts
	// changed underneath. Only the TTL or an explicit clear refreshes it.
	if cached, err := cache.Get(ctx, cacheKey); err == nil && cached != "" {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	}

	posts, pagination, err := paginatePosts(server.DB, models.PostsAll, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve posts"})
		return
	}

	respBody := gin.H{
		"status":     http.StatusOK,
		"response":   postsToResponse(posts),
		"pagination": pagination,
	}

	if jsonBytes, err := json.Marshal(respBody); err == nil {
		_ = cache.Set(ctx, cacheKey, jsonBytes, homeCacheTTL())
	}

	c.JSON(http.StatusOK, respBody)
}

// GetPost godoc
// @Summary      Post detail
// @Description  A single post together with its comments
// @Tags         posts
// @Produce      json
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /posts/{id} [get]
func (server *Server) GetPost(c *gin.Context) {
	errList := map[string]string{}

	post, err := resolvePostByParam(server.DB, c.Param("id"))
	if err != nil {
		respondPostLookupError(c, err, errList)
		return
	}

	comment := models.Comment{}
	comments, err := comment.GetPostComments(server.DB, post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"post":     postToResponse(post),
			"comments": commentsToResponse(*comments),
		},
	})
}

// NewPostForm returns the data a client needs to render the create form:
// the group choices.
func (server *Server) NewPostForm(c *gin.Context) {
	group := models.Group{}
	groups, err := group.FindAllGroups(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve groups"})
		return
	}

	choices := make([]GroupDTO, 0, len(*groups))
	for i := range *groups {
		choices = append(choices, groupToResponse(&(*groups)[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": gin.H{"groups": choices},
	})
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Create a post as the authenticated user and redirect to their profile
// @Tags         posts
// @Accept       json
// @Param        post  body  postInput  true  "Post payload"
// @Success      302
// @Failure      422  {object}  map[string]interface{}
// @Router       /create [post]
// @Security     BearerAuth
func (server *Server) CreatePost(c *gin.Context) {
	errList := map[string]string{}

	uid, _ := httpctx.CurrentUserID(c)
	if !canPerform(ActionCreatePost, authzInput{UserID: uid}) {
		c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
		return
	}

	user := models.User{}
	author, err := user.FindUserByID(server.DB, uid)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
		return
	}

	input, err := readPostInput(c)
	if err != nil {
		errList["Invalid_body"] = "Unable to parse request"
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}

	// The author is always the authenticated identity; nothing in the
	// request body can set it.
	post := models.Post{
		Text:      input.Text,
		GroupID:   input.GroupID,
		ImagePath: input.ImagePath,
		AuthorID:  uid,
	}
	post.Prepare()

	errorMessages := post.Validate()
	if input.GroupID != nil {
		group := models.Group{}
		if _, err := group.FindGroupByID(server.DB, *input.GroupID); err != nil {
			errorMessages["Unknown_group"] = "Unknown Group"
		}
	}
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	err = server.DB.Transaction(func(tx *gorm.DB) error {
		_, err := post.SavePost(tx)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating post"})
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", author.Username))
}

// EditPostForm returns the post payload for the edit form, author only.
// Anyone else is bounced to the read-only detail view.
func (server *Server) EditPostForm(c *gin.Context) {
	errList := map[string]string{}

	post, err := resolvePostByParam(server.DB, c.Param("id"))
	if err != nil {
		respondPostLookupError(c, err, errList)
		return
	}

	uid, _ := httpctx.CurrentUserID(c)
	in := authzInput{UserID: uid, IsAdmin: httpctx.IsAdminRequest(c), OwnerID: post.AuthorID}
	if !canPerform(ActionEditPost, in) {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
		return
	}

	group := models.Group{}
	groups, err := group.FindAllGroups(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve groups"})
		return
	}
	choices := make([]GroupDTO, 0, len(*groups))
	for i := range *groups {
		choices = append(choices, groupToResponse(&(*groups)[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"post":   postToResponse(post),
			"groups": choices,
		},
	})
}

// EditPost godoc
// @Summary      Edit a post
// @Description  Update text, group and image of an owned post. Non-authors are redirected to the detail view.
// @Tags         posts
// @Accept       json
// @Param        id    path  int        true  "Post ID"
// @Param        post  body  postInput  true  "Post payload"
// @Success      302
// @Failure      404  {object}  map[string]interface{}
// @Failure      422  {object}  map[string]interface{}
// @Router       /posts/{id}/edit [post]
// @Security     BearerAuth
func (server *Server) EditPost(c *gin.Context) {
	errList := map[string]string{}

	post, err := resolvePostByParam(server.DB, c.Param("id"))
	if err != nil {
		respondPostLookupError(c, err, errList)
		return
	}

	uid, _ := httpctx.CurrentUserID(c)
	in := authzInput{UserID: uid, IsAdmin: httpctx.IsAdminRequest(c), OwnerID: post.AuthorID}
	if !canPerform(ActionEditPost, in) {
		// Not the author: no error, no mutation, just the detail view.
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
		return
	}

	input, err := readPostInput(c)
	if err != nil {
		errList["Invalid_body"] = "Unable to parse request"
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}

	updated := models.Post{
		ID:        post.ID,
		Text:      input.Text,
		GroupID:   input.GroupID,
		ImagePath: input.ImagePath,
		AuthorID:  post.AuthorID,
	}
	updated.Prepare()

	errorMessages := updated.Validate()
	if input.GroupID != nil {
		group := models.Group{}
		if _, err := group.FindGroupByID(server.DB, *input.GroupID); err != nil {
			errorMessages["Unknown_group"] = "Unknown Group"
		}
	}
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	err = server.DB.Transaction(func(tx *gorm.DB) error {
		_, err := updated.UpdatePost(tx)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating post"})
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Delete an owned post (admins may delete any); comments go with it
// @Tags         posts
// @Param        id  path  int  true  "Post ID"
// @Success      302
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /posts/{id}/delete [post]
// @Security     BearerAuth
func (server *Server) DeletePost(c *gin.Context) {
	errList := map[string]string{}

	post, err := resolvePostByParam(server.DB, c.Param("id"))
	if err != nil {
		respondPostLookupError(c, err, errList)
		return
	}

	uid, _ := httpctx.CurrentUserID(c)
	in := authzInput{UserID: uid, IsAdmin: httpctx.IsAdminRequest(c), OwnerID: post.AuthorID}
	if !canPerform(ActionDeletePost, in) {
		c.JSON(http.StatusForbidden, gin.H{"status": http.StatusForbidden, "error": "Forbidden"})
		return
	}

	if _, err := post.DeletePost(server.DB, post.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting post"})
		return
	}

	user := models.User{}
	actor, err := user.FindUserByID(server.DB, uid)
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", actor.Username))
}

func readPostInput(c *gin.Context) (*postInput, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	input := postInput{}
	if err := json.Unmarshal(body, &input); err != nil {
		return nil, err
	}
	return &input, nil
}

func respondPostLookupError(c *gin.Context, err error, errList map[string]string) {
	if errors.Is(err, errInvalidIdentifier) {
		errList["Invalid_request"] = "Invalid Request"
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  errList,
		})
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		errList["No_post"] = "No Post Found"
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  errList,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve post"})
}
