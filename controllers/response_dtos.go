package controllers

import (
	"time"

	"Blogram/models"
)

type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type GroupDTO struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type PostDTO struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	Author    UserDTO   `json:"author"`
	Group     *GroupDTO `json:"group"`
	ImagePath string    `json:"image_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentDTO struct {
	ID        uint      `json:"id"`
	Author    UserDTO   `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func userToResponse(user *models.User) UserDTO {
	return UserDTO{
		ID:       user.PublicID,
		Username: user.Username,
	}
}

func groupToResponse(group *models.Group) GroupDTO {
	return GroupDTO{
		Title:       group.Title,
		Slug:        group.Slug,
		Description: group.Description,
	}
}

func postToResponse(post *models.Post) PostDTO {
	dto := PostDTO{
		ID:        post.ID,
		Text:      post.Text,
		Author:    userToResponse(&post.Author),
		ImagePath: post.ImagePath,
		CreatedAt: post.CreatedAt,
	}
	if post.Group != nil {
		group := groupToResponse(post.Group)
		dto.Group = &group
	}
	return dto
}

func postsToResponse(posts []models.Post) []PostDTO {
	out := make([]PostDTO, len(posts))
	for i := range posts {
		out[i] = postToResponse(&posts[i])
	}
	return out
}

func commentsToResponse(comments []models.Comment) []CommentDTO {
	out := make([]CommentDTO, len(comments))
	for i := range comments {
		out[i] = CommentDTO{
			ID:        comments[i].ID,
			Author:    userToResponse(&comments[i].Author),
			Text:      comments[i].Text,
			CreatedAt: comments[i].CreatedAt,
		}
	}
	return out
}
