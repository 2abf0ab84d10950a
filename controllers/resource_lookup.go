package controllers

import (
	"errors"
	"strconv"

	"Blogram/models"

	"gorm.io/gorm"
)

var errInvalidIdentifier = errors.New("invalid identifier")

func resolvePostByParam(db *gorm.DB, raw string) (*models.Post, error) {
	pid, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, errInvalidIdentifier
	}
	post := models.Post{}
	return post.FindPostByID(db, uint(pid))
}

func resolveUserByUsername(db *gorm.DB, username string) (*models.User, error) {
	user := models.User{}
	return user.FindUserByUsername(db, username)
}

func resolveGroupBySlug(db *gorm.DB, slug string) (*models.Group, error) {
	group := models.Group{}
	return group.FindGroupBySlug(db, slug)
}
