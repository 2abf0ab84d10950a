package models

import (
	"html"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// Group is a shared categorization tag for posts. It has no owner; creation
// and deletion are administrative actions.
type Group struct {
	ID          uint   `gorm:"primary_key;autoIncrement" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Slug        string `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
}

var slugPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

func (g *Group) Prepare() {
	g.Title = html.EscapeString(strings.TrimSpace(g.Title))
	g.Slug = strings.ToLower(strings.TrimSpace(g.Slug))
	g.Description = html.EscapeString(strings.TrimSpace(g.Description))
}

func (g *Group) Validate() map[string]string {
	var errorMessages = make(map[string]string)

	if g.Title == "" {
		errorMessages["Required_title"] = "Required Title"
	}
	if len(g.Title) > 200 {
		errorMessages["Invalid_title"] = "Title should be at most 200 characters"
	}
	if g.Slug == "" {
		errorMessages["Required_slug"] = "Required Slug"
	} else if !slugPattern.MatchString(g.Slug) {
		errorMessages["Invalid_slug"] = "Slug may contain only lowercase letters, digits, hyphens and underscores"
	}
	return errorMessages
}

func (g *Group) SaveGroup(db *gorm.DB) (*Group, error) {
	err := db.Create(&g).Error
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Group) FindGroupBySlug(db *gorm.DB, slug string) (*Group, error) {
	var group Group
	err := db.Where("slug = ?", strings.ToLower(strings.TrimSpace(slug))).Take(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (g *Group) FindGroupByID(db *gorm.DB, gid uint) (*Group, error) {
	var group Group
	err := db.Where("id = ?", gid).Take(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (g *Group) FindAllGroups(db *gorm.DB) (*[]Group, error) {
	var groups []Group
	err := db.Order("title asc").Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return &groups, nil
}

// DeleteGroup detaches the group from its posts before removing it. Posts
// survive group deletion with a cleared group reference.
func (g *Group) DeleteGroup(db *gorm.DB, gid uint) (int64, error) {
	var deleted int64
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Post{}).
			Where("group_id = ?", gid).
			UpdateColumn("group_id", nil).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", gid).Delete(&Group{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
