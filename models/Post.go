package models

import (
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	PublicID  string    `gorm:"type:uuid;uniqueIndex;column:public_id" json:"public_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	GroupID   *uint     `gorm:"index" json:"group_id"`
	Group     *Group    `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	ImagePath string    `gorm:"size:255" json:"image_path"`
	CreatedAt time.Time `gorm:"index;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) (err error) {
	if strings.TrimSpace(p.PublicID) == "" {
		p.PublicID = uuid.NewString()
	}
	return nil
}

func (p *Post) Prepare() {
	p.Text = html.EscapeString(strings.TrimSpace(p.Text))
	p.ImagePath = strings.TrimSpace(p.ImagePath)
	p.Author = User{}
	p.Group = nil
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
}

func (p *Post) Validate() map[string]string {
	var errorMessages = make(map[string]string)

	if p.Text == "" {
		errorMessages["Required_text"] = "Required Text"
	}
	if p.AuthorID == 0 {
		errorMessages["Required_author"] = "Required Author"
	}
	return errorMessages
}

func (p *Post) SavePost(db *gorm.DB) (*Post, error) {
	if err := db.Create(&p).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("Author").Preload("Group").Take(&p, p.ID).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Post) FindPostByID(db *gorm.DB, pid uint) (*Post, error) {
	var post Post
	err := db.Preload("Author").Preload("Group").Where("id = ?", pid).Take(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost mutates text, group and image only. The author and the creation
// timestamp are fixed at creation and never touched again.
func (p *Post) UpdatePost(db *gorm.DB) (*Post, error) {
	err := db.Model(&Post{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"text":       p.Text,
		"group_id":   p.GroupID,
		"image_path": p.ImagePath,
		"updated_at": time.Now(),
	}).Error
	if err != nil {
		return nil, err
	}
	return p.FindPostByID(db, p.ID)
}

// DeletePost removes the post together with its comments.
func (p *Post) DeletePost(db *gorm.DB, pid uint) (int64, error) {
	var deleted int64
	err := db.Transaction(func(tx *gorm.DB) error {
		comment := Comment{}
		if _, err := comment.DeletePostComments(tx, pid); err != nil {
			return err
		}
		result := tx.Where("id = ?", pid).Delete(&Post{})
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

func (p *Post) DeleteUserPosts(db *gorm.DB, uid uint) (int64, error) {
	var ids []uint
	if err := db.Model(&Post{}).Where("author_id = ?", uid).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) > 0 {
		if err := db.Where("post_id IN ?", ids).Delete(&Comment{}).Error; err != nil {
			return 0, err
		}
	}
	result := db.Where("author_id = ?", uid).Delete(&Post{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Listing builders. Each returns an unordered, unpaginated query; ordering
// and page slicing are applied by the pagination layer.

func PostsAll(db *gorm.DB) *gorm.DB {
	return db.Model(&Post{})
}

func PostsByGroup(db *gorm.DB, gid uint) *gorm.DB {
	return db.Model(&Post{}).Where("group_id = ?", gid)
}

func PostsByAuthor(db *gorm.DB, uid uint) *gorm.DB {
	return db.Model(&Post{}).Where("author_id = ?", uid)
}

// PostsByFollowed lists posts whose author is followed by uid.
func PostsByFollowed(db *gorm.DB, uid uint) *gorm.DB {
	return db.Model(&Post{}).
		Joins("JOIN follows ON follows.author_id = posts.author_id").
		Where("follows.user_id = ?", uid)
}
