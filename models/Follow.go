package models

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Follow is an edge from a reader (user) to an author they follow.
type Follow struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_follows_user_author" json:"user_id"`
	AuthorID  uint      `gorm:"not null;index;uniqueIndex:idx_follows_user_author" json:"author_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// GetOrCreateFollow inserts the (user, author) edge if it does not exist yet.
// A second call for the same pair is a no-op, not an error.
func (f *Follow) GetOrCreateFollow(db *gorm.DB, userID, authorID uint) (bool, error) {
	follow := Follow{
		UserID:   userID,
		AuthorID: authorID,
	}
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteFollow removes the (user, author) edge. Returns the number of rows
// removed; zero means there was nothing to unfollow.
func (f *Follow) DeleteFollow(db *gorm.DB, userID, authorID uint) (int64, error) {
	result := db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&Follow{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (f *Follow) IsFollowing(db *gorm.DB, userID, authorID uint) (bool, error) {
	var count int64
	err := db.Model(&Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (f *Follow) DeleteUserFollows(db *gorm.DB, uid uint) error {
	return db.Where("user_id = ? OR author_id = ?", uid, uid).Delete(&Follow{}).Error
}
