package models

import "time"

// Tag is user-scoped and unique per user by case-insensitive name.
type Tag struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint64 `gorm:"not null;uniqueIndex:idx_tags_user_name" json:"-"`
	Name   string `gorm:"type:varchar(100);not null;uniqueIndex:idx_tags_user_name" json:"name"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (Tag) TableName() string {
	return "tags"
}
