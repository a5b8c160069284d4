package models

import "time"

type Attachment struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	TradeID uint64 `gorm:"not null;index" json:"-"`

	Filename    string `gorm:"type:varchar(255);not null" json:"filename"`
	ContentType string `gorm:"type:varchar(100);not null" json:"content_type"`
	Path        string `gorm:"type:varchar(512);not null" json:"-"`
	Size        int64  `gorm:"not null" json:"size"`

	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (Attachment) TableName() string {
	return "attachments"
}
