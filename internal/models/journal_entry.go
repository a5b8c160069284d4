package models

import "time"

type JournalEntry struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	TradeID uint64 `gorm:"not null;index" json:"-"`
	Body    string `gorm:"type:text;not null" json:"body"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}
