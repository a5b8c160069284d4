package models

import "time"

// Instrument is looked up-or-created by symbol on trade creation; symbols are
// stored uppercased so the same instrument is never duplicated.
type Instrument struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Symbol    string    `gorm:"type:varchar(32);not null;uniqueIndex" json:"symbol"`
	AssetType AssetType `gorm:"type:varchar(16);not null;default:'equity'" json:"asset_type"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Instrument) TableName() string {
	return "instruments"
}
