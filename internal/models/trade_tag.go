package models

type TradeTag struct {
	TradeID uint64 `gorm:"primaryKey" json:"trade_id"`
	TagID   uint64 `gorm:"primaryKey" json:"tag_id"`

	Tag Tag `gorm:"foreignKey:TagID" json:"tag"`
}

func (TradeTag) TableName() string {
	return "trade_tags"
}
