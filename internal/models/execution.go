package models

import "time"

// Execution is one fill belonging to exactly one trade. Records are immutable
// once created; they only disappear when the owning trade is deleted.
type Execution struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	TradeID uint64 `gorm:"not null;index" json:"-"`

	Side      ExecutionSide `gorm:"type:varchar(4);not null" json:"side"`
	Qty       float64       `gorm:"not null" json:"qty"`
	Price     float64       `gorm:"not null" json:"price"`
	Timestamp time.Time     `gorm:"not null" json:"timestamp"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (Execution) TableName() string {
	return "executions"
}
