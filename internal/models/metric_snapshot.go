package models

import "time"

// MetricSnapshot caches one day's summary per user. Written by the nightly
// snapshot job; the metrics endpoints always derive from closed trades and
// never read this table.
type MetricSnapshot struct {
	ID     uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint64    `gorm:"not null;uniqueIndex:idx_metric_snapshots_user_date" json:"-"`
	Date   time.Time `gorm:"not null;uniqueIndex:idx_metric_snapshots_user_date" json:"date"`

	RealizedPL   float64 `gorm:"column:realized_pl;not null;default:0" json:"realized_pl"`
	CumulativePL float64 `gorm:"column:cumulative_pl;not null;default:0" json:"cumulative_pl"`
	WinRate      float64 `gorm:"not null;default:0" json:"win_rate"`
	ProfitFactor float64 `gorm:"not null;default:0" json:"profit_factor"`
	Expectancy   float64 `gorm:"not null;default:0" json:"expectancy"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (MetricSnapshot) TableName() string {
	return "metric_snapshots"
}
