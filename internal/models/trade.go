package models

import "time"

// Trade is an aggregated position on one instrument. Status and NetPL are
// derived from the execution set (see service.Recompute) and recomputed from
// scratch whenever that set changes.
type Trade struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint64 `gorm:"not null;index" json:"-"`
	InstrumentID uint64 `gorm:"not null;index" json:"-"`

	Direction TradeDirection `gorm:"type:varchar(8);not null" json:"direction"`
	Strategy  *string        `gorm:"type:varchar(100)" json:"strategy"`
	OpenedAt  time.Time      `gorm:"not null;index" json:"opened_at"`
	ClosedAt  *time.Time     `gorm:"index" json:"closed_at"`
	Status    TradeStatus    `gorm:"type:varchar(8);not null;default:'open';index" json:"status"`
	// Column names are explicit because default GORM naming turns "NetPL" into "net_p_l".
	NetPL float64 `gorm:"column:net_pl;not null;default:0" json:"net_pl"`
	Fees  float64 `gorm:"not null;default:0" json:"fees"`
	Notes *string `gorm:"type:text" json:"notes"`

	Instrument     Instrument     `gorm:"foreignKey:InstrumentID" json:"instrument"`
	Executions     []Execution    `gorm:"foreignKey:TradeID" json:"executions"`
	TradeTags      []TradeTag     `gorm:"foreignKey:TradeID" json:"-"`
	JournalEntries []JournalEntry `gorm:"foreignKey:TradeID" json:"journal_entries"`
	Attachments    []Attachment   `gorm:"foreignKey:TradeID" json:"attachments"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Trade) TableName() string {
	return "trades"
}
