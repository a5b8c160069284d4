package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"zellalite/internal/models"
)

// Repository is the storage surface used by the services. Get* methods return
// (nil, nil) when nothing matches so callers can map missing and foreign-owned
// rows to the same not-found signal.
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Users
	CreateUser(ctx context.Context, item *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint64) (*models.User, error)
	ListUserIDs(ctx context.Context) ([]uint64, error)

	// Instruments
	GetOrCreateInstrumentTx(ctx context.Context, tx *gorm.DB, symbol string, assetType models.AssetType) (*models.Instrument, error)

	// Trades
	CreateTradeTx(ctx context.Context, tx *gorm.DB, item *models.Trade) error
	CreateExecutionsTx(ctx context.Context, tx *gorm.DB, items []models.Execution) error
	GetTrade(ctx context.Context, userID, tradeID uint64) (*models.Trade, error)
	ListTrades(ctx context.Context, params ListTradesParams) ([]models.Trade, error)
	CountTrades(ctx context.Context, params ListTradesParams) (int64, error)
	UpdateTradeFields(ctx context.Context, tradeID uint64, updates map[string]any) error
	DeleteTradeCascadeTx(ctx context.Context, tx *gorm.DB, tradeID uint64) error
	ListClosedTrades(ctx context.Context, userID uint64, since, until *time.Time) ([]models.Trade, error)

	// Tags
	GetTagByName(ctx context.Context, userID uint64, name string) (*models.Tag, error)
	CreateTag(ctx context.Context, item *models.Tag) error
	ListTags(ctx context.Context, userID uint64) ([]models.Tag, error)
	ListTagsByIDs(ctx context.Context, userID uint64, ids []uint64) ([]models.Tag, error)
	ReplaceTradeTags(ctx context.Context, tradeID uint64, tagIDs []uint64) error
	DeleteTradeTag(ctx context.Context, tradeID, tagID uint64) error

	// Journal entries
	CreateJournalEntry(ctx context.Context, item *models.JournalEntry) error
	GetJournalEntry(ctx context.Context, id uint64) (*models.JournalEntry, error)
	DeleteJournalEntry(ctx context.Context, id uint64) error
	ListJournalEntries(ctx context.Context, tradeID uint64) ([]models.JournalEntry, error)

	// Attachments
	CreateAttachment(ctx context.Context, item *models.Attachment) error
	GetAttachment(ctx context.Context, id uint64) (*models.Attachment, error)
	DeleteAttachment(ctx context.Context, id uint64) error
	ListAttachments(ctx context.Context, tradeID uint64) ([]models.Attachment, error)

	// Metric snapshots
	UpsertMetricSnapshot(ctx context.Context, item *models.MetricSnapshot) error
}

type ListTradesParams struct {
	UserID   uint64
	Limit    int
	Offset   int
	Symbol   *string
	From     *time.Time
	To       *time.Time
	Status   *models.TradeStatus
	Strategy *string
	TagIDs   []uint64
	OrderBy  string
	Asc      *bool
}
