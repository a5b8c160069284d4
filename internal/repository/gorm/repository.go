package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"zellalite/internal/models"
	"zellalite/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- Users ------------------------------------------------------------------

func (s *Store) CreateUser(ctx context.Context, item *models.User) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.User
	err := s.db.WithContext(ctx).
		Where("lower(email) = lower(?)", strings.TrimSpace(email)).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetUserByID(ctx context.Context, id uint64) (*models.User, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.User
	err := s.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListUserIDs(ctx context.Context) ([]uint64, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var ids []uint64
	if err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Order("id asc").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// --- Instruments ------------------------------------------------------------

func (s *Store) GetOrCreateInstrumentTx(ctx context.Context, tx *gorm.DB, symbol string, assetType models.AssetType) (*models.Instrument, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	db := tx
	if db == nil {
		db = s.db.WithContext(ctx)
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	var item models.Instrument
	err := db.Where("symbol = ?", symbol).First(&item).Error
	if err == nil {
		return &item, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if assetType == "" {
		assetType = models.AssetEquity
	}
	item = models.Instrument{Symbol: symbol, AssetType: assetType}
	if err := db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// --- Trades -----------------------------------------------------------------

func (s *Store) CreateTradeTx(ctx context.Context, tx *gorm.DB, item *models.Trade) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	db := tx
	if db == nil {
		db = s.db.WithContext(ctx)
	}
	return db.Omit(clause.Associations).Create(item).Error
}

func (s *Store) CreateExecutionsTx(ctx context.Context, tx *gorm.DB, items []models.Execution) error {
	if s == nil || s.db == nil || len(items) == 0 {
		return nil
	}
	db := tx
	if db == nil {
		db = s.db.WithContext(ctx)
	}
	return db.Create(&items).Error
}

func tradePreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Instrument").
		Preload("Executions", func(q *gorm.DB) *gorm.DB { return q.Order("id asc") }).
		Preload("TradeTags.Tag").
		Preload("JournalEntries", func(q *gorm.DB) *gorm.DB { return q.Order("id asc") }).
		Preload("Attachments", func(q *gorm.DB) *gorm.DB { return q.Order("id asc") })
}

func (s *Store) GetTrade(ctx context.Context, userID, tradeID uint64) (*models.Trade, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Trade
	err := tradePreloads(s.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		First(&item, tradeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) tradesQuery(ctx context.Context, params repository.ListTradesParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Trade{}).Where("trades.user_id = ?", params.UserID)
	if params.Symbol != nil && strings.TrimSpace(*params.Symbol) != "" {
		query = query.
			Joins("JOIN instruments ON instruments.id = trades.instrument_id").
			Where("lower(instruments.symbol) = lower(?)", strings.TrimSpace(*params.Symbol))
	}
	if params.From != nil && !params.From.IsZero() {
		query = query.Where("trades.opened_at >= ?", *params.From)
	}
	if params.To != nil && !params.To.IsZero() {
		query = query.Where("trades.opened_at <= ?", *params.To)
	}
	if params.Status != nil && *params.Status != "" {
		query = query.Where("trades.status = ?", string(*params.Status))
	}
	if params.Strategy != nil && strings.TrimSpace(*params.Strategy) != "" {
		query = query.Where("trades.strategy = ?", strings.TrimSpace(*params.Strategy))
	}
	if len(params.TagIDs) > 0 {
		query = query.
			Joins("JOIN trade_tags ON trade_tags.trade_id = trades.id").
			Where("trade_tags.tag_id IN ?", params.TagIDs).
			Distinct("trades.*")
	}
	return query
}

func (s *Store) ListTrades(ctx context.Context, params repository.ListTradesParams) ([]models.Trade, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.tradesQuery(ctx, params)
	query = applyOrder(query, params.OrderBy, params.Asc, "opened_at")
	limit := normalizeLimit(params.Limit, 20)
	offset := normalizeOffset(params.Offset)
	var items []models.Trade
	if err := tradePreloads(query).Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountTrades(ctx context.Context, params repository.ListTradesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	query := s.tradesQuery(ctx, params)
	if len(params.TagIDs) > 0 {
		query = query.Distinct("trades.id")
	}
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) UpdateTradeFields(ctx context.Context, tradeID uint64, updates map[string]any) error {
	if s == nil || s.db == nil || len(updates) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Trade{}).
		Where("id = ?", tradeID).
		Updates(updates).Error
}

// DeleteTradeCascadeTx removes the trade and everything it exclusively owns.
// There is no DB-level cascade; the dependent tables are cleared explicitly
// inside the caller's transaction.
func (s *Store) DeleteTradeCascadeTx(ctx context.Context, tx *gorm.DB, tradeID uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	db := tx
	if db == nil {
		db = s.db.WithContext(ctx)
	}
	if err := db.Where("trade_id = ?", tradeID).Delete(&models.Execution{}).Error; err != nil {
		return err
	}
	if err := db.Where("trade_id = ?", tradeID).Delete(&models.TradeTag{}).Error; err != nil {
		return err
	}
	if err := db.Where("trade_id = ?", tradeID).Delete(&models.JournalEntry{}).Error; err != nil {
		return err
	}
	if err := db.Where("trade_id = ?", tradeID).Delete(&models.Attachment{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.Trade{}, tradeID).Error
}

func (s *Store) ListClosedTrades(ctx context.Context, userID uint64, since, until *time.Time) ([]models.Trade, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).
		Model(&models.Trade{}).
		Where("user_id = ?", userID).
		Where("status = ?", string(models.StatusClosed))
	if since != nil && !since.IsZero() {
		query = query.Where("closed_at >= ?", *since)
	}
	if until != nil && !until.IsZero() {
		query = query.Where("closed_at <= ?", *until)
	}
	var items []models.Trade
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Tags -------------------------------------------------------------------

func (s *Store) GetTagByName(ctx context.Context, userID uint64, name string) (*models.Tag, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Tag
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("lower(name) = lower(?)", strings.TrimSpace(name)).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) CreateTag(ctx context.Context, item *models.Tag) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListTags(ctx context.Context, userID uint64) ([]models.Tag, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Tag
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListTagsByIDs(ctx context.Context, userID uint64, ids []uint64) ([]models.Tag, error) {
	if s == nil || s.db == nil || len(ids) == 0 {
		return nil, nil
	}
	var items []models.Tag
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("id IN ?", ids).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ReplaceTradeTags(ctx context.Context, tradeID uint64, tagIDs []uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trade_id = ?", tradeID).Delete(&models.TradeTag{}).Error; err != nil {
			return err
		}
		if len(tagIDs) == 0 {
			return nil
		}
		links := make([]models.TradeTag, 0, len(tagIDs))
		for _, tagID := range tagIDs {
			links = append(links, models.TradeTag{TradeID: tradeID, TagID: tagID})
		}
		return tx.Create(&links).Error
	})
}

func (s *Store) DeleteTradeTag(ctx context.Context, tradeID, tagID uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Where("trade_id = ?", tradeID).
		Where("tag_id = ?", tagID).
		Delete(&models.TradeTag{}).Error
}

// --- Journal entries --------------------------------------------------------

func (s *Store) CreateJournalEntry(ctx context.Context, item *models.JournalEntry) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetJournalEntry(ctx context.Context, id uint64) (*models.JournalEntry, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.JournalEntry
	err := s.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) DeleteJournalEntry(ctx context.Context, id uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&models.JournalEntry{}, id).Error
}

func (s *Store) ListJournalEntries(ctx context.Context, tradeID uint64) ([]models.JournalEntry, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.JournalEntry
	if err := s.db.WithContext(ctx).
		Where("trade_id = ?", tradeID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Attachments ------------------------------------------------------------

func (s *Store) CreateAttachment(ctx context.Context, item *models.Attachment) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetAttachment(ctx context.Context, id uint64) (*models.Attachment, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Attachment
	err := s.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) DeleteAttachment(ctx context.Context, id uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&models.Attachment{}, id).Error
}

func (s *Store) ListAttachments(ctx context.Context, tradeID uint64) ([]models.Attachment, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Attachment
	if err := s.db.WithContext(ctx).
		Where("trade_id = ?", tradeID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Metric snapshots -------------------------------------------------------

func (s *Store) UpsertMetricSnapshot(ctx context.Context, item *models.MetricSnapshot) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"realized_pl",
			"cumulative_pl",
			"win_rate",
			"profit_factor",
			"expectancy",
		}),
	}).Create(item).Error
}

// --- helpers ----------------------------------------------------------------

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	direction := "desc"
	if asc != nil && *asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

func normalizeLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
