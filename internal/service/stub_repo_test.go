package service

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"zellalite/internal/models"
	"zellalite/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
// It implements the full interface but only the trade and tag paths carry
// real behavior; the rest returns zero values.
type stubRepo struct {
	nextID      uint64
	instruments map[string]*models.Instrument
	trades      []models.Trade
	execs       []models.Execution
	tags        []models.Tag
	tradeTags   map[uint64][]uint64
	snapshots   []models.MetricSnapshot
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		instruments: map[string]*models.Instrument{},
		tradeTags:   map[uint64][]uint64{},
	}
}

func (s *stubRepo) id() uint64 {
	s.nextID++
	return s.nextID
}

// InTx snapshots the mutable tables and restores them when fn fails, which
// mirrors the rollback the real store performs.
func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	trades := len(s.trades)
	execs := len(s.execs)
	if err := fn(nil); err != nil {
		s.trades = s.trades[:trades]
		s.execs = s.execs[:execs]
		return err
	}
	return nil
}

func (s *stubRepo) CreateUser(ctx context.Context, item *models.User) error {
	item.ID = s.id()
	return nil
}
func (s *stubRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, nil
}
func (s *stubRepo) GetUserByID(ctx context.Context, id uint64) (*models.User, error) {
	return nil, nil
}
func (s *stubRepo) ListUserIDs(ctx context.Context) ([]uint64, error) {
	seen := map[uint64]struct{}{}
	var ids []uint64
	for _, trade := range s.trades {
		if _, ok := seen[trade.UserID]; ok {
			continue
		}
		seen[trade.UserID] = struct{}{}
		ids = append(ids, trade.UserID)
	}
	return ids, nil
}

func (s *stubRepo) GetOrCreateInstrumentTx(ctx context.Context, tx *gorm.DB, symbol string, assetType models.AssetType) (*models.Instrument, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if item, ok := s.instruments[symbol]; ok {
		return item, nil
	}
	if assetType == "" {
		assetType = models.AssetEquity
	}
	item := &models.Instrument{ID: s.id(), Symbol: symbol, AssetType: assetType}
	s.instruments[symbol] = item
	return item, nil
}

func (s *stubRepo) CreateTradeTx(ctx context.Context, tx *gorm.DB, item *models.Trade) error {
	item.ID = s.id()
	s.trades = append(s.trades, *item)
	return nil
}
func (s *stubRepo) CreateExecutionsTx(ctx context.Context, tx *gorm.DB, items []models.Execution) error {
	for i := range items {
		items[i].ID = s.id()
		s.execs = append(s.execs, items[i])
	}
	return nil
}
func (s *stubRepo) GetTrade(ctx context.Context, userID, tradeID uint64) (*models.Trade, error) {
	for i := range s.trades {
		if s.trades[i].ID != tradeID || s.trades[i].UserID != userID {
			continue
		}
		trade := s.trades[i]
		trade.Executions = nil
		for _, exec := range s.execs {
			if exec.TradeID == tradeID {
				trade.Executions = append(trade.Executions, exec)
			}
		}
		return &trade, nil
	}
	return nil, nil
}
func (s *stubRepo) ListTrades(ctx context.Context, params repository.ListTradesParams) ([]models.Trade, error) {
	var out []models.Trade
	for _, trade := range s.trades {
		if trade.UserID == params.UserID {
			out = append(out, trade)
		}
	}
	return out, nil
}
func (s *stubRepo) CountTrades(ctx context.Context, params repository.ListTradesParams) (int64, error) {
	items, _ := s.ListTrades(ctx, params)
	return int64(len(items)), nil
}
func (s *stubRepo) UpdateTradeFields(ctx context.Context, tradeID uint64, updates map[string]any) error {
	for i := range s.trades {
		if s.trades[i].ID != tradeID {
			continue
		}
		if v, ok := updates["strategy"].(string); ok {
			s.trades[i].Strategy = &v
		}
		if v, ok := updates["opened_at"].(time.Time); ok {
			s.trades[i].OpenedAt = v
		}
		if v, ok := updates["closed_at"].(time.Time); ok {
			closed := v
			s.trades[i].ClosedAt = &closed
		}
		if v, ok := updates["status"].(string); ok {
			s.trades[i].Status = models.TradeStatus(v)
		}
		if v, ok := updates["fees"].(float64); ok {
			s.trades[i].Fees = v
		}
		if v, ok := updates["notes"].(string); ok {
			s.trades[i].Notes = &v
		}
	}
	return nil
}
func (s *stubRepo) DeleteTradeCascadeTx(ctx context.Context, tx *gorm.DB, tradeID uint64) error {
	var trades []models.Trade
	for _, trade := range s.trades {
		if trade.ID != tradeID {
			trades = append(trades, trade)
		}
	}
	s.trades = trades
	var execs []models.Execution
	for _, exec := range s.execs {
		if exec.TradeID != tradeID {
			execs = append(execs, exec)
		}
	}
	s.execs = execs
	delete(s.tradeTags, tradeID)
	return nil
}
func (s *stubRepo) ListClosedTrades(ctx context.Context, userID uint64, since, until *time.Time) ([]models.Trade, error) {
	var out []models.Trade
	for _, trade := range s.trades {
		if trade.UserID != userID || trade.Status != models.StatusClosed {
			continue
		}
		at := trade.OpenedAt
		if trade.ClosedAt != nil {
			at = *trade.ClosedAt
		}
		if since != nil && at.Before(*since) {
			continue
		}
		if until != nil && at.After(*until) {
			continue
		}
		out = append(out, trade)
	}
	return out, nil
}

func (s *stubRepo) GetTagByName(ctx context.Context, userID uint64, name string) (*models.Tag, error) {
	for i := range s.tags {
		if s.tags[i].UserID == userID && strings.EqualFold(s.tags[i].Name, name) {
			return &s.tags[i], nil
		}
	}
	return nil, nil
}
func (s *stubRepo) CreateTag(ctx context.Context, item *models.Tag) error {
	item.ID = s.id()
	s.tags = append(s.tags, *item)
	return nil
}
func (s *stubRepo) ListTags(ctx context.Context, userID uint64) ([]models.Tag, error) {
	var out []models.Tag
	for _, tag := range s.tags {
		if tag.UserID == userID {
			out = append(out, tag)
		}
	}
	return out, nil
}
func (s *stubRepo) ListTagsByIDs(ctx context.Context, userID uint64, ids []uint64) ([]models.Tag, error) {
	want := map[uint64]struct{}{}
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []models.Tag
	for _, tag := range s.tags {
		if _, ok := want[tag.ID]; ok && tag.UserID == userID {
			out = append(out, tag)
		}
	}
	return out, nil
}
func (s *stubRepo) ReplaceTradeTags(ctx context.Context, tradeID uint64, tagIDs []uint64) error {
	s.tradeTags[tradeID] = append([]uint64(nil), tagIDs...)
	return nil
}
func (s *stubRepo) DeleteTradeTag(ctx context.Context, tradeID, tagID uint64) error {
	var kept []uint64
	for _, id := range s.tradeTags[tradeID] {
		if id != tagID {
			kept = append(kept, id)
		}
	}
	s.tradeTags[tradeID] = kept
	return nil
}

func (s *stubRepo) CreateJournalEntry(ctx context.Context, item *models.JournalEntry) error {
	item.ID = s.id()
	return nil
}
func (s *stubRepo) GetJournalEntry(ctx context.Context, id uint64) (*models.JournalEntry, error) {
	return nil, nil
}
func (s *stubRepo) DeleteJournalEntry(ctx context.Context, id uint64) error { return nil }
func (s *stubRepo) ListJournalEntries(ctx context.Context, tradeID uint64) ([]models.JournalEntry, error) {
	return nil, nil
}

func (s *stubRepo) CreateAttachment(ctx context.Context, item *models.Attachment) error {
	item.ID = s.id()
	return nil
}
func (s *stubRepo) GetAttachment(ctx context.Context, id uint64) (*models.Attachment, error) {
	return nil, nil
}
func (s *stubRepo) DeleteAttachment(ctx context.Context, id uint64) error { return nil }
func (s *stubRepo) ListAttachments(ctx context.Context, tradeID uint64) ([]models.Attachment, error) {
	return nil, nil
}

func (s *stubRepo) UpsertMetricSnapshot(ctx context.Context, item *models.MetricSnapshot) error {
	for i := range s.snapshots {
		if s.snapshots[i].UserID == item.UserID && s.snapshots[i].Date.Equal(item.Date) {
			s.snapshots[i] = *item
			return nil
		}
	}
	s.snapshots = append(s.snapshots, *item)
	return nil
}

var _ repository.Repository = (*stubRepo)(nil)
