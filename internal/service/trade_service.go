package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"zellalite/internal/models"
	"zellalite/internal/repository"
)

type TradeService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

type ExecutionInput struct {
	Side      models.ExecutionSide
	Qty       float64
	Price     float64
	Timestamp time.Time
}

type TradeInput struct {
	Symbol     string
	AssetType  models.AssetType
	Direction  models.TradeDirection
	Strategy   *string
	Notes      *string
	OpenedAt   time.Time
	ClosedAt   *time.Time
	Status     models.TradeStatus
	Fees       float64
	Executions []ExecutionInput
}

// Create persists a trade with its executions in one transaction and derives
// status and net P/L before the write. With dryRun the identical path runs
// and is rolled back at the end; the returned trade carries no durable id.
func (s *TradeService) Create(ctx context.Context, userID uint64, in TradeInput, dryRun bool) (*models.Trade, error) {
	if strings.TrimSpace(in.Symbol) == "" {
		return nil, fmt.Errorf("%w: symbol is required", ErrValidation)
	}
	for i, exec := range in.Executions {
		if exec.Qty <= 0 {
			return nil, fmt.Errorf("%w: execution %d qty must be positive", ErrValidation, i+1)
		}
		if exec.Price <= 0 {
			return nil, fmt.Errorf("%w: execution %d price must be positive", ErrValidation, i+1)
		}
	}

	var created *models.Trade
	err := s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		instrument, err := s.Repo.GetOrCreateInstrumentTx(ctx, tx, in.Symbol, in.AssetType)
		if err != nil {
			return err
		}

		status := in.Status
		if status == "" {
			status = models.StatusOpen
		}
		trade := &models.Trade{
			UserID:       userID,
			InstrumentID: instrument.ID,
			Direction:    in.Direction,
			Strategy:     in.Strategy,
			OpenedAt:     in.OpenedAt,
			ClosedAt:     in.ClosedAt,
			Status:       status,
			Fees:         in.Fees,
			Notes:        in.Notes,
		}

		execs := make([]models.Execution, 0, len(in.Executions))
		for _, e := range in.Executions {
			execs = append(execs, models.Execution{
				Side:      e.Side,
				Qty:       e.Qty,
				Price:     e.Price,
				Timestamp: e.Timestamp,
			})
		}

		// Derived fields always win over whatever status the caller supplied.
		Recompute(trade, execs)

		if err := s.Repo.CreateTradeTx(ctx, tx, trade); err != nil {
			return err
		}
		for i := range execs {
			execs[i].TradeID = trade.ID
		}
		if err := s.Repo.CreateExecutionsTx(ctx, tx, execs); err != nil {
			return err
		}

		trade.Instrument = *instrument
		trade.Executions = execs
		created = trade

		if dryRun {
			return errDryRunRollback
		}
		return nil
	})
	if err != nil && !errors.Is(err, errDryRunRollback) {
		return nil, err
	}
	if dryRun && created != nil {
		created.ID = 0
	}
	return created, nil
}

func (s *TradeService) Get(ctx context.Context, userID, tradeID uint64) (*models.Trade, error) {
	trade, err := s.Repo.GetTrade(ctx, userID, tradeID)
	if err != nil {
		return nil, err
	}
	if trade == nil {
		return nil, fmt.Errorf("%w: trade", ErrNotFound)
	}
	return trade, nil
}

func (s *TradeService) List(ctx context.Context, params repository.ListTradesParams) ([]models.Trade, int64, error) {
	items, err := s.Repo.ListTrades(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.CountTrades(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// TradeUpdateParams carries only the fields the caller explicitly supplied;
// nil means "leave untouched". Derived fields are not recomputed here.
type TradeUpdateParams struct {
	Strategy *string
	OpenedAt *time.Time
	ClosedAt *time.Time
	Status   *models.TradeStatus
	Fees     *float64
	Notes    *string
}

func (s *TradeService) Update(ctx context.Context, userID, tradeID uint64, params TradeUpdateParams) (*models.Trade, error) {
	if _, err := s.Get(ctx, userID, tradeID); err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if params.Strategy != nil {
		updates["strategy"] = *params.Strategy
	}
	if params.OpenedAt != nil {
		updates["opened_at"] = *params.OpenedAt
	}
	if params.ClosedAt != nil {
		updates["closed_at"] = *params.ClosedAt
	}
	if params.Status != nil {
		updates["status"] = string(*params.Status)
	}
	if params.Fees != nil {
		updates["fees"] = *params.Fees
	}
	if params.Notes != nil {
		updates["notes"] = *params.Notes
	}
	if err := s.Repo.UpdateTradeFields(ctx, tradeID, updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, tradeID)
}

// Delete removes the trade and its executions, tag links, journal entries and
// attachments in one transaction.
func (s *TradeService) Delete(ctx context.Context, userID, tradeID uint64) error {
	if _, err := s.Get(ctx, userID, tradeID); err != nil {
		return err
	}
	return s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		return s.Repo.DeleteTradeCascadeTx(ctx, tx, tradeID)
	})
}

// AssignTags replaces the trade's tag set. Every id must resolve to one of
// the caller's own tags.
func (s *TradeService) AssignTags(ctx context.Context, userID, tradeID uint64, tagIDs []uint64) (*models.Trade, error) {
	if _, err := s.Get(ctx, userID, tradeID); err != nil {
		return nil, err
	}
	tags, err := s.Repo.ListTagsByIDs(ctx, userID, tagIDs)
	if err != nil {
		return nil, err
	}
	known := make(map[uint64]struct{}, len(tags))
	for _, tag := range tags {
		known[tag.ID] = struct{}{}
	}
	var missing []uint64
	for _, id := range tagIDs {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		return nil, fmt.Errorf("%w: unknown tag ids %v", ErrValidation, missing)
	}
	if err := s.Repo.ReplaceTradeTags(ctx, tradeID, tagIDs); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, tradeID)
}

func (s *TradeService) RemoveTag(ctx context.Context, userID, tradeID, tagID uint64) (*models.Trade, error) {
	if _, err := s.Get(ctx, userID, tradeID); err != nil {
		return nil, err
	}
	if err := s.Repo.DeleteTradeTag(ctx, tradeID, tagID); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, tradeID)
}
