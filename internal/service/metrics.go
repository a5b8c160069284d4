package service

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"zellalite/internal/models"
	"zellalite/internal/repository"
)

type MetricsSummary struct {
	RealizedPL   float64 `json:"realized_pl"`
	WinRate      float64 `json:"win_rate"`
	Expectancy   float64 `json:"expectancy"`
	ProfitFactor float64 `json:"profit_factor"`
}

type EquityPoint struct {
	Date   string  `json:"date"`
	Equity float64 `json:"equity"`
}

type MetricsService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

// Summary aggregates the user's closed trades inside the inclusive
// [from, to] window on the close timestamp.
func (s *MetricsService) Summary(ctx context.Context, userID uint64, from, to *time.Time) (MetricsSummary, error) {
	trades, err := s.Repo.ListClosedTrades(ctx, userID, from, to)
	if err != nil {
		return MetricsSummary{}, err
	}
	return computeSummary(trades), nil
}

func (s *MetricsService) EquityCurve(ctx context.Context, userID uint64, from, to *time.Time) ([]EquityPoint, error) {
	trades, err := s.Repo.ListClosedTrades(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return computeEquityCurve(trades), nil
}

// SnapshotAll caches one MetricSnapshot per user for the given day. The read
// endpoints never consult this table; it exists for dashboards that want a
// precomputed history.
func (s *MetricsService) SnapshotAll(ctx context.Context, day time.Time) error {
	ids, err := s.Repo.ListUserIDs(ctx)
	if err != nil {
		return err
	}
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)
	for _, userID := range ids {
		trades, err := s.Repo.ListClosedTrades(ctx, userID, nil, &dayEnd)
		if err != nil {
			return err
		}
		summary := computeSummary(trades)
		var dayPL, cumulative float64
		for _, trade := range trades {
			cumulative += trade.NetPL
			closed := trade.OpenedAt
			if trade.ClosedAt != nil {
				closed = *trade.ClosedAt
			}
			if !closed.Before(dayStart) && !closed.After(dayEnd) {
				dayPL += trade.NetPL
			}
		}
		item := &models.MetricSnapshot{
			UserID:       userID,
			Date:         dayStart,
			RealizedPL:   round2(dayPL),
			CumulativePL: round2(cumulative),
			WinRate:      summary.WinRate,
			ProfitFactor: summary.ProfitFactor,
			Expectancy:   summary.Expectancy,
		}
		if err := s.Repo.UpsertMetricSnapshot(ctx, item); err != nil {
			return err
		}
		if s.Logger != nil {
			s.Logger.Debug("metric snapshot written",
				zap.Uint64("user_id", userID),
				zap.String("date", dayStart.Format("2006-01-02")),
			)
		}
	}
	return nil
}

// computeSummary is pure so all numeric edge cases are testable without
// storage. Accumulation stays in float64; rounding happens only here at the
// output boundary.
func computeSummary(trades []models.Trade) MetricsSummary {
	var realized, grossProfit, grossLoss float64
	var wins int
	for _, trade := range trades {
		realized += trade.NetPL
		if trade.NetPL > 0 {
			wins++
			grossProfit += trade.NetPL
		} else if trade.NetPL < 0 {
			grossLoss += -trade.NetPL
		}
	}

	total := len(trades)
	var winRate, expectancy float64
	if total > 0 {
		winRate = float64(wins) / float64(total)
		expectancy = realized / float64(total)
	}

	// No losing trades yet: report gross profit itself rather than dividing
	// by zero, and 0 when there are no winners either.
	profitFactor := 0.0
	switch {
	case grossLoss > 0:
		profitFactor = grossProfit / grossLoss
	case grossProfit > 0:
		profitFactor = grossProfit
	}

	return MetricsSummary{
		RealizedPL:   round2(realized),
		WinRate:      round4(winRate),
		Expectancy:   round2(expectancy),
		ProfitFactor: round4(profitFactor),
	}
}

func computeEquityCurve(trades []models.Trade) []EquityPoint {
	sorted := make([]models.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return curveTime(sorted[i]).Before(curveTime(sorted[j]))
	})

	points := make([]EquityPoint, 0, len(sorted))
	var equity float64
	for _, trade := range sorted {
		equity += trade.NetPL
		points = append(points, EquityPoint{
			Date:   curveTime(trade).Format("2006-01-02"),
			Equity: round2(equity),
		})
	}
	return points
}

// curveTime prefers the close timestamp; closed trades should always carry
// one, but a missing value is tolerated by falling back to the open time.
func curveTime(trade models.Trade) time.Time {
	if trade.ClosedAt != nil {
		return *trade.ClosedAt
	}
	return trade.OpenedAt
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
