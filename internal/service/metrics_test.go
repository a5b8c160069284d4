package service

import (
	"context"
	"testing"
	"time"

	"zellalite/internal/models"
)

func closedTrade(userID uint64, netPL float64, closedAt time.Time) models.Trade {
	return models.Trade{
		UserID:   userID,
		Status:   models.StatusClosed,
		NetPL:    netPL,
		OpenedAt: closedAt.Add(-time.Hour),
		ClosedAt: &closedAt,
	}
}

func TestComputeSummary_MixedOutcomes(t *testing.T) {
	day := time.Date(2024, 1, 2, 16, 0, 0, 0, time.UTC)
	trades := []models.Trade{
		closedTrade(1, 10, day),
		closedTrade(1, -5, day),
		closedTrade(1, 0, day),
	}
	got := computeSummary(trades)
	if got.RealizedPL != 5 {
		t.Fatalf("realized=%v want=5", got.RealizedPL)
	}
	if got.WinRate != 0.3333 {
		t.Fatalf("winRate=%v want=0.3333", got.WinRate)
	}
	if got.Expectancy != 1.67 {
		t.Fatalf("expectancy=%v want=1.67", got.Expectancy)
	}
	if got.ProfitFactor != 2 {
		t.Fatalf("profitFactor=%v want=2", got.ProfitFactor)
	}
}

func TestComputeSummary_NoLosses(t *testing.T) {
	day := time.Date(2024, 1, 2, 16, 0, 0, 0, time.UTC)
	got := computeSummary([]models.Trade{closedTrade(1, 12.5, day)})
	if got.ProfitFactor != 12.5 {
		t.Fatalf("profitFactor=%v want gross profit when no losses", got.ProfitFactor)
	}
	if got.WinRate != 1 {
		t.Fatalf("winRate=%v want=1", got.WinRate)
	}
}

func TestComputeSummary_Empty(t *testing.T) {
	got := computeSummary(nil)
	if got.RealizedPL != 0 || got.WinRate != 0 || got.Expectancy != 0 || got.ProfitFactor != 0 {
		t.Fatalf("summary=%+v want all zero", got)
	}
}

func TestComputeEquityCurve_SortsByCloseTime(t *testing.T) {
	later := time.Date(2024, 1, 3, 16, 0, 0, 0, time.UTC)
	earlier := time.Date(2024, 1, 1, 16, 0, 0, 0, time.UTC)
	trades := []models.Trade{
		closedTrade(1, -4, later),
		closedTrade(1, 10, earlier),
	}
	points := computeEquityCurve(trades)
	if len(points) != 2 {
		t.Fatalf("points=%d want=2", len(points))
	}
	if points[0].Date != "2024-01-01" || points[0].Equity != 10 {
		t.Fatalf("points[0]=%+v want 2024-01-01/10", points[0])
	}
	if points[1].Date != "2024-01-03" || points[1].Equity != 6 {
		t.Fatalf("points[1]=%+v want 2024-01-03/6", points[1])
	}
}

func TestSnapshotAll_WritesOneRowPerUser(t *testing.T) {
	repo := newStubRepo()
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	closed := day.Add(16 * time.Hour)
	repo.trades = []models.Trade{
		closedTrade(1, 10, closed),
		closedTrade(1, -3, closed.Add(-48*time.Hour)),
		closedTrade(2, 5, closed),
	}

	svc := &MetricsService{Repo: repo}
	if err := svc.SnapshotAll(context.Background(), day); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(repo.snapshots) != 2 {
		t.Fatalf("snapshots=%d want=2", len(repo.snapshots))
	}
	for _, snap := range repo.snapshots {
		if snap.UserID == 1 {
			if snap.RealizedPL != 10 {
				t.Fatalf("user 1 day P/L=%v want=10", snap.RealizedPL)
			}
			if snap.CumulativePL != 7 {
				t.Fatalf("user 1 cumulative=%v want=7", snap.CumulativePL)
			}
		}
	}
}
