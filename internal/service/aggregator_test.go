package service

import (
	"math"
	"testing"
	"time"

	"zellalite/internal/models"
)

func exec(side models.ExecutionSide, qty, price float64) models.Execution {
	return models.Execution{Side: side, Qty: qty, Price: price, Timestamp: time.Now()}
}

func TestDeriveStatus_EmptyIsClosed(t *testing.T) {
	if got := DeriveStatus(nil); got != models.StatusClosed {
		t.Fatalf("status=%s want=closed", got)
	}
}

func TestDeriveStatus_OneSidedIsOpen(t *testing.T) {
	execs := []models.Execution{exec(models.SideBuy, 10, 100)}
	if got := DeriveStatus(execs); got != models.StatusOpen {
		t.Fatalf("status=%s want=open", got)
	}
}

func TestDeriveStatus_MatchedIsClosed(t *testing.T) {
	execs := []models.Execution{
		exec(models.SideBuy, 10, 100),
		exec(models.SideSell, 4, 110),
		exec(models.SideSell, 6, 105),
	}
	if got := DeriveStatus(execs); got != models.StatusClosed {
		t.Fatalf("status=%s want=closed", got)
	}
}

func TestNetPL_RoundTrip(t *testing.T) {
	execs := []models.Execution{
		exec(models.SideBuy, 10, 100),
		exec(models.SideSell, 10, 110),
	}
	got := NetPL(execs, 1.5)
	if math.Abs(got-98.5) > 1e-9 {
		t.Fatalf("netPL=%v want=98.5", got)
	}
}

func TestNetPL_FeesReduceProceeds(t *testing.T) {
	execs := []models.Execution{
		exec(models.SideBuy, 10, 100),
		exec(models.SideSell, 10, 105),
	}
	got := NetPL(execs, 2)
	if math.Abs(got-48) > 1e-9 {
		t.Fatalf("netPL=%v want=48", got)
	}
}

func TestNetPL_OrderIndependent(t *testing.T) {
	a := []models.Execution{
		exec(models.SideBuy, 10, 100),
		exec(models.SideSell, 4, 110),
		exec(models.SideSell, 6, 105),
	}
	b := []models.Execution{a[2], a[0], a[1]}
	if NetPL(a, 2) != NetPL(b, 2) {
		t.Fatalf("netPL not order independent: %v vs %v", NetPL(a, 2), NetPL(b, 2))
	}
	if NetPosition(a) != NetPosition(b) {
		t.Fatalf("position not order independent")
	}
}

func TestRecompute_OverwritesCallerStatus(t *testing.T) {
	trade := &models.Trade{Status: models.StatusOpen, Fees: 1.5}
	execs := []models.Execution{
		exec(models.SideBuy, 10, 100),
		exec(models.SideSell, 10, 110),
	}
	Recompute(trade, execs)
	if trade.Status != models.StatusClosed {
		t.Fatalf("status=%s want=closed", trade.Status)
	}
	if math.Abs(trade.NetPL-98.5) > 1e-9 {
		t.Fatalf("netPL=%v want=98.5", trade.NetPL)
	}
}

func TestRecompute_OpenTradeKeepsNegativeCost(t *testing.T) {
	trade := &models.Trade{Fees: 0}
	execs := []models.Execution{exec(models.SideBuy, 10, 100)}
	Recompute(trade, execs)
	if trade.Status != models.StatusOpen {
		t.Fatalf("status=%s want=open", trade.Status)
	}
	if math.Abs(trade.NetPL-(-1000)) > 1e-9 {
		t.Fatalf("netPL=%v want=-1000", trade.NetPL)
	}
}
