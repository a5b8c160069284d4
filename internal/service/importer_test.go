package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

const importHeader = "date,time,symbol,side,qty,price,fees,trade_id,notes,strategy\n"

func newImportService() (*ImportService, *stubRepo) {
	repo := newStubRepo()
	return &ImportService{Trades: &TradeService{Repo: repo}}, repo
}

func TestImport_SharedTradeIDBecomesOneTrade(t *testing.T) {
	svc, repo := newImportService()
	csv := importHeader +
		"2024-01-02,13:30,AAPL,buy,10,150.25,1.5,T1,,\n" +
		"2024-01-02,15:45,AAPL,sell,10,152.00,,T1,,\n"

	report, err := svc.Import(context.Background(), 1, strings.NewReader(csv), false)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Created != 1 {
		t.Fatalf("created=%d want=1", report.Created)
	}
	if len(report.Errors) != 0 {
		t.Fatalf("errors=%v want none", report.Errors)
	}
	if len(repo.trades) != 1 || len(repo.execs) != 2 {
		t.Fatalf("store: trades=%d execs=%d want 1/2", len(repo.trades), len(repo.execs))
	}
	if len(report.TradeIDs) != 1 {
		t.Fatalf("tradeIDs=%v want one id", report.TradeIDs)
	}
}

func TestImport_DistinctIDsBecomeDistinctTrades(t *testing.T) {
	svc, repo := newImportService()
	csv := importHeader +
		"2024-01-02,13:30,AAPL,buy,10,150,0,T1,,\n" +
		"2024-01-02,13:31,MSFT,buy,5,330,0,T2,,\n" +
		"2024-01-03,10:00,TSLA,buy,2,200,0,T3,,\n"

	report, err := svc.Import(context.Background(), 1, strings.NewReader(csv), false)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Created != 3 {
		t.Fatalf("created=%d want=3", report.Created)
	}
	if len(repo.trades) != 3 {
		t.Fatalf("trades=%d want=3", len(repo.trades))
	}
}

func TestImport_SymbolDateFallbackGroupsSameDay(t *testing.T) {
	svc, repo := newImportService()
	csv := importHeader +
		"2024-01-02,13:30,AAPL,buy,10,150,0,,,\n" +
		"2024-01-02,15:45,AAPL,sell,10,152,0,,,\n" +
		"2024-01-03,09:30,AAPL,buy,10,151,0,,,\n"

	report, err := svc.Import(context.Background(), 1, strings.NewReader(csv), false)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Created != 2 {
		t.Fatalf("created=%d want=2", report.Created)
	}
	if len(repo.trades) != 2 {
		t.Fatalf("trades=%d want=2", len(repo.trades))
	}
}

func TestImport_BadGroupIsIsolated(t *testing.T) {
	svc, repo := newImportService()
	csv := importHeader +
		"2024-01-02,13:30,AAPL,buy,10,150,0,T1,,\n" +
		"2024-01-02,13:31,MSFT,hold,5,330,0,T2,,\n"

	report, err := svc.Import(context.Background(), 1, strings.NewReader(csv), false)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Created != 1 {
		t.Fatalf("created=%d want=1", report.Created)
	}
	if len(report.Errors) != 1 || !strings.Contains(report.Errors[0], "T2") {
		t.Fatalf("errors=%v want one mentioning T2", report.Errors)
	}
	if len(repo.trades) != 1 {
		t.Fatalf("trades=%d want=1", len(repo.trades))
	}
}

func TestImport_DryRunCommitsNothing(t *testing.T) {
	svc, repo := newImportService()
	csv := importHeader +
		"2024-01-02,13:30,AAPL,buy,10,150,0,T1,,\n" +
		"2024-01-02,13:31,MSFT,buy,5,330,0,T2,,\n"

	report, err := svc.Import(context.Background(), 1, strings.NewReader(csv), true)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Created != 2 {
		t.Fatalf("created=%d want=2", report.Created)
	}
	if report.TradeIDs != nil {
		t.Fatalf("tradeIDs=%v want nil on dry-run", report.TradeIDs)
	}
	if len(repo.trades) != 0 || len(repo.execs) != 0 {
		t.Fatalf("dry-run committed rows: trades=%d execs=%d", len(repo.trades), len(repo.execs))
	}
}

func TestImport_AllGroupsFailingKeepsTradeIDs(t *testing.T) {
	svc, _ := newImportService()
	csv := importHeader +
		"2024-01-02,13:31,MSFT,hold,5,330,0,T1,,\n"

	report, err := svc.Import(context.Background(), 1, strings.NewReader(csv), false)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Created != 0 || len(report.Errors) != 1 {
		t.Fatalf("report=%+v want 0 created, 1 error", report)
	}
	if report.TradeIDs == nil || len(report.TradeIDs) != 0 {
		t.Fatalf("tradeIDs=%#v want empty non-nil slice", report.TradeIDs)
	}
	body, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(body), `"trade_ids":[]`) {
		t.Fatalf("body=%s want trade_ids present and empty", body)
	}
}

func TestImport_MissingColumnsFailFast(t *testing.T) {
	svc, _ := newImportService()
	csv := "date,symbol,side\n2024-01-02,AAPL,buy\n"
	if _, err := svc.Import(context.Background(), 1, strings.NewReader(csv), true); !errors.Is(err, ErrValidation) {
		t.Fatalf("err=%v want ErrValidation", err)
	}
}

func TestCSVTemplate_HeaderMatchesColumns(t *testing.T) {
	lines := strings.Split(strings.TrimRight(CSVTemplate(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("template lines=%d want=2", len(lines))
	}
	if lines[0] != strings.Join(CSVColumns, ",") {
		t.Fatalf("header=%q", lines[0])
	}
}
