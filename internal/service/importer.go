package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"zellalite/internal/models"
)

// CSVColumns is the canonical import header, also served by the template
// endpoint.
var CSVColumns = []string{
	"date",
	"time",
	"symbol",
	"side",
	"qty",
	"price",
	"fees",
	"trade_id",
	"notes",
	"strategy",
}

const csvExampleRow = "2024-01-02,13:30,AAPL,buy,10,150.25,1.5,1,First leg,Opening range"

// CSVTemplate returns the canonical header plus one example row.
func CSVTemplate() string {
	return strings.Join(CSVColumns, ",") + "\n" + csvExampleRow + "\n"
}

type ImportReport struct {
	Created  int      `json:"created"`
	Errors   []string `json:"errors"`
	// Nil (JSON null) on dry-run; a committed import always carries a
	// slice, even when every group failed.
	TradeIDs []uint64 `json:"trade_ids"`
}

type ImportService struct {
	Trades *TradeService
	Logger *zap.Logger
}

type importRow struct {
	date     string
	time     string
	symbol   string
	side     string
	qty      string
	price    string
	fees     string
	tradeID  string
	notes    string
	strategy string
}

// key is the grouping key: the explicit trade id when present, otherwise
// symbol+date. The fallback deliberately merges same-day round trips on one
// symbol into a single trade; that is a documented limitation of the format.
func (r importRow) key() string {
	if strings.TrimSpace(r.tradeID) != "" {
		return strings.TrimSpace(r.tradeID)
	}
	return r.symbol + "-" + r.date
}

// Import parses the CSV, groups rows into trade drafts and feeds each draft
// through trade creation in its own transaction. A bad group is reported and
// rolled back without touching the others. With dryRun every group still runs
// the full path but nothing is committed and no ids are returned.
func (s *ImportService) Import(ctx context.Context, userID uint64, r io.Reader, dryRun bool) (*ImportReport, error) {
	rows, err := parseCSV(r)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{Errors: []string{}}
	if !dryRun {
		report.TradeIDs = []uint64{}
	}

	var keys []string
	groups := map[string][]importRow{}
	for _, row := range rows {
		k := row.key()
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], row)
	}

	for _, key := range keys {
		trade, err := s.importGroup(ctx, userID, groups[key], dryRun)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("trade %s: %v", key, err))
			continue
		}
		report.Created++
		if !dryRun {
			report.TradeIDs = append(report.TradeIDs, trade.ID)
		}
	}

	if s.Logger != nil {
		s.Logger.Info("import finished",
			zap.Bool("dry_run", dryRun),
			zap.Int("created", report.Created),
			zap.Int("errors", len(report.Errors)),
		)
	}
	return report, nil
}

func (s *ImportService) importGroup(ctx context.Context, userID uint64, rows []importRow, dryRun bool) (*models.Trade, error) {
	execs := make([]ExecutionInput, 0, len(rows))
	for _, row := range rows {
		ts, err := parseRowTimestamp(row.date, row.time)
		if err != nil {
			return nil, err
		}
		side, err := models.ParseSide(row.side)
		if err != nil {
			return nil, err
		}
		qty, err := strconv.ParseFloat(strings.TrimSpace(row.qty), 64)
		if err != nil {
			return nil, fmt.Errorf("bad qty %q", row.qty)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(row.price), 64)
		if err != nil {
			return nil, fmt.Errorf("bad price %q", row.price)
		}
		execs = append(execs, ExecutionInput{
			Side:      side,
			Qty:       qty,
			Price:     price,
			Timestamp: ts,
		})
	}

	first := rows[0]
	fees := 0.0
	if strings.TrimSpace(first.fees) != "" {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(first.fees), 64)
		if err != nil {
			return nil, fmt.Errorf("bad fees %q", first.fees)
		}
		fees = parsed
	}

	input := TradeInput{
		Symbol:     strings.ToUpper(strings.TrimSpace(first.symbol)),
		AssetType:  models.AssetEquity,
		Direction:  models.DirectionLong,
		OpenedAt:   execs[0].Timestamp,
		Status:     models.StatusOpen,
		Fees:       fees,
		Executions: execs,
	}
	closedAt := execs[len(execs)-1].Timestamp
	input.ClosedAt = &closedAt
	if v := strings.TrimSpace(first.strategy); v != "" {
		input.Strategy = &v
	}
	if v := strings.TrimSpace(first.notes); v != "" {
		input.Notes = &v
	}

	return s.Trades.Create(ctx, userID, input, dryRun)
}

func parseCSV(r io.Reader) ([]importRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing columns: %v", ErrValidation, CSVColumns)
	}

	index := map[string]int{}
	for i, name := range records[0] {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}
	var missing []string
	for _, col := range CSVColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns: %v", ErrValidation, missing)
	}

	cell := func(record []string, col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []importRow
	for _, record := range records[1:] {
		row := importRow{
			date:     cell(record, "date"),
			time:     cell(record, "time"),
			symbol:   cell(record, "symbol"),
			side:     cell(record, "side"),
			qty:      cell(record, "qty"),
			price:    cell(record, "price"),
			fees:     cell(record, "fees"),
			tradeID:  cell(record, "trade_id"),
			notes:    cell(record, "notes"),
			strategy: cell(record, "strategy"),
		}
		// Blank date marks a trailer or padding line.
		if strings.TrimSpace(row.date) == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRowTimestamp(date, clock string) (time.Time, error) {
	raw := strings.TrimSpace(date) + " " + strings.TrimSpace(clock)
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("bad timestamp %q", raw)
}
