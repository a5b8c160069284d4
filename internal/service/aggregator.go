package service

import (
	"math"

	"zellalite/internal/models"
)

// positionEpsilon is the tolerance under which a net position counts as flat.
const positionEpsilon = 1e-6

// NetPosition sums signed execution quantities: buys positive, sells negative.
func NetPosition(execs []models.Execution) float64 {
	var qty float64
	for _, exec := range execs {
		if exec.Side == models.SideBuy {
			qty += exec.Qty
		} else {
			qty -= exec.Qty
		}
	}
	return qty
}

// DeriveStatus reports a trade closed when its net position is flat within
// tolerance. An empty execution set is flat, hence closed.
func DeriveStatus(execs []models.Execution) models.TradeStatus {
	if math.Abs(NetPosition(execs)) < positionEpsilon {
		return models.StatusClosed
	}
	return models.StatusOpen
}

// NetPL is the blended cash flow of the trade: sell proceeds minus buy cost
// minus fees. No lot matching; every execution of the trade nets into one
// round trip. For a still-open one-sided trade this yields the negative cost
// carried so far, which is kept as-is.
func NetPL(execs []models.Execution, fees float64) float64 {
	var buys, sells float64
	for _, exec := range execs {
		if exec.Side == models.SideBuy {
			buys += exec.Qty * exec.Price
		} else {
			sells += exec.Qty * exec.Price
		}
	}
	return sells - buys - fees
}

// Recompute rewrites both derived trade fields from scratch. Called whenever
// the execution set changes; never incremental, so the fields cannot drift.
func Recompute(trade *models.Trade, execs []models.Execution) {
	if trade == nil {
		return
	}
	trade.Status = DeriveStatus(execs)
	trade.NetPL = NetPL(execs, trade.Fees)
}
