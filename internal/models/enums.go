package models

import (
	"fmt"
	"strings"
)

// Closed string enums. Persisted values are the literals below; anything else
// is rejected at the parse boundary instead of silently stored.

type ExecutionSide string

const (
	SideBuy  ExecutionSide = "buy"
	SideSell ExecutionSide = "sell"
)

func ParseSide(raw string) (ExecutionSide, error) {
	switch ExecutionSide(strings.ToLower(strings.TrimSpace(raw))) {
	case SideBuy:
		return SideBuy, nil
	case SideSell:
		return SideSell, nil
	default:
		return "", fmt.Errorf("unknown side %q", raw)
	}
}

type TradeDirection string

const (
	DirectionLong  TradeDirection = "long"
	DirectionShort TradeDirection = "short"
)

func ParseDirection(raw string) (TradeDirection, error) {
	switch TradeDirection(strings.ToLower(strings.TrimSpace(raw))) {
	case DirectionLong:
		return DirectionLong, nil
	case DirectionShort:
		return DirectionShort, nil
	default:
		return "", fmt.Errorf("unknown direction %q", raw)
	}
}

type TradeStatus string

const (
	StatusOpen   TradeStatus = "open"
	StatusClosed TradeStatus = "closed"
)

func ParseStatus(raw string) (TradeStatus, error) {
	switch TradeStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusOpen:
		return StatusOpen, nil
	case StatusClosed:
		return StatusClosed, nil
	default:
		return "", fmt.Errorf("unknown status %q", raw)
	}
}

type AssetType string

const (
	AssetEquity AssetType = "equity"
	AssetFuture AssetType = "future"
	AssetCrypto AssetType = "crypto"
	AssetFX     AssetType = "fx"
)

func ParseAssetType(raw string) (AssetType, error) {
	switch AssetType(strings.ToLower(strings.TrimSpace(raw))) {
	case AssetEquity:
		return AssetEquity, nil
	case AssetFuture:
		return AssetFuture, nil
	case AssetCrypto:
		return AssetCrypto, nil
	case AssetFX:
		return AssetFX, nil
	default:
		return "", fmt.Errorf("unknown asset type %q", raw)
	}
}
