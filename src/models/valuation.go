package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetTypeValuation is the aggregate of every held asset of one type.
type AssetTypeValuation struct {
	AssetType       AssetType
	Amount          decimal.Decimal
	ExchangeRate    decimal.Decimal
	CurrentValueKRW decimal.Decimal
}

// PortfolioValuation lists groups in the order their type was first seen.
type PortfolioValuation struct {
	Date     time.Time
	Groups   []AssetTypeValuation
	TotalKRW decimal.Decimal
}
