package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AssetType string

const (
	AssetTypeKRW  AssetType = "KRW"
	AssetTypeGold AssetType = "GOLD"
	AssetTypeUSD  AssetType = "USD"
	AssetTypeJPY  AssetType = "JPY"
	AssetTypeCNY  AssetType = "CNY"
)

// AssetTypes lists the supported types in display order.
var AssetTypes = []AssetType{AssetTypeKRW, AssetTypeGold, AssetTypeUSD, AssetTypeJPY, AssetTypeCNY}

var assetTypeNames = map[AssetType]string{
	AssetTypeKRW:  "Korea Won",
	AssetTypeGold: "Gold",
	AssetTypeUSD:  "US Dollar",
	AssetTypeJPY:  "Japan Yen",
	AssetTypeCNY:  "China Yuan",
}

func (t AssetType) Valid() bool {
	_, ok := assetTypeNames[t]
	return ok
}

// IsForeignCurrency reports whether the type is valued through an exchange rate.
func (t AssetType) IsForeignCurrency() bool {
	return t == AssetTypeUSD || t == AssetTypeJPY || t == AssetTypeCNY
}

func (t AssetType) DisplayName() string {
	return assetTypeNames[t]
}

type Asset struct {
	ID        int             `db:"id"`
	Name      string          `db:"name"`
	AssetType AssetType       `db:"asset_type"`
	Amount    decimal.Decimal `db:"amount"`
	BuyPrice  decimal.Decimal `db:"buy_price"`
	BuyDate   time.Time       `db:"buy_date"`
	CreatedAt time.Time       `db:"created_at"`
}
