package schemas

import (
	"time"

	"investmanager/src/models"
	"investmanager/src/utils"

	"github.com/shopspring/decimal"
)

type AssetRequest struct {
	Name      string          `json:"name"`
	AssetType string          `json:"asset_type"`
	Amount    decimal.Decimal `json:"amount"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	BuyDate   string          `json:"buy_date"`
}

// ToModel converts the request into an asset. Only the date format is checked here;
// everything else is validated by the asset service.
func (r AssetRequest) ToModel(loc *time.Location) (*models.Asset, error) {
	asset := &models.Asset{
		Name:      r.Name,
		AssetType: models.AssetType(r.AssetType),
		Amount:    r.Amount,
		BuyPrice:  r.BuyPrice,
	}
	if r.BuyDate == "" {
		return asset, nil
	}
	buyDate, err := utils.ParseShortDate(r.BuyDate, loc)
	if err != nil {
		return nil, &utils.ValidationError{Fields: map[string]string{"buy_date": "must be a YYYY-MM-DD date"}}
	}
	asset.BuyDate = buyDate
	return asset, nil
}

type AssetResponse struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	AssetType string  `json:"asset_type"`
	Amount    float64 `json:"amount"`
	BuyPrice  float64 `json:"buy_price"`
	BuyDate   string  `json:"buy_date"`
}

func NewAssetResponse(asset models.Asset) AssetResponse {
	return AssetResponse{
		ID:        asset.ID,
		Name:      asset.Name,
		AssetType: string(asset.AssetType),
		Amount:    asset.Amount.InexactFloat64(),
		BuyPrice:  asset.BuyPrice.InexactFloat64(),
		BuyDate:   asset.BuyDate.Format(utils.ShortDashDateLayout),
	}
}

func NewAssetsResponse(assets []models.Asset) []AssetResponse {
	response := make([]AssetResponse, 0, len(assets))
	for _, asset := range assets {
		response = append(response, NewAssetResponse(asset))
	}
	return response
}
