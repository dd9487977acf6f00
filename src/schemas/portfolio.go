package schemas

import (
	"investmanager/src/models"
	"investmanager/src/utils"
)

type AssetTypeValuationResponse struct {
	Type            string  `json:"type"`
	Amount          float64 `json:"amount"`
	ExchangeRate    float64 `json:"exchange_rate"`
	CurrentValueKRW float64 `json:"current_value_krw"`
}

type PortfolioResponse struct {
	Date     string                       `json:"date"`
	Assets   []AssetTypeValuationResponse `json:"assets"`
	TotalKRW float64                      `json:"total_krw"`
}

func NewPortfolioResponse(valuation *models.PortfolioValuation) *PortfolioResponse {
	response := &PortfolioResponse{
		Date:     valuation.Date.Format(utils.ShortDashDateLayout),
		Assets:   make([]AssetTypeValuationResponse, 0, len(valuation.Groups)),
		TotalKRW: valuation.TotalKRW.InexactFloat64(),
	}
	for _, group := range valuation.Groups {
		response.Assets = append(response.Assets, AssetTypeValuationResponse{
			Type:            string(group.AssetType),
			Amount:          group.Amount.InexactFloat64(),
			ExchangeRate:    group.ExchangeRate.InexactFloat64(),
			CurrentValueKRW: group.CurrentValueKRW.InexactFloat64(),
		})
	}
	return response
}
