package schemas

type RateResponse struct {
	Code string  `json:"code"`
	Date string  `json:"date"`
	Rate float64 `json:"rate"`
}

type WarmResultResponse struct {
	Code  string  `json:"code"`
	Rate  float64 `json:"rate,omitempty"`
	Error string  `json:"error,omitempty"`
}

type WarmResponse struct {
	Date    string               `json:"date"`
	Results []WarmResultResponse `json:"results"`
}
