package model

import "time"

// SpotPriceResponse matches the JSON shape of the price API (and of
// sample_prices.json).
//
// Example:
// {
//   "status_code": 200,
//   "data": [ ... ]
// }
type SpotPriceResponse struct {
	StatusCode int         `json:"status_code"`
	Data       []PriceTick `json:"data"`
}

// PriceTick represents one observed spot price for a symbol.
// Timestamps are provided in the JSON as RFC3339 strings.
type PriceTick struct {
	Timestamp time.Time `json:"timestamp"`

	Market   string `json:"market"`
	Symbol   string `json:"symbol"`
	Exchange string `json:"exchange"`

	// Price in quote currency per asset unit.
	Price  float64 `json:"price"`
	Volume float64 `json:"volume"`
}
