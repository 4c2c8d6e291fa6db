package data

import (
	"encoding/json"
	"os"

	"scaleout-planner/internal/model"
)

func LoadSpotPriceJSON(path string) (*model.SpotPriceResponse, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var resp model.SpotPriceResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GroupBySymbol splits a response into symbol-keyed slices.
func GroupBySymbol(resp *model.SpotPriceResponse) map[string][]model.PriceTick {
	out := map[string][]model.PriceTick{}
	if resp == nil {
		return out
	}
	for _, it := range resp.Data {
		out[it.Symbol] = append(out[it.Symbol], it)
	}
	return out
}
