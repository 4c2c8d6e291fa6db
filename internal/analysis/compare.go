package analysis

import (
	"sort"

	"scaleout-planner/internal/plan"
	"scaleout-planner/internal/strategy"
)

// StrategyComparison summarizes one policy's schedule over a shared ladder.
type StrategyComparison struct {
	Strategy       string
	TotalProceeds  float64
	AvgSalePrice   float64
	FirstStepShare float64
	LastStepShare  float64
}

// CompareStrategies runs every registered policy over the same price
// ladder and reports per-policy totals, sorted descending by proceeds.
func CompareStrategies(quantity float64, steps int, startPrice, endPrice float64) ([]StrategyComparison, error) {
	engine := plan.New()
	params := plan.Params{
		Quantity:   quantity,
		Steps:      steps,
		StartPrice: startPrice,
		EndPrice:   endPrice,
	}

	out := make([]StrategyComparison, 0, len(strategy.Names()))
	for _, name := range strategy.Names() {
		strat, err := strategy.ForName(name)
		if err != nil {
			return nil, err
		}
		res, err := engine.Run(params, strat)
		if err != nil {
			return nil, err
		}

		cmp := StrategyComparison{
			Strategy:      name,
			TotalProceeds: res.TotalProceeds,
			AvgSalePrice:  res.AvgSalePrice,
		}
		if len(res.Schedule) > 0 && quantity > 0 {
			cmp.FirstStepShare = res.Schedule[0].AmountToSell / quantity
			cmp.LastStepShare = res.Schedule[len(res.Schedule)-1].AmountToSell / quantity
		}
		out = append(out, cmp)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].TotalProceeds > out[j].TotalProceeds
	})
	return out, nil
}
