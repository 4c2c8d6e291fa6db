package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"scaleout-planner/internal/analysis"
	"scaleout-planner/internal/config"
	"scaleout-planner/internal/model"
	"scaleout-planner/internal/plan"
	"scaleout-planner/internal/strategy"
)

// Demo:
// - Load a spot price JSON response from sample_prices.json
// - Instantiate a position
// - Build a price ladder from the observed data and run a scale-out plan
//   to show how the pieces fit together
func main() {
	dataPath := flag.String("data", "sample_prices.json", "Path to spot price JSON (sample_prices.json)")
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	outCSV := flag.String("out", "", "Optional path to write schedule CSV (e.g. results/schedule.csv)")
	flag.Parse()

	raw, err := os.ReadFile(*dataPath)
	if err != nil {
		panic(err)
	}

	var resp model.SpotPriceResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		panic(err)
	}
	if len(resp.Data) == 0 {
		panic("no data in JSON")
	}

	// Defaults (can be overridden via --config).
	params := model.PositionParams{
		Symbol:   resp.Data[0].Symbol,
		Quantity: 1.0,
	}
	planCfg := config.PlanConfig{
		Quantity: 1.0,
		Steps:    5,
	}
	strategyName := "linear"

	if *cfgPath != "" {
		cfg, err := config.LoadUnchecked(*cfgPath)
		if err != nil {
			panic(err)
		}
		params = cfg.Position.ToModelParams()
		planCfg = cfg.Plan
		if planCfg.Quantity == 0 {
			planCfg.Quantity = params.Quantity
		}
		strategyName = cfg.Strategy.Name
	}

	// Derive the ladder range from the observed price history unless the
	// config pinned it explicitly.
	if planCfg.StartPrice == 0 || planCfg.EndPrice == 0 {
		start, end, err := analysis.AutoRange(resp.Data, 0.05, 0.95)
		if err != nil {
			panic(err)
		}
		planCfg.StartPrice = start
		planCfg.EndPrice = end
	}

	pos, err := model.NewPosition(params)
	if err != nil {
		panic(err)
	}

	strat, err := strategy.ForName(strategyName)
	if err != nil {
		panic(err)
	}

	engine := plan.New()
	result, err := engine.RunPosition(plan.Params{
		Quantity:   planCfg.Quantity,
		Steps:      planCfg.Steps,
		StartPrice: planCfg.StartPrice,
		EndPrice:   planCfg.EndPrice,
	}, strat, pos)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Loaded %d ticks for %s (%s)\n", len(resp.Data), resp.Data[0].Symbol, resp.Data[0].Market)
	fmt.Printf("Strategy=%s\n", strat.Name())
	fmt.Printf("Ladder: %.2f -> %.2f over %d steps\n\n", planCfg.StartPrice, planCfg.EndPrice, planCfg.Steps)

	for _, r := range result.Schedule {
		fmt.Printf(
			"step=%2d price=%8.2f  action=%-5s  req=%8.4f  sell=%8.4f  proceeds=%9.2f  cum=%9.2f  remaining=%8.4f\n",
			r.Step,
			r.Price,
			string(r.Action),
			r.RequestedAmount,
			r.AmountToSell,
			r.Proceeds,
			r.CumProceeds,
			r.RemainingAfter,
		)
	}

	if *outCSV != "" {
		if err := plan.WriteScheduleCSV(*outCSV, result.Schedule); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	fmt.Printf("\nDone. Total proceeds=$%.2f  Avg sale price=$%.2f\n", result.TotalProceeds, result.AvgSalePrice)
}
