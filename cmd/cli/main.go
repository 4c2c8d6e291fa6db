package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scaleout-planner/internal/analysis"
	"scaleout-planner/internal/config"
	"scaleout-planner/internal/data"
	"scaleout-planner/internal/model"
	"scaleout-planner/internal/plan"
	"scaleout-planner/internal/strategy"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "plan":
		cmdPlan(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli plan --config examples/config.yaml --out results/schedule.csv")
	fmt.Println("  cli plan --config examples/config.yaml --data sample_prices.json --out results/schedule.csv")
	fmt.Println("  cli rank --data sample_prices.json")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - plan outputs CSV with action=SELL/HOLD per ladder step")
	fmt.Println("  - with --data, the ladder range is derived from tick-history percentiles")
	fmt.Println("  - rank computes a 'ceiling proceeds' score per symbol")
}

func cmdPlan(args []string) {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	dataPath := fs.String("data", "", "Optional: spot price JSON to derive the ladder range from")
	outPath := fs.String("out", "results/schedule.csv", "Output CSV path")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.LoadUnchecked(*cfgPath)
	if err != nil {
		panic(err)
	}
	if cfg.Plan.Quantity == 0 {
		cfg.Plan.Quantity = cfg.Position.Quantity
	}

	if *dataPath != "" {
		resp, err := data.LoadSpotPriceJSON(*dataPath)
		if err != nil {
			panic(err)
		}
		start, end, err := analysis.AutoRange(resp.Data, 0.05, 0.95)
		if err != nil {
			panic(err)
		}
		cfg.Plan.StartPrice = start
		cfg.Plan.EndPrice = end
	}

	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	pos, err := model.NewPosition(cfg.Position.ToModelParams())
	if err != nil {
		panic(err)
	}

	strat, err := strategy.ForName(cfg.Strategy.Name)
	if err != nil {
		panic(err)
	}

	engine := plan.New()
	res, err := engine.RunPosition(plan.Params{
		Quantity:   cfg.Plan.Quantity,
		Steps:      cfg.Plan.Steps,
		StartPrice: cfg.Plan.StartPrice,
		EndPrice:   cfg.Plan.EndPrice,
	}, strat, pos)
	if err != nil {
		panic(err)
	}

	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := plan.WriteScheduleCSV(*outPath, res.Schedule); err != nil {
		panic(err)
	}

	fmt.Printf("Wrote %d rows to %s\n", len(res.Schedule), *outPath)
	fmt.Printf("Total proceeds=$%.2f  Avg sale price=$%.2f\n", res.TotalProceeds, res.AvgSalePrice)
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	dataPaths := fs.String("data", "sample_prices.json", "Comma-separated JSON paths or a directory")
	quantity := fs.Float64("quantity", 1.0, "Position quantity used for the ceiling score")
	_ = fs.Parse(args)

	paths := splitPaths(*dataPaths)
	bySymbol := map[string][]model.PriceTick{}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			panic(err)
		}
		if info.IsDir() {
			entries, err := os.ReadDir(p)
			if err != nil {
				panic(err)
			}
			for _, e := range entries {
				if e.IsDir() {
					continue
				}
				if !strings.HasSuffix(e.Name(), ".json") {
					continue
				}
				resp, err := data.LoadSpotPriceJSON(filepath.Join(p, e.Name()))
				if err != nil {
					panic(err)
				}
				mergeBySymbol(bySymbol, data.GroupBySymbol(resp))
			}
		} else {
			resp, err := data.LoadSpotPriceJSON(p)
			if err != nil {
				panic(err)
			}
			mergeBySymbol(bySymbol, data.GroupBySymbol(resp))
		}
	}

	ranked := analysis.RankByCeiling(bySymbol, *quantity)
	fmt.Printf("%-4s %-12s %-10s %-8s %-10s %-14s %-12s\n", "rank", "symbol", "market", "count", "p95-p05", "min/max", "ceiling$")
	for i, r := range ranked {
		fmt.Printf(
			"%-4d %-12s %-10s %-8d %-10.2f %-6.1f/%-6.1f %-12.2f\n",
			i+1,
			r.Symbol,
			r.Market,
			r.Count,
			r.SpreadP95P05,
			r.MinPrice,
			r.MaxPrice,
			r.CeilingProceeds,
		)
	}
}

func splitPaths(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func mergeBySymbol(dst, src map[string][]model.PriceTick) {
	for k, v := range src {
		dst[k] = append(dst[k], v...)
	}
}
