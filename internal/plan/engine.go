package plan

import (
	"fmt"

	"scaleout-planner/internal/model"
	"scaleout-planner/internal/strategy"
)

// Params are the inputs to a scale-out plan: sell Quantity across Steps
// sale events at prices evenly spaced over [StartPrice, EndPrice].
type Params struct {
	Quantity   float64
	Steps      int
	StartPrice float64
	EndPrice   float64
}

func (p Params) validate() error {
	if p.Steps < 1 {
		return fmt.Errorf("steps must be >= 1, got %d", p.Steps)
	}
	if p.Quantity <= 0 {
		return fmt.Errorf("quantity must be > 0, got %g", p.Quantity)
	}
	if p.StartPrice <= 0 || p.EndPrice <= 0 {
		return fmt.Errorf("start and end prices must be > 0, got %g and %g", p.StartPrice, p.EndPrice)
	}
	return nil
}

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run computes the sale schedule for the given params and strategy.
// Each row satisfies Proceeds = AmountToSell * Price exactly, and the
// amounts sum to Quantity up to floating-point rounding.
func (e *Engine) Run(p Params, strat strategy.Strategy) (*Result, error) {
	if strat == nil {
		return nil, fmt.Errorf("strategy is nil")
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	prices := Linspace(p.StartPrice, p.EndPrice, p.Steps)
	amounts, err := strategy.Allocate(strat, p.Quantity, p.Steps)
	if err != nil {
		return nil, err
	}

	rows := make([]ScheduleRow, 0, p.Steps)
	cumSold := 0.0
	cumProceeds := 0.0

	for i, amount := range amounts {
		proceeds := amount * prices[i]
		cumSold += amount
		cumProceeds += proceeds

		rows = append(rows, ScheduleRow{
			Step: i,

			Price: prices[i],

			Action: model.ActionFromAmount(amount),

			RequestedAmount: amount,
			AmountToSell:    amount,

			Proceeds: proceeds,

			CumSold:     cumSold,
			CumProceeds: cumProceeds,

			RemainingAfter: p.Quantity - cumSold,
		})
	}

	return &Result{
		Schedule:      rows,
		TotalQuantity: cumSold,
		TotalProceeds: cumProceeds,
		AvgSalePrice:  avgPrice(cumProceeds, cumSold),
	}, nil
}

// RunPosition runs the ladder against a mutable position, clipping each
// requested amount at the remaining quantity and the position's minimum
// lot size. Proceeds are net of the position's fee rate.
func (e *Engine) RunPosition(p Params, strat strategy.Strategy, pos *model.Position) (*Result, error) {
	if pos == nil {
		return nil, fmt.Errorf("position is nil")
	}
	if strat == nil {
		return nil, fmt.Errorf("strategy is nil")
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	prices := Linspace(p.StartPrice, p.EndPrice, p.Steps)
	amounts, err := strategy.Allocate(strat, p.Quantity, p.Steps)
	if err != nil {
		return nil, err
	}

	rows := make([]ScheduleRow, 0, p.Steps)
	cumSold := 0.0
	cumProceeds := 0.0

	for i, requested := range amounts {
		res, err := pos.ApplySale(prices[i], requested)
		if err != nil {
			return nil, fmt.Errorf("step %d apply sale: %w", i, err)
		}
		cumSold += res.AmountSold
		cumProceeds += res.NetProceeds

		rows = append(rows, ScheduleRow{
			Step: i,

			Price: prices[i],

			Action: model.ActionFromAmount(res.AmountSold),

			RequestedAmount: requested,
			AmountToSell:    res.AmountSold,

			Proceeds: res.NetProceeds,

			CumSold:     cumSold,
			CumProceeds: cumProceeds,

			RemainingAfter: res.RemainingAfter,
		})
	}

	return &Result{
		Schedule:      rows,
		TotalQuantity: cumSold,
		TotalProceeds: cumProceeds,
		AvgSalePrice:  avgPrice(cumProceeds, cumSold),
	}, nil
}

func avgPrice(proceeds, sold float64) float64 {
	if sold <= 0 {
		return 0
	}
	return proceeds / sold
}
