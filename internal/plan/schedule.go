package plan

import "scaleout-planner/internal/model"

// ScheduleRow is one step of per-ladder output.
// This is the primary artifact for "what happens" in a scale-out plan.
type ScheduleRow struct {
	Step int

	Price float64

	Action model.Action

	RequestedAmount float64
	AmountToSell    float64

	Proceeds float64

	CumSold     float64
	CumProceeds float64

	RemainingAfter float64
}

type Result struct {
	Schedule      []ScheduleRow
	TotalQuantity float64
	TotalProceeds float64
	AvgSalePrice  float64
}
