package model

// PlanInputs represents a canonical "inputs to the system" object.
//
// sample_prices.json only includes market data; this struct is what the
// planner consumes once market data, the position and the strategy settings
// are combined.
type PlanInputs struct {
	MarketData SpotPriceResponse
	Position   PositionParams
	// Strategy config comes from internal/config (name + params).
}
