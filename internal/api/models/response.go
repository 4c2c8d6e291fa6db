package models

// PlanResponse represents the response from a plan computation
type PlanResponse struct {
	Status   string        `json:"status"`
	Summary  PlanSummary   `json:"summary"`
	Schedule []ScheduleRow `json:"schedule,omitempty"`
}

// PlanSummary contains aggregated plan results
type PlanSummary struct {
	Strategy          string     `json:"strategy"`
	Steps             int        `json:"steps"`
	PriceRange        PriceRange `json:"price_range"`
	TotalQuantity     float64    `json:"total_quantity"`
	TotalProceeds     float64    `json:"total_proceeds"`
	AvgSalePrice      float64    `json:"avg_sale_price"`
	RemainingQuantity float64    `json:"remaining_quantity"`
}

// PriceRange represents the ladder endpoints
type PriceRange struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// ScheduleRow represents one step in the sale schedule
type ScheduleRow struct {
	Step            int     `json:"step"`
	Price           float64 `json:"price"`
	Action          string  `json:"action"` // "SELL", "HOLD"
	RequestedAmount float64 `json:"requested_amount"`
	AmountToSell    float64 `json:"amount_to_sell"`
	Proceeds        float64 `json:"proceeds"`
	CumSold         float64 `json:"cum_sold"`
	CumProceeds     float64 `json:"cum_proceeds"`
	RemainingAfter  float64 `json:"remaining_after"`
}

// ComparePlanResponse represents the response from a comparison
type ComparePlanResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation
type ComparisonResult struct {
	Name    string      `json:"name"`
	Summary PlanSummary `json:"summary"`
}

// RankResponse represents the response from ranking symbols
type RankResponse struct {
	Rankings []Ranking `json:"rankings"`
}

// Ranking represents one ranked symbol
type Ranking struct {
	Rank            int     `json:"rank"`
	Symbol          string  `json:"symbol"`
	Market          string  `json:"market"`
	Count           int     `json:"count"`
	SpreadP95P05    float64 `json:"spread_p95_p05"`
	MinPrice        float64 `json:"min_price"`
	MaxPrice        float64 `json:"max_price"`
	CeilingProceeds float64 `json:"ceiling_proceeds"`
}

// PresetInfo represents information about a position preset
type PresetInfo struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	File  string      `json:"file"`
	Specs PresetSpecs `json:"specs"`
}

// PresetSpecs contains position specifications
type PresetSpecs struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
}

// StrategyInfo represents information about a strategy
type StrategyInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a strategy parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "string"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// MarketInfo represents information about a price API market
type MarketInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Resolution string `json:"resolution"`
}

// SymbolInfo represents information about a symbol
type SymbolInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
