package models

// PlanRequest represents the request body for computing a scale-out plan
type PlanRequest struct {
	APIKey     string           `json:"api_key,omitempty"` // Price API key (required for market data sources)
	DataSource DataSourceConfig `json:"data_source" binding:"required"`
	Config     PlanConfig       `json:"config" binding:"required"`
	Options    PlanOptions      `json:"options,omitempty"`
}

// DataSourceConfig defines where the ladder price range comes from
type DataSourceConfig struct {
	// Type is "inline" (range supplied in config.plan) or "market"
	// (range derived from recent tick history percentiles).
	Type      string `json:"type" binding:"required"`
	Market    string `json:"market,omitempty"`     // e.g. "spot" (market sources)
	Symbol    string `json:"symbol,omitempty"`     // e.g. "BTC-USD" (market sources)
	StartDate string `json:"start_date,omitempty"` // YYYY-MM-DD (market sources)
	EndDate   string `json:"end_date,omitempty"`   // YYYY-MM-DD (market sources)
}

// PlanConfig contains position and strategy configuration
type PlanConfig struct {
	PositionFile string         `json:"position_file,omitempty"`
	Position     PositionConfig `json:"position,omitempty"`
	Plan         LadderConfig   `json:"plan,omitempty"`
	Strategy     StrategyConfig `json:"strategy" binding:"required"`
}

// PositionConfig defines position parameters
type PositionConfig struct {
	Name       string  `json:"name,omitempty"`
	Symbol     string  `json:"symbol,omitempty"`
	Quantity   float64 `json:"quantity"`
	MinLotSize float64 `json:"min_lot_size,omitempty"`
	FeeRate    float64 `json:"fee_rate,omitempty"`
}

// LadderConfig defines the sale ladder
type LadderConfig struct {
	Quantity   float64 `json:"quantity,omitempty"` // defaults to position quantity
	Steps      int     `json:"steps"`
	StartPrice float64 `json:"start_price,omitempty"` // inline sources
	EndPrice   float64 `json:"end_price,omitempty"`   // inline sources
}

// StrategyConfig defines strategy and its parameters
type StrategyConfig struct {
	Name   string                 `json:"name" binding:"required"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// PlanOptions contains optional plan parameters
type PlanOptions struct {
	IncludeSchedule bool `json:"include_schedule,omitempty"` // default: false
}

// ComparePlanRequest represents a request to compare multiple plans
type ComparePlanRequest struct {
	APIKey     string           `json:"api_key,omitempty"`
	DataSource DataSourceConfig `json:"data_source" binding:"required"`
	BaseConfig PlanConfig       `json:"base_config" binding:"required"`
	Variations []PlanVariation  `json:"variations" binding:"required"`
}

// PlanVariation defines a variation to compare
type PlanVariation struct {
	Name   string     `json:"name" binding:"required"`
	Config PlanConfig `json:"config" binding:"required"`
}

// RankRequest represents a request to rank symbols
type RankRequest struct {
	APIKey    string  `form:"api_key" binding:"required"` // Price API key
	Market    string  `form:"market" binding:"required"`
	Symbols   string  `form:"symbols" binding:"required"` // comma-separated
	StartDate string  `form:"start_date" binding:"required"`
	EndDate   string  `form:"end_date" binding:"required"`
	Quantity  float64 `form:"quantity,omitempty"` // default: 1.0
	Limit     int     `form:"limit,omitempty"`    // default: 10
}
