package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"scaleout-planner/internal/analysis"
	"scaleout-planner/internal/api/models"
	"scaleout-planner/internal/config"
	"scaleout-planner/internal/data"
	"scaleout-planner/internal/model"
	"scaleout-planner/internal/plan"
	"scaleout-planner/internal/strategy"

	"github.com/gin-gonic/gin"
)

// PlanHandler handles plan-related requests
type PlanHandler struct{}

// NewPlanHandler creates a new plan handler
func NewPlanHandler() *PlanHandler {
	return &PlanHandler{}
}

// RunPlan handles POST /api/v1/plan
func (h *PlanHandler) RunPlan(c *gin.Context) {
	var req models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	// Build config from request
	cfg, err := h.buildConfig(req.Config)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
			},
		})
		return
	}

	// Resolve the ladder price range (inline or derived from market data)
	if ok := h.resolveRange(c, req.APIKey, req.DataSource, cfg); !ok {
		return
	}

	if err := cfg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
			},
		})
		return
	}

	// Create position
	pos, err := model.NewPosition(cfg.Position.ToModelParams())
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_POSITION",
				Message: err.Error(),
			},
		})
		return
	}

	// Build strategy
	strat, err := strategy.ForName(cfg.Strategy.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_STRATEGY",
				Message: err.Error(),
			},
		})
		return
	}

	// Run plan
	engine := plan.New()
	result, err := engine.RunPosition(planParams(cfg), strat, pos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "PLAN_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	// Build response
	response := h.buildResponse(cfg, result, req.Options.IncludeSchedule)
	c.JSON(http.StatusOK, response)
}

// ComparePlans handles POST /api/v1/plan/compare
func (h *PlanHandler) ComparePlans(c *gin.Context) {
	var req models.ComparePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	// Resolve the range once against the base config; variations share it
	baseCfg, err := h.buildConfig(req.BaseConfig)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
			},
		})
		return
	}
	if ok := h.resolveRange(c, req.APIKey, req.DataSource, baseCfg); !ok {
		return
	}

	// Run each variation
	comparison := make([]models.ComparisonResult, 0, len(req.Variations))
	engine := plan.New()

	for _, variation := range req.Variations {
		// Merge base config with variation
		merged := h.mergeConfig(req.BaseConfig, variation.Config)

		cfg, err := h.buildConfig(merged)
		if err != nil {
			continue // Skip invalid configs
		}
		cfg.Plan.StartPrice = baseCfg.Plan.StartPrice
		cfg.Plan.EndPrice = baseCfg.Plan.EndPrice
		if err := cfg.Validate(); err != nil {
			continue
		}

		pos, err := model.NewPosition(cfg.Position.ToModelParams())
		if err != nil {
			continue
		}

		strat, err := strategy.ForName(cfg.Strategy.Name)
		if err != nil {
			continue
		}

		result, err := engine.RunPosition(planParams(cfg), strat, pos)
		if err != nil {
			continue // Skip failed plans
		}

		comparison = append(comparison, models.ComparisonResult{
			Name:    variation.Name,
			Summary: h.buildSummary(cfg, result),
		})
	}

	c.JSON(http.StatusOK, models.ComparePlanResponse{
		Comparison: comparison,
	})
}

// Helper methods

// resolveRange fills cfg.Plan.StartPrice/EndPrice. For "inline" sources the
// values already present in the config are kept; for "market" sources the
// range is derived from tick-history percentiles. Writes an error response
// and returns false on failure.
func (h *PlanHandler) resolveRange(c *gin.Context, apiKey string, ds models.DataSourceConfig, cfg *config.Config) bool {
	switch ds.Type {
	case "inline":
		return true
	case "market":
		if err := validateAPIKey(apiKey); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "INVALID_API_KEY",
					Message: err.Error(),
				},
			})
			return false
		}

		client := data.NewPriceClient(apiKey, "")
		resp, err := client.QuerySymbolByString(ds.Market, ds.Symbol, ds.StartDate, ds.EndDate)
		if err != nil {
			writePriceAPIError(c, err)
			return false
		}

		start, end, err := analysis.AutoRange(resp.Data, 0.05, 0.95)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "RANGE_ERROR",
					Message: err.Error(),
				},
			})
			return false
		}
		cfg.Plan.StartPrice = start
		cfg.Plan.EndPrice = end
		return true
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_DATA_SOURCE",
				Message: fmt.Sprintf("unsupported data source type: %s", ds.Type),
			},
		})
		return false
	}
}

// writePriceAPIError maps price API failures onto HTTP responses
func writePriceAPIError(c *gin.Context, err error) {
	if apiErr, ok := err.(*data.PriceAPIError); ok {
		statusCode := http.StatusBadRequest
		if apiErr.StatusCode == http.StatusForbidden || apiErr.StatusCode == http.StatusUnauthorized {
			statusCode = http.StatusUnauthorized
		} else if apiErr.StatusCode == http.StatusTooManyRequests {
			statusCode = http.StatusTooManyRequests
		}
		c.JSON(statusCode, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    apiErr.Code,
				Message: apiErr.Message,
				Details: map[string]interface{}{
					"status_code": apiErr.StatusCode,
					"retry_after": apiErr.RetryAfter,
				},
			},
		})
		return
	}
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "DATA_FETCH_ERROR",
			Message: err.Error(),
		},
	})
}

// validateAPIKey performs basic validation on the API key
func validateAPIKey(apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("API key is required")
	}
	if len(apiKey) < 10 {
		return fmt.Errorf("API key appears to be invalid (too short)")
	}
	if len(strings.TrimSpace(apiKey)) == 0 {
		return fmt.Errorf("API key cannot be empty or whitespace")
	}
	return nil
}

func (h *PlanHandler) buildConfig(req models.PlanConfig) (*config.Config, error) {
	cfg := &config.Config{
		PositionFile: req.PositionFile,
		Position: config.PositionConfig{
			Name:       req.Position.Name,
			Symbol:     req.Position.Symbol,
			Quantity:   req.Position.Quantity,
			MinLotSize: req.Position.MinLotSize,
			FeeRate:    req.Position.FeeRate,
		},
		Plan: config.PlanConfig{
			Quantity:   req.Plan.Quantity,
			Steps:      req.Plan.Steps,
			StartPrice: req.Plan.StartPrice,
			EndPrice:   req.Plan.EndPrice,
		},
		Strategy: config.StrategyConfig{
			Name:   req.Strategy.Name,
			Params: req.Strategy.Params,
		},
	}

	// If position_file is set, load it and merge request overrides onto it
	if cfg.PositionFile != "" {
		// position_file should be just the filename (e.g., "btc_main")
		// Files are always looked up in examples/positions/
		presetDir := os.Getenv("PRESET_DIR")
		if presetDir == "" {
			wd, err := os.Getwd()
			if err == nil {
				presetDir = filepath.Join(wd, "examples", "positions")
			} else {
				presetDir = "./examples/positions"
			}
		}
		positionPath := filepath.Join(presetDir, cfg.PositionFile+".yaml")

		loaded, err := config.LoadUnchecked(positionPath)
		if err == nil {
			// Merge: position file is base, request config is override
			cfg.Position = config.MergePosition(loaded.Position, cfg.Position)
		} else {
			log.Printf("PlanHandler: Failed to load position file %s: %v", positionPath, err)
		}
	}

	// Apply default plan quantity if not set (default to the position quantity)
	if cfg.Plan.Quantity == 0 {
		cfg.Plan.Quantity = cfg.Position.Quantity
	}

	return cfg, nil
}

func (h *PlanHandler) mergeConfig(base, override models.PlanConfig) models.PlanConfig {
	merged := base
	if override.PositionFile != "" {
		merged.PositionFile = override.PositionFile
	}
	if override.Position.Quantity != 0 {
		merged.Position.Quantity = override.Position.Quantity
	}
	if override.Position.FeeRate != 0 {
		merged.Position.FeeRate = override.Position.FeeRate
	}
	if override.Plan.Quantity != 0 {
		merged.Plan.Quantity = override.Plan.Quantity
	}
	if override.Plan.Steps != 0 {
		merged.Plan.Steps = override.Plan.Steps
	}
	if override.Strategy.Name != "" {
		merged.Strategy = override.Strategy
	}
	return merged
}

func planParams(cfg *config.Config) plan.Params {
	return plan.Params{
		Quantity:   cfg.Plan.Quantity,
		Steps:      cfg.Plan.Steps,
		StartPrice: cfg.Plan.StartPrice,
		EndPrice:   cfg.Plan.EndPrice,
	}
}

func (h *PlanHandler) buildResponse(cfg *config.Config, result *plan.Result, includeSchedule bool) models.PlanResponse {
	response := models.PlanResponse{
		Status:  "completed",
		Summary: h.buildSummary(cfg, result),
	}

	if includeSchedule {
		response.Schedule = h.convertSchedule(result.Schedule)
	}

	return response
}

func (h *PlanHandler) buildSummary(cfg *config.Config, result *plan.Result) models.PlanSummary {
	remaining := 0.0
	if n := len(result.Schedule); n > 0 {
		remaining = result.Schedule[n-1].RemainingAfter
	}
	return models.PlanSummary{
		Strategy: cfg.Strategy.Name,
		Steps:    cfg.Plan.Steps,
		PriceRange: models.PriceRange{
			Start: cfg.Plan.StartPrice,
			End:   cfg.Plan.EndPrice,
		},
		TotalQuantity:     result.TotalQuantity,
		TotalProceeds:     result.TotalProceeds,
		AvgSalePrice:      result.AvgSalePrice,
		RemainingQuantity: remaining,
	}
}

func (h *PlanHandler) convertSchedule(rows []plan.ScheduleRow) []models.ScheduleRow {
	result := make([]models.ScheduleRow, len(rows))
	for i, row := range rows {
		result[i] = models.ScheduleRow{
			Step:            row.Step,
			Price:           row.Price,
			Action:          string(row.Action),
			RequestedAmount: row.RequestedAmount,
			AmountToSell:    row.AmountToSell,
			Proceeds:        row.Proceeds,
			CumSold:         row.CumSold,
			CumProceeds:     row.CumProceeds,
			RemainingAfter:  row.RemainingAfter,
		}
	}
	return result
}
