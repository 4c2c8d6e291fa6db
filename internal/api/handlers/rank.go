package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"scaleout-planner/internal/analysis"
	"scaleout-planner/internal/api/models"
	"scaleout-planner/internal/data"
	"scaleout-planner/internal/model"

	"github.com/gin-gonic/gin"
)

// RankHandler handles ranking-related requests
type RankHandler struct{}

// NewRankHandler creates a new rank handler
func NewRankHandler() *RankHandler {
	return &RankHandler{}
}

// RankSymbols handles GET /api/v1/rank
func (h *RankHandler) RankSymbols(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	// Validate API key
	if err := validateAPIKeyForRank(req.APIKey); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_API_KEY",
				Message: err.Error(),
			},
		})
		return
	}

	// Create client with API key from request
	client := data.NewPriceClient(req.APIKey, "")

	// Parse dates
	startTime, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_DATE",
				Message: "start_date must be in YYYY-MM-DD format",
			},
		})
		return
	}

	endTime, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_DATE",
				Message: "end_date must be in YYYY-MM-DD format",
			},
		})
		return
	}

	symbols := strings.Split(req.Symbols, ",")
	for i := range symbols {
		symbols[i] = strings.TrimSpace(symbols[i])
	}

	// Fetch data for each symbol
	bySymbol := make(map[string][]model.PriceTick)

	for _, symbol := range symbols {
		if symbol == "" {
			continue
		}
		resp, err := client.QuerySymbol(data.QuerySymbolParams{
			Market:    req.Market,
			Symbol:    symbol,
			StartTime: startTime,
			EndTime:   endTime,
			Download:  true,
		})
		if err != nil {
			if apiErr, ok := err.(*data.PriceAPIError); ok {
				// Auth and rate-limit problems affect every symbol; fail fast.
				if apiErr.StatusCode == http.StatusForbidden ||
					apiErr.StatusCode == http.StatusUnauthorized ||
					apiErr.StatusCode == http.StatusTooManyRequests {
					statusCode := http.StatusUnauthorized
					if apiErr.StatusCode == http.StatusTooManyRequests {
						statusCode = http.StatusTooManyRequests
					}
					c.JSON(statusCode, models.ErrorResponse{
						Error: models.ErrorDetail{
							Code:    apiErr.Code,
							Message: fmt.Sprintf("Error querying symbol %s: %s", symbol, apiErr.Message),
							Details: map[string]interface{}{
								"status_code": apiErr.StatusCode,
								"retry_after": apiErr.RetryAfter,
								"symbol":      symbol,
							},
						},
					})
					return
				}
			}
			// For other errors, skip this symbol
			continue
		}
		bySymbol[symbol] = resp.Data
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1.0
	}

	// Rank by ceiling proceeds
	ranked := analysis.RankByCeiling(bySymbol, quantity)

	// Apply limit
	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > len(ranked) {
		limit = len(ranked)
	}
	ranked = ranked[:limit]

	// Convert to response format
	rankings := make([]models.Ranking, len(ranked))
	for i, r := range ranked {
		rankings[i] = models.Ranking{
			Rank:            i + 1,
			Symbol:          r.Symbol,
			Market:          r.Market,
			Count:           r.Count,
			SpreadP95P05:    r.SpreadP95P05,
			MinPrice:        r.MinPrice,
			MaxPrice:        r.MaxPrice,
			CeilingProceeds: r.CeilingProceeds,
		}
	}

	c.JSON(http.StatusOK, models.RankResponse{Rankings: rankings})
}

// validateAPIKeyForRank performs basic validation on the API key
func validateAPIKeyForRank(apiKey string) error {
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
