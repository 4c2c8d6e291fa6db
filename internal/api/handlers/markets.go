package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"scaleout-planner/internal/api/models"
	"scaleout-planner/internal/data"

	"github.com/gin-gonic/gin"
)

// ListMarkets handles GET /api/v1/markets
func ListMarkets(c *gin.Context) {
	// For now, return a hardcoded list of supported markets
	// In the future, this could query the price API for available markets
	markets := []models.MarketInfo{
		{
			ID:         "spot",
			Name:       "Spot",
			Resolution: "1min",
		},
		// Add more markets as needed
	}

	c.JSON(http.StatusOK, gin.H{"markets": markets})
}

// ListSymbols handles GET /api/v1/symbols
func ListSymbols(c *gin.Context) {
	market := c.Query("market")
	if market == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "MISSING_PARAM",
				Message: "market query parameter is required",
			},
		})
		return
	}

	// Load symbols from static file
	symbolList, err := loadSymbolsForMarket(market)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SYMBOLS_LOAD_ERROR",
				Message: fmt.Sprintf("Failed to load symbols: %v", err),
			},
		})
		return
	}

	// Convert to response format
	symbols := make([]models.SymbolInfo, len(symbolList.Symbols))
	for i, s := range symbolList.Symbols {
		symbols[i] = models.SymbolInfo{
			ID:       s.ID,
			Name:     s.Name,
			Exchange: s.Exchange,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"symbols":    symbols,
		"updated_at": symbolList.UpdatedAt,
		"count":      len(symbols),
	})
}

// loadSymbolsForMarket loads symbols from the static file
func loadSymbolsForMarket(market string) (*data.SymbolList, error) {
	filePath := data.GetDefaultSymbolsPath()

	symbolList, err := data.LoadSymbols(filePath)
	if err != nil {
		// If file doesn't exist, return empty list (not an error)
		if errors.Is(err, os.ErrNotExist) {
			return &data.SymbolList{
				Market:  market,
				Symbols: []data.Symbol{},
			}, nil
		}
		return nil, err
	}

	// Filter by market if the file covers a different one
	if market != "" && symbolList.Market != market {
		filtered := []data.Symbol{}
		for _, s := range symbolList.Symbols {
			if s.Market == market || s.Market == "" {
				filtered = append(filtered, s)
			}
		}
		symbolList.Symbols = filtered
	}

	return symbolList, nil
}
