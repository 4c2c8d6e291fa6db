package handlers

import (
	"log"
	"net/http"

	"scaleout-planner/internal/api/models"

	"github.com/gin-gonic/gin"
)

// StrategyHandler handles strategy-related requests
type StrategyHandler struct{}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

// ListStrategies handles GET /api/v1/strategies
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	strategies := []models.StrategyInfo{
		{
			Name:        "linear",
			Description: "Equal allocation. Sells quantity/steps at every step regardless of price.",
			Parameters:  []models.ParameterInfo{},
		},
		{
			Name:        "exponential",
			Description: "Back-loaded allocation. Weights grow exponentially across the ladder, so most of the quantity is sold at the highest prices. Best paired with an ascending price range.",
			Parameters:  []models.ParameterInfo{},
		},
		{
			Name:        "logarithmic",
			Description: "Front-loaded allocation. The first steps carry the largest shares, tapering off logarithmically. Locks in proceeds early while keeping some exposure to the top of the range.",
			Parameters:  []models.ParameterInfo{},
		},
	}

	log.Printf("StrategyHandler: Returning %d strategies", len(strategies))
	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}
