package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cropyield/advisor-service/internal/agronomy"
)

// YieldRequest represents a yield estimation request. A positive Investment
// additionally produces a profit estimate.
type YieldRequest struct {
	CropType      string  `json:"cropType" binding:"required"`
	Location      string  `json:"location"`
	FarmSizeAcres float64 `json:"farmSizeAcres" binding:"required,gt=0"`
	Investment    float64 `json:"investment,omitempty"`
}

// YieldEstimate represents the estimated harvest.
type YieldEstimate struct {
	Amount         float64 `json:"amount"`
	Unit           string  `json:"unit"`
	ConfidenceNote string  `json:"confidenceNote,omitempty"`
}

// ProfitEstimate represents the estimated economics for the investment.
type ProfitEstimate struct {
	Revenue float64  `json:"revenue"`
	Profit  float64  `json:"profit"`
	ROI     float64  `json:"roi"`
	Risks   []string `json:"risks,omitempty"`
}

// YieldResponse represents the yield estimation result.
type YieldResponse struct {
	Yield  YieldEstimate   `json:"yield"`
	Profit *ProfitEstimate `json:"profit,omitempty"`
}

// EstimateYield handles yield and profit estimation
// POST /internal/yield/estimate
func EstimateYield(c *gin.Context) {
	var req YieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	yield, err := agronomy.EstimateYield(req.CropType, req.FarmSizeAcres, req.Location)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response := YieldResponse{
		Yield: YieldEstimate{
			Amount:         yield.Amount,
			Unit:           yield.Unit,
			ConfidenceNote: yield.ConfidenceNote,
		},
	}

	if req.Investment > 0 {
		profit, err := agronomy.EstimateProfit(req.CropType, req.Investment, yield, req.Location)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		response.Profit = &ProfitEstimate{
			Revenue: profit.Revenue,
			Profit:  profit.Profit,
			ROI:     profit.ROI,
			Risks:   profit.Risks,
		}
	}

	c.JSON(http.StatusOK, response)
}
