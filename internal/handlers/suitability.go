package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cropyield/advisor-service/internal/suitability"
)

// SuitabilityRequest represents a crop suitability check request.
type SuitabilityRequest struct {
	CropType string `json:"cropType" binding:"required"`
	Location string `json:"location" binding:"required"`
}

// SuitabilityResponse represents the suitability verdict.
type SuitabilityResponse struct {
	Suitable          bool     `json:"suitable"`
	Message           string   `json:"message"`
	Reason            string   `json:"reason,omitempty"`
	Alternatives      []string `json:"alternatives,omitempty"`
	OptimalConditions string   `json:"optimalConditions,omitempty"`
}

// CheckSuitability handles crop suitability checks
// POST /internal/suitability/check
func CheckSuitability(c *gin.Context) {
	var req SuitabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	verdict := suitability.Check(req.CropType, req.Location)

	c.JSON(http.StatusOK, toSuitabilityResponse(verdict))
}

func toSuitabilityResponse(v suitability.Verdict) *SuitabilityResponse {
	return &SuitabilityResponse{
		Suitable:          v.Suitable,
		Message:           v.Message,
		Reason:            v.Reason,
		Alternatives:      v.Alternatives,
		OptimalConditions: v.OptimalConditions,
	}
}
