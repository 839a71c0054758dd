package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Catalog   string `json:"catalog"`
	Narrative string `json:"narrative"`
}

// HealthCheck handles the health check endpoint
// GET /health
func HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "ok",
		Narrative: "disabled",
	}
	if advisor != nil && advisor.NarrativeAvailable() {
		response.Narrative = "configured"
	}

	switch {
	case catalogStatus != nil:
		if err := catalogStatus.Status(c.Request.Context()); err != nil {
			response.Catalog = "disconnected"
			c.JSON(http.StatusServiceUnavailable, response)
			return
		}
		response.Catalog = "connected"
	case catalogSource != nil:
		response.Catalog = "in-memory"
	default:
		response.Catalog = "not configured"
	}

	c.JSON(http.StatusOK, response)
}
