package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cropyield/advisor-service/internal/crops"
	"github.com/cropyield/advisor-service/internal/suitability"
)

// CropInfo represents one supported crop.
type CropInfo struct {
	Name  string   `json:"name"`
	Zones []string `json:"zones,omitempty"`
}

// ListCrops handles the supported crop listing
// GET /internal/crops
func ListCrops(c *gin.Context) {
	all := crops.All()
	response := make([]*CropInfo, len(all))
	for i, crop := range all {
		response[i] = &CropInfo{
			Name:  crop.DisplayName(),
			Zones: suitability.ZonesFor(crop),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"crops": response,
		"total": len(response),
	})
}
