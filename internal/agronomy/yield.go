// Package agronomy provides the yield and profit estimators. Both are pure
// table lookups over enumerated crops with regional modifiers; their outputs
// feed the comparison engine and the narrative generator.
package agronomy

import (
	"fmt"

	"github.com/cropyield/advisor-service/internal/crops"
	"github.com/cropyield/advisor-service/internal/suitability"
)

// YieldEstimate is the expected harvest for a crop on a farm.
type YieldEstimate struct {
	Amount         float64 // In Unit
	Unit           string  // Always quintals for the supported crops
	ConfidenceNote string
}

// baseYieldPerAcre holds typical yields in quintals per acre under average
// management.
var baseYieldPerAcre = map[crops.Crop]float64{
	crops.Rice:      22,
	crops.Wheat:     18,
	crops.Corn:      25,
	crops.Barley:    14,
	crops.Soybeans:  10,
	crops.Cotton:    8,
	crops.Sugarcane: 280,
	crops.Potato:    90,
	crops.Tomato:    100,
	crops.Onion:     80,
	crops.Garlic:    35,
	crops.Chili:     12,
	crops.Turmeric:  25,
	crops.Ginger:    40,
	crops.Tea:       9,
	crops.Coffee:    4,
}

// zoneYieldFactor scales the base yield by how well the zone fits typical
// growing conditions. Unknown regions use 1.0.
var zoneYieldFactor = map[suitability.Zone]float64{
	suitability.ZoneTropical:  1.05,
	suitability.ZoneSubtropic: 1.10,
	suitability.ZoneSemiArid:  0.90,
	suitability.ZoneArid:      0.70,
	suitability.ZoneHighland:  0.95,
}

// EstimateYield estimates the harvest for a crop, farm size, and location.
// Unsupported crops return an error; estimation never guesses a profile.
func EstimateYield(cropName string, farmSizeAcres float64, location string) (YieldEstimate, error) {
	crop, ok := crops.Parse(cropName)
	if !ok {
		return YieldEstimate{}, fmt.Errorf("unsupported crop %q", cropName)
	}
	if farmSizeAcres <= 0 {
		return YieldEstimate{}, fmt.Errorf("farm size must be positive, got %.2f", farmSizeAcres)
	}

	base := baseYieldPerAcre[crop]
	zone := suitability.ZoneFor(location)

	factor := 1.0
	note := "Based on typical regional yields"
	if f, ok := zoneYieldFactor[zone]; ok {
		factor = f
		note = fmt.Sprintf("Adjusted for %s climate", zone)
	} else {
		note = "Region unprofiled; using national averages"
	}

	return YieldEstimate{
		Amount:         base * factor * farmSizeAcres,
		Unit:           "quintals",
		ConfidenceNote: note,
	}, nil
}
