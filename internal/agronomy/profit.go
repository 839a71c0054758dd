package agronomy

import (
	"fmt"

	"github.com/cropyield/advisor-service/internal/crops"
	"github.com/cropyield/advisor-service/internal/suitability"
)

// ProfitEstimate is the expected economics of a season.
type ProfitEstimate struct {
	Revenue float64  // Expected gross revenue
	Profit  float64  // Revenue minus investment; may be negative
	ROI     float64  // Profit as a percentage of investment
	Risks   []string // Ordered risk annotations
}

// farmGatePricePerQuintal holds typical farm-gate prices in currency per
// quintal. These are planning figures, not live quotes; live quotes come
// from the market catalog.
var farmGatePricePerQuintal = map[crops.Crop]float64{
	crops.Rice:      2040,
	crops.Wheat:     2125,
	crops.Corn:      1962,
	crops.Barley:    1735,
	crops.Soybeans:  4300,
	crops.Cotton:    6080,
	crops.Sugarcane: 315,
	crops.Potato:    1200,
	crops.Tomato:    1500,
	crops.Onion:     1400,
	crops.Garlic:    4500,
	crops.Chili:     7000,
	crops.Turmeric:  6500,
	crops.Ginger:    5500,
	crops.Tea:       13500,
	crops.Coffee:    15000,
}

// EstimateProfit derives season economics from an investment and a yield
// estimate. A negative profit is reported as-is, never clamped.
func EstimateProfit(cropName string, investment float64, yield YieldEstimate, location string) (ProfitEstimate, error) {
	crop, ok := crops.Parse(cropName)
	if !ok {
		return ProfitEstimate{}, fmt.Errorf("unsupported crop %q", cropName)
	}
	if investment <= 0 {
		return ProfitEstimate{}, fmt.Errorf("investment must be positive, got %.2f", investment)
	}

	revenue := yield.Amount * farmGatePricePerQuintal[crop]
	profit := revenue - investment

	est := ProfitEstimate{
		Revenue: revenue,
		Profit:  profit,
		ROI:     profit / investment * 100,
	}
	est.Risks = profitRisks(crop, location, est)
	return est, nil
}

func profitRisks(crop crops.Crop, location string, est ProfitEstimate) []string {
	risks := make([]string, 0, 3)

	if est.Profit < 0 {
		risks = append(risks, "Investment exceeds expected revenue at planning prices; reconsider input costs or crop choice.")
	} else if est.ROI < 20 {
		risks = append(risks, "Thin margin: a modest price dip or yield shortfall erases the profit.")
	}

	switch suitability.ZoneFor(location) {
	case suitability.ZoneArid, suitability.ZoneSemiArid:
		risks = append(risks, "Water availability is the dominant yield risk in this region.")
	case suitability.ZoneTropical:
		risks = append(risks, "Monsoon variability and fungal pressure can cut yields sharply.")
	case suitability.ZoneHighland:
		risks = append(risks, "Late frosts and hail are the main hazards at elevation.")
	}

	switch crop {
	case crops.Onion, crops.Tomato, crops.Potato:
		risks = append(risks, "Perishable produce: storage losses mount quickly if sales are delayed.")
	case crops.Cotton, crops.Chili:
		risks = append(risks, "Pest pressure (bollworm/thrips) can require costly additional sprays.")
	}

	if len(risks) == 0 {
		risks = append(risks, "Commodity prices at harvest may differ from planning estimates.")
	}
	return risks
}
