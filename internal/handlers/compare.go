package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cropyield/advisor-service/internal/catalog"
	"github.com/cropyield/advisor-service/internal/engine"
)

// ============================================================================
// Market Price Comparison Endpoints
// ============================================================================

// MarketQuoteRequest represents one candidate market in a comparison request.
// TransportCost and NetPrice are derived server-side; callers cannot supply
// them.
type MarketQuoteRequest struct {
	MarketName   string  `json:"marketName" binding:"required"`
	PricePerUnit float64 `json:"pricePerUnit"`
	DistanceKm   float64 `json:"distanceKm"`
}

// CompareRequest represents the market comparison request. MarketPrices may
// be omitted to compare against the configured market dataset instead.
type CompareRequest struct {
	CropType      string                `json:"cropType" binding:"required"`
	Location      string                `json:"location"`
	ExpectedYield float64               `json:"expectedYield"`
	YieldUnit     string                `json:"yieldUnit,omitempty"`
	MarketPrices  []*MarketQuoteRequest `json:"marketPrices,omitempty"`
}

// RankedMarket represents one market in the ranked comparison output.
type RankedMarket struct {
	MarketName    string  `json:"marketName"`
	PricePerUnit  float64 `json:"pricePerUnit"`
	DistanceKm    float64 `json:"distanceKm"`
	TransportCost float64 `json:"transportCost"`
	NetPrice      float64 `json:"netPrice"`
}

// RevenuePotential contains aggregate revenue figures for the comparison.
type RevenuePotential struct {
	BestMarket    float64 `json:"bestMarket"`
	AverageMarket float64 `json:"averageMarket"`
}

// CompareResponse represents the full comparison result.
type CompareResponse struct {
	RankedMarkets    []*RankedMarket  `json:"rankedMarkets"`
	BestMarket       *RankedMarket    `json:"bestMarket"`
	RevenuePotential RevenuePotential `json:"revenuePotential"`
	Strategy         string           `json:"strategy"`
	Timing           string           `json:"timing"`
	RiskFactors      []string         `json:"riskFactors"`
}

// Compare handles market price comparison
// POST /internal/market/compare
func Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quotes, ok := resolveQuotes(c, &req)
	if !ok {
		return
	}

	result, err := comparisonEngine.Compare(c.Request.Context(), &engine.ComparisonRequest{
		CropType:      req.CropType,
		Location:      req.Location,
		ExpectedYield: req.ExpectedYield,
		YieldUnit:     req.YieldUnit,
		Quotes:        quotes,
	})
	if err != nil {
		writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCompareResponse(result))
}

// resolveQuotes picks the caller's quotes when supplied, otherwise the
// configured dataset. Writes the error response itself on failure.
func resolveQuotes(c *gin.Context, req *CompareRequest) ([]engine.MarketQuote, bool) {
	if len(req.MarketPrices) > 0 {
		quotes := make([]engine.MarketQuote, len(req.MarketPrices))
		for i, q := range req.MarketPrices {
			quotes[i] = engine.MarketQuote{
				MarketName:   q.MarketName,
				PricePerUnit: q.PricePerUnit,
				DistanceKm:   q.DistanceKm,
			}
		}
		return quotes, true
	}

	if catalogSource == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "market dataset not configured"})
		return nil, false
	}

	quotes, err := catalogSource.QuotesFor(c.Request.Context(), req.CropType, req.Location)
	if err != nil {
		var noData catalog.ErrNoMarketData
		if errors.As(err, &noData) {
			c.JSON(http.StatusNotFound, gin.H{"error": noData.Error(), "cropType": req.CropType})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return quotes, true
}

func toRankedMarket(q engine.MarketQuote) *RankedMarket {
	return &RankedMarket{
		MarketName:    q.MarketName,
		PricePerUnit:  q.PricePerUnit,
		DistanceKm:    q.DistanceKm,
		TransportCost: q.TransportCost,
		NetPrice:      q.NetPrice,
	}
}

func toCompareResponse(result *engine.ComparisonResult) *CompareResponse {
	ranked := make([]*RankedMarket, len(result.RankedMarkets))
	for i, q := range result.RankedMarkets {
		ranked[i] = toRankedMarket(q)
	}

	return &CompareResponse{
		RankedMarkets: ranked,
		BestMarket:    toRankedMarket(result.BestMarket),
		RevenuePotential: RevenuePotential{
			BestMarket:    result.RevenuePotential.BestMarket,
			AverageMarket: result.RevenuePotential.AverageMarket,
		},
		Strategy:    result.StrategyText,
		Timing:      result.TimingText,
		RiskFactors: result.RiskFactors,
	}
}
