package engine

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() *ComparisonRequest {
	return &ComparisonRequest{
		CropType:      "Wheat",
		Location:      "Delhi, India",
		ExpectedYield: 20,
		YieldUnit:     "quintals",
		Quotes: []MarketQuote{
			{MarketName: "Azadpur Mandi", PricePerUnit: 2000, DistanceKm: 10},
			{MarketName: "Ghazipur Mandi", PricePerUnit: 2100, DistanceKm: 50},
		},
	}
}

// TestWorkedExample verifies the reference scenario: prices 2000/2100 at
// 10/50 km with a 5/km transport rate give net prices 1950/1850.
func TestWorkedExample(t *testing.T) {
	e := NewEngine(DefaultEngineConfig())

	req := validRequest()
	result, err := e.Compare(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Azadpur Mandi", result.BestMarket.MarketName)
	assert.Equal(t, 1950.0, result.BestMarket.NetPrice)
	assert.Equal(t, 50.0, result.BestMarket.TransportCost)

	require.Len(t, result.RankedMarkets, 2)
	assert.Equal(t, 1950.0, result.RankedMarkets[0].NetPrice)
	assert.Equal(t, 1850.0, result.RankedMarkets[1].NetPrice)

	assert.Equal(t, 1950.0*20, result.RevenuePotential.BestMarket)
	assert.Equal(t, (1950.0*20+1850.0*20)/2, result.RevenuePotential.AverageMarket)
}

// TestRankingIsPermutationWithDeterministicTieBreaks verifies that ranking
// preserves all input quotes and breaks net-price ties by distance, then name.
func TestRankingIsPermutationWithDeterministicTieBreaks(t *testing.T) {
	e := NewEngine(DefaultEngineConfig())

	req := &ComparisonRequest{
		CropType:      "Rice",
		Location:      "Patna, India",
		ExpectedYield: 10,
		YieldUnit:     "quintals",
		Quotes: []MarketQuote{
			// B and C tie on net price (1500 - 5*20 = 1400); C is nearer? No:
			// same distance, so the name decides. A wins outright.
			{MarketName: "C Market", PricePerUnit: 1500, DistanceKm: 20},
			{MarketName: "A Market", PricePerUnit: 1600, DistanceKm: 20},
			{MarketName: "B Market", PricePerUnit: 1500, DistanceKm: 20},
			// D ties B/C on net price but sits closer, so it ranks above both.
			{MarketName: "D Market", PricePerUnit: 1450, DistanceKm: 10},
		},
	}

	result, err := e.Compare(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, result.RankedMarkets, 4)

	names := make([]string, len(result.RankedMarkets))
	for i, q := range result.RankedMarkets {
		names[i] = q.MarketName
	}
	assert.Equal(t, []string{"A Market", "D Market", "B Market", "C Market"}, names)

	// Permutation: every input market appears exactly once.
	seen := make(map[string]int)
	for _, q := range result.RankedMarkets {
		seen[q.MarketName]++
	}
	for _, q := range req.Quotes {
		assert.Equal(t, 1, seen[q.MarketName], q.MarketName)
	}
}

// TestNetPriceDerivation verifies net price always equals price minus the
// recomputed transport cost, even when the caller supplies stale values.
func TestNetPriceDerivation(t *testing.T) {
	e := NewEngine(DefaultEngineConfig())

	req := validRequest()
	// Stale caller-supplied derived fields must be ignored.
	req.Quotes[0].TransportCost = 9999
	req.Quotes[0].NetPrice = -12345

	result, err := e.Compare(context.Background(), req)
	require.NoError(t, err)

	for _, q := range result.RankedMarkets {
		assert.Equal(t, q.PricePerUnit-q.TransportCost, q.NetPrice, q.MarketName)
		assert.Equal(t, q.DistanceKm*5.0, q.TransportCost, q.MarketName)
	}
}

// TestBestRevenueAtLeastAverage verifies the aggregate invariant whenever
// more than one distinct net price exists.
func TestBestRevenueAtLeastAverage(t *testing.T) {
	e := NewEngine(DefaultEngineConfig())

	result, err := e.Compare(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Greater(t, result.RevenuePotential.BestMarket, result.RevenuePotential.AverageMarket)
}

// TestIdempotence verifies that comparing the same request twice yields
// identical results.
func TestIdempotence(t *testing.T) {
	e := NewEngine(DefaultEngineConfig())

	first, err := e.Compare(context.Background(), validRequest())
	require.NoError(t, err)

	second, err := e.Compare(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// TestSingleMarket verifies the boundary case where best and average revenue
// coincide.
func TestSingleMarket(t *testing.T) {
	e := NewEngine(DefaultEngineConfig())

	req := validRequest()
	req.Quotes = req.Quotes[:1]

	result, err := e.Compare(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, result.RevenuePotential.BestMarket, result.RevenuePotential.AverageMarket)
	assert.Equal(t, result.BestMarket, result.RankedMarkets[0])
}

// TestAllNegativeNetPricesStillAnswers verifies the adverse case: every
// market loss-making still returns a result with a loss-mitigation strategy
// and a mandatory risk factor, never an error.
func TestAllNegativeNetPricesStillAnswers(t *testing.T) {
	e := NewEngine(DefaultEngineConfig())

	req := &ComparisonRequest{
		CropType:      "Onion",
		Location:      "Nashik, India",
		ExpectedYield: 15,
		YieldUnit:     "quintals",
		Quotes: []MarketQuote{
			{MarketName: "Far Mandi", PricePerUnit: 100, DistanceKm: 200},
			{MarketName: "Farther Mandi", PricePerUnit: 50, DistanceKm: 300},
		},
	}

	result, err := e.Compare(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)

	for _, q := range result.RankedMarkets {
		assert.Negative(t, q.NetPrice, q.MarketName)
	}

	assert.Contains(t, result.StrategyText, "loss-making")
	require.NotEmpty(t, result.RiskFactors)
	assert.Contains(t, result.RiskFactors[0], "loss-making")
}

// TestNegativeNetPriceNotClamped verifies negative net prices are preserved,
// not silently clamped to zero.
func TestNegativeNetPriceNotClamped(t *testing.T) {
	e := NewEngine(DefaultEngineConfig())

	req := validRequest()
	req.Quotes = append(req.Quotes, MarketQuote{MarketName: "Remote Mandi", PricePerUnit: 10, DistanceKm: 100})

	result, err := e.Compare(context.Background(), req)
	require.NoError(t, err)

	last := result.RankedMarkets[len(result.RankedMarkets)-1]
	assert.Equal(t, "Remote Mandi", last.MarketName)
	assert.Equal(t, -490.0, last.NetPrice)
}

// TestMinTransportCostFloor verifies the flat minimum on the cost function.
func TestMinTransportCostFloor(t *testing.T) {
	config := DefaultEngineConfig()
	config.MinTransportCost = 25

	assert.Equal(t, 25.0, config.TransportCost(1))
	assert.Equal(t, 50.0, config.TransportCost(10))
}

// TestRequestValidation verifies the validation error taxonomy.
func TestRequestValidation(t *testing.T) {
	config := DefaultEngineConfig()

	tests := []struct {
		name     string
		mutate   func(*ComparisonRequest)
		errorMsg string
	}{
		{
			name:   "Valid request",
			mutate: func(r *ComparisonRequest) {},
		},
		{
			name:     "Empty crop type",
			mutate:   func(r *ComparisonRequest) { r.CropType = "" },
			errorMsg: "cropType",
		},
		{
			name:     "Empty location",
			mutate:   func(r *ComparisonRequest) { r.Location = "" },
			errorMsg: "location",
		},
		{
			name:     "Zero expected yield",
			mutate:   func(r *ComparisonRequest) { r.ExpectedYield = 0 },
			errorMsg: "expectedYield",
		},
		{
			name:     "Negative expected yield",
			mutate:   func(r *ComparisonRequest) { r.ExpectedYield = -3 },
			errorMsg: "expectedYield",
		},
		{
			name:     "No quotes",
			mutate:   func(r *ComparisonRequest) { r.Quotes = nil },
			errorMsg: "quotes",
		},
		{
			name:     "Negative price",
			mutate:   func(r *ComparisonRequest) { r.Quotes[1].PricePerUnit = -1 },
			errorMsg: "Ghazipur Mandi",
		},
		{
			name:     "Negative distance",
			mutate:   func(r *ComparisonRequest) { r.Quotes[0].DistanceKm = -1 },
			errorMsg: "distanceKm",
		},
		{
			name:     "NaN expected yield",
			mutate:   func(r *ComparisonRequest) { r.ExpectedYield = math.NaN() },
			errorMsg: "expectedYield",
		},
		{
			name:     "NaN price",
			mutate:   func(r *ComparisonRequest) { r.Quotes[0].PricePerUnit = math.NaN() },
			errorMsg: "pricePerUnit",
		},
		{
			name:     "NaN distance",
			mutate:   func(r *ComparisonRequest) { r.Quotes[1].DistanceKm = math.NaN() },
			errorMsg: "distanceKm",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			err := req.Validate(config.MaxQuotes)
			if tt.errorMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestInvalidInputReturnsNoPartialResult verifies a failed validation aborts
// the computation entirely.
func TestInvalidInputReturnsNoPartialResult(t *testing.T) {
	e := NewEngine(DefaultEngineConfig())

	req := validRequest()
	req.ExpectedYield = 0

	result, err := e.Compare(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, result)

	var invalid ErrInvalidInput
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "expectedYield", invalid.Field)
}

// TestInvalidQuoteNamesMarket verifies a bad quote error identifies the market.
func TestInvalidQuoteNamesMarket(t *testing.T) {
	e := NewEngine(DefaultEngineConfig())

	req := validRequest()
	req.Quotes[0].PricePerUnit = -50

	result, err := e.Compare(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, result)

	var invalid ErrInvalidQuote
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Azadpur Mandi", invalid.Market)
	assert.Equal(t, "pricePerUnit", invalid.Field)
}

// TestDiversifiedStrategyOnNarrowSpread verifies that a flat market does not
// recommend a single-market pick.
func TestDiversifiedStrategyOnNarrowSpread(t *testing.T) {
	e := NewEngine(DefaultEngineConfig())

	req := &ComparisonRequest{
		CropType:      "Potato",
		Location:      "Agra, India",
		ExpectedYield: 30,
		YieldUnit:     "quintals",
		Quotes: []MarketQuote{
			{MarketName: "Mandi A", PricePerUnit: 1000, DistanceKm: 5},
			{MarketName: "Mandi B", PricePerUnit: 1010, DistanceKm: 8},
			{MarketName: "Mandi C", PricePerUnit: 1005, DistanceKm: 6},
		},
	}

	result, err := e.Compare(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, result.StrategyText, "Diversify")
}

// TestContextCancellation verifies cancellation is observed.
func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewEngine(DefaultEngineConfig())

	_, err := e.Compare(ctx, validRequest())
	assert.ErrorIs(t, err, context.Canceled)
}
