package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Engine computes per-market net prices, ranks markets, and derives a
// selling strategy for a harvest. Compare is a pure function of its input:
// no hidden state, no I/O, identical input always produces identical output.
type Engine struct {
	config  *EngineConfig
	metrics *MetricsRecorder
	logger  zerolog.Logger
}

// NewEngine creates a new price comparison engine.
func NewEngine(config *EngineConfig) *Engine {
	if config == nil {
		config = DefaultEngineConfig()
	}
	return &Engine{
		config:  config,
		metrics: NewMetricsRecorder(),
		logger:  log.With().Str("component", "comparison_engine").Logger(),
	}
}

// Compare validates the request, computes net prices, ranks the markets and
// derives the recommendation. A well-formed but adverse request (every market
// loss-making) still returns a result; the engine always answers, it never
// refuses.
func (e *Engine) Compare(ctx context.Context, req *ComparisonRequest) (*ComparisonResult, error) {
	startTime := time.Now()
	defer func() {
		e.metrics.RecordComparisonDuration(time.Since(startTime))
	}()

	if err := req.Validate(e.config.MaxQuotes); err != nil {
		e.metrics.RecordRejectedRequest()
		return nil, err
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	e.metrics.RecordQuoteCount(len(req.Quotes))

	// Recompute derived fields from scratch; caller-supplied TransportCost or
	// NetPrice values are ignored so stale figures cannot leak into a ranking.
	ranked := make([]MarketQuote, len(req.Quotes))
	for i, q := range req.Quotes {
		q.TransportCost = e.config.TransportCost(q.DistanceKm)
		q.NetPrice = q.PricePerUnit - q.TransportCost
		ranked[i] = q
	}

	sortQuotes(ranked)

	if len(ranked) == 0 {
		// Unreachable given the non-empty precondition; asserted so the
		// averaging below can never divide by zero.
		panic("engine: ranked markets empty after validation")
	}

	best := ranked[0]

	var totalRevenue float64
	negativeCount := 0
	for _, q := range ranked {
		totalRevenue += q.NetPrice * req.ExpectedYield
		if q.NetPrice < 0 {
			negativeCount++
		}
	}

	revenue := RevenuePotential{
		BestMarket:    best.NetPrice * req.ExpectedYield,
		AverageMarket: totalRevenue / float64(len(ranked)),
	}

	allNegative := negativeCount == len(ranked)
	spread := relativeSpread(best, ranked)
	e.metrics.RecordSpreadRatio(spread)

	result := &ComparisonResult{
		RankedMarkets:    ranked,
		BestMarket:       best,
		RevenuePotential: revenue,
		StrategyText:     e.deriveStrategy(req, best, spread, allNegative),
		TimingText:       e.deriveTiming(best, spread, allNegative),
		RiskFactors:      e.deriveRisks(req, ranked, best, spread, negativeCount),
	}

	if allNegative {
		e.metrics.RecordLossMakingComparison()
		e.logger.Warn().
			Str("crop", req.CropType).
			Str("location", req.Location).
			Int("markets", len(ranked)).
			Msg("All markets loss-making at current quotes")
	}

	e.logger.Debug().
		Str("crop", req.CropType).
		Str("best_market", best.MarketName).
		Float64("best_net_price", best.NetPrice).
		Float64("spread", spread).
		Msg("Comparison complete")

	return result, nil
}

// relativeSpread returns (best - average) / |average| over net prices.
// Zero when the average is zero, so a flat market never recommends chasing
// a phantom premium.
func relativeSpread(best MarketQuote, ranked []MarketQuote) float64 {
	var sum float64
	for _, q := range ranked {
		sum += q.NetPrice
	}
	avg := sum / float64(len(ranked))
	if avg == 0 {
		return 0
	}
	spread := (best.NetPrice - avg) / avg
	if avg < 0 {
		spread = -spread
	}
	return spread
}

func (e *Engine) deriveStrategy(req *ComparisonRequest, best MarketQuote, spread float64, allNegative bool) string {
	if allNegative {
		return fmt.Sprintf(
			"All %d markets are loss-making for %s at the quoted prices and transport costs. "+
				"Hold off on long-haul sales: consider local direct sales, on-farm storage until prices recover, "+
				"or value-added processing instead of a market pick.",
			len(req.Quotes), req.CropType)
	}
	if spread > e.config.SpreadThreshold {
		return fmt.Sprintf(
			"Sell preferentially at %s: its net price of %.2f per %s is %.0f%% above the market average. "+
				"The premium comfortably covers the %.0f km haul.",
			best.MarketName, best.NetPrice, req.YieldUnit, spread*100, best.DistanceKm)
	}
	return fmt.Sprintf(
		"Net prices are close across markets (best is within %.0f%% of average). "+
			"Diversify sales across the nearest two or three markets, or sell locally, to reduce logistics risk.",
		e.config.SpreadThreshold*100)
}

func (e *Engine) deriveTiming(best MarketQuote, spread float64, allNegative bool) string {
	if allNegative {
		return "Delay selling if storage allows; revisit quotes when prices recover above transport costs."
	}
	if spread > e.config.SpreadThreshold {
		return fmt.Sprintf(
			"Sell promptly while %s holds its premium; wide spreads between markets tend to narrow within days.",
			best.MarketName)
	}
	return "No market holds a meaningful premium right now; sell on your own schedule as produce quality dictates."
}

func (e *Engine) deriveRisks(req *ComparisonRequest, ranked []MarketQuote, best MarketQuote, spread float64, negativeCount int) []string {
	risks := make([]string, 0, 4)

	if negativeCount == len(ranked) {
		risks = append(risks, fmt.Sprintf(
			"Operation is loss-making: every market's net price is negative for the expected yield of %.1f %s.",
			req.ExpectedYield, req.YieldUnit))
	} else if negativeCount > 0 {
		risks = append(risks, fmt.Sprintf(
			"%d of %d markets are unprofitable after transport; avoid them even if quoted prices look attractive.",
			negativeCount, len(ranked)))
	}

	if spread > e.config.SpreadThreshold {
		risks = append(risks, fmt.Sprintf(
			"Returns are sensitive to transport cost: the %s premium disappears if haulage rates rise materially.",
			best.MarketName))
	}

	if best.DistanceKm > e.config.LongHaulDistanceKm {
		risks = append(risks, fmt.Sprintf(
			"Best market is %.0f km away; spoilage and delay risk grows on long hauls.", best.DistanceKm))
	}

	if len(risks) == 0 {
		risks = append(risks, "Market prices fluctuate daily; re-check quotes close to your sale date.")
	}

	return risks
}

// sortQuotes orders quotes by net price (descending), then distance
// (ascending), then market name (ascending). The final key makes the order
// fully deterministic for identical inputs.
func sortQuotes(quotes []MarketQuote) {
	sort.Slice(quotes, func(i, j int) bool {
		a, b := quotes[i], quotes[j]

		if a.NetPrice != b.NetPrice {
			return a.NetPrice > b.NetPrice
		}

		if a.DistanceKm != b.DistanceKm {
			return a.DistanceKm < b.DistanceKm
		}

		return a.MarketName < b.MarketName
	})
}
