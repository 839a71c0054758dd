package engine

// MarketQuote is one market's offer for a crop. TransportCost and NetPrice
// are derived during comparison and must never be supplied by the caller;
// Compare recomputes both from PricePerUnit and DistanceKm.
type MarketQuote struct {
	MarketName    string  // Unique within a single comparison request
	PricePerUnit  float64 // Currency per quintal (or configured unit), >= 0
	DistanceKm    float64 // Farm-to-market distance, >= 0
	TransportCost float64 // Derived: cost function of DistanceKm
	NetPrice      float64 // Derived: PricePerUnit - TransportCost, may be negative
}

// ComparisonRequest is the caller-supplied input bundle for a comparison.
type ComparisonRequest struct {
	CropType      string        // The crop being sold
	Location      string        // Farm location, used for logging and narrative
	ExpectedYield float64       // Harvest quantity in YieldUnit, must be > 0
	YieldUnit     string        // e.g. "quintals"
	Quotes        []MarketQuote // Candidate markets, must be non-empty
}

// RevenuePotential holds aggregate revenue figures across the compared markets.
type RevenuePotential struct {
	BestMarket    float64 // Best market net price * expected yield
	AverageMarket float64 // Mean of net price * expected yield across all quotes
}

// ComparisonResult is the outcome of a comparison. It is a value object:
// constructed fresh per request and never mutated afterwards.
type ComparisonResult struct {
	RankedMarkets    []MarketQuote // Sorted by net price desc, distance asc, name asc
	BestMarket       MarketQuote   // RankedMarkets[0]
	RevenuePotential RevenuePotential
	StrategyText     string   // Selling strategy recommendation
	TimingText       string   // Timing advice derived from spread and distances
	RiskFactors      []string // Ordered risk annotations
}

// EngineConfig contains configuration settings for the comparison engine.
type EngineConfig struct {
	// Transport cost function: max(MinTransportCost, DistanceKm * TransportRatePerKm).
	TransportRatePerKm float64
	MinTransportCost   float64

	// SpreadThreshold is the relative spread between the best and average net
	// price above which a single-market strategy is recommended.
	SpreadThreshold float64

	// LongHaulDistanceKm marks a best market as transport-sensitive.
	LongHaulDistanceKm float64

	// Validation limits
	MaxQuotes int // Maximum markets allowed in a request
}

// DefaultEngineConfig returns the default configuration for the engine.
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		TransportRatePerKm: 5.0,
		MinTransportCost:   0,
		SpreadThreshold:    0.15,
		LongHaulDistanceKm: 100.0,
		MaxQuotes:          50,
	}
}

// TransportCost computes the transport cost for a distance. Monotonically
// non-decreasing in distance.
func (c *EngineConfig) TransportCost(distanceKm float64) float64 {
	cost := distanceKm * c.TransportRatePerKm
	if cost < c.MinTransportCost {
		cost = c.MinTransportCost
	}
	return cost
}

// Validate validates the comparison request and returns an error if invalid.
// The whole request is rejected on the first bad quote; a partial ranking
// over a subset of markets would be misleading.
func (r *ComparisonRequest) Validate(maxQuotes int) error {
	if r.CropType == "" {
		return ErrInvalidInput{Field: "cropType", Reason: "cannot be empty"}
	}
	if r.Location == "" {
		return ErrInvalidInput{Field: "location", Reason: "cannot be empty"}
	}
	// Numeric checks are written in the accepting direction so NaN, which
	// fails every comparison, is rejected too.
	if !(r.ExpectedYield > 0) {
		return ErrInvalidInput{Field: "expectedYield", Reason: "must be greater than zero"}
	}
	if len(r.Quotes) == 0 {
		return ErrInvalidInput{Field: "quotes", Reason: "must have at least one market"}
	}
	if maxQuotes > 0 && len(r.Quotes) > maxQuotes {
		return ErrInvalidInput{Field: "quotes", Reason: "exceeds maximum allowed"}
	}
	for _, q := range r.Quotes {
		if q.MarketName == "" {
			return ErrInvalidInput{Field: "quotes", Reason: "market with empty name"}
		}
		if !(q.PricePerUnit >= 0) {
			return ErrInvalidQuote{Market: q.MarketName, Field: "pricePerUnit", Reason: "must be non-negative"}
		}
		if !(q.DistanceKm >= 0) {
			return ErrInvalidQuote{Market: q.MarketName, Field: "distanceKm", Reason: "must be non-negative"}
		}
	}
	return nil
}

// ErrInvalidInput is returned when a request field is malformed or missing.
// Caller-correctable, never retried.
type ErrInvalidInput struct {
	Field  string
	Reason string
}

func (e ErrInvalidInput) Error() string {
	return e.Field + ": " + e.Reason
}

// ErrInvalidQuote is returned when a market quote is malformed. The engine
// rejects the whole request rather than silently dropping the bad quote.
type ErrInvalidQuote struct {
	Market string
	Field  string
	Reason string
}

func (e ErrInvalidQuote) Error() string {
	return "market " + e.Market + ": " + e.Field + ": " + e.Reason
}
