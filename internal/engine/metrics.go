package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// comparisonDuration tracks the time taken for price comparisons.
	comparisonDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "engine_comparison_duration_seconds",
		Help:    "Time taken for market price comparisons",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	})

	// quoteCount tracks the distribution of markets per request.
	quoteCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "engine_quotes_count",
		Help:    "Number of market quotes in comparison requests",
		Buckets: []float64{1, 2, 5, 10, 20, 50},
	})

	// spreadRatio tracks the relative spread between best and average net price.
	spreadRatio = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "engine_spread_ratio",
		Help:    "Relative spread between best and average net price",
		Buckets: []float64{0, 0.05, 0.1, 0.15, 0.25, 0.5, 1},
	})

	// rejectedRequests tracks requests failing validation.
	rejectedRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "engine_rejected_requests_total",
		Help: "Total number of comparison requests rejected by validation",
	})

	// lossMakingComparisons tracks comparisons where every market was loss-making.
	lossMakingComparisons = promauto.NewCounter(prometheus.CounterOpts{
		Name: "engine_loss_making_comparisons_total",
		Help: "Total number of comparisons where all net prices were negative",
	})
)

// MetricsRecorder provides methods to record engine metrics.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordComparisonDuration records the duration of a comparison.
func (m *MetricsRecorder) RecordComparisonDuration(duration time.Duration) {
	comparisonDuration.Observe(duration.Seconds())
}

// RecordQuoteCount records the number of quotes in a request.
func (m *MetricsRecorder) RecordQuoteCount(count int) {
	quoteCount.Observe(float64(count))
}

// RecordSpreadRatio records the relative spread of a comparison result.
func (m *MetricsRecorder) RecordSpreadRatio(ratio float64) {
	spreadRatio.Observe(ratio)
}

// RecordRejectedRequest records a request rejected by validation.
func (m *MetricsRecorder) RecordRejectedRequest() {
	rejectedRequests.Inc()
}

// RecordLossMakingComparison records a comparison with all-negative net prices.
func (m *MetricsRecorder) RecordLossMakingComparison() {
	lossMakingComparisons.Inc()
}
