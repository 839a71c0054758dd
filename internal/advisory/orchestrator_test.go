package advisory

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cropyield/advisor-service/internal/catalog"
	"github.com/cropyield/advisor-service/internal/engine"
)

func testRows() []catalog.Row {
	return []catalog.Row{
		{Crop: "Wheat", Region: "ludhiana", MarketName: "Ludhiana Grain Market", PricePerQuintal: 2200, DistanceKm: 12},
		{Crop: "Wheat", Region: "ludhiana", MarketName: "Khanna Mandi", PricePerQuintal: 2250, DistanceKm: 45},
		{Crop: "Wheat", Region: "", MarketName: "National Commodity Exchange", PricePerQuintal: 2150, DistanceKm: 80},
	}
}

func testRequest() AdviseRequest {
	return AdviseRequest{
		Crop:          "Wheat",
		Location:      "Ludhiana, Punjab",
		Investment:    50000,
		FarmSizeAcres: 3,
		Experience:    "beginner",
	}
}

func unavailableNarrative() *Client {
	return NewClient(ClientConfig{
		BaseURL: "http://localhost:0",
		Model:   "openai/gpt-4o-mini",
		Timeout: time.Second,
	}, fastHTTPClient())
}

func workingNarrative(t *testing.T) *Client {
	t.Helper()
	completion := "GROWING TIPS: Sow early.\n" +
		"PROFIT TIPS: Compare mandi prices.\n" +
		"WEATHER ADVICE: Watch the forecast.\n" +
		"BEST PRACTICES: Keep records."
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, chatCompletion(completion))
	}))
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		BaseURL: server.URL,
		Model:   "openai/gpt-4o-mini",
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	}, fastHTTPClient())
}

func newOrchestrator(source catalog.Source, narrative *Client) *Orchestrator {
	return NewOrchestrator(engine.NewEngine(nil), source, narrative, DefaultOrchestratorConfig())
}

func TestAdviseFullReport(t *testing.T) {
	o := newOrchestrator(catalog.NewStaticWithRows(testRows()), workingNarrative(t))

	report := o.Advise(context.Background(), testRequest())

	assert.True(t, report.Suitability.Suitable)

	require.True(t, report.Yield.OK())
	assert.InDelta(t, 59.4, report.Yield.Value.Amount, 0.01)
	assert.Equal(t, "quintals", report.Yield.Value.Unit)

	require.True(t, report.Profit.OK())
	assert.Greater(t, report.Profit.Value.Revenue, 0.0)

	require.True(t, report.Comparison.OK())
	ranked := report.Comparison.Value.RankedMarkets
	require.Len(t, ranked, 2)
	// Khanna nets 2250-225=2025, Ludhiana nets 2200-60=2140.
	assert.Equal(t, "Ludhiana Grain Market", ranked[0].MarketName)
	assert.InDelta(t, 2140, ranked[0].NetPrice, 0.001)

	require.True(t, report.Advice.OK())
	assert.Equal(t, "Sow early.", report.Advice.Value.GrowingTips)
	assert.Equal(t, "Keep records.", report.Advice.Value.BestPractices)
}

func TestAdviseUnsuitableCropShortCircuits(t *testing.T) {
	o := newOrchestrator(catalog.NewStaticWithRows(testRows()), workingNarrative(t))

	report := o.Advise(context.Background(), AdviseRequest{
		Crop:          "Coffee",
		Location:      "Delhi",
		Investment:    50000,
		FarmSizeAcres: 3,
	})

	assert.False(t, report.Suitability.Suitable)
	assert.NotEmpty(t, report.Suitability.Alternatives)
	assert.False(t, report.Yield.OK())
	assert.False(t, report.Profit.OK())
	assert.False(t, report.Comparison.OK())
	assert.False(t, report.Advice.OK())
}

func TestAdviseNarrativeFailureKeepsComparison(t *testing.T) {
	o := newOrchestrator(catalog.NewStaticWithRows(testRows()), unavailableNarrative())

	report := o.Advise(context.Background(), testRequest())

	assert.True(t, report.Yield.OK())
	assert.True(t, report.Profit.OK())
	assert.True(t, report.Comparison.OK())

	require.False(t, report.Advice.OK())
	assert.Equal(t, "narrative", report.Advice.Err.Collaborator)
	assert.False(t, report.Advice.Err.Retryable)
}

func TestAdviseNoMarketDataKeepsAdvice(t *testing.T) {
	o := newOrchestrator(catalog.NewStaticWithRows(nil), workingNarrative(t))

	report := o.Advise(context.Background(), testRequest())

	assert.True(t, report.Yield.OK())
	assert.True(t, report.Profit.OK())
	assert.True(t, report.Advice.OK())

	require.False(t, report.Comparison.OK())
	assert.Equal(t, "catalog", report.Comparison.Err.Collaborator)
	assert.Contains(t, report.Comparison.Err.Reason, "no market quotes")
}

func TestAdviseInvalidFarmSizeFailsEstimationBranch(t *testing.T) {
	o := newOrchestrator(catalog.NewStaticWithRows(testRows()), workingNarrative(t))

	req := testRequest()
	req.FarmSizeAcres = 0
	report := o.Advise(context.Background(), req)

	require.False(t, report.Yield.OK())
	assert.Equal(t, "estimator", report.Yield.Err.Collaborator)
	assert.False(t, report.Profit.OK())
	assert.False(t, report.Advice.OK())
	assert.False(t, report.Comparison.OK())
}
