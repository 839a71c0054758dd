package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticRegionalQuotesWin(t *testing.T) {
	s := NewStatic()

	quotes, err := s.QuotesFor(context.Background(), "Onion", "Nashik, Maharashtra")
	require.NoError(t, err)
	require.NotEmpty(t, quotes)

	names := make([]string, len(quotes))
	for i, q := range quotes {
		names[i] = q.MarketName
	}
	assert.Contains(t, names, "Lasalgaon APMC")
	assert.NotContains(t, names, "District Vegetable Market")
}

func TestStaticFallsBackForUnprofiledRegion(t *testing.T) {
	s := NewStatic()

	quotes, err := s.QuotesFor(context.Background(), "Wheat", "Smallville")
	require.NoError(t, err)
	require.NotEmpty(t, quotes)

	for _, q := range quotes {
		assert.NotEmpty(t, q.MarketName)
		assert.Positive(t, q.PricePerUnit)
	}
}

func TestStaticEveryCropHasFallbackQuotes(t *testing.T) {
	s := NewStatic()

	for _, crop := range []string{
		"Rice", "Wheat", "Corn", "Barley", "Soybeans", "Cotton",
		"Sugarcane", "Potato", "Tomato", "Onion", "Garlic",
		"Chili", "Turmeric", "Ginger", "Tea", "Coffee",
	} {
		quotes, err := s.QuotesFor(context.Background(), crop, "Unprofiled Village")
		assert.NoError(t, err, crop)
		assert.NotEmpty(t, quotes, crop)
	}
}

func TestStaticUnknownCrop(t *testing.T) {
	s := NewStatic()

	_, err := s.QuotesFor(context.Background(), "Dragonfruit", "Delhi")
	var noData ErrNoMarketData
	require.ErrorAs(t, err, &noData)
	assert.Equal(t, "Dragonfruit", noData.Crop)
}

func TestStaticQuotesCarryNoDerivedFields(t *testing.T) {
	s := NewStatic()

	quotes, err := s.QuotesFor(context.Background(), "Wheat", "Delhi, India")
	require.NoError(t, err)

	// Transport cost and net price belong to the engine, not the dataset.
	for _, q := range quotes {
		assert.Zero(t, q.TransportCost, q.MarketName)
		assert.Zero(t, q.NetPrice, q.MarketName)
	}
}

func TestStaticContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewStatic()
	_, err := s.QuotesFor(ctx, "Wheat", "Delhi")
	assert.ErrorIs(t, err, context.Canceled)
}
