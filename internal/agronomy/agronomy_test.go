package agronomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateYield(t *testing.T) {
	est, err := EstimateYield("Wheat", 2.0, "Ludhiana, Punjab")
	require.NoError(t, err)

	// Subtropical factor 1.10 over an 18 q/acre base.
	assert.InDelta(t, 18*1.10*2.0, est.Amount, 0.001)
	assert.Equal(t, "quintals", est.Unit)
	assert.Contains(t, est.ConfidenceNote, "subtropic")
}

func TestEstimateYieldUnprofiledRegion(t *testing.T) {
	est, err := EstimateYield("Wheat", 1.0, "Smallville")
	require.NoError(t, err)

	assert.InDelta(t, 18.0, est.Amount, 0.001)
	assert.Contains(t, est.ConfidenceNote, "national averages")
}

func TestEstimateYieldScalesWithFarmSize(t *testing.T) {
	one, err := EstimateYield("Rice", 1.0, "Kolkata")
	require.NoError(t, err)
	three, err := EstimateYield("Rice", 3.0, "Kolkata")
	require.NoError(t, err)

	assert.InDelta(t, one.Amount*3, three.Amount, 0.001)
}

func TestEstimateYieldRejectsBadInput(t *testing.T) {
	_, err := EstimateYield("Dragonfruit", 1.0, "Delhi")
	assert.Error(t, err)

	_, err = EstimateYield("Wheat", 0, "Delhi")
	assert.Error(t, err)
}

func TestEstimateProfit(t *testing.T) {
	yield, err := EstimateYield("Wheat", 2.0, "Delhi, India")
	require.NoError(t, err)

	est, err := EstimateProfit("Wheat", 10000, yield, "Delhi, India")
	require.NoError(t, err)

	assert.InDelta(t, yield.Amount*2125, est.Revenue, 0.001)
	assert.InDelta(t, est.Revenue-10000, est.Profit, 0.001)
	assert.InDelta(t, est.Profit/10000*100, est.ROI, 0.001)
	assert.NotEmpty(t, est.Risks)
}

func TestEstimateProfitNegativeNotClamped(t *testing.T) {
	yield := YieldEstimate{Amount: 1, Unit: "quintals"}

	est, err := EstimateProfit("Wheat", 100000, yield, "Delhi, India")
	require.NoError(t, err)

	assert.Negative(t, est.Profit)
	assert.Negative(t, est.ROI)
	require.NotEmpty(t, est.Risks)
	assert.Contains(t, est.Risks[0], "exceeds expected revenue")
}

func TestEstimateProfitRejectsBadInput(t *testing.T) {
	yield := YieldEstimate{Amount: 10, Unit: "quintals"}

	_, err := EstimateProfit("Wheat", 0, yield, "Delhi")
	assert.Error(t, err)

	_, err = EstimateProfit("Nope", 1000, yield, "Delhi")
	assert.Error(t, err)
}
