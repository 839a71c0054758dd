package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cropyield/advisor-service/internal/advisory"
)

// AdviceRequest represents a full advisory request.
type AdviceRequest struct {
	CropType      string  `json:"cropType" binding:"required"`
	Location      string  `json:"location" binding:"required"`
	Investment    float64 `json:"investment" binding:"required,gt=0"`
	FarmSizeAcres float64 `json:"farmSizeAcres" binding:"required,gt=0"`
	Experience    string  `json:"experience,omitempty"`
}

// BranchError describes a collaborator branch that failed; the rest of the
// report is still served.
type BranchError struct {
	Collaborator string `json:"collaborator"`
	Reason       string `json:"reason"`
	Retryable    bool   `json:"retryable"`
}

// AdviceSections represents the narrative advice text.
type AdviceSections struct {
	GrowingTips   string `json:"growingTips"`
	ProfitTips    string `json:"profitTips"`
	WeatherAdvice string `json:"weatherAdvice"`
	BestPractices string `json:"bestPractices"`
}

// AdviceResponse represents the full advisory report. Each branch carries
// either its result or an error, never both.
type AdviceResponse struct {
	Suitability SuitabilityResponse `json:"suitability"`

	Yield       *YieldEstimate  `json:"yield,omitempty"`
	YieldError  *BranchError    `json:"yieldError,omitempty"`
	Profit      *ProfitEstimate `json:"profit,omitempty"`
	ProfitError *BranchError    `json:"profitError,omitempty"`

	Comparison      *CompareResponse `json:"marketComparison,omitempty"`
	ComparisonError *BranchError     `json:"marketComparisonError,omitempty"`

	Advice      *AdviceSections `json:"advice,omitempty"`
	AdviceError *BranchError    `json:"adviceError,omitempty"`
}

// Advise handles the full orchestrated advisory
// POST /internal/advice
func Advise(c *gin.Context) {
	var req AdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := advisor.Advise(c.Request.Context(), advisory.AdviseRequest{
		Crop:          req.CropType,
		Location:      req.Location,
		Investment:    req.Investment,
		FarmSizeAcres: req.FarmSizeAcres,
		Experience:    req.Experience,
	})

	c.JSON(http.StatusOK, toAdviceResponse(report))
}

func toBranchError(err *advisory.CollaboratorError) *BranchError {
	if err == nil {
		return nil
	}
	return &BranchError{
		Collaborator: err.Collaborator,
		Reason:       err.Reason,
		Retryable:    err.Retryable,
	}
}

func toAdviceResponse(report *advisory.Report) *AdviceResponse {
	response := &AdviceResponse{
		Suitability: *toSuitabilityResponse(report.Suitability),
	}
	if !report.Suitability.Suitable {
		return response
	}

	if report.Yield.OK() {
		response.Yield = &YieldEstimate{
			Amount:         report.Yield.Value.Amount,
			Unit:           report.Yield.Value.Unit,
			ConfidenceNote: report.Yield.Value.ConfidenceNote,
		}
	} else {
		response.YieldError = toBranchError(report.Yield.Err)
	}

	if report.Profit.OK() {
		response.Profit = &ProfitEstimate{
			Revenue: report.Profit.Value.Revenue,
			Profit:  report.Profit.Value.Profit,
			ROI:     report.Profit.Value.ROI,
			Risks:   report.Profit.Value.Risks,
		}
	} else {
		response.ProfitError = toBranchError(report.Profit.Err)
	}

	if report.Comparison.OK() {
		response.Comparison = toCompareResponse(report.Comparison.Value)
	} else {
		response.ComparisonError = toBranchError(report.Comparison.Err)
	}

	if report.Advice.OK() {
		response.Advice = &AdviceSections{
			GrowingTips:   report.Advice.Value.GrowingTips,
			ProfitTips:    report.Advice.Value.ProfitTips,
			WeatherAdvice: report.Advice.Value.WeatherAdvice,
			BestPractices: report.Advice.Value.BestPractices,
		}
	} else {
		response.AdviceError = toBranchError(report.Advice.Err)
	}

	return response
}
