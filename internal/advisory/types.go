package advisory

import (
	"github.com/cropyield/advisor-service/internal/agronomy"
	"github.com/cropyield/advisor-service/internal/engine"
	"github.com/cropyield/advisor-service/internal/suitability"
)

// AdviceSections is the narrative generator's output: four labeled text
// sections for the grower.
type AdviceSections struct {
	GrowingTips   string
	ProfitTips    string
	WeatherAdvice string
	BestPractices string
}

// CollaboratorError is a structured failure from an external collaborator.
// It is rendered as a degraded branch of the report, never as a total
// failure of the advisory.
type CollaboratorError struct {
	Collaborator string // "narrative", "catalog", ...
	Reason       string
	Retryable    bool
}

func (e *CollaboratorError) Error() string {
	return e.Collaborator + " unavailable: " + e.Reason
}

// AdviseRequest bundles the farm facts for a full advisory run.
type AdviseRequest struct {
	Crop          string
	Location      string
	Investment    float64
	FarmSizeAcres float64
	Experience    string // "beginner", "intermediate", "expert"
}

// BranchResult holds one collaborator branch's outcome: a value or a
// structured failure, never both.
type BranchResult[T any] struct {
	Value T
	Err   *CollaboratorError
}

// OK reports whether the branch produced a value.
func (b BranchResult[T]) OK() bool {
	return b.Err == nil
}

// Report is the full advisory output. Branches fail independently: a failed
// narrative never blocks a succeeded price comparison, and vice versa.
type Report struct {
	Suitability suitability.Verdict
	Yield       BranchResult[agronomy.YieldEstimate]
	Profit      BranchResult[agronomy.ProfitEstimate]
	Comparison  BranchResult[*engine.ComparisonResult]
	Advice      BranchResult[AdviceSections]
}
