package advisory

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/cropyield/advisor-service/internal/agronomy"
	"github.com/cropyield/advisor-service/internal/catalog"
	"github.com/cropyield/advisor-service/internal/engine"
	"github.com/cropyield/advisor-service/internal/suitability"
)

// OrchestratorConfig configures the advisory fan-out.
type OrchestratorConfig struct {
	// BranchTimeout bounds each collaborator branch independently.
	BranchTimeout time.Duration
}

// DefaultOrchestratorConfig returns the default orchestrator configuration.
func DefaultOrchestratorConfig() OrchestratorConfig {
	return OrchestratorConfig{
		BranchTimeout: 25 * time.Second,
	}
}

// Orchestrator runs a full advisory: suitability gate, then the estimation
// and market branches concurrently. The only ordering dependency is that the
// narrative call needs the yield and profit numbers, so it runs after them
// inside the estimation branch; price comparison is fully parallel with both.
type Orchestrator struct {
	engine    *engine.Engine
	catalog   catalog.Source
	narrative *Client
	config    OrchestratorConfig
	logger    zerolog.Logger
}

// NewOrchestrator wires the orchestrator's collaborators.
func NewOrchestrator(eng *engine.Engine, source catalog.Source, narrative *Client, config OrchestratorConfig) *Orchestrator {
	return &Orchestrator{
		engine:    eng,
		catalog:   source,
		narrative: narrative,
		config:    config,
		logger:    log.With().Str("component", "advisory_orchestrator").Logger(),
	}
}

// NarrativeAvailable reports whether the narrative collaborator is
// configured.
func (o *Orchestrator) NarrativeAvailable() bool {
	return o.narrative != nil && o.narrative.Available()
}

// Advise produces a full report. An unsuitable crop short-circuits with the
// verdict and alternatives; otherwise both branches always run to completion
// and fail independently, so the caller gets a degraded-but-partial report
// rather than a total failure.
func (o *Orchestrator) Advise(ctx context.Context, req AdviseRequest) *Report {
	report := &Report{
		Suitability: suitability.Check(req.Crop, req.Location),
	}
	if !report.Suitability.Suitable {
		o.logger.Info().
			Str("crop", req.Crop).
			Str("location", req.Location).
			Msg("Crop unsuitable for region, skipping estimation and market branches")
		skipped := collabErr("advisor", errors.New("skipped: crop unsuitable for region"))
		report.Yield.Err = skipped
		report.Profit.Err = skipped
		report.Comparison.Err = skipped
		report.Advice.Err = skipped
		return report
	}

	g, gctx := errgroup.WithContext(ctx)

	// Estimation branch: yield, then profit, then narrative. The branch
	// never returns an error to the group; failures land in the report so
	// the market branch is unaffected.
	g.Go(func() error {
		branchCtx, cancel := context.WithTimeout(gctx, o.config.BranchTimeout)
		defer cancel()

		yield, err := agronomy.EstimateYield(req.Crop, req.FarmSizeAcres, req.Location)
		if err != nil {
			report.Yield.Err = collabErr("estimator", err)
			report.Profit.Err = collabErr("estimator", errors.New("skipped: yield estimation failed"))
			report.Advice.Err = collabErr("narrative", errors.New("skipped: no yield estimate to advise on"))
			return nil
		}
		report.Yield.Value = yield

		profit, err := agronomy.EstimateProfit(req.Crop, req.Investment, yield, req.Location)
		if err != nil {
			report.Profit.Err = collabErr("estimator", err)
			report.Advice.Err = collabErr("narrative", errors.New("skipped: no profit estimate to advise on"))
			return nil
		}
		report.Profit.Value = profit

		advice, err := o.narrative.Generate(branchCtx, NarrativeFacts{
			Crop:       req.Crop,
			Location:   req.Location,
			Investment: req.Investment,
			FarmSize:   req.FarmSizeAcres,
			Experience: req.Experience,
			Yield:      yield,
			Profit:     profit,
		})
		if err != nil {
			report.Advice.Err = collabErr("narrative", err)
			return nil
		}
		report.Advice.Value = advice
		return nil
	})

	// Market branch: catalog fetch and price comparison.
	g.Go(func() error {
		branchCtx, cancel := context.WithTimeout(gctx, o.config.BranchTimeout)
		defer cancel()

		quotes, err := o.catalog.QuotesFor(branchCtx, req.Crop, req.Location)
		if err != nil {
			report.Comparison.Err = collabErr("catalog", err)
			return nil
		}

		// The comparison needs the expected yield; recompute it here so this
		// branch does not wait on the estimation branch.
		yield, err := agronomy.EstimateYield(req.Crop, req.FarmSizeAcres, req.Location)
		if err != nil {
			report.Comparison.Err = collabErr("market-comparison", err)
			return nil
		}

		result, err := o.engine.Compare(branchCtx, &engine.ComparisonRequest{
			CropType:      req.Crop,
			Location:      req.Location,
			ExpectedYield: yield.Amount,
			YieldUnit:     yield.Unit,
			Quotes:        quotes,
		})
		if err != nil {
			report.Comparison.Err = collabErr("market-comparison", err)
			return nil
		}
		report.Comparison.Value = result
		return nil
	})

	// Branches only report through the report struct, so Wait cannot fail.
	_ = g.Wait()

	return report
}

// collabErr normalizes any branch failure into a *CollaboratorError,
// preserving one that already is.
func collabErr(collaborator string, err error) *CollaboratorError {
	var ce *CollaboratorError
	if errors.As(err, &ce) {
		return ce
	}
	return &CollaboratorError{
		Collaborator: collaborator,
		Reason:       err.Error(),
		Retryable:    errors.Is(err, context.DeadlineExceeded),
	}
}
