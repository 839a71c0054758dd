// Package handlers contains the gin HTTP handlers for the advisor's
// internal API. Handlers translate JSON DTOs to and from the domain
// packages; domain logic stays out of this package.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cropyield/advisor-service/internal/advisory"
	"github.com/cropyield/advisor-service/internal/catalog"
	"github.com/cropyield/advisor-service/internal/engine"
)

// Global instances (initialized by the application)
var (
	comparisonEngine *engine.Engine
	catalogSource    catalog.Source
	catalogStatus    StatusChecker
	advisor          *advisory.Orchestrator
)

// StatusChecker reports health of a backing dependency. Only the database
// catalog source implements it; the static and file sources have nothing to
// probe.
type StatusChecker interface {
	Status(ctx context.Context) error
}

// Init wires the handler package's collaborators.
// This should be called during application startup.
func Init(eng *engine.Engine, source catalog.Source, orchestrator *advisory.Orchestrator) {
	comparisonEngine = eng
	catalogSource = source
	advisor = orchestrator
	if sc, ok := source.(StatusChecker); ok {
		catalogStatus = sc
	} else {
		catalogStatus = nil
	}
}

// writeEngineError maps the engine's validation errors to a 400 with the
// offending field named; anything else is a 500.
func writeEngineError(c *gin.Context, err error) {
	var invalidInput engine.ErrInvalidInput
	if errors.As(err, &invalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": invalidInput.Error(),
			"field": invalidInput.Field,
		})
		return
	}

	var invalidQuote engine.ErrInvalidQuote
	if errors.As(err, &invalidQuote) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  invalidQuote.Error(),
			"field":  invalidQuote.Field,
			"market": invalidQuote.Market,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
