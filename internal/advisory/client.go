// Package advisory holds the narrative generator client and the
// orchestrator that fans out the collaborator calls for a full advisory.
package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cropyield/advisor-service/internal/agronomy"
	"github.com/cropyield/advisor-service/internal/httpx"
)

// ClientConfig configures the narrative generator client.
type ClientConfig struct {
	BaseURL string        // Chat completions endpoint
	Model   string        // Model identifier
	APIKey  string        // Empty means the collaborator is unavailable
	Timeout time.Duration // Per-call deadline
}

// DefaultClientConfig returns defaults for the OpenRouter API.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL: "https://openrouter.ai/api/v1/chat/completions",
		Model:   "openai/gpt-4o-mini",
		Timeout: 20 * time.Second,
	}
}

// Client calls the narrative generation service. The service is an opaque
// collaborator: the client depends only on the request/response contract and
// must tolerate total unavailability.
type Client struct {
	config  ClientConfig
	http    *httpx.Client
	breaker *Breaker
	logger  zerolog.Logger
}

// NewClient creates a narrative client. A missing API key is allowed; the
// client then reports unavailable on every call instead of failing startup.
func NewClient(config ClientConfig, httpClient *httpx.Client) *Client {
	logger := log.With().Str("component", "narrative_client").Logger()
	if config.APIKey == "" {
		logger.Warn().Msg("Narrative API key not configured; advice generation disabled")
	}
	if httpClient == nil {
		httpClient = httpx.NewClientDefault()
	}
	return &Client{
		config:  config,
		http:    httpClient,
		breaker: NewBreaker(DefaultBreakerConfig(), logger),
		logger:  logger,
	}
}

// Available reports whether the collaborator can be called at all.
func (c *Client) Available() bool {
	return c.config.APIKey != ""
}

// NarrativeFacts is the structured input to the narrative generator.
type NarrativeFacts struct {
	Crop       string
	Location   string
	Investment float64
	FarmSize   float64
	Experience string
	Yield      agronomy.YieldEstimate
	Profit     agronomy.ProfitEstimate
}

// Generate requests the four advice sections for the given facts. Failures
// come back as *CollaboratorError so callers can render a degraded report.
func (c *Client) Generate(ctx context.Context, facts NarrativeFacts) (AdviceSections, error) {
	if !c.Available() {
		return AdviceSections{}, &CollaboratorError{
			Collaborator: "narrative",
			Reason:       "API key not configured",
			Retryable:    false,
		}
	}
	if !c.breaker.Allow() {
		return AdviceSections{}, &CollaboratorError{
			Collaborator: "narrative",
			Reason:       "circuit open after repeated failures",
			Retryable:    true,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(facts)},
		},
	})
	if err != nil {
		return AdviceSections{}, fmt.Errorf("marshal narrative request: %w", err)
	}

	start := time.Now()
	respBody, err := c.http.PostJSON(ctx, c.config.BaseURL, body, map[string]string{
		"Authorization": "Bearer " + c.config.APIKey,
	})
	if err != nil {
		c.breaker.RecordFailure(err)
		c.logger.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("Narrative call failed")
		return AdviceSections{}, &CollaboratorError{
			Collaborator: "narrative",
			Reason:       err.Error(),
			Retryable:    true,
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		c.breaker.RecordFailure(err)
		return AdviceSections{}, &CollaboratorError{
			Collaborator: "narrative",
			Reason:       "malformed response: " + err.Error(),
			Retryable:    true,
		}
	}
	if len(parsed.Choices) == 0 {
		c.breaker.RecordFailure(fmt.Errorf("empty choices"))
		return AdviceSections{}, &CollaboratorError{
			Collaborator: "narrative",
			Reason:       "response contained no completion",
			Retryable:    true,
		}
	}

	c.breaker.RecordSuccess()
	c.logger.Debug().Dur("elapsed", time.Since(start)).Msg("Narrative call complete")

	return parseSections(parsed.Choices[0].Message.Content), nil
}

const systemPrompt = "You are an experienced agricultural advisor. " +
	"Answer with exactly four sections, each starting with one of these headers on its own line: " +
	"GROWING TIPS:, PROFIT TIPS:, WEATHER ADVICE:, BEST PRACTICES:. Keep each section practical and concise."

func buildPrompt(f NarrativeFacts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Crop: %s\nLocation: %s\n", f.Crop, f.Location)
	fmt.Fprintf(&b, "Farm size: %.1f acres\nTotal investment: %.0f\n", f.FarmSize, f.Investment)
	if f.Experience != "" {
		fmt.Fprintf(&b, "Farmer experience: %s\n", f.Experience)
	}
	fmt.Fprintf(&b, "Expected yield: %.1f %s (%s)\n", f.Yield.Amount, f.Yield.Unit, f.Yield.ConfidenceNote)
	fmt.Fprintf(&b, "Estimated profit: %.0f (ROI %.1f%%)\n", f.Profit.Profit, f.Profit.ROI)
	b.WriteString("Provide advice for this farm.")
	return b.String()
}

// parseSections splits the completion into the four labeled sections.
// Unrecognized leading text is ignored; a missing section stays empty.
func parseSections(content string) AdviceSections {
	var sections AdviceSections
	var current *string

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		upper := strings.ToUpper(trimmed)

		switch {
		case strings.HasPrefix(upper, "GROWING TIPS"):
			current = &sections.GrowingTips
			trimmed = sectionRemainder(trimmed)
		case strings.HasPrefix(upper, "PROFIT TIPS"):
			current = &sections.ProfitTips
			trimmed = sectionRemainder(trimmed)
		case strings.HasPrefix(upper, "WEATHER ADVICE"):
			current = &sections.WeatherAdvice
			trimmed = sectionRemainder(trimmed)
		case strings.HasPrefix(upper, "BEST PRACTICES"):
			current = &sections.BestPractices
			trimmed = sectionRemainder(trimmed)
		}

		if current == nil || trimmed == "" {
			continue
		}
		if *current != "" {
			*current += "\n"
		}
		*current += trimmed
	}

	return sections
}

// sectionRemainder returns any text following the section header's colon.
func sectionRemainder(line string) string {
	if idx := strings.IndexByte(line, ':'); idx >= 0 {
		return strings.TrimSpace(line[idx+1:])
	}
	return ""
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
