package advisory

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cropyield/advisor-service/internal/agronomy"
	"github.com/cropyield/advisor-service/internal/httpx"
	"github.com/cropyield/advisor-service/internal/httpx/ratelimit"
)

func fastHTTPClient() *httpx.Client {
	return httpx.NewClient(ratelimit.Config{
		RequestsPerSecond: 100,
		Burst:             10,
		MaxRetries:        0,
		InitialBackoffMs:  1,
		MaxBackoffMs:      10,
	}, 2*time.Second)
}

func testFacts() NarrativeFacts {
	return NarrativeFacts{
		Crop:       "Wheat",
		Location:   "Ludhiana, Punjab",
		Investment: 50000,
		FarmSize:   3,
		Experience: "beginner",
		Yield:      agronomy.YieldEstimate{Amount: 59.4, Unit: "quintals", ConfidenceNote: "regional average"},
		Profit:     agronomy.ProfitEstimate{Revenue: 126225, Profit: 76225, ROI: 152.5},
	}
}

func chatCompletion(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestGenerateParsesFourSections(t *testing.T) {
	completion := "GROWING TIPS: Sow by mid November.\nUse certified seed.\n" +
		"PROFIT TIPS: Sell at the mandi with the best net price.\n" +
		"WEATHER ADVICE: Watch for terminal heat in March.\n" +
		"BEST PRACTICES: Rotate with legumes."

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req chatRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "openai/gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Contains(t, req.Messages[1].Content, "Crop: Wheat")
		assert.Contains(t, req.Messages[1].Content, "Farmer experience: beginner")

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, chatCompletion(completion))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Model:   "openai/gpt-4o-mini",
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	}, fastHTTPClient())

	sections, err := client.Generate(context.Background(), testFacts())
	require.NoError(t, err)
	assert.Equal(t, "Sow by mid November.\nUse certified seed.", sections.GrowingTips)
	assert.Equal(t, "Sell at the mandi with the best net price.", sections.ProfitTips)
	assert.Equal(t, "Watch for terminal heat in March.", sections.WeatherAdvice)
	assert.Equal(t, "Rotate with legumes.", sections.BestPractices)
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	client := NewClient(ClientConfig{
		BaseURL: "http://localhost:0",
		Model:   "openai/gpt-4o-mini",
		Timeout: time.Second,
	}, fastHTTPClient())

	assert.False(t, client.Available())

	_, err := client.Generate(context.Background(), testFacts())
	var ce *CollaboratorError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "narrative", ce.Collaborator)
	assert.False(t, ce.Retryable)
}

func TestGenerateUpstreamErrorIsRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Model:   "openai/gpt-4o-mini",
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	}, fastHTTPClient())

	_, err := client.Generate(context.Background(), testFacts())
	var ce *CollaboratorError
	require.ErrorAs(t, err, &ce)
	assert.True(t, ce.Retryable)
}

func TestGenerateMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "not json at all")
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Model:   "openai/gpt-4o-mini",
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	}, fastHTTPClient())

	_, err := client.Generate(context.Background(), testFacts())
	var ce *CollaboratorError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Reason, "malformed response")
}

func TestGenerateEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"choices":[]}`)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Model:   "openai/gpt-4o-mini",
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	}, fastHTTPClient())

	_, err := client.Generate(context.Background(), testFacts())
	var ce *CollaboratorError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Reason, "no completion")
}

func TestParseSections(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    AdviceSections
	}{
		{
			name: "preamble ignored and missing section empty",
			content: "Here is your advice.\n" +
				"GROWING TIPS:\nIrrigate at crown root initiation.\n" +
				"WEATHER ADVICE: Expect dry spells.",
			want: AdviceSections{
				GrowingTips:   "Irrigate at crown root initiation.",
				WeatherAdvice: "Expect dry spells.",
			},
		},
		{
			name:    "case insensitive headers",
			content: "growing tips: plant early\nbest practices: keep records",
			want: AdviceSections{
				GrowingTips:   "plant early",
				BestPractices: "keep records",
			},
		},
		{
			name:    "no recognized headers",
			content: "General advice without structure.",
			want:    AdviceSections{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSections(tt.content))
		})
	}
}
