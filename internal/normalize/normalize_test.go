package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Lowercases", "Delhi", "delhi"},
		{"Trims and folds whitespace", "  Uttar   Pradesh ", "uttar pradesh"},
		{"Strips diacritics", "Nāshik", "nashik"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Key(tt.input))
		})
	}
}

func TestRegionKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"City with country", "Delhi, India", "delhi"},
		{"Bare city", "delhi", "delhi"},
		{"City with state and country", "Nashik, Maharashtra, India", "nashik"},
		{"Diacritics in city", "Nāshik, India", "nashik"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RegionKey(tt.input))
		})
	}
}

func TestRemoveDiacritics(t *testing.T) {
	assert.Equal(t, "Cafe", RemoveDiacritics("Café"))
	assert.Equal(t, "plain", RemoveDiacritics("plain"))
}
