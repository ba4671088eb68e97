// internal/prompt/builder_test.go
package prompt

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tourism-chatbot/internal/directus"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
		{strings.Repeat("x", 8), 2},
		{strings.Repeat("x", 9), 3},
		{strings.Repeat("x", 120000), 30000},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, EstimateTokens(tt.input), "input length %d", len(tt.input))
	}
}

func TestValidateSize(t *testing.T) {
	p := strings.Repeat("x", 400) // 100 tokens

	assert.True(t, ValidateSize(p, 100))
	assert.False(t, ValidateSize(p, 99))

	// Monotonic: once valid at k, valid at every k' > k.
	for k := 100; k <= 110; k++ {
		assert.True(t, ValidateSize(p, k))
	}
}

func TestValidateSize_DefaultLimit(t *testing.T) {
	small := strings.Repeat("x", 4*DefaultMaxTokens)
	large := strings.Repeat("x", 4*DefaultMaxTokens+4)

	assert.True(t, ValidateSize(small, 0))
	assert.False(t, ValidateSize(large, 0))
	assert.True(t, ValidateSize(small, -1))
}

func TestBuildFull(t *testing.T) {
	data := &directus.AggregatedData{
		SearchResults: map[string]directus.CollectionResult{
			"Items": {json.RawMessage(`{"id":1,"title":"Jeita Grotto"}`)},
		},
		AllData: map[string]directus.CollectionResult{
			"Items": {json.RawMessage(`{"id":1,"title":"Jeita Grotto"}`)},
		},
		Metadata: directus.Metadata{Query: "grotto", Timestamp: time.Now(), Collections: []string{"Items"}},
	}

	p := BuildFull("Where is the grotto?", data)

	assert.Contains(t, p, "DIRECTUS DATA (JSON):")
	assert.Contains(t, p, `"relevantResults"`)
	assert.Contains(t, p, `"availableData"`)
	assert.Contains(t, p, "Jeita Grotto")
	assert.Contains(t, p, "USER QUESTION: Where is the grotto?")
	assert.Contains(t, p, "I'm sorry, I don't have that information in the available data.")
	assert.Contains(t, p, "I can only help with questions about our tours, activities, and bookings.")
}

func TestBuildCompact(t *testing.T) {
	data := map[string]directus.CollectionResult{
		"Items": {json.RawMessage(`{"id":1,"title":"Jeita Grotto"}`)},
	}

	p := BuildCompact("Where is the grotto?", data)

	assert.Contains(t, p, "AVAILABLE DATA:")
	assert.NotContains(t, p, "DIRECTUS DATA (JSON):")
	assert.Contains(t, p, "Jeita Grotto")
	assert.Contains(t, p, "USER QUESTION: Where is the grotto?")
	assert.Contains(t, p, "friendly, helpful tone")
}

func TestBuildFull_InstructionAlwaysFirst(t *testing.T) {
	data := &directus.AggregatedData{
		SearchResults: map[string]directus.CollectionResult{},
		AllData:       map[string]directus.CollectionResult{},
	}

	p := BuildFull("anything", data)
	assert.True(t, strings.HasPrefix(p, "You are a tourism assistant"))
}
