// internal/prompt/builder.go

// Package prompt assembles the closed-domain LLM prompt from aggregated
// CMS data and the user question.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"tourism-chatbot/internal/directus"
)

// DefaultMaxTokens is the soft prompt-size ceiling.
const DefaultMaxTokens = 30000

const systemInstruction = `You are a tourism assistant for our booking platform. Answer the user's question using ONLY the data provided below.

Rules:
- Never use outside knowledge. Everything you say must come from the provided data.
- If the answer is not in the provided data, reply exactly: "I'm sorry, I don't have that information in the available data."
- If the question is not about our tours, drivers, or services, reply exactly: "I can only help with questions about our tours, activities, and bookings."
- Do not invent prices, availability, or contact details.`

const closingFull = `Answer the question using the relevant results first and the available data as fallback context.`

const closingCompact = `Answer in a friendly, helpful tone for a tourist planning their trip.`

// BuildFull renders the full-mode prompt: search results plus the
// unfiltered dataset as fallback context.
func BuildFull(question string, data *directus.AggregatedData) string {
	payload := map[string]interface{}{
		"relevantResults": data.SearchResults,
		"availableData":   data.AllData,
	}
	serialized, _ := json.MarshalIndent(payload, "", "  ")

	parts := []string{
		systemInstruction,
		"DIRECTUS DATA (JSON):",
		string(serialized),
		fmt.Sprintf("USER QUESTION: %s", question),
		closingFull,
	}
	return strings.Join(parts, "\n\n")
}

// BuildCompact renders the reduced prompt used when full mode failed or
// produced an oversized prompt.
func BuildCompact(question string, data map[string]directus.CollectionResult) string {
	serialized, _ := json.MarshalIndent(data, "", "  ")

	parts := []string{
		systemInstruction,
		"AVAILABLE DATA:",
		string(serialized),
		fmt.Sprintf("USER QUESTION: %s", question),
		closingCompact,
	}
	return strings.Join(parts, "\n\n")
}

// EstimateTokens approximates the provider's tokenizer with a
// chars-per-token heuristic: ceil(len(s)/4).
func EstimateTokens(s string) int {
	return (len(s) + 3) / 4
}

// ValidateSize reports whether the prompt's estimated token count fits
// within maxTokens. Non-positive maxTokens falls back to DefaultMaxTokens.
// This is a soft guard, not exact enforcement of the provider's limit.
func ValidateSize(prompt string, maxTokens int) bool {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return EstimateTokens(prompt) <= maxTokens
}
