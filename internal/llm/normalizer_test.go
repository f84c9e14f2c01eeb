package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/code-sage/internal/core"
)

func TestNormalizeResponse_WellFormed(t *testing.T) {
	raw := `{
		"language": "Go",
		"review_summary": "Solid code.",
		"readability_score": 8,
		"modularity_score": 7,
		"bug_risk_score": 2,
		"suggestions": [
			{"type": "improvement", "description": "extract helper", "line": 10}
		],
		"issues": [
			{"severity": "low", "description": "shadowed variable", "line": 4}
		]
	}`

	got := NormalizeResponse(raw, "")

	assert.Equal(t, "Go", got.Language)
	assert.Equal(t, "Solid code.", got.ReviewSummary)
	assert.Equal(t, 8, got.ReadabilityScore)
	assert.Equal(t, 7, got.ModularityScore)
	assert.Equal(t, 2, got.BugRiskScore)
	require.Len(t, got.Suggestions, 1)
	assert.Equal(t, core.Suggestion{Type: "improvement", Description: "extract helper", Line: 10}, got.Suggestions[0])
	require.Len(t, got.Issues, 1)
	assert.Equal(t, core.Issue{Severity: "low", Description: "shadowed variable", Line: 4}, got.Issues[0])
}

func TestNormalizeResponse_Fallback(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		hint     string
		wantLang string
	}{
		{"Not JSON at all", "not json at all", "", "Unknown"},
		{"Empty input", "", "Python", "Python"},
		{"Truncated object", `{"language": "Go", "review_summary": "x`, "Go", "Go"},
		{"Binary garbage", "\x00\xff\xfe{]}", "", "Unknown"},
		{"Prose with stray braces", "I think { this code } is fine", "", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeResponse(tt.input, tt.hint)

			assert.Equal(t, FallbackSummary, got.ReviewSummary)
			assert.Equal(t, tt.wantLang, got.Language)
			assert.Equal(t, 5, got.ReadabilityScore)
			assert.Equal(t, 5, got.ModularityScore)
			assert.Equal(t, 5, got.BugRiskScore)
			assert.NotNil(t, got.Suggestions)
			assert.Empty(t, got.Suggestions)
			assert.NotNil(t, got.Issues)
			assert.Empty(t, got.Issues)
		})
	}
}

func TestNormalizeResponse_StringCoercion(t *testing.T) {
	raw := `{"suggestions": ["foo", "bar"], "issues": ["x"]}`

	got := NormalizeResponse(raw, "")

	require.Len(t, got.Suggestions, 2)
	assert.Equal(t, "foo", got.Suggestions[0].Description)
	assert.Equal(t, "bar", got.Suggestions[1].Description)
	assert.Equal(t, "general", got.Suggestions[0].Type)

	require.Len(t, got.Issues, 1)
	assert.Equal(t, "x", got.Issues[0].Description)
	assert.Equal(t, "medium", got.Issues[0].Severity)
}

func TestNormalizeResponse_MixedElements(t *testing.T) {
	raw := `{
		"suggestions": [{"description": "kept"}, "wrapped", 42, null, true],
		"issues": [["nested"], {"description": "kept too"}]
	}`

	got := NormalizeResponse(raw, "")

	// Numbers, nulls, booleans and nested arrays are dropped; objects and
	// strings survive.
	require.Len(t, got.Suggestions, 2)
	assert.Equal(t, "kept", got.Suggestions[0].Description)
	assert.Equal(t, "wrapped", got.Suggestions[1].Description)
	require.Len(t, got.Issues, 1)
	assert.Equal(t, "kept too", got.Issues[0].Description)
}

func TestNormalizeResponse_BadFieldShapes(t *testing.T) {
	raw := `{
		"language": 7,
		"review_summary": "ok",
		"readability_score": "high",
		"suggestions": "not an array",
		"issues": null
	}`

	got := NormalizeResponse(raw, "")

	assert.Empty(t, got.Language)
	assert.Equal(t, "ok", got.ReviewSummary)
	assert.Zero(t, got.ReadabilityScore)
	assert.NotNil(t, got.Suggestions)
	assert.Empty(t, got.Suggestions)
	assert.NotNil(t, got.Issues)
	assert.Empty(t, got.Issues)
}

func TestNormalizeResponse_NoClamping(t *testing.T) {
	// Out-of-range scores pass through; range enforcement is the store's job.
	got := NormalizeResponse(`{"readability_score": 42, "bug_risk_score": -3}`, "")

	assert.Equal(t, 42, got.ReadabilityScore)
	assert.Equal(t, -3, got.BugRiskScore)
}

func TestNormalizeResponse_FencedEquivalence(t *testing.T) {
	unfenced := `{"language": "Python", "review_summary": "fine", "suggestions": ["a"], "issues": []}`
	variants := []struct {
		name  string
		input string
	}{
		{"JSON tag", "```json\n" + unfenced + "\n```"},
		{"No tag", "```\n" + unfenced + "\n```"},
		{"Surrounding prose", "Here is the review:\n" + unfenced + "\nHope this helps!"},
	}

	want := NormalizeResponse(unfenced, "")
	for _, tt := range variants {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, want, NormalizeResponse(tt.input, ""))
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"No fence", `{"a":1}`, `{"a":1}`},
		{"JSON fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"Bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"Unterminated fence", "```json\n{\"a\":1}", `{"a":1}`},
		{"Fence without newline", "```", "```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFence(tt.input))
		})
	}
}
