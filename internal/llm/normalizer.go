// Package llm turns untrusted model output into schema-valid review records.
package llm

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/sevigo/code-sage/internal/core"
	"github.com/sevigo/code-sage/internal/language"
)

// FallbackSummary is the sentinel summary stored when the model's reply could
// not be parsed as JSON. Callers can test for it but are otherwise handed a
// normal, schema-valid record.
const FallbackSummary = "Could not parse model output."

// neutralScore is the midpoint used for all three scores on the fallback path.
const neutralScore = 5

// NormalizeResponse converts raw model output into a schema-valid Analysis.
// It is total over all string inputs and never fails: prose, markdown fences,
// truncated JSON and binary garbage all produce either a coerced record or the
// deterministic fallback record.
func NormalizeResponse(raw, languageHint string) *core.Analysis {
	payload, ok := extractObject(stripCodeFence(raw))
	if !ok {
		return fallbackAnalysis(languageHint)
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		slog.Debug("model output is not valid JSON, using fallback record", "error", err)
		return fallbackAnalysis(languageHint)
	}

	return &core.Analysis{
		Language:         stringField(parsed, "language"),
		ReviewSummary:    stringField(parsed, "review_summary"),
		ReadabilityScore: intField(parsed, "readability_score"),
		ModularityScore:  intField(parsed, "modularity_score"),
		BugRiskScore:     intField(parsed, "bug_risk_score"),
		Suggestions:      coerceSuggestions(parsed["suggestions"]),
		Issues:           coerceIssues(parsed["issues"]),
	}
}

// stripCodeFence removes a wrapping triple-backtick block, including a leading
// language tag such as ```json, the way some models fence their reply despite
// being asked not to. Unfenced input passes through untouched.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}

	idx := strings.Index(trimmed, "\n")
	if idx < 0 {
		return s
	}
	inner := trimmed[idx+1:]

	if lastFence := strings.LastIndex(inner, "```"); lastFence >= 0 {
		inner = inner[:lastFence]
	}
	return strings.TrimSpace(inner)
}

// extractObject slices the text between its first '{' and last '}' inclusive.
// Text without an opening brace carries no JSON object at all, which is
// reported as not-ok so the caller can substitute the fallback record.
func extractObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(s, "}")
	if end < start {
		return "", false
	}
	return s[start : end+1], true
}

func fallbackAnalysis(languageHint string) *core.Analysis {
	lang := languageHint
	if lang == "" {
		lang = language.Unknown
	}
	return &core.Analysis{
		Language:         lang,
		ReviewSummary:    FallbackSummary,
		ReadabilityScore: neutralScore,
		ModularityScore:  neutralScore,
		BugRiskScore:     neutralScore,
		Suggestions:      []core.Suggestion{},
		Issues:           []core.Issue{},
	}
}

// coerceSuggestions maps the raw suggestions field into canonical shape.
// Elements are classified as object, string, or other: objects keep their
// fields, bare strings become a "general" suggestion, anything else is
// dropped. A missing or non-array field yields an empty slice.
func coerceSuggestions(v any) []core.Suggestion {
	items, ok := v.([]any)
	if !ok {
		return []core.Suggestion{}
	}

	out := make([]core.Suggestion, 0, len(items))
	for _, item := range items {
		switch el := item.(type) {
		case map[string]any:
			out = append(out, core.Suggestion{
				Type:         stringField(el, "type"),
				Severity:     stringField(el, "severity"),
				Description:  stringField(el, "description"),
				Line:         intField(el, "line"),
				CodeSnippet:  stringField(el, "code_snippet"),
				ImprovedCode: stringField(el, "improved_code"),
			})
		case string:
			out = append(out, core.Suggestion{Type: "general", Description: el})
		}
	}
	return out
}

// coerceIssues does the same for issues; bare strings get the documented
// "medium" default severity.
func coerceIssues(v any) []core.Issue {
	items, ok := v.([]any)
	if !ok {
		return []core.Issue{}
	}

	out := make([]core.Issue, 0, len(items))
	for _, item := range items {
		switch el := item.(type) {
		case map[string]any:
			out = append(out, core.Issue{
				Severity:    stringField(el, "severity"),
				Type:        stringField(el, "type"),
				Description: stringField(el, "description"),
				Line:        intField(el, "line"),
			})
		case string:
			out = append(out, core.Issue{Severity: "medium", Description: el})
		}
	}
	return out
}

func stringField(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// intField reads a numeric field, tolerating the float64 that encoding/json
// produces for all JSON numbers. Non-numeric values count as absent.
func intField(m map[string]any, key string) int {
	if f, ok := m[key].(float64); ok {
		return int(f)
	}
	return 0
}
