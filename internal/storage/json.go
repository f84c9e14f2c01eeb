package storage

import (
	"encoding/json"
	"log/slog"

	"github.com/sevigo/code-sage/internal/core"
)

// Suggestions and issues are serialized into JSON text columns. Encoding
// never produces null: a nil slice is stored as the empty array so the
// round-trip always yields a list-shaped value. Decoding tolerates corrupt
// column data by degrading to an empty slice, mirroring the tolerance of the
// ingestion side.

func encodeSuggestions(suggestions []core.Suggestion) (string, error) {
	if suggestions == nil {
		suggestions = []core.Suggestion{}
	}
	data, err := json.Marshal(suggestions)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func encodeIssues(issues []core.Issue) (string, error) {
	if issues == nil {
		issues = []core.Issue{}
	}
	data, err := json.Marshal(issues)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeSuggestions(data string) []core.Suggestion {
	suggestions := []core.Suggestion{}
	if err := json.Unmarshal([]byte(data), &suggestions); err != nil {
		slog.Warn("corrupt suggestions column, returning empty list", "error", err)
		return []core.Suggestion{}
	}
	if suggestions == nil {
		return []core.Suggestion{}
	}
	return suggestions
}

func decodeIssues(data string) []core.Issue {
	issues := []core.Issue{}
	if err := json.Unmarshal([]byte(data), &issues); err != nil {
		slog.Warn("corrupt issues column, returning empty list", "error", err)
		return []core.Issue{}
	}
	if issues == nil {
		return []core.Issue{}
	}
	return issues
}

func (r *reviewRow) toReview() *core.Review {
	return &core.Review{
		ID:               r.ID,
		Filename:         r.Filename,
		FileHash:         r.FileHash,
		Language:         r.Language,
		LinesOfCode:      r.LinesOfCode,
		ReviewSummary:    r.ReviewSummary,
		ReadabilityScore: r.ReadabilityScore,
		ModularityScore:  r.ModularityScore,
		BugRiskScore:     r.BugRiskScore,
		Suggestions:      decodeSuggestions(r.Suggestions),
		Issues:           decodeIssues(r.Issues),
		CreatedAt:        r.CreatedAt,
	}
}
