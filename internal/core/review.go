// Package core defines the essential interfaces and data structures that form the
// backbone of the application. These components are designed to be abstract,
// allowing for flexible and decoupled implementations of the application's logic.
package core

import (
	"errors"
	"time"
)

// ErrReviewNotFound is returned by the store when no review exists for a given id
// or fingerprint. Handlers translate it into a 404.
var ErrReviewNotFound = errors.New("review not found")

// Suggestion is a single improvement proposal extracted from the model's reply.
// The field set is a superset of what the supported prompt variants produce;
// only Description is guaranteed after normalization.
type Suggestion struct {
	Type         string `json:"type,omitempty"`
	Severity     string `json:"severity,omitempty"`
	Description  string `json:"description"`
	Line         int    `json:"line,omitempty"`
	CodeSnippet  string `json:"code_snippet,omitempty"`
	ImprovedCode string `json:"improved_code,omitempty"`
}

// Issue is a single defect or risk reported by the model. Severity defaults to
// "medium" when the model returned a bare string instead of an object.
type Issue struct {
	Severity    string `json:"severity,omitempty"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description"`
	Line        int    `json:"line,omitempty"`
}

// Analysis is the normalized result of one model call, before persistence.
// Suggestions and Issues are never nil.
type Analysis struct {
	Language         string       `json:"language"`
	ReviewSummary    string       `json:"review_summary"`
	ReadabilityScore int          `json:"readability_score"`
	ModularityScore  int          `json:"modularity_score"`
	BugRiskScore     int          `json:"bug_risk_score"`
	Suggestions      []Suggestion `json:"suggestions"`
	Issues           []Issue      `json:"issues"`
}

// Review is a single persisted code review. Reviews are immutable once stored;
// the only lifecycle operations are create, read, and delete.
type Review struct {
	ID               int64        `json:"id" db:"id"`
	Filename         string       `json:"filename" db:"filename"`
	FileHash         string       `json:"file_hash" db:"file_hash"`
	Language         string       `json:"language" db:"language"`
	LinesOfCode      int          `json:"lines_of_code" db:"lines_of_code"`
	ReviewSummary    string       `json:"review_summary" db:"review_summary"`
	ReadabilityScore int          `json:"readability_score" db:"readability_score"`
	ModularityScore  int          `json:"modularity_score" db:"modularity_score"`
	BugRiskScore     int          `json:"bug_risk_score" db:"bug_risk_score"`
	Suggestions      []Suggestion `json:"suggestions"`
	Issues           []Issue      `json:"issues"`
	CreatedAt        time.Time    `json:"created_at" db:"created_at"`
}

// Stats holds the aggregate view served by the stats endpoint.
type Stats struct {
	TotalReviews  int64            `json:"total_reviews"`
	AverageScores AverageScores    `json:"average_scores"`
	Languages     map[string]int64 `json:"languages"`
}

// AverageScores are rounded to one decimal place; zero on an empty store.
type AverageScores struct {
	Readability float64 `json:"readability"`
	Modularity  float64 `json:"modularity"`
	BugRisk     float64 `json:"bug_risk"`
}
