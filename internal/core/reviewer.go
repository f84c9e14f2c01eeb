package core

import "context"

// AnalyzeRequest carries one piece of code through the review pipeline.
// Language is a hint only; the model may override it and the normalizer
// falls back to it when the model's output is unusable.
type AnalyzeRequest struct {
	Code     string `json:"code"`
	Filename string `json:"filename"`
	Language string `json:"language,omitempty"`
}

// Reviewer produces a normalized analysis for a piece of code. Implementations
// own the prompt construction and the model call; the returned Analysis is
// always schema-valid, even when the model's output could not be parsed.
// An error indicates a boundary failure (transport, timeout), never a
// malformed model reply.
type Reviewer interface {
	Analyze(ctx context.Context, req *AnalyzeRequest) (*Analysis, error)
}
