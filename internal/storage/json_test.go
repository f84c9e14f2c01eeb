package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/code-sage/internal/core"
)

func TestSuggestionsRoundTrip(t *testing.T) {
	in := []core.Suggestion{
		{Type: "improvement", Description: "extract helper", Line: 10},
		{Type: "general", Description: "wrapped from string"},
		{Severity: "high", Description: "with snippet", CodeSnippet: "x := 1", ImprovedCode: "x := 2"},
	}

	encoded, err := encodeSuggestions(in)
	require.NoError(t, err)

	out := decodeSuggestions(encoded)
	assert.Equal(t, in, out)
}

func TestIssuesRoundTrip(t *testing.T) {
	in := []core.Issue{
		{Severity: "medium", Description: "x"},
		{Severity: "low", Type: "style", Description: "long line", Line: 120},
	}

	encoded, err := encodeIssues(in)
	require.NoError(t, err)

	out := decodeIssues(encoded)
	assert.Equal(t, in, out)
}

func TestEncodeNilIsEmptyArray(t *testing.T) {
	encoded, err := encodeSuggestions(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", encoded)

	encoded, err = encodeIssues(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", encoded)
}

func TestDecodeCorruptColumn(t *testing.T) {
	// Corrupt or null column data degrades to an empty, non-nil slice.
	for _, data := range []string{"", "not json", "null", `{"description": "object not array"}`} {
		suggestions := decodeSuggestions(data)
		assert.NotNil(t, suggestions, "input %q", data)
		assert.Empty(t, suggestions, "input %q", data)

		issues := decodeIssues(data)
		assert.NotNil(t, issues, "input %q", data)
		assert.Empty(t, issues, "input %q", data)
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-3, 0}, {0, 0}, {5, 5}, {10, 10}, {42, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clampScore(tt.in))
	}
}
