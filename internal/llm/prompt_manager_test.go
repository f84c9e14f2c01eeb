package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptManager_Render(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	data := PromptData{
		Code:         "def add(a, b):\n    return a + b\n",
		Filename:     "calc.py",
		LanguageHint: "Python",
	}

	prompt, err := pm.Render(CodeReviewPrompt, DefaultProvider, data)
	require.NoError(t, err)

	assert.Contains(t, prompt, data.Code)
	assert.Contains(t, prompt, "Filename: calc.py")
	assert.Contains(t, prompt, "Language: Python")
	assert.Contains(t, prompt, "no markdown")
	assert.Contains(t, prompt, `"review_summary"`)
	assert.Contains(t, prompt, `"suggestions"`)
	assert.Contains(t, prompt, `"issues"`)
}

func TestPromptManager_Deterministic(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	data := PromptData{Code: "print(1)", Filename: "a.py", LanguageHint: "auto-detect"}

	first, err := pm.Render(CodeReviewPrompt, DefaultProvider, data)
	require.NoError(t, err)
	second, err := pm.Render(CodeReviewPrompt, DefaultProvider, data)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPromptManager_ProviderFallback(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	// Unknown providers fall back to the default template.
	fromUnknown, err := pm.Render(CodeReviewPrompt, ModelProvider("ollama"), PromptData{Filename: "x.go"})
	require.NoError(t, err)
	fromDefault, err := pm.Render(CodeReviewPrompt, DefaultProvider, PromptData{Filename: "x.go"})
	require.NoError(t, err)
	assert.Equal(t, fromDefault, fromUnknown)

	// The gemini variant is its own template.
	fromGemini, err := pm.Render(CodeReviewPrompt, ModelProvider("gemini"), PromptData{Filename: "x.go"})
	require.NoError(t, err)
	assert.NotEqual(t, fromDefault, fromGemini)
	assert.Contains(t, fromGemini, "improved_code")
}

func TestPromptManager_UnknownKey(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	_, err = pm.Get(PromptKey("no_such_prompt"), DefaultProvider)
	assert.Error(t, err)
}
