package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sevigo/goframe/llms"
	"github.com/sevigo/goframe/llms/gemini"
	"github.com/sevigo/goframe/llms/ollama"

	"github.com/sevigo/code-sage/internal/config"
	"github.com/sevigo/code-sage/internal/core"
)

const autoDetectHint = "auto-detect"

// Service runs the review pipeline for one piece of code: render the prompt
// for the configured provider, call the model with a hard timeout, and
// normalize whatever comes back. It implements core.Reviewer.
type Service struct {
	cfg     *config.Config
	model   llms.Model
	prompts *PromptManager
	logger  *slog.Logger
}

// NewService creates the review service.
func NewService(cfg *config.Config, model llms.Model, prompts *PromptManager, logger *slog.Logger) *Service {
	return &Service{
		cfg:     cfg,
		model:   model,
		prompts: prompts,
		logger:  logger,
	}
}

// Analyze sends the code to the model and returns a normalized analysis.
// Transport failures and timeouts are returned as errors; unusable model
// output is not an error and yields the fallback record instead.
func (s *Service) Analyze(ctx context.Context, req *core.AnalyzeRequest) (*core.Analysis, error) {
	hint := req.Language
	if hint == "" {
		hint = autoDetectHint
	}

	prompt, err := s.prompts.Render(CodeReviewPrompt, ModelProvider(s.cfg.LLMProvider), PromptData{
		Code:         req.Code,
		Filename:     req.Filename,
		LanguageHint: hint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render review prompt: %w", err)
	}

	s.logger.Debug("requesting code review",
		"filename", req.Filename,
		"provider", s.cfg.LLMProvider,
		"model", s.cfg.ModelName)

	response, err := s.generateWithTimeout(ctx, prompt, s.cfg.LLMTimeout)
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	analysis := NormalizeResponse(response, req.Language)
	if analysis.Language == "" {
		analysis.Language = req.Language
	}
	return analysis, nil
}

// generateWithTimeout wraps model generation with a hard timeout.
func (s *Service) generateWithTimeout(ctx context.Context, prompt string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		resp string
		err  error
	}
	resultCh := make(chan result, 1)

	go func() {
		resp, err := llms.GenerateFromSinglePrompt(ctx, s.model, prompt)
		select {
		case resultCh <- result{resp, err}:
		case <-ctx.Done():
			// Do not block the goroutine if parent timed out/cancelled
		}
	}()

	select {
	case res := <-resultCh:
		return res.resp, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// NewModel creates the LLM client for the configured provider.
func NewModel(ctx context.Context, cfg *config.Config, logger *slog.Logger) (llms.Model, error) {
	switch cfg.LLMProvider {
	case "gemini":
		logger.Info("using Gemini LLM provider", "model", cfg.ModelName)
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set in environment for gemini provider")
		}
		return gemini.New(ctx,
			gemini.WithModel(cfg.ModelName),
			gemini.WithAPIKey(cfg.GeminiAPIKey),
		)

	case "ollama":
		logger.Info("using Ollama LLM provider", "model", cfg.ModelName, "host", cfg.OllamaHost)
		return ollama.New(
			ollama.WithServerURL(cfg.OllamaHost),
			ollama.WithModel(cfg.ModelName),
			ollama.WithHTTPClient(newOllamaHTTPClient()),
			ollama.WithLogger(logger),
		)

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
}

// newOllamaHTTPClient builds an HTTP client tuned for long-running local
// model calls.
func newOllamaHTTPClient() *http.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DisableKeepAlives:   false,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   5 * time.Minute,
	}
}
