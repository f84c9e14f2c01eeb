// Package handler provides HTTP handlers for the code review API.
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sevigo/code-sage/internal/config"
	"github.com/sevigo/code-sage/internal/core"
	"github.com/sevigo/code-sage/internal/language"
	"github.com/sevigo/code-sage/internal/storage"
)

const (
	defaultListLimit = 50
	maxUploadBytes   = 10 << 20 // 10 MiB
	apiVersion       = "1.0.0"
)

// ReviewHandler serves the review pipeline and the query API.
type ReviewHandler struct {
	cfg      *config.Config
	reviewer core.Reviewer
	store    storage.Store
	logger   *slog.Logger
}

// NewReviewHandler creates a new handler with the given configuration,
// reviewer and store.
func NewReviewHandler(cfg *config.Config, reviewer core.Reviewer, store storage.Store, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		cfg:      cfg,
		reviewer: reviewer,
		store:    store,
		logger:   logger,
	}
}

// Root lists the API's capabilities.
func (h *ReviewHandler) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Code Review Assistant API",
		"version": apiVersion,
		"endpoints": map[string]string{
			"POST /review/upload":  "Upload code file for review",
			"POST /review/analyze": "Analyze code from request body",
			"GET /reviews":         "List all reviews",
			"GET /reviews/{id}":    "Get specific review",
			"DELETE /reviews/{id}": "Delete specific review",
			"GET /stats":           "Aggregate review statistics",
		},
	})
}

// Upload accepts a multipart code file, runs the review pipeline, and returns
// the persisted record.
func (h *ReviewHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing 'file' field")
		return
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	filename := filepath.Base(header.Filename)
	if filename == "" || filename == "." {
		writeError(w, http.StatusBadRequest, "filename must not be empty")
		return
	}

	review, err := h.runPipeline(r.Context(), &core.AnalyzeRequest{
		Code:     string(content),
		Filename: filename,
		Language: language.DetectFromFilename(filename),
	})
	if err != nil {
		h.respondPipelineError(w, err)
		return
	}

	h.saveUploadCopy(review.ID, filename, content)

	writeJSON(w, http.StatusOK, review)
}

// Analyze runs the review pipeline on code supplied in the request body.
func (h *ReviewHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req core.AnalyzeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Filename == "" {
		writeError(w, http.StatusBadRequest, "filename must not be empty")
		return
	}
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "code must not be empty")
		return
	}

	if req.Language == "" {
		if detected := language.DetectFromFilename(req.Filename); detected != language.Unknown {
			req.Language = detected
		}
	}

	review, err := h.runPipeline(r.Context(), &req)
	if err != nil {
		h.respondPipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, review)
}

// List returns stored reviews, most recent first.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultListLimit)
	if err != nil || limit < 0 {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		writeError(w, http.StatusBadRequest, "invalid offset")
		return
	}

	reviews, err := h.store.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list reviews", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list reviews")
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

// Get returns a single review by id.
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid review id")
		return
	}

	review, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrReviewNotFound) {
			writeError(w, http.StatusNotFound, "review not found")
			return
		}
		h.logger.Error("failed to get review", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get review")
		return
	}
	writeJSON(w, http.StatusOK, review)
}

// Delete removes a review by id.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid review id")
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrReviewNotFound) {
			writeError(w, http.StatusNotFound, "review not found")
			return
		}
		h.logger.Error("failed to delete review", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete review")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Stats returns aggregate counts and average scores.
func (h *ReviewHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Aggregate(r.Context())
	if err != nil {
		h.logger.Error("failed to aggregate stats", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to aggregate stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// runPipeline executes one synchronous analysis: optional cache lookup, model
// call, normalization, persistence, and read-back of the stored record.
func (h *ReviewHandler) runPipeline(ctx context.Context, req *core.AnalyzeRequest) (*core.Review, error) {
	hash := core.Fingerprint(req.Code)

	if h.cfg.CacheByHash {
		cached, err := h.store.GetLatestByHash(ctx, hash)
		if err == nil {
			h.logger.Info("returning cached review", "file_hash", hash, "id", cached.ID)
			return cached, nil
		}
		if !errors.Is(err, core.ErrReviewNotFound) {
			return nil, fmt.Errorf("cache lookup failed: %w", err)
		}
	}

	analysis, err := h.reviewer.Analyze(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	rec := &core.Review{
		Filename:         req.Filename,
		FileHash:         hash,
		Language:         analysis.Language,
		ReviewSummary:    analysis.ReviewSummary,
		ReadabilityScore: analysis.ReadabilityScore,
		ModularityScore:  analysis.ModularityScore,
		BugRiskScore:     analysis.BugRiskScore,
		Suggestions:      analysis.Suggestions,
		Issues:           analysis.Issues,
	}

	id, err := h.store.Insert(ctx, rec, req.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to persist review: %w", err)
	}

	review, err := h.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read back review %d: %w", id, err)
	}

	h.logger.Info("review stored",
		"id", review.ID,
		"filename", review.Filename,
		"language", review.Language,
		"suggestions", len(review.Suggestions),
		"issues", len(review.Issues))
	return review, nil
}

// respondPipelineError maps pipeline failures to status codes. Everything
// after a successful model call is a server-side failure; the model boundary
// itself surfaces as a bad gateway.
func (h *ReviewHandler) respondPipelineError(w http.ResponseWriter, err error) {
	h.logger.Error("review pipeline failed", "error", err)
	if errors.Is(err, context.DeadlineExceeded) {
		writeError(w, http.StatusGatewayTimeout, "analysis timed out")
		return
	}
	writeError(w, http.StatusBadGateway, "analysis failed")
}

// saveUploadCopy writes the uploaded code next to the database as a side
// artifact. Failures are logged, not surfaced: the review is already stored.
func (h *ReviewHandler) saveUploadCopy(id int64, filename string, content []byte) {
	if h.cfg.UploadDir == "" {
		return
	}
	if err := os.MkdirAll(h.cfg.UploadDir, 0750); err != nil {
		h.logger.Warn("failed to create upload dir", "dir", h.cfg.UploadDir, "error", err)
		return
	}
	path := filepath.Join(h.cfg.UploadDir, fmt.Sprintf("%d_%s", id, filename))
	if err := os.WriteFile(path, content, 0600); err != nil {
		h.logger.Warn("failed to save upload copy", "path", path, "error", err)
	}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
