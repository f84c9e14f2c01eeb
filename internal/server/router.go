package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sevigo/code-sage/internal/config"
	"github.com/sevigo/code-sage/internal/core"
	"github.com/sevigo/code-sage/internal/server/handler"
	"github.com/sevigo/code-sage/internal/storage"
)

// NewRouter creates and configures a new HTTP router with middleware and API routes.
func NewRouter(cfg *config.Config, reviewer core.Reviewer, store storage.Store, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Configure middleware stack. The request timeout has to cover a full
	// model round trip, not just a database query.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.LLMTimeout + 30*time.Second))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	h := handler.NewReviewHandler(cfg, reviewer, store, logger)

	r.Get("/", h.Root)
	r.Post("/review/upload", h.Upload)
	r.Post("/review/analyze", h.Analyze)
	r.Get("/reviews", h.List)
	r.Get("/reviews/{id}", h.Get)
	r.Delete("/reviews/{id}", h.Delete)
	r.Get("/stats", h.Stats)

	return r
}
