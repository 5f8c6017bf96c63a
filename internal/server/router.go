package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tmls-media/vidrag/internal/api"
	"github.com/tmls-media/vidrag/internal/api/handlers"
	"github.com/tmls-media/vidrag/internal/api/middleware"
)

type RouterConfig struct {
	VideoHandler    *handlers.VideoHandler
	ChunkHandler    *handlers.ChunkHandler
	AskHandler      *handlers.AskHandler
	PostHandler     *handlers.PostHandler
	WorkflowHandler *handlers.WorkflowHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 5 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/videos", func(r chi.Router) {
		r.Post("/resolve", cfg.VideoHandler.Resolve)

		r.Route("/{id}", func(r chi.Router) {
			r.Post("/chunks", cfg.ChunkHandler.Build)
			r.Get("/chunks/stats", cfg.ChunkHandler.Stats)
			r.Post("/ask", cfg.AskHandler.Ask)
			r.Post("/posts", cfg.PostHandler.SocialPost)
			r.Post("/posts/templates", cfg.PostHandler.TemplatePosts)
			r.Post("/summary", cfg.PostHandler.Summary)
			r.Post("/workflow", cfg.WorkflowHandler.Diagram)
		})
	})

	return r
}
