package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// NewRouter mounts the API routes and, when webDir is set, the static
// front-end under /web/.
func NewRouter(h *Handler, webDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		})
		r.Post("/new_game", h.handleNewGame)
		r.Post("/play", h.handlePlay)
		r.Post("/state", h.handleState)
		r.Post("/ai_move", h.handleAiMove)
		r.Delete("/game/{id}", h.handleDeleteGame)
	})

	if webDir != "" {
		mountStatic(r, webDir)
	}
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logrus.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"took":       time.Since(start),
		}).Infof("%s %s", r.Method, r.URL.Path)
	})
}
