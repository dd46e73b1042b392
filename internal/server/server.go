// Package server serves the dictionary page, its JSON API and the translation service endpoints.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/at-ishikawa/mizodict/internal/app"
	"github.com/at-ishikawa/mizodict/internal/metrics"
	"github.com/at-ishikawa/mizodict/internal/translation"
)

type Server struct {
	app         *app.App
	translation *translation.Service
	logger      *slog.Logger
}

// NewServer creates the HTTP server. The translation endpoints are only mounted when svc is not nil.
func NewServer(a *app.App, svc *translation.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		app:         a,
		translation: svc,
		logger:      logger.With("component", "server"),
	}
}

// Handler builds the router with every route and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(jsonRecoverer(s.logger))
	r.Use(corsMiddleware(s.app.Config.Server.CORS.AllowedOrigins))
	r.Use(metrics.Middleware())

	r.Get("/", s.handleIndex)
	r.Post("/favorites/toggle", s.handleToggleFavoriteForm)
	r.Post("/recent/clear", s.handleClearRecentForm)
	r.Get("/dictionary.json", s.handleDictionary)
	r.Get("/manifest.webmanifest", s.handleManifest)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	if dir := s.app.Config.Server.StaticDirectory; dir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(dir))))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/favorites", s.handleListFavorites)
		r.Post("/favorites/toggle", s.handleToggleFavorite)
		r.Get("/recent", s.handleListRecent)
		r.Delete("/recent", s.handleClearRecent)
		r.Get("/wotd", s.handleWordOfDay)
		r.Get("/wotd/current", s.handleCurrentWordOfDay)
		r.Get("/wotd/history", s.handleWordOfDayHistory)
		r.Get("/connectivity", s.handleConnectivity)

		if s.translation != nil {
			r.Get("/status", s.handleStatus)
			r.Post("/translate-mizo", s.handleTranslate(translation.MizoToEnglish))
			r.Post("/translate-english", s.handleTranslate(translation.EnglishToMizo))
			r.Post("/batch-translate", s.handleBatchTranslate)
			r.Post("/clear-cache", s.handleClearCache)
		}
	})
	return r
}

// errorResponse is the error body of the translation endpoints.
type errorResponse struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					logger.Error("panic recovered",
						"panic", rvr,
						"request_id", middleware.GetReqID(r.Context()),
					)
					writeError(w, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger emits one log line per request and propagates X-Request-ID.
func requestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := middleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("http_request",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"latency", time.Since(start),
				"response_bytes", ww.BytesWritten(),
			)
		})
	}
}

func corsMiddleware(allowedOrigins []string) func(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if allowed[origin] || allowed["*"] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Max-Age", "3600")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
