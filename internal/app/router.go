// Package app assembles the HTTP router from configuration and handlers.
package app

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lessonbridge/doc-extractor/internal/adapter/httpserver"
	"github.com/lessonbridge/doc-extractor/internal/adapter/observability"
	"github.com/lessonbridge/doc-extractor/internal/config"
)

// ParseOrigins splits a comma-separated origin list into a slice, trimming spaces.
// If the input is empty, returns ["*"].
func ParseOrigins(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// BuildRouter constructs the HTTP handler with all middlewares and routes.
// No request timeout is applied: a slow extraction runs until its client
// disconnects.
func BuildRouter(cfg config.Config, srv *httpserver.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(httpserver.Recoverer())
	r.Use(httpserver.RequestID())
	r.Use(httpserver.TraceMiddleware)
	r.Use(httpserver.AccessLog())
	r.Use(observability.HTTPMetricsMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   ParseOrigins(cfg.CORSAllowOrigins),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", srv.RootHandler())
	r.Get("/health", srv.HealthHandler())
	r.Post("/upload", srv.UploadHandler())
	r.Post("/analyze", srv.AnalyzeHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.NotFound(srv.NotFoundHandler())
	r.MethodNotAllowed(srv.NotFoundHandler())

	return httpserver.SecurityHeaders(r)
}
