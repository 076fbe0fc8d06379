package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/medibook/appointment-registry/internal/document"
	"github.com/medibook/appointment-registry/internal/observability/metrics"
	"github.com/medibook/appointment-registry/internal/registry"
)

type RouterConfig struct {
	Registry       *registry.Registry
	Renderer       document.Renderer
	Metrics        *metrics.BookingMetrics
	MetricsHandler http.Handler
	PgPool         *pgxpool.Pool
	Redis          *redis.Client
	Env            string
	Version        string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(MetricsMiddleware(cfg.Metrics))

	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Post("/appointments", bookAppointmentHandler(cfg.Registry, cfg.Renderer, cfg.Metrics))
	r.Get("/appointments", listAppointmentsHandler(cfg.Registry))
	r.Get("/appointments/{referenceID}", getAppointmentHandler(cfg.Registry))

	return r
}
