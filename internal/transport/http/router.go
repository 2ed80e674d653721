package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"satnam/internal/platform/metrics"
	"satnam/internal/platform/middleware"
)

// RouterConfig carries the collaborators the router wires together.
type RouterConfig struct {
	Pay          PayService
	Resolver     ResolveService
	Routes       RouteService
	JWTValidator middleware.JWTValidator
	Logger       *slog.Logger
	Metrics      *metrics.Metrics
	Timeout      time.Duration
}

// NewRouter wires all public endpoints. The pull-payment and resolution
// endpoints are unauthenticated because counterparty wallets call them
// anonymously; route selection requires a verified token subject.
func NewRouter(cfg RouterConfig) http.Handler {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Latency(cfg.Metrics))

	r.Group(func(api chi.Router) {
		api.Use(middleware.ContentTypeJSON)
		if cfg.Pay != nil {
			NewLNURLHandler(cfg.Pay, cfg.Logger, cfg.Metrics).Register(api)
		}
		if cfg.Resolver != nil {
			NewResolveHandler(cfg.Resolver, cfg.Logger, cfg.Metrics).Register(api)
		}
		if cfg.Routes != nil {
			api.Group(func(authed chi.Router) {
				authed.Use(middleware.RequireAuth(cfg.JWTValidator, cfg.Logger))
				NewRoutesHandler(cfg.Routes, cfg.Logger, cfg.Metrics).Register(authed)
			})
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
