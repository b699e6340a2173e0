package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nyssa-notify/internal/config"
	"github.com/nyssa-notify/internal/transport/http/handler"
	appmiddleware "github.com/nyssa-notify/internal/transport/http/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// baseRouter installs the shared middleware stack, then extra, then the
// health and metrics routes. chi requires all middleware before any route.
func baseRouter(log *zap.Logger, extra ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(appmiddleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(extra...)

	healthH := handler.NewHealthHandler()
	r.Get("/v1/health-check/{action}", healthH.Ping)
	r.Post("/v1/health-check/{action}", healthH.Ping)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

// NewRelayRouter builds the chat relay router. The chat routes accept every
// method so the handler can answer non-POST requests with 405 itself; CORS
// preflights pass through to it too. ctx bounds the rate limiter's
// background cleanup.
func NewRelayRouter(ctx context.Context, cfg *config.Config, deps *RelayDeps) http.Handler {
	r := baseRouter(deps.Logger, cors.Handler(cors.Options{
		AllowedOrigins:     cfg.AllowedOrigins,
		AllowedMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:     []string{"Accept", "Content-Type"},
		AllowCredentials:   false,
		MaxAge:             300,
		OptionsPassthrough: true,
	}))

	chatRL := appmiddleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, cfg.TrustProxyHeaders)
	chatH := handler.NewChatHandler(deps.Relay, deps.Logger)

	r.With(chatRL.Limit).HandleFunc("/", chatH.Chat)
	r.With(chatRL.Limit).HandleFunc("/chat", chatH.Chat)

	return r
}

// NewDispatcherRouter builds the router used when the dispatcher receives
// change events over HTTP instead of from Lambda.
func NewDispatcherRouter(deps *DispatcherDeps) http.Handler {
	r := baseRouter(deps.Logger)
	eventH := handler.NewEventHandler(deps.Dispatcher, deps.Logger)
	r.Post("/events", eventH.Receive)
	r.Post("/", eventH.Receive)
	return r
}
