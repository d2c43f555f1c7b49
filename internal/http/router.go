package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"mlb-scoreboard-service/internal/http/handlers"
	"mlb-scoreboard-service/internal/http/middleware"
	"mlb-scoreboard-service/internal/metrics"
)

// RouterConfig collects everything mounted on the public router.
type RouterConfig struct {
	Handler     *handlers.Handler
	Live        nethttp.Handler
	Static      nethttp.Handler
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
	CORSOrigins []string
}

// NewRouter registers HTTP routes on a chi router.
func NewRouter(cfg RouterConfig) nethttp.Handler {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.LoggingMiddleware(cfg.Logger, cfg.Metrics))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodHead, nethttp.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	h := cfg.Handler
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Get("/routes/resolve", h.ResolveRoute)

	r.Route("/api", func(r chi.Router) {
		r.Get("/scores", h.Scores)
		r.Get("/games/{gamePk}/box", h.BoxScore)
		r.Get("/standings", h.Standings)
		r.Get("/teams/{teamId}", h.Team)
		r.Get("/teams/{teamId}/logo", h.TeamLogo)
	})

	if cfg.Live != nil {
		r.Method(nethttp.MethodGet, "/ws/scores", cfg.Live)
	}
	if cfg.Static != nil {
		r.Method(nethttp.MethodGet, "/*", cfg.Static)
		r.Method(nethttp.MethodHead, "/*", cfg.Static)
	}
	return r
}
