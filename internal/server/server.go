package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/jonboulle/clockwork"

	"mlb-scoreboard-service/internal/app/games"
	"mlb-scoreboard-service/internal/app/standings"
	"mlb-scoreboard-service/internal/app/teams"
	"mlb-scoreboard-service/internal/config"
	httpserver "mlb-scoreboard-service/internal/http"
	"mlb-scoreboard-service/internal/http/handlers"
	"mlb-scoreboard-service/internal/live"
	"mlb-scoreboard-service/internal/logging"
	"mlb-scoreboard-service/internal/metrics"
	"mlb-scoreboard-service/internal/poller"
	"mlb-scoreboard-service/internal/store"
	"mlb-scoreboard-service/internal/timeutil"
	"mlb-scoreboard-service/internal/webassets"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.MemoryStore
	gamesService  *games.Service
	hub           *live.Hub
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
	cacheCloser   io.Closer
}

// New constructs a server backed by the live stats API.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithSource(cfg config.Config, logger *slog.Logger, source StatsSource) *Server {
	return newServerWithMetrics(cfg, logger, source, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, source StatsSource, recorder *metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)
	if source == nil {
		source = newProviderFactory(logger, recorder).build(cfg)
	}

	clock := clockwork.NewRealClock()
	loc := timeutil.ResolveLocation(cfg.Timezone)
	memoryStore := store.NewMemoryStore()
	cache, cacheCloser := buildViewCache(cfg, logger, recorder)

	gameSvc := games.NewService(games.Config{
		Source:      source,
		Snapshots:   memoryStore,
		Logger:      logger,
		Metrics:     recorder,
		Concurrency: cfg.EnrichConcurrency,
	})
	standingsSvc := standings.NewService(standings.Config{
		Source:   source,
		Cache:    cache,
		TTL:      cfg.Cache.StandingsTTL,
		Clock:    clock,
		Location: loc,
		Logger:   logger,
	})
	teamSvc := teams.NewService(teams.Config{
		Source:   source,
		Clock:    clock,
		Location: loc,
		Logger:   logger,
	})

	hub := live.NewHub(logger, recorder, clock)
	plr := poller.New(poller.Config{
		Builder:   gameSvc,
		Store:     memoryStore,
		Publisher: hub,
		Logger:    logger,
		Metrics:   recorder,
		Interval:  cfg.PollInterval,
		Clock:     clock,
		Location:  loc,
	})

	handler := handlers.NewHandler(handlers.Config{
		Scores:    gameSvc,
		Standings: standingsSvc,
		Teams:     teamSvc,
		Status:    plr.Status,
		Logger:    logger,
		Clock:     clock,
		Location:  loc,
	})
	routerCfg := httpserver.RouterConfig{
		Handler:     handler,
		Live:        live.NewHandler(hub, gameSvc, logger, cfg.CORSOrigins),
		Logger:      logger,
		Metrics:     recorder,
		CORSOrigins: cfg.CORSOrigins,
	}
	if assets, err := webassets.Load(); err != nil {
		logging.Error(logger, "static shell unavailable", err)
	} else {
		routerCfg.Static = assets.Handler()
		logging.Info(logger, "static shell ready", "cache_name", assets.CacheName())
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpserver.NewRouter(routerCfg),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         memoryStore,
		gamesService:  gameSvc,
		hub:           hub,
		httpServer:    netHTTPServer{srv: srv},
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
		cacheCloser:   cacheCloser,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

// Run starts the hub, poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.hub != nil {
		go s.hub.Run(ctx)
	}
	s.poller.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.cacheCloser != nil {
		if err := s.cacheCloser.Close(); err != nil {
			logging.Warn(s.logger, "cache close failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
