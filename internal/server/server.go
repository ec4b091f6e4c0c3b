package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/matches-service/internal/config"
	httpserver "github.com/preston-bernstein/matches-service/internal/http"
	"github.com/preston-bernstein/matches-service/internal/http/handlers"
	"github.com/preston-bernstein/matches-service/internal/http/middleware"
	"github.com/preston-bernstein/matches-service/internal/http/stream"
	"github.com/preston-bernstein/matches-service/internal/local"
	"github.com/preston-bernstein/matches-service/internal/logging"
	"github.com/preston-bernstein/matches-service/internal/matchstore"
	"github.com/preston-bernstein/matches-service/internal/metrics"
	"github.com/preston-bernstein/matches-service/internal/providers"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *matchstore.Store
	local         local.Store
	hub           *stream.Hub
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
	unsubscribe   func()
}

// New constructs a server with the configured provider and local store.
// The initial load starts immediately and is bound to ctx.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithProvider(ctx, cfg, logger, nil)
}

func newServerWithProvider(ctx context.Context, cfg config.Config, logger *slog.Logger, provider providers.MatchProvider) *Server {
	return newServerWithDeps(ctx, cfg, logger, provider, nil, nil)
}

// newServerWithDeps lets tests inject the provider, local store and recorder.
func newServerWithDeps(ctx context.Context, cfg config.Config, logger *slog.Logger, provider providers.MatchProvider, saved local.Store, recorder *metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	if provider == nil {
		provider = factory.build(cfg)
	} else {
		provider = factory.wrap(cfg, provider)
	}
	if saved == nil {
		saved = buildLocalStore(cfg.Local, logger)
	}

	store := matchstore.Open(ctx, provider, saved,
		matchstore.WithLogger(logger),
		matchstore.WithRecorder(recorder),
		matchstore.WithMirrorLocal(cfg.MirrorLocal),
	)
	hub := stream.NewHub(cfg.Stream.MaxConnections, logger, recorder)
	unsubscribe := store.Subscribe(hub.Publish)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         store,
		local:         saved,
		hub:           hub,
		httpServer:    buildHTTPServer(cfg, store, hub, logger, recorder),
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
		unsubscribe:   unsubscribe,
	}
}

func buildHTTPServer(cfg config.Config, store *matchstore.Store, hub *stream.Hub, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	ready := func() bool {
		select {
		case <-store.Done():
			return true
		default:
			return false
		}
	}

	handler := handlers.NewHandler(store, logger, ready)
	admin := handlers.NewAdminHandler(store, cfg.AdminToken, logger)
	router := httpserver.NewRouter(handler, admin, hub.Handler(store.State))
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	return newNetHTTPServer(":"+cfg.Port, wrapped)
}

// Run starts the HTTP servers, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)

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

	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	if s.hub != nil {
		s.hub.Close()
	}

	var g errgroup.Group
	g.Go(func() error {
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			logging.Error(s.logger, "graceful shutdown failed", err)
			return err
		}
		return nil
	})
	if s.metricsServer != nil {
		g.Go(func() error {
			if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
				logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
				return err
			}
			return nil
		})
	}
	_ = g.Wait()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	s.waitForLoad(shutdownCtx)
	if closer, ok := s.local.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logging.Warn(s.logger, "local store close failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

// waitForLoad holds shutdown until the background load is done with the local store.
func (s *Server) waitForLoad(ctx context.Context) {
	if s.store == nil {
		return
	}
	select {
	case <-s.store.Done():
	case <-ctx.Done():
		logging.Warn(s.logger, "initial load still running at shutdown", "error", ctx.Err())
	}
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
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}
	if rec == nil {
		rec = metrics.NewRecorder()
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
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
