package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/barisense-backend/internal/data/store"
	server "github.com/yungbote/barisense-backend/internal/http"
	"github.com/yungbote/barisense-backend/internal/observability"
	"github.com/yungbote/barisense-backend/internal/pkg/logger"
	"github.com/yungbote/barisense-backend/internal/platform/envutil"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Gateway  *store.Gateway
	Metrics  *observability.Metrics
	Repos    Repos
	Services Services
	Server   *server.Server

	shutdownOTel func(context.Context) error
}

// NewLogger honours LOG_MODE (development when unset).
func NewLogger() (*logger.Logger, error) {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

func New(ctx context.Context) (*App, error) {
	log, err := NewLogger()
	if err != nil {
		return nil, err
	}
	log.Info("Loading configuration...")
	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, err
	}
	return NewWithConfig(ctx, log, cfg)
}

func NewWithConfig(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	if strings.EqualFold(cfg.Environment, "production") {
		gin.SetMode(gin.ReleaseMode)
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}
	shutdownOTel := observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.OTelEnabled,
		ServiceName: cfg.AppName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
		Endpoint:    cfg.OTelEndpoint,
		Insecure:    cfg.OTelInsecure,
		SampleRatio: cfg.OTelSampleRatio,
	})

	st, err := resolveStore(log, cfg, metrics)
	if err != nil {
		_ = shutdownOTel(ctx)
		log.Sync()
		return nil, err
	}
	gw := store.NewGateway(st, log)

	reposet := wireRepos(gw, log)
	serviceset := wireServices(gw, log, metrics, reposet)
	handlerset := wireHandlers(log, cfg, serviceset)
	middleware := wireMiddleware(log, cfg)
	srv := server.NewServer(routerConfig(log, cfg, metrics, handlerset, middleware), cfg.Addr())

	return &App{
		Log:          log,
		Cfg:          cfg,
		Gateway:      gw,
		Metrics:      metrics,
		Repos:        reposet,
		Services:     serviceset,
		Server:       srv,
		shutdownOTel: shutdownOTel,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Log.Info("Server listening", "addr", a.Server.Addr(), "store_mode", a.Cfg.StoreMode)
		return a.Server.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		timeout := time.Duration(a.Cfg.ShutdownSeconds) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		a.Log.Info("Shutting down server", "timeout", timeout.String())
		return a.Server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.shutdownOTel != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.shutdownOTel(ctx); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
		a.shutdownOTel = nil
	}
	if a.Gateway != nil {
		if err := a.Gateway.Close(); err != nil && a.Log != nil {
			a.Log.Warn("store close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}

// Serve builds the app from the environment and runs it until ctx is done.
func Serve(ctx context.Context) error {
	a, err := New(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Run(ctx)
}
