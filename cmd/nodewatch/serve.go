package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/nodewatchhq/nodewatch/internal/channel/telegram"
	"github.com/nodewatchhq/nodewatch/internal/command"
	"github.com/nodewatchhq/nodewatch/internal/config"
	"github.com/nodewatchhq/nodewatch/internal/handlers"
	"github.com/nodewatchhq/nodewatch/internal/healthcheck"
	"github.com/nodewatchhq/nodewatch/internal/logger"
	"github.com/nodewatchhq/nodewatch/internal/metrics"
	"github.com/nodewatchhq/nodewatch/internal/node"
	"github.com/nodewatchhq/nodewatch/internal/server"
	"github.com/nodewatchhq/nodewatch/internal/version"
)

func runServe() {
	fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,
			metrics.New,
			provideRegistry,
			provideProber,
			provideOrchestrator,
			provideRouter,
			provideBot,
			provideServerHandler(handlers.NewStatusHandler),
			provideServerHandler(provideHealthchecksHandler),
			provideServerHandler(handlers.NewMetricsHandler),
			provideServer,
		),
		fx.Invoke(
			startBot,
			startServer,
		),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
		}),
	).Run()
}

func provideServerHandler(fn any) any {
	return fx.Annotate(
		fn,
		fx.As(new(server.Handler)),
		fx.ResultTags(`group:"server_handlers"`),
	)
}

func provideConfig() (config.Config, error) {
	cfgPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideRegistry(cfg config.Config) *node.Registry {
	nodes := make([]node.Node, 0, len(cfg.Nodes))
	for _, nc := range cfg.Nodes {
		nodes = append(nodes, node.New(nc.Host, nc.Port))
	}
	return node.NewRegistry(nodes)
}

func provideProber(log *slog.Logger, cfg config.Config) (*healthcheck.HTTPProber, error) {
	connect, request, err := cfg.Probe.Timeouts()
	if err != nil {
		return nil, err
	}
	return healthcheck.NewHTTPProber(log, healthcheck.ProbeConfig{
		Path:           cfg.Probe.Path,
		ConnectTimeout: connect,
		RequestTimeout: request,
	}), nil
}

func provideOrchestrator(log *slog.Logger, registry *node.Registry, prober *healthcheck.HTTPProber, m *metrics.Metrics, cfg config.Config) *healthcheck.Orchestrator {
	return healthcheck.NewOrchestrator(log, registry, prober, m, cfg.Probe.MaxInFlight)
}

func provideRouter(log *slog.Logger, orchestrator *healthcheck.Orchestrator, m *metrics.Metrics) *command.Router {
	return command.NewRouter(log, orchestrator, m)
}

func provideBot(log *slog.Logger, cfg config.Config, router *command.Router) (*telegram.Bot, error) {
	return telegram.NewBot(log, cfg.Telegram.BotToken, router.Handle)
}

func provideHealthchecksHandler(log *slog.Logger, orchestrator *healthcheck.Orchestrator) *handlers.HealthchecksHandler {
	return handlers.NewHealthchecksHandler(log, orchestrator)
}

type serverParams struct {
	fx.In
	Logger         *slog.Logger
	Config         config.Config
	ServerHandlers []server.Handler `group:"server_handlers"`
}

func provideServer(params serverParams) *server.Server {
	return server.New(params.Logger, params.Config.Server.Addr, params.ServerHandlers...)
}

func startBot(lc fx.Lifecycle, bot *telegram.Bot) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error { return bot.Start(ctx) },
		OnStop: func(stopCtx context.Context) error {
			cancel()
			return bot.Stop(stopCtx)
		},
	})
}

func startServer(lc fx.Lifecycle, logger *slog.Logger, srv *server.Server, shutdowner fx.Shutdowner) {
	fmt.Printf("Starting nodewatch %s\n", version.GetInfo())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Stop(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server stop: %w", err)
			}
			return nil
		},
	})
}
