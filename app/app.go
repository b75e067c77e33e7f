// Package app assembles the bot: config, database, event bus, modules,
// poller, HTTP server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/shepherdjay/gwg-bot/app/eventbus"
	"github.com/shepherdjay/gwg-bot/app/modules/leaderboard"
	"github.com/shepherdjay/gwg-bot/app/modules/notify"
	"github.com/shepherdjay/gwg-bot/app/modules/round"
	"github.com/shepherdjay/gwg-bot/config"
	"github.com/shepherdjay/gwg-bot/db/bundb"
	"github.com/shepherdjay/gwg-bot/internal/observability"
	"github.com/shepherdjay/gwg-bot/internal/schedule"
	"github.com/shepherdjay/gwg-bot/internal/sheets"
	"github.com/shepherdjay/gwg-bot/internal/social"
)

// Options selects the run mode.
type Options struct {
	// InMemory swaps NATS for the in-process bus. Used by --test runs.
	InMemory bool
	Debug    bool
}

// App holds the assembled application.
type App struct {
	Cfg    *config.Config
	Logger *slog.Logger

	Metrics *observability.Metrics

	RoundModule       *round.Module
	LeaderboardModule *leaderboard.Module
	NotifyModule      *notify.Module

	Poller *Poller

	db         *bundb.DBService
	bus        eventbus.EventBus
	router     *message.Router
	redis      *redis.Client
	httpServer *http.Server
}

// NewApp wires every component together. Nothing starts running until Run.
func NewApp(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	logger := observability.NewLogger("gwg-bot", opts.Debug)
	metrics := observability.NewMetrics()
	tracer := observability.Tracer("gwg-bot")

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("resolve timezone: %w", err)
	}

	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres, metrics)
	if err != nil {
		return nil, fmt.Errorf("initialize database service: %w", err)
	}

	var bus eventbus.EventBus
	if opts.InMemory {
		bus = eventbus.NewInMemoryEventBus(logger)
	} else {
		bus, err = eventbus.NewNATSEventBus(ctx, cfg.NATS.URL, logger)
		if err != nil {
			return nil, fmt.Errorf("initialize event bus: %w", err)
		}
	}

	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("create router: %w", err)
	}
	router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 5 * time.Second,
			Logger:          watermill.NewSlogLogger(logger),
		}.Middleware,
		middleware.Recoverer,
	)

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	sheetsClient, err := sheets.NewClient(ctx, cfg.Sheets, loc, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize sheets client: %w", err)
	}
	scheduleClient := schedule.NewClient(cfg.Schedule, redisClient, loc, logger, metrics)
	socialClient, err := social.NewClient(ctx, cfg.Social, logger, metrics)
	if err != nil {
		return nil, fmt.Errorf("initialize social client: %w", err)
	}

	roundModule := round.NewModule(
		dbService.GetDB(), bus, router, sheetsClient, scheduleClient,
		logger, metrics, tracer,
	)
	leaderboardModule := leaderboard.NewModule(
		dbService.GetDB(), bus, router, sheetsClient,
		logger, metrics, tracer, cfg.App.Awards,
	)
	notifyModule := notify.NewModule(
		bus, router, socialClient, scheduleClient, sheetsClient, cfg.Notify,
		logger, metrics,
	)

	poller := NewPoller(
		roundModule.Service, notifyModule.Service, bus,
		cfg.App.PollInterval, loc, logger,
	)

	app := &App{
		Cfg:               cfg,
		Logger:            logger,
		Metrics:           metrics,
		RoundModule:       roundModule,
		LeaderboardModule: leaderboardModule,
		NotifyModule:      notifyModule,
		Poller:            poller,
		db:                dbService,
		bus:               bus,
		router:            router,
		redis:             redisClient,
	}
	app.httpServer = &http.Server{
		Addr:    cfg.App.HTTPAddress,
		Handler: app.httpHandler(),
	}
	return app, nil
}

// Run starts the router, the poller and the HTTP server, and blocks until
// the context is cancelled or any of them fails.
func (app *App) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.router.Run(gCtx)
	})

	g.Go(func() error {
		// Handlers must be attached before the first poll publishes.
		select {
		case <-app.router.Running():
		case <-gCtx.Done():
			return gCtx.Err()
		}
		return app.Poller.Run(gCtx)
	})

	g.Go(func() error {
		if err := app.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.httpServer.Shutdown(shutdownCtx)
	})

	app.Logger.InfoContext(ctx, "application started",
		slog.String("http_address", app.Cfg.App.HTTPAddress),
		slog.Duration("poll_interval", app.Cfg.App.PollInterval))

	err := g.Wait()
	if err == context.Canceled {
		err = nil
	}
	app.close()
	return err
}

// RunOnce performs a single poll pass and exits. Handlers still need the
// router running so the published events get consumed.
func (app *App) RunOnce(ctx context.Context) error {
	routerCtx, stopRouter := context.WithCancel(ctx)
	defer stopRouter()

	routerDone := make(chan error, 1)
	go func() {
		routerDone <- app.router.Run(routerCtx)
	}()

	select {
	case <-app.router.Running():
	case err := <-routerDone:
		return fmt.Errorf("router stopped before poll: %w", err)
	case <-ctx.Done():
		return ctx.Err()
	}

	err := app.Poller.RunOnce(ctx)

	// Give in-flight handlers a moment to drain before tearing down.
	time.Sleep(2 * time.Second)
	stopRouter()
	<-routerDone

	app.close()
	return err
}

func (app *App) close() {
	if err := app.bus.Close(); err != nil {
		app.Logger.Error("failed to close event bus", slog.Any("error", err))
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.Logger.Error("failed to close redis client", slog.Any("error", err))
		}
	}
	if err := app.db.GetDB().Close(); err != nil {
		app.Logger.Error("failed to close database", slog.Any("error", err))
	}
}
