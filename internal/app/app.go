package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.etcd.io/bbolt"

	"github.com/tiffanyadora/storefront/internal/cart"
	"github.com/tiffanyadora/storefront/internal/catalog"
	"github.com/tiffanyadora/storefront/internal/config"
	"github.com/tiffanyadora/storefront/internal/event"
	"github.com/tiffanyadora/storefront/internal/favorites"
	handler "github.com/tiffanyadora/storefront/internal/handler/http"
	"github.com/tiffanyadora/storefront/internal/notify"
	"github.com/tiffanyadora/storefront/internal/search"
	"github.com/tiffanyadora/storefront/internal/storeapi"
	"github.com/tiffanyadora/storefront/pkg/health"
	"github.com/tiffanyadora/storefront/pkg/httpclient"
	pkgkafka "github.com/tiffanyadora/storefront/pkg/kafka"
	"github.com/tiffanyadora/storefront/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	db             *bbolt.DB
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRate:     cfg.TracingSampleRate,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Open the local bolt database for favorites and recent searches.
	db, err := bbolt.Open(cfg.BoltPath, 0o600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt database %q: %w", cfg.BoltPath, err)
	}
	logger.Info("bolt database opened", slog.String("path", cfg.BoltPath))

	favStore, err := favorites.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init favorites store: %w", err)
	}
	recentStore, err := search.NewRecentStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init recent search store: %w", err)
	}

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	eventProducer := event.NewProducer(producer, logger)

	// HTTP client for the store API, wrapped in a circuit breaker.
	baseClient := httpclient.New(httpclient.Config{
		Timeout:         cfg.StoreAPITimeout,
		MaxRetries:      cfg.StoreAPIRetries,
		RetryWaitMin:    500 * time.Millisecond,
		RetryWaitMax:    5 * time.Second,
		MaxConnsPerHost: 100,
	})
	cbCfg := httpclient.CircuitBreakerConfig{
		Name:         "store-api",
		Timeout:      cfg.BreakerTimeout,
		FailureRatio: cfg.BreakerFailRatio,
		MinRequests:  cfg.BreakerMinReqs,
	}
	cbClient := httpclient.NewCircuitBreakerClient(baseClient, cbCfg, logger)
	logger.Info("circuit breaker initialized",
		slog.String("name", cbCfg.Name),
		slog.Duration("timeout", cbCfg.Timeout),
		slog.Uint64("min_requests", uint64(cbCfg.MinRequests)),
	)

	storeClient := storeapi.NewClient(cfg.StoreAPIURL, cbClient, logger)

	// Build the dependency graph.
	center := notify.NewCenter(cfg.NotificationTTL)
	registry := cart.NewRegistry(storeClient, center, eventProducer, logger)
	catalogService := catalog.NewService(storeClient, logger)
	importer := catalog.NewImporter(catalogService, logger)
	searchService := search.NewService(
		storeClient,
		recentStore,
		eventProducer,
		search.NewDebouncer(cfg.SearchDebounce),
		logger,
	)

	// Health checks. The storefront is useless without the store API; the
	// local extras degrade gracefully.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("store-api", storeClient.Ping)
	healthHandler.RegisterNonCritical("bolt", favStore.Ping)
	healthHandler.RegisterNonCritical("kafka", producer.Ping)

	router := handler.NewRouter(handler.RouterDeps{
		Sessions:           registry,
		Catalog:            catalogService,
		Importer:           importer,
		Search:             searchService,
		Favorites:          favStore,
		Notifications:      center,
		Health:             healthHandler,
		Logger:             logger,
		Environment:        cfg.Environment,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		PprofAllowedCIDRs:  cfg.PprofAllowedCIDRs,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		db:             db,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in the correct order:
// 1. HTTP server (drain in-flight requests)
// 2. Tracer (flush pending spans from drained requests)
// 3. Kafka producer
// 4. Bolt database
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	// 1. Drain in-flight HTTP requests (5s budget).
	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// 2. Flush pending spans after HTTP drain so in-flight request spans are captured.
	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	// 3. Close Kafka producer.
	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// 4. Close the bolt database.
	if err := a.db.Close(); err != nil {
		a.logger.Error("bolt close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
