package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/aryan0dhankhar/workforce/internal/domain"
	"github.com/aryan0dhankhar/workforce/internal/events"
	"github.com/aryan0dhankhar/workforce/internal/featureflags"
	"github.com/aryan0dhankhar/workforce/internal/handler"
	"github.com/aryan0dhankhar/workforce/internal/infrastructure/logger"
	"github.com/aryan0dhankhar/workforce/internal/infrastructure/redis"
	"github.com/aryan0dhankhar/workforce/internal/observability/metrics"
	"github.com/aryan0dhankhar/workforce/internal/observability/tracing"
	"github.com/aryan0dhankhar/workforce/internal/reliability/retry"
	"github.com/aryan0dhankhar/workforce/internal/repository"
	"github.com/aryan0dhankhar/workforce/internal/security/audit"
	"github.com/aryan0dhankhar/workforce/internal/security/middleware"
	"github.com/aryan0dhankhar/workforce/internal/security/ratelimit"
	"github.com/aryan0dhankhar/workforce/internal/service"
	"github.com/aryan0dhankhar/workforce/internal/worker"
	"github.com/aryan0dhankhar/workforce/pkg/config"
	"github.com/aryan0dhankhar/workforce/pkg/database"
)

const serviceName = "workforce"

// store is the durable backend selected by configuration
type store struct {
	driver    string
	employees domain.EmployeeRepository
	tasks     domain.TaskRepository
	pinger    handler.Pinger
	close     func() error
}

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize structured logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("starting workforce server",
		slog.String("environment", cfg.Environment),
		slog.String("store", cfg.StoreDriver),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Tracing
	shutdownTracing, err := tracing.Init(ctx, log, cfg.OTLPEndpoint, serviceName, cfg.Environment)
	if err != nil {
		log.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Durable store
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open store", slog.String("driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer st.close()

	deps := []handler.Dependency{{Name: st.driver, Pinger: st.pinger}}

	// 5. Employee summary cache
	var summaries repository.SummaryCache
	if cfg.RedisURL != "" {
		redisClient, err := retry.Do(ctx, retry.StartupConfig(), log, "redis connect", func(ctx context.Context) (*redis.Client, error) {
			return redis.NewClient(ctx, cfg.RedisURL, log)
		})
		if err != nil {
			log.Error("failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisClient.Close()
		summaries = repository.NewRedisSummaryCache(redisClient, cfg.SummaryCacheTTL, log)
		deps = append(deps, handler.Dependency{Name: "redis", Pinger: redisClient, Optional: true})
	} else {
		local := repository.NewLocalSummaryCache(cfg.SummaryCacheTTL)
		go worker.NewSweepWorker("summary-cache", local, log, cfg.SummaryCacheTTL).Start(ctx)
		summaries = local
	}
	lookup := repository.NewCachedEmployeeLookup(st.employees, summaries, log)

	// 6. Change feed and audit trail
	hub := events.NewHub(log)
	auditEvents, unsubscribe := hub.Subscribe(256)
	defer unsubscribe()
	go audit.NewLogger(log).Run(ctx, auditEvents)

	// 7. Routes and middleware
	rateLimiter := ratelimit.NewLimiter(cfg.RateLimitPerMinute, time.Minute)
	defer rateLimiter.Stop()
	rootHandler := newRouter(cfg, log, st, lookup, hub, rateLimiter, deps)

	// 8. Start HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           rootHandler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("server starting",
		slog.Int("port", cfg.ServerPort),
		slog.Int("rate_limit", cfg.RateLimitPerMinute),
		slog.String("rate_limit_window", "1m"),
		slog.Duration("request_timeout", cfg.RequestTimeout),
	)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case <-sigChan:
		log.Info("shutdown signal received")
	case err := <-serverErr:
		log.Error("server error", slog.String("error", err.Error()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.String("error", err.Error()))
	}
	cancel()
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown error", slog.String("error", err.Error()))
	}
	log.Info("server stopped")
}

// newRouter builds the services over st and mounts the API, operational
// endpoints and change feed behind the middleware chain
func newRouter(
	cfg *config.Config,
	log *slog.Logger,
	st *store,
	lookup domain.EmployeeLookup,
	hub *events.Hub,
	limiter *ratelimit.Limiter,
	deps []handler.Dependency,
) http.Handler {
	employeeService := service.NewEmployeeService(st.employees, hub, log)
	taskService := service.NewTaskService(st.tasks, st.employees, service.NewEnricher(lookup, log), hub, log)

	mux := http.NewServeMux()
	handler.NewHandlers(employeeService, taskService, log).
		Register(mux, featureflags.Enabled(featureflags.LegacyRoutes, cfg.IsDevelopment()))

	health := handler.NewHealthHandler(log, deps...)
	mux.HandleFunc("GET /healthz", health.Health)
	mux.HandleFunc("GET /readyz", health.Ready)
	mux.Handle("GET /metrics", promhttp.Handler())
	if featureflags.Enabled(featureflags.ChangeFeed, true) {
		mux.Handle("GET /ws/events", handler.NewEventsHandler(hub, log, cfg.CORSAllowedOrigins))
	}

	// request ID -> recover -> CORS -> sanitize -> rate limit -> content type -> timeout -> metrics
	rootHandler := middleware.Chain(
		metrics.HTTPMetricsMiddleware(mux),
		middleware.RequestLogger(log),
		middleware.Recover(log),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.SanitizeInputs(log),
		middleware.RateLimit(limiter, log),
		middleware.ValidateJSONContentType(log),
		middleware.Timeout(cfg.RequestTimeout),
	)
	return otelhttp.NewHandler(rootHandler, serviceName)
}

// openStore connects to the configured backend, retrying while it comes up,
// and ensures its schema or indexes exist
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (*store, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := retry.Do(ctx, retry.StartupConfig(), log, "postgres connect", func(ctx context.Context) (*database.ConnectionPool, error) {
			dbCfg := database.DefaultConfig()
			dbCfg.URL = cfg.DatabaseURL
			dbCfg.MaxOpenConns = cfg.DBMaxOpenConns
			return database.NewConnectionPool(ctx, dbCfg, log)
		})
		if err != nil {
			return nil, err
		}
		if err := pool.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return &store{
			driver:    config.StorePostgres,
			employees: repository.NewPostgresEmployeeRepository(pool.GetDB(), log),
			tasks:     repository.NewPostgresTaskRepository(pool.GetDB(), log),
			pinger:    pool,
			close:     pool.Close,
		}, nil

	case config.StoreMongo:
		client, err := retry.Do(ctx, retry.StartupConfig(), log, "mongo connect", func(ctx context.Context) (*database.MongoClient, error) {
			return database.NewMongoClient(ctx, &database.MongoConfig{URI: cfg.MongoURI, Database: cfg.MongoDatabase}, log)
		})
		if err != nil {
			return nil, err
		}
		if err := client.EnsureIndexes(ctx); err != nil {
			client.Close()
			return nil, err
		}
		return &store{
			driver:    config.StoreMongo,
			employees: repository.NewMongoEmployeeRepository(client.Database(), log),
			tasks:     repository.NewMongoTaskRepository(client.Database(), log),
			pinger:    client,
			close:     client.Close,
		}, nil

	default:
		log.Warn("using in-memory store, data is lost on restart")
		mem := repository.NewMemoryStore()
		return &store{
			driver:    config.StoreMemory,
			employees: mem.Employees(),
			tasks:     mem.Tasks(),
			pinger:    mem,
			close:     mem.Close,
		}, nil
	}
}
