package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	application "freight/internal/app"
	"freight/internal/handlers/rest/bol_get"
	"freight/internal/handlers/rest/healthcheck_head"
	"freight/internal/handlers/rest/load_accept_post"
	"freight/internal/handlers/rest/load_reservation_delete"
	"freight/internal/handlers/rest/load_reserve_post"
	"freight/internal/handlers/rest/mission_abandon_post"
	"freight/internal/handlers/rest/mission_arrive_post"
	"freight/internal/handlers/rest/mission_current_get"
	"freight/internal/handlers/rest/mission_deliver_post"
	"freight/internal/handlers/rest/mission_depart_post"
	"freight/internal/handlers/rest/mission_partial_post"
	"freight/internal/handlers/rest/mission_signal_post"
	"freight/internal/handlers/rest/mission_stolen_post"
	"freight/internal/handlers/rest/mission_stop_complete_post"
	"freight/internal/handlers/rest/ping_get"
	"freight/internal/handlers/tasks/debounce_prune"
	"freight/internal/pkg/config"
	"freight/internal/pkg/debounce"
	"freight/internal/pkg/dotenv"
	"freight/internal/pkg/kafka"
	metrics_system "freight/internal/pkg/metrics"
	"freight/internal/pkg/middlewares/auth"
	"freight/internal/pkg/middlewares/driver_debounce"
	"freight/internal/pkg/middlewares/graceful_shutdown"
	"freight/internal/pkg/middlewares/metrics"
	"freight/internal/pkg/middlewares/rate_limiter"
	"freight/internal/pkg/middlewares/timeout"
	"freight/internal/pkg/postgres"
	"freight/internal/pkg/redis"
	"freight/pkg/background"
	"freight/pkg/logger"
	"freight/pkg/logger/zap_adapter"
	"freight/pkg/token_bucket"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter(zap_adapter.WithLevel(os.Getenv("LOG_LEVEL")))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting freight application")

	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.Load(); err != nil {
			mainLog.Error("failed to load .env file", logger.NewField("error", err))
			return
		}
	} else {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // Получаю предупреждения от линтера в местах де наследуюсь от context.Background(), хотя это часть gracefull shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	conns, err := application.ConnectPlatform(ctx, log, &cfg.Platform)
	if err != nil {
		return fmt.Errorf("gRPC clients: %w", err)
	}
	defer conns.Close(runLog)

	producer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka, kafka.SplitBrokers(cfg.Kafka.Brokers))
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			runLog.Error("failed to close kafka producer",
				logger.NewField("error", err),
			)
		}
	}()

	debouncer, closeDebouncer, err := initDebouncer(ctx, log, cfg)
	if err != nil {
		return fmt.Errorf("debounce: %w", err)
	}
	defer closeDebouncer()

	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, conns, producer, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}
	runLog.Info("background tasks started",
		logger.NewField("tasks", businessApp.BackgroundWorkers.Tasks()),
	)

	metrics_system.StartSystemMetricsCollector(ctx)

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, pool, businessApp, debouncer, cfg),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	// основной http сервер

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofMux := http.NewServeMux()
		pprofMux.Handle("/debug/pprof/", http.DefaultServeMux)

		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // if !cfg.Server.PprofEnabled будет nil по умолчанию, и данный кейс будет проигнорирован
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)

	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	// фоновые задачи держат транзакции; пул закрывается только после них
	businessApp.BackgroundWorkers.Wait()

	runLog.Info("Server stopped")
	return nil
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	pinger healthcheck_head.Pinger,
	app *application.Application,
	debouncer driver_debounce.Debouncer,
	cfg *config.Config,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(timeout.Middleware(cfg.Server.RequestTimeout))
	router.Use(metrics.Middleware(log))
	globalLimiter := token_bucket.NewTokenBucket(cfg.Server.RateLimiterBurst, float64(cfg.Server.RateLimiterQPS))
	router.Use(rate_limiter.Middleware(log, cfg.Server.RateLimiterQPS, globalLimiter, "/healthcheck", "/metrics"))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, pinger)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log)).Methods("GET")

	api := router.NewRoute().Subrouter()
	api.Use(auth.Middleware(log, auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)))
	api.Use(driver_debounce.Middleware(log, debouncer))

	api.Handle("/loads/{id}/reserve", load_reserve_post.New(log, app.Reservation)).Methods("POST")
	api.Handle("/loads/{id}/reservation", load_reservation_delete.New(log, app.Reservation)).Methods("DELETE")
	api.Handle("/loads/{id}/accept", load_accept_post.New(log, app.Reservation)).Methods("POST")

	api.Handle("/missions/current", mission_current_get.New(log, app.Missions)).Methods("GET")
	api.Handle("/missions/{bol_id}/depart", mission_depart_post.New(log, app.Missions)).Methods("POST")
	api.Handle("/missions/{bol_id}/stops/{idx}/complete", mission_stop_complete_post.New(log, app.Missions)).Methods("POST")
	api.Handle("/missions/{bol_id}/arrive", mission_arrive_post.New(log, app.Missions)).Methods("POST")
	api.Handle("/missions/{bol_id}/deliver", mission_deliver_post.New(log, app.Missions)).Methods("POST")
	api.Handle("/missions/{bol_id}/abandon", mission_abandon_post.New(log, app.Missions)).Methods("POST")
	api.Handle("/missions/{bol_id}/signals", mission_signal_post.New(log, app.Missions)).Methods("POST")
	api.Handle("/missions/{bol_id}/stolen", mission_stolen_post.New(log, app.Missions)).Methods("POST")
	api.Handle("/missions/{bol_id}/partial", mission_partial_post.New(log, app.Missions)).Methods("POST")

	api.Handle("/bols/{id}", bol_get.New(log, app.Ledger)).Methods("GET")

	return router
}

// initDebouncer выбирает Redis, если он настроен, иначе локальные ведра с фоновой чисткой.
func initDebouncer(ctx context.Context, log logger.Logger, cfg *config.Config) (driver_debounce.Debouncer, func(), error) {
	if cfg.Redis.Addr != "" {
		client, err := redis.NewClient(ctx, log, &cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Error("failed to close redis client",
					logger.NewField("error", err),
				)
			}
		}
		return debounce.NewRedis(client, cfg.Server.DebounceWindow), closeFn, nil
	}

	log.Warn("REDIS_ADDR is empty, using in-memory debounce")
	memory := debounce.NewMemory(cfg.Server.DebounceWindow)
	_, err := background.New(ctx, log, []background.Task{
		debounce_prune.NewDebouncePrune(memory, 10*cfg.Server.DebounceWindow),
	})
	if err != nil {
		return nil, nil, err
	}
	return memory, func() {}, nil
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, nil)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
