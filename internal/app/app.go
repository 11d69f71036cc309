package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GlebRadaev/packmarket/internal/catalog"
	"github.com/GlebRadaev/packmarket/internal/config"
	"github.com/GlebRadaev/packmarket/internal/handlers"
	"github.com/GlebRadaev/packmarket/internal/metrics"
	"github.com/GlebRadaev/packmarket/internal/notifier"
	"github.com/GlebRadaev/packmarket/internal/pg"
	"github.com/GlebRadaev/packmarket/internal/repo"
	"github.com/GlebRadaev/packmarket/internal/service"
	"github.com/GlebRadaev/packmarket/internal/service/marketservice"
	"github.com/GlebRadaev/packmarket/pkg/auth"
	"github.com/GlebRadaev/packmarket/pkg/clients"
	"github.com/GlebRadaev/packmarket/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg      *config.Config
	api      *handlers.Handlers
	srv      *service.Services
	repo     *repo.Repositories
	catalog  *catalog.Cache
	notifier *notifier.Notifier

	errCh         chan error
	serverStopped chan struct{}
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh:         make(chan error),
		serverStopped: make(chan struct{}),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(ctx, pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool, pg.WithRetry(cfg.SerialMaxRetries, cfg.SerialRetryBaseDelay))

	redisClient, err := getRedisClient(ctx, cfg)
	if err != nil {
		zap.L().Error("connect to redis failed: ", zap.Error(err))
		return fmt.Errorf("can't connect to redis: %w", err)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	a.catalog = catalog.New(catalog.NewRedisSource(redisClient), cfg.CatalogRefreshInterval, cfg.CatalogMaxStaleness)
	if err := a.catalog.Refresh(ctx); err != nil {
		zap.L().Warn("initial catalog load failed, packs unavailable until next refresh", zap.Error(err))
	}

	emitter := newEmitter(cfg, redisClient)
	a.notifier = notifier.New(
		notifier.NewWorkerPool(cfg.NotifyWorkers, cfg.NotifyQueueSize),
		notifier.NewChatClient(cfg.ChatServiceAddress, clients.NewHTTPClient(), jwtService),
		emitter,
		cfg.NotifyTimeout,
		m,
	)

	conn := pg.New(pool)
	a.cfg = cfg
	a.repo = repo.New(conn, txManager)
	a.srv = service.New(a.repo, a.catalog, a.notifier, txManager, m, marketservice.Config{
		TxTimeout:           cfg.TxTimeout,
		DiamondExchangeRate: cfg.DiamondExchangeRate,
	})
	a.api = handlers.New(a.srv, jwtService, prometheus.DefaultGatherer, handlers.Limits{
		OpenPackPerMinute:        cfg.OpenPackPerMinute,
		OpenPackPerTenMinutes:    cfg.OpenPackPerTenMinutes,
		ConvertDiamondsPerMinute: cfg.ConvertDiamondsPerMinute,
		ConvertDiamondsPerHour:   cfg.ConvertDiamondsPerHour,
	})

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.catalog.Start(ctx)
	a.releaseAfterShutdown(
		a.notifier.Close,
		func() { closeEmitter(emitter) },
		func() {
			if err := redisClient.Close(); err != nil {
				zap.L().Error("failed to close redis client", zap.Error(err))
			}
		},
		pool.Close,
	)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func getRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

func newEmitter(cfg *config.Config, redisClient *redis.Client) notifier.RealtimeEmitter {
	if cfg.RealtimeDriver == config.RealtimeDriverKafka {
		zap.L().Info("realtime events go to kafka", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
		return notifier.NewKafkaEmitter(cfg.KafkaBrokers, cfg.KafkaTopic)
	}
	return notifier.NewRedisEmitter(redisClient)
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer close(a.serverStopped)
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(sCtx); err != nil {
			zap.L().Error("http server shutdown failed", zap.Error(err))
		}
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

// releaseAfterShutdown runs release in order once the HTTP server has
// finished its in-flight requests.
func (a *Application) releaseAfterShutdown(release ...func()) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-a.serverStopped

		for _, fn := range release {
			fn()
		}
	}()
}

func closeEmitter(emitter notifier.RealtimeEmitter) {
	if closer, ok := emitter.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			zap.L().Error("failed to close realtime emitter", zap.Error(err))
		}
	}
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
