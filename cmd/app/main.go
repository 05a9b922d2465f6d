package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/subhub/subhub/internal/access"
	"github.com/subhub/subhub/internal/application/handler"
	"github.com/subhub/subhub/internal/application/service"
	"github.com/subhub/subhub/internal/cache"
	"github.com/subhub/subhub/internal/config"
	"github.com/subhub/subhub/internal/database"
	"github.com/subhub/subhub/internal/email"
	"github.com/subhub/subhub/internal/httpapi"
	"github.com/subhub/subhub/internal/kafka"
	"github.com/subhub/subhub/internal/observability"
	"github.com/subhub/subhub/internal/pkg/breaker"
	"github.com/subhub/subhub/internal/pricing"
	"github.com/subhub/subhub/internal/relations"
	"github.com/subhub/subhub/internal/retries"
	"github.com/subhub/subhub/internal/scheduler"
)

const (
	topicPartitions  = 3
	topicReplication = 1
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool := database.Connect(ctx, cfg.DSN())
	defer pool.Close()

	subsRepo := database.NewSubscriptionRepo(pool, cfg.Tables)
	ordersRepo := database.NewOrderRepo(pool, cfg.Tables)
	relationRepo := database.NewRelationRepo(pool, cfg.Tables, cfg.MetaPrefix)
	productRepo := database.NewProductRepo(pool, cfg.Tables)
	userRepo := database.NewUserRepo(pool, cfg.Tables)

	retryStore := newRetryStore(cfg, pool, logger)

	metrics := observability.NewProm()

	subCache, err := cache.New(cfg.CacheCap)
	if err != nil {
		logger.Fatal("cache init failed", zap.Error(err))
	}
	subCache.Warm(ctx, subsRepo)

	roles := access.NewManager(userRepo, userRepo, logger)
	svc := service.NewService(subCache, subsRepo, roles, logger, metrics)

	priceCache, err := pricing.New(cfg.CacheCap, productRepo, productRepo, logger)
	if err != nil {
		logger.Fatal("price cache init failed", zap.Error(err))
	}

	renderer, err := email.NewRenderer()
	if err != nil {
		logger.Fatal("email templates failed to parse", zap.Error(err))
	}
	mailer := email.NewMailer(renderer, email.NewLogSender(logger), logger)

	evHandler := handler.NewHandler(handler.Deps{
		Subscriptions: svc,
		Orders:        ordersRepo,
		Retries:       retryStore,
		Rules:         retries.DefaultRules(),
		Mailer:        mailer,
		Breaker:       breaker.New(cfg.Breaker),
		Metrics:       metrics,
		Logger:        logger,
		Backoff:       cfg.Backoff,
		AdminEmail:    cfg.AdminEmail,
	})

	if err := kafka.EnsureTopic(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic, topicPartitions, topicReplication, logger); err != nil {
		logger.Fatal("kafka topic setup failed", zap.Error(err))
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		GroupID:  cfg.Kafka.Group,
		Topic:    cfg.Kafka.Topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	consumer := kafka.NewConsumer(evHandler, reader, cfg.Kafka.Workers, logger)
	go consumer.Start(ctx)

	runner := scheduler.NewRunner(retryStore, evHandler, logger)
	if err := runner.Start(cfg.RetryCron); err != nil {
		logger.Fatal("retry scheduler failed to start", zap.Error(err))
	}
	defer runner.Stop()

	server := httpapi.New(httpapi.Deps{
		Service:        svc,
		Relations:      relations.NewManager(relationRepo, logger),
		Retries:        retryStore,
		Prices:         priceCache,
		Products:       productRepo,
		Logger:         logger,
		Metrics:        metrics,
		MetricsHandler: metrics.Handler(),
	})

	logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
	if err := server.ListenAndServe(ctx, cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("http server failed", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newRetryStore(cfg config.Config, pool *pgxpool.Pool, logger *zap.Logger) retries.Store {
	switch cfg.RetryBackend {
	case "redis":
		store, err := retries.NewRedisStore(cfg.Redis.URL, cfg.Redis.TTL)
		if err != nil {
			logger.Fatal("redis retry store init failed", zap.Error(err))
		}
		return store
	case "memory":
		logger.Warn("using in-memory retry store, records will not survive restarts")
		return retries.NewMemoryStore()
	default:
		return database.NewRetryRepo(pool, cfg.Tables)
	}
}
