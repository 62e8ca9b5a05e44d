package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"coursecloud/internal/enrollment/events"
	"coursecloud/internal/enrollment/handler"
	enrollmentMetrics "coursecloud/internal/enrollment/metrics"
	"coursecloud/internal/enrollment/models"
	"coursecloud/internal/enrollment/service"
	"coursecloud/internal/enrollment/store"
	"coursecloud/internal/platform/config"
	"coursecloud/internal/platform/httpserver"
	"coursecloud/internal/platform/kafka"
	"coursecloud/internal/platform/logger"
	"coursecloud/internal/platform/metrics"
	"coursecloud/internal/platform/postgres"
	"coursecloud/internal/platform/redis"
	"coursecloud/internal/validation"
)

const startupTimeout = 15 * time.Second

// main wires the enrollment service: store, validation strategy, event
// publisher and HTTP edge. Business logic lives in internal packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	if err := run(cfg, log); err != nil {
		log.Error("enrollment service stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	enrollStore, closeStore, err := buildStore(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer closeStore()

	validationMetrics := validation.NewMetrics()
	validator, circuits, closeValidator, err := buildValidator(ctx, cfg, log, validationMetrics)
	if err != nil {
		return err
	}
	defer closeValidator()

	publisher, closePublisher, err := buildPublisher(ctx, cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer closePublisher()

	svc, err := service.New(enrollStore, validator,
		service.WithLogger(log),
		service.WithMetrics(enrollmentMetrics.New()),
		service.WithEventPublisher(publisher),
	)
	if err != nil {
		return err
	}

	health := handler.NewHealthChecker([]handler.Probe{
		{Name: models.DependencyCatalog, BaseURL: cfg.Catalog.BaseURL},
		{Name: models.DependencyStudentDirectory, BaseURL: cfg.Directory.BaseURL},
	}, circuits, &http.Client{}, log)

	router := handler.NewRouter(handler.New(svc, health, log), log, metrics.New(handler.ServiceName))
	srv := httpserver.New(cfg.Enrollment.Addr, router)

	log.Info("starting enrollment service",
		"addr", cfg.Enrollment.Addr,
		"validation_strategy", cfg.Validation.Strategy,
		"catalog", cfg.Catalog.BaseURL,
		"student_directory", cfg.Directory.BaseURL,
	)
	return httpserver.Run(srv, log, handler.ServiceName)
}

func buildStore(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (service.Store, func(), error) {
	if cfg.URL == "" {
		log.Info("no DATABASE_URL configured, using in-memory enrollment store")
		return store.NewInMemory(), func() {}, nil
	}
	db, err := postgres.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	log.Info("using postgres enrollment store")
	return store.NewPostgres(db), closer(db, log), nil
}

// buildValidator composes the validation strategy. The circuit reporter is
// nil for the direct strategy.
func buildValidator(ctx context.Context, cfg config.Config, log *slog.Logger, m *validation.Metrics) (service.Validator, handler.CircuitReporter, func(), error) {
	direct, err := validation.NewDirectClient(
		validation.Config{BaseAddress: cfg.Catalog.BaseURL, Timeout: cfg.Catalog.Timeout},
		validation.Config{BaseAddress: cfg.Directory.BaseURL, Timeout: cfg.Directory.Timeout},
		validation.WithDirectLogger(log),
		validation.WithDirectMetrics(m),
	)
	if err != nil {
		return nil, nil, nil, err
	}
	if cfg.Validation.Strategy == config.StrategyDirect {
		return direct, nil, func() {}, nil
	}

	guarded := validation.NewGuardedClient(direct, validation.GuardedConfig{
		FailureThreshold: cfg.Validation.FailureThreshold,
		SuccessThreshold: cfg.Validation.SuccessThreshold,
		Cooldown:         cfg.Validation.Cooldown,
		StudentTimeout:   cfg.Directory.Timeout,
		CourseTimeout:    cfg.Catalog.Timeout,
	},
		validation.WithGuardedLogger(log),
		validation.WithGuardedMetrics(m),
	)

	cache, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, nil, err
	}
	if cache == nil {
		return guarded, guarded, func() {}, nil
	}
	log.Info("caching student snapshots in redis", "ttl", cfg.Validation.StudentCacheTTL)
	cached := validation.NewCachedClient(guarded, cache, cfg.Validation.StudentCacheTTL,
		validation.WithCacheLogger(log),
		validation.WithCacheMetrics(m),
	)
	return cached, guarded, closer(cache, log), nil
}

func buildPublisher(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger) (service.EventPublisher, func(), error) {
	if len(cfg.Brokers) == 0 {
		log.Info("no KAFKA_BROKERS configured, enrollment events disabled")
		return events.NoopPublisher{}, func() {}, nil
	}
	client, err := kafka.NewProducer(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := kafka.EnsureTopic(ctx, client, cfg.EventsTopic, 3, 1); err != nil {
		client.Close()
		return nil, nil, err
	}
	log.Info("publishing enrollment events", "topic", cfg.EventsTopic, "brokers", cfg.Brokers)
	return events.NewKafkaPublisher(client, cfg.EventsTopic), flusher(client, log), nil
}

type closable interface {
	Close() error
}

func closer(c closable, log *slog.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			log.Warn("close failed", "error", err)
		}
	}
}

func flusher(client *kgo.Client, log *slog.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Flush(ctx); err != nil {
			log.Warn("kafka flush failed", "error", err)
		}
		client.Close()
	}
}
