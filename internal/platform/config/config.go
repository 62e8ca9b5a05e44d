package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	platformstrings "coursecloud/pkg/platform/strings"
)

// Validation strategies selectable with VALIDATION_STRATEGY.
const (
	StrategyGuarded = "guarded"
	StrategyDirect  = "direct"
)

// Config is the full runtime configuration shared by the binaries.
type Config struct {
	Enrollment EnrollmentServer
	Gateway    Gateway
	Database   DatabaseConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Catalog    Dependency
	Directory  Dependency
	Validation Validation
	JWT        JWT
	Log        Log
}

// EnrollmentServer captures HTTP server level configuration for the enrollment service.
type EnrollmentServer struct {
	Addr string
}

// Gateway holds the edge listener and upstream base URLs.
type Gateway struct {
	Addr                 string
	UserServiceURL       string
	EnrollmentServiceURL string
	CatalogServiceURL    string
}

// DatabaseConfig configures the Postgres pool. An empty URL selects the in-memory store.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig configures the optional student snapshot cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures enrollment event publishing. No brokers means events are dropped.
type KafkaConfig struct {
	Brokers     []string
	EventsTopic string
}

// Dependency locates one remote validation dependency.
type Dependency struct {
	BaseURL string
	Timeout time.Duration
}

// Validation selects and tunes the remote validation strategy.
type Validation struct {
	Strategy         string
	FailureThreshold int
	SuccessThreshold int
	Cooldown         time.Duration
	StudentCacheTTL  time.Duration
}

// JWT configures gateway token validation.
type JWT struct {
	SigningKey string
	Issuer     string
	Audience   string
	TokenTTL   time.Duration
}

// Log selects the slog handler.
type Log struct {
	Level  string
	Format string
}

// FromEnv builds a Config from environment variables so main stays lean.
// Malformed numbers and durations are reported together.
func FromEnv() (Config, error) {
	e := &env{}
	cfg := Config{
		Enrollment: EnrollmentServer{
			Addr: e.str("ENROLLMENT_ADDR", ":8083"),
		},
		Gateway: Gateway{
			Addr:                 e.str("GATEWAY_ADDR", ":8080"),
			UserServiceURL:       e.str("USER_SERVICE_URL", "http://localhost:8082"),
			EnrollmentServiceURL: e.str("ENROLLMENT_SERVICE_URL", "http://localhost:8083"),
			CatalogServiceURL:    e.str("CATALOG_BASE_URL", "http://localhost:8081"),
		},
		Database: DatabaseConfig{
			URL:             e.str("DATABASE_URL", ""),
			MaxOpenConns:    e.integer("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    e.integer("DATABASE_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: e.duration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:          e.str("REDIS_URL", ""),
			PoolSize:     e.integer("REDIS_POOL_SIZE", 10),
			MinIdleConns: e.integer("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  e.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  e.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: e.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:     e.list("KAFKA_BROKERS"),
			EventsTopic: e.str("ENROLLMENT_EVENTS_TOPIC", "enrollment.events"),
		},
		Catalog: Dependency{
			BaseURL: e.str("CATALOG_BASE_URL", "http://localhost:8081"),
			Timeout: e.duration("CATALOG_TIMEOUT", 3*time.Second),
		},
		Directory: Dependency{
			BaseURL: e.str("DIRECTORY_BASE_URL", "http://localhost:8082"),
			Timeout: e.duration("DIRECTORY_TIMEOUT", 3*time.Second),
		},
		Validation: Validation{
			Strategy:         strings.ToLower(e.str("VALIDATION_STRATEGY", StrategyGuarded)),
			FailureThreshold: e.integer("BREAKER_FAILURE_THRESHOLD", 5),
			SuccessThreshold: e.integer("BREAKER_SUCCESS_THRESHOLD", 2),
			Cooldown:         e.duration("BREAKER_COOLDOWN", 30*time.Second),
			StudentCacheTTL:  e.duration("STUDENT_CACHE_TTL", 5*time.Minute),
		},
		JWT: JWT{
			// Development default; override in any shared environment.
			SigningKey: e.str("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			Issuer:     e.str("JWT_ISSUER", "coursecloud"),
			Audience:   e.str("JWT_AUDIENCE", "coursecloud-api"),
			TokenTTL:   e.duration("JWT_TOKEN_TTL", time.Hour),
		},
		Log: Log{
			Level:  e.str("LOG_LEVEL", "info"),
			Format: e.str("LOG_FORMAT", "json"),
		},
	}

	switch cfg.Validation.Strategy {
	case StrategyGuarded, StrategyDirect:
	default:
		e.fail("VALIDATION_STRATEGY", cfg.Validation.Strategy, errors.New("must be guarded or direct"))
	}
	for name, v := range map[string]int{
		"BREAKER_FAILURE_THRESHOLD": cfg.Validation.FailureThreshold,
		"BREAKER_SUCCESS_THRESHOLD": cfg.Validation.SuccessThreshold,
	} {
		if v <= 0 {
			e.fail(name, strconv.Itoa(v), errors.New("must be positive"))
		}
	}
	for name, d := range map[string]time.Duration{
		"CATALOG_TIMEOUT":   cfg.Catalog.Timeout,
		"DIRECTORY_TIMEOUT": cfg.Directory.Timeout,
	} {
		if d <= 0 {
			e.fail(name, d.String(), errors.New("must be positive"))
		}
	}

	if len(e.errs) > 0 {
		return Config{}, errors.Join(e.errs...)
	}
	return cfg, nil
}

// env collects parse failures so every bad variable is reported at once.
type env struct {
	errs []error
}

func (e *env) fail(name, value string, err error) {
	e.errs = append(e.errs, fmt.Errorf("%s=%q: %w", name, value, err))
}

func (e *env) str(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func (e *env) integer(name string, def int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		e.fail(name, raw, err)
		return def
	}
	return v
}

func (e *env) duration(name string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		e.fail(name, raw, err)
		return def
	}
	return v
}

func (e *env) list(name string) []string {
	return platformstrings.SplitList(os.Getenv(name), ",")
}
