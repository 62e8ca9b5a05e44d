package validation

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"coursecloud/internal/enrollment/models"
	id "coursecloud/pkg/domain"
	"coursecloud/pkg/requestcontext"
)

// DefaultStudentCacheTTL is used when no TTL is configured.
const DefaultStudentCacheTTL = 5 * time.Minute

const studentKeyPrefix = "enrollment:student:"

// CachedClient caches Found student snapshots in Redis in front of another
// Client. Only positive student answers are cached: a student that does not
// exist yet may be registered at any time, and course counts must be as
// fresh as the catalog can give them, so courses always go to the inner client.
// Cache failures fall through to the inner client.
type CachedClient struct {
	inner   Client
	cache   redis.Cmdable
	ttl     time.Duration
	logger  *slog.Logger
	metrics *Metrics
}

// CachedOption configures a CachedClient.
type CachedOption func(*CachedClient)

// WithCacheLogger sets the logger.
func WithCacheLogger(logger *slog.Logger) CachedOption {
	return func(c *CachedClient) {
		c.logger = logger
	}
}

// WithCacheMetrics counts cache hits and misses.
func WithCacheMetrics(m *Metrics) CachedOption {
	return func(c *CachedClient) {
		c.metrics = m
	}
}

// NewCachedClient decorates inner with a Redis-backed student cache.
func NewCachedClient(inner Client, cache redis.Cmdable, ttl time.Duration, opts ...CachedOption) *CachedClient {
	if ttl <= 0 {
		ttl = DefaultStudentCacheTTL
	}
	c := &CachedClient{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type cachedStudent struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
}

// ValidateStudent answers from the cache when possible.
func (c *CachedClient) ValidateStudent(ctx context.Context, studentID id.StudentID) Outcome[models.StudentSnapshot] {
	key := studentKeyPrefix + studentID.String()

	raw, err := c.cache.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var entry cachedStudent
		if jsonErr := json.Unmarshal(raw, &entry); jsonErr == nil {
			c.metrics.IncrementCacheLookup("hit")
			return Found(models.StudentSnapshot{StudentID: studentID, Name: entry.Name})
		}
		c.metrics.IncrementCacheLookup("error")
		c.logger.WarnContext(ctx, "discarding corrupt student cache entry",
			"request_id", requestcontext.RequestID(ctx),
			"student_id", studentID,
		)
	case errors.Is(err, redis.Nil):
		c.metrics.IncrementCacheLookup("miss")
	default:
		c.metrics.IncrementCacheLookup("error")
		c.logger.WarnContext(ctx, "student cache read failed",
			"request_id", requestcontext.RequestID(ctx),
			"student_id", studentID,
			"error", err,
		)
	}

	outcome := c.inner.ValidateStudent(ctx, studentID)
	if !outcome.IsFound() {
		return outcome
	}

	payload, err := json.Marshal(cachedStudent{StudentID: studentID.String(), Name: outcome.Value.Name})
	if err == nil {
		err = c.cache.Set(ctx, key, payload, c.ttl).Err()
	}
	if err != nil {
		c.logger.WarnContext(ctx, "student cache write failed",
			"request_id", requestcontext.RequestID(ctx),
			"student_id", studentID,
			"error", err,
		)
	}
	return outcome
}

// ValidateCourse always asks the inner client.
func (c *CachedClient) ValidateCourse(ctx context.Context, courseID id.CourseID) Outcome[models.CourseSnapshot] {
	return c.inner.ValidateCourse(ctx, courseID)
}
