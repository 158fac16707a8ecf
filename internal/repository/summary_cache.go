package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/aryan0dhankhar/workforce/internal/domain"
	"github.com/aryan0dhankhar/workforce/internal/infrastructure/redis"
	"github.com/aryan0dhankhar/workforce/internal/observability/metrics"
	"github.com/aryan0dhankhar/workforce/internal/reliability/circuitbreaker"
	"github.com/aryan0dhankhar/workforce/pkg/cache"
)

const summaryKeyPrefix = "workforce:employee:summary:"

// SummaryCache stores employee summaries keyed by employee ID
type SummaryCache interface {
	GetMany(ctx context.Context, ids []string) (map[string]*domain.EmployeeSummary, error)
	SetMany(ctx context.Context, summaries map[string]*domain.EmployeeSummary) error
}

// LocalSummaryCache keeps summaries in process memory
type LocalSummaryCache struct {
	entries *cache.Cache[domain.EmployeeSummary]
	ttl     time.Duration
}

// NewLocalSummaryCache creates an in-process summary cache
func NewLocalSummaryCache(ttl time.Duration) *LocalSummaryCache {
	return &LocalSummaryCache{entries: cache.New[domain.EmployeeSummary](), ttl: ttl}
}

// GetMany returns the cached subset of ids
func (c *LocalSummaryCache) GetMany(ctx context.Context, ids []string) (map[string]*domain.EmployeeSummary, error) {
	out := make(map[string]*domain.EmployeeSummary, len(ids))
	for _, id := range ids {
		if s, ok := c.entries.Get(id); ok {
			out[id] = &s
		}
	}
	return out, nil
}

// SetMany caches every summary
func (c *LocalSummaryCache) SetMany(ctx context.Context, summaries map[string]*domain.EmployeeSummary) error {
	for id, s := range summaries {
		c.entries.Set(id, *s, c.ttl)
	}
	return nil
}

// Sweep drops expired summaries
func (c *LocalSummaryCache) Sweep() int {
	return c.entries.Sweep()
}

// RedisSummaryCache stores summaries as JSON in Redis behind a circuit breaker
type RedisSummaryCache struct {
	client  *redis.Client
	breaker *circuitbreaker.Breaker
	ttl     time.Duration
}

// NewRedisSummaryCache creates a Redis-backed summary cache
func NewRedisSummaryCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisSummaryCache {
	return &RedisSummaryCache{
		client:  client,
		breaker: circuitbreaker.New("summary-cache", circuitbreaker.DefaultConfig(), logger),
		ttl:     ttl,
	}
}

// GetMany returns the cached subset of ids in a single MGET
func (c *RedisSummaryCache) GetMany(ctx context.Context, ids []string) (map[string]*domain.EmployeeSummary, error) {
	return circuitbreaker.Execute(c.breaker, func() (map[string]*domain.EmployeeSummary, error) {
		keys := make([]string, len(ids))
		for i, id := range ids {
			keys[i] = summaryKeyPrefix + id
		}
		values, found, err := c.client.MGet(ctx, keys...)
		if err != nil {
			return nil, err
		}

		out := make(map[string]*domain.EmployeeSummary, len(ids))
		for i, id := range ids {
			if !found[i] {
				continue
			}
			var s domain.EmployeeSummary
			if err := json.Unmarshal([]byte(values[i]), &s); err != nil {
				continue
			}
			out[id] = &s
		}
		return out, nil
	})
}

// SetMany writes every summary in one pipeline
func (c *RedisSummaryCache) SetMany(ctx context.Context, summaries map[string]*domain.EmployeeSummary) error {
	_, err := circuitbreaker.Execute(c.breaker, func() (struct{}, error) {
		values := make(map[string][]byte, len(summaries))
		for id, s := range summaries {
			b, err := json.Marshal(s)
			if err != nil {
				return struct{}{}, err
			}
			values[summaryKeyPrefix+id] = b
		}
		return struct{}{}, c.client.SetMany(ctx, values, c.ttl)
	})
	return err
}

// CachedEmployeeLookup resolves summaries through a cache before the store.
// Cache errors are logged and treated as misses; store errors propagate.
// Only found employees are cached, so a missing assignee is looked up again
// on the next request. Cache hits are confirmed with a key-only existence
// check, so an employee deleted behind the service never resolves.
type CachedEmployeeLookup struct {
	next   domain.EmployeeIndex
	cache  SummaryCache
	logger *slog.Logger
}

// NewCachedEmployeeLookup wraps next with cache
func NewCachedEmployeeLookup(next domain.EmployeeIndex, c SummaryCache, logger *slog.Logger) *CachedEmployeeLookup {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedEmployeeLookup{next: next, cache: c, logger: logger}
}

// FindByIDs implements domain.EmployeeLookup
func (l *CachedEmployeeLookup) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.EmployeeSummary, error) {
	if len(ids) == 0 {
		return map[string]*domain.EmployeeSummary{}, nil
	}

	cached, err := l.cache.GetMany(ctx, ids)
	if err != nil {
		metrics.ObserveCacheLookup("error", len(ids))
		l.logger.Warn("summary cache read failed", slog.String("error", err.Error()))
		cached = map[string]*domain.EmployeeSummary{}
	} else {
		if cached, err = l.confirm(ctx, cached); err != nil {
			return nil, err
		}
		metrics.ObserveCacheLookup("hit", len(cached))
		metrics.ObserveCacheLookup("miss", len(ids)-len(cached))
	}

	missing := make([]string, 0, len(ids)-len(cached))
	for _, id := range ids {
		if _, ok := cached[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return cached, nil
	}

	found, err := l.next.FindByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(found) > 0 {
		if err := l.cache.SetMany(ctx, found); err != nil {
			l.logger.Warn("summary cache write failed", slog.String("error", err.Error()))
		}
	}

	for id, s := range found {
		cached[id] = s
	}
	return cached, nil
}

// confirm drops cached summaries whose employee no longer exists
func (l *CachedEmployeeLookup) confirm(ctx context.Context, cached map[string]*domain.EmployeeSummary) (map[string]*domain.EmployeeSummary, error) {
	if len(cached) == 0 {
		return cached, nil
	}
	ids := make([]string, 0, len(cached))
	for id := range cached {
		ids = append(ids, id)
	}
	exists, err := l.next.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if !exists[id] {
			l.logger.Debug("dropping cached summary of removed employee", slog.String("employee_id", id))
			delete(cached, id)
		}
	}
	return cached, nil
}
