// Package cache provides Redis caching utilities for the application.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"holonet/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Cache is a cache-aside helper over Redis. A nil *Cache, or one without a
// client, is valid and simply calls through to the loader.
type Cache struct {
	client *redis.Client
	trace  *observability.TraceLayer
}

// New wraps an existing client. client may be nil.
func New(client *redis.Client) *Cache {
	return &Cache{client: client, trace: observability.GetTraceLayer("redis")}
}

// Connect builds a client from addr (host:port or redis:// URL) and pings it.
// When addr is empty or Redis is unreachable it returns a pass-through cache.
func Connect(ctx context.Context, addr string) *Cache {
	if addr == "" {
		return New(nil)
	}

	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			observability.Logger.WarnContext(ctx, "Redis connection warning: invalid REDIS_URL, continuing without cache",
				slog.String("error", err.Error()))
			return New(nil)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		observability.Logger.WarnContext(ctx, "Redis connection warning, continuing without cache",
			slog.String("error", err.Error()))
		_ = client.Close()
		return New(nil)
	}
	observability.Logger.InfoContext(ctx, "Redis connected successfully")
	return New(client)
}

// Enabled reports whether a Redis client is attached.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Close releases the client, if any.
func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// Aside loads key into dest from Redis, or calls load to fill dest and then
// stores it with ttl. Redis failures fall back to load and never fail the call.
func (c *Cache) Aside(ctx context.Context, key string, dest any, ttl time.Duration, load func() error) error {
	if !c.Enabled() {
		return load()
	}

	ctx, span := c.trace.TraceRedisOperation(ctx, "get")
	raw, err := c.client.Get(ctx, key).Bytes()
	observability.EndSpan(span, ignoreNil(err))

	switch {
	case err == nil:
		if decodeInto(raw, dest) {
			observability.CacheRequests.WithLabelValues(observability.CacheHit).Inc()
			return nil
		}
		// Corrupt entry: reload and overwrite. dest is untouched.
		observability.CacheRequests.WithLabelValues(observability.CacheError).Inc()
	case errors.Is(err, redis.Nil):
		observability.CacheRequests.WithLabelValues(observability.CacheMiss).Inc()
	default:
		observability.CacheRequests.WithLabelValues(observability.CacheError).Inc()
		observability.Logger.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	if err := load(); err != nil {
		return err
	}

	payload, err := json.Marshal(dest)
	if err != nil {
		return nil
	}
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		observability.Logger.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return nil
}

// Invalidate removes keys. Errors are logged, not returned.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		observability.Logger.WarnContext(ctx, "cache invalidate failed", slog.String("error", err.Error()))
	}
}

func ignoreNil(err error) error {
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

// decodeInto unmarshals raw into a fresh value of dest's type and copies it
// into dest only on success.
func decodeInto(raw []byte, dest any) bool {
	target := reflect.ValueOf(dest)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return false
	}
	fresh := reflect.New(target.Elem().Type())
	if err := json.Unmarshal(raw, fresh.Interface()); err != nil {
		return false
	}
	target.Elem().Set(fresh.Elem())
	return true
}
