package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/filmoteca/catalog-api/internal/config"
)

// captureWriter captures the response body and status while forwarding to
// the client, so a successful response can be stored after the handler ran.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.limit <= 0 || cw.size+int64(len(b)) <= cw.limit {
		cw.buf.Write(b)
	}
	cw.size += int64(len(b))
	return cw.ResponseWriter.Write(b)
}

// Cache is a Redis-backed response cache for public catalog GET endpoints.
// A nil Redis client or disabled config turns every method into a no-op, so
// the server keeps working without Redis.
type Cache struct {
	cfg config.CacheConfig
	rdb *redis.Client
}

func NewCache(cfg config.CacheConfig, rdb *redis.Client) *Cache {
	return &Cache{cfg: cfg, rdb: rdb}
}

func (x *Cache) enabled() bool {
	return x != nil && x.cfg.Enabled && x.rdb != nil
}

// key builds a stable cache key from the concrete request path and raw
// query.  The matched route template must not be used here: every detail
// request shares the same "/api/movies/:id" template and would collide on a
// single entry.
func (x *Cache) key(c echo.Context) string {
	r := c.Request()
	sum := sha1.Sum([]byte(r.URL.Path + "?" + r.URL.RawQuery))
	return fmt.Sprintf("%s:%x", x.cfg.Prefix, sum[:])
}

// Middleware serves GET responses from Redis when present and stores fresh
// 200 responses with the configured TTL.  Only JSON endpoints are wrapped,
// so the cached payload is the body alone.
func (x *Cache) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !x.enabled() || c.Request().Method != http.MethodGet {
				return next(c)
			}

			ctx := c.Request().Context()
			key := x.key(c)

			if body, err := x.rdb.Get(ctx, key).Bytes(); err == nil {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.JSONBlob(http.StatusOK, body)
			}

			cw := &captureWriter{
				ResponseWriter: c.Response().Writer,
				status:         http.StatusOK,
				limit:          int64(x.cfg.MaxBodyBytes),
			}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			// Skip storing when the body overflowed the capture limit.
			if cw.status == http.StatusOK && cw.buf.Len() > 0 && cw.size == int64(cw.buf.Len()) {
				ttl := x.cfg.TTL
				if ttl <= 0 {
					ttl = 30 * time.Second
				}
				if err := x.rdb.SetEx(context.Background(), key, cw.buf.Bytes(), ttl).Err(); err != nil {
					log.Printf("cache: store failed: %v", err)
				}
			}
			return nil
		}
	}
}

// Invalidate drops every cached catalog response.  It is called after a
// successful create, update or delete so mutations are visible immediately
// instead of after the TTL runs out.
func (x *Cache) Invalidate(ctx context.Context) {
	if !x.enabled() {
		return
	}
	var cursor uint64
	for {
		keys, next, err := x.rdb.Scan(ctx, cursor, x.cfg.Prefix+":*", 100).Result()
		if err != nil {
			log.Printf("cache: invalidate scan failed: %v", err)
			return
		}
		if len(keys) > 0 {
			if err := x.rdb.Del(ctx, keys...).Err(); err != nil {
				log.Printf("cache: invalidate del failed: %v", err)
				return
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
