package middleware

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// cachedResponse is the payload stored in Redis: status, content type and body,
// so clients see identical formatting on hits and misses.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type bodyCapture struct {
	gin.ResponseWriter
	buf []byte
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf = append(w.buf, b...)
	return w.ResponseWriter.Write(b)
}

func cacheKey(c *gin.Context) string {
	sum := sha1.Sum([]byte(c.Request.Method + ":" + c.FullPath() + "?" + c.Request.URL.RawQuery))
	return fmt.Sprintf("villa:cache:%x", sum[:])
}

// ResponseCache caches successful GET responses in Redis for ttl. A nil client
// disables caching entirely.
func ResponseCache(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	if rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := cacheKey(c)

		if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
			var cached cachedResponse
			if json.Unmarshal(raw, &cached) == nil && cached.Status == http.StatusOK {
				c.Header("X-Cache", "HIT")
				c.Data(cached.Status, cached.ContentType, cached.Body)
				c.Abort()
				return
			}
		}

		capture := &bodyCapture{ResponseWriter: c.Writer}
		c.Writer = capture
		c.Header("X-Cache", "MISS")
		c.Next()

		if capture.Status() == http.StatusOK && len(capture.buf) > 0 {
			payload, err := json.Marshal(cachedResponse{
				Status:      capture.Status(),
				ContentType: capture.Header().Get("Content-Type"),
				Body:        capture.buf,
			})
			if err == nil {
				_ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
			}
		}
	}
}
