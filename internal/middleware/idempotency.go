package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyTTL = 24 * time.Hour
	lockTTL        = 30 * time.Second
)

type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency deduplicates POSTs carrying an Idempotency-Key header.
// Punch devices retry on flaky networks; a retried submit must return the
// cached response instead of writing a second time.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		actorID := c.GetString("actor_id")
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), actorID, idempKey)
		lockKey := cacheKey + ":lock"

		ctx := c.Request.Context()

		if val, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached any
			_ = json.Unmarshal([]byte(val), &cached)
			c.AbortWithStatusJSON(http.StatusOK, cached)
			return
		}

		// SetNX so a concurrent duplicate sees the in-flight lock. Short
		// TTL: if the server dies mid-request the lock expires on its own.
		isNew, _ := rdb.SetNX(ctx, lockKey, "locked", lockTTL).Result()
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "A request with this idempotency key is in flight",
			})
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = rec

		c.Next()

		if c.Writer.Status() < 500 {
			rdb.Set(ctx, cacheKey, rec.body.Bytes(), idempotencyTTL)
		}
		rdb.Del(ctx, lockKey)
	}
}
