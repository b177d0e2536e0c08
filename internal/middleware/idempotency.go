package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	idempotencyLockTTL   = 30 * time.Second
	idempotencyResultTTL = 24 * time.Hour
	idempotencyHeader    = "Idempotency-Key"
	idempotencyReplayed  = "Idempotent-Replayed"
)

// bodyRecorder keeps a copy of the response so it can be replayed.
type bodyRecorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response of a POST that carried the same
// Idempotency-Key for the same actor and route. Concurrent duplicates get 409.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	logger := zap.L().Named("middleware.idempotency")

	return func(c *gin.Context) {
		idempKey := c.GetHeader(idempotencyHeader)
		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), c.GetString("user_id"), idempKey)
		lockKey := cacheKey + ":lock"

		if val, err := rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			status, body := decodeStoredResponse(val)
			c.Header(idempotencyReplayed, "true")
			c.Data(status, "application/json; charset=utf-8", body)
			c.Abort()
			return
		}

		// Lock expires on its own if the process dies mid-request.
		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			logger.Warn("idempotency lock unavailable, continuing without it", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			abortError(c, ErrProcessing)
			return
		}
		defer rdb.Del(ctx, lockKey)

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec

		c.Next()

		if status := rec.Status(); status >= http.StatusOK && status < http.StatusMultipleChoices {
			if err := rdb.Set(ctx, cacheKey, encodeStoredResponse(status, rec.buf.Bytes()), idempotencyResultTTL).Err(); err != nil {
				logger.Warn("failed to store idempotent response", zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}
}

// Stored value layout: "<status>\n<body>".
func encodeStoredResponse(status int, body []byte) []byte {
	return append([]byte(strconv.Itoa(status)+"\n"), body...)
}

func decodeStoredResponse(val []byte) (int, []byte) {
	head, body, found := bytes.Cut(val, []byte("\n"))
	if !found {
		return http.StatusOK, val
	}
	status, err := strconv.Atoi(string(head))
	if err != nil {
		return http.StatusOK, val
	}
	return status, body
}
