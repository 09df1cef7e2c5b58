package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/macropower/pgn/pkg/log"
)

// HeaderRequestID carries the request ID.
const HeaderRequestID = "X-Request-ID"

// RequestID propagates the request ID header, generating one if the client
// sent none, and stores a logger carrying it in the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Header(HeaderRequestID, id)

		ctx := c.Request.Context()
		logger := log.WithContext(ctx).With(slog.String("request_id", id))
		c.Request = c.Request.WithContext(log.NewContext(ctx, logger))

		c.Next()
	}
}

// RequestLogger logs each request once it has been handled.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger := log.WithContext(c.Request.Context())
		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		}

		if len(c.Errors) > 0 {
			logger.Warn("request failed", append(attrs, slog.String("err", c.Errors.String()))...)

			return
		}

		logger.Debug("request", attrs...)
	}
}

// RateLimit rejects requests beyond the limiter's rate with 429.
func RateLimit(l *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow() {
			c.AbortWithStatus(http.StatusTooManyRequests)

			return
		}

		c.Next()
	}
}
