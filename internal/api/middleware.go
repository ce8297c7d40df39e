package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/causehire/recruit-api/internal/auth"
	"github.com/causehire/recruit-api/internal/logger"
)

const errorLogWriteTimeout = 3 * time.Second

// requestLogger logs each request with method, path, status, and latency.
func (r *Router) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []logger.Field{
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", c.Writer.Status()),
			logger.Duration("latency", time.Since(start)),
		}
		if c.Writer.Status() >= 500 {
			r.logger.Error("request failed", fields...)
			return
		}
		r.logger.Info("request", fields...)
	}
}

// errorLogRecorder persists a row for each 5xx response. The write is
// best-effort; the repository already swallows its own failures into logs.
func (r *Router) errorLogRecorder() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < 500 || r.errorLogs == nil {
			return
		}

		detail := ""
		if len(c.Errors) > 0 {
			detail = c.Errors.String()
		}

		// Detached from the request context so a cancelled request still
		// leaves a trace.
		ctx, cancel := context.WithTimeout(context.Background(), errorLogWriteTimeout)
		defer cancel()
		if err := r.errorLogs.Insert(ctx, auth.OwnerID(c),
			c.Request.Method+" "+c.FullPath(), "request failed", detail); err != nil {
			r.logger.Warn("error log write failed", logger.Error(err))
		}
	}
}
