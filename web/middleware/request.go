package middleware

import (
	"analytics-core/utils"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// RequestIDHeader carries the request ID in both directions.
	RequestIDHeader = "X-Request-ID"

	loggerKey    = "logger"
	requestIDKey = "requestID"
)

// LoggerMiddleware stores a request-scoped logger in the context and logs each
// completed request.
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqLogger := logger
		if id := RequestIDFrom(c); id != "" {
			reqLogger = logger.With(zap.String("request_id", id))
		}
		c.Set(loggerKey, reqLogger)

		c.Next()

		reqLogger.Debug("Request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// RequestIDMiddleware reuses a valid client-supplied request ID or generates one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if !utils.ValidRequestID(id) {
			id = utils.GenerateRequestID()
		}

		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// BodyLimitMiddleware caps the number of bytes handlers may read from a body.
func BodyLimitMiddleware(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil && maxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// LoggerFrom returns the request-scoped logger, or nil if none was set.
func LoggerFrom(c *gin.Context) *zap.Logger {
	v, ok := c.Get(loggerKey)
	if !ok {
		return nil
	}
	logger, _ := v.(*zap.Logger)
	return logger
}

// RequestIDFrom returns the request ID assigned by RequestIDMiddleware.
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
