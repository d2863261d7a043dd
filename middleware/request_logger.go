package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const contextLoggerKey = "requestLogger"

// RequestLogger attaches a request-scoped log entry carrying a generated
// request id, and logs one completion line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		entry := logrus.WithFields(logrus.Fields{
			"requestID": requestID,
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
		})
		c.Set(contextLoggerKey, entry)
		c.Writer.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		entry.WithFields(logrus.Fields{
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("request completed")
	}
}

// Logger returns the request-scoped entry, falling back to the standard
// logger outside a request.
func Logger(c *gin.Context) *logrus.Entry {
	if val, exists := c.Get(contextLoggerKey); exists {
		if entry, ok := val.(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
