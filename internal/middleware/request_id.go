package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/meeting-scheduler/internal/logging"
)

const HeaderRequestID = "X-Request-ID"

// RequestLogger tags each request with an id and stores a request-scoped
// logger in the request context for the use cases to pick up.
func RequestLogger(base *slog.Logger) gin.HandlerFunc {
	if base == nil {
		base = slog.Default()
	}

	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)

		logger := base.With("request_id", id, "method", c.Request.Method, "path", c.FullPath())
		ctx := logging.ContextWithLogger(c.Request.Context(), logger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if len(c.Errors) > 0 {
			logger.Warn("request finished with errors", "status", c.Writer.Status(), "errors", c.Errors.String())
		}
	}
}
