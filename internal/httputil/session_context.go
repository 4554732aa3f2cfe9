package httputil

import (
	"log/slog"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/allisson/ai-service/internal/database"
)

const sessionContextKey = "session_context"

// SessionContextMiddleware creates one database.Context per request and stores
// it on the gin context. The context logger is bound to the request trace id
// so every session log line can be correlated.
func SessionContextMiddleware(factory database.SessionFactory, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestLogger := logger.With(slog.String("trace_id", requestid.Get(c)))
		c.Set(sessionContextKey, database.NewContext(factory, requestLogger))
		c.Next()
	}
}

// SessionContext returns the request-scoped database.Context, or nil when the
// middleware is not installed.
func SessionContext(c *gin.Context) *database.Context {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	dbc, ok := value.(*database.Context)
	if !ok {
		return nil
	}
	return dbc
}
