package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/citywander/trip-planner/pkg/common"
	"github.com/citywander/trip-planner/pkg/logger"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithSentry recovers from panics, reports them to Sentry, and
// returns a 500 response instead of crashing the process.
func RecoveryWithSentry() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.ErrorContext(c.Request.Context(), "panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.String("stack", string(debug.Stack())),
				)

				if hub := sentry.CurrentHub(); hub.Client() != nil {
					hub.RecoverWithContext(c.Request.Context(), r)
				}

				common.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
				c.Abort()
			}
		}()

		c.Next()
	}
}
