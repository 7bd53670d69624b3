package middleware

import (
	"github.com/pokemogu/TimecardSystem-sub001/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger attaches a request-scoped logger (request id + actor id)
// to the standard context so service and repo layers can log without
// knowing about gin.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetString("request_id")
		actorID := c.GetString("actor_id")

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("actor_id", actorID),
		)

		ctx := c.Request.Context()
		ctx = contextutil.WithActorID(ctx, actorID)
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
