package record

import (
	"github.com/pokemogu/TimecardSystem-sub001/internal/middleware"

	"github.com/gin-gonic/gin"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client) {
	records := r.Group("")
	records.Use(middleware.Identity())
	{
		punches := records.Group("/punches")
		punches.Use(middleware.RateLimitByActor(rate.Limit(5), 20))
		if rdb != nil {
			punches.Use(middleware.Idempotency(rdb))
		}
		punches.POST("", middleware.RequireCapability("record:punch"), h.SubmitPunch)

		records.GET("/records", middleware.RequireCapability("record:read"), h.Query)
	}
}
