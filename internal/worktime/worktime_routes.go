package worktime

import (
	"github.com/pokemogu/TimecardSystem-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	worktime := r.Group("/worktime")
	worktime.Use(middleware.Identity())
	{
		worktime.GET("", middleware.RequireCapability("worktime:read"), h.GetWorkTimeInfo)
	}
}
