package device

import (
	"github.com/pokemogu/TimecardSystem-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	devices := r.Group("/devices")
	devices.Use(middleware.Identity())
	{
		devices.GET("", middleware.RequireCapability("device:read"), h.GetAll)
		devices.POST("", middleware.RequireCapability("device:admin"), h.Register)
		devices.DELETE("/:id", middleware.RequireCapability("device:admin"), h.Delete)
	}
}
