package user

import (
	"github.com/pokemogu/TimecardSystem-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	users := r.Group("/users")
	users.Use(middleware.Identity())
	{
		users.GET("", middleware.RequireCapability("user:read"), h.GetAll)
		users.GET("/:id", middleware.RequireCapability("user:read"), h.GetByID)
		users.POST("", middleware.RequireCapability("user:admin"), h.Create)
		users.PUT("/:id", middleware.RequireCapability("user:admin"), h.Update)
		users.DELETE("/:id", middleware.RequireCapability("user:admin"), h.Delete)
	}
}
