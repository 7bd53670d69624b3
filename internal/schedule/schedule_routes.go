package schedule

import (
	"github.com/pokemogu/TimecardSystem-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	patterns := r.Group("/work-patterns")
	patterns.Use(middleware.Identity())
	{
		patterns.GET("", h.GetAllPatterns)
		patterns.POST("", middleware.RequireCapability("schedule:admin"), h.CreatePattern)
		patterns.PUT("/:id", middleware.RequireCapability("schedule:admin"), h.UpdatePattern)
		patterns.DELETE("/:id", middleware.RequireCapability("schedule:admin"), h.DeletePattern)
	}

	users := r.Group("/users")
	users.Use(middleware.Identity())
	{
		users.PUT("/:id/overrides/:date", middleware.RequireCapability("schedule:admin"), h.UpsertOverride)
		users.DELETE("/:id/overrides/:date", middleware.RequireCapability("schedule:admin"), h.DeleteOverride)
	}
}
