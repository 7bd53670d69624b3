package apply

import (
	"github.com/pokemogu/TimecardSystem-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	applies := r.Group("/applies")
	applies.Use(middleware.Identity())
	{
		applies.POST("", middleware.RequireCapability("apply:submit"), h.Submit)
		applies.POST("/:id/approve", middleware.RequireCapability("apply:decide"), h.Approve)
		applies.POST("/:id/reject", middleware.RequireCapability("apply:decide"), h.Reject)
		applies.GET("/current-decision", middleware.RequireCapability("apply:read"), h.CurrentDecision)
		applies.GET("/pending", middleware.RequireCapability("apply:read"), h.Pending)
		applies.GET("/approved", middleware.RequireCapability("apply:read"), h.Approved)
	}
}
