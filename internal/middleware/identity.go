package middleware

import (
	"net/http"
	"strings"

	"github.com/pokemogu/TimecardSystem-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Identity reads the verified identity forwarded by the gateway.
// Authentication happens upstream; by the time a request reaches this
// service the X-User-Id header is trusted.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if actorID == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing verified identity", nil)
			c.Abort()
			return
		}

		c.Set("actor_id", actorID)
		c.Set("actor_account", strings.TrimSpace(c.GetHeader("X-User-Account")))

		caps := map[string]bool{}
		for _, cap := range strings.Split(c.GetHeader("X-Capabilities"), ",") {
			cap = strings.TrimSpace(cap)
			if cap != "" {
				caps[cap] = true
			}
		}
		c.Set("capabilities", caps)

		c.Next()
	}
}

// RequireCapability gates a route on the capability set supplied with the
// verified identity. Policy decisions stay in the auth layer upstream.
func RequireCapability(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caps, _ := c.Get("capabilities")
		if m, ok := caps.(map[string]bool); !ok || !m[name] {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Missing capability: "+name, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
