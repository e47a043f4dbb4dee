package sync

import (
	"tracker/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to syncing progress
// r: the RouterGroup to which routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	// Syncs hit the upstream training site, keep them infrequent
	syncRateLimiter := middleware.NewRateLimiter(2, 5)

	group := r.Group("/sync")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("", middleware.RateLimiterMiddleware(syncRateLimiter), RunSync)
	}
}
