package feed

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to the activity feed
// r: the RouterGroup to which routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/feed")
	{
		group.GET("", GetFeed)
		group.GET("/ws", FeedWebSocket)
	}
}
